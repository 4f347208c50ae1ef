package core

import "strconv"

// Readout is a single labelled value shown on the HUD.
type Readout struct {
	Key   string
	Label string
	Value string
}

// ReadoutGroup clusters related readouts under a heading.
type ReadoutGroup struct {
	Name     string
	Readouts []Readout
}

// Snapshot captures everything the HUD displays for one frame.
type Snapshot struct {
	Title  string
	Groups []ReadoutGroup
}

// SnapshotProvider is implemented by anything that can describe its state
// for the HUD.
type SnapshotProvider interface {
	Snapshot() Snapshot
}

// IntReadout formats an integer value.
func IntReadout(key, label string, value int) Readout {
	return Readout{Key: key, Label: label, Value: strconv.Itoa(value)}
}

// TextReadout wraps a preformatted value.
func TextReadout(key, label, value string) Readout {
	return Readout{Key: key, Label: label, Value: value}
}

// RefReadout formats an optional cell reference, "--" when absent.
func RefReadout(key, label string, ref CellRef, ok bool) Readout {
	if !ok {
		return Readout{Key: key, Label: label, Value: "--"}
	}
	return Readout{Key: key, Label: label, Value: ref.String()}
}

// Control describes an integer setting adjustable from the HUD with -/+
// buttons. Bounds are inclusive.
type Control struct {
	Key   string
	Label string
	Step  int
	Min   int
	Max   int
}

// ControlsProvider exposes the list of HUD-adjustable controls.
type ControlsProvider interface {
	Controls() []Control
}

// IntSetter applies a HUD adjustment. It reports whether the value changed.
type IntSetter interface {
	SetInt(key string, value int) bool
}

// Clamp bounds v to the control's range.
func (c Control) Clamp(v int) int {
	if v < c.Min {
		return c.Min
	}
	if c.Max > c.Min && v > c.Max {
		return c.Max
	}
	return v
}
