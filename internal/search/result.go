package search

import (
	"errors"
	"fmt"

	"pathviz/internal/core"
)

var (
	// ErrPrecondition marks caller contract violations: missing or equal
	// endpoints, endpoints on barriers, or stale neighbor lists.
	ErrPrecondition = errors.New("search precondition violated")
	// ErrUnreachable is the Reason of a Failed result.
	ErrUnreachable = errors.New("end is unreachable from start")
)

// Outcome is the terminal state of a single run.
type Outcome uint8

const (
	Succeeded Outcome = iota + 1
	Failed
	Cancelled
)

func (o Outcome) String() string {
	switch o {
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	case Cancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("outcome(%d)", uint8(o))
	}
}

// Result describes how a run ended.
type Result struct {
	Outcome Outcome
	// Path runs from start to end inclusive; set only when Succeeded.
	Path []core.CellRef
	// Reason is ErrUnreachable when Failed.
	Reason error
	// Expanded counts cells popped and expanded before the run ended.
	Expanded int
}

// Cost is the number of moves along Path, or -1 when there is no path.
func (r Result) Cost() int {
	if r.Outcome != Succeeded || len(r.Path) == 0 {
		return -1
	}
	return len(r.Path) - 1
}

// Signal is returned by an Observer to steer the engine.
type Signal uint8

const (
	// Continue lets the engine expand the next cell.
	Continue Signal = iota
	// Pause holds the engine at the current step; it calls the observer
	// again until something other than Pause comes back.
	Pause
	// Abort ends the run with a Cancelled result.
	Abort
)

func (s Signal) String() string {
	switch s {
	case Continue:
		return "continue"
	case Pause:
		return "pause"
	case Abort:
		return "abort"
	default:
		return fmt.Sprintf("signal(%d)", uint8(s))
	}
}

// Observer is called once after every cell expansion.
type Observer func() Signal
