// Package layouts holds named preset barrier layouts that seed a grid before
// the user starts editing. Layouts register themselves from init.
package layouts

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"pathviz/internal/core"
)

// ErrUnknownLayout is returned by Apply for names nobody registered.
var ErrUnknownLayout = errors.New("unknown layout")

// Builder paints a layout onto a cleared grid.
type Builder func(g *core.Grid) error

// Factory constructs a Builder using an optional configuration map.
type Factory func(cfg map[string]string) Builder

var layouts = map[string]Factory{}

// Register adds a layout factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	layouts[name] = f
}

// Layouts exposes the registry of available layout factories.
func Layouts() map[string]Factory {
	return layouts
}

// Names returns the registered layout names in sorted order.
func Names() []string {
	names := make([]string, 0, len(layouts))
	for name := range layouts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply clears g, paints the named layout and recomputes neighbor lists.
func Apply(name string, g *core.Grid, cfg map[string]string) error {
	factory, ok := layouts[name]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownLayout, name)
	}
	g.Clear()
	if err := factory(cfg)(g); err != nil {
		return fmt.Errorf("layout %s: %w", name, err)
	}
	g.RecomputeNeighbors()
	return nil
}

// corners places the start top-left and the end bottom-right.
func corners(g *core.Grid) error {
	if err := g.Place(core.CellRef{Row: 0, Col: 0}, core.RoleStart); err != nil {
		return err
	}
	return g.Place(core.CellRef{Row: g.Rows() - 1, Col: g.Cols() - 1}, core.RoleEnd)
}

func intOption(cfg map[string]string, key string, def int) int {
	if v, ok := cfg[key]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			return parsed
		}
	}
	return def
}

func floatOption(cfg map[string]string, key string, def float64) float64 {
	if v, ok := cfg[key]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			return parsed
		}
	}
	return def
}

func int64Option(cfg map[string]string, key string, def int64) int64 {
	if v, ok := cfg[key]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			return parsed
		}
	}
	return def
}
