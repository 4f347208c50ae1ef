package app

import (
	"pathviz/internal/core"
)

// Editor applies mouse edits to a grid. Primary paints the start first, then
// the end, then barriers. Secondary resets a cell to free.
type Editor struct {
	grid *core.Grid
}

// NewEditor returns an editor bound to g.
func NewEditor(g *core.Grid) *Editor {
	return &Editor{grid: g}
}

// Primary applies a left-click at ref and reports whether the grid changed.
func (e *Editor) Primary(ref core.CellRef) bool {
	c := e.grid.Cell(ref)
	if c == nil || c.Role != core.RoleFree {
		return false
	}
	role := core.RoleBarrier
	if _, ok := e.grid.Start(); !ok {
		role = core.RoleStart
	} else if _, ok := e.grid.End(); !ok {
		role = core.RoleEnd
	}
	return e.grid.SetRole(ref, role) == nil
}

// Secondary applies a right-click at ref and reports whether the grid changed.
func (e *Editor) Secondary(ref core.CellRef) bool {
	c := e.grid.Cell(ref)
	if c == nil || c.Role == core.RoleFree {
		return false
	}
	return e.grid.SetRole(ref, core.RoleFree) == nil
}

// CellAt maps a pixel position to the cell under it.
func CellAt(x, y, cellSize int) core.CellRef {
	if cellSize <= 0 {
		cellSize = 1
	}
	return core.CellRef{Row: floorDiv(y, cellSize), Col: floorDiv(x, cellSize)}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && (a < 0) {
		q--
	}
	return q
}
