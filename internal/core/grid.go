package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSize is returned when a grid is requested with a non-positive dimension.
	ErrInvalidSize = errors.New("grid dimensions must be positive")
	// ErrOutOfBounds is returned for references outside the grid.
	ErrOutOfBounds = errors.New("cell out of bounds")
	// ErrInvalidAssignment is returned when a role change would break the
	// single start / single end invariant.
	ErrInvalidAssignment = errors.New("invalid role assignment")
)

const noCell = -1

// Grid stores a fixed-size rectangle of cells in row-major order.
type Grid struct {
	rows, cols int
	cells      []Cell

	start, end int
	stale      bool
}

// NewGrid allocates a rows*cols grid of free, unvisited cells.
func NewGrid(rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, rows, cols)
	}
	g := &Grid{rows: rows, cols: cols, cells: make([]Cell, rows*cols), start: noCell, end: noCell}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			g.cells[r*cols+c].Ref = CellRef{Row: r, Col: c}
		}
	}
	g.stale = true
	return g, nil
}

// Rows returns the row count.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the column count.
func (g *Grid) Cols() int { return g.cols }

// Cells exposes the backing slice in row-major order. Callers must not
// change roles through it; use SetRole so start/end tracking stays valid.
func (g *Grid) Cells() []Cell { return g.cells }

// Index returns the linear slice index for ref.
func (g *Grid) Index(ref CellRef) int { return ref.Row*g.cols + ref.Col }

// Contains reports whether ref lies inside the grid.
func (g *Grid) Contains(ref CellRef) bool {
	return ref.Row >= 0 && ref.Row < g.rows && ref.Col >= 0 && ref.Col < g.cols
}

// Cell returns the cell at ref, or nil when ref is out of bounds.
func (g *Grid) Cell(ref CellRef) *Cell {
	if !g.Contains(ref) {
		return nil
	}
	return &g.cells[g.Index(ref)]
}

// Start returns the current start cell, if any.
func (g *Grid) Start() (CellRef, bool) { return g.tracked(g.start) }

// End returns the current end cell, if any.
func (g *Grid) End() (CellRef, bool) { return g.tracked(g.end) }

func (g *Grid) tracked(idx int) (CellRef, bool) {
	if idx == noCell {
		return CellRef{}, false
	}
	return g.cells[idx].Ref, true
}

// SetRole assigns role to the cell at ref. It refuses to create a second
// start or end, to paint a barrier over the start or end, and to turn the
// start into the end or the reverse. Assigning RoleFree always succeeds.
func (g *Grid) SetRole(ref CellRef, role Role) error {
	if !g.Contains(ref) {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, ref)
	}
	idx := g.Index(ref)
	cur := g.cells[idx].Role
	if cur == role {
		return nil
	}
	switch role {
	case RoleStart:
		if g.start != noCell {
			return fmt.Errorf("%w: start already at %v", ErrInvalidAssignment, g.cells[g.start].Ref)
		}
	case RoleEnd:
		if g.end != noCell {
			return fmt.Errorf("%w: end already at %v", ErrInvalidAssignment, g.cells[g.end].Ref)
		}
	case RoleFree:
	case RoleBarrier:
	default:
		return fmt.Errorf("%w: unknown %v", ErrInvalidAssignment, role)
	}
	if role != RoleFree && (cur == RoleStart || cur == RoleEnd) {
		return fmt.Errorf("%w: %v holds the %v", ErrInvalidAssignment, ref, cur)
	}
	g.assign(idx, role)
	return nil
}

// Place assigns role to the cell at ref, moving the start or end when one
// already exists elsewhere. Whatever role the target cell held is replaced.
func (g *Grid) Place(ref CellRef, role Role) error {
	if !g.Contains(ref) {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, ref)
	}
	idx := g.Index(ref)
	switch role {
	case RoleStart:
		if g.start != noCell && g.start != idx {
			g.assign(g.start, RoleFree)
		}
	case RoleEnd:
		if g.end != noCell && g.end != idx {
			g.assign(g.end, RoleFree)
		}
	}
	if cur := g.cells[idx].Role; cur != role && (cur == RoleStart || cur == RoleEnd) {
		g.assign(idx, RoleFree)
	}
	return g.SetRole(ref, role)
}

func (g *Grid) assign(idx int, role Role) {
	cell := &g.cells[idx]
	if (cell.Role == RoleBarrier) != (role == RoleBarrier) {
		g.stale = true
	}
	switch cell.Role {
	case RoleStart:
		g.start = noCell
	case RoleEnd:
		g.end = noCell
	}
	cell.Role = role
	switch role {
	case RoleStart:
		g.start = idx
	case RoleEnd:
		g.end = idx
	}
}

// RecomputeNeighbors rebuilds every cell's 4-connected neighbor list from
// the current barrier layout. Order is down, up, right, left.
func (g *Grid) RecomputeNeighbors() {
	for i := range g.cells {
		cell := &g.cells[i]
		cell.neighbors = cell.neighbors[:0]
		r, c := cell.Ref.Row, cell.Ref.Col
		for _, next := range [4]CellRef{{r + 1, c}, {r - 1, c}, {r, c + 1}, {r, c - 1}} {
			if !g.Contains(next) || g.cells[g.Index(next)].Role == RoleBarrier {
				continue
			}
			cell.neighbors = append(cell.neighbors, next)
		}
	}
	g.stale = false
}

// NeighborsStale reports whether barriers changed since the last
// RecomputeNeighbors call.
func (g *Grid) NeighborsStale() bool { return g.stale }

// Neighbors returns the precomputed neighbor list for ref.
func (g *Grid) Neighbors(ref CellRef) []CellRef {
	if !g.Contains(ref) {
		return nil
	}
	return g.cells[g.Index(ref)].neighbors
}

// Status returns the search status of ref.
func (g *Grid) Status(ref CellRef) Status {
	if !g.Contains(ref) {
		return StatusUnvisited
	}
	return g.cells[g.Index(ref)].Status
}

// SetStatus records a search status for ref. Out-of-bounds refs are ignored.
func (g *Grid) SetStatus(ref CellRef, s Status) {
	if !g.Contains(ref) {
		return
	}
	g.cells[g.Index(ref)].Status = s
}

// ResetSearch marks every cell unvisited.
func (g *Grid) ResetSearch() {
	for i := range g.cells {
		g.cells[i].Status = StatusUnvisited
	}
}

// Clear returns the grid to its freshly built state.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i].Role = RoleFree
		g.cells[i].Status = StatusUnvisited
		g.cells[i].neighbors = nil
	}
	g.start, g.end = noCell, noCell
	g.stale = true
}
