package core

import (
	"errors"
	"slices"
	"testing"
	"time"
)

func mustGrid(t *testing.T, rows, cols int) *Grid {
	t.Helper()
	g, err := NewGrid(rows, cols)
	if err != nil {
		t.Fatalf("NewGrid(%d, %d): %v", rows, cols, err)
	}
	return g
}

func TestNewGridRejectsEmptyDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 3}, {3, 0}, {-1, 2}} {
		if _, err := NewGrid(dims[0], dims[1]); !errors.Is(err, ErrInvalidSize) {
			t.Fatalf("NewGrid(%d, %d) err=%v, expected ErrInvalidSize", dims[0], dims[1], err)
		}
	}
}

func TestNewGridCellsStartFree(t *testing.T) {
	g := mustGrid(t, 3, 4)
	if g.Rows() != 3 || g.Cols() != 4 {
		t.Fatalf("size %dx%d, expected 3x4", g.Rows(), g.Cols())
	}
	for i, cell := range g.Cells() {
		if cell.Role != RoleFree || cell.Status != StatusUnvisited {
			t.Fatalf("cell %d role=%v status=%v", i, cell.Role, cell.Status)
		}
		if g.Index(cell.Ref) != i {
			t.Fatalf("cell %d has ref %v which indexes to %d", i, cell.Ref, g.Index(cell.Ref))
		}
	}
	if _, ok := g.Start(); ok {
		t.Fatal("fresh grid must not have a start")
	}
	if !g.NeighborsStale() {
		t.Fatal("fresh grid must require a neighbor recompute")
	}
}

func TestSetRoleKeepsSingleStartAndEnd(t *testing.T) {
	g := mustGrid(t, 3, 3)
	a, b := CellRef{0, 0}, CellRef{2, 2}

	if err := g.SetRole(a, RoleStart); err != nil {
		t.Fatalf("first start: %v", err)
	}
	if err := g.SetRole(b, RoleStart); !errors.Is(err, ErrInvalidAssignment) {
		t.Fatalf("second start err=%v, expected ErrInvalidAssignment", err)
	}
	if err := g.SetRole(b, RoleEnd); err != nil {
		t.Fatalf("end: %v", err)
	}
	if err := g.SetRole(CellRef{1, 1}, RoleEnd); !errors.Is(err, ErrInvalidAssignment) {
		t.Fatalf("second end err=%v, expected ErrInvalidAssignment", err)
	}
	if err := g.SetRole(a, RoleBarrier); !errors.Is(err, ErrInvalidAssignment) {
		t.Fatalf("barrier over start err=%v, expected ErrInvalidAssignment", err)
	}

	// Clearing the start frees the slot for a new one.
	if err := g.SetRole(a, RoleFree); err != nil {
		t.Fatalf("clear start: %v", err)
	}
	if _, ok := g.Start(); ok {
		t.Fatal("start should be cleared")
	}
	if err := g.SetRole(CellRef{1, 0}, RoleStart); err != nil {
		t.Fatalf("new start: %v", err)
	}
	if got, _ := g.Start(); got != (CellRef{1, 0}) {
		t.Fatalf("start=%v, expected (1,0)", got)
	}
}

func TestSetRoleOutOfBounds(t *testing.T) {
	g := mustGrid(t, 2, 2)
	if err := g.SetRole(CellRef{2, 0}, RoleBarrier); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("err=%v, expected ErrOutOfBounds", err)
	}
}

func TestPlaceMovesStartAndEnd(t *testing.T) {
	g := mustGrid(t, 3, 3)
	if err := g.Place(CellRef{0, 0}, RoleStart); err != nil {
		t.Fatal(err)
	}
	if err := g.Place(CellRef{2, 2}, RoleEnd); err != nil {
		t.Fatal(err)
	}
	if err := g.Place(CellRef{1, 1}, RoleStart); err != nil {
		t.Fatal(err)
	}
	if g.Cell(CellRef{0, 0}).Role != RoleFree {
		t.Fatal("old start should be freed")
	}
	// Moving the start onto the end takes the end away.
	if err := g.Place(CellRef{2, 2}, RoleStart); err != nil {
		t.Fatal(err)
	}
	if _, ok := g.End(); ok {
		t.Fatal("end should be cleared when the start replaces it")
	}
	if got, _ := g.Start(); got != (CellRef{2, 2}) {
		t.Fatalf("start=%v, expected (2,2)", got)
	}
}

func TestRecomputeNeighborsSkipsBarriersAndEdges(t *testing.T) {
	g := mustGrid(t, 3, 3)
	if err := g.SetRole(CellRef{0, 1}, RoleBarrier); err != nil {
		t.Fatal(err)
	}
	g.RecomputeNeighbors()
	if g.NeighborsStale() {
		t.Fatal("neighbors should be fresh after recompute")
	}

	center := g.Neighbors(CellRef{1, 1})
	want := []CellRef{{2, 1}, {1, 2}, {1, 0}}
	if !slices.Equal(center, want) {
		t.Fatalf("center neighbors=%v, expected %v", center, want)
	}

	corner := g.Neighbors(CellRef{0, 0})
	if !slices.Equal(corner, []CellRef{{1, 0}}) {
		t.Fatalf("corner neighbors=%v", corner)
	}

	// A barrier still lists its free neighbors; only stepping onto it is forbidden.
	wall := g.Neighbors(CellRef{0, 1})
	if !slices.Equal(wall, []CellRef{{1, 1}, {0, 2}, {0, 0}}) {
		t.Fatalf("barrier neighbors=%v", wall)
	}
}

func TestBarrierEditsMarkNeighborsStale(t *testing.T) {
	g := mustGrid(t, 2, 2)
	g.RecomputeNeighbors()
	if err := g.SetRole(CellRef{0, 0}, RoleStart); err != nil {
		t.Fatal(err)
	}
	if g.NeighborsStale() {
		t.Fatal("placing the start must not invalidate neighbors")
	}
	if err := g.SetRole(CellRef{1, 1}, RoleBarrier); err != nil {
		t.Fatal(err)
	}
	if !g.NeighborsStale() {
		t.Fatal("adding a barrier must invalidate neighbors")
	}
	g.RecomputeNeighbors()
	if err := g.SetRole(CellRef{1, 1}, RoleFree); err != nil {
		t.Fatal(err)
	}
	if !g.NeighborsStale() {
		t.Fatal("removing a barrier must invalidate neighbors")
	}
}

func TestResetSearchAndClear(t *testing.T) {
	g := mustGrid(t, 2, 2)
	_ = g.SetRole(CellRef{0, 0}, RoleStart)
	_ = g.SetRole(CellRef{0, 1}, RoleBarrier)
	g.SetStatus(CellRef{1, 0}, StatusClosed)
	g.SetStatus(CellRef{1, 1}, StatusPath)

	g.ResetSearch()
	for _, cell := range g.Cells() {
		if cell.Status != StatusUnvisited {
			t.Fatalf("cell %v status=%v after ResetSearch", cell.Ref, cell.Status)
		}
	}
	if g.Cell(CellRef{0, 1}).Role != RoleBarrier {
		t.Fatal("ResetSearch must keep roles")
	}

	g.Clear()
	for _, cell := range g.Cells() {
		if cell.Role != RoleFree {
			t.Fatalf("cell %v role=%v after Clear", cell.Ref, cell.Role)
		}
	}
	if _, ok := g.Start(); ok {
		t.Fatal("Clear must drop the start")
	}
}

func TestScatterBarriersDeterministic(t *testing.T) {
	build := func() string {
		g := mustGrid(t, 12, 12)
		_ = g.SetRole(CellRef{0, 0}, RoleStart)
		_ = g.SetRole(CellRef{11, 11}, RoleEnd)
		ScatterBarriers(g, NewRNG(7), 0.3)
		return g.Text()
	}
	first := build()
	if first != build() {
		t.Fatal("scatter with the same seed must be deterministic")
	}
	g, err := ParseText(first)
	if err != nil {
		t.Fatal(err)
	}
	if g.Cell(CellRef{0, 0}).Role != RoleStart || g.Cell(CellRef{11, 11}).Role != RoleEnd {
		t.Fatal("scatter must keep start and end")
	}
}

func TestFixedStepDue(t *testing.T) {
	now := time.Unix(0, 0)
	fs := NewFixedStep(10)
	fs.now = func() time.Time { return now }

	if got := fs.Due(5); got != 1 {
		t.Fatalf("first call due=%d, expected 1", got)
	}
	now = now.Add(50 * time.Millisecond)
	if got := fs.Due(5); got != 0 {
		t.Fatalf("half step due=%d, expected 0", got)
	}
	now = now.Add(260 * time.Millisecond)
	if got := fs.Due(5); got != 3 {
		t.Fatalf("due=%d, expected 3", got)
	}
	now = now.Add(10 * time.Second)
	if got := fs.Due(5); got != 5 {
		t.Fatalf("stall due=%d, expected cap of 5", got)
	}
}
