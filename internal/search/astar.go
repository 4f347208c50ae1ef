// Package search finds minimum-cost paths on a core.Grid with A*.
//
// Every move costs 1 and the heuristic is Manhattan distance, which is
// admissible and consistent on a 4-connected unit grid, so the first time
// the end cell is popped its path is optimal. Frontier ties on f are broken
// by admission order, which makes runs fully deterministic.
package search

import (
	"fmt"
	"math"

	"pathviz/internal/core"
)

const (
	edgeWeight = 1
	unreached  = math.MaxInt
	noParent   = -1
)

// Manhattan returns |p.Row-q.Row| + |p.Col-q.Col|.
func Manhattan(p, q core.CellRef) int {
	return absInt(p.Row-q.Row) + absInt(p.Col-q.Col)
}

// Search runs A* from start to end over g's precomputed neighbor lists,
// writing cell statuses as it goes and calling observe after each
// expansion. A non-nil error means the call violated a precondition and
// nothing was searched.
func Search(g *core.Grid, start, end core.CellRef, observe Observer) (Result, error) {
	if err := validate(g, start, end); err != nil {
		return Result{}, err
	}
	if observe == nil {
		observe = func() Signal { return Continue }
	}
	g.ResetSearch()

	total := g.Rows() * g.Cols()
	gScore := make([]int, total)
	parent := make([]int, total)
	for i := range gScore {
		gScore[i] = unreached
		parent[i] = noParent
	}

	startIdx, endIdx := g.Index(start), g.Index(end)
	gScore[startIdx] = 0
	open := newFrontier()
	open.admit(startIdx, Manhattan(start, end))

	var res Result
	for open.len() > 0 {
		cur, _ := open.pop()
		ref := g.Cells()[cur.idx].Ref
		if cur.idx == endIdx {
			res.Outcome = Succeeded
			res.Path = reconstruct(g, parent, startIdx, endIdx)
			return res, nil
		}
		if cur.idx != startIdx {
			g.SetStatus(ref, core.StatusClosed)
		}

		for _, next := range g.Neighbors(ref) {
			ni := g.Index(next)
			tentative := gScore[cur.idx] + edgeWeight
			if tentative >= gScore[ni] {
				continue
			}
			gScore[ni] = tentative
			parent[ni] = cur.idx
			if !open.has(ni) {
				open.admit(ni, tentative+Manhattan(next, end))
				g.SetStatus(next, core.StatusOpen)
			}
		}
		res.Expanded++

		sig := observe()
		for sig == Pause {
			sig = observe()
		}
		if sig == Abort {
			res.Outcome = Cancelled
			return res, nil
		}
	}

	res.Outcome = Failed
	res.Reason = ErrUnreachable
	return res, nil
}

// reconstruct walks predecessor links back from end, marking every cell but
// the start as part of the path, and returns the path in start-to-end order.
func reconstruct(g *core.Grid, parent []int, startIdx, endIdx int) []core.CellRef {
	cells := g.Cells()
	var path []core.CellRef
	for idx := endIdx; idx != noParent; idx = parent[idx] {
		path = append(path, cells[idx].Ref)
		if idx != startIdx {
			g.SetStatus(cells[idx].Ref, core.StatusPath)
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func validate(g *core.Grid, start, end core.CellRef) error {
	switch {
	case g == nil:
		return fmt.Errorf("%w: nil grid", ErrPrecondition)
	case !g.Contains(start):
		return fmt.Errorf("%w: start %v outside %dx%d grid", ErrPrecondition, start, g.Rows(), g.Cols())
	case !g.Contains(end):
		return fmt.Errorf("%w: end %v outside %dx%d grid", ErrPrecondition, end, g.Rows(), g.Cols())
	case start == end:
		return fmt.Errorf("%w: start and end are both %v", ErrPrecondition, start)
	case g.Cell(start).Role == core.RoleBarrier || g.Cell(end).Role == core.RoleBarrier:
		return fmt.Errorf("%w: start or end is a barrier", ErrPrecondition)
	case g.NeighborsStale():
		return fmt.Errorf("%w: neighbor lists are stale, call RecomputeNeighbors", ErrPrecondition)
	}
	return nil
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
