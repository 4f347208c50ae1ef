package app

import (
	"errors"
	"fmt"

	"pathviz/internal/core"
	"pathviz/internal/search"

	"github.com/google/uuid"
)

// ErrNoEndpoints is returned when a run is requested before both the start
// and the end have been placed.
var ErrNoEndpoints = errors.New("place a start and an end first")

// Runner drives one search on its own goroutine, one observer call per
// Advance. The search only touches the grid while Advance is blocked, so the
// caller may read the grid freely between calls.
type Runner struct {
	ID         uuid.UUID
	Start, End core.CellRef

	resume chan search.Signal
	yield  chan struct{}
	done   chan struct{}

	expanded int
	finished bool
	result   search.Result
	err      error
}

// NewRunner prepares a search over g. Neighbor lists are rebuilt first. The
// search does not begin until the first Advance.
func NewRunner(g *core.Grid) (*Runner, error) {
	start, okStart := g.Start()
	end, okEnd := g.End()
	if !okStart || !okEnd {
		return nil, ErrNoEndpoints
	}
	g.RecomputeNeighbors()

	r := &Runner{
		ID:     uuid.New(),
		Start:  start,
		End:    end,
		resume: make(chan search.Signal),
		yield:  make(chan struct{}),
		done:   make(chan struct{}),
	}
	go r.run(g)
	return r, nil
}

func (r *Runner) run(g *core.Grid) {
	defer close(r.done)
	sig := <-r.resume
	for sig == search.Pause {
		r.yield <- struct{}{}
		sig = <-r.resume
	}
	if sig == search.Abort {
		r.result = search.Result{Outcome: search.Cancelled}
		return
	}
	r.result, r.err = search.Search(g, r.Start, r.End, func() search.Signal {
		r.yield <- struct{}{}
		return <-r.resume
	})
}

// Advance hands sig to the search and blocks until the next observer call or
// until the search returns. It reports whether the search has finished.
func (r *Runner) Advance(sig search.Signal) bool {
	if r.finished {
		return true
	}
	r.resume <- sig
	select {
	case <-r.yield:
		if sig != search.Pause {
			r.expanded++
		}
		return false
	case <-r.done:
		r.finished = true
		return true
	}
}

// Stop aborts the search and waits for it to return.
func (r *Runner) Stop() {
	for !r.finished {
		r.Advance(search.Abort)
	}
}

// Finish runs the search to completion without pausing.
func (r *Runner) Finish() {
	for !r.Advance(search.Continue) {
	}
}

// Finished reports whether the search has returned.
func (r *Runner) Finished() bool { return r.finished }

// Expanded returns the number of expansions observed so far.
func (r *Runner) Expanded() int {
	if r.finished {
		return r.result.Expanded
	}
	return r.expanded
}

// Result returns the search outcome. It is only meaningful once Finished.
func (r *Runner) Result() (search.Result, error) {
	if !r.finished {
		return search.Result{}, fmt.Errorf("run %s still in progress", r.ID)
	}
	return r.result, r.err
}
