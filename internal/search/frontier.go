package search

import (
	"github.com/zyedidia/generic/heap"
	"github.com/zyedidia/generic/mapset"
)

// entry is one frontier slot. The f value is frozen at admission time.
type entry struct {
	f   int
	seq int
	idx int
}

// before orders entries by f, then by admission order. Cells are never
// compared, so equal-f ties always go to the cell admitted first.
func before(a, b entry) bool {
	if a.f != b.f {
		return a.f < b.f
	}
	return a.seq < b.seq
}

// frontier is the open set: a min-heap keyed on (f, seq) plus a membership
// set mirroring which cells are currently enqueued.
type frontier struct {
	queue   *heap.Heap[entry]
	members mapset.Set[int]
	nextSeq int
}

func newFrontier() *frontier {
	return &frontier{
		queue:   heap.New[entry](before),
		members: mapset.New[int](),
	}
}

// admit enqueues idx with the next sequence number.
func (fr *frontier) admit(idx, f int) {
	fr.queue.Push(entry{f: f, seq: fr.nextSeq, idx: idx})
	fr.members.Put(idx)
	fr.nextSeq++
}

// pop removes the minimum entry and drops it from the membership set.
func (fr *frontier) pop() (entry, bool) {
	e, ok := fr.queue.Pop()
	if !ok {
		return entry{}, false
	}
	fr.members.Remove(e.idx)
	return e, true
}

func (fr *frontier) has(idx int) bool { return fr.members.Has(idx) }

func (fr *frontier) len() int { return fr.queue.Size() }
