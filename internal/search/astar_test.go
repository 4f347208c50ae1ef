package search

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pathviz/internal/core"
)

func parseGrid(t *testing.T, src string) *core.Grid {
	t.Helper()
	g, err := core.ParseText(src)
	require.NoError(t, err)
	return g
}

func endpoints(t *testing.T, g *core.Grid) (core.CellRef, core.CellRef) {
	t.Helper()
	start, ok := g.Start()
	require.True(t, ok, "grid has no start")
	end, ok := g.End()
	require.True(t, ok, "grid has no end")
	return start, end
}

// bfsDistance is an independent reference: plain breadth-first search over
// free cells, ignoring the precomputed neighbor lists.
func bfsDistance(g *core.Grid, start, end core.CellRef) int {
	dist := map[core.CellRef]int{start: 0}
	queue := []core.CellRef{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == end {
			return dist[cur]
		}
		for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			next := core.CellRef{Row: cur.Row + d[0], Col: cur.Col + d[1]}
			if !g.Contains(next) || g.Cell(next).Role == core.RoleBarrier {
				continue
			}
			if _, seen := dist[next]; seen {
				continue
			}
			dist[next] = dist[cur] + 1
			queue = append(queue, next)
		}
	}
	return -1
}

func requireValidPath(t *testing.T, g *core.Grid, path []core.CellRef, start, end core.CellRef) {
	t.Helper()
	require.NotEmpty(t, path)
	require.Equal(t, start, path[0], "path must begin at start")
	require.Equal(t, end, path[len(path)-1], "path must finish at end")
	seen := map[core.CellRef]bool{}
	for i, ref := range path {
		require.False(t, seen[ref], "cell %v repeated in path", ref)
		seen[ref] = true
		require.NotEqual(t, core.RoleBarrier, g.Cell(ref).Role, "path crosses barrier at %v", ref)
		if i > 0 {
			require.Equal(t, 1, Manhattan(path[i-1], ref), "%v and %v are not adjacent", path[i-1], ref)
		}
	}
}

func TestManhattan(t *testing.T) {
	assert.Equal(t, 0, Manhattan(core.CellRef{Row: 2, Col: 3}, core.CellRef{Row: 2, Col: 3}))
	assert.Equal(t, 7, Manhattan(core.CellRef{Row: 0, Col: 4}, core.CellRef{Row: 3, Col: 0}))
	assert.Equal(t, 7, Manhattan(core.CellRef{Row: 3, Col: 0}, core.CellRef{Row: 0, Col: 4}))
}

func TestOpenGridPathLengthIsManhattan(t *testing.T) {
	rng := core.NewRNG(11)
	for _, size := range [][2]int{{1, 2}, {5, 5}, {7, 13}, {20, 9}} {
		g, err := core.NewGrid(size[0], size[1])
		require.NoError(t, err)
		g.RecomputeNeighbors()
		for i := 0; i < 10; i++ {
			start, end := rng.CellIn(g), rng.CellIn(g)
			if start == end {
				continue
			}
			res, err := Search(g, start, end, nil)
			require.NoError(t, err)
			require.Equal(t, Succeeded, res.Outcome)
			requireValidPath(t, g, res.Path, start, end)
			assert.Equal(t, Manhattan(start, end), res.Cost(), "%dx%d %v->%v", size[0], size[1], start, end)
		}
	}
}

func TestPathIsOptimalAgainstBFS(t *testing.T) {
	for seed := int64(1); seed <= 40; seed++ {
		t.Run(fmt.Sprintf("seed-%d", seed), func(t *testing.T) {
			rng := core.NewRNG(seed)
			g, err := core.NewGrid(15, 20)
			require.NoError(t, err)
			start := rng.CellIn(g)
			end := rng.CellIn(g)
			for end == start {
				end = rng.CellIn(g)
			}
			require.NoError(t, g.SetRole(start, core.RoleStart))
			require.NoError(t, g.SetRole(end, core.RoleEnd))
			core.ScatterBarriers(g, rng, 0.3)
			g.RecomputeNeighbors()

			want := bfsDistance(g, start, end)
			res, err := Search(g, start, end, nil)
			require.NoError(t, err)
			if want < 0 {
				assert.Equal(t, Failed, res.Outcome)
				assert.ErrorIs(t, res.Reason, ErrUnreachable)
				assert.Equal(t, -1, res.Cost())
				return
			}
			require.Equal(t, Succeeded, res.Outcome)
			requireValidPath(t, g, res.Path, start, end)
			assert.Equal(t, want, res.Cost())
		})
	}
}

func TestEnclosedStartIsUnreachable(t *testing.T) {
	g := parseGrid(t, `
		.....
		..#..
		.#S#.
		..#..
		....E
	`)
	start, end := endpoints(t, g)

	res, err := Search(g, start, end, nil)
	require.NoError(t, err)
	assert.Equal(t, Failed, res.Outcome)
	assert.ErrorIs(t, res.Reason, ErrUnreachable)
	assert.Nil(t, res.Path)
	assert.Equal(t, 1, res.Expanded)
}

func TestFullBarrierRowIsUnreachable(t *testing.T) {
	g := parseGrid(t, `
		S..
		###
		E..
	`)
	start, end := endpoints(t, g)

	res, err := Search(g, start, end, nil)
	require.NoError(t, err)
	assert.Equal(t, Failed, res.Outcome)
	assert.ErrorIs(t, res.Reason, ErrUnreachable)
}

func TestFiveByFiveCorners(t *testing.T) {
	g, err := core.NewGrid(5, 5)
	require.NoError(t, err)
	g.RecomputeNeighbors()
	start, end := core.CellRef{Row: 0, Col: 0}, core.CellRef{Row: 4, Col: 4}

	res, err := Search(g, start, end, nil)
	require.NoError(t, err)
	require.Equal(t, Succeeded, res.Outcome)
	requireValidPath(t, g, res.Path, start, end)
	assert.Equal(t, 8, res.Cost())
	for i := 1; i < len(res.Path); i++ {
		prev, cur := res.Path[i-1], res.Path[i]
		assert.LessOrEqual(t, prev.Row+prev.Col, cur.Row+cur.Col, "row+col must not decrease at step %d", i)
	}
}

func TestRepeatedSearchIsIdempotent(t *testing.T) {
	g := parseGrid(t, `
		S.....#...
		.####.#.#.
		.#....#.#.
		.#.####.#.
		........#E
	`)
	start, end := endpoints(t, g)

	first, err := Search(g, start, end, nil)
	require.NoError(t, err)
	firstText := g.Text()
	second, err := Search(g, start, end, nil)
	require.NoError(t, err)

	require.Equal(t, Succeeded, first.Outcome)
	assert.Equal(t, first.Path, second.Path)
	assert.Equal(t, first.Expanded, second.Expanded)
	assert.Equal(t, firstText, g.Text(), "statuses must be rebuilt from scratch")
}

func TestTieBreakPrefersEarlierAdmission(t *testing.T) {
	// Two equal-length routes around the centre barrier. Neighbors are
	// admitted down before right, so the left/bottom route wins.
	want := []core.CellRef{{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 2, Col: 0}, {Row: 2, Col: 1}, {Row: 2, Col: 2}}
	for i := 0; i < 5; i++ {
		g := parseGrid(t, `
			S..
			.#.
			..E
		`)
		start, end := endpoints(t, g)
		res, err := Search(g, start, end, nil)
		require.NoError(t, err)
		require.Equal(t, want, res.Path, "run %d", i)
	}

	g := parseGrid(t, "S.\n.E")
	start, end := endpoints(t, g)
	res, err := Search(g, start, end, nil)
	require.NoError(t, err)
	assert.Equal(t, []core.CellRef{{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 1, Col: 1}}, res.Path)
}

func TestStatusesAfterSuccess(t *testing.T) {
	g := parseGrid(t, `
		S...
		.##.
		...E
	`)
	start, end := endpoints(t, g)
	res, err := Search(g, start, end, nil)
	require.NoError(t, err)
	require.Equal(t, Succeeded, res.Outcome)

	assert.Equal(t, core.StatusUnvisited, g.Status(start), "start is never closed")
	for _, ref := range res.Path[1:] {
		assert.Equal(t, core.StatusPath, g.Status(ref), "path cell %v", ref)
	}
	onPath := map[core.CellRef]bool{}
	for _, ref := range res.Path {
		onPath[ref] = true
	}
	for _, cell := range g.Cells() {
		if cell.Role == core.RoleBarrier {
			assert.Equal(t, core.StatusUnvisited, cell.Status, "barrier %v", cell.Ref)
		}
		if !onPath[cell.Ref] && cell.Status == core.StatusPath {
			t.Fatalf("cell %v marked path but not on it", cell.Ref)
		}
	}
}

func TestObserverCalledOncePerExpansion(t *testing.T) {
	g := parseGrid(t, `
		S....
		.###.
		....E
	`)
	start, end := endpoints(t, g)
	steps := 0
	res, err := Search(g, start, end, Counting(&steps, nil))
	require.NoError(t, err)
	require.Equal(t, Succeeded, res.Outcome)
	assert.Equal(t, res.Expanded, steps)
	assert.Positive(t, steps)
}

func TestAbortReturnsCancelled(t *testing.T) {
	g, err := core.NewGrid(10, 10)
	require.NoError(t, err)
	g.RecomputeNeighbors()
	start, end := core.CellRef{Row: 0, Col: 0}, core.CellRef{Row: 9, Col: 9}

	calls := 0
	res, err := Search(g, start, end, func() Signal {
		calls++
		if calls == 3 {
			return Abort
		}
		return Continue
	})
	require.NoError(t, err)
	assert.Equal(t, Cancelled, res.Outcome)
	assert.Nil(t, res.Reason)
	assert.Nil(t, res.Path)
	assert.Equal(t, 3, res.Expanded)

	closed := 0
	for _, cell := range g.Cells() {
		if cell.Status == core.StatusClosed {
			closed++
		}
		assert.NotEqual(t, core.StatusPath, cell.Status)
	}
	assert.Equal(t, 2, closed, "cancelled run keeps its statuses for inspection")
}

func TestPauseHoldsStateUntilResumed(t *testing.T) {
	src := `
		S......
		.#####.
		......E
	`
	baseline := parseGrid(t, src)
	start, end := endpoints(t, baseline)
	want, err := Search(baseline, start, end, nil)
	require.NoError(t, err)

	g := parseGrid(t, src)
	calls, pauses := 0, 0
	var frozen string
	res, err := Search(g, start, end, func() Signal {
		calls++
		if calls < 2 {
			return Continue
		}
		if pauses < 4 {
			if pauses == 0 {
				frozen = g.Text()
			}
			assert.Equal(t, frozen, g.Text(), "paused engine must not advance")
			pauses++
			return Pause
		}
		return Continue
	})
	require.NoError(t, err)
	assert.Equal(t, want.Path, res.Path)
	assert.Equal(t, want.Expanded, res.Expanded)
	assert.Equal(t, want.Expanded+4, calls)
}

func TestPreconditionsFailFast(t *testing.T) {
	g := parseGrid(t, `
		S.#
		...
		..E
	`)
	start, end := endpoints(t, g)

	cases := []struct {
		name       string
		grid       *core.Grid
		start, end core.CellRef
	}{
		{"nil grid", nil, start, end},
		{"same cell", g, start, start},
		{"start outside", g, core.CellRef{Row: -1, Col: 0}, end},
		{"end outside", g, start, core.CellRef{Row: 3, Col: 0}},
		{"end on barrier", g, start, core.CellRef{Row: 0, Col: 2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Search(tc.grid, tc.start, tc.end, nil)
			assert.ErrorIs(t, err, ErrPrecondition)
		})
	}

	t.Run("stale neighbors", func(t *testing.T) {
		require.NoError(t, g.SetRole(core.CellRef{Row: 1, Col: 1}, core.RoleBarrier))
		_, err := Search(g, start, end, nil)
		assert.ErrorIs(t, err, ErrPrecondition)

		g.RecomputeNeighbors()
		res, err := Search(g, start, end, nil)
		require.NoError(t, err)
		assert.Equal(t, Succeeded, res.Outcome)
	})
}

func TestWithContextAbortsOnCancel(t *testing.T) {
	g, err := core.NewGrid(8, 8)
	require.NoError(t, err)
	g.RecomputeNeighbors()

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	res, err := Search(g, core.CellRef{}, core.CellRef{Row: 7, Col: 7}, WithContext(ctx, func() Signal {
		calls++
		if calls == 2 {
			cancel()
			return Pause
		}
		return Continue
	}))
	require.NoError(t, err)
	assert.Equal(t, Cancelled, res.Outcome)
	assert.Equal(t, 2, res.Expanded)
}

func TestOutcomeAndSignalStrings(t *testing.T) {
	assert.Equal(t, "succeeded", Succeeded.String())
	assert.Equal(t, "failed", Failed.String())
	assert.Equal(t, "cancelled", Cancelled.String())
	assert.Equal(t, "pause", Pause.String())
	assert.Equal(t, "abort", Abort.String())
}
