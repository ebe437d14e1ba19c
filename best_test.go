package search_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slices"

	"github.com/pdrpinto/search"
)

// misleading builds a graph where a heuristic lures best-first search down
// the long branch through b and d before the short branch through a.
func misleading() (*graphSpace, search.Heuristic[string]) {
	g := newGraph("goal").
		link("s", "s-a", "a").
		link("s", "s-b", "b").
		link("a", "a-c", "c").
		link("b", "b-d", "d").
		link("d", "d-c", "c").
		link("c", "c-e", "e").
		link("e", "e-goal", "goal")
	estimates := map[string]float64{"a": 10, "e": 100}
	return g, func(state string) float64 { return estimates[state] }
}

func TestBestFirstWithoutReopenKeepsFirstPath(t *testing.T) {
	g, h := misleading()
	result := mustSolve[string, string](t, search.NewBestFirst[string, string, string](g, h), "s")

	assert.Equal(t, []string{"s-b", "b-d", "d-c", "c-e", "e-goal"}, result.Actions)
	for state, count := range g.expanded {
		assert.Equal(t, 1, count, "closed state %s expanded again", state)
	}
}

func TestBestFirstReopenFindsCheaperPath(t *testing.T) {
	g, h := misleading()
	result := mustSolve[string, string](t, search.NewBestFirst[string, string, string](g, h, search.WithReopen(true)), "s")

	assert.Equal(t, []string{"s-a", "a-c", "c-e", "e-goal"}, result.Actions)
	assert.Equal(t, 2, g.expanded["c"])
	assert.True(t, g.IsFinal(replay(t, g.Apply, "s", result.Actions)))
}

// anagramSpace treats states spelling the same letters as one node, the way
// a canonical key merges positions that only differ by slot order.
type anagramSpace struct{ *graphSpace }

func (a anagramSpace) Key(state string) string {
	letters := []byte(state)
	slices.Sort(letters)
	return string(letters)
}

func TestBestFirstReopenReplaysWhenKeysMergeStates(t *testing.T) {
	g := newGraph("goal").
		link("s", "s-a", "a").
		link("s", "s-b", "b").
		link("a", "a-yx", "yx").
		link("b", "b-d", "d").
		link("d", "d-xy", "xy").
		link("xy", "xy-e", "e").
		link("yx", "yx-e", "e").
		link("e", "e-goal", "goal")
	estimates := map[string]float64{"a": 10, "e": 100}
	h := func(state string) float64 { return estimates[state] }

	var finished search.FinishEvent
	solver := search.NewBestFirst[string, string, string](anagramSpace{g}, h,
		search.WithReopen(true),
		search.WithHooks(search.Hooks{OnFinish: func(e search.FinishEvent) { finished = e }}),
	)
	result := mustSolve[string, string](t, solver, "s")

	assert.Equal(t, []string{"s-a", "a-yx", "yx-e", "e-goal"}, result.Actions)
	assert.Equal(t, []string{"s", "a", "yx", "e", "goal"}, result.Path)
	assert.Equal(t, "goal", replay(t, g.Apply, "s", result.Actions))
	assert.Equal(t, len(result.Actions), finished.Length)
	assert.Equal(t, 7, result.Discovered)
}

func TestBestFirstFollowsHeuristic(t *testing.T) {
	space := numberSpace{target: 97}
	h := func(n int) float64 {
		if n > space.target {
			return 1000
		}
		return float64(space.target-n) / 2
	}

	guided := mustSolve[int, string](t, search.NewBestFirst[int, string, int](space, h), 1)
	blind := mustSolve[int, string](t, search.NewBreadthFirst[int, string, int](space), 1)

	assert.Equal(t, 97, replay(t, space.Apply, 1, guided.Actions))
	assert.Less(t, guided.Expanded, blind.Expanded)
}

func TestBestFirstTieBreakPrefersInsertionOrder(t *testing.T) {
	g := newGraph("left-goal", "right-goal").
		link("s", "left", "l").
		link("s", "right", "r").
		link("l", "l-goal", "left-goal").
		link("r", "r-goal", "right-goal")

	result := mustSolve[string, string](t, search.NewBestFirst[string, string, string](g, nil), "s")
	assert.Equal(t, []string{"left", "l-goal"}, result.Actions)
}

func TestBestFirstStopsOnMemoryLimit(t *testing.T) {
	gauge := search.MemoryGaugeFunc(func() (uint64, error) { return 2048, nil })
	solver := search.NewBestFirst[int, string, int](
		numberSpace{target: -1},
		func(int) float64 { return 0 },
		search.WithMemoryLimit(1024),
		search.WithMemoryGauge(gauge),
	)

	result, err := solver.Solve(context.Background(), 1)
	require.ErrorIs(t, err, search.ErrMemoryLimit)
	assert.Empty(t, result.Actions)
	assert.False(t, result.Found)
}

func TestBestFirstSampledGovernorStopsInfiniteSearch(t *testing.T) {
	calls := 0
	gauge := search.MemoryGaugeFunc(func() (uint64, error) {
		calls++
		if calls > 3 {
			return 1 << 30, nil
		}
		return 0, nil
	})
	solver := search.NewBestFirst[int, string, int](
		numberSpace{target: -1},
		nil,
		search.WithMemoryLimit(1<<20),
		search.WithMemoryGauge(gauge),
		search.WithMemorySampleEvery(10),
	)

	result, err := solver.Solve(context.Background(), 1)
	require.ErrorIs(t, err, search.ErrMemoryLimit)
	// Sampled at steps 0, 10, 20 and tripped at 30.
	assert.Equal(t, 30, result.Expanded)
	assert.Equal(t, 4, calls)
}
