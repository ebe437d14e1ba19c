package search_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/search"
)

func TestStepperAdvancesOneIterationAtATime(t *testing.T) {
	g := newGraph("goal").
		link("s", "1", "b").
		link("s", "2", "a").
		link("a", "3", "goal")

	stepper := search.NewBreadthFirst[string, string, string](g).Stepper(context.Background(), "s")

	snapshot, err := stepper.Step()
	require.NoError(t, err)
	assert.Equal(t, 1, snapshot.StepIndex)
	assert.Equal(t, "s", snapshot.Current)
	assert.Equal(t, []string{"a", "b"}, snapshot.Frontier)
	assert.False(t, snapshot.Done)
	assert.Nil(t, snapshot.Closed)

	snapshot, err = stepper.Step()
	require.NoError(t, err)
	assert.Equal(t, "b", snapshot.Current)
	assert.Equal(t, []string{"a"}, snapshot.Frontier)

	snapshot, err = stepper.Step()
	require.NoError(t, err)
	assert.True(t, snapshot.Done)
	assert.True(t, snapshot.Found)
	assert.Equal(t, "goal", snapshot.Current)
	assert.Equal(t, []string{"2", "3"}, snapshot.Actions)
	assert.True(t, stepper.Done())

	again, err := stepper.Step()
	require.NoError(t, err)
	assert.Equal(t, snapshot.StepIndex, again.StepIndex)

	result, err := stepper.Result()
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "3"}, result.Actions)
}

func TestStepperTracksClosedSetForBestFirst(t *testing.T) {
	g := newGraph("goal").
		link("s", "1", "a").
		link("a", "2", "b").
		link("b", "3", "goal")

	stepper := search.NewBestFirst[string, string, string](g, nil).Stepper(context.Background(), "s")
	snapshot, err := stepper.Step()
	require.NoError(t, err)
	assert.Equal(t, []string{"s"}, snapshot.Closed)
	assert.Equal(t, []string{"a"}, snapshot.Frontier)

	snapshot, err = stepper.Step()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "s"}, snapshot.Closed)
}

func TestStepperReportsFailure(t *testing.T) {
	g := newGraph().link("s", "1", "a")
	stepper := search.NewDepthFirst[string, string, string](g, 5).Stepper(context.Background(), "s")

	var err error
	for !stepper.Done() {
		_, err = stepper.Step()
	}
	assert.ErrorIs(t, err, search.ErrNoSolution)
}

func TestHooksObserveEveryIteration(t *testing.T) {
	var expands []search.ExpandEvent
	var finishes []search.FinishEvent
	hooks := search.Hooks{
		OnExpand: func(e search.ExpandEvent) { expands = append(expands, e) },
		OnFinish: func(e search.FinishEvent) { finishes = append(finishes, e) },
	}

	space := numberSpace{target: 10}
	result := mustSolve[int, string](t, search.NewBreadthFirst[int, string, int](space, search.WithHooks(hooks)), 1)

	assert.Len(t, expands, result.Expanded)
	assert.Equal(t, search.KindBreadthFirst, expands[0].Kind)
	assert.Equal(t, 0, expands[0].Depth)
	require.Len(t, finishes, 1)
	assert.True(t, finishes[0].Found)
	assert.Equal(t, len(result.Actions), finishes[0].Length)
	assert.Equal(t, result.Discovered, finishes[0].Discovered)
}

func TestParseKind(t *testing.T) {
	for name, want := range map[string]search.Kind{
		"bfs":           search.KindBreadthFirst,
		"Breadth-First": search.KindBreadthFirst,
		"dfs":           search.KindDepthFirst,
		"astar":         search.KindBestFirst,
		"best-first":    search.KindBestFirst,
	} {
		got, err := search.ParseKind(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := search.ParseKind("iddfs")
	assert.Error(t, err)
}

func TestNewBuildsEveryKind(t *testing.T) {
	g := chain(4)
	for _, kind := range []search.Kind{search.KindBreadthFirst, search.KindDepthFirst, search.KindBestFirst} {
		strategy, err := search.New[string, string, string](kind, g, nil, 10)
		require.NoError(t, err)
		assert.Equal(t, kind, strategy.Kind())
		result := mustSolve[string, string](t, strategy, stateName(0))
		assert.Len(t, result.Actions, 4)
	}

	_, err := search.New[string, string, string]("random", g, nil, 0)
	assert.Error(t, err)
}
