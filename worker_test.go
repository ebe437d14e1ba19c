package search_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/search"
)

type boundedNumbers struct {
	numberSpace
	max int
}

func (b boundedNumbers) Actions(state int) []string {
	var actions []string
	if state+1 <= b.max {
		actions = append(actions, "+1")
	}
	if state*2 <= b.max {
		actions = append(actions, "*2")
	}
	return actions
}

func TestSolveAllKeepsInputOrder(t *testing.T) {
	space := boundedNumbers{numberSpace: numberSpace{target: 40}, max: 64}
	solver := search.NewBreadthFirst[int, string, int](space)
	initials := []int{1, 40, 3, 41, 20}

	results, err := search.SolveAll[int, string](context.Background(), solver, initials, search.WithWorkers(3))
	require.NoError(t, err)
	require.Len(t, results, len(initials))

	for i, res := range results {
		assert.Equal(t, i, res.Index)
		if initials[i] > 40 {
			assert.ErrorIs(t, res.Err, search.ErrNoSolution)
			assert.Empty(t, res.Result.Actions)
			continue
		}
		require.NoError(t, res.Err)
		assert.Equal(t, 40, replay(t, space.Apply, initials[i], res.Result.Actions))
	}
	assert.Empty(t, results[1].Result.Actions)
	assert.Len(t, results[4].Result.Actions, 1)
}

func TestSolveAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	solver := search.NewBreadthFirst[int, string, int](numberSpace{target: 1 << 20})
	results, err := search.SolveAll[int, string](ctx, solver, []int{1, 2})
	assert.ErrorIs(t, err, context.Canceled)
	for _, res := range results {
		assert.Empty(t, res.Result.Actions)
	}
}
