package observability

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/search"
)

// countSpace counts upwards from its initial state by one or two.
type countSpace struct{ target int }

func (s countSpace) Key(state int) int { return state }

func (s countSpace) IsFinal(state int) bool { return state == s.target }

func (s countSpace) Actions(state int) []int {
	if state > s.target {
		return nil
	}
	return []int{1, 2}
}

func (s countSpace) Apply(state, action int) int { return state + action }

func TestHooksRecordSolvedSearch(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := NewMetrics(reg)
	require.NoError(t, err)

	solver := search.NewBreadthFirst[int, int, int](countSpace{target: 6}, search.WithHooks(metrics.Hooks()))
	result, err := solver.Solve(t.Context(), 0)
	require.NoError(t, err)
	require.True(t, result.Found)

	strategy := string(search.KindBreadthFirst)
	assert.Equal(t, float64(result.Expanded), testutil.ToFloat64(metrics.expansions.WithLabelValues(strategy)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.searches.WithLabelValues(strategy, OutcomeSolved)))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.length))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.duration))
}

func TestHooksRecordFailures(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := NewMetrics(reg)
	require.NoError(t, err)

	solver := search.NewDepthFirst[int, int, int](countSpace{target: 50}, 3, search.WithHooks(metrics.Hooks()))
	_, err = solver.Solve(t.Context(), 0)
	require.ErrorIs(t, err, search.ErrDepthLimit)

	strategy := string(search.KindDepthFirst)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.searches.WithLabelValues(strategy, OutcomeDepthLimit)))
	assert.Equal(t, 0, testutil.CollectAndCount(metrics.length))
}

func TestNewMetricsRejectsDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewMetrics(reg)
	require.NoError(t, err)
	_, err = NewMetrics(reg)
	assert.Error(t, err)
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		found bool
		err   error
		want  string
	}{
		{true, nil, OutcomeSolved},
		{false, search.ErrNoSolution, OutcomeNoSolution},
		{false, fmt.Errorf("deal 7: %w", search.ErrDepthLimit), OutcomeDepthLimit},
		{false, search.ErrMemoryLimit, OutcomeMemoryLimit},
		{false, context.Canceled, OutcomeCancelled},
		{false, context.DeadlineExceeded, OutcomeCancelled},
		{false, errors.New("boom"), OutcomeError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Outcome(tt.found, tt.err), "%v", tt.err)
	}
}
