package search

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// BatchResult is the outcome of one instance solved by SolveAll.
type BatchResult[StateType any, ActionType any] struct {
	Index  int
	Result Result[StateType, ActionType]
	Err    error
}

// SolveAll solves independent initial states on a pool of worker goroutines.
// Every instance is still searched single-threaded by one worker; only whole
// instances run in parallel. Results are returned in input order. The
// returned error is non-nil only when ctx is cancelled, per-instance failures
// are reported in BatchResult.Err.
func SolveAll[StateType any, ActionType any](
	contextObject context.Context,
	solver Solver[StateType, ActionType],
	initials []StateType,
	options ...Option,
) ([]BatchResult[StateType, ActionType], error) {
	searchOptions := newOptions(options)
	results := make([]BatchResult[StateType, ActionType], len(initials))

	group, groupContext := errgroup.WithContext(contextObject)
	group.SetLimit(searchOptions.NumberOfWorkers)
	for i, initial := range initials {
		group.Go(func() error {
			result, err := solver.Solve(groupContext, initial)
			results[i] = BatchResult[StateType, ActionType]{Index: i, Result: result, Err: err}
			return nil
		})
	}
	_ = group.Wait()
	return results, contextObject.Err()
}
