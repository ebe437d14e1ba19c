package search

import "golang.org/x/exp/constraints"

// StepSnapshot exposes the per-iteration state of the search
type StepSnapshot[StateType any, ActionType any, KeyType constraints.Ordered] struct {
	// Current is the state selected by the last iteration.
	Current StateType
	// Frontier and Closed hold the keys of the open and expanded states,
	// sorted. Closed is only tracked by best-first search.
	Frontier   []KeyType
	Closed     []KeyType
	Discovered int
	Done       bool
	Found      bool
	Actions    []ActionType
	StepIndex  int
}

// Stepper advances a search one outer iteration at a time, for tracing and
// visualisation. Solve runs the same iterations without snapshots.
type Stepper[StateType any, ActionType any, KeyType constraints.Ordered] struct {
	run *run[StateType, ActionType, KeyType]
}

// Step advances the search by one iteration and returns a snapshot. Once the
// search is over every call returns the final snapshot and the search error,
// which is nil when a final state was found.
func (s *Stepper[StateType, ActionType, KeyType]) Step() (StepSnapshot[StateType, ActionType, KeyType], error) {
	s.run.step()
	return s.snapshot(), s.err()
}

// Done reports whether the search is over.
func (s *Stepper[StateType, ActionType, KeyType]) Done() bool { return s.run.done }

// Result returns the outcome, running the remaining iterations if needed.
func (s *Stepper[StateType, ActionType, KeyType]) Result() (Result[StateType, ActionType], error) {
	return solve(s.run)
}

func (s *Stepper[StateType, ActionType, KeyType]) err() error {
	if !s.run.done {
		return nil
	}
	return s.run.err
}

func (s *Stepper[StateType, ActionType, KeyType]) snapshot() StepSnapshot[StateType, ActionType, KeyType] {
	r := s.run
	snapshot := StepSnapshot[StateType, ActionType, KeyType]{
		Current:    r.nodes.Node(r.current).State,
		Frontier:   r.sortedKeys(r.frontier.pending()),
		Discovered: r.nodes.Len(),
		Done:       r.done,
		Found:      r.found,
		StepIndex:  r.steps,
	}
	if closed := r.frontier.closed(); closed != nil {
		snapshot.Closed = r.sortedKeys(closed)
	}
	if r.found {
		snapshot.Current = r.nodes.Node(r.goal).State
		snapshot.Actions = r.nodes.Actions(r.goal)
	}
	return snapshot
}
