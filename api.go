package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/exp/constraints"
)

// Space describes an implicitly defined problem graph.
// StateType values are immutable; KeyType is their value key, so two states
// with equal keys are the same search node whatever path produced them.
type Space[StateType any, ActionType any, KeyType constraints.Ordered] interface {
	Key(state StateType) KeyType
	IsFinal(state StateType) bool
	// Actions lists the legal actions from state. The order decides which of
	// several equally good solutions is returned.
	Actions(state StateType) []ActionType
	// Apply must be pure and total for every action returned by Actions.
	Apply(state StateType, action ActionType) StateType
}

// Heuristic returns the estimated remaining cost from a state to a goal.
// It does not need to be admissible.
type Heuristic[StateType any] func(state StateType) float64

// Result contains the outcome of a search.
type Result[StateType any, ActionType any] struct {
	// Actions leads from the initial state to a final state. It is empty
	// whenever Found is false, and also when the initial state is final.
	Actions []ActionType
	// Path holds the states visited by Actions, initial and final included.
	Path       []StateType
	Found      bool
	Expanded   int
	Generated  int
	Discovered int
	Pruned     int
	Elapsed    time.Duration
}

// Solver is the contract shared by every strategy. Implementations keep no
// per-search state, so one Solver may serve concurrent Solve calls.
type Solver[StateType any, ActionType any] interface {
	Solve(ctx context.Context, initial StateType) (Result[StateType, ActionType], error)
}

// Strategy is a Solver that can also be driven one iteration at a time.
type Strategy[StateType any, ActionType any, KeyType constraints.Ordered] interface {
	Solver[StateType, ActionType]
	Stepper(ctx context.Context, initial StateType) *Stepper[StateType, ActionType, KeyType]
	Kind() Kind
}

var (
	ErrNoSolution  = errors.New("search: frontier exhausted without reaching a final state")
	ErrDepthLimit  = errors.New("search: no final state within the depth limit")
	ErrMemoryLimit = errors.New("search: memory limit exceeded")
)

// Kind names a search strategy.
type Kind string

const (
	KindBreadthFirst Kind = "breadth-first"
	KindDepthFirst   Kind = "depth-first"
	KindBestFirst    Kind = "best-first"
)

// ParseKind accepts the canonical names and the usual short aliases.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "breadth-first", "bfs":
		return KindBreadthFirst, nil
	case "depth-first", "dfs":
		return KindDepthFirst, nil
	case "best-first", "astar", "a*":
		return KindBestFirst, nil
	}
	return "", fmt.Errorf("search: unknown strategy %q", name)
}

// New builds the strategy named by kind. depthLimit is only used by
// depth-first search and heuristic only by best-first search.
func New[StateType any, ActionType any, KeyType constraints.Ordered](
	kind Kind,
	space Space[StateType, ActionType, KeyType],
	heuristic Heuristic[StateType],
	depthLimit int,
	options ...Option,
) (Strategy[StateType, ActionType, KeyType], error) {
	switch kind {
	case KindBreadthFirst:
		return NewBreadthFirst(space, options...), nil
	case KindDepthFirst:
		return NewDepthFirst(space, depthLimit, options...), nil
	case KindBestFirst:
		return NewBestFirst(space, heuristic, options...), nil
	}
	return nil, fmt.Errorf("search: unknown strategy %q", kind)
}
