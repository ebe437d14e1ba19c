package search

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"

	"github.com/pdrpinto/search/internal/arena"
)

// frontier is the strategy specific half of a search: it owns the
// discovered-but-unexpanded states and performs one outer iteration per call
// to expand.
type frontier[StateType any, ActionType any, KeyType constraints.Ordered] interface {
	seed(r *run[StateType, ActionType, KeyType], root arena.Handle)
	len() int
	expand(r *run[StateType, ActionType, KeyType]) (goal arena.Handle, found bool)
	pending() []arena.Handle
	closed() []arena.Handle
	governed() bool
}

type counters struct {
	expanded  int
	generated int
	pruned    int
}

// run is the state of one search invocation. It is owned by a single
// goroutine and never shared.
type run[StateType any, ActionType any, KeyType constraints.Ordered] struct {
	ctx      context.Context
	kind     Kind
	space    Space[StateType, ActionType, KeyType]
	nodes    *arena.Arena[StateType, ActionType, KeyType]
	frontier frontier[StateType, ActionType, KeyType]
	options  Options
	governor *governor
	logger   *slog.Logger

	stats   counters
	steps   int
	started time.Time
	elapsed time.Duration
	current arena.Handle

	done  bool
	found bool
	goal  arena.Handle
	err   error
}

func newRun[StateType any, ActionType any, KeyType constraints.Ordered](
	ctx context.Context,
	kind Kind,
	space Space[StateType, ActionType, KeyType],
	front frontier[StateType, ActionType, KeyType],
	options Options,
	initial StateType,
) *run[StateType, ActionType, KeyType] {
	logger := options.Logger.With("strategy", string(kind))
	r := &run[StateType, ActionType, KeyType]{
		ctx:      ctx,
		kind:     kind,
		space:    space,
		nodes:    arena.New[StateType, ActionType, KeyType](),
		frontier: front,
		options:  options,
		logger:   logger,
		started:  time.Now(),
	}
	if front.governed() {
		r.governor = newGovernor(options, logger)
	}

	root := r.nodes.Root(space.Key(initial), initial)
	r.current = root
	logger.Info("search started", "memory_limit", options.MemoryLimit)

	// The initial state is goal-checked once, before any expansion.
	if space.IsFinal(initial) {
		r.finish(root, nil)
		return r
	}
	front.seed(r, root)
	return r
}

// step performs one outer iteration and reports whether the search is over.
func (r *run[StateType, ActionType, KeyType]) step() bool {
	if r.done {
		return true
	}
	if err := r.ctx.Err(); err != nil {
		r.finish(arena.NoParent, err)
		return true
	}
	if r.frontier.len() == 0 {
		if r.stats.pruned > 0 {
			r.finish(arena.NoParent, ErrDepthLimit)
		} else {
			r.finish(arena.NoParent, ErrNoSolution)
		}
		return true
	}
	if r.governor != nil && r.governor.exceeded(r.steps) {
		r.finish(arena.NoParent, ErrMemoryLimit)
		return true
	}

	r.steps++
	goal, found := r.frontier.expand(r)
	if hook := r.options.Hooks.OnExpand; hook != nil {
		hook(ExpandEvent{
			Kind:       r.kind,
			Step:       r.steps,
			Depth:      r.nodes.Node(r.current).Depth,
			Frontier:   r.frontier.len(),
			Discovered: r.nodes.Len(),
		})
	}
	if r.options.ProgressInterval > 0 && r.steps%r.options.ProgressInterval == 0 {
		r.logger.Debug("search progress",
			"steps", r.steps,
			"expanded", r.stats.expanded,
			"frontier", r.frontier.len(),
			"discovered", r.nodes.Len(),
		)
	}
	if found {
		r.finish(goal, nil)
	}
	return r.done
}

// successor applies action to state and counts the generated successor.
func (r *run[StateType, ActionType, KeyType]) successor(state StateType, action ActionType) (StateType, KeyType) {
	r.stats.generated++
	child := r.space.Apply(state, action)
	return child, r.space.Key(child)
}

func (r *run[StateType, ActionType, KeyType]) finish(goal arena.Handle, err error) {
	r.done = true
	r.err = err
	r.elapsed = time.Since(r.started)
	length := 0
	if err == nil {
		r.found = true
		r.goal = goal
		length = len(r.nodes.Trail(goal)) - 1
		r.logger.Info("search finished",
			"found", true,
			"length", length,
			"expanded", r.stats.expanded,
			"discovered", r.nodes.Len(),
			"elapsed", r.elapsed,
		)
	} else {
		r.logger.Info("search finished",
			"found", false,
			"error", err,
			"expanded", r.stats.expanded,
			"discovered", r.nodes.Len(),
			"elapsed", r.elapsed,
		)
	}
	if hook := r.options.Hooks.OnFinish; hook != nil {
		hook(FinishEvent{
			Kind:       r.kind,
			Found:      r.found,
			Err:        err,
			Length:     length,
			Expanded:   r.stats.expanded,
			Generated:  r.stats.generated,
			Discovered: r.nodes.Len(),
			Pruned:     r.stats.pruned,
			Elapsed:    r.elapsed,
		})
	}
}

func (r *run[StateType, ActionType, KeyType]) result() (Result[StateType, ActionType], error) {
	result := Result[StateType, ActionType]{
		Found:      r.found,
		Expanded:   r.stats.expanded,
		Generated:  r.stats.generated,
		Discovered: r.nodes.Len(),
		Pruned:     r.stats.pruned,
		Elapsed:    r.elapsed,
	}
	if r.found {
		result.Actions = r.nodes.Actions(r.goal)
		result.Path = r.nodes.States(r.goal)
	}
	return result, r.err
}

func (r *run[StateType, ActionType, KeyType]) sortedKeys(handles []arena.Handle) []KeyType {
	keys := make([]KeyType, 0, len(handles))
	for _, h := range handles {
		keys = append(keys, r.nodes.Node(h).Key)
	}
	slices.Sort(keys)
	return keys
}

func solve[StateType any, ActionType any, KeyType constraints.Ordered](
	r *run[StateType, ActionType, KeyType],
) (Result[StateType, ActionType], error) {
	for !r.step() {
	}
	return r.result()
}
