package search

import (
	"context"

	"golang.org/x/exp/constraints"

	"github.com/pdrpinto/search/internal/arena"
)

// DepthFirst is a depth-limited depth-first search. The limit is the longest
// solution it may return: a state whose depth reaches the limit is popped but
// never expanded. A state is expanded at most once, through whichever path
// discovered it first, so solutions are neither shortest nor guaranteed to be
// found when a shallower route to a visited state exists.
type DepthFirst[StateType any, ActionType any, KeyType constraints.Ordered] struct {
	space   Space[StateType, ActionType, KeyType]
	limit   int
	options Options
}

// NewDepthFirst creates a depth-first search. A negative limit disables the bound.
func NewDepthFirst[StateType any, ActionType any, KeyType constraints.Ordered](
	space Space[StateType, ActionType, KeyType],
	limit int,
	options ...Option,
) *DepthFirst[StateType, ActionType, KeyType] {
	return &DepthFirst[StateType, ActionType, KeyType]{space: space, limit: limit, options: newOptions(options)}
}

func (d *DepthFirst[StateType, ActionType, KeyType]) Kind() Kind { return KindDepthFirst }

func (d *DepthFirst[StateType, ActionType, KeyType]) Limit() int { return d.limit }

func (d *DepthFirst[StateType, ActionType, KeyType]) Solve(
	ctx context.Context,
	initial StateType,
) (Result[StateType, ActionType], error) {
	return solve(d.start(ctx, initial))
}

func (d *DepthFirst[StateType, ActionType, KeyType]) Stepper(
	ctx context.Context,
	initial StateType,
) *Stepper[StateType, ActionType, KeyType] {
	return &Stepper[StateType, ActionType, KeyType]{run: d.start(ctx, initial)}
}

func (d *DepthFirst[StateType, ActionType, KeyType]) start(
	ctx context.Context,
	initial StateType,
) *run[StateType, ActionType, KeyType] {
	front := &depthFirstFrontier[StateType, ActionType, KeyType]{limit: d.limit}
	return newRun[StateType, ActionType, KeyType](ctx, KindDepthFirst, d.space, front, d.options, initial)
}

// depthFirstFrontier is a LIFO stack of handles.
type depthFirstFrontier[StateType any, ActionType any, KeyType constraints.Ordered] struct {
	limit int
	stack []arena.Handle
}

func (f *depthFirstFrontier[StateType, ActionType, KeyType]) seed(_ *run[StateType, ActionType, KeyType], root arena.Handle) {
	f.stack = append(f.stack, root)
}

func (f *depthFirstFrontier[StateType, ActionType, KeyType]) len() int { return len(f.stack) }

// The depth limit is the only bound on depth-first search.
func (f *depthFirstFrontier[StateType, ActionType, KeyType]) governed() bool { return false }

func (f *depthFirstFrontier[StateType, ActionType, KeyType]) pending() []arena.Handle { return f.stack }

func (f *depthFirstFrontier[StateType, ActionType, KeyType]) closed() []arena.Handle { return nil }

func (f *depthFirstFrontier[StateType, ActionType, KeyType]) expand(r *run[StateType, ActionType, KeyType]) (arena.Handle, bool) {
	current := f.stack[len(f.stack)-1]
	f.stack = f.stack[:len(f.stack)-1]
	r.current = current

	node := r.nodes.Node(current)
	if f.limit >= 0 && node.Depth >= f.limit {
		r.stats.pruned++
		return arena.NoParent, false
	}

	r.stats.expanded++
	state := node.State
	for _, action := range r.space.Actions(state) {
		child, key := r.successor(state, action)
		handle, inserted := r.nodes.Insert(key, child, current, action)
		if !inserted {
			continue
		}
		if r.space.IsFinal(child) {
			return handle, true
		}
		f.stack = append(f.stack, handle)
	}
	return arena.NoParent, false
}
