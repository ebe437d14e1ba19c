package search

import (
	"context"

	"golang.org/x/exp/constraints"

	"github.com/pdrpinto/search/internal/arena"
)

// BreadthFirst expands states in discovery order. The first path recorded to
// any state has the fewest actions, so returned solutions are shortest.
type BreadthFirst[StateType any, ActionType any, KeyType constraints.Ordered] struct {
	space   Space[StateType, ActionType, KeyType]
	options Options
}

func NewBreadthFirst[StateType any, ActionType any, KeyType constraints.Ordered](
	space Space[StateType, ActionType, KeyType],
	options ...Option,
) *BreadthFirst[StateType, ActionType, KeyType] {
	return &BreadthFirst[StateType, ActionType, KeyType]{space: space, options: newOptions(options)}
}

func (b *BreadthFirst[StateType, ActionType, KeyType]) Kind() Kind { return KindBreadthFirst }

// Solve runs the search to completion.
func (b *BreadthFirst[StateType, ActionType, KeyType]) Solve(
	ctx context.Context,
	initial StateType,
) (Result[StateType, ActionType], error) {
	return solve(b.start(ctx, initial))
}

// Stepper returns a search that advances one dequeued state per Step.
func (b *BreadthFirst[StateType, ActionType, KeyType]) Stepper(
	ctx context.Context,
	initial StateType,
) *Stepper[StateType, ActionType, KeyType] {
	return &Stepper[StateType, ActionType, KeyType]{run: b.start(ctx, initial)}
}

func (b *BreadthFirst[StateType, ActionType, KeyType]) start(
	ctx context.Context,
	initial StateType,
) *run[StateType, ActionType, KeyType] {
	return newRun[StateType, ActionType, KeyType](ctx, KindBreadthFirst, b.space, &breadthFirstFrontier[StateType, ActionType, KeyType]{}, b.options, initial)
}

// breadthFirstFrontier is a FIFO queue of handles.
type breadthFirstFrontier[StateType any, ActionType any, KeyType constraints.Ordered] struct {
	queue []arena.Handle
	head  int
}

func (f *breadthFirstFrontier[StateType, ActionType, KeyType]) seed(_ *run[StateType, ActionType, KeyType], root arena.Handle) {
	f.queue = append(f.queue, root)
}

func (f *breadthFirstFrontier[StateType, ActionType, KeyType]) len() int { return len(f.queue) - f.head }

func (f *breadthFirstFrontier[StateType, ActionType, KeyType]) governed() bool { return true }

func (f *breadthFirstFrontier[StateType, ActionType, KeyType]) pending() []arena.Handle {
	return f.queue[f.head:]
}

func (f *breadthFirstFrontier[StateType, ActionType, KeyType]) closed() []arena.Handle { return nil }

func (f *breadthFirstFrontier[StateType, ActionType, KeyType]) expand(r *run[StateType, ActionType, KeyType]) (arena.Handle, bool) {
	current := f.queue[f.head]
	f.head++
	// drop the consumed prefix once it dominates the backing array
	if f.head > 1024 && f.head*2 > len(f.queue) {
		f.queue = append(f.queue[:0], f.queue[f.head:]...)
		f.head = 0
	}

	r.current = current
	r.stats.expanded++
	state := r.nodes.Node(current).State
	for _, action := range r.space.Actions(state) {
		child, key := r.successor(state, action)
		handle, inserted := r.nodes.Insert(key, child, current, action)
		if !inserted {
			continue
		}
		// Goal test per successor: siblings after a goal are never generated.
		if r.space.IsFinal(child) {
			return handle, true
		}
		f.queue = append(f.queue, handle)
	}
	return arena.NoParent, false
}
