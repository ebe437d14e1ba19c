package search

import (
	"container/heap"
	"context"

	"golang.org/x/exp/constraints"

	"github.com/pdrpinto/search/internal/arena"
)

// BestFirst always expands the open state with the lowest g+h, where g is the
// number of actions on the path that discovered it and h is the heuristic
// estimate. Without WithReopen a state's g is fixed at discovery and a closed
// state is never expanded again, so the solution is optimal only for a
// consistent heuristic.
type BestFirst[StateType any, ActionType any, KeyType constraints.Ordered] struct {
	space     Space[StateType, ActionType, KeyType]
	heuristic Heuristic[StateType]
	options   Options
}

// NewBestFirst creates a best-first search. A nil heuristic estimates zero
// everywhere, which turns the search into uniform-cost search.
func NewBestFirst[StateType any, ActionType any, KeyType constraints.Ordered](
	space Space[StateType, ActionType, KeyType],
	heuristic Heuristic[StateType],
	options ...Option,
) *BestFirst[StateType, ActionType, KeyType] {
	if heuristic == nil {
		heuristic = func(StateType) float64 { return 0 }
	}
	return &BestFirst[StateType, ActionType, KeyType]{space: space, heuristic: heuristic, options: newOptions(options)}
}

func (b *BestFirst[StateType, ActionType, KeyType]) Kind() Kind { return KindBestFirst }

func (b *BestFirst[StateType, ActionType, KeyType]) Solve(
	ctx context.Context,
	initial StateType,
) (Result[StateType, ActionType], error) {
	return solve(b.start(ctx, initial))
}

func (b *BestFirst[StateType, ActionType, KeyType]) Stepper(
	ctx context.Context,
	initial StateType,
) *Stepper[StateType, ActionType, KeyType] {
	return &Stepper[StateType, ActionType, KeyType]{run: b.start(ctx, initial)}
}

func (b *BestFirst[StateType, ActionType, KeyType]) start(
	ctx context.Context,
	initial StateType,
) *run[StateType, ActionType, KeyType] {
	front := &bestFirstFrontier[StateType, ActionType, KeyType]{
		heuristic:  b.heuristic,
		reopen:     b.options.Reopen,
		openSet:    make(priorityQueue, 0),
		openSetMap: make(map[arena.Handle]struct{}),
		closedSet:  make(map[arena.Handle]struct{}),
		estimates:  make(map[arena.Handle]float64),
	}
	heap.Init(&front.openSet)
	return newRun[StateType, ActionType, KeyType](ctx, KindBestFirst, b.space, front, b.options, initial)
}

type bestFirstFrontier[StateType any, ActionType any, KeyType constraints.Ordered] struct {
	heuristic Heuristic[StateType]
	reopen    bool

	// openSet may hold stale entries once reopening is enabled; openSetMap
	// is the authoritative open set.
	openSet    priorityQueue
	openSetMap map[arena.Handle]struct{}
	closedSet  map[arena.Handle]struct{}
	estimates  map[arena.Handle]float64
	sequence   int
}

func (f *bestFirstFrontier[StateType, ActionType, KeyType]) seed(r *run[StateType, ActionType, KeyType], root arena.Handle) {
	f.open(root, 0, f.heuristic(r.nodes.Node(root).State))
}

func (f *bestFirstFrontier[StateType, ActionType, KeyType]) open(h arena.Handle, g int, estimate float64) {
	f.estimates[h] = estimate
	f.openSetMap[h] = struct{}{}
	f.sequence++
	heap.Push(&f.openSet, &priorityQueueItem{
		Handle:   h,
		GScore:   g,
		FCost:    float64(g) + estimate,
		Sequence: f.sequence,
	})
}

func (f *bestFirstFrontier[StateType, ActionType, KeyType]) len() int { return len(f.openSetMap) }

func (f *bestFirstFrontier[StateType, ActionType, KeyType]) governed() bool { return true }

func (f *bestFirstFrontier[StateType, ActionType, KeyType]) pending() []arena.Handle {
	handles := make([]arena.Handle, 0, len(f.openSetMap))
	for h := range f.openSetMap {
		handles = append(handles, h)
	}
	return handles
}

func (f *bestFirstFrontier[StateType, ActionType, KeyType]) closed() []arena.Handle {
	handles := make([]arena.Handle, 0, len(f.closedSet))
	for h := range f.closedSet {
		handles = append(handles, h)
	}
	return handles
}

func (f *bestFirstFrontier[StateType, ActionType, KeyType]) expand(r *run[StateType, ActionType, KeyType]) (arena.Handle, bool) {
	var currentItem *priorityQueueItem
	for {
		currentItem = heap.Pop(&f.openSet).(*priorityQueueItem)
		if _, isOpen := f.openSetMap[currentItem.Handle]; isOpen {
			break
		}
	}
	current := currentItem.Handle
	delete(f.openSetMap, current)
	f.closedSet[current] = struct{}{}
	r.current = current
	r.stats.expanded++

	state := r.nodes.Node(current).State
	g := currentItem.GScore
	for _, action := range r.space.Actions(state) {
		child, key := r.successor(state, action)
		if existing, known := r.nodes.Lookup(key); known {
			if f.reopen && g+1 < r.nodes.Node(existing).Depth {
				f.reopenState(r, existing, key, child, current, action, g+1)
			}
			continue
		}

		handle, _ := r.nodes.Insert(key, child, current, action)
		if r.space.IsFinal(child) {
			return handle, true
		}
		f.open(handle, g+1, f.heuristic(child))
	}
	return arena.NoParent, false
}

// reopenState records child as a fresh node for key, reached from parent at
// cost g, and opens it in place of existing. Nodes discovered through
// existing keep their provenance.
func (f *bestFirstFrontier[StateType, ActionType, KeyType]) reopenState(
	r *run[StateType, ActionType, KeyType],
	existing arena.Handle,
	key KeyType,
	child StateType,
	parent arena.Handle,
	action ActionType,
	g int,
) {
	estimate := f.estimates[existing]
	delete(f.openSetMap, existing)
	delete(f.closedSet, existing)
	delete(f.estimates, existing)

	h := r.nodes.Supersede(key, child, parent, action)
	f.open(h, g, estimate)
}
