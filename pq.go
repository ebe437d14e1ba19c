package search

import "github.com/pdrpinto/search/internal/arena"

type priorityQueueItem struct {
	Handle   arena.Handle
	GScore   int
	FCost    float64
	Sequence int
}

// priorityQueue orders open states by g+h, then by lower g, then by
// insertion order, so the expansion order is fully deterministic.
type priorityQueue []*priorityQueueItem

func (queue priorityQueue) Len() int { return len(queue) }
func (queue priorityQueue) Less(i, j int) bool {
	if queue[i].FCost != queue[j].FCost {
		return queue[i].FCost < queue[j].FCost
	}
	if queue[i].GScore != queue[j].GScore {
		return queue[i].GScore < queue[j].GScore
	}
	return queue[i].Sequence < queue[j].Sequence
}
func (queue priorityQueue) Swap(i, j int) { queue[i], queue[j] = queue[j], queue[i] }

func (queue *priorityQueue) Push(x any) {
	*queue = append(*queue, x.(*priorityQueueItem))
}

func (queue *priorityQueue) Pop() any {
	oldQueue := *queue
	n := len(oldQueue)
	item := oldQueue[n-1]
	oldQueue[n-1] = nil
	*queue = oldQueue[:n-1]
	return item
}
