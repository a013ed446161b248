package allocator

import "container/heap"

// Heap is a min-heap of active Flows ordered by ReleaseAt, the same
// lazy-ordering discipline lvlath/dijkstra uses for its distance queue.
// Unlike Dijkstra's queue there is no "stale entry" concept here: every
// pushed Flow is eventually popped exactly once by Free.
type Heap struct {
	items flowPQ
}

// NewHeap returns an empty, ready-to-use active-flow heap.
func NewHeap() *Heap {
	h := &Heap{items: make(flowPQ, 0)}
	heap.Init(&h.items)
	return h
}

// Len reports the number of active flows.
func (h *Heap) Len() int { return h.items.Len() }

// push adds f to the heap.
func (h *Heap) push(f Flow) { heap.Push(&h.items, f) }

// peekReleaseAt returns the smallest ReleaseAt in the heap and whether the
// heap is non-empty.
func (h *Heap) peekReleaseAt() (float64, bool) {
	if h.items.Len() == 0 {
		return 0, false
	}
	return h.items[0].ReleaseAt, true
}

// popIfDue pops and returns the minimum-ReleaseAt flow iff its ReleaseAt is
// <= now.
func (h *Heap) popIfDue(now float64) (Flow, bool) {
	if h.items.Len() == 0 {
		return Flow{}, false
	}
	if h.items[0].ReleaseAt > now {
		return Flow{}, false
	}
	return heap.Pop(&h.items).(Flow), true
}

// flowPQ implements container/heap.Interface over Flow values.
type flowPQ []Flow

func (pq flowPQ) Len() int            { return len(pq) }
func (pq flowPQ) Less(i, j int) bool  { return pq[i].ReleaseAt < pq[j].ReleaseAt }
func (pq flowPQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *flowPQ) Push(x interface{}) { *pq = append(*pq, x.(Flow)) }
func (pq *flowPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
