package corotask

import "time"

// sleepItem is one entry of the sleeping multimap, grounded on
// eventloop/loop.go's timerHeap. seq breaks ties between equal wake times so
// sleepers woken at the same instant dispatch in insertion order, per
// spec.md §4.5's ordering guarantee.
type sleepItem struct {
	wake       time.Time
	seq        uint64
	id         taskID
	tombstoned bool
}

// sleepHeap is a container/heap min-heap ordered by (wake, seq).
type sleepHeap []*sleepItem

func (h sleepHeap) Len() int { return len(h) }

func (h sleepHeap) Less(i, j int) bool {
	if h[i].wake.Equal(h[j].wake) {
		return h[i].seq < h[j].seq
	}
	return h[i].wake.Before(h[j].wake)
}

func (h sleepHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *sleepHeap) Push(x any) {
	*h = append(*h, x.(*sleepItem))
}

func (h *sleepHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}
