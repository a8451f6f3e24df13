package corotask

import (
	"container/heap"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSleepHeap_OrdersByWakeThenSeq(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var h sleepHeap

	heap.Push(&h, &sleepItem{wake: base.Add(2 * time.Second), seq: 1, id: packID(1, 1)})
	heap.Push(&h, &sleepItem{wake: base.Add(1 * time.Second), seq: 2, id: packID(1, 2)})
	heap.Push(&h, &sleepItem{wake: base.Add(1 * time.Second), seq: 1, id: packID(1, 3)})

	first := heap.Pop(&h).(*sleepItem)
	second := heap.Pop(&h).(*sleepItem)
	third := heap.Pop(&h).(*sleepItem)

	assert.Equal(t, packID(1, 3), first.id, "earlier wake, lower seq breaks the tie")
	assert.Equal(t, packID(1, 2), second.id, "same wake, later seq loses the tie")
	assert.Equal(t, packID(1, 1), third.id, "latest wake pops last")
}

func TestSleepHeap_TombstonedEntriesSweepAway(t *testing.T) {
	sched := New(WithClock(newFakeClock()))
	sched.pushSleeping(packID(1, 1), sched.clock.Now().Add(time.Second))
	sched.pushSleeping(packID(1, 2), sched.clock.Now().Add(2*time.Second))

	sched.tombstoneSleeping(packID(1, 1))

	wake, ok := sched.nextWake()
	assert.True(t, ok)
	assert.Equal(t, sched.clock.Now().Add(2*time.Second), wake)
}
