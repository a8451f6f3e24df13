package corotask

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriver_FIFOWithinSameInstant(t *testing.T) {
	sched := New(WithClock(newFakeClock()))
	var order []int

	for i := 1; i <= 3; i++ {
		n := i
		New(sched, func(c *Cursor) (Void, error) {
			order = append(order, n)
			return Void{}, nil
		})
	}

	require.NoError(t, sched.RunUntil(noDeadline, nil))
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestDriver_TombstonedEntryIsSkippedAndPurgesBookkeeping(t *testing.T) {
	sched := New(WithClock(newFakeClock()))

	target := New(sched, func(c *Cursor) (int, error) {
		c.Sleep(time.Hour)
		return 1, nil
	})
	waiter := New(sched, func(c *Cursor) (int, error) {
		return Await(c, target)
	})

	// Drive one step so the waiter registers pending_count against target,
	// then destroy target and resume the waiter; the driver must purge the
	// stale waiters/pending_count bookkeeping rather than hang.
	require.NoError(t, sched.RunUntil(sched.clock.Now().Add(time.Millisecond), nil))
	target.Destroy()

	waiter.Wait()
	_, err := waiter.Get()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTaskDestroyed)
	assert.Empty(t, sched.waiters)
	assert.Empty(t, sched.pendingCount)
}

func TestDriver_QuiescesWhenReadyEmptyAndNoEligibleSleeper(t *testing.T) {
	clock := newFakeClock()
	sched := New(WithClock(clock))

	task := New(sched, func(c *Cursor) (Void, error) {
		c.Sleep(time.Hour)
		return Void{}, nil
	})

	before := clock.Now()
	err := sched.RunUntil(before.Add(time.Millisecond), nil)
	require.NoError(t, err)
	assert.Equal(t, before, clock.Now(), "driver must not park past a deadline no sleeper can meet")
	assert.False(t, task.IsReady())
}

func TestDriver_ParkGranularitySkipsSubGranularityParks(t *testing.T) {
	// With a real clock, skipping the Clock.SleepUntil call below the
	// granularity threshold just turns the wait into a tight poll loop —
	// wall-clock time still passes, so the sleeper still wakes. This is the
	// scenario WithDriverParkGranularity documents: avoiding an OS-level
	// park for waits too short to be worth the syscall.
	sched := New(WithDriverParkGranularity(50 * time.Millisecond))

	task := New(sched, func(c *Cursor) (Void, error) {
		c.Sleep(5 * time.Millisecond)
		return Void{}, nil
	})

	status := task.WaitFor(time.Second)
	require.Equal(t, StatusReady, status)
}

func TestDriver_ClosedSchedulerRejectsFurtherDriving(t *testing.T) {
	sched := New(WithClock(newFakeClock()))
	require.NoError(t, sched.Close())
	err := sched.RunUntil(noDeadline, nil)
	assert.ErrorIs(t, err, ErrSchedulerClosed)
}

func TestDriver_FocusOnAlreadyDestroyedHandleReturnsImmediately(t *testing.T) {
	sched := New(WithClock(newFakeClock()))
	task := New(sched, func(c *Cursor) (int, error) {
		c.Sleep(time.Hour)
		return 1, nil
	})
	task.Destroy()

	done := make(chan struct{})
	go func() {
		_ = sched.RunUntil(sched.clock.Now().Add(time.Second), task)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunUntil focused on a released id must not hang")
	}
}
