package corotask

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScenario1_InterleavedCounters reproduces spec.md §8 scenario 1
// verbatim: three tasks each print begin, yield once, then loop three times
// printing the iteration number and sleeping 100ms, then print end. main
// drives task 1 with a 150ms timeout, then task 2 with no timeout.
func TestScenario1_InterleavedCounters(t *testing.T) {
	var lines []string
	record := func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}

	clock := newFakeClock()
	sched := New(WithClock(clock))

	counter := func(n int) func(*Cursor) (Void, error) {
		return func(c *Cursor) (Void, error) {
			record("begin(%d)", n)
			c.Sleep(0)
			for i := 1; i <= 3; i++ {
				record("%d(%d)", i, n)
				c.Sleep(100 * time.Millisecond)
			}
			record("end(%d)", n)
			return Void{}, nil
		}
	}

	t1 := New(sched, counter(1))
	t2 := New(sched, counter(2))
	t3 := New(sched, counter(3))

	status := t1.WaitFor(150 * time.Millisecond)
	assert.Equal(t, StatusTimeout, status)

	t2.Wait()

	assert.Equal(t, []string{
		"begin(1)", "begin(2)", "begin(3)",
		"1(1)", "1(2)", "1(3)",
		"2(1)", "2(2)", "2(3)",
		"3(1)", "3(2)", "3(3)",
		"end(1)", "end(2)",
	}, lines)

	assert.True(t, t1.IsReady())
	assert.True(t, t2.IsReady())
	assert.False(t, t3.IsReady())
}

func fibAsync(s *Scheduler, n int) *Task[int] {
	return New(s, func(c *Cursor) (int, error) {
		if n < 2 {
			return n, nil
		}
		a, err := Await(c, fibAsync(s, n-1))
		if err != nil {
			return 0, err
		}
		b, err := Await(c, fibAsync(s, n-2))
		if err != nil {
			return 0, err
		}
		return a + b, nil
	})
}

// TestScenario2_RecursiveFib reproduces spec.md §8 scenario 2: recursive
// fib_async built from two successive Awaits on its sub-tasks.
func TestScenario2_RecursiveFib(t *testing.T) {
	sched := New()

	v5, err := fibAsync(sched, 5).Get()
	require.NoError(t, err)
	assert.Equal(t, 5, v5)

	v10, err := fibAsync(sched, 10).Get()
	require.NoError(t, err)
	assert.Equal(t, 55, v10)

	v15, err := fibAsync(sched, 15).Get()
	require.NoError(t, err)
	assert.Equal(t, 610, v15)
}

// TestScenario3_ImmediateReturn reproduces spec.md §8 scenario 3.
func TestScenario3_ImmediateReturn(t *testing.T) {
	sched := New()
	task := New(sched, func(c *Cursor) (float64, error) { return 3.14159, nil })
	assert.False(t, task.IsReady())

	v, err := task.Get()
	require.NoError(t, err)
	assert.Equal(t, 3.14159, v)
}

// TestScenario4_WhenAllMixedTypes reproduces spec.md §8 scenario 4.
func TestScenario4_WhenAllMixedTypes(t *testing.T) {
	sched := New()
	taskInt := New(sched, func(c *Cursor) (int, error) { return 42, nil })
	funcAsync := New(sched, func(c *Cursor) (Void, error) {
		c.Sleep(10 * time.Millisecond)
		return Void{}, nil
	})
	taskString := New(sched, func(c *Cursor) (string, error) { return "Hello", nil })

	all := WhenAllSkipMiddle(sched, taskInt, funcAsync, taskString)
	pair, err := all.Get()
	require.NoError(t, err)
	assert.Equal(t, 42, pair.A)
	assert.Equal(t, "Hello", pair.B)
}

// TestScenario5_WhenAnyByValue reproduces spec.md §8 scenario 5.
func TestScenario5_WhenAnyByValue(t *testing.T) {
	sched := New()
	sleepy := New(sched, func(c *Cursor) (Void, error) {
		c.Sleep(24 * time.Hour)
		return Void{}, nil
	})
	five := New(sched, func(c *Cursor) (int, error) {
		c.Sleep(5 * time.Millisecond)
		return 5, nil
	})
	goodbye := New(sched, func(c *Cursor) (string, error) { return "Good-bye", nil })

	any := WhenAny3(sched, sleepy, five, goodbye)
	result, err := any.Get()
	require.NoError(t, err)
	assert.Equal(t, 2, result.Index)
	assert.Equal(t, "Good-bye", result.C)
	assert.False(t, sleepy.IsValid())
	assert.False(t, five.IsValid())
}

// TestScenario6_DestructionMidSleep reproduces spec.md §8 scenario 6.
func TestScenario6_DestructionMidSleep(t *testing.T) {
	clock := newFakeClock()
	sched := New(WithClock(clock))

	resumedAfterSleep := false
	task := New(sched, func(c *Cursor) (Void, error) {
		c.Sleep(10 * time.Second)
		resumedAfterSleep = true
		return Void{}, nil
	})

	require.NoError(t, sched.RunUntil(clock.Now().Add(time.Millisecond), nil))
	assert.False(t, task.IsReady())

	task.Destroy()

	clock.Advance(20 * time.Second)
	require.NoError(t, sched.RunUntil(clock.Now(), nil))

	assert.False(t, resumedAfterSleep, "destroyed task must never be resumed again")
	assert.False(t, task.IsValid())
}
