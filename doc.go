// Package corotask implements a single-threaded cooperative task scheduler
// built on emulated stackless coroutines.
//
// # Architecture
//
// A [Scheduler] holds the ready deque, the sleeping min-heap, and the
// waiters/pending-count maps described by the task model. Application code
// authors coroutine bodies as ordinary Go functions of signature
// func(*Cursor) (T, error), registers them with [New], and gets back a
// [Task] handle. [Scheduler.RunUntil] / [Scheduler.RunFor] drive the
// scheduler; [Task.Wait], [Task.WaitFor], [Task.WaitUntil], and [Task.Get]
// drive it focused on a single handle.
//
// Go has no native stackless, resumable function type, so each task body
// runs on its own goroutine, handed a baton (a pair of unbuffered channels)
// so that only one goroutine is ever actually executing scheduler-adjacent
// code at a time — the scheduler loop itself, or exactly one resumed body.
// This reproduces single-threaded, non-preemptive semantics using ordinary
// channels rather than real parallelism.
//
// # Suspension
//
// A task body suspends only by calling a method on its [Cursor]:
// [Cursor.Sleep] / [Cursor.SleepMS] to wait for wall-clock time, or the
// package-level [Await] to wait for another [Task]. No other call
// suspends; suspension points are explicit.
//
// # Combinators
//
// [WhenAll] and [WhenAny] (plus their fixed-arity, heterogeneously-typed
// counterparts WhenAll2/WhenAll3 and WhenAny2/WhenAny3) are themselves
// authored as ordinary tasks, polling their arguments with zero-duration
// yields, and so exercise the same scheduler contracts as user code.
//
// # Usage
//
//	sched := corotask.New()
//
//	task := corotask.New(sched, func(c *corotask.Cursor) (int, error) {
//	    c.Sleep(100 * time.Millisecond)
//	    return 42, nil
//	})
//
//	v, err := task.Get()
package corotask
