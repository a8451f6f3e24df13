package corotask

import (
	"fmt"
	"time"
)

// yieldKind identifies what a task body did the last time it held the baton.
type yieldKind int

const (
	yieldSleep yieldKind = iota
	yieldWait
	yieldDone
)

// yieldMsg is sent by a task body goroutine to hand the baton back to
// whichever goroutine is driving, describing what happened.
type yieldMsg struct {
	kind  yieldKind
	wake  time.Time
	await taskID
}

// taskState is the untyped half of a task frame: everything the scheduler's
// indices (ready/sleeping/waiters) need to resume a frame without knowing
// its result type T. The typed half lives in Task[T] and its resultCell[T].
//
// Exactly one goroutine is ever running on behalf of a taskState at a time:
// either it is blocked on <-resume (parked, not yet its turn), or it is the
// single goroutine currently "driving" and about to send on yield. The
// resume/yield channels are unbuffered, so each send is a synchronous baton
// handoff — this is what lets task bodies run on their own goroutines while
// still reproducing single-threaded, non-preemptive semantics.
type taskState struct {
	sched  *Scheduler
	id     taskID
	resume chan struct{}
	yield  chan yieldMsg

	done      bool
	destroyed bool

	// awaiting is the id of the task this one last registered a wait on, or
	// nullTaskID. Tracked so destroying a waiter can remove it from the
	// awaited task's waiters list instead of leaving a dangling entry.
	awaiting taskID

	// destroyedErr is set when the frame is torn down before it completed
	// naturally (see Scheduler.destroyTask). Waiters observe it instead of
	// hanging forever, per SPEC_FULL.md §9 decision 1.
	destroyedErr error
}

// Cursor is the suspension hook passed into every task body. It is the only
// way a body may legally suspend itself; per spec.md §4.4 the operands it
// recognizes are a duration, an integer count of milliseconds, or another
// task handle (via the package-level Await function, since Go methods
// cannot carry their own type parameters).
type Cursor struct {
	state *taskState
}

// Sleep suspends the current task body until at least d has elapsed. A
// non-positive duration is a pure yield: the body is re-enqueued at the back
// of ready without registering a timer.
func (c *Cursor) Sleep(d time.Duration) {
	if d <= 0 {
		c.park(yieldMsg{kind: yieldSleep})
		return
	}
	c.park(yieldMsg{kind: yieldSleep, wake: c.state.sched.clock.Now().Add(d)})
}

// SleepMS suspends for n milliseconds, interpreting the unsigned-integer
// yield operand of spec.md §4.4.
func (c *Cursor) SleepMS(n int64) {
	c.Sleep(time.Duration(n) * time.Millisecond)
}

func (c *Cursor) park(msg yieldMsg) {
	c.state.yield <- msg
	<-c.state.resume
}

// Await suspends the current task body until t completes, then returns its
// result. It is the idiomatic-Go realization of "await another task handle"
// from spec.md §4.4: a package-level generic function, since a method
// cannot introduce its own type parameter.
//
// Awaiting an already-ready handle is fast-pathed per spec.md §4.5's
// tie-break note: the value is delivered immediately, with no suspension.
func Await[T any](c *Cursor, t *Task[T]) (T, error) {
	if t == nil {
		panic(violation("Await", "nil task"))
	}
	if t.state.destroyedErr != nil {
		var zero T
		return zero, t.state.destroyedErr
	}
	if !t.IsValid() {
		panic(violation("Await", "awaited handle is not valid"))
	}
	if t.state.done {
		return t.Get()
	}
	c.state.yield <- yieldMsg{kind: yieldWait, await: t.id}
	<-c.state.resume
	return t.Get()
}

// Task is the public, typed handle over a task frame, per spec.md §4.3. It
// exclusively owns one coroutine frame and a one-shot result cell; the zero
// value is not usable, Tasks are only constructed via New.
type Task[T any] struct {
	sched *Scheduler
	id    taskID
	state *taskState
	cell  *resultCell[T]
}

// New creates a task from body and pushes it onto the scheduler's ready
// queue. Per spec.md's mandatory-initial-suspend rule, the body does not run
// at all until the scheduler resumes it for the first time.
func New[T any](s *Scheduler, body func(*Cursor) (T, error)) *Task[T] {
	state := &taskState{
		sched:  s,
		resume: make(chan struct{}),
		yield:  make(chan yieldMsg),
	}
	id := s.registry.alloc(state)
	state.id = id

	cell := &resultCell[T]{}
	t := &Task[T]{sched: s, id: id, state: state, cell: cell}

	go runBody(state, cell, body)

	s.onTaskCreated(id)
	return t
}

func runBody[T any](state *taskState, cell *resultCell[T], body func(*Cursor) (T, error)) {
	<-state.resume // mandatory initial suspend

	cursor := &Cursor{state: state}
	result, err := callBody(cursor, body)

	if err != nil {
		cell.setError(&CoroutineFailure{Cause: err})
	} else {
		cell.setValue(result)
	}
	state.done = true
	state.yield <- yieldMsg{kind: yieldDone}
}

// callBody recovers ordinary panics from a task body into a CoroutineFailure
// (per spec.md §7, a failure never crosses the task boundary except through
// the result cell), while letting a *ContractViolation panic continue
// unwinding — contract violations are programming errors in the scheduler
// or its caller, not failures belonging to the coroutine's own result.
func callBody[T any](c *Cursor, body func(*Cursor) (T, error)) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			if cv, ok := r.(*ContractViolation); ok {
				panic(cv)
			}
			err = fmt.Errorf("corotask: task body panicked: %v", r)
		}
	}()
	return body(c)
}

// IsValid reports whether t owns a live frame whose result has not yet been
// consumed.
func (t *Task[T]) IsValid() bool {
	return !t.state.destroyed && !t.cell.taken
}

// IsReady reports whether t is valid and its frame has completed.
func (t *Task[T]) IsReady() bool {
	return t.IsValid() && t.state.done
}

// Wait blocks, driving the scheduler, until t completes or the scheduler has
// nothing left to run. On a closed scheduler it returns without driving.
func (t *Task[T]) Wait() {
	t.WaitUntil(noDeadline)
}

// WaitFor blocks, driving the scheduler, until t completes or rel elapses.
func (t *Task[T]) WaitFor(rel time.Duration) WaitStatus {
	return t.WaitUntil(t.sched.clock.Now().Add(rel))
}

// WaitUntil blocks, driving the scheduler focused on t, until t completes or
// the deadline passes.
func (t *Task[T]) WaitUntil(deadline time.Time) WaitStatus {
	if t.state.done {
		return StatusReady
	}
	t.sched.driveExternal("Task.WaitUntil", deadline, t.id)
	if t.state.done {
		return StatusReady
	}
	return StatusTimeout
}

// Get waits for t then consumes its result cell. After Get returns, t is no
// longer valid: calling Get again is a *ContractViolation.
func (t *Task[T]) Get() (T, error) {
	var zero T
	if t.state.destroyedErr != nil {
		return zero, t.state.destroyedErr
	}
	if t.cell.taken {
		panic(violation("Task.Get", "result already consumed"))
	}
	if t.state.destroyed {
		panic(violation("Task.Get", "handle is not valid"))
	}
	t.Wait()
	if t.state.destroyedErr != nil {
		return zero, t.state.destroyedErr
	}
	return t.cell.take()
}

// Destroy purges t from scheduler state and releases its frame. Idempotent.
func (t *Task[T]) Destroy() {
	t.sched.destroyTask(t.state, t.id)
}

// String implements fmt.Stringer for diagnostic output.
func (t *Task[T]) String() string {
	switch {
	case t.state.destroyed:
		return fmt.Sprintf("Task[%T](id=%d, destroyed)", *new(T), t.id)
	case t.state.done:
		return fmt.Sprintf("Task[%T](id=%d, ready)", *new(T), t.id)
	default:
		return fmt.Sprintf("Task[%T](id=%d, pending)", *new(T), t.id)
	}
}

// GoString implements fmt.GoStringer, matching String for %#v diagnostics.
func (t *Task[T]) GoString() string {
	return t.String()
}

// Void is the unit result type for tasks with no meaningful return value,
// the Go analogue of CoroAsync's Task<void> / a bare co_return.
type Void = struct{}
