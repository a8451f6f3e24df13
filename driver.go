package corotask

import "time"

// RunUntil drives the scheduler until deadline passes, focus (if non-nil)
// completes, or the scheduler goes quiescent (ready is empty and no
// sleeper is eligible before deadline) — per spec.md §4.5.
func (s *Scheduler) RunUntil(deadline time.Time, focus Focus) error {
	return s.drive("Scheduler.RunUntil", deadline, focusIDOf(focus))
}

// RunFor is RunUntil with a deadline computed as clock.Now()+d.
func (s *Scheduler) RunFor(d time.Duration, focus Focus) error {
	return s.drive("Scheduler.RunFor", s.clock.Now().Add(d), focusIDOf(focus))
}

func (s *Scheduler) drive(op string, deadline time.Time, focus taskID) error {
	if s.closed {
		return ErrSchedulerClosed
	}
	s.driveExternal(op, deadline, focus)
	return nil
}

// driveExternal is the guarded entry point shared by RunUntil/RunFor and
// Task.Wait*/Get. It enforces the single-driving-goroutine invariant of
// spec.md §5 with a CAS on driving: a concurrent call from an unrelated
// goroutine fails fast with *ContractViolation.
//
// Awaiting another task from inside a running task body goes through
// Cursor.Await/Cursor.Sleep instead, which never calls back into this
// function — the suspending body hands control back to whichever goroutine
// is already driving via the resume/yield channel pair, so the existing
// driving loop continues servicing the whole scheduler, including the task
// that just suspended, without any nested entry here. A task body that
// instead calls Get/Wait directly on some other *Task, bypassing the
// Cursor, is treated the same as a call from any other goroutine: since Go
// has no cheap way to prove such a call is safely nested inside the current
// baton chain rather than a genuinely concurrent caller, it is rejected as
// a contract violation rather than silently risking a data race.
func (s *Scheduler) driveExternal(op string, deadline time.Time, focus taskID) {
	if s.closed {
		return
	}
	if !s.driving.CompareAndSwap(false, true) {
		panic(violation(op, "scheduler is already being driven by another goroutine"))
	}
	defer s.driving.Store(false)
	s.runLoop(deadline, focus)
}

// runLoop implements spec.md §4.5's algorithm verbatim. The caller must hold
// the driving guard.
func (s *Scheduler) runLoop(deadline time.Time, focus taskID) {
	noDL := deadline.IsZero()

	for {
		s.noteDriverIteration()

		// 1. Sleep sweep.
		s.sweepSleeping()
		if s.readyEmpty() {
			if wake, ok := s.nextWake(); ok && (noDL || !wake.After(deadline)) {
				s.parkUntil(wake, deadline)
			}
		}
		s.drainDueSleepers(s.clock.Now())

		// 2. Termination check.
		if s.focusDone(focus) {
			return
		}
		now := s.clock.Now()
		if !noDL && !now.Before(deadline) {
			return
		}
		if s.readyEmpty() {
			wake, ok := s.nextWake()
			if !ok || (!noDL && wake.After(deadline)) {
				return
			}
			continue
		}

		// 3. Pop.
		id, ok := s.popReady()
		if !ok {
			continue
		}
		state, live := s.registry.lookup(id)
		if !live || state.destroyed || state.done {
			delete(s.waiters, id)
			delete(s.pendingCount, id)
			continue
		}

		// 4. Resume. Clear suspended_this_step implicitly: it is derived
		// below from what the body actually yielded.
		state.resume <- struct{}{}
		s.noteTaskResumed()
		msg := <-state.yield

		// 5. Post-resume dispatch.
		if msg.kind == yieldDone {
			state.awaiting = nullTaskID
			s.noteTaskCompleted()
			s.completeWaiters(id)
			continue
		}

		suspendedThisStep := msg.kind == yieldWait || (msg.kind == yieldSleep && !msg.wake.IsZero())
		switch {
		case msg.kind == yieldWait:
			state.awaiting = msg.await
			s.registerWait(id, msg.await)
		case !msg.wake.IsZero():
			state.awaiting = nullTaskID
			s.pushSleeping(id, msg.wake)
		default:
			state.awaiting = nullTaskID
		}
		if !suspendedThisStep {
			s.pushReady(id)
		}

		// 6. Go to 1.
	}
}

func (s *Scheduler) focusDone(focus taskID) bool {
	if focus == nullTaskID {
		return false
	}
	state, ok := s.registry.lookup(focus)
	if !ok {
		return true
	}
	return state.done
}
