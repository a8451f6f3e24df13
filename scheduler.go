package corotask

import (
	"container/heap"
	"sync/atomic"
	"time"
)

// noDeadline is the sentinel meaning "no deadline" wherever a deadline
// parameter is a time.Time: the zero value, since no caller has a legitimate
// reason to schedule a deadline at the zero instant.
var noDeadline time.Time

// Focus lets a caller identify a specific task for the driver to prioritize
// exiting on, per spec.md §4.5's optional focus parameter. *Task[T]
// implements it for every T; a nil Focus means "no focus".
type Focus interface {
	focusID() taskID
}

func (t *Task[T]) focusID() taskID { return t.id }

func focusIDOf(f Focus) taskID {
	if f == nil {
		return nullTaskID
	}
	return f.focusID()
}

// Scheduler holds the process-wide scheduling state described in spec.md
// §3: the ready deque, the sleeping multimap, the waiters multimap, and the
// pending-count map, plus the registry that resolves task IDs back to
// frames. A Scheduler is not safe for concurrent use from more than one
// logical caller at a time; see the driving guard in driver.go.
type Scheduler struct {
	registry *registry
	clock    Clock
	logger   Logger
	metrics  *Metrics

	parkGranularity time.Duration

	ready     []readyEntry
	readyHead int
	readyLive int

	sleeping sleepHeap
	seq      uint64

	waiters      map[taskID][]taskID
	pendingCount map[taskID]uint

	driving atomic.Bool
	closed  bool
}

type readyEntry struct {
	id         taskID
	tombstoned bool
}

// New constructs a Scheduler. With no options, matches the documented
// defaults of spec.md §6: an implementation-chosen ready capacity hint and a
// zero park granularity (always park when idle and a sleeper exists).
func New(opts ...Option) *Scheduler {
	cfg := resolveOptions(opts)
	s := &Scheduler{
		registry:        newRegistry(),
		clock:           cfg.clock,
		logger:          cfg.logger,
		parkGranularity: cfg.driverParkGranularity,
		waiters:         make(map[taskID][]taskID),
		pendingCount:    make(map[taskID]uint),
	}
	if cfg.initialReadyCapacity > 0 {
		s.ready = make([]readyEntry, 0, cfg.initialReadyCapacity)
	}
	if cfg.metricsEnabled {
		s.metrics = &Metrics{}
	}
	return s
}

// Close marks s closed: subsequent RunUntil/RunFor calls return
// ErrSchedulerClosed without driving. Tasks already registered simply never
// make further progress; Close does not destroy them.
func (s *Scheduler) Close() error {
	s.closed = true
	return nil
}

func (s *Scheduler) onTaskCreated(id taskID) {
	s.pushReady(id)
	s.noteTaskCreated()
	s.logger.Debug().Int("task", int(id)).Log("task created")
}

// --- ready deque ---

func (s *Scheduler) pushReady(id taskID) {
	s.ready = append(s.ready, readyEntry{id: id})
	s.readyLive++
}

func (s *Scheduler) readyEmpty() bool {
	return s.readyLive == 0
}

// popReady returns the front live entry of ready, skipping and discarding
// tombstoned entries as it goes (lazy purge on traversal, per spec.md §3's
// "ready" definition).
func (s *Scheduler) popReady() (taskID, bool) {
	for s.readyHead < len(s.ready) {
		e := s.ready[s.readyHead]
		s.readyHead++
		if !e.tombstoned {
			s.readyLive--
			if s.readyHead > 256 && s.readyHead*2 > len(s.ready) {
				s.compactReady()
			}
			return e.id, true
		}
	}
	s.ready = s.ready[:0]
	s.readyHead = 0
	return nullTaskID, false
}

func (s *Scheduler) compactReady() {
	s.ready = append(s.ready[:0], s.ready[s.readyHead:]...)
	s.readyHead = 0
}

func (s *Scheduler) tombstoneReady(id taskID) {
	for i := s.readyHead; i < len(s.ready); i++ {
		if s.ready[i].id == id && !s.ready[i].tombstoned {
			s.ready[i].tombstoned = true
			s.readyLive--
		}
	}
}

// --- sleeping min-heap ---

func (s *Scheduler) sweepSleeping() {
	for len(s.sleeping) > 0 && s.sleeping[0].tombstoned {
		heap.Pop(&s.sleeping)
	}
}

func (s *Scheduler) nextWake() (time.Time, bool) {
	s.sweepSleeping()
	if len(s.sleeping) == 0 {
		return time.Time{}, false
	}
	return s.sleeping[0].wake, true
}

func (s *Scheduler) pushSleeping(id taskID, wake time.Time) {
	s.seq++
	heap.Push(&s.sleeping, &sleepItem{wake: wake, seq: s.seq, id: id})
	s.noteSleepRegistered()
}

// drainDueSleepers moves every sleeper whose wake time has arrived into
// ready, in wake-time then insertion order (the heap pop order already
// gives this).
func (s *Scheduler) drainDueSleepers(now time.Time) {
	s.sweepSleeping()
	for len(s.sleeping) > 0 && !s.sleeping[0].wake.After(now) {
		item := heap.Pop(&s.sleeping).(*sleepItem)
		if !item.tombstoned {
			s.pushReady(item.id)
		}
		s.sweepSleeping()
	}
}

func (s *Scheduler) tombstoneSleeping(id taskID) {
	for _, item := range s.sleeping {
		if item.id == id {
			item.tombstoned = true
		}
	}
}

func (s *Scheduler) parkUntil(wake, deadline time.Time) {
	target := wake
	if !deadline.IsZero() && deadline.Before(target) {
		target = deadline
	}
	if s.parkGranularity > 0 && target.Sub(s.clock.Now()) < s.parkGranularity {
		return
	}
	s.clock.SleepUntil(target)
}

// --- waiters / pending_count ---

func (s *Scheduler) registerWait(awaiter, awaited taskID) {
	s.waiters[awaited] = append(s.waiters[awaited], awaiter)
	s.pendingCount[awaiter]++
	s.noteWaitRegistered()
}

func (s *Scheduler) removeWaiter(awaited, waiter taskID) {
	list := s.waiters[awaited]
	for i, w := range list {
		if w == waiter {
			list[i] = nullTaskID
		}
	}
}

// completeWaiters decrements pending_count for every registered waiter of
// id and re-enqueues those that reach zero, per spec.md §4.5 step 5.
func (s *Scheduler) completeWaiters(id taskID) {
	for _, w := range s.waiters[id] {
		if w == nullTaskID {
			continue
		}
		if s.pendingCount[w] == 0 {
			continue
		}
		s.pendingCount[w]--
		if s.pendingCount[w] == 0 {
			delete(s.pendingCount, w)
			s.pushReady(w)
		}
	}
	delete(s.waiters, id)
}

// destroyTask purges id from every scheduler index and releases its frame.
// Idempotent. If id had not yet completed, its registered waiters are woken
// with a CoroutineFailure wrapping ErrTaskDestroyed rather than left to hang
// forever, per SPEC_FULL.md §9 decision 1.
func (s *Scheduler) destroyTask(state *taskState, id taskID) {
	if state.destroyed {
		return
	}
	state.destroyed = true
	if !state.done {
		state.done = true
		state.destroyedErr = &CoroutineFailure{Cause: ErrTaskDestroyed}
		s.completeWaiters(id)
	}
	if state.awaiting != nullTaskID {
		s.removeWaiter(state.awaiting, id)
		delete(s.pendingCount, id)
		state.awaiting = nullTaskID
	}
	s.tombstoneReady(id)
	s.tombstoneSleeping(id)
	delete(s.waiters, id)
	delete(s.pendingCount, id)
	s.registry.release(id)
	s.noteTaskDestroyed()
	s.logger.Debug().Int("task", int(id)).Log("task destroyed")
}
