package corotask

// Metrics holds the scheduler's lifecycle counters. They are only
// maintained when a Scheduler is constructed with WithMetrics(true); the
// zero value is returned otherwise. Unlike eventloop's Metrics, this trims
// the latency percentile estimator: all scheduler work happens on the
// single driving goroutine, so there is no concurrent-access story that
// would justify its synchronization or sampling machinery.
type Metrics struct {
	TasksCreated     uint64
	TasksResumed     uint64
	TasksCompleted   uint64
	TasksDestroyed   uint64
	SleepRegistered  uint64
	WaitRegistered   uint64
	DriverIterations uint64
	CombinatorPolls  uint64
}

// Metrics returns a snapshot of s's counters. Always safe to call; returns
// the zero value when metrics collection is disabled.
func (s *Scheduler) Metrics() Metrics {
	if s.metrics == nil {
		return Metrics{}
	}
	return *s.metrics
}

func (s *Scheduler) noteTaskCreated() {
	if s.metrics != nil {
		s.metrics.TasksCreated++
	}
}

func (s *Scheduler) noteTaskResumed() {
	if s.metrics != nil {
		s.metrics.TasksResumed++
	}
}

func (s *Scheduler) noteTaskCompleted() {
	if s.metrics != nil {
		s.metrics.TasksCompleted++
	}
}

func (s *Scheduler) noteTaskDestroyed() {
	if s.metrics != nil {
		s.metrics.TasksDestroyed++
	}
}

func (s *Scheduler) noteSleepRegistered() {
	if s.metrics != nil {
		s.metrics.SleepRegistered++
	}
}

func (s *Scheduler) noteWaitRegistered() {
	if s.metrics != nil {
		s.metrics.WaitRegistered++
	}
}

func (s *Scheduler) noteDriverIteration() {
	if s.metrics != nil {
		s.metrics.DriverIterations++
	}
}

func (s *Scheduler) noteCombinatorPoll() {
	if s.metrics != nil {
		s.metrics.CombinatorPolls++
	}
}
