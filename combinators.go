package corotask

// Combinators are authored as ordinary tasks over Cursor.Sleep/Task.IsReady,
// per spec.md §4.6: they poll with zero-duration yields and therefore
// respect every scheduler invariant without special-casing in the driver.

// WhenAll returns a task that completes once every argument has completed,
// collecting their results in argument order. Arguments are always polled,
// never destroyed by the combinator — ownership stays with the caller
// (unlike WhenAny, nothing here is "the loser").
//
// Per SPEC_FULL.md §9 decision 3, zero arguments yields an immediately-ready
// empty slice on the combinator's first resume.
func WhenAll[T any](s *Scheduler, tasks ...*Task[T]) *Task[[]T] {
	return New(s, func(c *Cursor) ([]T, error) {
		if len(tasks) == 0 {
			return []T{}, nil
		}
		pollUntil(c, s, func() bool {
			for _, t := range tasks {
				if !t.IsReady() {
					return false
				}
			}
			return true
		})
		results := make([]T, len(tasks))
		for i, t := range tasks {
			v, err := t.Get()
			if err != nil {
				return nil, err
			}
			results[i] = v
		}
		return results, nil
	})
}

// AnyResult identifies which argument of a WhenAny/WhenAnyRef completed
// first, carrying its value. Index is the zero-based position among the
// arguments passed to the combinator.
type AnyResult[T any] struct {
	Index int
	Value T
}

// WhenAny returns a task that completes as soon as any one argument
// completes, by-value: the combinator takes ownership of the arguments and
// destroys every task that didn't win, per spec.md §8 scenario 5 ("Remaining
// arguments are dropped without running to completion"). Use WhenAnyRef to
// leave the losing tasks running.
func WhenAny[T any](s *Scheduler, tasks ...*Task[T]) *Task[AnyResult[T]] {
	return New(s, func(c *Cursor) (AnyResult[T], error) {
		idx := pollAny(c, s, tasks)
		for i, t := range tasks {
			if i != idx {
				t.Destroy()
			}
		}
		v, err := tasks[idx].Get()
		return AnyResult[T]{Index: idx, Value: v}, err
	})
}

// WhenAnyRef is WhenAny's by-reference overload: the caller retains
// ownership of every argument, and losing tasks are left running rather
// than destroyed.
func WhenAnyRef[T any](s *Scheduler, tasks ...*Task[T]) *Task[AnyResult[T]] {
	return New(s, func(c *Cursor) (AnyResult[T], error) {
		idx := pollAny(c, s, tasks)
		v, err := tasks[idx].Get()
		return AnyResult[T]{Index: idx, Value: v}, err
	})
}

func pollUntil(c *Cursor, s *Scheduler, ready func() bool) {
	for !ready() {
		s.noteCombinatorPoll()
		c.Sleep(0)
	}
}

func pollAny[T any](c *Cursor, s *Scheduler, tasks []*Task[T]) int {
	if len(tasks) == 0 {
		panic(violation("WhenAny", "no arguments"))
	}
	for {
		for i, t := range tasks {
			if t.IsReady() {
				return i
			}
		}
		s.noteCombinatorPoll()
		c.Sleep(0)
	}
}

// Pair and Triple carry the heterogeneous results of WhenAll2/WhenAll3:
// Go's generics cannot express a variadic, heterogeneously-typed argument
// list, so spec.md §4.6's fixed-arity combinators get their own fixed-arity
// types instead.
type Pair[A, B any] struct {
	A A
	B B
}

type Triple[A, B, C any] struct {
	A A
	B B
	C C
}

// WhenAll2 is WhenAll specialized to two differently-typed arguments.
func WhenAll2[A, B any](s *Scheduler, ta *Task[A], tb *Task[B]) *Task[Pair[A, B]] {
	return New(s, func(c *Cursor) (Pair[A, B], error) {
		pollUntil(c, s, func() bool { return ta.IsReady() && tb.IsReady() })
		a, err := ta.Get()
		if err != nil {
			return Pair[A, B]{}, err
		}
		b, err := tb.Get()
		if err != nil {
			return Pair[A, B]{}, err
		}
		return Pair[A, B]{A: a, B: b}, nil
	})
}

// WhenAll3 is WhenAll specialized to three differently-typed arguments.
func WhenAll3[A, B, C any](s *Scheduler, ta *Task[A], tb *Task[B], tc *Task[C]) *Task[Triple[A, B, C]] {
	return New(s, func(c *Cursor) (Triple[A, B, C], error) {
		pollUntil(c, s, func() bool { return ta.IsReady() && tb.IsReady() && tc.IsReady() })
		a, err := ta.Get()
		if err != nil {
			return Triple[A, B, C]{}, err
		}
		b, err := tb.Get()
		if err != nil {
			return Triple[A, B, C]{}, err
		}
		cc, err := tc.Get()
		if err != nil {
			return Triple[A, B, C]{}, err
		}
		return Triple[A, B, C]{A: a, B: b, C: cc}, nil
	})
}

// WhenAllSkipMiddle is WhenAll3 for the case where the middle argument is a
// Void task: its result is dropped from the collected pair rather than
// surfaced as a meaningless struct{}, per the "when_all collection... omits
// unit-typed arguments" law of spec.md §8 (and the literal mixed-type
// scenario there: int, void, string -> (int, string)).
func WhenAllSkipMiddle[A, C any](s *Scheduler, ta *Task[A], tv *Task[Void], tc *Task[C]) *Task[Pair[A, C]] {
	return New(s, func(c *Cursor) (Pair[A, C], error) {
		pollUntil(c, s, func() bool { return ta.IsReady() && tv.IsReady() && tc.IsReady() })
		a, err := ta.Get()
		if err != nil {
			return Pair[A, C]{}, err
		}
		if _, err := tv.Get(); err != nil {
			return Pair[A, C]{}, err
		}
		cc, err := tc.Get()
		if err != nil {
			return Pair[A, C]{}, err
		}
		return Pair[A, C]{A: a, B: cc}, nil
	})
}

// Union2 and Union3 are the heterogeneous analogues of AnyResult, for
// WhenAny2/WhenAny3.
type Union2[A, B any] struct {
	Index int
	A     A
	B     B
}

type Union3[A, B, C any] struct {
	Index int
	A     A
	B     B
	C     C
}

// WhenAny2 races two differently-typed tasks, by-value: the loser is
// destroyed.
func WhenAny2[A, B any](s *Scheduler, ta *Task[A], tb *Task[B]) *Task[Union2[A, B]] {
	return New(s, func(c *Cursor) (Union2[A, B], error) {
		for {
			if ta.IsReady() {
				tb.Destroy()
				a, err := ta.Get()
				return Union2[A, B]{Index: 0, A: a}, err
			}
			if tb.IsReady() {
				ta.Destroy()
				b, err := tb.Get()
				return Union2[A, B]{Index: 1, B: b}, err
			}
			s.noteCombinatorPoll()
			c.Sleep(0)
		}
	})
}

// WhenAnyRef2 is WhenAny2's by-reference overload: neither argument is
// destroyed.
func WhenAnyRef2[A, B any](s *Scheduler, ta *Task[A], tb *Task[B]) *Task[Union2[A, B]] {
	return New(s, func(c *Cursor) (Union2[A, B], error) {
		for {
			if ta.IsReady() {
				a, err := ta.Get()
				return Union2[A, B]{Index: 0, A: a}, err
			}
			if tb.IsReady() {
				b, err := tb.Get()
				return Union2[A, B]{Index: 1, B: b}, err
			}
			s.noteCombinatorPoll()
			c.Sleep(0)
		}
	})
}

// WhenAny3 races three differently-typed tasks, by-value: whichever two
// don't win are destroyed. This is the shape of spec.md §8 scenario 5.
func WhenAny3[A, B, C any](s *Scheduler, ta *Task[A], tb *Task[B], tc *Task[C]) *Task[Union3[A, B, C]] {
	return New(s, func(c *Cursor) (Union3[A, B, C], error) {
		for {
			if ta.IsReady() {
				tb.Destroy()
				tc.Destroy()
				a, err := ta.Get()
				return Union3[A, B, C]{Index: 0, A: a}, err
			}
			if tb.IsReady() {
				ta.Destroy()
				tc.Destroy()
				b, err := tb.Get()
				return Union3[A, B, C]{Index: 1, B: b}, err
			}
			if tc.IsReady() {
				ta.Destroy()
				tb.Destroy()
				cc, err := tc.Get()
				return Union3[A, B, C]{Index: 2, C: cc}, err
			}
			s.noteCombinatorPoll()
			c.Sleep(0)
		}
	})
}

// WhenAnyRef3 is WhenAny3's by-reference overload: no argument is destroyed.
func WhenAnyRef3[A, B, C any](s *Scheduler, ta *Task[A], tb *Task[B], tc *Task[C]) *Task[Union3[A, B, C]] {
	return New(s, func(c *Cursor) (Union3[A, B, C], error) {
		for {
			if ta.IsReady() {
				a, err := ta.Get()
				return Union3[A, B, C]{Index: 0, A: a}, err
			}
			if tb.IsReady() {
				b, err := tb.Get()
				return Union3[A, B, C]{Index: 1, B: b}, err
			}
			if tc.IsReady() {
				cc, err := tc.Get()
				return Union3[A, B, C]{Index: 2, C: cc}, err
			}
			s.noteCombinatorPoll()
			c.Sleep(0)
		}
	})
}
