package corotask

import (
	"errors"
	"fmt"
)

// Standard errors returned by scheduler operations.
var (
	// ErrTaskDestroyed is the cause wrapped into the CoroutineFailure delivered
	// to every waiter of a task that was destroyed while other tasks were
	// awaiting it (see SPEC_FULL.md §9, decision 1).
	ErrTaskDestroyed = errors.New("corotask: task destroyed while awaited")

	// ErrSchedulerClosed is returned when a Scheduler is driven after Close.
	ErrSchedulerClosed = errors.New("corotask: scheduler is closed")
)

// ContractViolation reports misuse of the public API: double-Get, awaiting an
// invalid handle, an illegal yield operand, double-set/-take on a result
// cell, or driving the scheduler concurrently from more than one goroutine.
// Per spec.md §7 this is not recoverable and should terminate or propagate
// immediately rather than be retried.
type ContractViolation struct {
	// Op names the operation that was misused (e.g. "Task.Get", "Cursor.Sleep").
	Op string
	// Reason is a short, human-readable explanation.
	Reason string
	// Cause is an optional wrapped error providing further context.
	Cause error
}

func (e *ContractViolation) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("corotask: contract violation in %s", e.Op)
	}
	return fmt.Sprintf("corotask: contract violation in %s: %s", e.Op, e.Reason)
}

// Unwrap returns the underlying cause, if any, for errors.Is/errors.As chains.
func (e *ContractViolation) Unwrap() error {
	return e.Cause
}

// Is reports whether target is also a *ContractViolation, regardless of
// fields, so callers can test with errors.Is(err, new(ContractViolation)).
func (e *ContractViolation) Is(target error) bool {
	var cv *ContractViolation
	return errors.As(target, &cv)
}

func violation(op, reason string) *ContractViolation {
	return &ContractViolation{Op: op, Reason: reason}
}

func violationWrap(op, reason string, cause error) *ContractViolation {
	return &ContractViolation{Op: op, Reason: reason, Cause: cause}
}

// CoroutineFailure wraps a failure that escaped a task body. It is captured
// into the task's result cell the moment it leaves the body (per spec.md
// §4.2/§7) and re-raised when the cell is consumed via Get.
type CoroutineFailure struct {
	// Cause is the error the coroutine body returned.
	Cause error
}

func (e *CoroutineFailure) Error() string {
	if e.Cause == nil {
		return "corotask: coroutine failed"
	}
	return "corotask: coroutine failed: " + e.Cause.Error()
}

// Unwrap returns Cause for errors.Is/errors.As.
func (e *CoroutineFailure) Unwrap() error {
	return e.Cause
}

// WaitStatus is the non-error result of Task.WaitFor / Task.WaitUntil, per
// spec.md §7 ("Timeout: returned value (not a failure)").
type WaitStatus int

const (
	// StatusReady indicates the awaited task completed before the deadline.
	StatusReady WaitStatus = iota
	// StatusTimeout indicates the deadline elapsed before the task completed.
	StatusTimeout
)

func (s WaitStatus) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusTimeout:
		return "Timeout"
	default:
		return "Unknown"
	}
}

// WrapError wraps an error with a message, preserving the cause chain such
// that errors.Is(result, cause) == true.
func WrapError(message string, cause error) error {
	return fmt.Errorf("%s: %w", message, cause)
}
