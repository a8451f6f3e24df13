package corotask

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContractViolation_ErrorAndIs(t *testing.T) {
	cause := errors.New("underlying")
	v := violationWrap("Task.Get", "already consumed", cause)

	assert.Equal(t, "corotask: contract violation in Task.Get: already consumed", v.Error())
	assert.ErrorIs(t, v, cause)
	assert.True(t, errors.Is(v, new(ContractViolation)))
}

func TestContractViolation_NoReason(t *testing.T) {
	v := violation("Cursor.Sleep", "")
	assert.Equal(t, "corotask: contract violation in Cursor.Sleep", v.Error())
}

func TestCoroutineFailure_ErrorAndUnwrap(t *testing.T) {
	cause := errors.New("body failed")
	f := &CoroutineFailure{Cause: cause}

	assert.Equal(t, "corotask: coroutine failed: body failed", f.Error())
	assert.ErrorIs(t, f, cause)
}

func TestCoroutineFailure_NilCause(t *testing.T) {
	f := &CoroutineFailure{}
	assert.Equal(t, "corotask: coroutine failed", f.Error())
}

func TestWaitStatus_String(t *testing.T) {
	assert.Equal(t, "Ready", StatusReady.String())
	assert.Equal(t, "Timeout", StatusTimeout.String())
	assert.Equal(t, "Unknown", WaitStatus(99).String())
}

func TestWrapError_PreservesCauseChain(t *testing.T) {
	cause := errors.New("root cause")
	wrapped := WrapError("loading config", cause)
	assert.ErrorIs(t, wrapped, cause)
	assert.Equal(t, "loading config: root cause", wrapped.Error())
}
