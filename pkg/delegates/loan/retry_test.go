package loan

import (
	"errors"
	"testing"

	"github.com/lcampos/bankflow/pkg/variables"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryState_ThreeConsecutiveFailures(t *testing.T) {
	bag := variables.NewMapBag("proc-1", map[string]any{
		"autoRetryOnFailure": true,
	})

	state, err := LoadRetryState(bag)
	require.NoError(t, err)
	assert.Equal(t, 0, state.Attempt)
	assert.Equal(t, DefaultMaxRetryAttempts, state.MaxAttempts)
	assert.True(t, state.AutoRetry)

	cause := errors.New("connection refused")

	expected := []struct {
		attempt     int
		shouldRetry bool
	}{
		{attempt: 1, shouldRetry: true},
		{attempt: 2, shouldRetry: true},
		{attempt: 3, shouldRetry: false},
	}

	for _, want := range expected {
		shouldRetry := state.RecordFailure(bag, cause, FailureTypeSystem)

		assert.Equal(t, want.attempt, bag.GetVariable("retryAttempt"))
		assert.Equal(t, want.shouldRetry, shouldRetry)
		assert.Equal(t, want.shouldRetry, bag.GetVariable("shouldRetry"))
		assert.Equal(t, !want.shouldRetry, bag.GetVariable("escalationRequired"))
	}

	assert.Equal(t, true, bag.GetVariable("maxRetriesExceeded"))
}

func TestRetryState_AuditTrailWrittenOnEveryFailure(t *testing.T) {
	bag := variables.NewMapBag("proc-1", map[string]any{
		"autoRetryOnFailure": true,
	})

	state, err := LoadRetryState(bag)
	require.NoError(t, err)

	cause := errors.New("gateway timeout")

	shouldRetry := state.RecordFailure(bag, cause, FailureTypeAPI)
	require.True(t, shouldRetry, "first failure with retries remaining schedules a retry")

	for _, key := range []string{"lastError", "lastErrorDate", "failureReason", "failureType", "retryReason"} {
		assert.True(t, bag.HasVariable(key), "audit key %s must be written even when retrying", key)
	}

	assert.Equal(t, "gateway timeout", bag.GetVariable("lastError"))
	assert.Equal(t, "gateway timeout", bag.GetVariable("failureReason"))
	assert.Equal(t, FailureTypeAPI, bag.GetVariable("failureType"))
}

func TestRetryState_AutoRetryDisabledEscalatesImmediately(t *testing.T) {
	bag := variables.NewMapBag("proc-1", nil)

	state, err := LoadRetryState(bag)
	require.NoError(t, err)
	assert.False(t, state.AutoRetry)

	shouldRetry := state.RecordFailure(bag, errors.New("boom"), FailureTypeSystem)

	assert.False(t, shouldRetry)
	assert.Equal(t, 1, bag.GetVariable("retryAttempt"))
	assert.Equal(t, false, bag.GetVariable("shouldRetry"))
	assert.Equal(t, true, bag.GetVariable("escalationRequired"))
	assert.Equal(t, false, bag.GetVariable("maxRetriesExceeded"))
}

func TestRetryState_RecordSuccessResets(t *testing.T) {
	bag := variables.NewMapBag("proc-1", map[string]any{
		"autoRetryOnFailure": true,
	})

	state, err := LoadRetryState(bag)
	require.NoError(t, err)

	state.RecordFailure(bag, errors.New("transient"), FailureTypeAPI)
	require.Equal(t, 1, bag.GetVariable("retryAttempt"))

	state.RecordSuccess(bag)

	assert.Equal(t, 0, bag.GetVariable("retryAttempt"))
	assert.Equal(t, false, bag.GetVariable("shouldRetry"))
	assert.Equal(t, false, bag.GetVariable("escalationRequired"))
	assert.Equal(t, false, bag.GetVariable("escalated"))
}

func TestLoadRetryState_HonorsCallerSuppliedLimits(t *testing.T) {
	bag := variables.NewMapBag("proc-1", map[string]any{
		"retryAttempt":       2,
		"maxRetryAttempts":   5,
		"autoRetryOnFailure": "true",
	})

	state, err := LoadRetryState(bag)
	require.NoError(t, err)

	assert.Equal(t, 2, state.Attempt)
	assert.Equal(t, 5, state.MaxAttempts)
	assert.True(t, state.AutoRetry)
}
