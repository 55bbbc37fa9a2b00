// Package loan implements the loan lifecycle delegates: creation, approval,
// rejection, cancellation, disbursement with retry/escalation bookkeeping,
// and the status verification rules gating disbursement.
package loan

import (
	"time"

	"github.com/lcampos/bankflow/pkg/variables"
)

// DefaultMaxRetryAttempts caps automatic disbursement retries when the
// process does not supply maxRetryAttempts.
const DefaultMaxRetryAttempts = 3

// Failure types written to the failureType audit variable.
const (
	FailureTypeAPI    = "Fineract API Error"
	FailureTypeSystem = "System Error"
)

// RetryState is the disbursement retry/escalation state carried in the
// variable bag across invocations of the disbursement delegate. The attempt
// counter never decreases within a process instance; only a successful
// disbursement resets it.
type RetryState struct {
	Attempt     int
	MaxAttempts int
	AutoRetry   bool
}

// LoadRetryState reads the retry state variables out of the bag, applying the
// default attempt cap when none was supplied.
func LoadRetryState(bag variables.Bag) (RetryState, error) {
	attempt, err := variables.OptionalInt(bag, "retryAttempt", 0)
	if err != nil {
		return RetryState{}, err
	}

	maxAttempts, err := variables.OptionalInt(bag, "maxRetryAttempts", DefaultMaxRetryAttempts)
	if err != nil {
		return RetryState{}, err
	}

	return RetryState{
		Attempt:     attempt,
		MaxAttempts: maxAttempts,
		AutoRetry:   variables.OptionalBool(bag, "autoRetryOnFailure", false),
	}, nil
}

// RecordSuccess writes the terminal success transition: the attempt counter
// resets and no retry or escalation is pending.
func (s *RetryState) RecordSuccess(bag variables.Bag) {
	s.Attempt = 0

	bag.SetVariable("retryAttempt", 0)
	bag.SetVariable("shouldRetry", false)
	bag.SetVariable("escalationRequired", false)
	bag.SetVariable("escalated", false)
	bag.SetVariable("maxRetriesExceeded", false)
}

// RecordFailure advances the state machine for a failed attempt and writes the
// audit trail. The counter increments first, then shouldRetry holds when
// automatic retry is on and attempts remain; otherwise the failure escalates.
// The audit keys are written on every failure, whichever path is taken.
func (s *RetryState) RecordFailure(bag variables.Bag, cause error, failureType string) (shouldRetry bool) {
	s.Attempt++

	shouldRetry = s.AutoRetry && s.Attempt < s.MaxAttempts
	exhausted := s.Attempt >= s.MaxAttempts

	bag.SetVariable("retryAttempt", s.Attempt)
	bag.SetVariable("shouldRetry", shouldRetry)
	bag.SetVariable("escalationRequired", !shouldRetry)
	bag.SetVariable("maxRetriesExceeded", exhausted)

	if shouldRetry {
		bag.SetVariable("retryReason", cause.Error())
	}

	bag.SetVariable("lastError", cause.Error())
	bag.SetVariable("lastErrorDate", time.Now().Format(time.RFC3339))
	bag.SetVariable("failureReason", cause.Error())
	bag.SetVariable("failureType", failureType)

	return shouldRetry
}
