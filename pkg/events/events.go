// Package events defines the process and delegate lifecycle events published
// while steps execute. The bag itself is the only audit trail at the delegate
// level; these events exist for observers (UI, monitoring), not for control
// flow.
package events

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const Topic = "bankflow.events"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	ProcessStartedEvent        EventType = "process.started"
	ProcessCompletedEvent      EventType = "process.completed"
	StepCompletedEvent         EventType = "step.completed"
	StepFailedEvent            EventType = "step.failed"
	RetryScheduledEvent        EventType = "step.retry.scheduled"
	DisbursementEscalatedEvent EventType = "disbursement.escalated"
)

type BaseEvent struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	ProcessID string         `json:"process_id"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

func NewBaseEvent(eventType EventType, processID string) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		ProcessID: processID,
	}
}

type ProcessStarted struct {
	BaseEvent

	ProcessKey string         `json:"process_key"`
	Variables  map[string]any `json:"variables,omitempty"`
}

func (e ProcessStarted) GetType() EventType {
	return ProcessStartedEvent
}

type ProcessCompleted struct {
	BaseEvent

	ProcessKey    string `json:"process_key"`
	StepsExecuted int    `json:"steps_executed"`
}

func (e ProcessCompleted) GetType() EventType {
	return ProcessCompletedEvent
}

type StepCompleted struct {
	BaseEvent

	DelegateID string        `json:"delegate_id"`
	Duration   time.Duration `json:"duration"`
}

func (e StepCompleted) GetType() EventType {
	return StepCompletedEvent
}

type StepFailed struct {
	BaseEvent

	DelegateID string        `json:"delegate_id"`
	Error      string        `json:"error"`
	ErrorKind  string        `json:"error_kind"`
	Duration   time.Duration `json:"duration"`
}

func (e StepFailed) GetType() EventType {
	return StepFailedEvent
}

type RetryScheduled struct {
	BaseEvent

	DelegateID  string `json:"delegate_id"`
	Attempt     int    `json:"attempt"`
	MaxAttempts int    `json:"max_attempts"`
	Reason      string `json:"reason"`
}

func (e RetryScheduled) GetType() EventType {
	return RetryScheduledEvent
}

type DisbursementEscalated struct {
	BaseEvent

	LoanID   string `json:"loan_id"`
	Attempts int    `json:"attempts"`
	Reason   string `json:"reason"`
}

func (e DisbursementEscalated) GetType() EventType {
	return DisbursementEscalatedEvent
}
