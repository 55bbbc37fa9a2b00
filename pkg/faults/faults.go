// Package faults defines the domain error taxonomy shared by the task delegates,
// the engine surface and the REST layer, plus the pattern registry that turns raw
// engine and core-banking failures into typed, branch-able errors.
package faults

import (
	"errors"
	"fmt"
)

// Code identifies an engine-state error category derived from the
// classification registry.
type Code string

const (
	CodeTaskNotFound              Code = "TASK_NOT_FOUND"
	CodeProcessNotFound           Code = "PROCESS_NOT_FOUND"
	CodeProcessDefinitionNotFound Code = "PROCESS_DEFINITION_NOT_FOUND"
	CodeDeploymentNotFound        Code = "DEPLOYMENT_NOT_FOUND"
	CodeInvalidProcessState       Code = "INVALID_PROCESS_STATE"
	CodeInvalidTaskState          Code = "INVALID_TASK_STATE"
)

// Workflow error codes carried by WorkflowError. Delegates use the operation
// specific codes for their own validation failures; the classifier uses the
// generic ones for the shape-based fallback.
const (
	ErrorLoanDisbursementFailed = "ERROR_LOAN_DISBURSEMENT_FAILED"
	ErrorLoanCreationFailed     = "ERROR_LOAN_CREATION_FAILED"
	ErrorClientTransferFailed   = "ERROR_CLIENT_TRANSFER_FAILED"

	ErrorInvalidArguments = "INVALID_ARGUMENTS"
	ErrorInvalidState     = "INVALID_STATE"
	ErrorRuntime          = "RUNTIME_ERROR"
)

// ErrInvalidState marks a delegate's own state validation failure. Wrap it so
// the classifier can fall back to the invalid-state shape.
var ErrInvalidState = errors.New("invalid state")

// ArgumentError reports a required process variable that is absent or
// malformed. It is raised before any external call is made.
type ArgumentError struct {
	Key    string
	Value  string
	Reason string
	Err    error
}

func (e *ArgumentError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("variable %q %s: %q", e.Key, e.Reason, e.Value)
	}

	return fmt.Sprintf("variable %q %s", e.Key, e.Reason)
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}

// MissingArgument builds an ArgumentError for a required variable that was not
// provided.
func MissingArgument(key string) *ArgumentError {
	return &ArgumentError{Key: key, Reason: "is required but was not provided"}
}

// MalformedArgument builds an ArgumentError for a variable whose value could
// not be coerced to the expected type.
func MalformedArgument(key string, value any, err error) *ArgumentError {
	return &ArgumentError{
		Key:    key,
		Value:  fmt.Sprintf("%v", value),
		Reason: "could not be parsed",
		Err:    err,
	}
}

// APIError reports a failure from the core-banking API. It is never wrapped or
// downgraded: the classifier passes it through unchanged.
type APIError struct {
	Operation  string
	Resource   string
	StatusCode int
	Body       string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("core banking %s failed for %s: status %d: %s", e.Operation, e.Resource, e.StatusCode, e.Body)
	}

	return fmt.Sprintf("core banking %s failed for %s: %v", e.Operation, e.Resource, e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// WorkflowError reports a domain-level failure that did not originate from the
// core-banking API, wrapped once with the operation name and a fixed code.
type WorkflowError struct {
	Op      string
	Code    string
	Message string
	Err     error
}

func (e *WorkflowError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}

	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *WorkflowError) Unwrap() error {
	return e.Err
}

// EngineStateError is produced by the classification registry for failures the
// workflow engine reports as plain text (not-found and invalid-state
// categories).
type EngineStateError struct {
	Code      Code
	Op        string
	ProcessID string
	TaskID    string
	Message   string
}

func (e *EngineStateError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsArgumentError reports whether err is (or wraps) an ArgumentError.
func IsArgumentError(err error) bool {
	var argErr *ArgumentError

	return errors.As(err, &argErr)
}

// IsAPIError reports whether err is (or wraps) a core-banking APIError.
func IsAPIError(err error) bool {
	var apiErr *APIError

	return errors.As(err, &apiErr)
}

// IsEngineStateError reports whether err carries the given engine-state code.
func IsEngineStateError(err error, code Code) bool {
	var stateErr *EngineStateError
	if !errors.As(err, &stateErr) {
		return false
	}

	return stateErr.Code == code
}

// IsNotFound reports whether err is any of the not-found engine-state
// categories.
func IsNotFound(err error) bool {
	var stateErr *EngineStateError
	if !errors.As(err, &stateErr) {
		return false
	}

	switch stateErr.Code {
	case CodeTaskNotFound, CodeProcessNotFound, CodeProcessDefinitionNotFound, CodeDeploymentNotFound:
		return true
	case CodeInvalidProcessState, CodeInvalidTaskState:
		return false
	}

	return false
}

// KindOf returns the taxonomy kind of err as written into the errorType bag
// variable.
func KindOf(err error) string {
	var (
		argErr   *ArgumentError
		apiErr   *APIError
		wfErr    *WorkflowError
		stateErr *EngineStateError
	)

	switch {
	case errors.As(err, &argErr):
		return "ARGUMENT_ERROR"
	case errors.As(err, &apiErr):
		return "API_ERROR"
	case errors.As(err, &stateErr):
		return "ENGINE_STATE_ERROR"
	case errors.As(err, &wfErr):
		return "WORKFLOW_ERROR"
	default:
		return "RUNTIME_ERROR"
	}
}
