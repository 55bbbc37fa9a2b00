package faults

import (
	"errors"
	"fmt"
	"strings"
)

// classificationRule pairs a message predicate with a typed-error factory.
// Rules are evaluated in registration order and the first match wins. New
// failure modes are added by appending a rule, never by reordering existing
// ones.
type classificationRule struct {
	matches func(msg string) bool
	build   func(msg, operation string) error
}

var classificationRules = []classificationRule{
	{
		matches: contains("Cannot find task with id"),
		build:   taskError(CodeTaskNotFound, "Cannot find task with id"),
	},
	{
		matches: contains("Cannot find process instance with id"),
		build:   processError(CodeProcessNotFound, "Cannot find process instance with id"),
	},
	{
		matches: all(contains("execution"), contains("doesn't exist")),
		build:   processError(CodeProcessNotFound, "execution"),
	},
	{
		matches: contains("Cannot find process definition with id"),
		build:   processError(CodeProcessDefinitionNotFound, "Cannot find process definition with id"),
	},
	{
		matches: contains("Cannot find deployment with id"),
		build:   processError(CodeDeploymentNotFound, "Cannot find deployment with id"),
	},
	{
		matches: contains("Process instance is already ended"),
		build:   processError(CodeInvalidProcessState, "Process instance is already ended"),
	},
	{
		matches: contains("Task is already completed"),
		build:   taskError(CodeInvalidTaskState, "Task is already completed"),
	},
	{
		matches: all(contains("Historic"), contains("instance not found")),
		build:   processError(CodeProcessNotFound, "instance not found"),
	},
}

// Classify translates a raw failure into one of the domain error kinds.
// Already-typed core-banking and workflow errors pass through unchanged; the
// message registry is tried next; unmatched errors are classified by shape,
// always wrapping the original as the cause.
func Classify(err error, operation, param string) error {
	if err == nil {
		return nil
	}

	var (
		apiErr *APIError
		wfErr  *WorkflowError
	)

	if errors.As(err, &apiErr) || errors.As(err, &wfErr) {
		return err
	}

	msg := err.Error()
	for _, rule := range classificationRules {
		if rule.matches(msg) {
			return rule.build(msg, operation)
		}
	}

	var argErr *ArgumentError
	if errors.As(err, &argErr) {
		return &WorkflowError{
			Op:      operation,
			Code:    ErrorInvalidArguments,
			Message: fmt.Sprintf("Invalid arguments for %s: %s", operation, param),
			Err:     err,
		}
	}

	if errors.Is(err, ErrInvalidState) {
		return &WorkflowError{
			Op:      operation,
			Code:    ErrorInvalidState,
			Message: fmt.Sprintf("Invalid state during %s: %s", operation, param),
			Err:     err,
		}
	}

	return &WorkflowError{
		Op:      operation,
		Code:    ErrorRuntime,
		Message: fmt.Sprintf("Runtime error during %s: %s", operation, param),
		Err:     err,
	}
}

func contains(fragment string) func(string) bool {
	return func(msg string) bool {
		return strings.Contains(msg, fragment)
	}
}

func all(predicates ...func(string) bool) func(string) bool {
	return func(msg string) bool {
		for _, predicate := range predicates {
			if !predicate(msg) {
				return false
			}
		}

		return true
	}
}

func taskError(code Code, anchor string) func(msg, operation string) error {
	return func(msg, operation string) error {
		return &EngineStateError{
			Code:    code,
			Op:      operation,
			TaskID:  tokenAfter(msg, anchor),
			Message: msg,
		}
	}
}

func processError(code Code, anchor string) func(msg, operation string) error {
	return func(msg, operation string) error {
		return &EngineStateError{
			Code:      code,
			Op:        operation,
			ProcessID: tokenAfter(msg, anchor),
			Message:   msg,
		}
	}
}

// tokenAfter extracts the identifier the engine appends after the matched
// fragment, e.g. "Cannot find task with id task-456" -> "task-456". A message
// that ends with the fragment itself carries no identifier and yields "".
func tokenAfter(msg, anchor string) string {
	_, rest, found := strings.Cut(msg, anchor)
	if !found {
		return ""
	}

	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return ""
	}

	return strings.Trim(fields[0], `'".`)
}
