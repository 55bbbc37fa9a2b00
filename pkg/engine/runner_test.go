package engine

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/lcampos/bankflow/pkg/eventbus"
	"github.com/lcampos/bankflow/pkg/events"
	"github.com/lcampos/bankflow/pkg/faults"
	"github.com/lcampos/bankflow/pkg/mocks"
	"github.com/lcampos/bankflow/pkg/variables"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRunner_PublishesStepCompleted(t *testing.T) {
	bus := &mocks.MockEventBus{}
	bus.On("Publish", mock.Anything, "proc-1", mock.MatchedBy(func(event eventbus.Event) bool {
		completed, ok := event.(events.StepCompleted)

		return ok && completed.DelegateID == "createClient" && completed.ProcessID == "proc-1"
	})).Return(nil)

	runner := NewRunner(bus, nil, testLogger())
	bag := variables.NewMapBag("proc-1", nil)

	delegate := funcDelegate(func(context.Context, variables.Bag, *slog.Logger) error { return nil })

	require.NoError(t, runner.Run(context.Background(), "createClient", delegate, bag))
	bus.AssertExpectations(t)
}

func TestRunner_PublishesStepFailedWithErrorKind(t *testing.T) {
	bus := &mocks.MockEventBus{}
	bus.On("Publish", mock.Anything, "proc-1", mock.MatchedBy(func(event eventbus.Event) bool {
		failed, ok := event.(events.StepFailed)

		return ok && failed.DelegateID == "disburseLoan" && failed.ErrorKind == "API_ERROR"
	})).Return(nil)

	runner := NewRunner(bus, nil, testLogger())
	bag := variables.NewMapBag("proc-1", nil)

	apiErr := &faults.APIError{Operation: "disburseLoan", Resource: "loan 7", StatusCode: 503, Body: "unavailable"}
	delegate := funcDelegate(func(context.Context, variables.Bag, *slog.Logger) error { return apiErr })

	err := runner.Run(context.Background(), "disburseLoan", delegate, bag)
	assert.Same(t, apiErr, err)
	bus.AssertExpectations(t)
}

func TestRunner_PublishFailureDoesNotMaskTheStep(t *testing.T) {
	bus := &mocks.MockEventBus{}
	bus.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("bus down"))

	runner := NewRunner(bus, nil, testLogger())
	bag := variables.NewMapBag("proc-1", nil)

	delegate := funcDelegate(func(context.Context, variables.Bag, *slog.Logger) error { return nil })

	require.NoError(t, runner.Run(context.Background(), "createClient", delegate, bag))
}
