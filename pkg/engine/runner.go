package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/lcampos/bankflow/pkg/eventbus"
	"github.com/lcampos/bankflow/pkg/events"
	"github.com/lcampos/bankflow/pkg/faults"
	"github.com/lcampos/bankflow/pkg/otelhelper"
	"github.com/lcampos/bankflow/pkg/variables"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Runner executes one delegate invocation: the unit the workflow engine
// schedules at each process step. It adds logging, a span, and lifecycle
// event publication around the delegate's Execute; the outcome itself lives
// in the bag, written by the delegate.
type Runner struct {
	eventBus eventbus.EventPublisher
	tracer   trace.Tracer
	logger   *slog.Logger
}

func NewRunner(eventBus eventbus.EventPublisher, tracer trace.Tracer, logger *slog.Logger) *Runner {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("bankflow")
	}

	return &Runner{
		eventBus: eventBus,
		tracer:   tracer,
		logger:   logger.With("module", "delegate_runner"),
	}
}

func (r *Runner) Run(ctx context.Context, delegateID string, delegate Delegate, bag variables.Bag) error {
	processID := bag.ProcessInstanceID()
	logger := r.logger.With("delegate_id", delegateID, "process_id", processID)

	ctx, span := otelhelper.StartSpan(ctx, r.tracer, "delegate.execute",
		attribute.String(otelhelper.DelegateIDKey, delegateID),
		attribute.String(otelhelper.ProcessIDKey, processID),
	)
	defer span.End()

	logger.Info("Executing delegate")

	started := time.Now()

	err := delegate.Execute(ctx, bag, logger)
	duration := time.Since(started)

	if err != nil {
		kind := faults.KindOf(err)

		otelhelper.SetError(span, err, attribute.String(otelhelper.ErrorKindKey, kind))
		logger.Error("Delegate execution failed", "error", err, "error_kind", kind, "duration", duration)

		r.publish(ctx, processID, events.StepFailed{
			BaseEvent:  events.NewBaseEvent(events.StepFailedEvent, processID),
			DelegateID: delegateID,
			Error:      err.Error(),
			ErrorKind:  kind,
			Duration:   duration,
		})

		return err
	}

	logger.Info("Delegate execution completed", "duration", duration)

	r.publish(ctx, processID, events.StepCompleted{
		BaseEvent:  events.NewBaseEvent(events.StepCompletedEvent, processID),
		DelegateID: delegateID,
		Duration:   duration,
	})

	return nil
}

func (r *Runner) publish(ctx context.Context, key string, event eventbus.Event) {
	if r.eventBus == nil {
		return
	}

	err := r.eventBus.Publish(ctx, key, event)
	if err != nil {
		r.logger.Warn("Failed to publish lifecycle event", "event_type", event.GetType(), "error", err)
	}
}
