package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lcampos/bankflow/pkg/eventbus"
	"github.com/lcampos/bankflow/pkg/events"
	"github.com/lcampos/bankflow/pkg/variables"
)

// Step is one position in a process definition: either a delegate invocation
// or a human task the process waits on.
type Step struct {
	DelegateID string
	UserTask   string
	Config     map[string]any
}

// ProcessDefinition is a named, ordered sequence of steps.
type ProcessDefinition struct {
	Key   string
	Steps []Step
}

// instance state (bag, next, ended, executed) is guarded by mu, which is held
// for the whole of a step run so concurrent readers never observe the bag
// mid-write. Lock order is instance mutex before registry mutex: advance holds
// mu while createTask takes the registry lock.
type instance struct {
	mu         sync.Mutex
	definition ProcessDefinition
	bag        *variables.MapBag
	next       int
	ended      bool
	executed   int
}

type pendingTask struct {
	task      Task
	completed bool
}

// Dispatcher is a sequential in-process implementation of the Engine surface,
// used by the development server and the test suite. It is not a workflow
// engine: no persistence, no timers, no parallel gateways. One step runs at a
// time per instance, which also satisfies the exclusive-bag-ownership
// assumption the delegates rely on.
//
// Failure messages deliberately use the external engine's plain-text
// vocabulary ("Cannot find task with id ...") so that callers exercise the
// same classification registry in both deployments.
type Dispatcher struct {
	delegates DelegateSource
	runner    *Runner
	eventBus  eventbus.EventPublisher
	logger    *slog.Logger

	// mu guards the three registry maps only; per-instance state has its
	// own lock.
	mu          sync.Mutex
	definitions map[string]ProcessDefinition
	instances   map[string]*instance
	tasks       map[string]*pendingTask
}

func NewDispatcher(delegates DelegateSource, runner *Runner, eventBus eventbus.EventPublisher, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		delegates:   delegates,
		runner:      runner,
		eventBus:    eventBus,
		logger:      logger.With("module", "dispatcher"),
		definitions: make(map[string]ProcessDefinition),
		instances:   make(map[string]*instance),
		tasks:       make(map[string]*pendingTask),
	}
}

func (d *Dispatcher) RegisterDefinition(definition ProcessDefinition) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.definitions[definition.Key] = definition
}

func (d *Dispatcher) StartProcess(ctx context.Context, processKey string, vars map[string]any) (string, error) {
	d.mu.Lock()

	definition, ok := d.definitions[processKey]
	if !ok {
		d.mu.Unlock()

		return "", fmt.Errorf("Cannot find process definition with id %s", processKey)
	}

	processID := uuid.NewString()
	inst := &instance{
		definition: definition,
		bag:        variables.NewMapBag(processID, vars),
	}
	d.instances[processID] = inst
	d.mu.Unlock()

	d.logger.Info("Starting process", "process_key", processKey, "process_id", processID)

	d.publish(ctx, processID, events.ProcessStarted{
		BaseEvent:  events.NewBaseEvent(events.ProcessStartedEvent, processID),
		ProcessKey: processKey,
		Variables:  vars,
	})

	return processID, d.advance(ctx, processID, inst)
}

func (d *Dispatcher) TerminateProcess(_ context.Context, processID string) error {
	d.mu.Lock()
	inst, ok := d.instances[processID]
	d.mu.Unlock()

	if !ok {
		return fmt.Errorf("Cannot find process instance with id %s", processID)
	}

	inst.mu.Lock()
	defer inst.mu.Unlock()

	inst.ended = true

	return nil
}

func (d *Dispatcher) Variables(_ context.Context, processID string) (map[string]any, error) {
	d.mu.Lock()
	inst, ok := d.instances[processID]
	d.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("Cannot find process instance with id %s", processID)
	}

	inst.mu.Lock()
	defer inst.mu.Unlock()

	return inst.bag.Values(), nil
}

func (d *Dispatcher) ListTasks(_ context.Context, processID string) ([]Task, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.instances[processID]; !ok {
		return nil, fmt.Errorf("Cannot find process instance with id %s", processID)
	}

	tasks := make([]Task, 0)

	for _, pending := range d.tasks {
		if pending.task.ProcessID == processID && !pending.completed {
			tasks = append(tasks, pending.task)
		}
	}

	return tasks, nil
}

func (d *Dispatcher) CompleteTask(ctx context.Context, taskID string, vars map[string]any) error {
	d.mu.Lock()

	pending, ok := d.tasks[taskID]
	if !ok {
		d.mu.Unlock()

		return fmt.Errorf("Cannot find task with id %s", taskID)
	}

	if pending.completed {
		d.mu.Unlock()

		return fmt.Errorf("Task is already completed %s", taskID)
	}

	inst := d.instances[pending.task.ProcessID]
	d.mu.Unlock()

	inst.mu.Lock()
	defer inst.mu.Unlock()

	if inst.ended {
		return fmt.Errorf("Process instance is already ended %s", pending.task.ProcessID)
	}

	d.mu.Lock()
	if pending.completed {
		d.mu.Unlock()

		return fmt.Errorf("Task is already completed %s", taskID)
	}

	pending.completed = true
	d.mu.Unlock()

	inst.bag.Merge(vars)
	inst.next++

	return d.advanceLocked(ctx, pending.task.ProcessID, inst)
}

func (d *Dispatcher) advance(ctx context.Context, processID string, inst *instance) error {
	inst.mu.Lock()
	defer inst.mu.Unlock()

	return d.advanceLocked(ctx, processID, inst)
}

// advanceLocked runs delegate steps until the process waits on a human task,
// ends, or a step fails without a retry pending. A failing step whose delegate
// wrote shouldRetry=true during the failing run is re-invoked immediately; the
// delegate's own retry state bounds the loop. The caller holds the instance
// mutex.
func (d *Dispatcher) advanceLocked(ctx context.Context, processID string, inst *instance) error {
	for inst.next < len(inst.definition.Steps) {
		step := inst.definition.Steps[inst.next]

		if step.UserTask != "" {
			d.createTask(processID, step.UserTask)

			return nil
		}

		delegate, err := d.delegates.Create(ctx, step.DelegateID, step.Config)
		if err != nil {
			inst.ended = true

			return err
		}

		inst.executed++

		// A retry decision must come from the run that just failed.
		// Stale or caller-seeded values are discarded, or a failing
		// step that never writes the key would loop forever.
		inst.bag.Delete("shouldRetry")

		err = d.runner.Run(ctx, step.DelegateID, delegate, inst.bag)
		if err != nil {
			if variables.OptionalBool(inst.bag, "shouldRetry", false) {
				d.publishRetryScheduled(ctx, processID, step.DelegateID, inst.bag)

				continue
			}

			if variables.OptionalBool(inst.bag, "escalationRequired", false) {
				d.publishEscalated(ctx, processID, inst.bag)
			}

			inst.ended = true

			return err
		}

		inst.next++
	}

	inst.ended = true

	d.publish(ctx, processID, events.ProcessCompleted{
		BaseEvent:     events.NewBaseEvent(events.ProcessCompletedEvent, processID),
		ProcessKey:    inst.definition.Key,
		StepsExecuted: inst.executed,
	})

	return nil
}

func (d *Dispatcher) createTask(processID, name string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	task := Task{
		ID:        uuid.NewString(),
		ProcessID: processID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	d.tasks[task.ID] = &pendingTask{task: task}

	d.logger.Info("Process waiting on user task", "process_id", processID, "task", name, "task_id", task.ID)
}

func (d *Dispatcher) publishRetryScheduled(ctx context.Context, processID, delegateID string, bag variables.Bag) {
	attempt, _ := variables.OptionalInt(bag, "retryAttempt", 0)
	maxAttempts, _ := variables.OptionalInt(bag, "maxRetryAttempts", 0)

	d.publish(ctx, processID, events.RetryScheduled{
		BaseEvent:   events.NewBaseEvent(events.RetryScheduledEvent, processID),
		DelegateID:  delegateID,
		Attempt:     attempt,
		MaxAttempts: maxAttempts,
		Reason:      variables.OptionalString(bag, "retryReason", ""),
	})
}

func (d *Dispatcher) publishEscalated(ctx context.Context, processID string, bag variables.Bag) {
	attempt, _ := variables.OptionalInt(bag, "retryAttempt", 0)

	d.publish(ctx, processID, events.DisbursementEscalated{
		BaseEvent: events.NewBaseEvent(events.DisbursementEscalatedEvent, processID),
		LoanID:    variables.OptionalString(bag, "loanId", ""),
		Attempts:  attempt,
		Reason:    variables.OptionalString(bag, "failureReason", ""),
	})
}

func (d *Dispatcher) publish(ctx context.Context, key string, event eventbus.Event) {
	if d.eventBus == nil {
		return
	}

	err := d.eventBus.Publish(ctx, key, event)
	if err != nil {
		d.logger.Warn("Failed to publish lifecycle event", "event_type", event.GetType(), "error", err)
	}
}
