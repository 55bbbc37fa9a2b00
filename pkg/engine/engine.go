package engine

import (
	"context"
	"time"
)

// Task is a human work item a process is waiting on.
type Task struct {
	ID        string    `json:"id"`
	ProcessID string    `json:"process_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Engine is the process and task lifecycle surface this layer consumes from
// the workflow engine. The production implementation is external; the
// in-process Dispatcher implements the same surface for development and
// tests. Failures are reported as plain-text errors in the engine's message
// vocabulary and classified by callers via the faults registry.
type Engine interface {
	StartProcess(ctx context.Context, processKey string, vars map[string]any) (string, error)
	TerminateProcess(ctx context.Context, processID string) error
	Variables(ctx context.Context, processID string) (map[string]any, error)
	ListTasks(ctx context.Context, processID string) ([]Task, error)
	CompleteTask(ctx context.Context, taskID string, vars map[string]any) error
}
