// Package engine defines the contracts between the external workflow engine
// and the task delegates, the runner that executes one delegate invocation,
// and an in-process step dispatcher used for development and tests.
package engine

import (
	"context"
	"log/slog"

	"github.com/lcampos/bankflow/pkg/variables"
)

// Delegate is a single-purpose unit of work invoked by the workflow engine at
// one step of a process. All communication happens through bag reads and
// writes: a delegate returns nil on success and a typed error on failure,
// after writing the variables that describe the outcome. A delegate makes
// exactly one call to the core-banking API and never swallows a failure.
type Delegate interface {
	Execute(ctx context.Context, bag variables.Bag, logger *slog.Logger) error
}

// DelegateFactory creates delegate instances and provides metadata about the
// delegate type.
type DelegateFactory interface {
	// ID returns the unique identifier for this delegate type.
	ID() string

	// Name returns the human-readable name for this delegate type.
	Name() string

	// Description returns a description of what this delegate does.
	Description() string

	// Schema returns the JSON schema for configuring this delegate.
	Schema() map[string]any

	// Create creates a new delegate instance with the given configuration.
	Create(ctx context.Context, config map[string]any) (Delegate, error)
}

// DelegateSource resolves a delegate type id and configuration into an
// executable delegate. The registry is the production implementation.
type DelegateSource interface {
	Create(ctx context.Context, id string, config map[string]any) (Delegate, error)
}
