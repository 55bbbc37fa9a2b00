// Package registry holds the delegate factories known to this deployment,
// keyed by delegate type id.
package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/lcampos/bankflow/pkg/engine"
)

type Registry struct {
	logger    *slog.Logger
	factories map[string]engine.DelegateFactory
}

func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		logger:    logger,
		factories: make(map[string]engine.DelegateFactory),
	}
}

func (r *Registry) Register(factory engine.DelegateFactory) {
	r.factories[factory.ID()] = factory
}

// Create resolves a delegate type id into an executable delegate, validating
// the configuration against the factory's schema first.
func (r *Registry) Create(ctx context.Context, id string, config map[string]any) (engine.Delegate, error) {
	factory, ok := r.factories[id]
	if !ok {
		return nil, fmt.Errorf("delegate type '%s' not registered", id)
	}

	err := validateConfig(factory.Schema(), config)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration for delegate '%s': %w", id, err)
	}

	return factory.Create(ctx, config)
}

// IDs returns the registered delegate type ids, sorted.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.factories))
	for id := range r.factories {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	return ids
}

// Get returns the factory for a delegate type id.
func (r *Registry) Get(id string) (engine.DelegateFactory, bool) {
	factory, ok := r.factories[id]

	return factory, ok
}
