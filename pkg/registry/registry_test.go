package registry

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/lcampos/bankflow/pkg/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFactory struct {
	id     string
	schema map[string]any
}

func (f *stubFactory) ID() string             { return f.id }
func (f *stubFactory) Name() string           { return f.id }
func (f *stubFactory) Description() string    { return "stub" }
func (f *stubFactory) Schema() map[string]any { return f.schema }

func (f *stubFactory) Create(_ context.Context, _ map[string]any) (engine.Delegate, error) {
	return nil, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRegistry_CreateUnknownDelegate(t *testing.T) {
	reg := NewRegistry(testLogger())

	_, err := reg.Create(context.Background(), "missing", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not registered")
}

func TestRegistry_SchemaValidation(t *testing.T) {
	schema := map[string]any{
		"type":     "object",
		"required": []any{"threshold"},
		"properties": map[string]any{
			"threshold": map[string]any{"type": "number"},
		},
	}

	reg := NewRegistry(testLogger())
	reg.Register(&stubFactory{id: "guarded", schema: schema})

	_, err := reg.Create(context.Background(), "guarded", map[string]any{"threshold": "not a number"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration for delegate 'guarded'")

	_, err = reg.Create(context.Background(), "guarded", map[string]any{})
	require.Error(t, err, "missing required property is rejected")

	_, err = reg.Create(context.Background(), "guarded", map[string]any{"threshold": 10.0})
	require.NoError(t, err)
}

func TestRegistry_NilSchemaAcceptsAnything(t *testing.T) {
	reg := NewRegistry(testLogger())
	reg.Register(&stubFactory{id: "open"})

	_, err := reg.Create(context.Background(), "open", map[string]any{"anything": true})
	require.NoError(t, err)
}

func TestRegistry_IDsSorted(t *testing.T) {
	reg := NewRegistry(testLogger())
	reg.Register(&stubFactory{id: "zeta"})
	reg.Register(&stubFactory{id: "alpha"})
	reg.Register(&stubFactory{id: "mid"})

	assert.Equal(t, []string{"alpha", "mid", "zeta"}, reg.IDs())

	_, ok := reg.Get("alpha")
	assert.True(t, ok)
	_, ok = reg.Get("nope")
	assert.False(t, ok)
}
