// Package variables provides the process variable bag shared between workflow
// steps and the typed accessors used to read its untyped values.
package variables

// Bag is the read/write surface of the process-scoped variable store the
// workflow engine carries between steps. Keys written by one step are visible
// to every later step until overwritten. The engine serializes access: at most
// one step execution owns the bag at a time, so implementations do not lock.
type Bag interface {
	GetVariable(key string) any
	SetVariable(key string, value any)
	HasVariable(key string) bool
	ProcessInstanceID() string
}

// MapBag is a map-backed Bag used by the in-process dispatcher and by tests.
type MapBag struct {
	processID string
	values    map[string]any
}

func NewMapBag(processID string, seed map[string]any) *MapBag {
	values := make(map[string]any, len(seed))
	for key, value := range seed {
		values[key] = value
	}

	return &MapBag{processID: processID, values: values}
}

func (b *MapBag) GetVariable(key string) any {
	return b.values[key]
}

func (b *MapBag) SetVariable(key string, value any) {
	b.values[key] = value
}

func (b *MapBag) HasVariable(key string) bool {
	_, ok := b.values[key]

	return ok
}

func (b *MapBag) ProcessInstanceID() string {
	return b.processID
}

// Delete removes a variable from the bag.
func (b *MapBag) Delete(key string) {
	delete(b.values, key)
}

// Values returns a snapshot copy of the current variables.
func (b *MapBag) Values() map[string]any {
	snapshot := make(map[string]any, len(b.values))
	for key, value := range b.values {
		snapshot[key] = value
	}

	return snapshot
}

// Merge copies every entry of vars into the bag, overwriting existing keys.
func (b *MapBag) Merge(vars map[string]any) {
	for key, value := range vars {
		b.values[key] = value
	}
}
