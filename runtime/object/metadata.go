package object

import (
	"fmt"
	"sort"
)

// Metadata is the immutable per-instance record of resolved construction
// argument bindings. It is created exactly once, at the end of the full
// initializer chain of the most-derived class, and lives and dies with its
// instance.
type Metadata struct {
	values map[string]any
}

func newMetadata(values map[string]any) *Metadata {
	return &Metadata{values: values}
}

// Get returns the value bound to a parameter name.
func (m *Metadata) Get(name string) (any, bool) {
	v, ok := m.values[name]
	return v, ok
}

// Names returns all recorded parameter names, sorted.
func (m *Metadata) Names() []string {
	names := make([]string, 0, len(m.values))
	for name := range m.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of recorded bindings.
func (m *Metadata) Len() int {
	return len(m.values)
}

// Map returns a copy of the bindings to prevent external mutation.
func (m *Metadata) Map() map[string]any {
	result := make(map[string]any, len(m.values))
	for k, v := range m.values {
		result[k] = v
	}
	return result
}

// Set always fails with ErrImmutableMetadata: metadata is read-only after
// construction, and any write is a programming error.
func (m *Metadata) Set(name string, value any) error {
	return fmt.Errorf("cannot set %q: %w", name, ErrImmutableMetadata)
}
