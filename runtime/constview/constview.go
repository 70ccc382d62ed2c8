// Package constview provides a read-only mapping view over a set of named
// constants, for callers that want dictionary-style access to values that
// must never change at runtime.
package constview

import (
	"errors"
	"fmt"
	"sort"
)

// ErrReadOnly is returned by any attempt to add or change a value.
var ErrReadOnly = errors.New("constant view is read-only")

// View is an immutable named string-to-value mapping. The contents are
// copied at construction and cannot be changed afterwards.
type View struct {
	name   string
	values map[string]any
}

// New builds a view over the given constants. The map is copied; later
// changes to the caller's map do not affect the view.
func New(name string, values map[string]any) *View {
	copied := make(map[string]any, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return &View{name: name, values: copied}
}

// Name returns the view's name.
func (v *View) Name() string {
	return v.name
}

// Get returns the value bound to a key.
func (v *View) Get(key string) (any, bool) {
	val, ok := v.values[key]
	return val, ok
}

// Keys returns all constant names, sorted.
func (v *View) Keys() []string {
	keys := make([]string, 0, len(v.values))
	for k := range v.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Values returns all constant values, in key order.
func (v *View) Values() []any {
	keys := v.Keys()
	vals := make([]any, 0, len(keys))
	for _, k := range keys {
		vals = append(vals, v.values[k])
	}
	return vals
}

// Len returns the number of constants.
func (v *View) Len() int {
	return len(v.values)
}

// Set always fails: views cannot add or change values during runtime.
func (v *View) Set(key string, value any) error {
	return fmt.Errorf("view %q cannot set %q: %w", v.name, key, ErrReadOnly)
}
