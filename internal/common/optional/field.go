// Package optional provides a JSON field wrapper that tells an absent key apart
// from a key that is present, including one explicitly set to null.
package optional

import (
	"bytes"
	"encoding/json"
)

// Field holds a value decoded from a JSON object key.
//
// The zero value means the key was absent. Set is true whenever the key appeared
// in the document; Null is additionally true when its value was the literal null.
type Field[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// Of returns a present, non-null field.
func Of[T any](v T) Field[T] {
	return Field[T]{Value: v, Set: true}
}

// UnmarshalJSON is only invoked by encoding/json when the key is present.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		f.Null = true
		var zero T
		f.Value = zero
		return nil
	}
	f.Null = false
	return json.Unmarshal(data, &f.Value)
}

// MarshalJSON encodes absent and null fields as null.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Set || f.Null {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// Ptr returns nil when the key was absent and a pointer to the value otherwise.
// A present null yields a pointer to the zero value so validators still see it.
func (f Field[T]) Ptr() *T {
	if !f.Set {
		return nil
	}
	v := f.Value
	return &v
}

// Get returns the value and whether it should be applied.
func (f Field[T]) Get() (T, bool) {
	return f.Value, f.Set && !f.Null
}
