package entity

import (
	"bytes"
	"encoding/json"
)

// Field is an optional value that remembers whether it was supplied.
//
//	absent      -> Set == false
//	null        -> Set == true, Null == true
//	value       -> Set == true, Null == false
type Field[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// Some returns a present, non-null field.
func Some[T any](v T) Field[T] {
	return Field[T]{Value: v, Set: true}
}

// Null returns a present field holding an explicit null.
func Null[T any]() Field[T] {
	return Field[T]{Set: true, Null: true}
}

// Get returns the value and true only when the field holds a non-null value.
func (f Field[T]) Get() (T, bool) {
	if !f.Set || f.Null {
		var zero T

		return zero, false
	}

	return f.Value, true
}

// UnmarshalJSON is only invoked for keys present in the payload, which is what
// makes absence observable.
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

// MarshalJSON writes null for absent or null fields.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Set || f.Null {
		return []byte("null"), nil
	}

	return json.Marshal(f.Value)
}
