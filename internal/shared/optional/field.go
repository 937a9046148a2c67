// Package optional provides a three-state field for partial updates: a JSON document can
// omit a field, set it to null, or give it a value, and each case means something
// different to the caller.
package optional

import (
	"bytes"
	"encoding/json"
)

type state uint8

const (
	unset state = iota
	null
	present
)

// Field holds an optional value of type T. The zero value is unset.
type Field[T any] struct {
	value T
	state state
}

// Of returns a Field holding v.
func Of[T any](v T) Field[T] {
	return Field[T]{value: v, state: present}
}

// Null returns a Field that was explicitly set to null.
func Null[T any]() Field[T] {
	return Field[T]{state: null}
}

// FromPtr returns Null for a nil pointer and Of(*p) otherwise.
func FromPtr[T any](p *T) Field[T] {
	if p == nil {
		return Null[T]()
	}
	return Of(*p)
}

// IsSet reports whether the field was supplied at all, null included.
func (f Field[T]) IsSet() bool { return f.state != unset }

// IsNull reports whether the field was explicitly set to null.
func (f Field[T]) IsNull() bool { return f.state == null }

// Get returns the value and true when the field carries a value.
func (f Field[T]) Get() (T, bool) {
	return f.value, f.state == present
}

// OrElse returns the value when present and fallback otherwise.
func (f Field[T]) OrElse(fallback T) T {
	if f.state == present {
		return f.value
	}
	return fallback
}

// UnmarshalJSON records null separately from a value. encoding/json does not call it for
// absent keys, which is what leaves a field unset.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		f.value = zero
		f.state = null
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	f.value = v
	f.state = present
	return nil
}

// MarshalJSON writes the value, or null for unset and null fields.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if f.state != present {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}
