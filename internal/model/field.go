package model

import (
	"bytes"
	"encoding/json"
)

// Field is a value in a partial-update payload. It tells apart a key that
// was omitted (Set is false) from one explicitly sent as null (Null is true).
type Field[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// NewField returns a Field holding v.
func NewField[T any](v T) Field[T] {
	return Field[T]{Value: v, Set: true}
}

// NullField returns a Field that clears the column.
func NullField[T any]() Field[T] {
	return Field[T]{Set: true, Null: true}
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true

	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		f.Value = zero
		f.Null = true
		return nil
	}

	f.Null = false
	return json.Unmarshal(data, &f.Value)
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Set || f.Null {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// Arg returns the value to bind as a query argument: nil for an explicit
// null, the value otherwise.
func (f Field[T]) Arg() any {
	if f.Null {
		return nil
	}
	return f.Value
}
