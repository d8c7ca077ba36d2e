// Package patch models the three states of a field in a partial update:
// absent (leave the stored value alone), explicit null (clear it) and an
// explicit value (overwrite it).
package patch

import (
	"bytes"
	"encoding/json"
)

// Field is a three-state update value. The zero value is absent.
// As a JSON struct field it becomes present only when the key appears in the
// document, so omission and null stay distinguishable.
type Field[T any] struct {
	present bool
	null    bool
	value   T
}

// Value returns a present field holding v.
func Value[T any](v T) Field[T] {
	return Field[T]{present: true, value: v}
}

// Null returns a present field that clears the stored value.
func Null[T any]() Field[T] {
	return Field[T]{present: true, null: true}
}

// Present reports whether the field was supplied at all.
func (f Field[T]) Present() bool { return f.present }

// IsNull reports whether the field was supplied as an explicit null.
func (f Field[T]) IsNull() bool { return f.present && f.null }

// HasValue reports whether the field was supplied with a non-null value.
func (f Field[T]) HasValue() bool { return f.present && !f.null }

// Get returns the supplied value and whether one exists.
func (f Field[T]) Get() (T, bool) {
	return f.value, f.HasValue()
}

// Ptr returns a pointer to the supplied value, nil for null or absent.
func (f Field[T]) Ptr() *T {
	if !f.HasValue() {
		return nil
	}
	v := f.value
	return &v
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.present = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		f.null = true
		var zero T
		f.value = zero
		return nil
	}
	f.null = false
	return json.Unmarshal(data, &f.value)
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.HasValue() {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}

// Apply writes f into a nullable destination: absent leaves dst untouched,
// null clears it, a value replaces it.
func Apply[T any](dst **T, f Field[T]) {
	if !f.present {
		return
	}
	*dst = f.Ptr()
}
