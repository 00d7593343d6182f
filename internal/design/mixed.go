package design

import (
	"bytes"
	"encoding/json"
)

// mixedSentinel is how the host marks an attribute that varies across a text range.
const mixedSentinel = `"mixed"`

// Mixed holds either a single value or the host's "mixed" sentinel.
type Mixed[T any] struct {
	value T
	mixed bool
}

// Uniform returns a Mixed holding v.
func Uniform[T any](v T) Mixed[T] {
	return Mixed[T]{value: v}
}

// Varied returns a Mixed holding the sentinel.
func Varied[T any]() Mixed[T] {
	return Mixed[T]{mixed: true}
}

// Get returns the value and whether it is uniform.
func (m Mixed[T]) Get() (T, bool) {
	return m.value, !m.mixed
}

// IsMixed reports whether the sentinel is held.
func (m Mixed[T]) IsMixed() bool {
	return m.mixed
}

// Or returns the value, or fallback when the sentinel is held.
func (m Mixed[T]) Or(fallback T) T {
	if m.mixed {
		return fallback
	}
	return m.value
}

// MarshalJSON implements json.Marshaler.
func (m Mixed[T]) MarshalJSON() ([]byte, error) {
	if m.mixed {
		return []byte(mixedSentinel), nil
	}
	return json.Marshal(m.value)
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *Mixed[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte(mixedSentinel)) {
		var zero T
		m.value, m.mixed = zero, true
		return nil
	}
	m.mixed = false
	return json.Unmarshal(data, &m.value)
}
