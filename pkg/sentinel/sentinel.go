// Package sentinel helps test APIs that encode "no value" as a special
// in-band value (a max-int entity id, a negative index), a common
// pattern at foreign-function boundaries.
package sentinel

import "fmt"

// Sentinel is a named reserved value of some comparable type.
type Sentinel[T comparable] struct {
	name  string
	value T
}

// New returns a sentinel with the given name and reserved value.
func New[T comparable](name string, value T) Sentinel[T] {
	return Sentinel[T]{name: name, value: value}
}

// Value returns the reserved value itself.
func (s Sentinel[T]) Value() T { return s.value }

// Name returns the sentinel's name.
func (s Sentinel[T]) Name() string { return s.name }

// IsValid reports whether v is a real value rather than the sentinel.
func (s Sentinel[T]) IsValid(v T) bool { return v != s.value }

// Guard returns v unchanged, or an error when v is the sentinel.
func (s Sentinel[T]) Guard(v T) (T, error) {
	if v == s.value {
		var zero T
		return zero, fmt.Errorf("got sentinel %s (%v) where a value was expected", s.name, s.value)
	}
	return v, nil
}
