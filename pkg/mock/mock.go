// Package mock provides a call-recording registry keyed by function
// name. A registered strategy decides what an intercepted call returns:
// a fixed value, a sequence, or a custom callback. Test bodies that
// route collaborator calls through a registry can stub them per test
// and assert on the recorded calls afterwards.
package mock

import (
	"fmt"
	"reflect"
)

// Call records one invocation of a mocked function.
type Call struct {
	Args []any
}

// Strategy decides the result of a mocked call. It is a closed set:
// Return, ReturnSequence or Do.
type Strategy interface {
	next(args []any) any
}

type returnValue struct{ v any }

func (s returnValue) next([]any) any { return s.v }

// Return answers every call with a fixed value.
func Return(v any) Strategy { return returnValue{v: v} }

type returnSequence struct {
	vs  []any
	idx *int
}

func (s returnSequence) next([]any) any {
	if len(s.vs) == 0 {
		return nil
	}
	if *s.idx < len(s.vs) {
		v := s.vs[*s.idx]
		*s.idx++
		return v
	}
	// Exhausted sequences keep answering with the last value.
	return s.vs[len(s.vs)-1]
}

// ReturnSequence answers calls with the given values in order; once
// exhausted it repeats the last value.
func ReturnSequence(vs ...any) Strategy {
	return returnSequence{vs: vs, idx: new(int)}
}

type do struct{ fn func(args ...any) any }

func (s do) next(args []any) any { return s.fn(args...) }

// Do delegates every call to fn.
func Do(fn func(args ...any) any) Strategy { return do{fn: fn} }

type entry struct {
	strategy Strategy
	calls    []Call
}

// Registry holds the active mocks for a set of function names.
type Registry struct {
	entries map[string]*entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*entry)}
}

// Install registers a strategy for name and returns a restore function
// that removes it, for deferring inside a test body.
func (r *Registry) Install(name string, s Strategy) (restore func()) {
	r.entries[name] = &entry{strategy: s}
	return func() { delete(r.entries, name) }
}

// Installed reports whether name is currently mocked.
func (r *Registry) Installed(name string) bool {
	_, ok := r.entries[name]
	return ok
}

// Call invokes the mock for name, recording the call.
func (r *Registry) Call(name string, args ...any) (any, error) {
	e, ok := r.entries[name]
	if !ok {
		return nil, fmt.Errorf("no mock registered for %q", name)
	}
	e.calls = append(e.calls, Call{Args: args})
	return e.strategy.next(args), nil
}

// Calls returns the recorded calls for name, nil if not mocked.
func (r *Registry) Calls(name string) []Call {
	if e, ok := r.entries[name]; ok {
		return e.calls
	}
	return nil
}

// CallCount returns how many times the mock for name was called.
func (r *Registry) CallCount(name string) int {
	if e, ok := r.entries[name]; ok {
		return len(e.calls)
	}
	return 0
}

// Clear removes all mocks and their recorded calls.
func (r *Registry) Clear() {
	r.entries = make(map[string]*entry)
}

// AssertCalled fails unless the mock for name was called at least once.
func (r *Registry) AssertCalled(name string) error {
	e, ok := r.entries[name]
	if !ok {
		return fmt.Errorf("no mock registered for %q", name)
	}
	if len(e.calls) == 0 {
		return fmt.Errorf("expected %q to be called, but it was not", name)
	}
	return nil
}

// AssertCalledOnce fails unless the mock for name was called exactly once.
func (r *Registry) AssertCalledOnce(name string) error {
	e, ok := r.entries[name]
	if !ok {
		return fmt.Errorf("no mock registered for %q", name)
	}
	if len(e.calls) != 1 {
		return fmt.Errorf("expected %q to be called once, but it was called %d times", name, len(e.calls))
	}
	return nil
}

// AssertCalledWith fails unless the most recent call to name had
// exactly the given arguments.
func (r *Registry) AssertCalledWith(name string, args ...any) error {
	e, ok := r.entries[name]
	if !ok {
		return fmt.Errorf("no mock registered for %q", name)
	}
	if len(e.calls) == 0 {
		return fmt.Errorf("expected %q to be called, but it was not", name)
	}
	last := e.calls[len(e.calls)-1]
	if !reflect.DeepEqual(last.Args, args) {
		return fmt.Errorf("expected %q to be called with %v, but was called with %v", name, args, last.Args)
	}
	return nil
}
