// Package spec holds the test tree: contexts (describe blocks), test
// cases, lifecycle hooks and the registration session that builds them.
package spec

import "time"

// Action is a zero-argument operation that signals failure by returning
// a non-nil error. The runner also converts panics inside an Action into
// failures, so test bodies may panic through assertion helpers.
type Action func() error

// Location is the source position captured when a context or test was
// registered. Used only for location-based selection.
type Location struct {
	File string
	Line int
}

// IsZero reports whether no location was captured.
func (l Location) IsZero() bool {
	return l.File == "" && l.Line == 0
}

// TestCase is a named unit of work owned by a context. It is created at
// registration time and never mutated afterwards.
type TestCase struct {
	Name   string
	Action Action
	Loc    Location
	Tags   []string
}

// HasTag reports whether the test carries the given tag.
func (t *TestCase) HasTag(tag string) bool {
	for _, tg := range t.Tags {
		if tg == tag {
			return true
		}
	}
	return false
}

// Result records the outcome of one executed test.
type Result struct {
	Name     string        // full hierarchical name
	Passed   bool
	Error    string        // failure message, empty when passed
	Duration time.Duration // body plus its before/after-each hooks
}
