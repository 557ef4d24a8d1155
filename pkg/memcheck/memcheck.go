// Package memcheck detects leaks in code under test that allocates
// through an instrumented allocator. The allocator is an external
// collaborator reached through the Probe interface; typically it wraps
// counters exported by a native library's tracking allocator.
package memcheck

import (
	"fmt"

	"github.com/apotema/pzspec/pkg/spec"
)

// Probe reads allocation state from the code under test.
type Probe interface {
	// AllocationCount returns the number of live allocations.
	AllocationCount() uint64
	// LeakedBytes returns the number of bytes currently leaked.
	LeakedBytes() uint64
	// Reset clears the allocator's tracking state.
	Reset()
}

// LeakReport summarizes allocation deltas across a tracked section.
type LeakReport struct {
	LeakedBytes     uint64
	AllocationDelta int64 // allocations gained (positive) or released
}

// HasLeaks reports whether the tracked section leaked memory.
func (r LeakReport) HasLeaks() bool {
	return r.LeakedBytes > 0 || r.AllocationDelta > 0
}

func (r LeakReport) String() string {
	if !r.HasLeaks() {
		return "no leaks detected"
	}
	return fmt.Sprintf("%d byte(s) leaked across %d allocation(s)", r.LeakedBytes, r.AllocationDelta)
}

// Tracker polls a probe around a section of work.
type Tracker struct {
	probe      Probe
	startCount uint64
}

// NewTracker returns a tracker over the given probe.
func NewTracker(p Probe) *Tracker {
	return &Tracker{probe: p}
}

// Start records the allocation baseline.
func (t *Tracker) Start() {
	t.startCount = t.probe.AllocationCount()
}

// Stop returns the leak report since Start.
func (t *Tracker) Stop() LeakReport {
	return LeakReport{
		LeakedBytes:     t.probe.LeakedBytes(),
		AllocationDelta: int64(t.probe.AllocationCount()) - int64(t.startCount),
	}
}

// Check runs fn between Start and Stop. The action's own error is
// returned alongside the report.
func (t *Tracker) Check(fn spec.Action) (LeakReport, error) {
	t.Start()
	var err error
	if fn != nil {
		err = fn()
	}
	return t.Stop(), err
}

// Hooks returns before-each and after-each actions for a context whose
// tests must not leak: the before hook resets and baselines the probe,
// the after hook fails the test when leaks are detected.
func Hooks(t *Tracker) (before, after spec.Action) {
	before = func() error {
		t.probe.Reset()
		t.Start()
		return nil
	}
	after = func() error {
		if report := t.Stop(); report.HasLeaks() {
			return fmt.Errorf("memory leak: %s", report)
		}
		return nil
	}
	return before, after
}
