package runner

import "github.com/apotema/pzspec/pkg/spec"

// Reporter is the result-sink contract: the runner pushes execution
// events to any number of reporters (console output, progress bars,
// snapshot bookkeeping). Reporters must not mutate the tree.
type Reporter interface {
	// RunStarted is called once with the number of admitted tests.
	RunStarted(total int)
	// ContextStarted is called before a named context's tests run.
	ContextStarted(ctx *spec.Context, depth int)
	// TestStarted is called before a test's before-each hooks run.
	TestStarted(ctx *spec.Context, t *spec.TestCase, depth int)
	// TestFinished is called with each recorded result, in execution order.
	TestFinished(res spec.Result, depth int)
	// HookFailed is called when a before-all or after-all hook fails.
	// Phase is "before_all" or "after_all".
	HookFailed(ctx *spec.Context, phase, msg string)
	// RunFinished is called once with the final summary.
	RunFinished(sum Summary)
}

// NopReporter implements Reporter with no-ops. Embed it to implement
// only the events a reporter cares about.
type NopReporter struct{}

func (NopReporter) RunStarted(int)                                 {}
func (NopReporter) ContextStarted(*spec.Context, int)              {}
func (NopReporter) TestStarted(*spec.Context, *spec.TestCase, int) {}
func (NopReporter) TestFinished(spec.Result, int)                  {}
func (NopReporter) HookFailed(*spec.Context, string, string)       {}
func (NopReporter) RunFinished(Summary)                            {}
