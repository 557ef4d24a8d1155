// Package runner executes a spec tree depth-first and collects results.
// Execution is strictly sequential: no test runs concurrently with
// another and hooks run serially.
package runner

import (
	"fmt"
	"time"

	"github.com/apotema/pzspec/pkg/selection"
	"github.com/apotema/pzspec/pkg/spec"
)

// Summary aggregates one run.
type Summary struct {
	Passed   int
	Failed   int
	Results  []spec.Result // execution order, stable after the run
	Duration time.Duration
}

// OK reports whether the run had no failing tests.
func (s Summary) OK() bool { return s.Failed == 0 }

// Total returns the number of executed tests.
func (s Summary) Total() int { return s.Passed + s.Failed }

// Option configures a Runner.
type Option func(*Runner)

// WithReporter attaches a reporter; may be given multiple times.
func WithReporter(r Reporter) Option {
	return func(rn *Runner) { rn.reporters = append(rn.reporters, r) }
}

// WithFailFast stops scheduling new tests after the first failure.
// Already-recorded results are kept.
func WithFailFast() Option {
	return func(rn *Runner) { rn.failFast = true }
}

// Runner walks the context tree and records one Result per admitted
// test. Failures of any kind are captured as data; nothing escapes Run
// as an error or panic.
type Runner struct {
	reporters []Reporter
	failFast  bool

	results []spec.Result
	stopped bool
}

// New returns a runner with the given options.
func New(opts ...Option) *Runner {
	r := &Runner{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes every admitted test under root and returns the summary.
// A nil admitted set admits all tests. The tree's owning session is
// sealed first, so a test body that re-enters registration panics and
// is recorded as that test's failure.
func (r *Runner) Run(root *spec.Context, admitted selection.Set) Summary {
	if s := root.Session(); s != nil {
		s.Seal()
	}

	r.results = nil
	r.stopped = false

	total := countAdmitted(root, admitted)
	for _, rep := range r.reporters {
		rep.RunStarted(total)
	}

	start := time.Now()
	passed, failed := r.runContext(root, admitted, 0)
	sum := Summary{
		Passed:   passed,
		Failed:   failed,
		Results:  r.results,
		Duration: time.Since(start),
	}

	for _, rep := range r.reporters {
		rep.RunFinished(sum)
	}
	return sum
}

// runContext executes one context and its descendants, returning the
// subtree's pass/fail counts.
func (r *Runner) runContext(ctx *spec.Context, admitted selection.Set, depth int) (passed, failed int) {
	if !hasAdmitted(ctx, admitted) {
		return 0, 0
	}

	if ctx.Name != "" {
		for _, rep := range r.reporters {
			rep.ContextStarted(ctx, depth)
		}
	}

	// A before-all failure aborts the whole subtree: no tests, no
	// children, no after-all.
	for _, hook := range ctx.BeforeAll() {
		if msg, ok := invoke(hook); !ok {
			for _, rep := range r.reporters {
				rep.HookFailed(ctx, "before_all", msg)
			}
			return 0, 0
		}
	}

	before := ctx.EffectiveBeforeEach()
	after := ctx.EffectiveAfterEach()

	for _, t := range ctx.Tests() {
		if r.stopped {
			break
		}
		if !admitted.Has(t) {
			continue
		}
		for _, rep := range r.reporters {
			rep.TestStarted(ctx, t, depth)
		}
		res := r.runTest(ctx, t, before, after)
		r.results = append(r.results, res)
		if res.Passed {
			passed++
		} else {
			failed++
			if r.failFast {
				r.stopped = true
			}
		}
		for _, rep := range r.reporters {
			rep.TestFinished(res, depth)
		}
	}

	for _, child := range ctx.Children() {
		if r.stopped {
			break
		}
		cp, cf := r.runContext(child, admitted, depth+1)
		passed += cp
		failed += cf
	}

	for _, hook := range ctx.AfterAll() {
		if msg, ok := invoke(hook); !ok {
			for _, rep := range r.reporters {
				rep.HookFailed(ctx, "after_all", msg)
			}
		}
	}

	return passed, failed
}

// runTest runs one test with its effective hooks. A before-each failure
// skips the body but after-each hooks still run; the first after-each
// failure on an otherwise-passing test rewrites its outcome.
func (r *Runner) runTest(ctx *spec.Context, t *spec.TestCase, before, after []spec.Action) spec.Result {
	start := time.Now()

	var failMsg string
	failed := false

	for _, hook := range before {
		if msg, ok := invoke(hook); !ok {
			failed = true
			failMsg = msg
			break
		}
	}

	if !failed {
		if msg, ok := invoke(t.Action); !ok {
			failed = true
			failMsg = msg
		}
	}

	for _, hook := range after {
		if msg, ok := invoke(hook); !ok && !failed {
			failed = true
			failMsg = "after_each failed: " + msg
		}
	}

	return spec.Result{
		Name:     ctx.QualifiedName(t),
		Passed:   !failed,
		Error:    failMsg,
		Duration: time.Since(start),
	}
}

// invoke runs an action, converting a returned error or a panic into a
// failure message at the catch boundary.
func invoke(a spec.Action) (msg string, ok bool) {
	defer func() {
		if p := recover(); p != nil {
			msg = fmt.Sprintf("panic: %v", p)
			ok = false
		}
	}()
	if a == nil {
		return "", true
	}
	if err := a(); err != nil {
		return err.Error(), false
	}
	return "", true
}

func hasAdmitted(ctx *spec.Context, admitted selection.Set) bool {
	if admitted == nil {
		return ctx.CountTests() > 0
	}
	found := false
	ctx.EachTest(func(_ *spec.Context, t *spec.TestCase) {
		if admitted.Has(t) {
			found = true
		}
	})
	return found
}

func countAdmitted(root *spec.Context, admitted selection.Set) int {
	if admitted == nil {
		return root.CountTests()
	}
	n := 0
	root.EachTest(func(_ *spec.Context, t *spec.TestCase) {
		if admitted.Has(t) {
			n++
		}
	})
	return n
}
