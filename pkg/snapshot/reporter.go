package snapshot

import (
	"github.com/apotema/pzspec/pkg/runner"
	"github.com/apotema/pzspec/pkg/spec"
)

type reporter struct {
	runner.NopReporter
	m *Manager
}

// Reporter binds a manager to a run: before each test it points the
// manager at that test so unnamed Match calls key their snapshots by
// the test's suite file and full name.
func Reporter(m *Manager) runner.Reporter {
	return reporter{m: m}
}

func (r reporter) TestStarted(ctx *spec.Context, t *spec.TestCase, _ int) {
	r.m.SetCurrentTest(t.Loc.File, ctx.QualifiedName(t))
}
