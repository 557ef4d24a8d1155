package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/apotema/pzspec/pkg/runner"
	"github.com/apotema/pzspec/pkg/spec"
)

// ConsoleReporter prints the run as it happens: context headers with
// indentation, one line per test with its duration, hook failures.
type ConsoleReporter struct {
	runner.NopReporter
}

// NewConsoleReporter returns a verbose console reporter.
func NewConsoleReporter() *ConsoleReporter {
	return &ConsoleReporter{}
}

// RunStarted prints the run header.
func (r *ConsoleReporter) RunStarted(total int) {
	line := strings.Repeat("=", 60)
	fmt.Println()
	color.Cyan(line)
	color.Cyan("Running %d test(s)", total)
	color.Cyan(line)
	fmt.Println()
}

// ContextStarted prints the context name underlined at its depth.
func (r *ConsoleReporter) ContextStarted(ctx *spec.Context, depth int) {
	prefix := indent(depth)
	fmt.Printf("%s%s\n", prefix, ctx.Name)
	fmt.Printf("%s%s\n", prefix, strings.Repeat("-", 60-len(prefix)))
}

// TestFinished prints one line per executed test.
func (r *ConsoleReporter) TestFinished(res spec.Result, depth int) {
	prefix := indent(depth)
	ms := float64(res.Duration.Microseconds()) / 1000.0
	if res.Passed {
		color.Green("%s  ✓ %s (%.2fms)", prefix, leafName(res.Name), ms)
		return
	}
	color.Red("%s  ✗ %s (%.2fms)", prefix, leafName(res.Name), ms)
	color.Red("%s    Error: %s", prefix, res.Error)
}

// HookFailed reports a before-all or after-all failure.
func (r *ConsoleReporter) HookFailed(ctx *spec.Context, phase, msg string) {
	color.Red("%s  %s FAILED: %s", indent(ctx.Depth()), strings.ToUpper(phase), msg)
}

func indent(depth int) string {
	if depth <= 1 {
		return ""
	}
	return strings.Repeat("  ", depth-1)
}

func leafName(fullName string) string {
	if i := strings.LastIndex(fullName, "::"); i >= 0 {
		return fullName[i+2:]
	}
	return fullName
}
