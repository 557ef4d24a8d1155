package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/apotema/pzspec/pkg/runner"
	"github.com/apotema/pzspec/pkg/spec"
)

// ProgressReporter renders a live progress bar with running pass/fail
// counts. Used in quiet mode instead of the verbose console reporter.
type ProgressReporter struct {
	runner.NopReporter
	bar    *progressbar.ProgressBar
	passed int
	failed int
}

// NewProgressReporter returns an unstarted progress reporter.
func NewProgressReporter() *ProgressReporter {
	return &ProgressReporter{}
}

// RunStarted creates the bar sized to the admitted test count.
func (p *ProgressReporter) RunStarted(total int) {
	p.passed = 0
	p.failed = 0
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription(p.describe()),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)
}

// TestFinished advances the bar and refreshes the counts.
func (p *ProgressReporter) TestFinished(res spec.Result, _ int) {
	if p.bar == nil {
		return
	}
	if res.Passed {
		p.passed++
	} else {
		p.failed++
	}
	p.bar.Set(p.passed + p.failed)
	p.bar.Describe(p.describe())
}

// RunFinished completes the bar.
func (p *ProgressReporter) RunFinished(runner.Summary) {
	if p.bar != nil {
		p.bar.Finish()
	}
}

func (p *ProgressReporter) describe() string {
	return color.CyanString("Running tests: ") +
		color.GreenString("[passed: %d", p.passed) +
		" | " +
		color.RedString("failed: %d]", p.failed)
}
