package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/apotema/pzspec/internal/cli"
	"github.com/apotema/pzspec/internal/config"
	"github.com/apotema/pzspec/internal/storage"
	"github.com/apotema/pzspec/internal/ui"
	"github.com/apotema/pzspec/pkg/runner"
	"github.com/apotema/pzspec/pkg/selection"
	"github.com/apotema/pzspec/pkg/snapshot"
	"github.com/apotema/pzspec/pkg/spec"
)

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	session   *spec.Session
	storage   storage.Storage
	formatter *ui.Formatter
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	session *spec.Session,
	st storage.Storage,
	formatter *ui.Formatter,
) *RunCommand {
	return &RunCommand{
		config:    cfg,
		session:   session,
		storage:   st,
		formatter: formatter,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	root := rc.session.Root()
	if root.CountTests() == 0 {
		return fmt.Errorf("no tests registered")
	}

	sel, err := buildSelectionSpec(rc.config)
	if err != nil {
		return err
	}
	admitted, err := selection.Select(root, sel)
	if err != nil {
		return err
	}

	// Zero matches under an active filter is a hard error, distinct
	// from a passing run with zero failures.
	if sel.Active() && len(admitted) == 0 {
		if sel.HasLocation() {
			return fmt.Errorf("no tests found at %s:%d", sel.File, sel.Line)
		}
		return fmt.Errorf("no tests matched the given filters")
	}

	snaps := snapshot.NewManager(rc.config.GetSnapshotPath(), rc.config.Flags.UpdateSnapshots)

	opts := []runner.Option{runner.WithReporter(snapshot.Reporter(snaps))}
	if rc.config.Flags.Quiet {
		opts = append(opts, runner.WithReporter(ui.NewProgressReporter()))
	} else {
		opts = append(opts, runner.WithReporter(ui.NewConsoleReporter()))
	}
	if rc.config.Flags.FailFast {
		opts = append(opts, runner.WithFailFast())
	}

	sum := runner.New(opts...).Run(root, admitted)

	rc.formatter.PrintSummary(sum)

	failures := collectFailures(root, sum)
	if err := rc.storage.Save(sum, failures); err != nil {
		return fmt.Errorf("failed to save test results: %w", err)
	}
	rc.recordHistory(sum)

	if !sum.OK() {
		return fmt.Errorf("%d test(s) failed", sum.Failed)
	}
	return nil
}

// buildSelectionSpec translates parsed flags into the engine's plain
// filter data.
func buildSelectionSpec(cfg *config.Config) (selection.Spec, error) {
	sel := selection.Spec{
		Pattern:     cfg.Flags.Pattern,
		Regex:       cfg.Flags.Regex,
		IncludeTags: cfg.IncludeTagList(),
		ExcludeTags: cfg.ExcludeTagList(),
	}
	if cfg.Flags.Target != "" {
		file, line, err := cli.ParseTarget(cfg.Flags.Target)
		if err != nil {
			return selection.Spec{}, err
		}
		sel.File = file
		sel.Line = line
	}
	return sel, nil
}

// collectFailures maps failed results back to their registration sites.
func collectFailures(root *spec.Context, sum runner.Summary) []storage.Failure {
	locs := make(map[string]spec.Location)
	root.EachTest(func(ctx *spec.Context, t *spec.TestCase) {
		locs[ctx.QualifiedName(t)] = t.Loc
	})

	var failures []storage.Failure
	for _, res := range sum.Results {
		if res.Passed {
			continue
		}
		loc := locs[res.Name]
		failures = append(failures, storage.Failure{
			TestName: res.Name,
			File:     loc.File,
			Line:     loc.Line,
			Message:  res.Error,
		})
	}
	return failures
}

// recordHistory best-effort appends the run to the sqlite history.
func (rc *RunCommand) recordHistory(sum runner.Summary) {
	hist, err := storage.OpenHistory(rc.config.GetHistoryPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return
	}
	defer hist.Close()

	meta := storage.RunMeta{
		TotalTests:      sum.Total(),
		PassedTests:     sum.Passed,
		FailedTests:     sum.Failed,
		Duration:        sum.Duration.String(),
		DurationSeconds: sum.Duration.Seconds(),
		Timestamp:       nowTimestamp(),
	}
	if err := hist.Record(meta); err != nil {
		color.Yellow("Warning: %v", err)
	}
}

func nowTimestamp() string {
	return time.Now().Format(time.RFC3339)
}
