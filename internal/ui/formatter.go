package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/apotema/pzspec/internal/storage"
	"github.com/apotema/pzspec/pkg/runner"
	"github.com/apotema/pzspec/pkg/selection"
	"github.com/apotema/pzspec/pkg/spec"
)

// Formatter formats and displays output
type Formatter struct{}

// NewFormatter creates a new Formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

// PrintSummary displays run statistics and, on failure, the failure tree.
func (f *Formatter) PrintSummary(sum runner.Summary) {
	fmt.Print("\n")
	color.Cyan("╔═══════════════════════════════════════════════════════════════╗")
	color.Cyan("║                    Test Execution Statistics                  ║")
	color.Cyan("╚═══════════════════════════════════════════════════════════════╝\n")

	fmt.Println("┌─────────────────────────────────┬─────────────────────────────┐")
	fmt.Printf("│ %-31s │ ", "Total Tests")
	color.White("%-27d │\n", sum.Total())
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")
	fmt.Printf("│ %-31s │ ", "Passed")
	color.Green("%-27d │\n", sum.Passed)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")
	fmt.Printf("│ %-31s │ ", "Failed")
	color.Red("%-27d │\n", sum.Failed)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")
	fmt.Printf("│ %-31s │ ", "Duration")
	color.White("%-27s │\n", fmt.Sprintf("%.2fs", sum.Duration.Seconds()))
	fmt.Println("└─────────────────────────────────┴─────────────────────────────┘")

	fmt.Println()
	if sum.OK() {
		color.Green("✓ All tests passed!")
		return
	}
	color.Red("✗ %d test(s) failed", sum.Failed)
	fmt.Println()
	f.printFailureTree(sum.Results)
}

// printFailureTree prints failed tests grouped by their context chain.
func (f *Formatter) printFailureTree(results []spec.Result) {
	for _, res := range results {
		if res.Passed {
			continue
		}
		chain, leaf := splitName(res.Name)
		for i, part := range chain {
			color.Cyan("%s|_ %s", strings.Repeat("  ", i), part)
		}
		color.Red("%s|_ %s", strings.Repeat("  ", len(chain)), leaf)
		color.Yellow("%s   %s", strings.Repeat("  ", len(chain)), res.Error)
	}
}

// PrintTestTree prints the registered contexts and tests, marking which
// ones the active filters admit.
func (f *Formatter) PrintTestTree(root *spec.Context, admitted selection.Set, filtered bool) {
	total := root.CountTests()
	if filtered {
		n := 0
		root.EachTest(func(_ *spec.Context, t *spec.TestCase) {
			if admitted.Has(t) {
				n++
			}
		})
		color.Green("Found %d test(s), %d admitted by filters:\n", total, n)
	} else {
		color.Green("Found %d test(s):\n", total)
	}
	f.printContext(root, admitted, filtered, 0)
}

func (f *Formatter) printContext(ctx *spec.Context, admitted selection.Set, filtered bool, depth int) {
	prefix := strings.Repeat("  ", depth)
	if ctx.Name != "" {
		tagNote := ""
		if tags := ctx.Tags(); len(tags) > 0 {
			tagNote = " [" + strings.Join(tags, ",") + "]"
		}
		color.Cyan("%s├── %s%s", prefix, ctx.Name, tagNote)
		prefix += "  "
	}
	for _, t := range ctx.Tests() {
		if filtered && !admitted.Has(t) {
			fmt.Printf("%s│   %s\n", prefix, color.HiBlackString("%s (filtered out)", t.Name))
			continue
		}
		fmt.Printf("%s│   %s\n", prefix, color.YellowString(t.Name))
	}
	next := depth
	if ctx.Name != "" {
		next++
	}
	for _, child := range ctx.Children() {
		f.printContext(child, admitted, filtered, next)
	}
}

// PrintHistory prints past run summaries, newest first.
func (f *Formatter) PrintHistory(runs []storage.RunMeta) {
	if len(runs) == 0 {
		color.Yellow("No recorded runs")
		return
	}
	fmt.Printf("%-25s %8s %8s %8s %10s\n", "TIMESTAMP", "TOTAL", "PASSED", "FAILED", "DURATION")
	for _, m := range runs {
		line := fmt.Sprintf("%-25s %8d %8d %8d %9.2fs", m.Timestamp, m.TotalTests, m.PassedTests, m.FailedTests, m.DurationSeconds)
		if m.FailedTests > 0 {
			color.Red("%s", line)
		} else {
			fmt.Println(line)
		}
	}
}

// splitName splits a full result name into its context chain and test name.
func splitName(fullName string) (chain []string, leaf string) {
	leaf = fullName
	if i := strings.LastIndex(fullName, "::"); i >= 0 {
		chain = strings.Split(fullName[:i], " > ")
		leaf = fullName[i+2:]
	}
	return chain, leaf
}
