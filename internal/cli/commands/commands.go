package commands

import (
	"github.com/spf13/cobra"

	"github.com/apotema/pzspec/internal/cli"
	"github.com/apotema/pzspec/internal/config"
	"github.com/apotema/pzspec/internal/storage"
	"github.com/apotema/pzspec/internal/ui"
	"github.com/apotema/pzspec/pkg/spec"
)

// Commands holds all CLI commands
type Commands struct {
	Run      *RunCommand
	List     *ListCommand
	Failures *FailuresCommand
	History  *HistoryCommand
}

// NewCommands creates all commands with dependencies. The session is
// the registration surface the embedding test program has filled in.
func NewCommands(cfg *config.Config, session *spec.Session) *Commands {
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter()
	viewer := ui.NewFailureViewer(jsonStorage)

	return &Commands{
		Run:      NewRunCommand(cfg, session, jsonStorage, formatter),
		List:     NewListCommand(cfg, session, formatter),
		Failures: NewFailuresCommand(jsonStorage, viewer),
		History:  NewHistoryCommand(cfg, formatter),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	runCmd := &cobra.Command{
		Use:   "run [file:line]",
		Short: "Run registered tests",
		Long:  "Execute the registered tests, optionally narrowed by location, name pattern and tags",
		Args:  cobra.MaximumNArgs(1),
		RunE:  c.Run.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				flags.Target = args[0]
			}
			cfg.Flags = flags.ToConfigFlags()
			return nil
		},
	}
	runCmd.Flags().StringVarP(&flags.Pattern, "filter", "k", "", "Filter tests by name pattern. Supports boolean operators: 'Vec2 and add', 'Vec2 or sub', 'not slow'")
	runCmd.Flags().BoolVar(&flags.Regex, "regex", false, "Treat the filter pattern as a regular expression")
	runCmd.Flags().StringVar(&flags.Tags, "tags", "", "Only run tests with these tags (comma-separated)")
	runCmd.Flags().StringVar(&flags.ExcludeTags, "exclude-tags", "", "Exclude tests with these tags (comma-separated)")
	runCmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop on first test failure")
	runCmd.Flags().BoolVar(&flags.UpdateSnapshots, "update-snapshots", false, "Update snapshots instead of comparing against them")
	runCmd.Flags().BoolVarP(&flags.Quiet, "quiet", "q", false, "Progress bar only, no per-test output")
	rootCmd.AddCommand(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List registered tests",
		Long:  "Print the registered context/test tree without executing it",
		RunE:  c.List.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Flags = flags.ToConfigFlags()
			return nil
		},
	}
	listCmd.Flags().StringVarP(&flags.Pattern, "filter", "k", "", "Filter tests by name pattern")
	listCmd.Flags().BoolVar(&flags.Regex, "regex", false, "Treat the filter pattern as a regular expression")
	listCmd.Flags().StringVar(&flags.Tags, "tags", "", "Only list tests with these tags (comma-separated)")
	listCmd.Flags().StringVar(&flags.ExcludeTags, "exclude-tags", "", "Exclude tests with these tags (comma-separated)")
	rootCmd.AddCommand(listCmd)

	failuresCmd := &cobra.Command{
		Use:   "failures",
		Short: "View test failures interactively",
		Long:  "Display test failures from the last run in an interactive viewer",
		RunE:  c.Failures.Execute,
	}
	rootCmd.AddCommand(failuresCmd)

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show past run summaries",
		RunE:  c.History.Execute,
	}
	historyCmd.Flags().IntVarP(&c.History.Limit, "limit", "n", 20, "Number of runs to show")
	rootCmd.AddCommand(historyCmd)
}
