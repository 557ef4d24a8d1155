package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/apotema/pzspec/internal/config"
	"github.com/apotema/pzspec/internal/storage"
	"github.com/apotema/pzspec/internal/ui"
)

// HistoryCommand handles the history command
type HistoryCommand struct {
	// Limit caps how many runs are shown, newest first.
	Limit int

	config    *config.Config
	formatter *ui.Formatter
}

// NewHistoryCommand creates a new HistoryCommand
func NewHistoryCommand(cfg *config.Config, formatter *ui.Formatter) *HistoryCommand {
	return &HistoryCommand{
		config:    cfg,
		formatter: formatter,
	}
}

// Execute runs the command
func (hc *HistoryCommand) Execute(cmd *cobra.Command, args []string) error {
	hist, err := storage.OpenHistory(hc.config.GetHistoryPath())
	if err != nil {
		return fmt.Errorf("failed to open run history: %w", err)
	}
	defer hist.Close()

	runs, err := hist.Recent(hc.Limit)
	if err != nil {
		return fmt.Errorf("failed to read run history: %w", err)
	}
	if len(runs) == 0 {
		color.Yellow("No runs recorded yet")
		return nil
	}

	hc.formatter.PrintHistory(runs)
	return nil
}
