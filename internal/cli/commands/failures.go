package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/apotema/pzspec/internal/storage"
	"github.com/apotema/pzspec/internal/ui"
)

// FailuresCommand handles the failures command
type FailuresCommand struct {
	storage storage.Storage
	viewer  *ui.FailureViewer
}

// NewFailuresCommand creates a new FailuresCommand
func NewFailuresCommand(st storage.Storage, viewer *ui.FailureViewer) *FailuresCommand {
	return &FailuresCommand{
		storage: st,
		viewer:  viewer,
	}
}

// Execute runs the command
func (fc *FailuresCommand) Execute(cmd *cobra.Command, args []string) error {
	results, err := fc.storage.Load()
	if err != nil {
		return fmt.Errorf("failed to load test results: %w", err)
	}
	return fc.viewer.View(results)
}
