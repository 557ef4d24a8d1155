package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/apotema/pzspec/internal/config"
	"github.com/apotema/pzspec/internal/ui"
	"github.com/apotema/pzspec/pkg/selection"
	"github.com/apotema/pzspec/pkg/spec"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	session   *spec.Session
	formatter *ui.Formatter
}

// NewListCommand creates a new ListCommand
func NewListCommand(cfg *config.Config, session *spec.Session, formatter *ui.Formatter) *ListCommand {
	return &ListCommand{
		config:    cfg,
		session:   session,
		formatter: formatter,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	root := lc.session.Root()
	if root.CountTests() == 0 {
		color.Yellow("No tests registered")
		return nil
	}

	sel, err := buildSelectionSpec(lc.config)
	if err != nil {
		return err
	}
	admitted, err := selection.Select(root, sel)
	if err != nil {
		return err
	}

	lc.formatter.PrintTestTree(root, admitted, sel.Active())
	return nil
}
