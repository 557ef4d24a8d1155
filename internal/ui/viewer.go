package ui

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/apotema/pzspec/internal/storage"
)

// FailureViewer displays test failures in an interactive TUI
type FailureViewer struct {
	storage storage.Storage
}

// NewFailureViewer creates a new FailureViewer
func NewFailureViewer(st storage.Storage) *FailureViewer {
	return &FailureViewer{storage: st}
}

// View displays the failures of a run interactively. 'r' toggles a
// failure as resolved (persisted back to the results file), Tab moves
// focus between the list and the details pane, 'q' quits.
func (fv *FailureViewer) View(results *storage.RunOutput) error {
	if len(results.Details) == 0 {
		color.Green("✓ No test failures found!")
		return nil
	}

	resolved := make(map[int]bool)
	for i, failure := range results.Details {
		if failure.Resolved {
			resolved[i] = true
		}
	}

	saveResolved := func() error {
		for i := range results.Details {
			results.Details[i].Resolved = resolved[i]
		}
		return fv.storage.SaveOutput(results)
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)

	itemText := func(index int) string {
		name := results.Details[index].TestName
		if name == "" {
			name = fmt.Sprintf("Test %d", index+1)
		}
		if resolved[index] {
			return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s[white]", index+1, name)
		}
		return fmt.Sprintf("[yellow]%d.[white] %s", index+1, name)
	}

	for i := range results.Details {
		list.AddItem(itemText(i), "", 0, nil)
	}
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	details := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)
	details.SetBorder(true).SetTitle(" Failure ")

	showDetails := func(index int) {
		if index < 0 || index >= len(results.Details) {
			return
		}
		f := results.Details[index]
		status := "[red]unresolved[white]"
		if resolved[index] {
			status = "[green]resolved[white]"
		}
		details.SetText(fmt.Sprintf(
			"[yellow]%s[white]\n\n[cyan]Location:[white] %s:%d\n[cyan]Status:[white]   %s\n\n[cyan]Message:[white]\n%s",
			f.TestName, f.File, f.Line, status, f.Message,
		))
	}

	list.SetChangedFunc(func(index int, _, _ string, _ rune) {
		showDetails(index)
	})
	showDetails(0)

	header := tview.NewTextView().
		SetDynamicColors(true).
		SetText(fmt.Sprintf(" [red]%d failure(s)[white]  |  r: toggle resolved  |  Tab: switch pane  |  q: quit", len(results.Details)))

	columns := tview.NewFlex().
		AddItem(list, 0, 1, true).
		AddItem(details, 0, 2, false)
	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(header, 1, 0, false).
		AddItem(columns, 0, 1, true)

	var saveErr error
	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch {
		case event.Rune() == 'q', event.Key() == tcell.KeyEscape:
			app.Stop()
			return nil
		case event.Rune() == 'r':
			index := list.GetCurrentItem()
			resolved[index] = !resolved[index]
			list.SetItemText(index, itemText(index), "")
			showDetails(index)
			if err := saveResolved(); err != nil {
				saveErr = err
				app.Stop()
			}
			return nil
		case event.Key() == tcell.KeyTab:
			if list.HasFocus() {
				app.SetFocus(details)
			} else {
				app.SetFocus(list)
			}
			return nil
		}
		return event
	})

	if err := app.SetRoot(layout, true).Run(); err != nil {
		return fmt.Errorf("failure viewer: %w", err)
	}
	return saveErr
}
