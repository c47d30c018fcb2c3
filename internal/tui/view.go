package tui

import (
	"fmt"

	"github.com/hy4ri/todo-tui/internal/tui/state"
	"github.com/hy4ri/todo-tui/internal/tui/styles"
	"github.com/hy4ri/todo-tui/internal/tui/ui"
)

// View implements tea.Model.
func (a *App) View() string {
	store, ids := a.Snapshot()

	tree := ui.Describe(a.config.UI.Title, store, ids, ui.InputRow{
		Text:    a.Input.Text(),
		Focused: a.Focus == state.FocusInput,
	}, a.Cursor)

	out, layout := ui.Render(ui.Frame{
		Tree:      tree,
		InputView: a.entry.View(),
		Footer:    a.footer(),
		Width:     a.Width,
		Height:    a.Height,
		Offset:    a.Offset,
	})
	a.layout = layout
	return out
}

// footer renders the status line and key help.
func (a *App) footer() string {
	var status string
	switch {
	case a.Err != nil:
		status = styles.StatusBarError.Render("Error: " + a.Err.Error())
	case a.StatusMsg != "":
		status = styles.StatusBarSuccess.Render(a.StatusMsg)
	default:
		status = styles.StatusBarText.Render(a.summary())
	}

	var helpView string
	if a.Focus == state.FocusInput {
		helpView = a.help.View(inputKeys{a.keymap})
	} else {
		helpView = a.help.View(listKeys{a.keymap})
	}

	return status + "\n" + helpView
}

func (a *App) summary() string {
	store, _ := a.Snapshot()
	done := 0
	for _, item := range store.Items() {
		if item.Completed {
			done++
		}
	}
	return fmt.Sprintf("%d items, %d done", store.Len(), done)
}
