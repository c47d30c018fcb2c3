package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/hy4ri/todo-tui/internal/todo"
	"github.com/hy4ri/todo-tui/internal/tui/state"
	"github.com/hy4ri/todo-tui/internal/tui/ui"
)

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.Width = msg.Width
		a.Height = msg.Height
		a.help.Width = msg.Width
		a.entry.Width = max(msg.Width-12, 10) // padding, border and prompt
		a.clamp()
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case tea.MouseMsg:
		return a.handleMouseMsg(msg)

	case notifiedMsg:
		if msg.err != nil {
			a.logger.Warn("failed to send notification", "err", msg.err)
		}
		return a, nil
	}

	// Cursor blink and other text input internals
	var cmd tea.Cmd
	a.entry, cmd = a.entry.Update(msg)
	return a, cmd
}

func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keymap.ForceQuit) {
		return a, tea.Quit
	}

	if a.Focus == state.FocusInput {
		return a.handleInputKey(msg)
	}
	return a.handleListKey(msg)
}

func (a *App) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keymap.Commit):
		return a, a.commit()
	case key.Matches(msg, a.keymap.FocusList):
		a.focusList()
		return a, nil
	}

	var cmd tea.Cmd
	a.entry, cmd = a.entry.Update(msg)
	a.Input.SetText(a.entry.Value())
	return a, cmd
}

func (a *App) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch {
	case key.Matches(msg, a.keymap.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keymap.Up):
		a.Cursor--
	case key.Matches(msg, a.keymap.Down):
		a.Cursor++
	case key.Matches(msg, a.keymap.Top):
		a.Cursor = 0
	case key.Matches(msg, a.keymap.Bottom):
		a.Cursor = a.Service.Snapshot().Len() - 1
	case key.Matches(msg, a.keymap.Toggle):
		cmd = a.toggleAt(a.Cursor)
	case key.Matches(msg, a.keymap.Delete):
		cmd = a.deleteAt(a.Cursor)
	case key.Matches(msg, a.keymap.Yank):
		a.yankAt(a.Cursor)
	case key.Matches(msg, a.keymap.ClearCompleted):
		cmd = a.clearCompleted()
	case key.Matches(msg, a.keymap.FocusInput):
		cmd = a.focusInput()
	case key.Matches(msg, a.keymap.Help):
		a.ShowHelp = !a.ShowHelp
		a.help.ShowAll = a.ShowHelp
	}

	a.clamp()
	return a, cmd
}

func (a *App) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		a.Cursor--
	case tea.MouseButtonWheelDown:
		a.Cursor++
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return a, nil
		}
		target, index := a.layout.HitTest(msg.X, msg.Y)
		switch target {
		case ui.TargetInput:
			cmd = a.focusInput()
		case ui.TargetRow:
			a.focusList()
			a.Cursor = index
		case ui.TargetCheckbox:
			a.focusList()
			a.Cursor = index
			cmd = a.toggleAt(index)
		case ui.TargetDelete:
			a.focusList()
			a.Cursor = index
			cmd = a.deleteAt(index)
		}
	default:
		return a, nil
	}

	a.clamp()
	return a, cmd
}

// commit turns the pending text into an item.
func (a *App) commit() tea.Cmd {
	id, err := a.Input.Commit(context.Background(), a.Service)
	if errors.Is(err, state.ErrEmptyInput) {
		a.SetStatus("Nothing to add")
		return nil
	}

	a.entry.SetValue(a.Input.Text())
	if err != nil {
		return a.reportSaveError(err)
	}

	a.logger.Debug("added todo", "id", id)
	a.SetStatus("")
	return nil
}

func (a *App) toggleAt(index int) tea.Cmd {
	id, ok := a.idAt(index)
	if !ok {
		return nil
	}

	done, err := a.Service.Toggle(context.Background(), id)
	if errors.Is(err, todo.ErrNotFound) {
		a.SetStatus("Item no longer exists")
		return nil
	}
	if err != nil {
		return a.reportSaveError(err)
	}

	if done {
		a.SetStatus("Completed")
	} else {
		a.SetStatus("Reopened")
	}
	return nil
}

func (a *App) deleteAt(index int) tea.Cmd {
	id, ok := a.idAt(index)
	if !ok {
		return nil
	}

	removed, err := a.Service.Remove(context.Background(), id)
	if err != nil {
		return a.reportSaveError(err)
	}
	if removed {
		a.SetStatus("Deleted")
	}
	return nil
}

func (a *App) clearCompleted() tea.Cmd {
	n, err := a.Service.ClearCompleted(context.Background())
	if err != nil {
		return a.reportSaveError(err)
	}
	if n > 0 {
		a.SetStatus(fmt.Sprintf("Cleared %d completed", n))
	}
	return nil
}

func (a *App) yankAt(index int) {
	store, ids := a.Snapshot()
	if index < 0 || index >= len(ids) {
		return
	}
	item, _ := store.Get(ids[index])

	if err := a.clipboard(item.Contents); err != nil {
		a.logger.Warn("failed to copy to clipboard", "err", err)
		a.SetError(fmt.Errorf("copy failed: %w", err))
		return
	}
	a.SetStatus("Copied")
}

// reportSaveError shows a failed save without touching in-memory state.
func (a *App) reportSaveError(err error) tea.Cmd {
	a.SetError(fmt.Errorf("save failed: %w", err))

	if !a.config.UI.NotifyErrors {
		return nil
	}
	notify := a.notify
	message := "Failed to save todos: " + err.Error()
	return func() tea.Msg {
		return notifiedMsg{err: notify("todo-tui", message)}
	}
}

func (a *App) idAt(index int) (uuid.UUID, bool) {
	_, ids := a.Snapshot()
	if index < 0 || index >= len(ids) {
		return uuid.Nil, false
	}
	return ids[index], true
}

func (a *App) focusInput() tea.Cmd {
	a.Focus = state.FocusInput
	return a.entry.Focus()
}

func (a *App) focusList() {
	a.Focus = state.FocusList
	a.entry.Blur()
}

func (a *App) clamp() {
	visible := ui.VisibleRows(a.Height, lipgloss.Height(a.footer()))
	a.ClampCursor(a.Service.Snapshot().Len(), visible)
}
