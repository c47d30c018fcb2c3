// Package ui turns TUI state into a UI description and renders it.
package ui

import (
	"github.com/google/uuid"
	"github.com/hy4ri/todo-tui/internal/todo"
)

// Row is one item line: delete control, checkbox and label.
type Row struct {
	ID        uuid.UUID
	Label     string
	Completed bool
	Selected  bool
}

// InputRow is the entry field bound to the pending text.
type InputRow struct {
	Text    string
	Focused bool
}

// Tree is the full description of one frame.
type Tree struct {
	Title string
	Input InputRow
	Rows  []Row
}

// Describe builds the frame description: one row per id, in the given order.
// Ids missing from store are skipped. The row at cursor is marked selected
// only when the list has focus.
func Describe(title string, store *todo.Store, ids []uuid.UUID, input InputRow, cursor int) Tree {
	rows := make([]Row, 0, len(ids))
	for _, id := range ids {
		item, ok := store.Get(id)
		if !ok {
			continue
		}
		rows = append(rows, Row{
			ID:        item.ID,
			Label:     item.Contents,
			Completed: item.Completed,
		})
	}

	if !input.Focused && cursor >= 0 && cursor < len(rows) {
		rows[cursor].Selected = true
	}

	return Tree{
		Title: title,
		Input: input,
		Rows:  rows,
	}
}
