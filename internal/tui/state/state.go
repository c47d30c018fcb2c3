// Package state holds the state owned by the TUI model.
package state

import (
	"github.com/google/uuid"
	"github.com/hy4ri/todo-tui/internal/todo"
)

// Focus is the part of the screen that receives key presses.
type Focus int

const (
	FocusInput Focus = iota
	FocusList
)

// State holds the application state.
// All fields are exported so the tui and ui packages can read them.
type State struct {
	// Dependencies
	Service *todo.Service

	// Pending entry
	Input Input

	// List state
	Focus  Focus
	Cursor int // index into the derived view
	Offset int // first visible row

	// UI state
	Err       error
	StatusMsg string
	Width     int
	Height    int
	ShowHelp  bool
}

// New creates the initial state with the input focused.
func New(svc *todo.Service) *State {
	return &State{
		Service: svc,
		Focus:   FocusInput,
	}
}

// Snapshot returns a copy of the store and its derived order.
func (s *State) Snapshot() (*todo.Store, []uuid.UUID) {
	store := s.Service.Snapshot()
	return store, todo.SortedIDs(store)
}

// ClampCursor keeps Cursor within [0, n) and Offset such that the cursor
// is one of the visible rows.
func (s *State) ClampCursor(n, visible int) {
	if n == 0 {
		s.Cursor, s.Offset = 0, 0
		return
	}
	if s.Cursor >= n {
		s.Cursor = n - 1
	}
	if s.Cursor < 0 {
		s.Cursor = 0
	}
	if visible <= 0 {
		visible = 1
	}
	if s.Cursor < s.Offset {
		s.Offset = s.Cursor
	}
	if s.Cursor >= s.Offset+visible {
		s.Offset = s.Cursor - visible + 1
	}
	if maxOffset := n - visible; s.Offset > maxOffset {
		s.Offset = max(maxOffset, 0)
	}
}

// SetError records an error to show in the status line.
func (s *State) SetError(err error) {
	s.Err = err
	s.StatusMsg = ""
}

// SetStatus records an informational message and clears any error.
func (s *State) SetStatus(msg string) {
	s.StatusMsg = msg
	s.Err = nil
}
