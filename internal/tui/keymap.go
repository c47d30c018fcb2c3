package tui

import "github.com/charmbracelet/bubbles/key"

// Keymap contains all key bindings for the application.
type Keymap struct {
	// Entry field
	Commit    key.Binding
	FocusList key.Binding

	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Item actions
	Toggle         key.Binding
	Delete         key.Binding
	Yank           key.Binding
	ClearCompleted key.Binding
	FocusInput     key.Binding

	// General
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeymap returns the default Vim-style key bindings.
func DefaultKeymap() Keymap {
	return Keymap{
		Commit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add")),
		FocusList: key.NewBinding(key.WithKeys("tab", "down", "esc"), key.WithHelp("tab", "list")),

		Up:     key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:   key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		Top:    key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom: key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),

		Toggle:         key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space/x", "toggle")),
		Delete:         key.NewBinding(key.WithKeys("d", "delete", "backspace"), key.WithHelp("d", "delete")),
		Yank:           key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		ClearCompleted: key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear done")),
		FocusInput:     key.NewBinding(key.WithKeys("tab", "i", "a", "esc"), key.WithHelp("i/tab", "new item")),

		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// inputKeys is the help shown while the entry field has focus.
type inputKeys struct{ k Keymap }

func (m inputKeys) ShortHelp() []key.Binding {
	return []key.Binding{m.k.Commit, m.k.FocusList, m.k.ForceQuit}
}

func (m inputKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{m.ShortHelp()}
}

// listKeys is the help shown while the list has focus.
type listKeys struct{ k Keymap }

func (m listKeys) ShortHelp() []key.Binding {
	return []key.Binding{m.k.Toggle, m.k.Delete, m.k.FocusInput, m.k.Help, m.k.Quit}
}

func (m listKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.k.Up, m.k.Down, m.k.Top, m.k.Bottom},
		{m.k.Toggle, m.k.Delete, m.k.Yank, m.k.ClearCompleted},
		{m.k.FocusInput, m.k.Help, m.k.Quit},
	}
}
