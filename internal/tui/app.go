// Package tui provides the terminal user interface for the todo list.
package tui

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/gen2brain/beeep"
	"github.com/hy4ri/todo-tui/internal/config"
	"github.com/hy4ri/todo-tui/internal/todo"
	"github.com/hy4ri/todo-tui/internal/tui/state"
	"github.com/hy4ri/todo-tui/internal/tui/styles"
	"github.com/hy4ri/todo-tui/internal/tui/ui"
)

// App is the main Bubble Tea model for the application.
// Update is the only place state changes; View renders from the result.
type App struct {
	*state.State

	// Dependencies
	config *config.Config
	logger *log.Logger

	// Components
	entry  textinput.Model
	help   help.Model
	keymap Keymap

	// Rows shown by the last View, used to resolve mouse clicks
	layout ui.Layout

	// Side effects, replaced in tests
	notify    func(title, message string) error
	clipboard func(text string) error
}

// NewApp creates a new App instance.
func NewApp(svc *todo.Service, cfg *config.Config, logger *log.Logger) *App {
	entry := textinput.New()
	entry.Placeholder = "What needs doing?"
	entry.Prompt = "> "
	entry.CharLimit = 500
	entry.Focus()

	h := help.New()
	h.Styles.ShortKey = styles.HelpKey
	h.Styles.ShortDesc = styles.HelpDesc
	h.Styles.ShortSeparator = styles.HelpSeparator
	h.Styles.FullKey = styles.HelpKey
	h.Styles.FullDesc = styles.HelpDesc
	h.Styles.FullSeparator = styles.HelpSeparator

	return &App{
		State:  state.New(svc),
		config: cfg,
		logger: logger,
		entry:  entry,
		help:   h,
		keymap: DefaultKeymap(),
		notify: func(title, message string) error {
			return beeep.Notify(title, message, "")
		},
		clipboard: clipboard.WriteAll,
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Message types
type notifiedMsg struct{ err error }
