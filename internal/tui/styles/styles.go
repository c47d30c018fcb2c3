// Package styles provides Lip Gloss styles for the TUI.
package styles

import "github.com/charmbracelet/lipgloss"

// Terminal-adaptive colors that work in both light and dark terminals.
var (
	// Subtle is a muted color for secondary text
	Subtle = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"}

	// Highlight is the accent color for selected items
	Highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#990000"}

	// Special colors
	ErrorColor   = lipgloss.AdaptiveColor{Light: "#FF0000", Dark: "#FF6666"}
	SuccessColor = lipgloss.AdaptiveColor{Light: "#00AA00", Dark: "#66FF66"}
)

// Layout of the App frame. Mouse hit-testing depends on these values.
const (
	AppPaddingTop  = 1
	AppPaddingLeft = 2
)

// Base styles
var (
	// App is the base style for the entire application
	App = lipgloss.NewStyle().
		Padding(AppPaddingTop, AppPaddingLeft)

	// Title is the style for the window title
	// NOTE: No margins - they break mouse row mapping
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Highlight)

	// Empty is the placeholder shown when there are no items
	Empty = lipgloss.NewStyle().
		Foreground(Subtle).
		Italic(true)
)

// Item row styles. Rows must not carry padding or borders so that every
// control stays at a fixed column.
var (
	// TaskItem is the base style for an item label
	TaskItem = lipgloss.NewStyle()

	// TaskSelected is the style for the label under the cursor
	TaskSelected = lipgloss.NewStyle().
			Bold(true).
			Background(lipgloss.AdaptiveColor{Light: "#EEEEEE", Dark: "#2A2A2A"})

	// TaskCompleted is the style for completed items
	TaskCompleted = lipgloss.NewStyle().
			Faint(true).
			Strikethrough(true)

	// Cursor marks the selected row
	Cursor = lipgloss.NewStyle().
		Bold(true).
		Foreground(Highlight)

	// DeleteButton is the delete control
	DeleteButton = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	// Checkbox is the completion control
	Checkbox = lipgloss.NewStyle().
			Foreground(Subtle)

	// CheckboxDone is the completion control of a completed item
	CheckboxDone = lipgloss.NewStyle().
			Foreground(SuccessColor)
)

// Checkbox glyphs
const (
	CheckboxUnchecked = "[ ]"
	CheckboxChecked   = "[x]"
	DeleteGlyph       = "X"
)

// StatusBar styles
var (
	// StatusBarText is for informational messages
	StatusBarText = lipgloss.NewStyle().
			Foreground(Subtle)

	// StatusBarError is for error messages
	StatusBarError = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	// StatusBarSuccess is for success messages
	StatusBarSuccess = lipgloss.NewStyle().
				Foreground(SuccessColor).
				Bold(true)
)

// Help styles
var (
	// HelpKey is for key bindings in help
	HelpKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(Highlight)

	// HelpDesc is for key binding descriptions
	HelpDesc = lipgloss.NewStyle().
			Foreground(Subtle)

	// HelpSeparator is the separator between key and description
	HelpSeparator = lipgloss.NewStyle().
			Foreground(Subtle)
)

// Input styles
var (
	// Input is the style for the entry field
	Input = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Subtle).
		Padding(0, 1)

	// InputFocused is for the focused entry field
	InputFocused = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Highlight).
			Padding(0, 1)
)
