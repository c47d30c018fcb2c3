package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/hy4ri/todo-tui/internal/tui/styles"
)

// Frame is everything needed to draw one screen.
type Frame struct {
	Tree      Tree
	InputView string // rendered text input widget
	Footer    string // status line and help
	Width     int
	Height    int
	Offset    int // first visible row
}

// Fixed geometry, relative to the content area inside the App padding.
const (
	headerHeight = 6 // title, blank, bordered input (3 lines), blank
	inputTop     = 2
	inputBottom  = 4

	cursorWidth  = 2
	deleteCol    = cursorWidth
	checkboxFrom = deleteCol + 2
	checkboxTo   = checkboxFrom + 2
	labelCol     = checkboxTo + 2
)

// Target is what a mouse click landed on.
type Target int

const (
	TargetNone Target = iota
	TargetInput
	TargetRow
	TargetDelete
	TargetCheckbox
)

// Layout records which rows a rendered frame shows.
type Layout struct {
	Offset int
	Count  int
}

// VisibleRows returns how many item rows fit on screen.
func VisibleRows(height, footerHeight int) int {
	v := height - 2*styles.AppPaddingTop - headerHeight - footerHeight
	if v < 1 {
		v = 1
	}
	return v
}

// Render draws the frame and returns the rows it actually showed.
func Render(f Frame) (string, Layout) {
	if f.Width == 0 {
		return "Loading...", Layout{}
	}

	contentWidth := f.Width - 2*styles.AppPaddingLeft
	if contentWidth < labelCol+4 {
		contentWidth = labelCol + 4
	}

	var b strings.Builder

	// Header
	b.WriteString(styles.Title.Render(truncateString(f.Tree.Title, contentWidth)))
	b.WriteString("\n\n")

	inputStyle := styles.Input
	if f.Tree.Input.Focused {
		inputStyle = styles.InputFocused
	}
	b.WriteString(inputStyle.Width(contentWidth - 2).Render(f.InputView))
	b.WriteString("\n\n")

	// Rows
	footerHeight := lipgloss.Height(f.Footer)
	visible := VisibleRows(f.Height, footerHeight)
	layout := Layout{Offset: f.Offset}

	if len(f.Tree.Rows) == 0 {
		b.WriteString(styles.Empty.Render("Nothing to do. Type above and press enter."))
		b.WriteString("\n")
	} else {
		start := f.Offset
		if start > len(f.Tree.Rows) {
			start = len(f.Tree.Rows)
		}
		end := start + visible
		if end > len(f.Tree.Rows) {
			end = len(f.Tree.Rows)
		}
		for _, row := range f.Tree.Rows[start:end] {
			b.WriteString(renderRow(row, contentWidth-labelCol))
			b.WriteString("\n")
		}
		layout.Offset = start
		layout.Count = end - start
	}

	// Pad so the footer sits at the bottom.
	used := headerHeight + max(layout.Count, 1)
	for i := used; i < f.Height-2*styles.AppPaddingTop-footerHeight; i++ {
		b.WriteString("\n")
	}
	b.WriteString(f.Footer)

	return styles.App.Render(b.String()), layout
}

func renderRow(row Row, labelWidth int) string {
	cursor := strings.Repeat(" ", cursorWidth)
	if row.Selected {
		cursor = styles.Cursor.Render("> ")
	}

	box := styles.Checkbox.Render(styles.CheckboxUnchecked)
	labelStyle := styles.TaskItem
	if row.Completed {
		box = styles.CheckboxDone.Render(styles.CheckboxChecked)
		labelStyle = styles.TaskCompleted
	}
	if row.Selected {
		labelStyle = labelStyle.Inherit(styles.TaskSelected)
	}

	label := truncateString(singleLine(row.Label), labelWidth)

	return cursor +
		styles.DeleteButton.Render(styles.DeleteGlyph) + " " +
		box + " " +
		labelStyle.Render(label)
}

// HitTest maps a terminal cell to a target. The index is the position in
// the row list (not the screen) and is only meaningful for row targets.
func (l Layout) HitTest(x, y int) (Target, int) {
	cx := x - styles.AppPaddingLeft
	cy := y - styles.AppPaddingTop
	if cx < 0 || cy < 0 {
		return TargetNone, -1
	}

	if cy >= inputTop && cy <= inputBottom {
		return TargetInput, -1
	}

	row := cy - headerHeight
	if row < 0 || row >= l.Count {
		return TargetNone, -1
	}
	index := l.Offset + row

	switch {
	case cx == deleteCol:
		return TargetDelete, index
	case cx >= checkboxFrom && cx <= checkboxTo:
		return TargetCheckbox, index
	default:
		return TargetRow, index
	}
}
