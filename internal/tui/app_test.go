package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hy4ri/todo-tui/internal/config"
	"github.com/hy4ri/todo-tui/internal/logging"
	"github.com/hy4ri/todo-tui/internal/storage"
	"github.com/hy4ri/todo-tui/internal/todo"
	"github.com/hy4ri/todo-tui/internal/tui/state"
)

type testApp struct {
	*App
	path     string
	notified []string
	copied   []string
}

func newTestApp(t *testing.T, path string) *testApp {
	t.Helper()

	logger := logging.Discard()
	adapter := &storage.Adapter{Path: path, Logger: logger}
	svc := todo.NewService(storage.Load(path, logger), adapter)

	ta := &testApp{path: path}
	ta.App = NewApp(svc, config.DefaultConfig(), logger)
	ta.notify = func(title, message string) error {
		ta.notified = append(ta.notified, message)
		return nil
	}
	ta.clipboard = func(text string) error {
		ta.copied = append(ta.copied, text)
		return nil
	}

	ta.send(tea.WindowSizeMsg{Width: 80, Height: 24})
	return ta
}

func (ta *testApp) send(msg tea.Msg) tea.Cmd {
	_, cmd := ta.Update(msg)
	return cmd
}

func (ta *testApp) typeText(s string) {
	ta.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func (ta *testApp) press(k tea.KeyType) tea.Cmd {
	return ta.send(tea.KeyMsg{Type: k})
}

func (ta *testApp) pressRune(r rune) tea.Cmd {
	return ta.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func (ta *testApp) items() []todo.Item {
	store, ids := ta.Snapshot()
	out := make([]todo.Item, 0, len(ids))
	for _, id := range ids {
		item, _ := store.Get(id)
		out = append(out, item)
	}
	return out
}

func TestAddItem(t *testing.T) {
	ta := newTestApp(t, filepath.Join(t.TempDir(), "todos.json"))

	ta.typeText("buy milk")
	if ta.Input.Text() != "buy milk" {
		t.Fatalf("pending input not mirrored, got %q", ta.Input.Text())
	}
	ta.press(tea.KeyEnter)

	items := ta.items()
	if len(items) != 1 || items[0].Contents != "buy milk" || items[0].Completed {
		t.Fatalf("unexpected items: %+v", items)
	}
	if ta.Input.Text() != "" || ta.entry.Value() != "" {
		t.Errorf("input should be cleared, got %q / %q", ta.Input.Text(), ta.entry.Value())
	}

	// The file is written synchronously on every mutation.
	reloaded := storage.Load(ta.path, logging.Discard())
	if reloaded.Len() != 1 {
		t.Errorf("expected 1 item on disk, got %d", reloaded.Len())
	}

	if !strings.Contains(ta.View(), "buy milk") {
		t.Error("view does not show the new item")
	}
}

func TestEmptyCommitRejected(t *testing.T) {
	ta := newTestApp(t, filepath.Join(t.TempDir(), "todos.json"))

	ta.typeText("   ")
	ta.press(tea.KeyEnter)

	if len(ta.items()) != 0 {
		t.Error("blank entry should not create an item")
	}
	if ta.StatusMsg != "Nothing to add" {
		t.Errorf("unexpected status %q", ta.StatusMsg)
	}
	if _, err := os.Stat(ta.path); !os.IsNotExist(err) {
		t.Error("rejected commit must not write the file")
	}
}

func TestToggleAndDeleteFromKeyboard(t *testing.T) {
	ta := newTestApp(t, filepath.Join(t.TempDir(), "todos.json"))

	ta.typeText("a")
	ta.press(tea.KeyEnter)
	ta.press(tea.KeyTab)
	if ta.Focus != state.FocusList {
		t.Fatal("tab should move focus to the list")
	}

	ta.pressRune('x')
	if items := ta.items(); !items[0].Completed {
		t.Error("x should complete the selected item")
	}
	ta.press(tea.KeySpace)
	if items := ta.items(); items[0].Completed {
		t.Error("space should reopen the selected item")
	}

	ta.pressRune('d')
	if len(ta.items()) != 0 {
		t.Fatal("d should delete the selected item")
	}

	data, err := os.ReadFile(ta.path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("expected empty map on disk, got %s", data)
	}
}

func TestNavigationClamps(t *testing.T) {
	ta := newTestApp(t, filepath.Join(t.TempDir(), "todos.json"))
	for _, s := range []string{"a", "b", "c"} {
		ta.typeText(s)
		ta.press(tea.KeyEnter)
	}
	ta.press(tea.KeyTab)

	ta.pressRune('G')
	if ta.Cursor != 2 {
		t.Errorf("G: expected cursor 2, got %d", ta.Cursor)
	}
	ta.pressRune('j')
	if ta.Cursor != 2 {
		t.Errorf("j at bottom: expected cursor 2, got %d", ta.Cursor)
	}
	ta.pressRune('g')
	ta.pressRune('k')
	if ta.Cursor != 0 {
		t.Errorf("k at top: expected cursor 0, got %d", ta.Cursor)
	}

	ta.pressRune('G')
	ta.pressRune('d')
	if ta.Cursor != 1 {
		t.Errorf("cursor should move up after deleting last row, got %d", ta.Cursor)
	}
}

func TestClearCompletedAndYank(t *testing.T) {
	ta := newTestApp(t, filepath.Join(t.TempDir(), "todos.json"))
	for _, s := range []string{"a", "b"} {
		ta.typeText(s)
		ta.press(tea.KeyEnter)
	}
	ta.press(tea.KeyTab)

	ta.pressRune('x') // complete whichever item sorts first
	ta.pressRune('C')
	items := ta.items()
	if len(items) != 1 || items[0].Completed {
		t.Fatalf("expected one open item after clearing, got %+v", items)
	}

	ta.pressRune('y')
	if len(ta.copied) != 1 || ta.copied[0] != items[0].Contents {
		t.Errorf("expected %q copied, got %v", items[0].Contents, ta.copied)
	}
}

func TestSaveFailureIsReported(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "todos.json")
	if err := os.MkdirAll(filepath.Join(path, "blocker"), 0700); err != nil {
		t.Fatalf("setup: %v", err)
	}
	ta := newTestApp(t, path)

	ta.typeText("keep me")
	cmd := ta.press(tea.KeyEnter)

	if ta.Err == nil || !strings.Contains(ta.Err.Error(), "save failed") {
		t.Fatalf("expected save error in status, got %v", ta.Err)
	}
	if len(ta.items()) != 1 {
		t.Error("item must stay in memory after a failed save")
	}
	if cmd == nil {
		t.Fatal("expected a notification command")
	}
	ta.send(cmd())
	if len(ta.notified) != 1 || !strings.Contains(ta.notified[0], "Failed to save todos") {
		t.Errorf("unexpected notifications: %v", ta.notified)
	}
	if !strings.Contains(ta.View(), "save failed") {
		t.Error("view should show the error")
	}
}

func TestSaveFailureWithoutNotifications(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "todos.json")
	if err := os.MkdirAll(filepath.Join(path, "blocker"), 0700); err != nil {
		t.Fatalf("setup: %v", err)
	}
	ta := newTestApp(t, path)
	ta.config.UI.NotifyErrors = false

	ta.typeText("a")
	if cmd := ta.press(tea.KeyEnter); cmd != nil {
		t.Error("no notification command expected when disabled")
	}
	if ta.Err == nil {
		t.Error("error should still be shown")
	}
}

func TestMouseControls(t *testing.T) {
	ta := newTestApp(t, filepath.Join(t.TempDir(), "todos.json"))
	ta.typeText("click me")
	ta.press(tea.KeyEnter)
	ta.View() // computes the layout used for hit-testing

	// First row: 1 line of padding plus 6 header lines. Columns are offset
	// by 2 cells of padding; the checkbox spans columns 4-6 and the delete
	// control sits at column 2.
	const rowY = 7
	click := func(x, y int) {
		ta.send(tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
		ta.View()
	}

	click(2+5, rowY)
	if items := ta.items(); !items[0].Completed {
		t.Fatal("clicking the checkbox should complete the item")
	}
	if ta.Focus != state.FocusList {
		t.Error("clicking a row should focus the list")
	}

	click(10, 3)
	if ta.Focus != state.FocusInput {
		t.Error("clicking the entry field should focus it")
	}

	click(2+2, rowY)
	if len(ta.items()) != 0 {
		t.Error("clicking the delete control should remove the item")
	}
}

func TestQuit(t *testing.T) {
	ta := newTestApp(t, filepath.Join(t.TempDir(), "todos.json"))

	// q types into the entry field while it has focus.
	ta.pressRune('q')
	if ta.Input.Text() != "q" || ta.Focus != state.FocusInput {
		t.Fatalf("q should be typed into the entry field, got %q", ta.Input.Text())
	}

	ta.press(tea.KeyEsc)
	cmd := ta.pressRune('q')
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q in the list should quit")
	}

	cmd = ta.press(tea.KeyCtrlC)
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should always quit")
	}
}

func TestLoadsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos.json")
	s := todo.NewStore()
	s.Insert("from disk")
	if err := storage.Save(path, s); err != nil {
		t.Fatalf("save: %v", err)
	}

	ta := newTestApp(t, path)
	if !strings.Contains(ta.View(), "from disk") {
		t.Error("items loaded from disk should render")
	}
}

func TestViewDoesNotEmitLabelEscapes(t *testing.T) {
	ta := newTestApp(t, filepath.Join(t.TempDir(), "todos.json"))
	if _, err := ta.Service.Insert(context.Background(), "evil\x1b[2Jtext"); err != nil {
		t.Fatalf("insert: %v", err)
	}

	out := ta.View()
	if strings.Contains(out, "\x1b[2J") {
		t.Error("item contents must not write raw escape sequences")
	}
	if !strings.Contains(out, "eviltext") {
		t.Errorf("expected sanitized label in view:\n%s", out)
	}
}
