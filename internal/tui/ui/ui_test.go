package ui

import (
	"strings"
	"testing"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/hy4ri/todo-tui/internal/todo"
	"github.com/hy4ri/todo-tui/internal/tui/styles"
)

func storeAt(secs ...int64) (*todo.Store, []uuid.UUID) {
	i := 0
	clock := func() time.Time {
		t := time.Unix(secs[i], 0)
		i++
		return t
	}
	s := todo.NewStore(todo.WithClock(clock))
	ids := make([]uuid.UUID, 0, len(secs))
	for range secs {
		ids = append(ids, s.Insert(""))
	}
	return s, ids
}

func TestDescribeSingleItem(t *testing.T) {
	s := todo.NewStore()
	id := s.Insert("buy milk")

	tree := Describe("title", s, todo.SortedIDs(s), InputRow{Focused: true}, 0)

	if len(tree.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(tree.Rows))
	}
	row := tree.Rows[0]
	if row.ID != id || row.Label != "buy milk" || row.Completed || row.Selected {
		t.Errorf("unexpected row: %+v", row)
	}
}

func TestDescribeFollowsViewOrder(t *testing.T) {
	s, ids := storeAt(100, 50)
	_ = s.SetContents(ids[0], "a")
	_ = s.SetContents(ids[1], "b")

	tree := Describe("", s, todo.SortedIDs(s), InputRow{}, 0)

	if len(tree.Rows) != 2 || tree.Rows[0].Label != "b" || tree.Rows[1].Label != "a" {
		t.Errorf("expected rows [b a], got %+v", tree.Rows)
	}
}

func TestDescribeSelection(t *testing.T) {
	s, _ := storeAt(1, 2, 3)
	ids := todo.SortedIDs(s)

	tests := []struct {
		name   string
		input  InputRow
		cursor int
		want   int // selected index, -1 for none
	}{
		{name: "list focused", input: InputRow{Focused: false}, cursor: 1, want: 1},
		{name: "input focused hides cursor", input: InputRow{Focused: true}, cursor: 1, want: -1},
		{name: "cursor out of range", input: InputRow{Focused: false}, cursor: 9, want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := Describe("", s, ids, tt.input, tt.cursor)
			for i, row := range tree.Rows {
				if row.Selected != (i == tt.want) {
					t.Errorf("row %d selected=%v, want selected index %d", i, row.Selected, tt.want)
				}
			}
		})
	}
}

func TestDescribeSkipsUnknownIDs(t *testing.T) {
	s := todo.NewStore()
	s.Insert("a")
	ids := append(todo.SortedIDs(s), uuid.New())

	tree := Describe("", s, ids, InputRow{}, 0)
	if len(tree.Rows) != 1 {
		t.Errorf("expected unknown id to be skipped, got %d rows", len(tree.Rows))
	}
}

func TestRenderLoading(t *testing.T) {
	out, layout := Render(Frame{})
	if out != "Loading..." || layout.Count != 0 {
		t.Errorf("expected loading placeholder, got %q", out)
	}
}

func TestRenderRows(t *testing.T) {
	s := todo.NewStore()
	a := s.Insert("buy milk")
	s.Insert("walk dog")
	_ = s.SetCompleted(a, true)

	tree := Describe("My todos", s, todo.SortedIDs(s), InputRow{Focused: true}, 0)
	out, layout := Render(Frame{Tree: tree, InputView: "> ", Footer: "status", Width: 60, Height: 20})

	for _, want := range []string{"My todos", "buy milk", "walk dog", styles.CheckboxChecked, styles.CheckboxUnchecked, "status"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if layout.Count != 2 || layout.Offset != 0 {
		t.Errorf("unexpected layout: %+v", layout)
	}
}

func TestRenderEmpty(t *testing.T) {
	tree := Describe("t", todo.NewStore(), nil, InputRow{Focused: true}, 0)
	out, layout := Render(Frame{Tree: tree, Width: 60, Height: 20})

	if !strings.Contains(out, "Nothing to do") {
		t.Errorf("expected empty placeholder:\n%s", out)
	}
	if layout.Count != 0 {
		t.Errorf("expected no rows, got %d", layout.Count)
	}
}

func TestRenderScrollWindow(t *testing.T) {
	secs := make([]int64, 30)
	for i := range secs {
		secs[i] = int64(i)
	}
	s, _ := storeAt(secs...)
	tree := Describe("", s, todo.SortedIDs(s), InputRow{}, 0)

	height := 20
	_, layout := Render(Frame{Tree: tree, Footer: "f", Width: 60, Height: height, Offset: 25})

	visible := VisibleRows(height, 1)
	if layout.Offset != 25 || layout.Count != 5 {
		t.Errorf("expected offset 25 count 5, got %+v", layout)
	}
	if visible >= 30 {
		t.Errorf("expected fewer visible rows than items, got %d", visible)
	}
}

func TestRenderTruncatesLongLabels(t *testing.T) {
	s := todo.NewStore()
	s.Insert(strings.Repeat("long ", 50) + "\nsecond line")

	tree := Describe("", s, todo.SortedIDs(s), InputRow{}, 0)
	out, _ := Render(Frame{Tree: tree, Width: 40, Height: 20})

	if !strings.Contains(out, "…") {
		t.Errorf("expected ellipsis in truncated label:\n%s", out)
	}
	if strings.Contains(out, "second line") {
		t.Error("label must stay on one line")
	}
}

func TestRenderStripsControlSequences(t *testing.T) {
	s := todo.NewStore()
	s.Insert("evil\x1b[2Jtext\x1b[31m red\x07")

	tree := Describe("", s, todo.SortedIDs(s), InputRow{}, 0)
	out, _ := Render(Frame{Tree: tree, Width: 60, Height: 20})

	if strings.Contains(out, "\x1b[2J") || strings.Contains(out, "\x1b[31m") {
		t.Errorf("label escape sequences reached the output: %q", out)
	}
	if strings.ContainsRune(out, '\x07') {
		t.Error("bell character reached the output")
	}
	if !strings.Contains(out, "eviltext red") {
		t.Errorf("printable text should survive:\n%s", out)
	}
}

func TestSingleLine(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "plain", want: "plain"},
		{in: "two\nlines", want: "two lines"},
		{in: "tab\there", want: "tab here"},
		{in: "clear\x1b[2Jscreen", want: "clearscreen"},
		{in: "title\x1b]0;pwned\x07done", want: "titledone"},
		{in: "日本語", want: "日本語"},
	}

	for _, tt := range tests {
		if got := singleLine(tt.in); got != tt.want {
			t.Errorf("singleLine(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	for _, in := range []string{"null\x00byte", "c1\u009bcontrol", "del\x7f", "\x1b"} {
		for _, r := range singleLine(in) {
			if unicode.IsControl(r) {
				t.Errorf("singleLine(%q) kept control rune %U", in, r)
			}
		}
	}
}

func TestHitTestMatchesRenderedColumns(t *testing.T) {
	s := todo.NewStore()
	s.Insert("first")
	s.Insert("second")

	tree := Describe("", s, todo.SortedIDs(s), InputRow{}, 0)
	out, layout := Render(Frame{Tree: tree, Width: 60, Height: 20})
	lines := strings.Split(out, "\n")

	y := styles.AppPaddingTop + headerHeight + 1 // second row
	line := []rune(lines[y])
	xDelete := styles.AppPaddingLeft + deleteCol
	if string(line[xDelete]) != styles.DeleteGlyph {
		t.Fatalf("expected delete glyph at column %d, got line %q", xDelete, string(line))
	}

	tests := []struct {
		name  string
		x, y  int
		want  Target
		index int
	}{
		{name: "delete control", x: xDelete, y: y, want: TargetDelete, index: 1},
		{name: "checkbox", x: styles.AppPaddingLeft + checkboxFrom + 1, y: y, want: TargetCheckbox, index: 1},
		{name: "label", x: styles.AppPaddingLeft + labelCol + 2, y: y - 1, want: TargetRow, index: 0},
		{name: "input box", x: 10, y: styles.AppPaddingTop + inputTop + 1, want: TargetInput, index: -1},
		{name: "below rows", x: 10, y: y + 5, want: TargetNone, index: -1},
		{name: "padding", x: 0, y: 0, want: TargetNone, index: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, index := layout.HitTest(tt.x, tt.y)
			if got != tt.want || index != tt.index {
				t.Errorf("expected (%v, %d), got (%v, %d)", tt.want, tt.index, got, index)
			}
		})
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{in: "short", max: 10, want: "short"},
		{in: "exactly10!", max: 10, want: "exactly10!"},
		{in: "this is too long", max: 8, want: "this is…"},
		{in: "日本語テキスト", max: 7, want: "日本語…"},
		{in: "anything", max: 0, want: ""},
	}

	for _, tt := range tests {
		if got := truncateString(tt.in, tt.max); got != tt.want {
			t.Errorf("truncateString(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
