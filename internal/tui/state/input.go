package state

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/hy4ri/todo-tui/internal/todo"
)

// ErrEmptyInput is returned when committing a blank entry.
var ErrEmptyInput = errors.New("nothing to add")

// Input is the pending text of the entry field.
type Input struct {
	text string
}

// SetText replaces the pending text.
func (i *Input) SetText(s string) {
	i.text = s
}

// Text returns the pending text.
func (i *Input) Text() string {
	return i.text
}

// Commit turns the pending text into a new item and clears the buffer.
// Blank text is rejected and left in place. If the item was created but the
// save failed, the buffer is still cleared and the save error is returned
// with the new id.
func (i *Input) Commit(ctx context.Context, svc *todo.Service) (uuid.UUID, error) {
	if strings.TrimSpace(i.text) == "" {
		return uuid.Nil, ErrEmptyInput
	}

	id, err := svc.Insert(ctx, i.text)
	i.text = ""
	return id, err
}
