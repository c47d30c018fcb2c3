// Package remote pushes snapshots of the todo store to remote collaborators
// in the background.
package remote

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/hy4ri/todo-tui/internal/todo"
)

// Syncer pushes a full snapshot of the store somewhere else.
type Syncer interface {
	Name() string
	Sync(ctx context.Context, store *todo.Store) error
}

// Stub is the placeholder remote store. It performs no I/O and always succeeds.
type Stub struct {
	Logger *log.Logger
}

// Name implements Syncer.
func (s Stub) Name() string { return "stub" }

// Sync implements Syncer.
func (s Stub) Sync(_ context.Context, store *todo.Store) error {
	s.Logger.Info("synced todos to remote db", "count", store.Len())
	return nil
}
