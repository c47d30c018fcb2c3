// Package storage persists the todo store as a single JSON file.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/hy4ri/todo-tui/internal/todo"
)

// Load reads the todo file at path. It never fails: a missing, unreadable,
// corrupt or invalid file yields an empty store. Problems other than a
// missing file are logged as warnings.
func Load(path string, logger *log.Logger, opts ...todo.Option) *todo.Store {
	store := todo.NewStore(opts...)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Debug("no todo file, starting empty", "path", path)
		} else {
			logger.Warn("failed to read todo file, starting empty", "path", path, "err", err)
		}
		return store
	}

	if err := validate(data); err != nil {
		logger.Warn("ignoring invalid todo file", "path", path, "err", err)
		return store
	}

	if err := json.Unmarshal(data, store); err != nil {
		logger.Warn("ignoring corrupt todo file", "path", path, "err", err)
		return todo.NewStore(opts...)
	}

	logger.Info("loaded todos", "path", path, "count", store.Len())
	return store
}

// Save writes the whole store to path. It writes a temporary file next to
// path and renames it into place so a failed write leaves the old file intact.
func Save(path string, store *todo.Store) error {
	data, err := json.Marshal(store)
	if err != nil {
		return fmt.Errorf("failed to encode todos: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".todos-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write todos: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to flush todos: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0600); err != nil {
		return fmt.Errorf("failed to set file mode: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace todo file: %w", err)
	}

	return nil
}

// Dispatcher hands a snapshot to the remote sync machinery without blocking.
type Dispatcher interface {
	Dispatch(snapshot *todo.Store)
}

// Adapter saves the store locally and then dispatches a remote sync.
// It implements todo.Persister.
type Adapter struct {
	Path   string
	Remote Dispatcher // may be nil
	Logger *log.Logger
}

// Persist saves snapshot to Path. The remote sync is dispatched whether or
// not the local save succeeded; only the local error is returned.
func (a *Adapter) Persist(_ context.Context, snapshot *todo.Store) error {
	err := Save(a.Path, snapshot)
	if err != nil {
		a.Logger.Error("failed to save todos", "path", a.Path, "err", err)
	} else {
		a.Logger.Debug("saved todos", "path", a.Path, "count", snapshot.Len())
	}

	if a.Remote != nil {
		a.Remote.Dispatch(snapshot)
	}
	return err
}
