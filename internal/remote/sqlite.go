package remote

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/hy4ri/todo-tui/internal/todo"

	_ "modernc.org/sqlite"
)

// SQLiteMirror keeps a copy of the store in a SQLite database. Each sync
// replaces the table contents in one transaction.
type SQLiteMirror struct {
	db   *sql.DB
	path string
}

// OpenSQLiteMirror opens (and creates if needed) the database at path.
func OpenSQLiteMirror(ctx context.Context, path string) (*SQLiteMirror, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create sqlite dir: %w", err)
	}

	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Syncs may overlap; a single connection serializes them.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite pragma: %w", err)
		}
	}

	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS todos (
		id TEXT PRIMARY KEY,
		created INTEGER NOT NULL,
		contents TEXT NOT NULL,
		completed INTEGER NOT NULL
	);`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}

	return &SQLiteMirror{db: db, path: path}, nil
}

// Name implements Syncer.
func (m *SQLiteMirror) Name() string { return "sqlite " + m.path }

// Sync implements Syncer.
func (m *SQLiteMirror) Sync(ctx context.Context, store *todo.Store) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM todos`); err != nil {
		return fmt.Errorf("clear todos: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO todos (id, created, contents, completed) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for id, item := range store.Items() {
		if _, err := stmt.ExecContext(ctx, id.String(), int64(item.Created), item.Contents, item.Completed); err != nil {
			return fmt.Errorf("insert todo %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Items reads back the mirrored items.
func (m *SQLiteMirror) Items(ctx context.Context) (map[uuid.UUID]todo.Item, error) {
	rows, err := m.db.QueryContext(ctx, `SELECT id, created, contents, completed FROM todos`)
	if err != nil {
		return nil, fmt.Errorf("query todos: %w", err)
	}
	defer rows.Close()

	items := make(map[uuid.UUID]todo.Item)
	for rows.Next() {
		var (
			rawID     string
			created   int64
			item      todo.Item
			completed bool
		)
		if err := rows.Scan(&rawID, &created, &item.Contents, &completed); err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		id, err := uuid.Parse(rawID)
		if err != nil {
			return nil, fmt.Errorf("bad id %q: %w", rawID, err)
		}
		item.ID = id
		item.Created = uint64(created)
		item.Completed = completed
		items[id] = item
	}
	return items, rows.Err()
}

// Close closes the database.
func (m *SQLiteMirror) Close() error {
	return m.db.Close()
}
