package todo

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Persister stores a snapshot of the whole store after a mutation.
type Persister interface {
	Persist(ctx context.Context, snapshot *Store) error
}

// Service applies mutations to a Store and persists the result.
// Mutation and persistence run under one lock so concurrent callers cannot
// interleave and drop a write. A persistence error is returned to the caller
// but the in-memory mutation is kept.
type Service struct {
	mu      sync.Mutex
	store   *Store
	persist Persister
}

// NewService wraps store. persist may be nil, in which case nothing is saved.
func NewService(store *Store, persist Persister) *Service {
	return &Service{store: store, persist: persist}
}

// Snapshot returns a copy of the current store for rendering.
func (s *Service) Snapshot() *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Clone()
}

// Insert adds a new item and persists the store.
func (s *Service) Insert(ctx context.Context, contents string) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.store.Insert(contents)
	return id, s.save(ctx)
}

// Remove deletes an item and persists the store. Removing an unknown id is a
// no-op that reports false and does not save.
func (s *Service) Remove(ctx context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.store.Remove(id) {
		return false, nil
	}
	return true, s.save(ctx)
}

// SetCompleted sets the completion flag of an item and persists the store.
func (s *Service) SetCompleted(ctx context.Context, id uuid.UUID, completed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.SetCompleted(id, completed); err != nil {
		return err
	}
	return s.save(ctx)
}

// Toggle flips the completion flag of an item and returns the new value.
func (s *Service) Toggle(ctx context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.store.Get(id)
	if !ok {
		return false, ErrNotFound
	}
	if err := s.store.SetCompleted(id, !item.Completed); err != nil {
		return false, err
	}
	return !item.Completed, s.save(ctx)
}

// SetContents replaces the text of an item and persists the store.
func (s *Service) SetContents(ctx context.Context, id uuid.UUID, contents string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.SetContents(id, contents); err != nil {
		return err
	}
	return s.save(ctx)
}

// ClearCompleted removes all completed items. It saves only if something was removed.
func (s *Service) ClearCompleted(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.store.ClearCompleted()
	if n == 0 {
		return 0, nil
	}
	return n, s.save(ctx)
}

// save must be called with mu held.
func (s *Service) save(ctx context.Context) error {
	if s.persist == nil {
		return nil
	}
	return s.persist.Persist(ctx, s.store.Clone())
}
