// Package todo holds the in-memory item store and its derived view.
package todo

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a mutation targets an id that is not in the store.
var ErrNotFound = errors.New("todo not found")

// Item is a single to-do entry.
type Item struct {
	ID        uuid.UUID `json:"id"`
	Created   uint64    `json:"created"` // seconds since epoch
	Contents  string    `json:"contents"`
	Completed bool      `json:"completed"`
}

// Clock returns the current time. Tests replace it to control Created.
type Clock func() time.Time

// Store maps item ids to items. Display order is not stored; see SortedIDs.
// A Store is not safe for concurrent use; Service serializes access.
type Store struct {
	items map[uuid.UUID]Item
	clock Clock
	newID func() uuid.UUID
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used to stamp new items.
func WithClock(c Clock) Option {
	return func(s *Store) {
		s.clock = c
	}
}

// WithIDGenerator overrides the id source (defaults to uuid.New).
func WithIDGenerator(gen func() uuid.UUID) Option {
	return func(s *Store) {
		s.newID = gen
	}
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		items: make(map[uuid.UUID]Item),
		clock: time.Now,
		newID: uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Insert creates a new, not yet completed item and returns its id.
func (s *Store) Insert(contents string) uuid.UUID {
	id := s.newID()
	for {
		if _, taken := s.items[id]; !taken {
			break
		}
		id = s.newID()
	}

	s.items[id] = Item{
		ID:        id,
		Created:   uint64(s.clock().Unix()),
		Contents:  contents,
		Completed: false,
	}
	return id
}

// Remove deletes the item with the given id. It reports whether anything was removed.
func (s *Store) Remove(id uuid.UUID) bool {
	if _, ok := s.items[id]; !ok {
		return false
	}
	delete(s.items, id)
	return true
}

// SetCompleted sets the completion flag of an item.
func (s *Store) SetCompleted(id uuid.UUID, completed bool) error {
	item, ok := s.items[id]
	if !ok {
		return fmt.Errorf("set completed %s: %w", id, ErrNotFound)
	}
	item.Completed = completed
	s.items[id] = item
	return nil
}

// SetContents replaces the text of an item.
func (s *Store) SetContents(id uuid.UUID, contents string) error {
	item, ok := s.items[id]
	if !ok {
		return fmt.Errorf("set contents %s: %w", id, ErrNotFound)
	}
	item.Contents = contents
	s.items[id] = item
	return nil
}

// ClearCompleted removes every completed item and returns how many were removed.
func (s *Store) ClearCompleted() int {
	n := 0
	for id, item := range s.items {
		if item.Completed {
			delete(s.items, id)
			n++
		}
	}
	return n
}

// Get returns the item with the given id.
func (s *Store) Get(id uuid.UUID) (Item, bool) {
	item, ok := s.items[id]
	return item, ok
}

// Len returns the number of items.
func (s *Store) Len() int {
	return len(s.items)
}

// Items returns a copy of the underlying map.
func (s *Store) Items() map[uuid.UUID]Item {
	out := make(map[uuid.UUID]Item, len(s.items))
	for id, item := range s.items {
		out[id] = item
	}
	return out
}

// Clone returns an independent copy sharing the clock and id generator.
func (s *Store) Clone() *Store {
	return &Store{
		items: s.Items(),
		clock: s.clock,
		newID: s.newID,
	}
}

// Equal reports whether both stores hold the same items, field for field.
func (s *Store) Equal(other *Store) bool {
	if s.Len() != other.Len() {
		return false
	}
	for id, item := range s.items {
		if o, ok := other.items[id]; !ok || o != item {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the store as an object keyed by item id.
func (s *Store) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.items)
}

// UnmarshalJSON replaces the store contents with the decoded object.
func (s *Store) UnmarshalJSON(data []byte) error {
	items := make(map[uuid.UUID]Item)
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	for key, item := range items {
		if item.ID != key {
			return fmt.Errorf("item key %s does not match id %s", key, item.ID)
		}
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.New
	}
	s.items = items
	return nil
}
