package todo

import (
	"bytes"
	"sort"

	"github.com/google/uuid"
)

// SortedIDs returns the item ids ordered by ascending creation time.
// Items created in the same second are ordered by id bytes so the result is total.
func SortedIDs(s *Store) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(s.items))
	for id := range s.items {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool {
		a, b := s.items[ids[i]], s.items[ids[j]]
		if a.Created != b.Created {
			return a.Created < b.Created
		}
		return bytes.Compare(a.ID[:], b.ID[:]) < 0
	})

	return ids
}
