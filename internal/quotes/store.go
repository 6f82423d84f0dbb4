// Package quotes owns the in-memory quote collection for the lifetime of the process.
//
// The Store is the only holder of the mutable collection. Other components
// (persistence, sync, selection) receive copies through All and hand changes
// back through Add, ImportMany and Merge.
package quotes

import (
	"fmt"
	"sync"

	"github.com/mrlokans/quotebook/internal/entities"
)

// Store holds the ordered quote collection.
type Store struct {
	mu     sync.RWMutex
	quotes []entities.Quote

	// saveMu orders snapshot writers. It is always taken before mu.
	saveMu sync.Mutex
}

// NewStore creates an empty store. Call Load to populate it.
func NewStore() *Store {
	return &Store{}
}

// Load replaces the collection with the persisted one when ok is true and
// every entry is complete. Otherwise the built-in seed quotes are used.
// It returns a copy of the resulting collection.
func (s *Store) Load(persisted []entities.Quote, ok bool) []entities.Quote {
	collection := DefaultQuotes()
	if ok && wellFormed(persisted) {
		collection = make([]entities.Quote, len(persisted))
		copy(collection, persisted)
	}

	s.mu.Lock()
	s.quotes = collection
	s.mu.Unlock()

	return s.All()
}

// Add validates and appends a single quote. Duplicate text is allowed.
func (s *Store) Add(q entities.Quote) (entities.Quote, error) {
	if !q.IsComplete() {
		return entities.Quote{}, ErrEmptyField
	}
	q = q.Trimmed()

	s.mu.Lock()
	s.quotes = append(s.quotes, q)
	s.mu.Unlock()

	return q, nil
}

// ImportMany appends every candidate in order without deduplication.
// The whole batch is rejected when any entry is incomplete.
func (s *Store) ImportMany(candidates []entities.Quote) (int, error) {
	if candidates == nil {
		return 0, ErrMalformedPayload
	}
	for i, q := range candidates {
		if !q.IsComplete() {
			return 0, fmt.Errorf("entry %d: %w", i, ErrMalformedPayload)
		}
	}

	s.mu.Lock()
	s.quotes = append(s.quotes, candidates...)
	s.mu.Unlock()

	return len(candidates), nil
}

// Merge applies the append-only merge policy against the current collection
// and returns the quotes that were appended.
func (s *Store) Merge(remote []entities.Quote) []entities.Quote {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged, added := Merge(s.quotes, remote)
	s.quotes = merged
	return added
}

// Snapshot hands save a copy of the current collection while holding the
// save lock, so concurrent writers persist in order and the last write
// always carries the newest collection. save must not call Snapshot.
func (s *Store) Snapshot(save func(collection []entities.Quote) error) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	return save(s.All())
}

// Categories returns the distinct categories in first-seen order.
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, q := range s.quotes {
		if _, ok := seen[q.Category]; ok {
			continue
		}
		seen[q.Category] = struct{}{}
		categories = append(categories, q.Category)
	}
	return categories
}

// HasCategory reports whether any quote is filed under category.
func (s *Store) HasCategory(category string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, q := range s.quotes {
		if q.Category == category {
			return true
		}
	}
	return false
}

// All returns a copy of the collection in insertion order.
func (s *Store) All() []entities.Quote {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entities.Quote, len(s.quotes))
	copy(out, s.quotes)
	return out
}

// Len returns the number of quotes in the collection.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.quotes)
}

func wellFormed(collection []entities.Quote) bool {
	if collection == nil {
		return false
	}
	for _, q := range collection {
		if !q.IsComplete() {
			return false
		}
	}
	return true
}
