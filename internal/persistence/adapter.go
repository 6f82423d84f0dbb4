// Package persistence snapshots the quote collection and the selected
// category into a durable key/value store, and keeps the last shown quote
// in the session-scoped store.
package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/mrlokans/quotebook/internal/entities"
)

// KeyValueStore is a durable string key/value store.
type KeyValueStore interface {
	Get(key string) (string, bool, error)
	SetMany(values map[string]string) error
}

// SessionStore keeps values for the lifetime of one client session.
type SessionStore interface {
	LastShown(ctx context.Context) (entities.Quote, bool)
	SetLastShown(ctx context.Context, q entities.Quote) error
}

// Snapshot is the durable state restored at startup.
type Snapshot struct {
	Quotes []entities.Quote
	// SelectedCategory is empty when no filter was ever saved.
	SelectedCategory string
}

// Adapter reads and writes snapshots. It never keeps a copy of the collection.
type Adapter struct {
	kv      KeyValueStore
	session SessionStore
}

// NewAdapter creates an adapter. session may be nil when no client sessions
// exist (CLI commands).
func NewAdapter(kv KeyValueStore, session SessionStore) *Adapter {
	return &Adapter{kv: kv, session: session}
}

// Save overwrites the stored collection and selected category.
func (a *Adapter) Save(collection []entities.Quote, selectedCategory string) error {
	if collection == nil {
		collection = []entities.Quote{}
	}
	data, err := json.Marshal(collection)
	if err != nil {
		return fmt.Errorf("failed to encode quotes: %w", err)
	}

	err = a.kv.SetMany(map[string]string{
		entities.SettingKeyQuotes:           string(data),
		entities.SettingKeySelectedCategory: selectedCategory,
	})
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot returns the stored snapshot. The boolean is false when no
// collection was saved or it cannot be decoded.
func (a *Adapter) LoadSnapshot() (Snapshot, bool) {
	raw, ok, err := a.kv.Get(entities.SettingKeyQuotes)
	if err != nil {
		log.Printf("Persistence: failed to read quotes: %v", err)
		return Snapshot{}, false
	}
	if !ok {
		return Snapshot{}, false
	}

	var collection []entities.Quote
	if err := json.Unmarshal([]byte(raw), &collection); err != nil {
		log.Printf("Persistence: discarding unreadable quotes snapshot: %v", err)
		return Snapshot{}, false
	}
	if collection == nil {
		return Snapshot{}, false
	}
	for _, q := range collection {
		if !q.IsComplete() {
			log.Printf("Persistence: discarding snapshot with incomplete quote")
			return Snapshot{}, false
		}
	}

	snapshot := Snapshot{Quotes: collection}
	selected, ok, err := a.kv.Get(entities.SettingKeySelectedCategory)
	if err != nil {
		log.Printf("Persistence: failed to read selected category: %v", err)
	} else if ok {
		snapshot.SelectedCategory = selected
	}

	return snapshot, true
}

// LastShown returns the last quote shown in the session carried by ctx.
func (a *Adapter) LastShown(ctx context.Context) (entities.Quote, bool) {
	if a.session == nil {
		return entities.Quote{}, false
	}
	return a.session.LastShown(ctx)
}

// SetLastShown records q for the session carried by ctx.
func (a *Adapter) SetLastShown(ctx context.Context, q entities.Quote) error {
	if a.session == nil {
		return nil
	}
	return a.session.SetLastShown(ctx, q)
}
