// Package notify keeps a bounded, newest-first feed of user-visible
// notifications raised by imports, syncs and pushes.
package notify

import (
	"sync"
	"time"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

const defaultCapacity = 50

// Notification is a single feed entry.
type Notification struct {
	ID        uint64    `json:"id"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Feed is a fixed-capacity ring of notifications. Older entries are
// overwritten once the ring is full.
type Feed struct {
	mu     sync.RWMutex
	ring   []Notification
	next   int
	size   int
	lastID uint64
	now    func() time.Time
}

// NewFeed creates a feed holding up to capacity notifications.
func NewFeed(capacity int) *Feed {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &Feed{
		ring: make([]Notification, capacity),
		now:  time.Now,
	}
}

// Notify appends a notification and returns it.
func (f *Feed) Notify(level Level, message string) Notification {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lastID++
	n := Notification{
		ID:        f.lastID,
		Level:     level,
		Message:   message,
		CreatedAt: f.now(),
	}
	f.ring[f.next] = n
	f.next = (f.next + 1) % len(f.ring)
	if f.size < len(f.ring) {
		f.size++
	}
	return n
}

// Recent returns up to limit notifications, newest first. A non-positive
// limit returns everything held.
func (f *Feed) Recent(limit int) []Notification {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if limit <= 0 || limit > f.size {
		limit = f.size
	}
	out := make([]Notification, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (f.next - i + len(f.ring)) % len(f.ring)
		out = append(out, f.ring[idx])
	}
	return out
}

// Since returns notifications with an ID greater than id, newest first.
func (f *Feed) Since(id uint64) []Notification {
	out := make([]Notification, 0)
	for _, n := range f.Recent(0) {
		if n.ID <= id {
			break
		}
		out = append(out, n)
	}
	return out
}

// Len returns the number of notifications held.
func (f *Feed) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.size
}
