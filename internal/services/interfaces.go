package services

import (
	"context"

	"github.com/mrlokans/quotebook/internal/entities"
	"github.com/mrlokans/quotebook/internal/notify"
	"github.com/mrlokans/quotebook/internal/persistence"
)

// SnapshotStore persists the collection and the selected category and
// keeps the per-session last shown quote.
type SnapshotStore interface {
	Save(collection []entities.Quote, selectedCategory string) error
	LoadSnapshot() (persistence.Snapshot, bool)
	LastShown(ctx context.Context) (entities.Quote, bool)
	SetLastShown(ctx context.Context, q entities.Quote) error
}

// Pusher sends locally added quotes to the remote source without blocking.
type Pusher interface {
	Push(q entities.Quote)
}

// Notifier surfaces outcomes to the presentation layer.
type Notifier interface {
	Notify(level notify.Level, message string) notify.Notification
}

// AuditLogger records user-initiated changes.
type AuditLogger interface {
	LogImport(source, description string, quotesCount int, archive string, err error)
	LogExport(format, description string, quotesCount int, err error)
	LogCreate(q entities.Quote)
	LogSettings(action, description string)
}

// PayloadArchiver keeps a copy of every import payload.
type PayloadArchiver interface {
	SaveRaw(payload []byte) (string, error)
}
