package syncer

import (
	"context"

	"github.com/mrlokans/quotebook/internal/entities"
	"github.com/mrlokans/quotebook/internal/notify"
)

// QuoteSource reads from and writes to the remote quote collection.
type QuoteSource interface {
	FetchQuotes(ctx context.Context, limit int) ([]entities.Quote, error)
	PushQuote(ctx context.Context, q entities.Quote) error
}

// Store is the local collection the remote batch is merged into.
type Store interface {
	Merge(remote []entities.Quote) []entities.Quote
	Snapshot(save func(collection []entities.Quote) error) error
}

// SnapshotSaver persists the collection together with the selected category.
type SnapshotSaver interface {
	Save(collection []entities.Quote, selectedCategory string) error
}

// CategorySource supplies the selected category written with each snapshot.
type CategorySource interface {
	SelectedCategory() string
}

// Notifier surfaces outcomes to the presentation layer.
type Notifier interface {
	Notify(level notify.Level, message string) notify.Notification
}

// Auditor records sync and push outcomes.
type Auditor interface {
	LogSync(action, description string, fetched, added int, err error)
	LogPush(q entities.Quote, err error)
}

// ProgressReporter tracks the state of the current cycle.
type ProgressReporter interface {
	StartSync() error
	CompleteSync(fetched, added int, syncErr error) error
}

// PushQueue hands pushes to a background task queue.
type PushQueue interface {
	EnqueuePush(q entities.Quote) error
}
