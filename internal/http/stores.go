package http

import (
	"context"
	"io"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/quotebook/internal/entities"
	"github.com/mrlokans/quotebook/internal/exporters"
	"github.com/mrlokans/quotebook/internal/notify"
	"github.com/mrlokans/quotebook/internal/scheduler"
	"github.com/mrlokans/quotebook/internal/services"
	"github.com/mrlokans/quotebook/internal/syncer"
)

// Each controller depends on the narrowest interface it needs; this file
// collects them.

// QuoteService covers every quote operation exposed over HTTP.
type QuoteService interface {
	List(category string) []entities.Quote
	Add(q entities.Quote) (entities.Quote, error)
	Import(payload []byte, source string) (services.ImportResult, error)
	Export(w io.Writer, format string) (exporters.QuoteExporter, exporters.ExportResult, error)
	Categories() ([]string, string)
	SelectCategory(value string) error
	ShowRandom(ctx context.Context) (entities.Quote, bool)
	LastShown(ctx context.Context) (entities.Quote, bool)
}

// SyncRunner triggers and reports merge cycles.
type SyncRunner interface {
	RunNow(ctx context.Context) (syncer.Result, error)
	Status() scheduler.Status
}

// SyncProgressReader reads the persisted state of the last cycle.
type SyncProgressReader interface {
	// IsSyncRunning also marks a stale running record as failed.
	IsSyncRunning() (bool, error)
	GetSyncProgress() (*entities.SyncProgress, error)
}

// NotificationReader reads the notification feed.
type NotificationReader interface {
	Recent(limit int) []notify.Notification
	Since(id uint64) []notify.Notification
}

// AuditReader reads the audit trail.
type AuditReader interface {
	GetEvents(limit, offset int) ([]entities.AuditEvent, int64, error)
	GetEventsByType(eventType entities.AuditEventType, limit, offset int) ([]entities.AuditEvent, int64, error)
}

// TaskQueue enqueues maintenance tasks and reports their status.
type TaskQueue interface {
	EnqueueAuditCleanup() error
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping() error
}
