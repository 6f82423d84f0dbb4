package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/quotebook/internal/audit"
	"github.com/mrlokans/quotebook/internal/database"
	"github.com/mrlokans/quotebook/internal/database/sync"
	"github.com/mrlokans/quotebook/internal/exporters"
	"github.com/mrlokans/quotebook/internal/http"
	"github.com/mrlokans/quotebook/internal/notify"
	"github.com/mrlokans/quotebook/internal/persistence"
	"github.com/mrlokans/quotebook/internal/quotes"
	"github.com/mrlokans/quotebook/internal/remote"
	"github.com/mrlokans/quotebook/internal/scheduler"
	"github.com/mrlokans/quotebook/internal/selection"
	"github.com/mrlokans/quotebook/internal/services"
	"github.com/mrlokans/quotebook/internal/session"
	"github.com/mrlokans/quotebook/internal/settingsstore"
	"github.com/mrlokans/quotebook/internal/syncer"
	"github.com/mrlokans/quotebook/internal/tasks"
)

// =============================================================================
// Quote Collection
// =============================================================================

var _ selection.Source = (*quotes.Store)(nil)
var _ syncer.Store = (*quotes.Store)(nil)
var _ syncer.CategorySource = (*selection.ViewModel)(nil)

// =============================================================================
// Persistence
// =============================================================================

var _ persistence.KeyValueStore = (*settingsstore.SettingsStore)(nil)
var _ persistence.SessionStore = (*session.Manager)(nil)
var _ services.SnapshotStore = (*persistence.Adapter)(nil)
var _ syncer.SnapshotSaver = (*persistence.Adapter)(nil)

// =============================================================================
// Remote Sync
// =============================================================================

var _ syncer.QuoteSource = (*remote.Client)(nil)
var _ syncer.ProgressReporter = (*sync.Repository)(nil)
var _ syncer.PushQueue = (*tasks.Client)(nil)
var _ services.Pusher = (*syncer.Service)(nil)
var _ tasks.QuotePusher = (*syncer.Service)(nil)
var _ scheduler.Syncer = (*syncer.Service)(nil)
var _ scheduler.CleanupEnqueuer = (*tasks.Client)(nil)

// =============================================================================
// Notifications and Audit
// =============================================================================

var _ services.Notifier = (*notify.Feed)(nil)
var _ syncer.Notifier = (*notify.Feed)(nil)
var _ services.AuditLogger = (*audit.Service)(nil)
var _ syncer.Auditor = (*audit.Service)(nil)
var _ services.PayloadArchiver = (*audit.Auditor)(nil)
var _ tasks.AuditEventCleaner = (*audit.Service)(nil)

// =============================================================================
// HTTP Layer
// =============================================================================

var _ http.QuoteService = (*services.QuoteService)(nil)
var _ http.SyncRunner = (*scheduler.QuoteSyncScheduler)(nil)
var _ http.SyncProgressReader = (*sync.Repository)(nil)
var _ http.NotificationReader = (*notify.Feed)(nil)
var _ http.AuditReader = (*audit.Service)(nil)
var _ http.TaskQueue = (*tasks.Client)(nil)
var _ http.Pinger = (*database.Database)(nil)

// =============================================================================
// Export
// =============================================================================

var _ exporters.QuoteExporter = (*exporters.JSONExporter)(nil)
var _ exporters.QuoteExporter = (*exporters.MarkdownExporter)(nil)
