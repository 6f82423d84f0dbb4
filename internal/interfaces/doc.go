// Package interfaces collects the compile-time checks that wire the
// application's concrete types to the narrow interfaces their consumers
// declare.
//
// # Where interfaces live
//
// Interfaces are declared by the package that consumes them:
//
//   - syncer: QuoteSource, Store, SnapshotSaver, CategorySource, Notifier,
//     Auditor, ProgressReporter, PushQueue (internal/syncer/interfaces.go)
//   - services: SnapshotStore, Pusher, Notifier, AuditLogger, PayloadArchiver
//     (internal/services/interfaces.go)
//   - persistence: KeyValueStore, SessionStore (internal/persistence/adapter.go)
//   - selection: Source (internal/selection/selection.go)
//   - scheduler: Syncer, CleanupEnqueuer
//   - tasks: QuotePusher, AuditEventCleaner
//   - http: QuoteService, SyncRunner, SyncProgressReader, NotificationReader,
//     AuditReader, TaskQueue, Pinger (internal/http/stores.go)
//
// # Adding a New Remote Source
//
//  1. Implement syncer.QuoteSource in a new package under internal/:
//
//     func (c *FeedClient) FetchQuotes(ctx context.Context, limit int) ([]entities.Quote, error)
//     func (c *FeedClient) PushQuote(ctx context.Context, q entities.Quote) error
//
//     Transport failures must wrap quotes.ErrNetworkFailure and unreadable
//     bodies quotes.ErrMalformedPayload so callers can tell them apart.
//
//  2. Add a compile-time check to checks.go.
//
//  3. Pass it to syncer.NewService in entrypoint.go.
//
// # Adding a New Export Format
//
//  1. Implement exporters.QuoteExporter in internal/exporters/.
//  2. Register it in exporters.ForFormat.
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go.
package interfaces
