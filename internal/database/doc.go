// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, migrations
//	├── settings/        # Durable key/value rows (quote snapshot, selected category)
//	├── audit/           # Audit trail of imports, exports, syncs and pushes
//	└── sync/            # Remote sync progress tracking
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	db, err := database.NewDatabase("./quotebook.db")
//
//	settingsRepo := settings.NewRepository(db.DB)
//	auditRepo := audit.NewRepository(db.DB)
//	syncRepo := sync.NewRepository(db.DB)
//
// # Interface Implementations
//
//   - sync.Repository: implements syncer.ProgressReporter
//   - audit.Repository: implements tasks.AuditEventCleaner (via audit.Service)
//
// # Adding a New Domain
//
//  1. Create a new sub-package: internal/database/<domain>/
//  2. Define a Repository struct with a *gorm.DB field
//  3. Add NewRepository(db *gorm.DB) constructor
//  4. Add compile-time interface check: var _ SomeInterface = (*Repository)(nil)
package database
