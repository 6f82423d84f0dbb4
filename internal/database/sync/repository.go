// Package sync provides database operations for remote sync progress tracking.
//
// This package implements the ProgressReporter interface used by the syncer.
//
// # Interface Implementation
//
//	var _ syncer.ProgressReporter = (*Repository)(nil)
//
// # Usage
//
//	repo := sync.NewRepository(db)
//	err := repo.StartSync()
package sync

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/quotebook/internal/entities"
)

// Repository handles all sync progress database operations.
type Repository struct {
	db       *gorm.DB
	syncType entities.SyncType
}

// NewRepository creates a new sync repository for remote quote syncs.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db, syncType: entities.SyncTypeRemoteQuotes}
}

// GetSyncProgress retrieves the sync progress for the configured sync type.
func (r *Repository) GetSyncProgress() (*entities.SyncProgress, error) {
	var progress entities.SyncProgress
	err := r.db.Where("sync_type = ?", r.syncType).First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// StartSync creates or resets the progress record for a new cycle.
// Implements ProgressReporter.StartSync.
func (r *Repository) StartSync() error {
	var progress entities.SyncProgress
	result := r.db.Where("sync_type = ?", r.syncType).First(&progress)

	now := time.Now()
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		progress = entities.SyncProgress{
			SyncType:  r.syncType,
			Status:    entities.SyncStatusRunning,
			StartedAt: now,
			UpdatedAt: now,
		}
		return r.db.Create(&progress).Error
	} else if result.Error != nil {
		return result.Error
	}

	// Reset existing record
	progress.Status = entities.SyncStatusRunning
	progress.Fetched = 0
	progress.Added = 0
	progress.Skipped = 0
	progress.Error = ""
	progress.StartedAt = now
	progress.UpdatedAt = now
	progress.CompletedAt = nil

	return r.db.Save(&progress).Error
}

// CompleteSync marks the current cycle as completed, or failed when syncErr is set.
// Implements ProgressReporter.CompleteSync.
func (r *Repository) CompleteSync(fetched, added int, syncErr error) error {
	now := time.Now()
	status := entities.SyncStatusCompleted
	errorMsg := ""
	if syncErr != nil {
		status = entities.SyncStatusFailed
		errorMsg = syncErr.Error()
	}

	skipped := fetched - added
	if skipped < 0 {
		skipped = 0
	}

	return r.db.Model(&entities.SyncProgress{}).
		Where("sync_type = ?", r.syncType).
		Updates(map[string]any{
			"status":       status,
			"fetched":      fetched,
			"added":        added,
			"skipped":      skipped,
			"error":        errorMsg,
			"updated_at":   now,
			"completed_at": now,
		}).Error
}

// IsSyncRunning checks if a sync is currently in progress.
// A sync is considered stale if not updated in 10 minutes.
func (r *Repository) IsSyncRunning() (bool, error) {
	var progress entities.SyncProgress
	err := r.db.Where("sync_type = ? AND status = ?", r.syncType, entities.SyncStatusRunning).First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	// Consider sync stale if not updated in 10 minutes
	staleThreshold := time.Now().Add(-10 * time.Minute)
	if progress.UpdatedAt.Before(staleThreshold) {
		_ = r.CompleteSync(0, 0, errors.New("sync was interrupted"))
		return false, nil
	}

	return true, nil
}
