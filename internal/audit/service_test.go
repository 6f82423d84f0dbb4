package audit

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	auditRepo "github.com/mrlokans/quotebook/internal/database/audit"
	"github.com/mrlokans/quotebook/internal/entities"
)

func setupTestService(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "audit.db")), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.AuditEvent{})
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	repo := auditRepo.NewRepository(db)
	svc := NewService(repo)

	return svc, db
}

func TestService_Log(t *testing.T) {
	svc, db := setupTestService(t)

	event := &entities.AuditEvent{
		EventType:   entities.AuditEventImport,
		Action:      "test_import",
		Description: "Test import event",
		Status:      entities.AuditStatusSuccess,
	}

	err := svc.Log(event)
	require.NoError(t, err)

	var saved entities.AuditEvent
	err = db.First(&saved, event.ID).Error
	require.NoError(t, err)
	assert.Equal(t, "test_import", saved.Action)
}

func TestService_LogImport(t *testing.T) {
	svc, db := setupTestService(t)

	t.Run("successful import", func(t *testing.T) {
		svc.LogImport("json", "Imported 3 quotes", 3, "abc.json", nil)
		svc.Wait()

		var event entities.AuditEvent
		err := db.Where("action = ?", "json_import").First(&event).Error
		require.NoError(t, err)
		assert.Equal(t, entities.AuditStatusSuccess, event.Status)
		assert.Equal(t, "Imported 3 quotes", event.Description)
		assert.Contains(t, event.Metadata, `"quotes_count":3`)
		assert.Contains(t, event.Metadata, "abc.json")
	})

	t.Run("failed import", func(t *testing.T) {
		svc.LogImport("file", "Import failed", 0, "", errors.New("payload is not an array"))
		svc.Wait()

		var event entities.AuditEvent
		err := db.Where("action = ?", "file_import").First(&event).Error
		require.NoError(t, err)
		assert.Equal(t, entities.AuditStatusFailed, event.Status)
		assert.Contains(t, event.ErrorMsg, "not an array")
		assert.NotContains(t, event.Metadata, "archive")
	})
}

func TestService_LogSync(t *testing.T) {
	svc, db := setupTestService(t)

	svc.LogSync("remote_sync", "Quotes synced with server: 1 new", 2, 1, nil)
	svc.LogSync("remote_sync", "Sync failed", 0, 0, errors.New("remote quote source unavailable"))
	svc.Wait()

	events, total, err := svc.GetEventsByType(entities.AuditEventSync, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	statuses := []entities.AuditStatus{events[0].Status, events[1].Status}
	assert.ElementsMatch(t, []entities.AuditStatus{entities.AuditStatusSuccess, entities.AuditStatusFailed}, statuses)

	var count int64
	db.Model(&entities.AuditEvent{}).Where("metadata LIKE ?", `%"fetched":2%`).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestService_LogCreateAndPush(t *testing.T) {
	svc, _ := setupTestService(t)
	q := entities.Quote{Text: "Keep calm", Category: "Life"}

	svc.LogCreate(q)
	svc.LogPush(q, nil)
	svc.LogPush(q, errors.New("HTTP 503"))
	svc.Wait()

	created, _, err := svc.GetEventsByType(entities.AuditEventCreate, 10, 0)
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, "quote_create", created[0].Action)
	assert.Contains(t, created[0].Metadata, "Keep calm")

	pushed, total, err := svc.GetEventsByType(entities.AuditEventPush, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	failed := 0
	for _, e := range pushed {
		if e.Status == entities.AuditStatusFailed {
			failed++
			assert.Equal(t, "HTTP 503", e.ErrorMsg)
		}
	}
	assert.Equal(t, 1, failed)
}

func TestService_LogExportAndSettings(t *testing.T) {
	svc, _ := setupTestService(t)

	svc.LogExport("json", "Exported 4 quotes", 4, nil)
	svc.LogSettings("category_select", "Selected category Life")
	svc.Wait()

	events, total, err := svc.GetEvents(10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	actions := []string{events[0].Action, events[1].Action}
	assert.ElementsMatch(t, []string{"json_export", "category_select"}, actions)
}

func TestService_DeleteOldEvents(t *testing.T) {
	svc, db := setupTestService(t)

	old := &entities.AuditEvent{
		EventType: entities.AuditEventSync,
		Action:    "old",
		Status:    entities.AuditStatusSuccess,
		CreatedAt: time.Now().Add(-48 * time.Hour),
	}
	recent := &entities.AuditEvent{
		EventType: entities.AuditEventSync,
		Action:    "recent",
		Status:    entities.AuditStatusSuccess,
	}
	require.NoError(t, svc.Log(old))
	require.NoError(t, svc.Log(recent))

	deleted, err := svc.DeleteOldEvents(24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	var remaining []entities.AuditEvent
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, "recent", remaining[0].Action)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	long := strings.Repeat("x", 20)
	assert.Equal(t, "xxxxxxx...", truncate(long, 10))
}
