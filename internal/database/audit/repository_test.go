package audit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mrlokans/quotebook/internal/entities"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.AuditEvent{})
	require.NoError(t, err)

	return db
}

func TestRepository_LogEvent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	event := &entities.AuditEvent{
		EventType:   entities.AuditEventImport,
		Action:      "json_import",
		Description: "Imported 3 quotes",
		Status:      entities.AuditStatusSuccess,
	}

	err := repo.LogEvent(event)
	require.NoError(t, err)
	assert.NotZero(t, event.ID)
	assert.False(t, event.CreatedAt.IsZero())
}

func TestRepository_GetEvents(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	for i := 0; i < 15; i++ {
		event := &entities.AuditEvent{
			EventType:   entities.AuditEventSync,
			Action:      "remote_sync",
			Description: "Test event",
			Status:      entities.AuditStatusSuccess,
			CreatedAt:   time.Now().Add(time.Duration(-i) * time.Hour),
		}
		require.NoError(t, repo.LogEvent(event))
	}
	for i := 0; i < 5; i++ {
		event := &entities.AuditEvent{
			EventType:   entities.AuditEventPush,
			Action:      "remote_push",
			Description: "Test push event",
			Status:      entities.AuditStatusFailed,
		}
		require.NoError(t, repo.LogEvent(event))
	}

	t.Run("get all events", func(t *testing.T) {
		events, total, err := repo.GetEvents(50, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(20), total)
		assert.Len(t, events, 20)
	})

	t.Run("newest first", func(t *testing.T) {
		events, _, err := repo.GetEvents(50, 0)
		require.NoError(t, err)
		for i := 1; i < len(events); i++ {
			assert.False(t, events[i].CreatedAt.After(events[i-1].CreatedAt))
		}
	})

	t.Run("pagination", func(t *testing.T) {
		events, total, err := repo.GetEvents(5, 5)
		require.NoError(t, err)
		assert.Equal(t, int64(20), total)
		assert.Len(t, events, 5)
	})

	t.Run("default limit when zero", func(t *testing.T) {
		events, _, err := repo.GetEvents(0, 0)
		require.NoError(t, err)
		assert.Len(t, events, 20)
	})

	t.Run("filter by type", func(t *testing.T) {
		events, total, err := repo.GetEventsByType(entities.AuditEventPush, 50, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
		for _, e := range events {
			assert.Equal(t, entities.AuditEventPush, e.EventType)
		}
	})
}

func TestRepository_DeleteOldEvents(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	old := &entities.AuditEvent{
		EventType: entities.AuditEventSync,
		Action:    "remote_sync",
		Status:    entities.AuditStatusSuccess,
		CreatedAt: time.Now().Add(-48 * time.Hour),
	}
	recent := &entities.AuditEvent{
		EventType: entities.AuditEventSync,
		Action:    "remote_sync",
		Status:    entities.AuditStatusSuccess,
	}
	require.NoError(t, repo.LogEvent(old))
	require.NoError(t, repo.LogEvent(recent))

	deleted, err := repo.DeleteOldEvents(time.Now().Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, total, err := repo.GetEvents(50, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}
