package settingsstore

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/quotebook/internal/database"
	"github.com/mrlokans/quotebook/internal/entities"
)

func setupTestDB(t *testing.T) (*database.Database, func()) {
	t.Helper()
	dbPath := "./test_settings_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return db, cleanup
}

func TestNew(t *testing.T) {
	t.Run("creates settings store with database", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		store := New(db)

		assert.NotNil(t, store)
		assert.Equal(t, db, store.db)
	})
}

func TestGet(t *testing.T) {
	t.Run("reports missing key", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		store := New(db)
		value, ok, err := store.Get(entities.SettingKeyQuotes)

		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, value)
	})

	t.Run("returns stored value", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		require.NoError(t, db.SetSettings(map[string]string{entities.SettingKeySelectedCategory: "Life"}))

		store := New(db)
		value, ok, err := store.Get(entities.SettingKeySelectedCategory)

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "Life", value)
	})

	t.Run("distinguishes empty value from missing key", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		store := New(db)
		require.NoError(t, store.SetMany(map[string]string{entities.SettingKeySelectedCategory: ""}))

		value, ok, err := store.Get(entities.SettingKeySelectedCategory)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Empty(t, value)
	})
}

func TestSetMany(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	store := New(db)
	err := store.SetMany(map[string]string{
		entities.SettingKeyQuotes:           "[]",
		entities.SettingKeySelectedCategory: "all",
	})
	require.NoError(t, err)

	quotes, ok, err := store.Get(entities.SettingKeyQuotes)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", quotes)

	selected, ok, err := store.Get(entities.SettingKeySelectedCategory)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "all", selected)
}
