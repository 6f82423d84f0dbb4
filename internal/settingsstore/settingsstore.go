// Package settingsstore exposes the settings table as a durable string
// key/value store.
package settingsstore

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mrlokans/quotebook/internal/entities"
)

// Backend is the subset of database operations the store needs.
type Backend interface {
	GetSetting(key string) (*entities.Setting, error)
	SetSettings(values map[string]string) error
}

type SettingsStore struct {
	db Backend
}

func New(db Backend) *SettingsStore {
	return &SettingsStore{db: db}
}

// Get returns the stored value for key. The boolean is false when the key
// has never been written.
func (s *SettingsStore) Get(key string) (string, bool, error) {
	setting, err := s.db.GetSetting(key)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return setting.Value, true, nil
}

// SetMany overwrites several keys in one transaction.
func (s *SettingsStore) SetMany(values map[string]string) error {
	return s.db.SetSettings(values)
}
