// Package settings provides database operations for durable key/value settings.
//
// The quote snapshot and the selected category filter live here under the
// keys declared in entities (SettingKeyQuotes, SettingKeySelectedCategory).
//
// # Usage
//
//	repo := settings.NewRepository(db)
//	setting, err := repo.GetSetting(entities.SettingKeySelectedCategory)
package settings

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/quotebook/internal/entities"
)

// Repository handles all settings database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new settings repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetSetting retrieves a setting by key.
func (r *Repository) GetSetting(key string) (*entities.Setting, error) {
	var setting entities.Setting
	err := r.db.Where("key = ?", key).First(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// SetSettings writes several keys in one transaction so readers never see
// half of a snapshot.
func (r *Repository) SetSettings(values map[string]string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for key, value := range values {
			setting := entities.Setting{Key: key, Value: value}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
			}).Create(&setting).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
