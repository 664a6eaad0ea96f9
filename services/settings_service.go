// services/settings_service.go - Key/value settings store
package services

import (
	"errors"

	"github.com/superbmt/zap-zap-game/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingsService reads and writes single named values: the current-profile
// pointer and the parent PIN hash.
type SettingsService struct {
	db *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{db: db}
}

// Get returns the stored value for key, or "" when the key is absent.
func (s *SettingsService) Get(key string) (string, error) {
	var setting models.Setting
	err := s.db.First(&setting, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return setting.Value, nil
}

// Set stores value under key, replacing any previous value.
func (s *SettingsService) Set(key, value string) error {
	setting := models.Setting{Key: key, Value: value}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&setting).Error
}

// Delete removes key. Deleting an absent key is not an error.
func (s *SettingsService) Delete(key string) error {
	return s.db.Delete(&models.Setting{}, "key = ?", key).Error
}
