// services/profile_service.go - Durable profile store
package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/superbmt/zap-zap-game/models"
	"gorm.io/gorm"
)

var (
	// ErrProfileNotFound is returned when an operation targets a profile id
	// that is not in the store.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrInvalidName is returned by Create for names outside the allowed
	// length or character set.
	ErrInvalidName = errors.New("name must be 2-20 letters, digits, spaces, hyphens or underscores")
)

var nameRe = regexp.MustCompile(`^[A-Za-z0-9 _-]+$`)

// ProfileService owns the profile records and the current-profile pointer.
// Recording a game result is the only operation that mutates statistics.
type ProfileService struct {
	db       *gorm.DB
	scores   *ScoreService
	settings *SettingsService
}

func NewProfileService(db *gorm.DB, scores *ScoreService, settings *SettingsService) *ProfileService {
	return &ProfileService{db: db, scores: scores, settings: settings}
}

// List returns all profiles in creation order.
func (s *ProfileService) List() ([]models.Profile, error) {
	var profiles []models.Profile
	if err := s.db.Order("created_at ASC, id ASC").Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("failed to load profiles: %w", err)
	}
	return profiles, nil
}

// Get returns one profile by id.
func (s *ProfileService) Get(id string) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.First(&profile, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return &profile, nil
}

// Create validates the name, resolves the avatar against the catalog
// (falling back to the default entry), and appends a zero-stat profile.
func (s *ProfileService) Create(name string, avatarID int) (*models.Profile, error) {
	name = strings.TrimSpace(name)
	if len(name) < 2 || len(name) > 20 || !nameRe.MatchString(name) {
		return nil, ErrInvalidName
	}

	avatar := models.ResolveAvatar(avatarID)

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate profile id: %w", err)
	}

	profile := models.Profile{
		ID:       id.String(),
		Name:     name,
		AvatarID: avatar.ID,
		Avatar:   avatar,
	}

	if err := s.db.Create(&profile).Error; err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return &profile, nil
}

// Current resolves the current-profile pointer against the live profiles.
// It returns (nil, nil) when the pointer is unset or points at a profile
// that no longer exists.
func (s *ProfileService) Current() (*models.Profile, error) {
	id, err := s.settings.Get(models.SettingCurrentProfile)
	if err != nil {
		return nil, fmt.Errorf("failed to read current profile pointer: %w", err)
	}
	if id == "" {
		return nil, nil
	}

	profile, err := s.Get(id)
	if errors.Is(err, ErrProfileNotFound) {
		// Stale pointer; treated the same as unset.
		return nil, nil
	}
	return profile, err
}

// SetCurrent stores the current-profile pointer. The id is deliberately not
// checked against the store; a stale pointer resolves to no profile later.
func (s *ProfileService) SetCurrent(profileID string) error {
	return s.settings.Set(models.SettingCurrentProfile, profileID)
}

// RecordResult applies a finished game to a profile's running statistics and
// appends the result to the score log, in one transaction. This is the only
// mutation path for profile stats.
func (s *ProfileService) RecordResult(profileID string, result models.GameResult) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.First(&profile, "id = ?", profileID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	// The accuracy invariant is enforced here rather than trusted from the
	// caller.
	result.Accuracy = models.Accuracy(result.Score, result.QuestionsAnswered)

	now := time.Now().UTC()
	profile.GamesPlayed++
	profile.TotalScore += result.Score
	if result.Score > profile.BestScore {
		profile.BestScore = result.Score
	}
	if result.Accuracy > profile.BestAccuracy {
		profile.BestAccuracy = result.Accuracy
	}
	if result.Streak > profile.LongestStreak {
		profile.LongestStreak = result.Streak
	}
	profile.LastPlayed = &now

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&profile).Error; err != nil {
			return fmt.Errorf("failed to update profile: %w", err)
		}
		if _, err := s.scores.appendTx(tx, profileID, result); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Delete removes a profile, cascades to its score entries, and clears the
// current-profile pointer if it referenced the deleted profile.
func (s *ProfileService) Delete(profileID string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Profile{}, "id = ?", profileID)
		if res.Error != nil {
			return fmt.Errorf("failed to delete profile: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrProfileNotFound
		}
		return s.scores.deleteForProfileTx(tx, profileID)
	})
	if err != nil {
		return err
	}

	current, err := s.settings.Get(models.SettingCurrentProfile)
	if err != nil {
		return fmt.Errorf("failed to read current profile pointer: %w", err)
	}
	if current == profileID {
		return s.settings.Delete(models.SettingCurrentProfile)
	}
	return nil
}
