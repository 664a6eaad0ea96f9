// services/score_service.go - Append-only score log, capped at the most
// recent entries
package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/superbmt/zap-zap-game/models"
	"gorm.io/gorm"
)

// ScoreLogCap is the maximum number of score entries retained. Once the log
// is full the oldest entries are evicted first.
const ScoreLogCap = 100

// ScoreService owns the persisted score log.
type ScoreService struct {
	db *gorm.DB
}

func NewScoreService(db *gorm.DB) *ScoreService {
	return &ScoreService{db: db}
}

// Append records one completed game for a profile and trims the log back to
// ScoreLogCap entries.
func (s *ScoreService) Append(profileID string, result models.GameResult) (*models.ScoreEntry, error) {
	var entry *models.ScoreEntry
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		entry, txErr = s.appendTx(tx, profileID, result)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// appendTx is the transactional body of Append, shared with the profile
// store's record-result path.
func (s *ScoreService) appendTx(tx *gorm.DB, profileID string, result models.GameResult) (*models.ScoreEntry, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate score id: %w", err)
	}

	entry := models.ScoreEntry{
		ID:                id.String(),
		ProfileID:         profileID,
		Score:             result.Score,
		Accuracy:          result.Accuracy,
		Difficulty:        result.Difficulty,
		TimeLimit:         result.TimeLimit,
		QuestionsAnswered: result.QuestionsAnswered,
		Streak:            result.Streak,
		PlayedAt:          time.Now().UTC(),
	}

	if err := tx.Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("failed to append score entry: %w", err)
	}

	// Recency is play time; UUIDv7 ids break same-instant ties in
	// insertion order.
	if err := tx.Exec(
		"DELETE FROM score_entries WHERE id NOT IN (SELECT id FROM (SELECT id FROM score_entries ORDER BY played_at DESC, id DESC LIMIT ?) AS keep)",
		ScoreLogCap,
	).Error; err != nil {
		return nil, fmt.Errorf("failed to trim score log: %w", err)
	}

	return &entry, nil
}

// All returns every retained score entry, most recent first.
func (s *ScoreService) All() ([]models.ScoreEntry, error) {
	var entries []models.ScoreEntry
	if err := s.db.Order("played_at DESC, id DESC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to load score log: %w", err)
	}
	return entries, nil
}

// deleteForProfileTx removes every entry belonging to a profile. Used by the
// profile store's cascade delete.
func (s *ScoreService) deleteForProfileTx(tx *gorm.DB, profileID string) error {
	return tx.Delete(&models.ScoreEntry{}, "profile_id = ?", profileID).Error
}
