package services

import (
	"testing"

	"github.com/superbmt/zap-zap-game/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv wires the full service stack onto an in-memory database.
type testEnv struct {
	db          *gorm.DB
	settings    *SettingsService
	scores      *ScoreService
	profiles    *ProfileService
	leaderboard *LeaderboardService
	sessions    *SessionService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	if err := db.AutoMigrate(&models.Profile{}, &models.ScoreEntry{}, &models.Setting{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	settings := NewSettingsService(db)
	scores := NewScoreService(db)
	profiles := NewProfileService(db, scores, settings)

	return &testEnv{
		db:          db,
		settings:    settings,
		scores:      scores,
		profiles:    profiles,
		leaderboard: NewLeaderboardService(profiles, scores),
		sessions:    NewSessionService(profiles),
	}
}

// mustCreateProfile creates a profile or fails the test.
func mustCreateProfile(t *testing.T, env *testEnv, name string) *models.Profile {
	t.Helper()
	profile, err := env.profiles.Create(name, 1)
	if err != nil {
		t.Fatalf("failed to create profile %q: %v", name, err)
	}
	return profile
}

// result builds a GameResult for a category; accuracy is recomputed by the
// store, so it is left zero here.
func result(score, answered int, difficulty models.Difficulty, timeLimit, streak int) models.GameResult {
	return models.GameResult{
		Score:             score,
		QuestionsAnswered: answered,
		TimeLimit:         timeLimit,
		Difficulty:        difficulty,
		Streak:            streak,
	}
}
