// database/migrate.go - Database Migration Runner
package database

import (
	"log"

	"github.com/superbmt/zap-zap-game/models"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	db := GetDB()
	log.Println("🔄 Running database migrations...")

	if err := db.AutoMigrate(
		&models.Profile{},
		&models.ScoreEntry{},
		&models.Setting{},
	); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}

	createIndexes()

	log.Println("✅ All migrations completed successfully")
}

// createIndexes creates indexes beyond what AutoMigrate derives from tags
func createIndexes() {
	db := GetDB()

	// Profile listing is always in creation order
	db.Exec("CREATE INDEX IF NOT EXISTS idx_profiles_created ON profiles(created_at)")

	// Leaderboard cells filter on both dimensions at once
	db.Exec("CREATE INDEX IF NOT EXISTS idx_scores_category ON score_entries(difficulty, time_limit)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_scores_played ON score_entries(played_at)")
}
