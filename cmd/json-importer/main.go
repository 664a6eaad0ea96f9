// cmd/json-importer - Imports a legacy mobile-app export into the database.
//
// The old app kept three JSON records in device storage: the profile list,
// the current-profile pointer, and the capped score log. This tool reads a
// file containing those records and loads them, so players keep their
// stats and rankings after moving to the backed version.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/gorm/clause"

	"github.com/superbmt/zap-zap-game/database"
	"github.com/superbmt/zap-zap-game/models"
)

// legacyProfile mirrors the old app's profile record; the avatar was
// embedded as a full catalog entry rather than referenced by id.
type legacyProfile struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Avatar        *struct {
		ID int `json:"id"`
	} `json:"avatar"`
	CreatedAt     string  `json:"createdAt"`
	LastPlayed    string  `json:"lastPlayed"`
	GamesPlayed   int     `json:"gamesPlayed"`
	TotalScore    int     `json:"totalScore"`
	BestScore     int     `json:"bestScore"`
	BestAccuracy  float64 `json:"bestAccuracy"`
	LongestStreak int     `json:"longestStreak"`
}

type legacyScore struct {
	ID                string  `json:"id"`
	ProfileID         string  `json:"profileId"`
	Score             int     `json:"score"`
	Accuracy          float64 `json:"accuracy"`
	Difficulty        string  `json:"difficulty"`
	TimeLimit         int     `json:"timeLimit"`
	QuestionsAnswered int     `json:"questionsAnswered"`
	Streak            int     `json:"streak"`
	PlayedAt          string  `json:"playedAt"`
}

type legacyExport struct {
	Profiles       []legacyProfile `json:"profiles"`
	CurrentProfile string          `json:"current_profile"`
	Scores         []legacyScore   `json:"scores"`
}

func main() {
	file := flag.String("file", "export.json", "path to the legacy export file")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatal("Failed to read export file:", err)
	}

	var export legacyExport
	if err := json.Unmarshal(data, &export); err != nil {
		log.Fatal("Failed to parse export file:", err)
	}

	database.InitDB()
	defer database.CloseDB()
	db := database.GetDB()

	for _, lp := range export.Profiles {
		avatarID := models.DefaultAvatar().ID
		if lp.Avatar != nil {
			if a, ok := models.AvatarByID(lp.Avatar.ID); ok {
				avatarID = a.ID
			}
		}

		profile := models.Profile{
			ID:            lp.ID,
			Name:          lp.Name,
			AvatarID:      avatarID,
			GamesPlayed:   lp.GamesPlayed,
			TotalScore:    lp.TotalScore,
			BestScore:     lp.BestScore,
			BestAccuracy:  lp.BestAccuracy,
			LongestStreak: lp.LongestStreak,
			CreatedAt:     parseTime(lp.CreatedAt),
		}
		if t := parseTime(lp.LastPlayed); !t.IsZero() {
			profile.LastPlayed = &t
		}

		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&profile).Error; err != nil {
			log.Fatalf("Failed to import profile %s: %v", lp.ID, err)
		}
	}
	log.Printf("✅ Imported %d profiles", len(export.Profiles))

	// The export is most-recent-first; insert oldest first so insertion
	// order matches play order.
	imported := 0
	for i := len(export.Scores) - 1; i >= 0; i-- {
		ls := export.Scores[i]
		entry := models.ScoreEntry{
			ID:                ls.ID,
			ProfileID:         ls.ProfileID,
			Score:             ls.Score,
			Accuracy:          ls.Accuracy,
			Difficulty:        models.Difficulty(ls.Difficulty),
			TimeLimit:         ls.TimeLimit,
			QuestionsAnswered: ls.QuestionsAnswered,
			Streak:            ls.Streak,
			PlayedAt:          parseTime(ls.PlayedAt),
		}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&entry).Error; err != nil {
			log.Fatalf("Failed to import score %s: %v", ls.ID, err)
		}
		imported++
	}
	log.Printf("✅ Imported %d score entries", imported)

	if export.CurrentProfile != "" {
		setting := models.Setting{Key: models.SettingCurrentProfile, Value: export.CurrentProfile}
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).Create(&setting).Error; err != nil {
			log.Fatal("Failed to set current profile:", err)
		}
		log.Printf("✅ Current profile set to %s", export.CurrentProfile)
	}
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}
