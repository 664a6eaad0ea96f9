// models/profile.go - Player profiles with cumulative statistics
package models

import (
	"time"

	"gorm.io/gorm"
)

// Profile is a player identity. Statistics are running aggregates and are
// only ever mutated by recording a game result.
type Profile struct {
	ID       string `json:"id" gorm:"primarykey;type:varchar(36)"`
	Name     string `json:"name" gorm:"not null;size:20"`
	AvatarID int    `json:"avatar_id" gorm:"not null;default:1"`

	// Avatar is the resolved catalog entry; it is derived from AvatarID and
	// never persisted.
	Avatar Avatar `json:"avatar" gorm:"-"`

	// Stats
	GamesPlayed   int     `json:"games_played" gorm:"default:0"`
	TotalScore    int     `json:"total_score" gorm:"default:0"`
	BestScore     int     `json:"best_score" gorm:"default:0"`
	BestAccuracy  float64 `json:"best_accuracy" gorm:"default:0"`
	LongestStreak int     `json:"longest_streak" gorm:"default:0"`

	// Timestamps
	CreatedAt  time.Time  `json:"created_at"`
	LastPlayed *time.Time `json:"last_played,omitempty"`

	// Relationships
	Scores []ScoreEntry `json:"scores,omitempty" gorm:"foreignKey:ProfileID"`
}

// AfterFind resolves the avatar catalog entry whenever a profile is loaded,
// so every response carries the full avatar object.
func (p *Profile) AfterFind(*gorm.DB) error {
	p.Avatar = ResolveAvatar(p.AvatarID)
	return nil
}

func (Profile) TableName() string {
	return "profiles"
}

// Setting is a single named value in the key/value settings store. It backs
// the current-profile pointer and the parent PIN hash.
type Setting struct {
	Key   string `json:"key" gorm:"primarykey;size:50"`
	Value string `json:"value" gorm:"type:text"`
}

func (Setting) TableName() string {
	return "settings"
}

// Settings store keys.
const (
	SettingCurrentProfile = "current_profile"
	SettingParentPinHash  = "parent_pin_hash"
)
