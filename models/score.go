// models/score.go - Game results and the persisted score log
package models

import (
	"math"
	"time"
)

// GameResult is the transient outcome of one timed play-through. It is
// handed to the profile store by value; nothing in it references live
// session state.
type GameResult struct {
	Score             int        `json:"score"`
	QuestionsAnswered int        `json:"questions_answered"`
	TimeLimit         int        `json:"time_limit"`
	Difficulty        Difficulty `json:"difficulty"`
	Accuracy          float64    `json:"accuracy"`
	Streak            int        `json:"streak"`
}

// Accuracy returns the percentage of answered questions that were correct,
// rounded to one decimal place. Zero answered questions yields 0.
func Accuracy(score, questionsAnswered int) float64 {
	if questionsAnswered <= 0 {
		return 0
	}
	pct := float64(score) / float64(questionsAnswered) * 100
	return math.Round(pct*10) / 10
}

// ScoreEntry is one immutable record per completed game. The log keeps at
// most ScoreLogCap entries; the oldest are evicted first.
type ScoreEntry struct {
	ID                string     `json:"id" gorm:"primarykey;type:varchar(36)"`
	ProfileID         string     `json:"profile_id" gorm:"not null;index;type:varchar(36)"`
	Score             int        `json:"score" gorm:"default:0"`
	Accuracy          float64    `json:"accuracy" gorm:"default:0"`
	Difficulty        Difficulty `json:"difficulty" gorm:"size:10;index"`
	TimeLimit         int        `json:"time_limit" gorm:"index"`
	QuestionsAnswered int        `json:"questions_answered" gorm:"default:0"`
	Streak            int        `json:"streak" gorm:"default:0"`
	PlayedAt          time.Time  `json:"played_at"`
}

func (ScoreEntry) TableName() string {
	return "score_entries"
}
