// models/question.go - Difficulty tiers and generated questions
package models

// Difficulty selects the operand ranges and operator set for generated
// questions, and is one of the two leaderboard grouping dimensions.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyUltra  Difficulty = "ultra"
)

// Difficulties lists every tier in display order.
var Difficulties = []Difficulty{
	DifficultyEasy,
	DifficultyMedium,
	DifficultyHard,
	DifficultyUltra,
}

// TimeLimits are the selectable countdown lengths in seconds, and the
// second leaderboard grouping dimension.
var TimeLimits = []int{15, 30, 45, 60}

// Valid reports whether d names a known tier.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyUltra:
		return true
	}
	return false
}

// ValidTimeLimit reports whether t is one of the selectable countdown
// lengths.
func ValidTimeLimit(t int) bool {
	for _, limit := range TimeLimits {
		if t == limit {
			return true
		}
	}
	return false
}

// Question is a single generated arithmetic problem. The answer is only
// revealed to clients after they submit.
type Question struct {
	Prompt string `json:"prompt"`
	Answer int    `json:"-"`
}
