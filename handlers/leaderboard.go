// handlers/leaderboard.go - Ranked standings per category
package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/superbmt/zap-zap-game/services"
)

// GetLeaderboard returns the nested leaderboards, one ranked list per
// (difficulty, time limit) cell.
// GET /api/leaderboard?limit=10
func GetLeaderboard(c *fiber.Ctx) error {
	limit := parseLimit(c.Query("limit"))

	boards, err := leaderboardService.Rankings(limit)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch leaderboard"})
	}
	return c.JSON(fiber.Map{"success": true, "leaderboards": boards, "limit": limit})
}

// GetDifficultyLeaderboard returns the single-dimension variant that
// combines all time limits per difficulty.
// GET /api/leaderboard/difficulty?limit=10
func GetDifficultyLeaderboard(c *fiber.Ctx) error {
	limit := parseLimit(c.Query("limit"))

	boards, err := leaderboardService.RankingsByDifficulty(limit)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch leaderboard"})
	}
	return c.JSON(fiber.Map{"success": true, "leaderboards": boards, "limit": limit})
}

// GetScores returns the retained score log, most recent first.
// GET /api/scores
func GetScores(c *fiber.Ctx) error {
	entries, err := scoreService.All()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch scores"})
	}
	return c.JSON(fiber.Map{"success": true, "scores": entries})
}

func parseLimit(raw string) int {
	if raw == "" {
		return services.DefaultLeaderboardLimit
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return services.DefaultLeaderboardLimit
	}
	if limit > 100 {
		return 100
	}
	return limit
}
