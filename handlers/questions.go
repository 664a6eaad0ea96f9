// handlers/questions.go - Standalone question generation
package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/superbmt/zap-zap-game/models"
	"github.com/superbmt/zap-zap-game/services"
)

// GenerateQuestion returns one random question for a difficulty. Unknown
// difficulties behave like easy, matching the generator contract. The
// answer is included here since no session is tracking it; practice-mode
// clients check answers locally.
// GET /api/questions/generate?difficulty=easy
func GenerateQuestion(c *fiber.Ctx) error {
	difficulty := models.Difficulty(c.Query("difficulty", string(models.DifficultyEasy)))

	question := services.GenerateQuestion(difficulty)
	return c.JSON(fiber.Map{
		"success": true,
		"prompt":  question.Prompt,
		"answer":  question.Answer,
	})
}
