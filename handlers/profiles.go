// handlers/profiles.go - Profile CRUD and game-result recording
package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/superbmt/zap-zap-game/models"
	"github.com/superbmt/zap-zap-game/services"
)

type CreateProfileRequest struct {
	Name     string `json:"name"`
	AvatarID int    `json:"avatar_id"`
}

type SetCurrentProfileRequest struct {
	ProfileID string `json:"profile_id"`
}

type RecordResultRequest struct {
	Score             int               `json:"score"`
	QuestionsAnswered int               `json:"questions_answered"`
	TimeLimit         int               `json:"time_limit"`
	Difficulty        models.Difficulty `json:"difficulty"`
	Streak            int               `json:"streak"`
}

// ListProfiles returns all profiles in creation order.
// GET /api/profiles
func ListProfiles(c *fiber.Ctx) error {
	profiles, err := profileService.List()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch profiles"})
	}
	return c.JSON(fiber.Map{"success": true, "profiles": profiles})
}

// CreateProfile creates a new zero-stat profile.
// POST /api/profiles
func CreateProfile(c *fiber.Ctx) error {
	var req CreateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	profile, err := profileService.Create(req.Name, req.AvatarID)
	if errors.Is(err, services.ErrInvalidName) {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to create profile"})
	}
	return c.Status(201).JSON(fiber.Map{"success": true, "profile": profile})
}

// GetCurrentProfile resolves the current-profile pointer. A missing or
// stale pointer yields a null profile, not an error.
// GET /api/profiles/current
func GetCurrentProfile(c *fiber.Ctx) error {
	profile, err := profileService.Current()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch current profile"})
	}
	return c.JSON(fiber.Map{"success": true, "profile": profile})
}

// SetCurrentProfile stores the current-profile pointer.
// PUT /api/profiles/current
func SetCurrentProfile(c *fiber.Ctx) error {
	var req SetCurrentProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if req.ProfileID == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "profile_id is required"})
	}

	if err := profileService.SetCurrent(req.ProfileID); err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to set current profile"})
	}
	return c.JSON(fiber.Map{"success": true})
}

// RecordGameResult applies a finished game to a profile. This endpoint
// exists for clients that run the countdown locally; server-run sessions
// record automatically on timeout.
// POST /api/profiles/:id/results
func RecordGameResult(c *fiber.Ctx) error {
	profileID := c.Params("id")

	var req RecordResultRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	result := models.GameResult{
		Score:             req.Score,
		QuestionsAnswered: req.QuestionsAnswered,
		TimeLimit:         req.TimeLimit,
		Difficulty:        req.Difficulty,
		Accuracy:          models.Accuracy(req.Score, req.QuestionsAnswered),
		Streak:            req.Streak,
	}

	profile, err := profileService.RecordResult(profileID, result)
	if errors.Is(err, services.ErrProfileNotFound) {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Profile not found"})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to record game result"})
	}
	return c.JSON(fiber.Map{"success": true, "profile": profile})
}

// DeleteProfile removes a profile, its score entries, and the current
// pointer if it referenced the profile. Guarded by the parent gate.
// DELETE /api/profiles/:id
func DeleteProfile(c *fiber.Ctx) error {
	profileID := c.Params("id")

	err := profileService.Delete(profileID)
	if errors.Is(err, services.ErrProfileNotFound) {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Profile not found"})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to delete profile"})
	}
	return c.JSON(fiber.Map{"success": true})
}
