// handlers/parent.go - Parent PIN gate for destructive operations
package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/superbmt/zap-zap-game/middleware"
	"github.com/superbmt/zap-zap-game/models"
	"golang.org/x/crypto/bcrypt"
)

type SetPinRequest struct {
	Pin        string `json:"pin"`
	CurrentPin string `json:"current_pin"`
}

type VerifyPinRequest struct {
	Pin string `json:"pin"`
}

// SetParentPin stores the bcrypt hash of the parent PIN. Replacing an
// existing PIN requires the current one.
// POST /api/parent/pin
func SetParentPin(c *fiber.Ctx) error {
	var req SetPinRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if len(req.Pin) < 4 || len(req.Pin) > 8 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "PIN must be 4-8 characters"})
	}

	existing, err := settingsService.Get(models.SettingParentPinHash)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to read parent PIN"})
	}
	if existing != "" {
		if bcrypt.CompareHashAndPassword([]byte(existing), []byte(req.CurrentPin)) != nil {
			return c.Status(403).JSON(fiber.Map{"success": false, "error": "Current PIN is incorrect"})
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Pin), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to hash PIN"})
	}
	if err := settingsService.Set(models.SettingParentPinHash, string(hash)); err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to store PIN"})
	}
	return c.JSON(fiber.Map{"success": true})
}

// VerifyParentPin checks the PIN and issues a short-lived parent token.
// POST /api/parent/verify
func VerifyParentPin(c *fiber.Ctx) error {
	var req VerifyPinRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	hash, err := settingsService.Get(models.SettingParentPinHash)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to read parent PIN"})
	}
	if hash == "" {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "No parent PIN configured"})
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Pin)) != nil {
		return c.Status(403).JSON(fiber.Map{"success": false, "error": "Incorrect PIN"})
	}

	token, err := middleware.IssueParentToken()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to issue token"})
	}
	return c.JSON(fiber.Map{"success": true, "token": token})
}
