// handlers/avatars.go
package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/superbmt/zap-zap-game/models"
)

// GetAvatars returns the fixed avatar catalog.
// GET /api/avatars
func GetAvatars(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "avatars": models.AvatarOptions})
}
