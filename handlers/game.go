// handlers/game.go - Timed game session endpoints
package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/superbmt/zap-zap-game/models"
	"github.com/superbmt/zap-zap-game/services"
)

type StartGameRequest struct {
	ProfileID  string            `json:"profile_id"`
	Difficulty models.Difficulty `json:"difficulty"`
	TimeLimit  int               `json:"time_limit"`
}

type SubmitAnswerRequest struct {
	Answer string `json:"answer"`
}

// StartGame creates a session and starts its countdown.
// POST /api/game/start
func StartGame(c *fiber.Ctx) error {
	var req StartGameRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	snapshot, err := sessionService.Start(req.ProfileID, req.Difficulty, req.TimeLimit)
	if errors.Is(err, services.ErrInvalidConfig) {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid difficulty or time limit"})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to start game"})
	}
	return c.Status(201).JSON(fiber.Map{"success": true, "session": snapshot})
}

// GetGame returns the live snapshot of a session.
// GET /api/game/:id
func GetGame(c *fiber.Ctx) error {
	snapshot, err := sessionService.Snapshot(c.Params("id"))
	if errors.Is(err, services.ErrSessionNotFound) {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Game session not found"})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch game session"})
	}
	return c.JSON(fiber.Map{"success": true, "session": snapshot})
}

// SubmitAnswer checks an answer against the current question. Empty input
// and finished sessions are reported as not accepted rather than errors, so
// a submit racing the countdown stays quiet.
// POST /api/game/:id/answer
func SubmitAnswer(c *fiber.Ctx) error {
	var req SubmitAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	outcome, err := sessionService.SubmitAnswer(c.Params("id"), req.Answer)
	if errors.Is(err, services.ErrSessionNotFound) {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Game session not found"})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to submit answer"})
	}
	return c.JSON(fiber.Map{
		"success":        true,
		"accepted":       outcome.Accepted,
		"correct":        outcome.Correct,
		"correct_answer": outcome.CorrectAnswer,
		"session":        outcome.Session,
	})
}

// FinishGame ends a session early; the result is recorded as if the
// countdown had run out.
// POST /api/game/:id/finish
func FinishGame(c *fiber.Ctx) error {
	snapshot, err := sessionService.Finish(c.Params("id"))
	if errors.Is(err, services.ErrSessionNotFound) {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Game session not found"})
	}
	if errors.Is(err, services.ErrSessionInactive) {
		return c.Status(409).JSON(fiber.Map{"success": false, "error": "Game session already over", "session": snapshot})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to finish game"})
	}
	return c.JSON(fiber.Map{"success": true, "session": snapshot})
}

// AbandonGame stops a session without recording anything.
// POST /api/game/:id/abandon
func AbandonGame(c *fiber.Ctx) error {
	err := sessionService.Abandon(c.Params("id"))
	if errors.Is(err, services.ErrSessionNotFound) {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Game session not found"})
	}
	if errors.Is(err, services.ErrSessionInactive) {
		return c.Status(409).JSON(fiber.Map{"success": false, "error": "Game session already over"})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to abandon game"})
	}
	return c.JSON(fiber.Map{"success": true})
}

// GameSocketUpgrade rejects non-websocket requests before the upgrade.
func GameSocketUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// GameSocket streams countdown ticks and the final result for one session.
// GET /ws/game/:id
var GameSocket = websocket.New(func(conn *websocket.Conn) {
	defer conn.Close()

	sessionID := conn.Params("id")
	events, cancel, err := sessionService.Subscribe(sessionID)
	if err != nil {
		_ = conn.WriteJSON(fiber.Map{"type": "error", "error": "Game session not found"})
		return
	}
	defer cancel()

	// Send the current state immediately so late subscribers catch up.
	if snapshot, err := sessionService.Snapshot(sessionID); err == nil {
		if err := conn.WriteJSON(services.SessionEvent{Type: "state", Session: snapshot}); err != nil {
			return
		}
		if snapshot.Status != services.SessionActive {
			return
		}
	}

	for ev := range events {
		if err := conn.WriteJSON(ev); err != nil {
			return
		}
		if ev.Type == "finished" || ev.Type == "abandoned" {
			return
		}
	}
})
