// handlers/handlers.go - Shared handler wiring
package handlers

import (
	"github.com/superbmt/zap-zap-game/services"
)

var (
	profileService     *services.ProfileService
	scoreService       *services.ScoreService
	sessionService     *services.SessionService
	leaderboardService *services.LeaderboardService
	settingsService    *services.SettingsService
)

// Init wires the handler package to its services. Must be called before any
// route is registered.
func Init(
	profiles *services.ProfileService,
	scores *services.ScoreService,
	sessions *services.SessionService,
	leaderboard *services.LeaderboardService,
	settings *services.SettingsService,
) {
	profileService = profiles
	scoreService = scores
	sessionService = sessions
	leaderboardService = leaderboard
	settingsService = settings
}
