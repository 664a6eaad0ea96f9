// main.go - Zap Zap arithmetic quiz backend
package main

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/superbmt/zap-zap-game/database"
	"github.com/superbmt/zap-zap-game/handlers"
	"github.com/superbmt/zap-zap-game/middleware"
	"github.com/superbmt/zap-zap-game/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	validateEnvironment()

	// Initialize database
	database.InitDB()
	defer database.CloseDB()

	// Wire services
	db := database.GetDB()
	settingsService := services.NewSettingsService(db)
	scoreService := services.NewScoreService(db)
	profileService := services.NewProfileService(db, scoreService, settingsService)
	sessionService := services.NewSessionService(profileService)
	leaderboardService := services.NewLeaderboardService(profileService, scoreService)

	handlers.Init(profileService, scoreService, sessionService, leaderboardService, settingsService)

	// Sweep finished sessions in the background
	services.InitCleanupService(sessionService)
	services.GetCleanupService().Start()
	defer services.GetCleanupService().Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    1 * 1024 * 1024, // 1MB
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))

	// CORS configuration
	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	// Apply rate limiting to all routes
	app.Use(middleware.RateLimitMiddleware())

	// API Routes
	api := app.Group("/api")

	// Avatar catalog and standalone question generation
	api.Get("/avatars", handlers.GetAvatars)
	api.Get("/questions/generate", handlers.GenerateQuestion)

	// Profile routes
	api.Get("/profiles", handlers.ListProfiles)
	api.Post("/profiles", handlers.CreateProfile)
	api.Get("/profiles/current", handlers.GetCurrentProfile)
	api.Put("/profiles/current", handlers.SetCurrentProfile)
	api.Post("/profiles/:id/results", handlers.RecordGameResult)
	api.Delete("/profiles/:id", middleware.ParentAuthMiddleware, handlers.DeleteProfile)

	// Game session routes
	api.Post("/game/start", handlers.StartGame)
	api.Get("/game/:id", handlers.GetGame)
	api.Post("/game/:id/answer", handlers.SubmitAnswer)
	api.Post("/game/:id/finish", handlers.FinishGame)
	api.Post("/game/:id/abandon", handlers.AbandonGame)

	// Live session stream
	app.Use("/ws/game/:id", handlers.GameSocketUpgrade)
	app.Get("/ws/game/:id", handlers.GameSocket)

	// Leaderboard routes
	api.Get("/leaderboard", handlers.GetLeaderboard)
	api.Get("/leaderboard/difficulty", handlers.GetDifficultyLeaderboard)
	api.Get("/scores", handlers.GetScores)

	// Parent gate with stricter rate limiting
	parentGroup := api.Group("/parent")
	parentGroup.Use(middleware.PinRateLimitMiddleware())
	parentGroup.Post("/pin", handlers.SetParentPin)
	parentGroup.Post("/verify", handlers.VerifyParentPin)

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"version":   "1.0.0",
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	log.Printf("🚀 HTTP server starting on port %s", port)
	log.Printf("📊 Environment: %s", getEnv("APP_ENV", "development"))
	log.Printf("⚡ Quiz endpoint available at /api/questions/generate")

	if err := app.Listen(":" + port); err != nil {
		log.Fatal("Failed to start HTTP server:", err)
	}
}

// validateEnvironment checks for required environment variables
func validateEnvironment() {
	if os.Getenv("APP_ENV") == "production" {
		jwtSecret := os.Getenv("JWT_SECRET")
		if jwtSecret == "" {
			log.Fatal("FATAL: JWT_SECRET environment variable must be set. Generate one with: openssl rand -base64 64")
		}
		if len(jwtSecret) < 32 {
			log.Fatal("FATAL: JWT_SECRET must be at least 32 characters long")
		}

		corsOrigins := os.Getenv("CORS_ORIGINS")
		if corsOrigins == "" || corsOrigins == "http://localhost:3000" {
			log.Println("WARNING: CORS_ORIGINS not properly configured for production")
		}
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Don't expose internal errors in production
	if os.Getenv("APP_ENV") == "production" && code == 500 {
		message = "An error occurred. Please try again later."
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
