package main

import (
	"os"
	"strconv"
	"time"

	"cobranzas-backend/config"
	"cobranzas-backend/database"
	"cobranzas-backend/jobs"
	"cobranzas-backend/middlewares"
	"cobranzas-backend/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// envInt reads an int env var with a default fallback.
func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func main() {
	// ---- Database
	database.Connect()
	database.AutoMigrate()
	if err := database.Harden(); err != nil {
		panic(err)
	}

	// ---- Limits (configurable via env)
	bodyLimitBytes := envInt("BODY_LIMIT_BYTES", 0)
	if bodyLimitBytes <= 0 {
		bodyLimitBytes = envInt("BODY_LIMIT_MB", 4) * 1024 * 1024
	}

	// ---- Fiber app with global error handler + body limit
	app := fiber.New(fiber.Config{
		ErrorHandler: middlewares.ErrorHandler,
		BodyLimit:    bodyLimitBytes,
	})

	// ---- CORS
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowCredentials: false, // using Bearer tokens, not cookies
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Idempotency-Key",
	}))

	// ---- Global rate limiter (applies to all routes; tune via env)
	rlMax := envInt("RATE_LIMIT_MAX", 60)
	rlWindow := time.Duration(envInt("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second
	app.Use(limiter.New(limiter.Config{
		Max:        rlMax,
		Expiration: rlWindow,
	}))

	// ---- Routes
	routes.Register(app)

	// ---- Daily alert sweep
	schedule := os.Getenv("ALERT_CRON_SCHEDULE")
	if schedule == "" {
		schedule = "0 8 * * *"
	}
	runner := jobs.NewAlertRunner(schedule, os.Getenv("ALERT_RUN_ON_START") == "true")
	if err := runner.Start(); err != nil {
		panic(err)
	}
	defer runner.Stop()

	// ---- Start
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	config.GetLogger().Infof("API server listening on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		panic(err)
	}
}
