package controllers

import (
	"time"

	"cobranzas-backend/billing"
	"cobranzas-backend/database"

	"github.com/gofiber/fiber/v2"
)

// GenerateAlerts runs both alert sweeps on demand. This is the HTTP twin
// of the daily cron job.
func GenerateAlerts(c *fiber.Ctx) error {
	db := database.DB

	cfg, err := billing.LoadAlertConfig(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not load alert settings")
	}

	res := billing.GenerateAlerts(db, billing.NewDBNotifier(db), cfg, time.Now())
	if !res.Success {
		return c.Status(fiber.StatusInternalServerError).JSON(res)
	}
	return c.JSON(res)
}
