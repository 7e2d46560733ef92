package controllers

import (
	"time"

	"cobranzas-backend/billing"
	"cobranzas-backend/middlewares"

	"github.com/gofiber/fiber/v2"
)

type TrackingInput struct {
	EntityType string `json:"entity_type" validate:"required,oneof=invoice contracted_service"`
	EntityID   uint   `json:"entity_id" validate:"required"`
	ClientID   uint   `json:"client_id" validate:"required"`
	billing.ActionInput
}

func CreateTracking(c *fiber.Ctx) error {
	var input TrackingInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	userID, _ := c.Locals("userID").(string)
	ref := billing.EntityRef{Type: input.EntityType, ID: input.EntityID}

	tracking, err := billing.RecordAction(middlewares.RequestDB(c), ref, input.ClientID, userID, input.ActionInput)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(tracking)
}

func GetTrackingHistory(c *fiber.Ctx) error {
	entityID, err := c.ParamsInt("entityId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid entity id")
	}
	ref := billing.EntityRef{Type: c.Params("entityType"), ID: uint(entityID)}

	trackings, err := billing.History(middlewares.RequestDB(c), ref)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"trackings": trackings,
		"count":     len(trackings),
	})
}

func GetPendingTrackings(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)

	trackings, err := billing.PendingFollowUps(middlewares.RequestDB(c), userID, time.Now())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"trackings": trackings,
		"count":     len(trackings),
	})
}

func GetClientTrackingSummary(c *fiber.Ctx) error {
	clientID, err := c.ParamsInt("clientId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid client id")
	}

	trackings, summary, err := billing.ClientSummary(middlewares.RequestDB(c), uint(clientID))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"summary":          summary,
		"recent_trackings": trackings,
	})
}
