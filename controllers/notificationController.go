package controllers

import (
	"cobranzas-backend/billing"
	"cobranzas-backend/middlewares"
	"cobranzas-backend/models"
	"cobranzas-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type NotificationInput struct {
	Title          string `json:"title" validate:"required,max=100"`
	Message        string `json:"message" validate:"required"`
	Type           string `json:"type" validate:"omitempty,oneof=info warning danger success"`
	RelatedSection string `json:"related_section" validate:"max=50"`
	RelatedID      *uint  `json:"related_id"`
}

// CreateNotification inserts a manual notification, e.g. an operator
// announcement. System notifications come from the billing sink instead.
func CreateNotification(c *fiber.Ctx) error {
	var input NotificationInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	db := middlewares.RequestDB(c)
	stored := billing.NewDBNotifier(db).Emit(models.Notification{
		Title:          input.Title,
		Message:        input.Message,
		Type:           input.Type,
		RelatedSection: input.RelatedSection,
		RelatedID:      input.RelatedID,
	})
	if stored == nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not create notification")
	}
	return c.Status(fiber.StatusCreated).JSON(stored)
}

func GetNotifications(c *fiber.Ctx) error {
	db := middlewares.RequestDB(c)

	q := db.Model(&models.Notification{})
	if read := c.Query("read"); read != "" {
		q = q.Where("read = ?", read == "true")
	}
	if typ := c.Query("type"); typ != "" {
		q = q.Where("type = ?", typ)
	}
	limit := utils.ParseIntDefault(c.Query("limit"), 50)

	var notifications []models.Notification
	if err := q.Order("time DESC").Limit(limit).Find(&notifications).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"notifications": notifications,
		"count":         len(notifications),
	})
}

func GetNotification(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid notification id")
	}

	db := middlewares.RequestDB(c)
	var notification models.Notification
	if err := db.First(&notification, id).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "notification not found")
	}
	return c.JSON(notification)
}

func MarkNotificationRead(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid notification id")
	}

	db := middlewares.RequestDB(c)
	var notification models.Notification
	if err := db.First(&notification, id).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "notification not found")
	}
	if notification.Read {
		return c.JSON(notification)
	}
	if err := db.Model(&notification).Update("read", true).Error; err != nil {
		return err
	}
	return c.JSON(notification)
}

func MarkAllNotificationsRead(c *fiber.Ctx) error {
	db := middlewares.RequestDB(c)

	res := db.Model(&models.Notification{}).Where("read = ?", false).Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	return c.JSON(fiber.Map{
		"count":   res.RowsAffected,
		"message": "notifications marked as read",
	})
}

func DeleteNotification(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid notification id")
	}

	db := middlewares.RequestDB(c)
	var notification models.Notification
	if err := db.First(&notification, id).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "notification not found")
	}
	if err := db.Delete(&notification).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "notification deleted"})
}
