package controllers

import (
	"errors"

	"cobranzas-backend/billing"
	"cobranzas-backend/middlewares"
	"cobranzas-backend/models"
	"cobranzas-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetAlertSettings returns the single settings row, creating it with
// defaults on first access.
func GetAlertSettings(c *fiber.Ctx) error {
	db := middlewares.RequestDB(c)

	var settings models.AlertSetting
	if err := db.First(&settings).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		settings = models.AlertSetting{FirstAlert: 10, SecondAlert: 5, EmailAlerts: true, SystemAlerts: true}
		if err := db.Create(&settings).Error; err != nil {
			return err
		}
	}
	return c.JSON(settings)
}

type AlertSettingInput struct {
	FirstAlert   *int  `json:"first_alert" validate:"omitempty,min=1,max=30"`
	SecondAlert  *int  `json:"second_alert" validate:"omitempty,min=1,max=30"`
	EmailAlerts  *bool `json:"email_alerts"`
	SystemAlerts *bool `json:"system_alerts"`
}

func UpdateAlertSettings(c *fiber.Ctx) error {
	var input AlertSettingInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	db := middlewares.RequestDB(c)
	var settings models.AlertSetting
	if err := db.First(&settings).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		settings = models.AlertSetting{FirstAlert: 10, SecondAlert: 5, EmailAlerts: true, SystemAlerts: true}
		if err := db.Create(&settings).Error; err != nil {
			return err
		}
	}

	first := settings.FirstAlert
	second := settings.SecondAlert
	if input.FirstAlert != nil {
		first = *input.FirstAlert
	}
	if input.SecondAlert != nil {
		second = *input.SecondAlert
	}
	cfg := billing.AlertConfig{FirstAlertDays: first, SecondAlertDays: second, EmailAlerts: true, SystemAlerts: true}
	if err := cfg.Validate(); err != nil {
		return err
	}

	updates := utils.UpdatesFromPtrDTO(&input, nil)
	if len(updates) > 0 {
		if err := db.Model(&settings).Updates(updates).Error; err != nil {
			return err
		}
	}

	db.First(&settings)
	return c.JSON(settings)
}
