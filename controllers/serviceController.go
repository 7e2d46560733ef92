package controllers

import (
	"cobranzas-backend/middlewares"
	"cobranzas-backend/models"
	"cobranzas-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type ServiceInput struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description string  `json:"description"`
	Recurrence  string  `json:"recurrence" validate:"omitempty,oneof=monthly one_off"`
	BasePrice   float64 `json:"base_price" validate:"required,gt=0"`
}

func CreateService(c *fiber.Ctx) error {
	var input ServiceInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	utils.NormalizeDTO(&input)

	recurrence := input.Recurrence
	if recurrence == "" {
		recurrence = models.RecurrenceMonthly
	}

	service := models.Service{
		Name:        input.Name,
		Description: input.Description,
		Recurrence:  recurrence,
		BasePrice:   input.BasePrice,
	}

	db := middlewares.RequestDB(c)
	if err := db.Create(&service).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create service")
	}
	return c.Status(fiber.StatusCreated).JSON(service)
}

func GetServices(c *fiber.Ctx) error {
	db := middlewares.RequestDB(c)

	var services []models.Service
	if err := db.Order("name ASC").Find(&services).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"services": services,
		"count":    len(services),
	})
}

type ServiceUpdateInput struct {
	Name        *string  `json:"name" validate:"omitempty,max=255"`
	Description *string  `json:"description"`
	Recurrence  *string  `json:"recurrence" validate:"omitempty,oneof=monthly one_off"`
	BasePrice   *float64 `json:"base_price" validate:"omitempty,gt=0"`
}

func UpdateService(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid service id")
	}

	var input ServiceUpdateInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&input)

	db := middlewares.RequestDB(c)
	var service models.Service
	if err := db.First(&service, id).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "service not found")
	}

	updates := utils.UpdatesFromPtrDTO(&input, nil)
	if len(updates) > 0 {
		if err := db.Model(&service).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not update service")
		}
	}

	db.First(&service, id)
	return c.JSON(service)
}
