package controllers

import (
	"cobranzas-backend/billing"
	"cobranzas-backend/middlewares"
	"cobranzas-backend/models"

	"github.com/gofiber/fiber/v2"
)

func CreateContractedService(c *fiber.Ctx) error {
	var input billing.CreateContractInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	contract, err := billing.CreateContract(middlewares.RequestDB(c), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(contract)
}

func GetContractedServices(c *fiber.Ctx) error {
	db := middlewares.RequestDB(c)

	q := db.Model(&models.ContractedService{}).Preload("Client").Preload("Service")
	if clientID := c.QueryInt("client_id"); clientID > 0 {
		q = q.Where("client_id = ?", clientID)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var contracts []models.ContractedService
	if err := q.Order("next_payment ASC").Find(&contracts).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"contracted_services": contracts,
		"count":               len(contracts),
	})
}

func GetContractedService(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid contracted service id")
	}

	db := middlewares.RequestDB(c)
	var contract models.ContractedService
	if err := db.Preload("Client").Preload("Service").First(&contract, id).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "contracted service not found")
	}
	return c.JSON(contract)
}

func UpdateContractedService(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid contracted service id")
	}

	var input billing.UpdateContractInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	contract, err := billing.UpdateContract(middlewares.RequestDB(c), uint(id), input)
	if err != nil {
		return err
	}
	return c.JSON(contract)
}

func DeleteContractedService(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid contracted service id")
	}

	if err := billing.DeleteContract(middlewares.RequestDB(c), uint(id)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "contracted service deleted"})
}
