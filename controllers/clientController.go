package controllers

import (
	"time"

	"cobranzas-backend/middlewares"
	"cobranzas-backend/models"
	"cobranzas-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type ClientInput struct {
	Name    string `json:"name" validate:"required,max=255"`
	RUC     string `json:"ruc" validate:"required,len=11,numeric"`
	Phone   string `json:"phone" validate:"required,max=20"`
	Email   string `json:"email" validate:"required,email"`
	Address string `json:"address" validate:"max=255"`
	Status  string `json:"status" validate:"omitempty,oneof=active inactive"`
}

func CreateClient(c *fiber.Ctx) error {
	var input ClientInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	utils.NormalizeDTO(&input)

	status := input.Status
	if status == "" {
		status = models.ClientActive
	}

	client := models.Client{
		Name:     input.Name,
		RUC:      input.RUC,
		Phone:    input.Phone,
		Email:    input.Email,
		Address:  input.Address,
		Status:   status,
		JoinDate: utils.DateOnly(time.Now()),
	}

	db := middlewares.RequestDB(c)
	if err := db.Create(&client).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create client")
	}
	return c.Status(fiber.StatusCreated).JSON(client)
}

func GetClients(c *fiber.Ctx) error {
	db := middlewares.RequestDB(c)

	q := db.Model(&models.Client{})
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var clients []models.Client
	if err := q.Order("name ASC").Find(&clients).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"clients": clients,
		"count":   len(clients),
	})
}

func GetClient(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid client id")
	}

	db := middlewares.RequestDB(c)
	var client models.Client
	if err := db.First(&client, id).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "client not found")
	}
	return c.JSON(client)
}

type ClientUpdateInput struct {
	Name    *string `json:"name" validate:"omitempty,max=255"`
	Phone   *string `json:"phone" validate:"omitempty,max=20"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Address *string `json:"address" validate:"omitempty,max=255"`
	Status  *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

func UpdateClient(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid client id")
	}

	var input ClientUpdateInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&input)

	db := middlewares.RequestDB(c)
	var client models.Client
	if err := db.First(&client, id).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "client not found")
	}

	updates := utils.UpdatesFromPtrDTO(&input, nil)
	if len(updates) > 0 {
		if err := db.Model(&client).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not update client")
		}
	}

	db.First(&client, id)
	return c.JSON(client)
}

// DeleteClient soft-deletes a client and everything it owns: its
// invoices and contracted services go with it.
func DeleteClient(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid client id")
	}

	db := middlewares.RequestDB(c)
	var client models.Client
	if err := db.First(&client, id).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "client not found")
	}

	if err := db.Where("client_id = ?", client.ID).Delete(&models.Invoice{}).Error; err != nil {
		return err
	}
	if err := db.Where("client_id = ?", client.ID).Delete(&models.ContractedService{}).Error; err != nil {
		return err
	}
	if err := db.Delete(&client).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "client deleted"})
}
