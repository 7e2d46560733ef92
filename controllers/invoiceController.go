package controllers

import (
	"cobranzas-backend/billing"
	"cobranzas-backend/middlewares"
	"cobranzas-backend/models"

	"github.com/gofiber/fiber/v2"
)

func CreateInvoice(c *fiber.Ctx) error {
	var input billing.CreateInvoiceInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	db := middlewares.RequestDB(c)
	invoice, err := billing.CreateInvoice(db, billing.NewDBNotifier(db), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(invoice)
}

func GetInvoices(c *fiber.Ctx) error {
	db := middlewares.RequestDB(c)

	q := db.Model(&models.Invoice{}).Preload("Client").Preload("Service")
	if clientID := c.QueryInt("client_id"); clientID > 0 {
		q = q.Where("client_id = ?", clientID)
	}
	if serviceID := c.QueryInt("service_id"); serviceID > 0 {
		q = q.Where("service_id = ?", serviceID)
	}
	if status := c.Query("status"); status != "" {
		switch status {
		case models.InvoicePending, models.InvoicePaid, models.InvoiceOverdue:
			q = q.Where("status = ?", status)
		default:
			return fiber.NewError(fiber.StatusBadRequest, "invalid status filter")
		}
	}

	dateField := "issue_date"
	if c.Query("date_type") == "due_date" {
		dateField = "due_date"
	}
	if from := c.Query("start_date"); from != "" {
		q = q.Where(dateField+" >= ?", from)
	}
	if to := c.Query("end_date"); to != "" {
		q = q.Where(dateField+" <= ?", to)
	}

	var invoices []models.Invoice
	if err := q.Order("due_date ASC").Find(&invoices).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"invoices": invoices,
		"count":    len(invoices),
	})
}

func GetInvoice(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid invoice id")
	}

	db := middlewares.RequestDB(c)
	var invoice models.Invoice
	if err := db.Preload("Client").Preload("Service").First(&invoice, id).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "invoice not found")
	}
	return c.JSON(invoice)
}

func UpdateInvoice(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid invoice id")
	}

	var input billing.UpdateInvoiceInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	db := middlewares.RequestDB(c)
	invoice, err := billing.UpdateInvoice(db, billing.NewDBNotifier(db), uint(id), input)
	if err != nil {
		return err
	}
	return c.JSON(invoice)
}

func DeleteInvoice(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid invoice id")
	}

	if err := billing.DeleteInvoice(middlewares.RequestDB(c), uint(id)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "invoice deleted"})
}

// CreatePayment applies one payment to an invoice. Duplicate submissions
// are guarded by the Idempotency-Key middleware, not here.
func CreatePayment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid invoice id")
	}

	var input billing.PaymentInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	db := middlewares.RequestDB(c)
	invoice, payment, err := billing.ApplyPayment(db, billing.NewDBNotifier(db), uint(id), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"invoice": invoice,
		"payment": payment,
	})
}

func ListPayments(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid invoice id")
	}

	db := middlewares.RequestDB(c)
	var invoice models.Invoice
	if err := db.First(&invoice, id).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "invoice not found")
	}
	return c.JSON(fiber.Map{
		"payments":    invoice.Payments,
		"paid_amount": invoice.PaidAmount,
		"pending":     invoice.PendingAmount(),
	})
}
