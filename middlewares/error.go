package middlewares

import (
	"errors"

	"cobranzas-backend/billing"
	"cobranzas-backend/config"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ErrorHandler centralizes error responses and keeps messages sanitized.
func ErrorHandler(c *fiber.Ctx, err error) error {
	// 1) Fiber errors (use their status code + message)
	if fe, ok := err.(*fiber.Error); ok {
		return c.Status(fe.Code).JSON(fiber.Map{"message": fe.Message})
	}

	// 2) Validation errors (422 + per-field info)
	if ve, ok := err.(validator.ValidationErrors); ok {
		out := make(map[string]string, len(ve))
		for _, fe := range ve {
			out[fe.Field()] = fe.Tag()
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": "validation failed",
			"errors":  out,
		})
	}

	// 3) Billing domain errors
	var valErr *billing.ValidationError
	if errors.As(err, &valErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": valErr.Error()})
	}
	var nfErr *billing.NotFoundError
	if errors.As(err, &nfErr) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": nfErr.Error()})
	}
	var opErr *billing.OverpaymentError
	if errors.As(err, &opErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": opErr.Error()})
	}
	var stErr *billing.InvalidStateError
	if errors.As(err, &stErr) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": stErr.Error()})
	}

	// 4) Unknown errors (500)
	config.GetLogger().Errorf("internal error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "internal server error",
	})
}
