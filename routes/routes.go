package routes

import (
	"github.com/gofiber/fiber/v2"

	"cobranzas-backend/controllers"
	"cobranzas-backend/middlewares"
)

// Register wires all HTTP routes.
func Register(app *fiber.App) {
	api := app.Group("/api")

	// Public auth endpoints
	api.Post("/registration", controllers.Register)
	api.Post("/login", controllers.Login)
	api.Post("/logout", controllers.Logout)

	// Protected endpoints (JWT auth)
	protected := api.Group("")
	protected.Use(middlewares.IsAuthenticatedHeader())

	// Idempotency guard FIRST (not tied to request TX)
	protected.Use(middlewares.Idempotency())

	// Then per-request transaction (commits/rolls back around the handler)
	protected.Use(middlewares.RequestTx())

	// Clients
	protected.Post("/clients", controllers.CreateClient)
	protected.Get("/clients", controllers.GetClients)
	protected.Get("/clients/:id", controllers.GetClient)
	protected.Put("/clients/:id", controllers.UpdateClient)
	protected.Delete("/clients/:id", controllers.DeleteClient)

	// Service catalog
	protected.Post("/services", controllers.CreateService)
	protected.Get("/services", controllers.GetServices)
	protected.Put("/services/:id", controllers.UpdateService)

	// Contracted services
	protected.Post("/contracted-services", controllers.CreateContractedService)
	protected.Get("/contracted-services", controllers.GetContractedServices)
	protected.Get("/contracted-services/:id", controllers.GetContractedService)
	protected.Put("/contracted-services/:id", controllers.UpdateContractedService)
	protected.Delete("/contracted-services/:id", controllers.DeleteContractedService)

	// Invoices and payments
	protected.Post("/invoices", controllers.CreateInvoice)
	protected.Get("/invoices", controllers.GetInvoices)
	protected.Get("/invoices/:id", controllers.GetInvoice)
	protected.Put("/invoices/:id", controllers.UpdateInvoice)
	protected.Delete("/invoices/:id", controllers.DeleteInvoice)
	protected.Post("/invoices/:id/payments", controllers.CreatePayment)
	protected.Get("/invoices/:id/payments", controllers.ListPayments)

	// Collection tracking
	protected.Post("/collection-tracking", controllers.CreateTracking)
	protected.Get("/collection-tracking/history/:entityType/:entityId", controllers.GetTrackingHistory)
	protected.Get("/collection-tracking/pending", controllers.GetPendingTrackings)
	protected.Get("/collection-tracking/client/:clientId/summary", controllers.GetClientTrackingSummary)

	// Notifications
	protected.Post("/notifications", controllers.CreateNotification)
	protected.Get("/notifications", controllers.GetNotifications)
	protected.Get("/notifications/:id", controllers.GetNotification)
	protected.Put("/notifications/read-all", controllers.MarkAllNotificationsRead)
	protected.Put("/notifications/:id/read", controllers.MarkNotificationRead)
	protected.Delete("/notifications/:id", controllers.DeleteNotification)

	// Alerts
	protected.Post("/alerts/generate", controllers.GenerateAlerts)
	protected.Get("/alert-settings", controllers.GetAlertSettings)
	protected.Put("/alert-settings", controllers.UpdateAlertSettings)
}
