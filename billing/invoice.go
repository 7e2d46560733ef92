package billing

import (
	"errors"
	"fmt"
	"time"

	"cobranzas-backend/models"
	"cobranzas-backend/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var validInvoiceStatus = map[string]bool{
	models.InvoicePending: true,
	models.InvoicePaid:    true,
	models.InvoiceOverdue: true,
}

var validDocumentTypes = map[string]bool{
	models.DocumentFactura: true,
	models.DocumentBoleta:  true,
	models.DocumentRHE:     true,
}

type CreateInvoiceInput struct {
	Number       string         `json:"number" validate:"required,max=20"`
	ClientID     uint           `json:"client_id" validate:"required"`
	ServiceID    uint           `json:"service_id" validate:"required"`
	IssueDate    time.Time      `json:"issue_date" validate:"required"`
	DueDate      time.Time      `json:"due_date" validate:"required"`
	Amount       float64        `json:"amount" validate:"required,gt=0"`
	Status       string         `json:"status"`
	Document     datatypes.JSON `json:"document"`
	DocumentType string         `json:"document_type"`
}

// CreateInvoice issues a new invoice after validating references, number
// uniqueness and date ordering.
func CreateInvoice(db *gorm.DB, notifier Notifier, in CreateInvoiceInput) (*models.Invoice, error) {
	if in.Amount <= 0 {
		return nil, &ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}
	if in.Status != "" && !validInvoiceStatus[in.Status] {
		return nil, &ValidationError{Field: "status", Reason: "must be one of: pending, paid, overdue"}
	}
	if in.DocumentType != "" && !validDocumentTypes[in.DocumentType] {
		return nil, &ValidationError{Field: "document_type", Reason: "must be one of: factura, boleta, rhe"}
	}
	issue := utils.DateOnly(in.IssueDate)
	due := utils.DateOnly(in.DueDate)
	if issue.After(utils.DateOnly(time.Now())) {
		return nil, &ValidationError{Field: "issue_date", Reason: "cannot be in the future"}
	}
	if !due.After(issue) {
		return nil, &ValidationError{Field: "due_date", Reason: "must be after the issue date"}
	}

	var client models.Client
	if err := db.First(&client, in.ClientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "client", ID: in.ClientID}
		}
		return nil, err
	}
	if err := db.First(&models.Service{}, in.ServiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "service", ID: in.ServiceID}
		}
		return nil, err
	}

	var count int64
	if err := db.Model(&models.Invoice{}).Where("number = ?", in.Number).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, &ValidationError{Field: "number", Reason: fmt.Sprintf("invoice %s already exists", in.Number)}
	}

	status := in.Status
	if status == "" {
		status = models.InvoicePending
	}
	docType := in.DocumentType
	if docType == "" {
		docType = models.DocumentFactura
	}

	invoice := models.Invoice{
		Number:       in.Number,
		ClientID:     in.ClientID,
		ServiceID:    in.ServiceID,
		IssueDate:    issue,
		DueDate:      due,
		Amount:       utils.Round2(in.Amount),
		Status:       status,
		Document:     in.Document,
		DocumentType: docType,
		Payments:     datatypes.JSONSlice[models.Payment]{},
	}
	if err := db.Create(&invoice).Error; err != nil {
		return nil, err
	}

	notifier.Emit(models.Notification{
		Title:          "Invoice created",
		Message:        fmt.Sprintf("Invoice %s created for client %s", invoice.Number, client.Name),
		Type:           models.SeverityInfo,
		RelatedSection: "invoices",
		RelatedID:      &invoice.ID,
	})

	return &invoice, nil
}

type UpdateInvoiceInput struct {
	Number       *string         `json:"number" validate:"omitempty,max=20"`
	ClientID     *uint           `json:"client_id"`
	ServiceID    *uint           `json:"service_id"`
	IssueDate    *time.Time      `json:"issue_date"`
	DueDate      *time.Time      `json:"due_date"`
	Amount       *float64        `json:"amount" validate:"omitempty,gt=0"`
	Status       *string         `json:"status"`
	Document     *datatypes.JSON `json:"document"`
	DocumentType *string         `json:"document_type"`
}

// UpdateInvoice applies a manual edit. Changing the due date or the
// status always clears the three alert-sent flags, so the next sweep
// re-evaluates the new deadline. A manual pending -> paid edit emits a
// success notification.
func UpdateInvoice(db *gorm.DB, notifier Notifier, id uint, in UpdateInvoiceInput) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := db.Preload("Client").First(&invoice, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "invoice", ID: id}
		}
		return nil, err
	}

	if in.Amount != nil && *in.Amount <= 0 {
		return nil, &ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}
	if in.Status != nil && !validInvoiceStatus[*in.Status] {
		return nil, &ValidationError{Field: "status", Reason: "must be one of: pending, paid, overdue"}
	}
	if in.DocumentType != nil && !validDocumentTypes[*in.DocumentType] {
		return nil, &ValidationError{Field: "document_type", Reason: "must be one of: factura, boleta, rhe"}
	}

	if in.Number != nil && *in.Number != invoice.Number {
		var count int64
		if err := db.Model(&models.Invoice{}).Where("number = ? AND id <> ?", *in.Number, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, &ValidationError{Field: "number", Reason: fmt.Sprintf("invoice %s already exists", *in.Number)}
		}
	}
	if in.ClientID != nil && *in.ClientID != invoice.ClientID {
		if err := db.First(&models.Client{}, *in.ClientID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &NotFoundError{Entity: "client", ID: *in.ClientID}
			}
			return nil, err
		}
	}
	if in.ServiceID != nil && *in.ServiceID != invoice.ServiceID {
		if err := db.First(&models.Service{}, *in.ServiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &NotFoundError{Entity: "service", ID: *in.ServiceID}
			}
			return nil, err
		}
	}

	issue := utils.DateOnly(invoice.IssueDate)
	due := utils.DateOnly(invoice.DueDate)
	if in.IssueDate != nil {
		issue = utils.DateOnly(*in.IssueDate)
		if issue.After(utils.DateOnly(time.Now())) {
			return nil, &ValidationError{Field: "issue_date", Reason: "cannot be in the future"}
		}
	}
	if in.DueDate != nil {
		due = utils.DateOnly(*in.DueDate)
	}
	if (in.IssueDate != nil || in.DueDate != nil) && !due.After(issue) {
		return nil, &ValidationError{Field: "due_date", Reason: "must be after the issue date"}
	}

	dueDateChanged := in.DueDate != nil && !due.Equal(utils.DateOnly(invoice.DueDate))
	statusChanged := in.Status != nil && *in.Status != invoice.Status
	becamePaid := statusChanged && invoice.Status == models.InvoicePending && *in.Status == models.InvoicePaid

	utils.NormalizePtrDTO(&in)
	updates := utils.UpdatesFromPtrDTO(&in, nil)
	if in.IssueDate != nil {
		updates["issue_date"] = issue
	}
	if in.DueDate != nil {
		updates["due_date"] = due
	}
	// New deadline or new state => alerts must be re-evaluated.
	if dueDateChanged || statusChanged {
		updates["first_alert_sent"] = false
		updates["second_alert_sent"] = false
		updates["overdue_alert_sent"] = false
	}

	if err := db.Model(&models.Invoice{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}

	if becamePaid {
		notifier.Emit(models.Notification{
			Title:          "Invoice paid",
			Message:        fmt.Sprintf("Invoice %s of client %s was marked as paid, amount S/ %.2f", invoice.Number, invoice.Client.Name, invoice.Amount),
			Type:           models.SeveritySuccess,
			RelatedSection: "invoices",
			RelatedID:      &invoice.ID,
		})
	}

	var updated models.Invoice
	if err := db.Preload("Client").Preload("Service").First(&updated, id).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteInvoice soft-deletes an invoice. Refused once any payment has
// been recorded: paid history is a financial record.
func DeleteInvoice(db *gorm.DB, id uint) error {
	var invoice models.Invoice
	if err := db.First(&invoice, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Entity: "invoice", ID: id}
		}
		return err
	}
	if invoice.PaidAmount > 0 {
		return &InvalidStateError{Reason: "cannot delete an invoice with recorded payments"}
	}
	return db.Delete(&invoice).Error
}
