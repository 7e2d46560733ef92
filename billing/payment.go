package billing

import (
	"errors"
	"fmt"
	"time"

	"cobranzas-backend/models"
	"cobranzas-backend/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Payment methods accepted by ApplyPayment.
const (
	MethodCash     = "cash"
	MethodYape     = "yape"
	MethodPlin     = "plin"
	MethodTransfer = "transfer"
	MethodCard     = "card"
	MethodOther    = "other"
)

var validMethods = map[string]bool{
	MethodCash:     true,
	MethodYape:     true,
	MethodPlin:     true,
	MethodTransfer: true,
	MethodCard:     true,
	MethodOther:    true,
}

// PaymentInput is a single payment submission against an invoice.
type PaymentInput struct {
	Date    time.Time `json:"date" validate:"required"`
	Amount  float64   `json:"amount" validate:"required,gt=0"`
	Method  string    `json:"method" validate:"required"`
	Voucher string    `json:"voucher"`
	Notes   string    `json:"notes"`
}

// ApplyPayment appends a payment to the invoice, recomputes the paid
// total and transitions the status to paid when the balance is covered.
// The whole update set (payment appended, total recomputed, status and
// alert flags) commits atomically; the invoice row is locked for the
// duration of the transaction so concurrent submissions serialize.
//
// Identical resubmissions are NOT deduplicated here; the Idempotency-Key
// middleware is the upstream guard.
func ApplyPayment(db *gorm.DB, notifier Notifier, invoiceID uint, in PaymentInput) (*models.Invoice, *models.Payment, error) {
	if in.Amount <= 0 {
		return nil, nil, &ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}
	if !validMethods[in.Method] {
		return nil, nil, &ValidationError{Field: "method", Reason: "must be one of: cash, yape, plin, transfer, card, other"}
	}
	if in.Date.IsZero() {
		return nil, nil, &ValidationError{Field: "date", Reason: "is required"}
	}
	in.Amount = utils.Round2(in.Amount)

	var invoice models.Invoice
	var payment models.Payment
	becamePaid := false

	err := db.Transaction(func(tx *gorm.DB) error {
		q := tx.Preload("Client")
		if tx.Dialector.Name() == "postgres" {
			// sqlite (tests) has no row locks
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := q.First(&invoice, invoiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "invoice", ID: invoiceID}
			}
			return err
		}

		pending := utils.Round2(invoice.Amount - invoice.PaidAmount)
		if in.Amount > pending {
			return &OverpaymentError{Amount: in.Amount, Pending: pending}
		}

		nextID := 1
		for _, p := range invoice.Payments {
			if p.ID >= nextID {
				nextID = p.ID + 1
			}
		}
		payment = models.Payment{
			ID:      nextID,
			Date:    in.Date,
			Amount:  in.Amount,
			Method:  in.Method,
			Voucher: in.Voucher,
			Notes:   in.Notes,
		}
		invoice.Payments = append(invoice.Payments, payment)

		// Recompute by summation, never by increment.
		var paid float64
		for _, p := range invoice.Payments {
			paid += p.Amount
		}
		invoice.PaidAmount = utils.Round2(paid)

		updates := map[string]any{
			"payments":    invoice.Payments,
			"paid_amount": invoice.PaidAmount,
		}
		if invoice.PaidAmount >= invoice.Amount && invoice.Status != models.InvoicePaid {
			becamePaid = true
			invoice.Status = models.InvoicePaid
			invoice.FirstAlertSent = false
			invoice.SecondAlertSent = false
			invoice.OverdueAlertSent = false
			updates["status"] = models.InvoicePaid
			updates["first_alert_sent"] = false
			updates["second_alert_sent"] = false
			updates["overdue_alert_sent"] = false
		}

		return tx.Model(&models.Invoice{}).Where("id = ?", invoice.ID).Updates(updates).Error
	})
	if err != nil {
		return nil, nil, err
	}

	if becamePaid {
		notifier.Emit(models.Notification{
			Title:          "Invoice fully paid",
			Message:        fmt.Sprintf("Invoice %s of client %s has been fully paid, total S/ %.2f", invoice.Number, invoice.Client.Name, invoice.Amount),
			Type:           models.SeveritySuccess,
			RelatedSection: "invoices",
			RelatedID:      &invoice.ID,
		})
	} else {
		notifier.Emit(models.Notification{
			Title:          "Partial payment received",
			Message:        fmt.Sprintf("Payment of S/ %.2f recorded for invoice %s of client %s. Pending balance: S/ %.2f", payment.Amount, invoice.Number, invoice.Client.Name, utils.Round2(invoice.Amount-invoice.PaidAmount)),
			Type:           models.SeverityInfo,
			RelatedSection: "invoices",
			RelatedID:      &invoice.ID,
		})
	}

	return &invoice, &payment, nil
}
