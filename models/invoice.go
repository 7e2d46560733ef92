package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	InvoicePending = "pending"
	InvoicePaid    = "paid"
	InvoiceOverdue = "overdue"
)

const (
	DocumentFactura = "factura"
	DocumentBoleta  = "boleta"
	DocumentRHE     = "rhe"
)

// Invoice is a single billable document with a due date and payment history.
// The three alert flags record "already alerted for the current deadline";
// they reset whenever DueDate or Status changes.
type Invoice struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	Number    string  `json:"number" gorm:"size:20;uniqueIndex;not null"`
	ClientID  uint    `json:"client_id" gorm:"not null;index"`
	Client    Client  `json:"client" gorm:"foreignKey:ClientID"`
	ServiceID uint    `json:"service_id" gorm:"not null;index"`
	Service   Service `json:"service" gorm:"foreignKey:ServiceID"`

	IssueDate time.Time `json:"issue_date" gorm:"type:date;not null"`
	DueDate   time.Time `json:"due_date" gorm:"type:date;not null;index"`
	Amount    float64   `json:"amount" gorm:"type:numeric(10,2);not null"`
	Status    string    `json:"status" gorm:"type:varchar(10);not null;default:pending;index"`

	// Metadata of an uploaded voucher/document, if any.
	Document     datatypes.JSON `json:"document"`
	DocumentType string         `json:"document_type" gorm:"type:varchar(10);not null;default:factura"`

	// Payments rollup. PaidAmount is always the numeric sum of Payments.
	PaidAmount float64                      `json:"paid_amount" gorm:"type:numeric(10,2);not null;default:0"`
	Payments   datatypes.JSONSlice[Payment] `json:"payments"`

	FirstAlertSent   bool `json:"first_alert_sent" gorm:"not null;default:false"`
	SecondAlertSent  bool `json:"second_alert_sent" gorm:"not null;default:false"`
	OverdueAlertSent bool `json:"overdue_alert_sent" gorm:"not null;default:false"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// Payment is an entry in the invoice's JSONB payment history. IDs are
// sequential per invoice (max existing + 1).
type Payment struct {
	ID      int       `json:"id"`
	Date    time.Time `json:"date"`
	Amount  float64   `json:"amount"`
	Method  string    `json:"method"`
	Voucher string    `json:"voucher,omitempty"`
	Notes   string    `json:"notes"`
}

// PendingAmount is the remaining balance on the invoice.
func (i *Invoice) PendingAmount() float64 {
	return i.Amount - i.PaidAmount
}
