package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ContractActive  = "active"
	ContractPending = "pending"
	ContractAlert   = "alert"
)

// ContractedService is an active subscription of a client to a catalog service.
// BillingAlertSent must be reset whenever NextPayment moves to a new cycle.
type ContractedService struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	ClientID  uint    `json:"client_id" gorm:"not null;index"`
	Client    Client  `json:"client" gorm:"foreignKey:ClientID"`
	ServiceID uint    `json:"service_id" gorm:"not null;index"`
	Service   Service `json:"service" gorm:"foreignKey:ServiceID"`

	StartDate   time.Time `json:"start_date" gorm:"type:date;not null"`
	NextPayment time.Time `json:"next_payment" gorm:"type:date;not null"`
	Price       float64   `json:"price" gorm:"type:numeric(10,2);not null"`
	Status      string    `json:"status" gorm:"type:varchar(10);not null;default:active"`

	// Days of grace before an invoice is expected for the cycle.
	InvoiceDays int `json:"invoice_days" gorm:"not null;default:0"`

	BillingAlertSent bool `json:"billing_alert_sent" gorm:"not null;default:false"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
