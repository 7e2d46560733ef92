package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RecurrenceMonthly = "monthly"
	RecurrenceOneOff  = "one_off"
)

// Service is a catalog template. It is referenced by contracted services
// and invoices but owned by neither.
type Service struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"size:255;not null"`
	Description string  `json:"description"`
	Recurrence  string  `json:"recurrence" gorm:"type:varchar(10);not null;default:monthly"`
	BasePrice   float64 `json:"base_price" gorm:"type:numeric(10,2);not null"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
