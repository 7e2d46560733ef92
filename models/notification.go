package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
	SeverityDanger  = "danger"
	SeveritySuccess = "success"
)

// Notification is a human-readable system alert shown in the UI inbox.
type Notification struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Title          string    `json:"title" gorm:"size:100;not null"`
	Message        string    `json:"message" gorm:"not null"`
	Time           time.Time `json:"time" gorm:"not null"`
	Type           string    `json:"type" gorm:"type:varchar(10);not null;default:info"`
	Read           bool      `json:"read" gorm:"not null;default:false"`
	RelatedSection string    `json:"related_section" gorm:"size:50"`
	RelatedID      *uint     `json:"related_id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
