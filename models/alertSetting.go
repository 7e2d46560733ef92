package models

import (
	"time"

	"gorm.io/gorm"
)

// AlertSetting is the single-row configuration for the alert sweeps.
// FirstAlert/SecondAlert are day thresholds before the due date
// (1-30, second strictly less than first).
type AlertSetting struct {
	ID          uint `json:"id" gorm:"primaryKey"`
	FirstAlert  int  `json:"first_alert" gorm:"not null;default:10"`
	SecondAlert int  `json:"second_alert" gorm:"not null;default:5"`
	EmailAlerts bool `json:"email_alerts" gorm:"not null;default:true"`
	SystemAlerts bool `json:"system_alerts" gorm:"not null;default:true"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
