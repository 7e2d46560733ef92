package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ClientActive   = "active"
	ClientInactive = "inactive"
)

type Client struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Name     string `json:"name" gorm:"size:255;not null"`
	RUC      string `json:"ruc" gorm:"size:11;uniqueIndex;not null"`
	Phone    string `json:"phone" gorm:"size:20;not null"`
	Email    string `json:"email" gorm:"size:100;not null"`
	Address  string `json:"address" gorm:"size:255"`
	Status   string `json:"status" gorm:"type:varchar(10);not null;default:active"`
	JoinDate time.Time `json:"join_date" gorm:"type:date;not null"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
