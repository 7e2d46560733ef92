package billing

import (
	"time"

	"cobranzas-backend/config"
	"cobranzas-backend/models"

	"gorm.io/gorm"
)

// Notifier is the write-only notification sink consumed by the payment
// engine and the alert sweeps. Emit never propagates failures to the
// caller: a lost notification must not fail a payment or a sweep.
type Notifier interface {
	Emit(n models.Notification) *models.Notification
}

// DBNotifier persists notifications as rows. Failures are logged and
// swallowed.
type DBNotifier struct {
	DB *gorm.DB
}

func NewDBNotifier(db *gorm.DB) *DBNotifier {
	return &DBNotifier{DB: db}
}

func (s *DBNotifier) Emit(n models.Notification) *models.Notification {
	if n.Time.IsZero() {
		n.Time = time.Now()
	}
	if n.Type == "" {
		n.Type = models.SeverityInfo
	}
	if err := s.DB.Create(&n).Error; err != nil {
		config.GetLogger().WithField("title", n.Title).Errorf("could not store notification: %v", err)
		return nil
	}
	return &n
}
