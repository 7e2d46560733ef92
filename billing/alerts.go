package billing

import (
	"errors"
	"fmt"
	"time"

	"cobranzas-backend/config"
	"cobranzas-backend/models"
	"cobranzas-backend/utils"

	"gorm.io/gorm"
)

// AlertConfig is the sweep configuration, passed explicitly so the core
// stays testable without a settings fixture. It mirrors the single-row
// alert_settings table.
type AlertConfig struct {
	FirstAlertDays  int
	SecondAlertDays int
	EmailAlerts     bool
	SystemAlerts    bool
}

func (c AlertConfig) Validate() error {
	if c.FirstAlertDays < 1 || c.FirstAlertDays > 30 {
		return &ValidationError{Field: "first_alert", Reason: "must be between 1 and 30"}
	}
	if c.SecondAlertDays < 1 || c.SecondAlertDays > 30 {
		return &ValidationError{Field: "second_alert", Reason: "must be between 1 and 30"}
	}
	if c.SecondAlertDays >= c.FirstAlertDays {
		return &ValidationError{Field: "second_alert", Reason: "must be less than first_alert"}
	}
	return nil
}

// LoadAlertConfig reads the settings row, creating it with defaults on
// first use.
func LoadAlertConfig(db *gorm.DB) (AlertConfig, error) {
	var s models.AlertSetting
	if err := db.First(&s).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return AlertConfig{}, err
		}
		s = models.AlertSetting{FirstAlert: 10, SecondAlert: 5, EmailAlerts: true, SystemAlerts: true}
		if err := db.Create(&s).Error; err != nil {
			return AlertConfig{}, err
		}
	}
	return AlertConfig{
		FirstAlertDays:  s.FirstAlert,
		SecondAlertDays: s.SecondAlert,
		EmailAlerts:     s.EmailAlerts,
		SystemAlerts:    s.SystemAlerts,
	}, nil
}

// SweepResult reports one sweep run. Per-record failures are swallowed,
// so Success is false only when the candidate query itself fails.
type SweepResult struct {
	Success      bool   `json:"success"`
	Generated    int    `json:"generated"`
	FirstAlerts  int    `json:"first_alerts"`
	SecondAlerts int    `json:"second_alerts"`
	Overdue      int    `json:"overdue"`
	Message      string `json:"message"`
}

func (r *SweepResult) add(other SweepResult) {
	r.Generated += other.Generated
	r.FirstAlerts += other.FirstAlerts
	r.SecondAlerts += other.SecondAlerts
	r.Overdue += other.Overdue
	r.Success = r.Success && other.Success
}

// GenerateDueDateAlerts sweeps pending invoices and emits at most one
// notification per invoice per run: overdue (danger) once the due date
// has passed, otherwise the most urgent unfired tier whose day threshold
// has been reached. A tier fires on the first sweep at or past its
// threshold with the flag unset, so a sweep missed on the exact day does
// not permanently lose the alert. Each record's flag flip commits
// independently; a failure mid-sweep leaves earlier records done.
func GenerateDueDateAlerts(db *gorm.DB, notifier Notifier, cfg AlertConfig, today time.Time) SweepResult {
	log := config.GetLogger()

	if !cfg.SystemAlerts {
		return SweepResult{Success: true, Message: "system alerts disabled"}
	}
	if err := cfg.Validate(); err != nil {
		return SweepResult{Message: err.Error()}
	}

	var invoices []models.Invoice
	if err := db.Preload("Client").
		Where("status = ?", models.InvoicePending).
		Find(&invoices).Error; err != nil {
		log.Errorf("due date sweep: candidate query failed: %v", err)
		return SweepResult{Message: "could not load pending invoices"}
	}

	res := SweepResult{Success: true}
	for i := range invoices {
		inv := &invoices[i]
		daysDiff := utils.DaysUntil(today, inv.DueDate)

		var err error
		switch {
		case daysDiff < 0 && !inv.OverdueAlertSent:
			notifier.Emit(models.Notification{
				Title:          "Invoice overdue",
				Message:        fmt.Sprintf("Invoice %s of client %s for S/ %.2f is overdue. Immediate attention required.", inv.Number, inv.Client.Name, inv.Amount),
				Type:           models.SeverityDanger,
				RelatedSection: "invoices",
				RelatedID:      &inv.ID,
			})
			err = db.Model(inv).Update("overdue_alert_sent", true).Error
			if err == nil {
				res.Overdue++
			}
		case daysDiff >= 0 && daysDiff <= cfg.SecondAlertDays && !inv.SecondAlertSent:
			notifier.Emit(models.Notification{
				Title:          "Invoice due soon",
				Message:        fmt.Sprintf("Invoice %s of client %s is due in %d day(s)", inv.Number, inv.Client.Name, daysDiff),
				Type:           models.SeverityWarning,
				RelatedSection: "invoices",
				RelatedID:      &inv.ID,
			})
			err = db.Model(inv).Update("second_alert_sent", true).Error
			if err == nil {
				res.SecondAlerts++
			}
		case daysDiff >= 0 && daysDiff <= cfg.FirstAlertDays && !inv.FirstAlertSent:
			notifier.Emit(models.Notification{
				Title:          "Invoice due soon",
				Message:        fmt.Sprintf("Invoice %s of client %s is due in %d day(s)", inv.Number, inv.Client.Name, daysDiff),
				Type:           models.SeverityInfo,
				RelatedSection: "invoices",
				RelatedID:      &inv.ID,
			})
			err = db.Model(inv).Update("first_alert_sent", true).Error
			if err == nil {
				res.FirstAlerts++
			}
		}
		if err != nil {
			recErr := &SchedulerRecordError{Entity: "invoice", ID: inv.ID, Err: err}
			log.Warn(recErr.Error())
		}
	}
	res.Generated = res.FirstAlerts + res.SecondAlerts + res.Overdue
	res.Message = fmt.Sprintf("%d invoice alert(s) generated", res.Generated)
	return res
}

// GenerateBillingAlerts sweeps active contracted services whose next
// payment date is coming up. There is no overdue tier here: a lapsed
// renewal is handled by a manual status change, not by the sweep. The
// single BillingAlertSent flag resets whenever the next payment date
// moves, so each cycle alerts at most once.
func GenerateBillingAlerts(db *gorm.DB, notifier Notifier, cfg AlertConfig, today time.Time) SweepResult {
	log := config.GetLogger()

	if !cfg.SystemAlerts {
		return SweepResult{Success: true, Message: "system alerts disabled"}
	}
	if err := cfg.Validate(); err != nil {
		return SweepResult{Message: err.Error()}
	}

	var contracts []models.ContractedService
	if err := db.Preload("Client").Preload("Service").
		Where("status = ? AND billing_alert_sent = ?", models.ContractActive, false).
		Find(&contracts).Error; err != nil {
		log.Errorf("billing sweep: candidate query failed: %v", err)
		return SweepResult{Message: "could not load contracted services"}
	}

	res := SweepResult{Success: true}
	for i := range contracts {
		cs := &contracts[i]
		daysDiff := utils.DaysUntil(today, cs.NextPayment)
		if daysDiff <= 0 || daysDiff > cfg.FirstAlertDays {
			continue
		}

		severity := models.SeverityInfo
		if daysDiff <= cfg.SecondAlertDays {
			severity = models.SeverityWarning
		}
		notifier.Emit(models.Notification{
			Title:          "Upcoming billing",
			Message:        fmt.Sprintf("Next billing for service %q of client %s in %d day(s)", cs.Service.Name, cs.Client.Name, daysDiff),
			Type:           severity,
			RelatedSection: "contracted_services",
			RelatedID:      &cs.ID,
		})
		if err := db.Model(cs).Update("billing_alert_sent", true).Error; err != nil {
			recErr := &SchedulerRecordError{Entity: "contracted_service", ID: cs.ID, Err: err}
			log.Warn(recErr.Error())
			continue
		}
		if severity == models.SeverityWarning {
			res.SecondAlerts++
		} else {
			res.FirstAlerts++
		}
	}
	res.Generated = res.FirstAlerts + res.SecondAlerts
	res.Message = fmt.Sprintf("%d billing alert(s) generated", res.Generated)
	return res
}

// GenerateAlerts runs both sweeps and aggregates their counters. The two
// sweeps touch disjoint entity sets and are independent.
func GenerateAlerts(db *gorm.DB, notifier Notifier, cfg AlertConfig, today time.Time) SweepResult {
	res := GenerateDueDateAlerts(db, notifier, cfg, today)
	res.add(GenerateBillingAlerts(db, notifier, cfg, today))
	res.Message = fmt.Sprintf("%d alert(s) generated", res.Generated)
	return res
}
