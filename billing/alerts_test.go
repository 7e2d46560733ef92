package billing

import (
	"testing"
	"time"

	"cobranzas-backend/models"
)

var testConfig = AlertConfig{FirstAlertDays: 10, SecondAlertDays: 5, EmailAlerts: true, SystemAlerts: true}

func TestDueDateSweepFirstTier(t *testing.T) {
	db := newTestDB(t)
	client := seedClient(t, db)
	service := seedService(t, db)
	today := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	invoice := seedInvoice(t, db, client.ID, service.ID, 400, today.AddDate(0, 0, 10))

	notifier := &captureNotifier{}
	res := GenerateDueDateAlerts(db, notifier, testConfig, today)
	if !res.Success {
		t.Fatalf("sweep failed: %s", res.Message)
	}
	if res.FirstAlerts != 1 || res.Generated != 1 {
		t.Errorf("first=%d generated=%d, want 1/1", res.FirstAlerts, res.Generated)
	}
	if len(notifier.emitted) != 1 || notifier.emitted[0].Type != models.SeverityInfo {
		t.Fatalf("expected one info notification, got %+v", notifier.emitted)
	}

	var stored models.Invoice
	db.First(&stored, invoice.ID)
	if !stored.FirstAlertSent {
		t.Error("first_alert_sent not set after sweep")
	}

	// Same day, second sweep: flag set, nothing fires.
	res = GenerateDueDateAlerts(db, notifier, testConfig, today)
	if res.Generated != 0 {
		t.Errorf("repeat sweep generated %d alerts, want 0", res.Generated)
	}
}

func TestDueDateSweepLateFirstRunStillFires(t *testing.T) {
	db := newTestDB(t)
	client := seedClient(t, db)
	service := seedService(t, db)
	today := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	// Due in 8 days: inside the first-tier window but past its exact day.
	seedInvoice(t, db, client.ID, service.ID, 400, today.AddDate(0, 0, 8))

	notifier := &captureNotifier{}
	res := GenerateDueDateAlerts(db, notifier, testConfig, today)
	if res.FirstAlerts != 1 {
		t.Errorf("first tier did not fire inside its window: %+v", res)
	}
}

func TestDueDateSweepSecondTierWins(t *testing.T) {
	db := newTestDB(t)
	client := seedClient(t, db)
	service := seedService(t, db)
	today := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	// Due in 3 days: both tiers' windows are open, only the more urgent
	// one fires this sweep.
	invoice := seedInvoice(t, db, client.ID, service.ID, 400, today.AddDate(0, 0, 3))

	notifier := &captureNotifier{}
	res := GenerateDueDateAlerts(db, notifier, testConfig, today)
	if res.SecondAlerts != 1 || res.FirstAlerts != 0 || res.Generated != 1 {
		t.Errorf("second=%d first=%d generated=%d, want 1/0/1", res.SecondAlerts, res.FirstAlerts, res.Generated)
	}
	if len(notifier.emitted) != 1 || notifier.emitted[0].Type != models.SeverityWarning {
		t.Fatalf("expected one warning notification, got %+v", notifier.emitted)
	}

	var stored models.Invoice
	db.First(&stored, invoice.ID)
	if !stored.SecondAlertSent {
		t.Error("second_alert_sent not set")
	}
	if stored.FirstAlertSent {
		t.Error("first_alert_sent must stay unset when the second tier fires")
	}
}

func TestDueDateSweepOverdue(t *testing.T) {
	db := newTestDB(t)
	client := seedClient(t, db)
	service := seedService(t, db)
	today := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	invoice := seedInvoice(t, db, client.ID, service.ID, 400, today.AddDate(0, 0, -2))

	notifier := &captureNotifier{}
	res := GenerateDueDateAlerts(db, notifier, testConfig, today)
	if res.Overdue != 1 || res.Generated != 1 {
		t.Errorf("overdue=%d generated=%d, want 1/1", res.Overdue, res.Generated)
	}
	if len(notifier.emitted) != 1 || notifier.emitted[0].Type != models.SeverityDanger {
		t.Fatalf("expected one danger notification, got %+v", notifier.emitted)
	}

	var stored models.Invoice
	db.First(&stored, invoice.ID)
	if !stored.OverdueAlertSent {
		t.Error("overdue_alert_sent not set")
	}

	res = GenerateDueDateAlerts(db, notifier, testConfig, today)
	if res.Generated != 0 {
		t.Errorf("repeat overdue sweep generated %d, want 0", res.Generated)
	}
}

func TestDueDateSweepSkipsNonPending(t *testing.T) {
	db := newTestDB(t)
	client := seedClient(t, db)
	service := seedService(t, db)
	today := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	invoice := seedInvoice(t, db, client.ID, service.ID, 400, today.AddDate(0, 0, 3))
	db.Model(invoice).Updates(map[string]any{"status": models.InvoicePaid, "paid_amount": 400})

	notifier := &captureNotifier{}
	res := GenerateDueDateAlerts(db, notifier, testConfig, today)
	if res.Generated != 0 || len(notifier.emitted) != 0 {
		t.Errorf("paid invoice produced alerts: %+v", res)
	}
}

func TestSweepDisabledSystemAlerts(t *testing.T) {
	db := newTestDB(t)
	client := seedClient(t, db)
	service := seedService(t, db)
	today := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	seedInvoice(t, db, client.ID, service.ID, 400, today.AddDate(0, 0, 3))
	seedContract(t, db, client.ID, service.ID, today.AddDate(0, 0, 3))

	disabled := testConfig
	disabled.SystemAlerts = false
	notifier := &captureNotifier{}

	res := GenerateAlerts(db, notifier, disabled, today)
	if !res.Success || res.Generated != 0 || len(notifier.emitted) != 0 {
		t.Errorf("disabled sweep still generated alerts: %+v", res)
	}
}

func TestAlertConfigValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     AlertConfig
		wantErr bool
	}{
		{"defaults", AlertConfig{FirstAlertDays: 10, SecondAlertDays: 5}, false},
		{"first too low", AlertConfig{FirstAlertDays: 0, SecondAlertDays: 5}, true},
		{"first too high", AlertConfig{FirstAlertDays: 31, SecondAlertDays: 5}, true},
		{"second not below first", AlertConfig{FirstAlertDays: 5, SecondAlertDays: 5}, true},
		{"second above first", AlertConfig{FirstAlertDays: 5, SecondAlertDays: 10}, true},
	}
	for _, tc := range cases {
		err := tc.cfg.Validate()
		if (err != nil) != tc.wantErr {
			t.Errorf("%s: err=%v wantErr=%v", tc.name, err, tc.wantErr)
		}
	}
}

func TestBillingSweep(t *testing.T) {
	db := newTestDB(t)
	client := seedClient(t, db)
	service := seedService(t, db)
	today := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	upcoming := seedContract(t, db, client.ID, service.ID, today.AddDate(0, 0, 7))
	urgent := seedContract(t, db, client.ID, service.ID, today.AddDate(0, 0, 2))
	// One due today (no alert) and one outside the window.
	seedContract(t, db, client.ID, service.ID, today)
	seedContract(t, db, client.ID, service.ID, today.AddDate(0, 0, 20))

	notifier := &captureNotifier{}
	res := GenerateBillingAlerts(db, notifier, testConfig, today)
	if !res.Success {
		t.Fatalf("sweep failed: %s", res.Message)
	}
	if res.Generated != 2 || res.FirstAlerts != 1 || res.SecondAlerts != 1 {
		t.Errorf("generated=%d first=%d second=%d, want 2/1/1", res.Generated, res.FirstAlerts, res.SecondAlerts)
	}

	var stored models.ContractedService
	db.First(&stored, upcoming.ID)
	if !stored.BillingAlertSent {
		t.Error("billing_alert_sent not set on 7-day contract")
	}
	db.First(&stored, urgent.ID)
	if !stored.BillingAlertSent {
		t.Error("billing_alert_sent not set on 2-day contract")
	}

	res = GenerateBillingAlerts(db, notifier, testConfig, today)
	if res.Generated != 0 {
		t.Errorf("repeat billing sweep generated %d, want 0", res.Generated)
	}
}

func TestBillingSweepSkipsInactive(t *testing.T) {
	db := newTestDB(t)
	client := seedClient(t, db)
	service := seedService(t, db)
	today := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	contract := seedContract(t, db, client.ID, service.ID, today.AddDate(0, 0, 4))
	db.Model(contract).Update("status", models.ContractPending)

	notifier := &captureNotifier{}
	res := GenerateBillingAlerts(db, notifier, testConfig, today)
	if res.Generated != 0 || len(notifier.emitted) != 0 {
		t.Errorf("non-active contract produced alerts: %+v", res)
	}
}

func TestLoadAlertConfigCreatesDefaults(t *testing.T) {
	db := newTestDB(t)

	cfg, err := LoadAlertConfig(db)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.FirstAlertDays != 10 || cfg.SecondAlertDays != 5 || !cfg.SystemAlerts {
		t.Errorf("defaults = %+v, want first=10 second=5 system=true", cfg)
	}

	var count int64
	db.Model(&models.AlertSetting{}).Count(&count)
	if count != 1 {
		t.Errorf("settings rows = %d, want 1", count)
	}
}
