package billing

import (
	"testing"

	"cobranzas-backend/models"
)

func TestDBNotifierDefaults(t *testing.T) {
	db := newTestDB(t)
	notifier := NewDBNotifier(db)

	stored := notifier.Emit(models.Notification{
		Title:   "Invoice created",
		Message: "Invoice F001-00001 created",
	})
	if stored == nil {
		t.Fatal("emit returned nil on a healthy database")
	}
	if stored.Time.IsZero() {
		t.Error("timestamp not defaulted")
	}
	if stored.Type != models.SeverityInfo {
		t.Errorf("type = %q, want info default", stored.Type)
	}
	if stored.Read {
		t.Error("new notification must start unread")
	}

	var count int64
	db.Model(&models.Notification{}).Count(&count)
	if count != 1 {
		t.Errorf("notification rows = %d, want 1", count)
	}
}
