package billing

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"cobranzas-backend/models"
)

func TestRecordActionAgainstInvoice(t *testing.T) {
	db := newTestDB(t)
	client := seedClient(t, db)
	service := seedService(t, db)
	invoice := seedInvoice(t, db, client.ID, service.ID, 500, time.Now().AddDate(0, 0, 5))

	promise := 500.009
	promiseDate := time.Now().AddDate(0, 0, 7)
	tracking, err := RecordAction(db, EntityRef{Type: models.EntityInvoice, ID: invoice.ID}, client.ID, "user-1", ActionInput{
		ActionType:        models.ActionCall,
		ActionDescription: "Called about invoice, client promised payment",
		ContactMade:       true,
		Status:            models.TrackingPaymentPromise,
		PromiseDate:       &promiseDate,
		PromiseAmount:     &promise,
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if tracking.Status != models.TrackingPaymentPromise {
		t.Errorf("status = %q, want payment_promise", tracking.Status)
	}
	if *tracking.PromiseAmount != 500.01 {
		t.Errorf("promise amount = %v, want rounded 500.01", *tracking.PromiseAmount)
	}
	if tracking.ActionDate.IsZero() {
		t.Error("action date not stamped")
	}

	// Logging never mutates the referenced invoice.
	var stored models.Invoice
	db.First(&stored, invoice.ID)
	if stored.Status != models.InvoicePending || stored.PaidAmount != 0 {
		t.Errorf("tracking mutated the invoice: %+v", stored)
	}
}

func TestRecordActionDefaultsStatusToPending(t *testing.T) {
	db := newTestDB(t)
	client := seedClient(t, db)
	service := seedService(t, db)
	contract := seedContract(t, db, client.ID, service.ID, time.Now().AddDate(0, 0, 10))

	tracking, err := RecordAction(db, EntityRef{Type: models.EntityContractedService, ID: contract.ID}, client.ID, "user-1", ActionInput{
		ActionType:        models.ActionEmail,
		ActionDescription: "Sent renewal reminder",
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if tracking.Status != models.TrackingPending {
		t.Errorf("status = %q, want pending default", tracking.Status)
	}
}

func TestRecordActionEntityNotFound(t *testing.T) {
	db := newTestDB(t)
	client := seedClient(t, db)

	_, err := RecordAction(db, EntityRef{Type: models.EntityInvoice, ID: 999999}, client.ID, "user-1", ActionInput{
		ActionType:        models.ActionCall,
		ActionDescription: "Call attempt",
	})
	var nfErr *NotFoundError
	if !errors.As(err, &nfErr) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}

	// Failed resolution writes nothing.
	var count int64
	db.Model(&models.CollectionTracking{}).Count(&count)
	if count != 0 {
		t.Errorf("tracking rows = %d, want 0", count)
	}
}

func TestRecordActionValidation(t *testing.T) {
	db := newTestDB(t)
	client := seedClient(t, db)
	service := seedService(t, db)
	invoice := seedInvoice(t, db, client.ID, service.ID, 500, time.Now().AddDate(0, 0, 5))
	ref := EntityRef{Type: models.EntityInvoice, ID: invoice.ID}

	cases := []struct {
		name  string
		ref   EntityRef
		input ActionInput
	}{
		{"bad action type", ref, ActionInput{ActionType: "fax", ActionDescription: "x"}},
		{"bad status", ref, ActionInput{ActionType: models.ActionCall, ActionDescription: "x", Status: "resolved"}},
		{"missing description", ref, ActionInput{ActionType: models.ActionCall}},
		{"bad entity type", EntityRef{Type: "client", ID: client.ID}, ActionInput{ActionType: models.ActionCall, ActionDescription: "x"}},
	}
	for _, tc := range cases {
		_, err := RecordAction(db, tc.ref, client.ID, "user-1", tc.input)
		var valErr *ValidationError
		if !errors.As(err, &valErr) {
			t.Errorf("%s: expected ValidationError, got %v", tc.name, err)
		}
	}
}

func TestHistoryOrdersMostRecentFirst(t *testing.T) {
	db := newTestDB(t)
	client := seedClient(t, db)
	service := seedService(t, db)
	invoice := seedInvoice(t, db, client.ID, service.ID, 500, time.Now().AddDate(0, 0, 5))
	ref := EntityRef{Type: models.EntityInvoice, ID: invoice.ID}

	base := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		tracking := models.CollectionTracking{
			EntityType:        ref.Type,
			EntityID:          ref.ID,
			ClientID:          client.ID,
			UserID:            "user-1",
			ActionDate:        base.AddDate(0, 0, i),
			ActionType:        models.ActionCall,
			ActionDescription: fmt.Sprintf("attempt %d", i+1),
			Status:            models.TrackingPending,
		}
		if err := db.Create(&tracking).Error; err != nil {
			t.Fatalf("seed tracking: %v", err)
		}
	}

	history, err := History(db, ref)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("history length = %d, want 3", len(history))
	}
	for i := 1; i < len(history); i++ {
		if history[i].ActionDate.After(history[i-1].ActionDate) {
			t.Errorf("history not in descending action_date order at %d", i)
		}
	}
}

func TestPendingFollowUps(t *testing.T) {
	db := newTestDB(t)
	client := seedClient(t, db)
	service := seedService(t, db)
	invoice := seedInvoice(t, db, client.ID, service.ID, 500, time.Now().AddDate(0, 0, 5))

	asOf := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	mk := func(userID string, next *time.Time, status string) {
		tracking := models.CollectionTracking{
			EntityType:        models.EntityInvoice,
			EntityID:          invoice.ID,
			ClientID:          client.ID,
			UserID:            userID,
			ActionDate:        asOf.AddDate(0, 0, -10),
			ActionType:        models.ActionCall,
			ActionDescription: "follow up",
			NextActionDate:    next,
			Status:            status,
		}
		if err := db.Create(&tracking).Error; err != nil {
			t.Fatalf("seed tracking: %v", err)
		}
	}

	due1 := asOf.AddDate(0, 0, -2)
	due2 := asOf.AddDate(0, 0, -5)
	future := asOf.AddDate(0, 0, 3)
	mk("user-1", &due1, models.TrackingPending)
	mk("user-1", &due2, models.TrackingInProgress)
	mk("user-1", &future, models.TrackingPending)      // not due yet
	mk("user-1", &due1, models.TrackingPaid)           // terminal
	mk("user-1", &due1, models.TrackingRejected)       // terminal
	mk("user-1", nil, models.TrackingPending)          // no follow-up scheduled
	mk("user-2", &due1, models.TrackingPending)        // someone else's

	followUps, err := PendingFollowUps(db, "user-1", asOf)
	if err != nil {
		t.Fatalf("pending follow-ups: %v", err)
	}
	if len(followUps) != 2 {
		t.Fatalf("follow-ups = %d, want 2", len(followUps))
	}
	// Soonest (oldest overdue) first.
	if !followUps[0].NextActionDate.Equal(due2) {
		t.Errorf("first follow-up date = %v, want %v", followUps[0].NextActionDate, due2)
	}
}

func TestClientSummaryCapsWindow(t *testing.T) {
	db := newTestDB(t)
	client := seedClient(t, db)
	service := seedService(t, db)
	invoice := seedInvoice(t, db, client.ID, service.ID, 500, time.Now().AddDate(0, 0, 5))

	base := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)
	promiseDate := time.Now().AddDate(0, 0, 30)
	for i := 0; i < 12; i++ {
		status := models.TrackingPending
		var pd *time.Time
		contact := i%2 == 0
		if i == 11 {
			status = models.TrackingPaymentPromise
			pd = &promiseDate
		}
		tracking := models.CollectionTracking{
			EntityType:        models.EntityInvoice,
			EntityID:          invoice.ID,
			ClientID:          client.ID,
			UserID:            "user-1",
			ActionDate:        base.AddDate(0, 0, i),
			ActionType:        models.ActionCall,
			ActionDescription: fmt.Sprintf("attempt %d", i+1),
			ContactMade:       contact,
			Status:            status,
			PromiseDate:       pd,
		}
		if err := db.Create(&tracking).Error; err != nil {
			t.Fatalf("seed tracking: %v", err)
		}
	}

	recent, summary, err := ClientSummary(db, client.ID)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if len(recent) != 10 {
		t.Fatalf("recent window = %d, want 10", len(recent))
	}
	// The rollup covers the capped window, not the full history.
	if summary.TotalContacts != 10 {
		t.Errorf("total contacts = %d, want 10", summary.TotalContacts)
	}
	if summary.PendingPromises != 1 {
		t.Errorf("pending promises = %d, want 1", summary.PendingPromises)
	}
	if summary.LastContact == nil || !summary.LastContact.Equal(base.AddDate(0, 0, 11)) {
		t.Errorf("last contact = %v, want most recent action date", summary.LastContact)
	}
	// Window holds days 2..11; contact was made on even offsets (2,4,6,8,10).
	if summary.SuccessfulContacts != 5 {
		t.Errorf("successful contacts = %d, want 5", summary.SuccessfulContacts)
	}
}
