package billing

import (
	"errors"
	"time"

	"cobranzas-backend/models"
	"cobranzas-backend/utils"

	"gorm.io/gorm"
)

// EntityRef is a typed reference to the billable entity a tracking record
// attaches to: an invoice or a contracted service. It replaces a bare
// (type string, id) pair with an explicit per-variant lookup.
type EntityRef struct {
	Type string `json:"entity_type" validate:"required,oneof=invoice contracted_service"`
	ID   uint   `json:"entity_id" validate:"required"`
}

// Resolve checks that the referenced entity exists. There is no database
// FK behind the polymorphic pair, so this lookup is the only integrity
// guard.
func (r EntityRef) Resolve(db *gorm.DB) error {
	var err error
	switch r.Type {
	case models.EntityInvoice:
		err = db.First(&models.Invoice{}, r.ID).Error
	case models.EntityContractedService:
		err = db.First(&models.ContractedService{}, r.ID).Error
	default:
		return &ValidationError{Field: "entity_type", Reason: "must be invoice or contracted_service"}
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &NotFoundError{Entity: r.Type, ID: r.ID}
	}
	return err
}

var validActionTypes = map[string]bool{
	models.ActionCall:     true,
	models.ActionEmail:    true,
	models.ActionVisit:    true,
	models.ActionWhatsapp: true,
	models.ActionLetter:   true,
	models.ActionOther:    true,
}

var validTrackingStatus = map[string]bool{
	models.TrackingPending:        true,
	models.TrackingInProgress:     true,
	models.TrackingPaymentPromise: true,
	models.TrackingPaid:           true,
	models.TrackingNoResponse:     true,
	models.TrackingRejected:       true,
}

// ActionInput carries the operator-entered fields of one outreach action.
type ActionInput struct {
	ActionType        string     `json:"action_type" validate:"required"`
	ActionDescription string     `json:"action_description" validate:"required"`
	ContactMade       bool       `json:"contact_made"`
	ClientResponse    string     `json:"client_response"`
	NextActionDate    *time.Time `json:"next_action_date"`
	NextActionNotes   string     `json:"next_action_notes"`
	Status            string     `json:"status"`
	PromiseDate       *time.Time `json:"promise_date"`
	PromiseAmount     *float64   `json:"promise_amount"`
}

// RecordAction appends an immutable tracking record after resolving the
// entity reference. Logging never mutates the referenced entity: the
// collection log and the billing state machine are decoupled.
func RecordAction(db *gorm.DB, ref EntityRef, clientID uint, userID string, in ActionInput) (*models.CollectionTracking, error) {
	if !validActionTypes[in.ActionType] {
		return nil, &ValidationError{Field: "action_type", Reason: "must be one of: call, email, visit, whatsapp, letter, other"}
	}
	if in.Status != "" && !validTrackingStatus[in.Status] {
		return nil, &ValidationError{Field: "status", Reason: "invalid tracking status"}
	}
	if in.ActionDescription == "" {
		return nil, &ValidationError{Field: "action_description", Reason: "is required"}
	}
	if err := ref.Resolve(db); err != nil {
		return nil, err
	}
	if err := db.First(&models.Client{}, clientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "client", ID: clientID}
		}
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = models.TrackingPending
	}
	if in.PromiseAmount != nil {
		rounded := utils.Round2(*in.PromiseAmount)
		in.PromiseAmount = &rounded
	}

	tracking := models.CollectionTracking{
		EntityType:        ref.Type,
		EntityID:          ref.ID,
		ClientID:          clientID,
		UserID:            userID,
		ActionDate:        time.Now(),
		ActionType:        in.ActionType,
		ActionDescription: in.ActionDescription,
		ContactMade:       in.ContactMade,
		ClientResponse:    in.ClientResponse,
		NextActionDate:    in.NextActionDate,
		NextActionNotes:   in.NextActionNotes,
		Status:            status,
		PromiseDate:       in.PromiseDate,
		PromiseAmount:     in.PromiseAmount,
	}
	if err := db.Create(&tracking).Error; err != nil {
		return nil, err
	}
	return &tracking, nil
}

// History returns every tracking record for one entity, most recent
// action first.
func History(db *gorm.DB, ref EntityRef) ([]models.CollectionTracking, error) {
	var trackings []models.CollectionTracking
	err := db.Preload("Client").
		Where("entity_type = ? AND entity_id = ?", ref.Type, ref.ID).
		Order("action_date DESC").
		Find(&trackings).Error
	return trackings, err
}

// PendingFollowUps returns the operator's follow-ups that are due as of
// the given date and not yet terminal, soonest first.
func PendingFollowUps(db *gorm.DB, userID string, asOf time.Time) ([]models.CollectionTracking, error) {
	var trackings []models.CollectionTracking
	err := db.Preload("Client").
		Where("user_id = ?", userID).
		Where("next_action_date IS NOT NULL AND next_action_date <= ?", asOf).
		Where("status NOT IN ?", []string{models.TrackingPaid, models.TrackingRejected}).
		Order("next_action_date ASC").
		Find(&trackings).Error
	return trackings, err
}

// TrackingSummary is the per-client rollup over the recent window.
type TrackingSummary struct {
	TotalContacts      int        `json:"total_contacts"`
	SuccessfulContacts int        `json:"successful_contacts"`
	LastContact        *time.Time `json:"last_contact"`
	PendingPromises    int        `json:"pending_promises"`
}

// clientSummaryCap bounds the recent-trackings window.
const clientSummaryCap = 10

// ClientSummary returns the client's most recent tracking records (at
// most 10) plus a rollup. The rollup is computed over the capped window,
// not the full history: TotalContacts tops out at the cap.
func ClientSummary(db *gorm.DB, clientID uint) ([]models.CollectionTracking, TrackingSummary, error) {
	var trackings []models.CollectionTracking
	if err := db.Where("client_id = ?", clientID).
		Order("action_date DESC").
		Limit(clientSummaryCap).
		Find(&trackings).Error; err != nil {
		return nil, TrackingSummary{}, err
	}

	summary := TrackingSummary{TotalContacts: len(trackings)}
	now := time.Now()
	for _, t := range trackings {
		if t.ContactMade {
			summary.SuccessfulContacts++
		}
		if t.Status == models.TrackingPaymentPromise && t.PromiseDate != nil && t.PromiseDate.After(now) {
			summary.PendingPromises++
		}
	}
	if len(trackings) > 0 {
		summary.LastContact = &trackings[0].ActionDate
	}
	return trackings, summary, nil
}
