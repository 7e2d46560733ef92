package models

import "time"

const (
	EntityInvoice           = "invoice"
	EntityContractedService = "contracted_service"
)

const (
	ActionCall     = "call"
	ActionEmail    = "email"
	ActionVisit    = "visit"
	ActionWhatsapp = "whatsapp"
	ActionLetter   = "letter"
	ActionOther    = "other"
)

const (
	TrackingPending        = "pending"
	TrackingInProgress     = "in_progress"
	TrackingPaymentPromise = "payment_promise"
	TrackingPaid           = "paid"
	TrackingNoResponse     = "no_response"
	TrackingRejected       = "rejected"
)

// CollectionTracking is one outreach action (call, visit, promise to pay)
// recorded against an invoice or a contracted service. Records are
// append-only; they are never updated or deleted.
//
// EntityID is a polymorphic reference typed by EntityType; validity is
// enforced by an existence check at insert time, not by a database FK.
type CollectionTracking struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	EntityType string `json:"entity_type" gorm:"type:varchar(20);not null;index:idx_trackings_entity,priority:1"`
	EntityID   uint   `json:"entity_id" gorm:"not null;index:idx_trackings_entity,priority:2"`
	ClientID   uint   `json:"client_id" gorm:"not null;index"`
	Client     Client `json:"client" gorm:"foreignKey:ClientID"`
	UserID     string `json:"user_id" gorm:"size:128;not null;index"`

	ActionDate        time.Time `json:"action_date" gorm:"not null;index"`
	ActionType        string    `json:"action_type" gorm:"type:varchar(10);not null"`
	ActionDescription string    `json:"action_description" gorm:"not null"`
	ContactMade       bool      `json:"contact_made" gorm:"not null;default:false"`
	ClientResponse    string    `json:"client_response"`

	NextActionDate  *time.Time `json:"next_action_date"`
	NextActionNotes string     `json:"next_action_notes"`

	Status        string     `json:"status" gorm:"type:varchar(20);not null;default:pending;index"`
	PromiseDate   *time.Time `json:"promise_date"`
	PromiseAmount *float64   `json:"promise_amount" gorm:"type:numeric(10,2)"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
