package models

import "time"

// Booking status lifecycle.
const (
	StatusPending              = "pending"
	StatusConfirmed            = "confirmed"
	StatusInProgress           = "in_progress"
	StatusCompleted            = "completed"
	StatusCancelledByClient    = "cancelled_by_client"
	StatusCancelledByTherapist = "cancelled_by_therapist"
	StatusNoShow               = "no_show"
)

// Booking origin selects the commission policy applied at creation.
const (
	OriginClient          = "client"
	OriginTherapistManual = "therapist_manual"
)

// Escrow states for the booking payment.
const (
	EscrowUnpaid   = "unpaid"
	EscrowHeld     = "held"
	EscrowReleased = "released"
	EscrowRefunded = "refunded"
)

// Booking is the aggregate root for scheduling and earnings accounting.
// Invariant: PriceCents == CommissionCents + TherapistPayoutCents.
type Booking struct {
	ID                   string     `bson:"id" json:"id"`
	ClientID             string     `bson:"client_id" json:"client_id"`
	TherapistID          string     `bson:"therapist_id" json:"therapist_id"`
	TherapistServiceID   string     `bson:"therapist_service_id" json:"therapist_service_id"`
	ScheduledAt          time.Time  `bson:"scheduled_at" json:"scheduled_at"`
	ScheduledEndAt       time.Time  `bson:"scheduled_end_at" json:"scheduled_end_at"`
	Status               string     `bson:"status" json:"status"`
	Origin               string     `bson:"origin" json:"origin"`
	PriceCents           int64      `bson:"price_cents" json:"price_cents"`
	CommissionCents      int64      `bson:"commission_cents" json:"commission_cents"`
	TherapistPayoutCents int64      `bson:"therapist_payout_cents" json:"therapist_payout_cents"`
	EscrowStatus         string     `bson:"escrow_status" json:"escrow_status"`
	ClientAddress        string     `bson:"client_address,omitempty" json:"client_address,omitempty"`
	ClientNotes          string     `bson:"client_notes,omitempty" json:"client_notes,omitempty"`
	TherapistNotes       string     `bson:"therapist_notes,omitempty" json:"therapist_notes,omitempty"`
	ClientName           string     `bson:"client_name,omitempty" json:"client_name,omitempty"`   // denormalized for earnings views
	ServiceName          string     `bson:"service_name,omitempty" json:"service_name,omitempty"` // denormalized for earnings views
	ConfirmedAt          *time.Time `bson:"confirmed_at,omitempty" json:"confirmed_at,omitempty"`
	CompletedAt          *time.Time `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	CreatedAt            time.Time  `bson:"created_at" json:"created_at"`
}

// ActiveStatuses are the statuses that occupy a therapist's calendar.
var ActiveStatuses = []string{StatusPending, StatusConfirmed}
