package models

import "time"

// Vetting states for a therapist. A therapist is never hard-deleted;
// suspension and rejection are soft states.
const (
	VettingPending   = "pending"
	VettingApproved  = "approved"
	VettingRejected  = "rejected"
	VettingSuspended = "suspended"
)

// Subscription tiers. Each tier carries a fixed marketplace commission rate.
const (
	TierFree       = "free"
	TierPro        = "pro"
	TierBusiness   = "business"
	TierEnterprise = "enterprise"
)

// Therapist is the marketplace-facing profile of a practitioner.
type Therapist struct {
	ID               string    `bson:"id" json:"id"`
	UserID           string    `bson:"user_id" json:"user_id"`
	DisplayName      string    `bson:"display_name" json:"display_name"`
	Bio              string    `bson:"bio,omitempty" json:"bio,omitempty"`
	VettingStatus    string    `bson:"vetting_status" json:"vetting_status"`
	Available        bool      `bson:"available" json:"available"`
	SubscriptionTier string    `bson:"subscription_tier" json:"subscription_tier"`
	RatingAvg        float64   `bson:"rating_avg" json:"rating_avg"`     // rounded to one decimal
	RatingCount      int       `bson:"rating_count" json:"rating_count"` // public reviews only
	PracticeID       string    `bson:"practice_id,omitempty" json:"practice_id,omitempty"`
	CreatedAt        time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time `bson:"updated_at" json:"updated_at"`
}

// TherapistService is a bookable treatment offered by a therapist.
type TherapistService struct {
	ID              string    `bson:"id" json:"id"`
	TherapistID     string    `bson:"therapist_id" json:"therapist_id"`
	Name            string    `bson:"name" json:"name"`
	Description     string    `bson:"description,omitempty" json:"description,omitempty"`
	PriceCents      int64     `bson:"price_cents" json:"price_cents"`
	DurationMinutes int       `bson:"duration_minutes" json:"duration_minutes"`
	Active          bool      `bson:"active" json:"active"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
}
