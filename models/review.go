package models

import "time"

// Review is client feedback on a completed booking. Exactly one review is
// allowed per booking.
type Review struct {
	ID          string    `bson:"id" json:"id"`
	BookingID   string    `bson:"booking_id" json:"booking_id"`
	ClientID    string    `bson:"client_id" json:"client_id"`
	TherapistID string    `bson:"therapist_id" json:"therapist_id"`
	Rating      int       `bson:"rating" json:"rating"` // 1..5
	Comment     string    `bson:"comment,omitempty" json:"comment,omitempty"`
	IsPublic    bool      `bson:"is_public" json:"is_public"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}
