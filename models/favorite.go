package models

import "time"

// Favorite marks a therapist saved by a client. The (client, therapist) pair
// is unique; a duplicate save surfaces as a conflict.
type Favorite struct {
	ID          string    `bson:"id" json:"id"`
	ClientID    string    `bson:"client_id" json:"client_id"`
	TherapistID string    `bson:"therapist_id" json:"therapist_id"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}
