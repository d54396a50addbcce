package models

import "time"

// Practice is a multi-therapist business managing a team of practitioners.
type Practice struct {
	ID           string    `bson:"id" json:"id"`
	OwnerUserID  string    `bson:"owner_user_id" json:"owner_user_id"`
	Name         string    `bson:"name" json:"name"`
	TherapistIDs []string  `bson:"therapist_ids" json:"therapist_ids"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}
