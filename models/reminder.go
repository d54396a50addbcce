package models

import "time"

// ReminderPayload is the asynq task payload for an upcoming-booking reminder.
type ReminderPayload struct {
	BookingID   string    `json:"booking_id"`
	ClientID    string    `json:"client_id"`
	TherapistID string    `json:"therapist_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	ServiceName string    `json:"service_name"`
}
