package models

import "time"

// AvailabilityRule is a recurring weekly window during which a therapist
// accepts bookings. Times are minutes from midnight (e.g. 540 for 9:00 AM).
// The full rule set for a therapist is replaced wholesale on every save.
type AvailabilityRule struct {
	ID          string `bson:"id" json:"id"`
	TherapistID string `bson:"therapist_id" json:"therapist_id"`
	Weekday     int    `bson:"weekday" json:"weekday"` // 0 = Sunday, matching time.Weekday
	StartMinute int    `bson:"start_minute" json:"start_minute"`
	EndMinute   int    `bson:"end_minute" json:"end_minute"`
	Active      bool   `bson:"active" json:"active"`
}

// BlockedPeriod removes an inclusive date range from a therapist's
// availability regardless of weekly rules. Dates use "2006-01-02".
type BlockedPeriod struct {
	ID          string    `bson:"id" json:"id"`
	TherapistID string    `bson:"therapist_id" json:"therapist_id"`
	StartDate   string    `bson:"start_date" json:"start_date"`
	EndDate     string    `bson:"end_date" json:"end_date"`
	Reason      string    `bson:"reason,omitempty" json:"reason,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// Covers reports whether the blocked period includes the given date.
func (b BlockedPeriod) Covers(date string) bool {
	return b.StartDate <= date && date <= b.EndDate
}

// Slot is a bookable window of fixed duration offered to clients.
type Slot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}
