package models

import "time"

// EarningsSummary is derived on demand from a therapist's bookings; it is
// never persisted. All sums are integer cents.
type EarningsSummary struct {
	TotalEarningsCents     int64 `json:"total_earnings_cents"`      // completed payouts
	ThisMonthEarningsCents int64 `json:"this_month_earnings_cents"` // completed_at in current calendar month
	LastMonthEarningsCents int64 `json:"last_month_earnings_cents"` // completed_at in previous calendar month
	PendingPayoutCents     int64 `json:"pending_payout_cents"`      // confirmed, not yet completed
	TotalBookings          int   `json:"total_bookings"`            // pending + confirmed + completed
}

// BookingEarning is a per-booking earnings record for display, restricted to
// confirmed and completed bookings.
type BookingEarning struct {
	BookingID            string    `json:"booking_id"`
	ScheduledAt          time.Time `json:"scheduled_at"`
	Status               string    `json:"status"`
	PriceCents           int64     `json:"price_cents"`
	CommissionCents      int64     `json:"commission_cents"`
	TherapistPayoutCents int64     `json:"therapist_payout_cents"`
	ClientName           string    `json:"client_name"`
	ServiceName          string    `json:"service_name"`
}
