package earnings

import (
	"context"
	"time"

	bookingRepo "plenura/database/repository/booking"
	"plenura/models"
	"plenura/utils"
)

// EarningsService aggregates a therapist's bookings into earnings views.
// All operations are pure read-aggregations, safe to call repeatedly and
// concurrently. Money is integer cents throughout.
type EarningsService interface {
	// GetSummary computes the earnings summary with calendar-month buckets
	// anchored at asOf, so the result is reproducible for any instant.
	GetSummary(ctx context.Context, therapistID string, asOf time.Time) (*models.EarningsSummary, error)
	ListBookingEarnings(ctx context.Context, therapistID string, limit, offset int64) ([]models.BookingEarning, error)
}

// DefaultEarningsService implements EarningsService.
type DefaultEarningsService struct {
	Repo bookingRepo.BookingRepository
}

// GetSummary partitions the therapist's bookings by status and buckets
// completed payouts against the calendar months of asOf.
func (s *DefaultEarningsService) GetSummary(ctx context.Context, therapistID string, asOf time.Time) (*models.EarningsSummary, error) {
	statuses := []string{models.StatusPending, models.StatusConfirmed, models.StatusCompleted}
	bookings, err := s.Repo.ListByStatuses(ctx, therapistID, statuses)
	if err != nil {
		return nil, utils.UpstreamErr("failed to load bookings", err)
	}

	monthStart := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, asOf.Location())
	lastMonthStart := monthStart.AddDate(0, -1, 0)
	nextMonthStart := monthStart.AddDate(0, 1, 0)

	summary := &models.EarningsSummary{}
	for _, b := range bookings {
		summary.TotalBookings++
		payout := payoutOf(b)

		switch b.Status {
		case models.StatusConfirmed:
			summary.PendingPayoutCents += payout
		case models.StatusCompleted:
			summary.TotalEarningsCents += payout
			if b.CompletedAt == nil {
				continue
			}
			completed := *b.CompletedAt
			switch {
			case !completed.Before(monthStart) && completed.Before(nextMonthStart):
				summary.ThisMonthEarningsCents += payout
			case !completed.Before(lastMonthStart) && completed.Before(monthStart):
				summary.LastMonthEarningsCents += payout
			}
		}
	}
	return summary, nil
}

// ListBookingEarnings returns per-booking earning records for confirmed and
// completed bookings, scheduled time descending.
func (s *DefaultEarningsService) ListBookingEarnings(ctx context.Context, therapistID string, limit, offset int64) ([]models.BookingEarning, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	bookings, err := s.Repo.ListEarnings(ctx, therapistID, limit, offset)
	if err != nil {
		return nil, utils.UpstreamErr("failed to load booking earnings", err)
	}

	records := make([]models.BookingEarning, 0, len(bookings))
	for _, b := range bookings {
		records = append(records, models.BookingEarning{
			BookingID:            b.ID,
			ScheduledAt:          b.ScheduledAt,
			Status:               b.Status,
			PriceCents:           b.PriceCents,
			CommissionCents:      b.CommissionCents,
			TherapistPayoutCents: payoutOf(b),
			ClientName:           b.ClientName,
			ServiceName:          b.ServiceName,
		})
	}
	return records, nil
}

// payoutOf tolerates legacy rows lacking an explicit payout by defaulting it
// to the full price.
func payoutOf(b models.Booking) int64 {
	if b.TherapistPayoutCents == 0 && b.CommissionCents == 0 && b.PriceCents > 0 {
		return b.PriceCents
	}
	return b.TherapistPayoutCents
}
