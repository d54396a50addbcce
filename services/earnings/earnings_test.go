package earnings

import (
	"context"
	"testing"
	"time"

	"plenura/models"
)

// mockBookingRepo implements the subset of bookingRepo.BookingRepository the
// earnings service touches; the remaining methods are never called.
type mockBookingRepo struct {
	listByStatusesFn func(ctx context.Context, therapistID string, statuses []string) ([]models.Booking, error)
	listEarningsFn   func(ctx context.Context, therapistID string, limit, offset int64) ([]models.Booking, error)
}

func (m *mockBookingRepo) CreateExclusive(ctx context.Context, b *models.Booking) error { return nil }
func (m *mockBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	return nil, nil
}
func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id string, fields map[string]interface{}) error {
	return nil
}
func (m *mockBookingRepo) SetTherapistNotes(ctx context.Context, id, notes string) error { return nil }
func (m *mockBookingRepo) ListActiveInRange(ctx context.Context, therapistID string, from, to time.Time) ([]models.Booking, error) {
	return nil, nil
}
func (m *mockBookingRepo) ListByClient(ctx context.Context, clientID, status string, limit, offset int64) ([]models.Booking, error) {
	return nil, nil
}
func (m *mockBookingRepo) ListByTherapist(ctx context.Context, therapistID, status string, limit, offset int64) ([]models.Booking, error) {
	return nil, nil
}
func (m *mockBookingRepo) ListByTherapists(ctx context.Context, therapistIDs []string, limit, offset int64) ([]models.Booking, error) {
	return nil, nil
}

func (m *mockBookingRepo) ListByStatuses(ctx context.Context, therapistID string, statuses []string) ([]models.Booking, error) {
	return m.listByStatusesFn(ctx, therapistID, statuses)
}

func (m *mockBookingRepo) ListEarnings(ctx context.Context, therapistID string, limit, offset int64) ([]models.Booking, error) {
	return m.listEarningsFn(ctx, therapistID, limit, offset)
}

func ts(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
	return &t
}

func TestGetSummaryBuckets(t *testing.T) {
	bookings := []models.Booking{
		// Completed this month (as of 2026-08-29).
		{Status: models.StatusCompleted, TherapistPayoutCents: 4000, CommissionCents: 1000, PriceCents: 5000, CompletedAt: ts(2026, 8, 10)},
		{Status: models.StatusCompleted, TherapistPayoutCents: 2000, CommissionCents: 500, PriceCents: 2500, CompletedAt: ts(2026, 8, 28)},
		// Completed last month.
		{Status: models.StatusCompleted, TherapistPayoutCents: 3000, CommissionCents: 750, PriceCents: 3750, CompletedAt: ts(2026, 7, 2)},
		// Completed before last month: total only.
		{Status: models.StatusCompleted, TherapistPayoutCents: 1000, CommissionCents: 250, PriceCents: 1250, CompletedAt: ts(2026, 5, 15)},
		// Confirmed: pending payout.
		{Status: models.StatusConfirmed, TherapistPayoutCents: 9000, CommissionCents: 1000, PriceCents: 10000},
		// Pending: counted, no money.
		{Status: models.StatusPending, TherapistPayoutCents: 500, CommissionCents: 100, PriceCents: 600},
	}
	svc := &DefaultEarningsService{
		Repo: &mockBookingRepo{
			listByStatusesFn: func(ctx context.Context, therapistID string, statuses []string) ([]models.Booking, error) {
				return bookings, nil
			},
		},
	}

	asOf := time.Date(2026, 8, 29, 18, 0, 0, 0, time.UTC)
	summary, err := svc.GetSummary(context.Background(), "ther1", asOf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.TotalEarningsCents != 10000 {
		t.Errorf("total = %d, want 10000", summary.TotalEarningsCents)
	}
	if summary.ThisMonthEarningsCents != 6000 {
		t.Errorf("this month = %d, want 6000", summary.ThisMonthEarningsCents)
	}
	if summary.LastMonthEarningsCents != 3000 {
		t.Errorf("last month = %d, want 3000", summary.LastMonthEarningsCents)
	}
	if summary.PendingPayoutCents != 9000 {
		t.Errorf("pending = %d, want 9000", summary.PendingPayoutCents)
	}
	if summary.TotalBookings != 6 {
		t.Errorf("total bookings = %d, want 6", summary.TotalBookings)
	}
}

func TestGetSummaryExcludesFutureMonthsFromBuckets(t *testing.T) {
	bookings := []models.Booking{
		// Completed after the asOf month: total only, never "this month".
		{Status: models.StatusCompleted, TherapistPayoutCents: 7000, CommissionCents: 1000, PriceCents: 8000, CompletedAt: ts(2026, 9, 3)},
		{Status: models.StatusCompleted, TherapistPayoutCents: 4000, CommissionCents: 1000, PriceCents: 5000, CompletedAt: ts(2026, 8, 10)},
	}
	svc := &DefaultEarningsService{
		Repo: &mockBookingRepo{
			listByStatusesFn: func(ctx context.Context, therapistID string, statuses []string) ([]models.Booking, error) {
				return bookings, nil
			},
		},
	}

	summary, err := svc.GetSummary(context.Background(), "ther1", time.Date(2026, 8, 29, 18, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.TotalEarningsCents != 11000 {
		t.Errorf("total = %d, want 11000", summary.TotalEarningsCents)
	}
	if summary.ThisMonthEarningsCents != 4000 {
		t.Errorf("this month = %d, want 4000", summary.ThisMonthEarningsCents)
	}
	if summary.LastMonthEarningsCents != 0 {
		t.Errorf("last month = %d, want 0", summary.LastMonthEarningsCents)
	}
}

func TestGetSummaryAsOfAnchorsMonths(t *testing.T) {
	bookings := []models.Booking{
		{Status: models.StatusCompleted, TherapistPayoutCents: 4000, CommissionCents: 1000, PriceCents: 5000, CompletedAt: ts(2026, 8, 10)},
	}
	svc := &DefaultEarningsService{
		Repo: &mockBookingRepo{
			listByStatusesFn: func(ctx context.Context, therapistID string, statuses []string) ([]models.Booking, error) {
				return bookings, nil
			},
		},
	}

	// Viewed from September the same payout moves to the last-month bucket.
	summary, err := svc.GetSummary(context.Background(), "ther1", time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.ThisMonthEarningsCents != 0 {
		t.Errorf("this month = %d, want 0", summary.ThisMonthEarningsCents)
	}
	if summary.LastMonthEarningsCents != 4000 {
		t.Errorf("last month = %d, want 4000", summary.LastMonthEarningsCents)
	}
}

func TestPayoutOfLegacyRowsDefaultToPrice(t *testing.T) {
	legacy := models.Booking{Status: models.StatusCompleted, PriceCents: 5000}
	if got := payoutOf(legacy); got != 5000 {
		t.Errorf("payoutOf(legacy) = %d, want 5000", got)
	}

	split := models.Booking{PriceCents: 5000, CommissionCents: 500, TherapistPayoutCents: 4500}
	if got := payoutOf(split); got != 4500 {
		t.Errorf("payoutOf(split) = %d, want 4500", got)
	}

	// An explicit zero payout with nonzero commission stays zero.
	zeroPayout := models.Booking{PriceCents: 500, CommissionCents: 500, TherapistPayoutCents: 0}
	if got := payoutOf(zeroPayout); got != 0 {
		t.Errorf("payoutOf(zeroPayout) = %d, want 0", got)
	}
}

func TestListBookingEarnings(t *testing.T) {
	svc := &DefaultEarningsService{
		Repo: &mockBookingRepo{
			listEarningsFn: func(ctx context.Context, therapistID string, limit, offset int64) ([]models.Booking, error) {
				if limit != 20 {
					t.Errorf("limit = %d, want default 20", limit)
				}
				return []models.Booking{
					{ID: "bk1", Status: models.StatusCompleted, PriceCents: 5000, CommissionCents: 500, TherapistPayoutCents: 4500, ClientName: "Ana", ServiceName: "Massage"},
					{ID: "bk2", Status: models.StatusConfirmed, PriceCents: 3000}, // legacy row
				}, nil
			},
		},
	}

	rows, err := svc.ListBookingEarnings(context.Background(), "ther1", 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].TherapistPayoutCents != 4500 {
		t.Errorf("row 0 payout = %d, want 4500", rows[0].TherapistPayoutCents)
	}
	if rows[1].TherapistPayoutCents != 3000 {
		t.Errorf("row 1 payout = %d, want 3000 (legacy default)", rows[1].TherapistPayoutCents)
	}
}
