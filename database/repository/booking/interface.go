package bookingRepo

import (
	"context"
	"errors"
	"time"

	"plenura/models"
)

// ErrSlotTaken is returned when an insert would overlap an existing
// pending/confirmed booking for the same therapist. The storage layer is the
// sole arbiter of slot exclusivity; callers translate this into a domain
// conflict and decide whether to resubmit.
var ErrSlotTaken = errors.New("booking slot already taken")

// ErrNotFound is returned when a booking does not exist.
var ErrNotFound = errors.New("booking not found")

// BookingRepository persists bookings and serves the lifecycle and earnings
// queries.
type BookingRepository interface {
	// CreateExclusive inserts the booking unless its time range overlaps an
	// existing pending/confirmed booking for the same therapist, in which
	// case it returns ErrSlotTaken.
	CreateExclusive(ctx context.Context, booking *models.Booking) error

	GetByID(ctx context.Context, bookingID string) (*models.Booking, error)
	UpdateStatus(ctx context.Context, bookingID string, fields map[string]interface{}) error
	SetTherapistNotes(ctx context.Context, bookingID, notes string) error

	// ListActiveInRange returns pending/confirmed bookings for the therapist
	// whose range intersects [from, to).
	ListActiveInRange(ctx context.Context, therapistID string, from, to time.Time) ([]models.Booking, error)

	ListByClient(ctx context.Context, clientID, status string, limit, offset int64) ([]models.Booking, error)
	ListByTherapist(ctx context.Context, therapistID, status string, limit, offset int64) ([]models.Booking, error)
	ListByTherapists(ctx context.Context, therapistIDs []string, limit, offset int64) ([]models.Booking, error)

	// ListByStatuses returns all bookings for the therapist in any of the
	// given statuses; used by earnings aggregation.
	ListByStatuses(ctx context.Context, therapistID string, statuses []string) ([]models.Booking, error)

	// ListEarnings returns confirmed/completed bookings ordered by scheduled
	// time descending, paginated.
	ListEarnings(ctx context.Context, therapistID string, limit, offset int64) ([]models.Booking, error)
}
