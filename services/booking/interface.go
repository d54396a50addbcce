package booking

import (
	"context"
	"time"

	availabilityRepo "plenura/database/repository/availability"
	bookingRepo "plenura/database/repository/booking"
	therapistRepo "plenura/database/repository/therapist"
	"plenura/models"
	"plenura/services/tasks"

	"github.com/go-redis/redis/v8"
)

// CreateBookingInput carries a client-initiated booking request.
type CreateBookingInput struct {
	ClientID           string
	ClientName         string
	TherapistID        string
	TherapistServiceID string
	ScheduledAt        time.Time
	ClientAddress      string
	Notes              string
}

// ManualBookingInput carries a therapist-initiated booking entered on behalf
// of a client (e.g. a phone booking).
type ManualBookingInput struct {
	TherapistID        string
	TherapistServiceID string
	ClientID           string
	ClientName         string
	ScheduledAt        time.Time
	Notes              string
}

// Actor identifies the authenticated caller of a lifecycle operation.
type Actor struct {
	UserID string
	Role   string // "client" | "therapist" | "admin"
}

// RefundCrediter returns a booking payment to the paying client's wallet.
// Satisfied by the wallet service.
type RefundCrediter interface {
	Credit(ctx context.Context, userID string, amountCents int64, txType, reference string) error
}

// BookingService manages the booking lifecycle and slot computation.
type BookingService interface {
	CreateBooking(ctx context.Context, in CreateBookingInput) (*models.Booking, error)
	CreateManualBooking(ctx context.Context, in ManualBookingInput) (*models.Booking, error)
	GetAvailableSlots(ctx context.Context, therapistID, date string, durationMinutes int) ([]models.Slot, error)
	TransitionStatus(ctx context.Context, bookingID, newStatus string, actor Actor) (*models.Booking, error)
	UpdateTherapistNotes(ctx context.Context, bookingID, therapistID, notes string) error
	GetBooking(ctx context.Context, bookingID string, actor Actor) (*models.Booking, error)
	ListClientBookings(ctx context.Context, clientID, status string, limit, offset int64) ([]models.Booking, error)
	ListTherapistBookings(ctx context.Context, therapistID, status string, limit, offset int64) ([]models.Booking, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo          bookingRepo.BookingRepository
	TherapistRepo therapistRepo.TherapistRepository
	Availability  availabilityRepo.AvailabilityRepository
	SlotCache     *redis.Client
	Reminders     tasks.ReminderScheduler
	Wallet        RefundCrediter

	// now is swappable for tests; defaults to time.Now.
	now func() time.Time
}

func (s *DefaultBookingService) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now().UTC()
}
