package booking

import (
	"context"
	"errors"

	bookingRepo "plenura/database/repository/booking"
	"plenura/models"
	"plenura/utils"
)

// GetBooking returns a booking visible to its client or therapist.
func (s *DefaultBookingService) GetBooking(ctx context.Context, bookingID string, actor Actor) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, utils.NotFoundErr("booking")
		}
		return nil, utils.UpstreamErr("failed to load booking", err)
	}
	if actor.UserID != b.ClientID && actor.UserID != b.TherapistID && actor.Role != "admin" {
		return nil, utils.ForbiddenErr("booking belongs to another user")
	}
	return b, nil
}

// ListClientBookings returns a client's bookings, optionally filtered by
// status, newest first.
func (s *DefaultBookingService) ListClientBookings(ctx context.Context, clientID, status string, limit, offset int64) ([]models.Booking, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	bookings, err := s.Repo.ListByClient(ctx, clientID, status, limit, offset)
	if err != nil {
		return nil, utils.UpstreamErr("failed to list bookings", err)
	}
	return bookings, nil
}

// ListTherapistBookings returns a therapist's bookings, optionally filtered
// by status, newest first.
func (s *DefaultBookingService) ListTherapistBookings(ctx context.Context, therapistID, status string, limit, offset int64) ([]models.Booking, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	bookings, err := s.Repo.ListByTherapist(ctx, therapistID, status, limit, offset)
	if err != nil {
		return nil, utils.UpstreamErr("failed to list bookings", err)
	}
	return bookings, nil
}

// UpdateTherapistNotes edits the therapist-authored notes on a booking. This
// is permitted even after completion; it is the one exception to completed
// bookings being immutable.
func (s *DefaultBookingService) UpdateTherapistNotes(ctx context.Context, bookingID, therapistID, notes string) error {
	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return utils.NotFoundErr("booking")
		}
		return utils.UpstreamErr("failed to load booking", err)
	}
	if b.TherapistID != therapistID {
		return utils.ForbiddenErr("booking belongs to another therapist")
	}
	if err := s.Repo.SetTherapistNotes(ctx, bookingID, notes); err != nil {
		return utils.UpstreamErr("failed to update therapist notes", err)
	}
	return nil
}
