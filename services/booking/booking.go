package booking

import (
	"context"
	"errors"
	"time"

	bookingRepo "plenura/database/repository/booking"
	therapistRepo "plenura/database/repository/therapist"
	"plenura/models"
	"plenura/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateBooking creates a client-initiated booking in pending status.
// Commission follows the therapist's subscription tier. Slot exclusivity is
// delegated entirely to the storage layer: a losing concurrent writer gets a
// Conflict and may resubmit; no locking or retry happens here.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (*models.Booking, error) {
	now := s.clock()
	if !in.ScheduledAt.After(now) {
		return nil, utils.InvalidInputErr("scheduled time must be in the future")
	}

	treatment, err := s.TherapistRepo.GetTreatment(ctx, in.TherapistServiceID)
	if err != nil {
		if errors.Is(err, therapistRepo.ErrNotFound) {
			return nil, utils.NotFoundErr("service")
		}
		return nil, utils.UpstreamErr("failed to load service", err)
	}
	if !treatment.Active || treatment.TherapistID != in.TherapistID {
		return nil, utils.InvalidInputErr("service is not offered by this therapist")
	}
	if treatment.PriceCents <= 0 || treatment.DurationMinutes <= 0 {
		return nil, utils.InvalidStateErr("service has no valid price or duration")
	}

	therapist, err := s.TherapistRepo.GetByID(ctx, in.TherapistID)
	if err != nil {
		if errors.Is(err, therapistRepo.ErrNotFound) {
			return nil, utils.NotFoundErr("therapist")
		}
		return nil, utils.UpstreamErr("failed to load therapist", err)
	}
	if therapist.VettingStatus != models.VettingApproved || !therapist.Available {
		return nil, utils.InvalidStateErr("therapist is not accepting bookings")
	}

	commission, payout := splitPrice(treatment.PriceCents, tierCommissionBp(therapist.SubscriptionTier))

	booking := &models.Booking{
		ID:                   uuid.New().String(),
		ClientID:             in.ClientID,
		ClientName:           in.ClientName,
		TherapistID:          in.TherapistID,
		TherapistServiceID:   in.TherapistServiceID,
		ScheduledAt:          in.ScheduledAt.UTC(),
		ScheduledEndAt:       in.ScheduledAt.UTC().Add(time.Duration(treatment.DurationMinutes) * time.Minute),
		Status:               models.StatusPending,
		Origin:               models.OriginClient,
		PriceCents:           treatment.PriceCents,
		CommissionCents:      commission,
		TherapistPayoutCents: payout,
		EscrowStatus:         models.EscrowUnpaid,
		ClientAddress:        in.ClientAddress,
		ClientNotes:          in.Notes,
		ServiceName:          treatment.Name,
		CreatedAt:            now,
	}

	if err := s.Repo.CreateExclusive(ctx, booking); err != nil {
		if errors.Is(err, bookingRepo.ErrSlotTaken) {
			return nil, utils.ConflictErr("slot unavailable")
		}
		return nil, utils.UpstreamErr("failed to create booking", err)
	}

	s.invalidateSlotCache(ctx, booking.TherapistID, booking.ScheduledAt)
	utils.GetLogger().Info("booking created",
		zap.String("booking_id", booking.ID),
		zap.String("therapist_id", booking.TherapistID),
		zap.Int64("price_cents", booking.PriceCents))
	return booking, nil
}

// CreateManualBooking creates a therapist-entered booking, confirmed
// immediately, under the flat platform commission policy.
func (s *DefaultBookingService) CreateManualBooking(ctx context.Context, in ManualBookingInput) (*models.Booking, error) {
	now := s.clock()
	if !in.ScheduledAt.After(now) {
		return nil, utils.InvalidInputErr("scheduled time must be in the future")
	}

	treatment, err := s.TherapistRepo.GetTreatment(ctx, in.TherapistServiceID)
	if err != nil {
		if errors.Is(err, therapistRepo.ErrNotFound) {
			return nil, utils.NotFoundErr("service")
		}
		return nil, utils.UpstreamErr("failed to load service", err)
	}
	if !treatment.Active || treatment.TherapistID != in.TherapistID {
		return nil, utils.InvalidInputErr("service is not offered by this therapist")
	}
	if treatment.PriceCents <= 0 || treatment.DurationMinutes <= 0 {
		return nil, utils.InvalidStateErr("service has no valid price or duration")
	}

	commission, payout := splitPrice(treatment.PriceCents, manualCommissionBp)

	confirmedAt := now
	booking := &models.Booking{
		ID:                   uuid.New().String(),
		ClientID:             in.ClientID,
		ClientName:           in.ClientName,
		TherapistID:          in.TherapistID,
		TherapistServiceID:   in.TherapistServiceID,
		ScheduledAt:          in.ScheduledAt.UTC(),
		ScheduledEndAt:       in.ScheduledAt.UTC().Add(time.Duration(treatment.DurationMinutes) * time.Minute),
		Status:               models.StatusConfirmed,
		Origin:               models.OriginTherapistManual,
		PriceCents:           treatment.PriceCents,
		CommissionCents:      commission,
		TherapistPayoutCents: payout,
		EscrowStatus:         models.EscrowUnpaid,
		TherapistNotes:       in.Notes,
		ServiceName:          treatment.Name,
		ConfirmedAt:          &confirmedAt,
		CreatedAt:            now,
	}

	if err := s.Repo.CreateExclusive(ctx, booking); err != nil {
		if errors.Is(err, bookingRepo.ErrSlotTaken) {
			return nil, utils.ConflictErr("slot unavailable")
		}
		return nil, utils.UpstreamErr("failed to create booking", err)
	}

	s.invalidateSlotCache(ctx, booking.TherapistID, booking.ScheduledAt)
	s.scheduleReminder(booking)
	return booking, nil
}

// scheduleReminder enqueues a reminder 24h before the session. Failures are
// logged, never surfaced; reminders are best effort.
func (s *DefaultBookingService) scheduleReminder(booking *models.Booking) {
	if s.Reminders == nil {
		return
	}
	fireAt := booking.ScheduledAt.Add(-24 * time.Hour)
	if fireAt.Before(s.clock()) {
		return
	}
	payload := models.ReminderPayload{
		BookingID:   booking.ID,
		ClientID:    booking.ClientID,
		TherapistID: booking.TherapistID,
		ScheduledAt: booking.ScheduledAt,
		ServiceName: booking.ServiceName,
	}
	if err := s.Reminders.ScheduleBookingReminder(payload, fireAt); err != nil {
		utils.GetLogger().Warn("failed to schedule booking reminder",
			zap.String("booking_id", booking.ID), zap.Error(err))
	}
}
