package booking

import (
	"context"
	"errors"

	bookingRepo "plenura/database/repository/booking"
	"plenura/models"
	"plenura/utils"

	"go.uber.org/zap"
)

// allowedTransitions maps a current status to its permissible successors.
// Transitions are one-directional; cancellation is reachable from pending and
// confirmed only.
var allowedTransitions = map[string][]string{
	models.StatusPending: {
		models.StatusConfirmed,
		models.StatusCancelledByClient,
		models.StatusCancelledByTherapist,
	},
	models.StatusConfirmed: {
		models.StatusCompleted,
		models.StatusCancelledByClient,
		models.StatusCancelledByTherapist,
		models.StatusNoShow,
	},
}

func transitionAllowed(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// actorMayTransition checks that the actor owns the side of the transition:
// clients cancel as clients; confirmation, completion, no-show and
// therapist-side cancellation belong to the booking's therapist.
func actorMayTransition(b *models.Booking, newStatus string, actor Actor) bool {
	switch newStatus {
	case models.StatusCancelledByClient:
		return actor.Role == "client" && actor.UserID == b.ClientID
	case models.StatusConfirmed, models.StatusCompleted, models.StatusCancelledByTherapist, models.StatusNoShow:
		return actor.Role == "therapist" && actor.UserID == b.TherapistID
	default:
		return false
	}
}

// TransitionStatus moves a booking along its lifecycle. Completion stamps
// completed_at and releases escrow; it is the only transition that unlocks
// review creation and earnings counting. Cancelling a paid booking credits
// the payment back to the client's wallet before the escrow is marked
// refunded, so the refunded state always has a matching ledger entry.
func (s *DefaultBookingService) TransitionStatus(ctx context.Context, bookingID, newStatus string, actor Actor) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, utils.NotFoundErr("booking")
		}
		return nil, utils.UpstreamErr("failed to load booking", err)
	}

	if !transitionAllowed(b.Status, newStatus) {
		return nil, utils.InvalidStateErr("transition from " + b.Status + " to " + newStatus + " is not allowed")
	}
	if !actorMayTransition(b, newStatus, actor) {
		return nil, utils.ForbiddenErr("actor may not perform this transition")
	}

	now := s.clock()
	fields := map[string]interface{}{"status": newStatus}
	switch newStatus {
	case models.StatusConfirmed:
		fields["confirmed_at"] = now
		b.ConfirmedAt = &now
	case models.StatusCompleted:
		fields["completed_at"] = now
		b.CompletedAt = &now
		if b.EscrowStatus == models.EscrowHeld {
			fields["escrow_status"] = models.EscrowReleased
			b.EscrowStatus = models.EscrowReleased
		}
	case models.StatusCancelledByClient, models.StatusCancelledByTherapist:
		if b.EscrowStatus == models.EscrowHeld {
			if err := s.Wallet.Credit(ctx, b.ClientID, b.PriceCents, models.TxRefund, "booking:"+b.ID); err != nil {
				return nil, utils.UpstreamErr("failed to refund booking payment", err)
			}
			fields["escrow_status"] = models.EscrowRefunded
			b.EscrowStatus = models.EscrowRefunded
		}
	}
	_, refunded := fields["escrow_status"]
	refunded = refunded && b.EscrowStatus == models.EscrowRefunded

	if err := s.Repo.UpdateStatus(ctx, bookingID, fields); err != nil {
		if refunded {
			// The credit landed but the booking still reads held; flag for
			// reconciliation rather than attempting to claw the credit back.
			utils.GetLogger().Error("refund credited but booking update failed",
				zap.String("booking_id", b.ID),
				zap.Error(err))
		}
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, utils.NotFoundErr("booking")
		}
		return nil, utils.UpstreamErr("failed to update booking status", err)
	}
	b.Status = newStatus

	switch newStatus {
	case models.StatusConfirmed:
		s.scheduleReminder(b)
	case models.StatusCancelledByClient, models.StatusCancelledByTherapist:
		s.invalidateSlotCache(ctx, b.TherapistID, b.ScheduledAt)
	}

	utils.GetLogger().Info("booking status changed",
		zap.String("booking_id", b.ID),
		zap.String("status", newStatus))
	return b, nil
}
