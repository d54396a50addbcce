package review

import (
	"context"
	"errors"
	"math"
	"time"

	bookingRepo "plenura/database/repository/booking"
	reviewRepo "plenura/database/repository/review"
	therapistRepo "plenura/database/repository/therapist"
	"plenura/models"
	"plenura/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateReviewInput carries a client's review of a completed booking.
type CreateReviewInput struct {
	BookingID string
	Rating    int
	Comment   string
	IsPublic  bool
}

// ReviewService validates and records reviews and keeps the therapist's
// rating aggregate current.
type ReviewService interface {
	CreateReview(ctx context.Context, clientID string, in CreateReviewInput) (*models.Review, error)
	ListTherapistReviews(ctx context.Context, therapistID string, limit, offset int64) ([]models.Review, error)
}

// DefaultReviewService implements ReviewService.
type DefaultReviewService struct {
	Repo          reviewRepo.ReviewRepository
	BookingRepo   bookingRepo.BookingRepository
	TherapistRepo therapistRepo.TherapistRepository
}

// CreateReview enforces, in order: the booking exists, belongs to the
// requesting client, is completed, and has no prior review. Rating bounds
// are re-validated defensively even though the handler layer checks them.
// On success the therapist's public rating aggregate is recomputed; when the
// therapist has no public reviews the stored values are left untouched.
func (s *DefaultReviewService) CreateReview(ctx context.Context, clientID string, in CreateReviewInput) (*models.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, utils.InvalidInputErr("rating must be an integer between 1 and 5")
	}

	booking, err := s.BookingRepo.GetByID(ctx, in.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, utils.NotFoundErr("booking")
		}
		return nil, utils.UpstreamErr("failed to load booking", err)
	}
	if booking.ClientID != clientID {
		return nil, utils.UnauthorizedErr("booking belongs to another client")
	}
	if booking.Status != models.StatusCompleted {
		return nil, utils.InvalidStateErr("only completed bookings can be reviewed")
	}

	exists, err := s.Repo.ExistsForBooking(ctx, in.BookingID)
	if err != nil {
		return nil, utils.UpstreamErr("failed to check existing review", err)
	}
	if exists {
		return nil, utils.ConflictErr("booking already reviewed")
	}

	review := &models.Review{
		ID:          uuid.New().String(),
		BookingID:   in.BookingID,
		ClientID:    clientID,
		TherapistID: booking.TherapistID,
		Rating:      in.Rating,
		Comment:     in.Comment,
		IsPublic:    in.IsPublic,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.Repo.Insert(ctx, review); err != nil {
		if errors.Is(err, reviewRepo.ErrDuplicate) {
			return nil, utils.ConflictErr("booking already reviewed")
		}
		return nil, utils.UpstreamErr("failed to create review", err)
	}

	s.recomputeRating(ctx, booking.TherapistID)
	return review, nil
}

// recomputeRating refreshes the therapist's rating average (one decimal) and
// count from public reviews. Zero public reviews leaves stored values as-is.
// Failures are logged; the review itself is already persisted.
func (s *DefaultReviewService) recomputeRating(ctx context.Context, therapistID string) {
	avg, count, err := s.Repo.AggregatePublicRating(ctx, therapistID)
	if err != nil {
		utils.GetLogger().Warn("rating recompute failed",
			zap.String("therapist_id", therapistID), zap.Error(err))
		return
	}
	if count == 0 {
		return
	}
	rounded := math.Round(avg*10) / 10
	if err := s.TherapistRepo.UpdateRating(ctx, therapistID, rounded, count); err != nil {
		utils.GetLogger().Warn("rating update failed",
			zap.String("therapist_id", therapistID), zap.Error(err))
	}
}

// ListTherapistReviews returns a therapist's public reviews, newest first.
func (s *DefaultReviewService) ListTherapistReviews(ctx context.Context, therapistID string, limit, offset int64) ([]models.Review, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	reviews, err := s.Repo.ListPublicByTherapist(ctx, therapistID, limit, offset)
	if err != nil {
		return nil, utils.UpstreamErr("failed to list reviews", err)
	}
	return reviews, nil
}
