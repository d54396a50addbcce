package reviewRepo

import (
	"context"
	"errors"

	"plenura/models"
)

// ErrDuplicate is returned when a review already exists for a booking.
var ErrDuplicate = errors.New("review already exists for booking")

// ReviewRepository persists reviews and serves the rating aggregate.
type ReviewRepository interface {
	// Insert stores the review; a second review for the same booking returns
	// ErrDuplicate.
	Insert(ctx context.Context, review *models.Review) error

	ExistsForBooking(ctx context.Context, bookingID string) (bool, error)
	ListPublicByTherapist(ctx context.Context, therapistID string, limit, offset int64) ([]models.Review, error)

	// AggregatePublicRating computes the average rating and count across a
	// therapist's public reviews. count == 0 means no public reviews exist.
	AggregatePublicRating(ctx context.Context, therapistID string) (avg float64, count int, err error)
}
