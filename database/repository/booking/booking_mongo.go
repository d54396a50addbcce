package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"plenura/database"
	"plenura/models"
	"plenura/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const queryTimeout = 5 * time.Second

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll    *mongo.Collection
	markers *mongo.Collection
}

// NewMongoBookingRepo constructs a new instance of MongoBookingRepo.
func NewMongoBookingRepo() BookingRepository {
	repo := &MongoBookingRepo{
		coll:    database.DB().Collection("bookings"),
		markers: database.DB().Collection("booking_slot_markers"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		utils.GetLogger().Warn("failed to create booking indexes", zap.Error(err))
	}
	return repo
}

// slotMarkerDays returns the UTC calendar days the range [start, end) touches.
func slotMarkerDays(start, end time.Time) []string {
	start = start.UTC()
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	days := []string{day.Format("2006-01-02")}
	for day = day.AddDate(0, 0, 1); day.Before(end.UTC()); day = day.AddDate(0, 0, 1) {
		days = append(days, day.Format("2006-01-02"))
	}
	return days
}

// CreateExclusive inserts the booking inside a transaction after verifying no
// pending/confirmed booking for the same therapist overlaps the new range.
//
// Mongo transactions are snapshot-isolated, so the overlap count alone would
// not serialize two concurrent writers with distinct start instants. Each
// transaction therefore first bumps the per-(therapist, day) marker document
// for every day the range touches: concurrent writers for the same day hit a
// write-write conflict on the marker, the loser's transaction is retried by
// the driver, and its re-run count then sees the winner's committed booking.
// The partial unique index on (therapist_id, scheduled_at) remains as a
// backstop for identical start instants; duplicate-key is ErrSlotTaken too.
func (repo *MongoBookingRepo) CreateExclusive(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	client := repo.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		for _, day := range slotMarkerDays(booking.ScheduledAt, booking.ScheduledEndAt) {
			if _, err := repo.markers.UpdateOne(sc,
				bson.M{"therapist_id": booking.TherapistID, "day": day},
				bson.M{"$inc": bson.M{"rev": 1}},
				options.Update().SetUpsert(true),
			); err != nil {
				return nil, fmt.Errorf("slot marker write failed: %w", err)
			}
		}

		overlap := bson.M{
			"therapist_id":     booking.TherapistID,
			"status":           bson.M{"$in": models.ActiveStatuses},
			"scheduled_at":     bson.M{"$lt": booking.ScheduledEndAt},
			"scheduled_end_at": bson.M{"$gt": booking.ScheduledAt},
		}
		n, err := repo.coll.CountDocuments(sc, overlap)
		if err != nil {
			return nil, fmt.Errorf("overlap check failed: %w", err)
		}
		if n > 0 {
			return nil, ErrSlotTaken
		}
		if _, err := repo.coll.InsertOne(sc, booking); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, ErrSlotTaken
			}
			return nil, fmt.Errorf("insert booking failed: %w", err)
		}
		return nil, nil
	})
	return err
}

// GetByID retrieves a booking document by ID.
func (repo *MongoBookingRepo) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var booking models.Booking
	if err := repo.coll.FindOne(ctx, bson.M{"id": bookingID}).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching booking %s: %w", bookingID, err)
	}
	return &booking, nil
}

// UpdateStatus applies the given status fields to a booking document.
func (repo *MongoBookingRepo) UpdateStatus(ctx context.Context, bookingID string, fields map[string]interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": bookingID}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("error updating booking %s: %w", bookingID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetTherapistNotes updates the therapist-authored notes. This is the only
// mutation permitted on a completed booking.
func (repo *MongoBookingRepo) SetTherapistNotes(ctx context.Context, bookingID, notes string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := repo.coll.UpdateOne(ctx,
		bson.M{"id": bookingID},
		bson.M{"$set": bson.M{"therapist_notes": notes}},
	)
	if err != nil {
		return fmt.Errorf("error updating therapist notes for %s: %w", bookingID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ListActiveInRange returns pending/confirmed bookings intersecting [from, to).
func (repo *MongoBookingRepo) ListActiveInRange(ctx context.Context, therapistID string, from, to time.Time) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{
		"therapist_id":     therapistID,
		"status":           bson.M{"$in": models.ActiveStatuses},
		"scheduled_at":     bson.M{"$lt": to},
		"scheduled_end_at": bson.M{"$gt": from},
	}
	return repo.findBookings(ctx, filter, options.Find().SetSort(bson.D{{Key: "scheduled_at", Value: 1}}))
}

// ListByClient returns a client's bookings, newest first.
func (repo *MongoBookingRepo) ListByClient(ctx context.Context, clientID, status string, limit, offset int64) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{"client_id": clientID}
	if status != "" {
		filter["status"] = status
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "scheduled_at", Value: -1}}).
		SetSkip(offset).
		SetLimit(limit)
	return repo.findBookings(ctx, filter, opts)
}

// ListByTherapist returns a therapist's bookings, newest first.
func (repo *MongoBookingRepo) ListByTherapist(ctx context.Context, therapistID, status string, limit, offset int64) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{"therapist_id": therapistID}
	if status != "" {
		filter["status"] = status
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "scheduled_at", Value: -1}}).
		SetSkip(offset).
		SetLimit(limit)
	return repo.findBookings(ctx, filter, opts)
}

// ListByTherapists returns bookings across a set of therapists; used by
// practice views.
func (repo *MongoBookingRepo) ListByTherapists(ctx context.Context, therapistIDs []string, limit, offset int64) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{"therapist_id": bson.M{"$in": therapistIDs}}
	opts := options.Find().
		SetSort(bson.D{{Key: "scheduled_at", Value: -1}}).
		SetSkip(offset).
		SetLimit(limit)
	return repo.findBookings(ctx, filter, opts)
}

// ListByStatuses returns all bookings for the therapist in the given statuses.
func (repo *MongoBookingRepo) ListByStatuses(ctx context.Context, therapistID string, statuses []string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{
		"therapist_id": therapistID,
		"status":       bson.M{"$in": statuses},
	}
	return repo.findBookings(ctx, filter, nil)
}

// ListEarnings returns confirmed/completed bookings ordered by scheduled time
// descending.
func (repo *MongoBookingRepo) ListEarnings(ctx context.Context, therapistID string, limit, offset int64) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{
		"therapist_id": therapistID,
		"status":       bson.M{"$in": []string{models.StatusConfirmed, models.StatusCompleted}},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "scheduled_at", Value: -1}}).
		SetSkip(offset).
		SetLimit(limit)
	return repo.findBookings(ctx, filter, opts)
}

func (repo *MongoBookingRepo) findBookings(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Booking, error) {
	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = repo.coll.Find(ctx, filter, opts)
	} else {
		cursor, err = repo.coll.Find(ctx, filter)
	}
	if err != nil {
		return nil, fmt.Errorf("error finding bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	for cursor.Next(ctx) {
		var b models.Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("error decoding booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return bookings, nil
}
