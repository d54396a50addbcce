package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"plenura/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the bookings collection and
// the slot-marker collection. The partial unique index on
// (therapist_id, scheduled_at) is the storage backstop against two active
// bookings starting at the identical instant; range overlaps are rejected by
// CreateExclusive, whose marker writes turn concurrent overlapping inserts
// into transaction write conflicts.
func (repo *MongoBookingRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys: bson.D{{Key: "therapist_id", Value: 1}, {Key: "scheduled_at", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("therapist_active_start_unique").
				SetPartialFilterExpression(bson.M{"status": bson.M{"$in": models.ActiveStatuses}}),
		},
		{
			Keys:    bson.D{{Key: "therapist_id", Value: 1}, {Key: "status", Value: 1}, {Key: "scheduled_at", Value: -1}},
			Options: options.Index().SetName("therapist_status_scheduled_idx"),
		},
		{
			Keys:    bson.D{{Key: "client_id", Value: 1}, {Key: "scheduled_at", Value: -1}},
			Options: options.Index().SetName("client_scheduled_idx"),
		},
	}

	_, err := repo.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}

	// One marker document per (therapist, day); the upsert in CreateExclusive
	// relies on this to never mint duplicates.
	_, err = repo.markers.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "therapist_id", Value: 1}, {Key: "day", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("therapist_day_unique"),
	})
	if err != nil {
		return fmt.Errorf("failed to create slot marker index: %w", err)
	}
	return nil
}
