package reviewRepo

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

// MongoReviewRepo implements ReviewRepository using MongoDB.
type MongoReviewRepo struct {
	coll *mongo.Collection
}

// NewMongoReviewRepo constructs a new instance of MongoReviewRepo.
func NewMongoReviewRepo() ReviewRepository {
	repo := &MongoReviewRepo{
		coll: database.DB().Collection("reviews"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		utils.GetLogger().Warn("failed to create review indexes", zap.Error(err))
	}
	return repo
}

// EnsureIndexes creates the unique booking_id index that enforces the
// one-review-per-booking rule at the storage layer.
func (repo *MongoReviewRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "booking_id", Value: 1}}, Options: options.Index().SetUnique(true).SetName("unique_booking_review")},
		{Keys: bson.D{{Key: "therapist_id", Value: 1}, {Key: "is_public", Value: 1}}, Options: options.Index().SetName("therapist_public_idx")},
	}
	if _, err := repo.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create review indexes: %w", err)
	}
	return nil
}

// Insert stores the review.
func (repo *MongoReviewRepo) Insert(ctx context.Context, review *models.Review) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, review); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("error creating review: %w", err)
	}
	return nil
}

// ExistsForBooking reports whether a review already exists for the booking.
func (repo *MongoReviewRepo) ExistsForBooking(ctx context.Context, bookingID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	n, err := repo.coll.CountDocuments(ctx, bson.M{"booking_id": bookingID})
	if err != nil {
		return false, fmt.Errorf("error checking review existence: %w", err)
	}
	return n > 0, nil
}

// ListPublicByTherapist returns a therapist's public reviews, newest first.
func (repo *MongoReviewRepo) ListPublicByTherapist(ctx context.Context, therapistID string, limit, offset int64) ([]models.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{"therapist_id": therapistID, "is_public": true}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(offset).
		SetLimit(limit)
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	for cursor.Next(ctx) {
		var r models.Review
		if err := cursor.Decode(&r); err != nil {
			return nil, fmt.Errorf("error decoding review: %w", err)
		}
		reviews = append(reviews, r)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return reviews, nil
}

// AggregatePublicRating averages rating over public reviews for a therapist.
func (repo *MongoReviewRepo) AggregatePublicRating(ctx context.Context, therapistID string) (float64, int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"therapist_id": therapistID, "is_public": true}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"avg":   bson.M{"$avg": "$rating"},
			"count": bson.M{"$sum": 1},
		}}},
	}
	cursor, err := repo.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, fmt.Errorf("error aggregating ratings: %w", err)
	}
	defer cursor.Close(ctx)

	var result struct {
		Avg   float64 `bson:"avg"`
		Count int     `bson:"count"`
	}
	if cursor.Next(ctx) {
		if err := cursor.Decode(&result); err != nil {
			return 0, 0, fmt.Errorf("error decoding rating aggregate: %w", err)
		}
	}
	if err := cursor.Err(); err != nil {
		return 0, 0, fmt.Errorf("cursor error: %w", err)
	}
	return result.Avg, result.Count, nil
}
