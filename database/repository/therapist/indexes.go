package therapistRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the therapist profile and treatment indexes.
func (repo *MongoTherapistRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	profileIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "vetting_status", Value: 1}, {Key: "available", Value: 1}, {Key: "rating_avg", Value: -1}}, Options: options.Index().SetName("marketplace_idx")},
	}
	if _, err := repo.coll.Indexes().CreateMany(ctx, profileIndexes); err != nil {
		return fmt.Errorf("failed to create therapist indexes: %w", err)
	}

	treatmentIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "therapist_id", Value: 1}, {Key: "active", Value: 1}}, Options: options.Index().SetName("therapist_active_idx")},
	}
	if _, err := repo.treatmentColl.Indexes().CreateMany(ctx, treatmentIndexes); err != nil {
		return fmt.Errorf("failed to create treatment indexes: %w", err)
	}
	return nil
}
