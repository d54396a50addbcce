package availabilityRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the per-therapist lookup indexes for rules and
// blocked periods.
func (repo *MongoAvailabilityRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ruleIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "therapist_id", Value: 1}, {Key: "weekday", Value: 1}}, Options: options.Index().SetName("therapist_weekday_idx")},
	}
	if _, err := repo.rulesColl.Indexes().CreateMany(ctx, ruleIndexes); err != nil {
		return fmt.Errorf("failed to create availability rule indexes: %w", err)
	}

	blockedIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "therapist_id", Value: 1}, {Key: "start_date", Value: 1}}, Options: options.Index().SetName("therapist_blocked_idx")},
	}
	if _, err := repo.blockedColl.Indexes().CreateMany(ctx, blockedIndexes); err != nil {
		return fmt.Errorf("failed to create blocked period indexes: %w", err)
	}
	return nil
}
