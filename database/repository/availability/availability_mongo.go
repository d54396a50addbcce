package availabilityRepo

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

// MongoAvailabilityRepo implements AvailabilityRepository using MongoDB.
type MongoAvailabilityRepo struct {
	rulesColl   *mongo.Collection
	blockedColl *mongo.Collection
}

// NewMongoAvailabilityRepo constructs a new instance of MongoAvailabilityRepo.
func NewMongoAvailabilityRepo() AvailabilityRepository {
	db := database.DB()
	repo := &MongoAvailabilityRepo{
		rulesColl:   db.Collection("availability_rules"),
		blockedColl: db.Collection("blocked_periods"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		utils.GetLogger().Warn("failed to create availability indexes", zap.Error(err))
	}
	return repo
}

// GetRules retrieves all weekly rules for a therapist, ordered by weekday
// then start time.
func (repo *MongoAvailabilityRepo) GetRules(ctx context.Context, therapistID string) ([]models.AvailabilityRule, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "weekday", Value: 1}, {Key: "start_minute", Value: 1}})
	cursor, err := repo.rulesColl.Find(ctx, bson.M{"therapist_id": therapistID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching availability rules: %w", err)
	}
	defer cursor.Close(ctx)

	var rules []models.AvailabilityRule
	for cursor.Next(ctx) {
		var r models.AvailabilityRule
		if err := cursor.Decode(&r); err != nil {
			return nil, fmt.Errorf("error decoding availability rule: %w", err)
		}
		rules = append(rules, r)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return rules, nil
}

// ReplaceRules deletes all existing rules for the therapist and inserts the
// new set atomically, so a read-back yields exactly the submitted set.
func (repo *MongoAvailabilityRepo) ReplaceRules(ctx context.Context, therapistID string, rules []models.AvailabilityRule) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	client := repo.rulesColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		if _, err := repo.rulesColl.DeleteMany(sc, bson.M{"therapist_id": therapistID}); err != nil {
			return fmt.Errorf("delete existing rules failed: %w", err)
		}
		if len(rules) == 0 {
			return nil
		}
		docs := make([]interface{}, len(rules))
		for i := range rules {
			docs[i] = rules[i]
		}
		if _, err := repo.rulesColl.InsertMany(sc, docs); err != nil {
			return fmt.Errorf("insert rules failed: %w", err)
		}
		return nil
	}

	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
}

// AddBlockedPeriod inserts a new blocked period document.
func (repo *MongoAvailabilityRepo) AddBlockedPeriod(ctx context.Context, blocked *models.BlockedPeriod) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := repo.blockedColl.InsertOne(ctx, blocked); err != nil {
		return fmt.Errorf("error creating blocked period: %w", err)
	}
	return nil
}

// RemoveBlockedPeriod removes a blocked period owned by the therapist.
func (repo *MongoAvailabilityRepo) RemoveBlockedPeriod(ctx context.Context, therapistID, blockedID string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := repo.blockedColl.DeleteOne(ctx, bson.M{"id": blockedID, "therapist_id": therapistID})
	if err != nil {
		return fmt.Errorf("error removing blocked period %s: %w", blockedID, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ListBlockedPeriods returns all blocked periods for a therapist.
func (repo *MongoAvailabilityRepo) ListBlockedPeriods(ctx context.Context, therapistID string) ([]models.BlockedPeriod, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return repo.findBlocked(ctx, bson.M{"therapist_id": therapistID})
}

// ListBlockedCovering returns blocked periods containing the given date.
func (repo *MongoAvailabilityRepo) ListBlockedCovering(ctx context.Context, therapistID, date string) ([]models.BlockedPeriod, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{
		"therapist_id": therapistID,
		"start_date":   bson.M{"$lte": date},
		"end_date":     bson.M{"$gte": date},
	}
	return repo.findBlocked(ctx, filter)
}

func (repo *MongoAvailabilityRepo) findBlocked(ctx context.Context, filter bson.M) ([]models.BlockedPeriod, error) {
	cursor, err := repo.blockedColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching blocked periods: %w", err)
	}
	defer cursor.Close(ctx)

	var blocked []models.BlockedPeriod
	for cursor.Next(ctx) {
		var b models.BlockedPeriod
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("error decoding blocked period: %w", err)
		}
		blocked = append(blocked, b)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return blocked, nil
}
