package therapistRepo

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

// MongoTherapistRepo implements TherapistRepository using MongoDB.
type MongoTherapistRepo struct {
	coll          *mongo.Collection
	treatmentColl *mongo.Collection
}

// NewMongoTherapistRepo constructs a new instance of MongoTherapistRepo.
func NewMongoTherapistRepo() TherapistRepository {
	db := database.DB()
	repo := &MongoTherapistRepo{
		coll:          db.Collection("therapists"),
		treatmentColl: db.Collection("therapist_services"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		utils.GetLogger().Warn("failed to create therapist indexes", zap.Error(err))
	}
	return repo
}

// Create inserts a new therapist document.
func (repo *MongoTherapistRepo) Create(ctx context.Context, therapist *models.Therapist) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, therapist); err != nil {
		return fmt.Errorf("error creating therapist: %w", err)
	}
	return nil
}

// GetByID retrieves a therapist document by ID.
func (repo *MongoTherapistRepo) GetByID(ctx context.Context, therapistID string) (*models.Therapist, error) {
	return repo.findOne(ctx, bson.M{"id": therapistID})
}

// GetByUserID retrieves a therapist document by its owning user.
func (repo *MongoTherapistRepo) GetByUserID(ctx context.Context, userID string) (*models.Therapist, error) {
	return repo.findOne(ctx, bson.M{"user_id": userID})
}

func (repo *MongoTherapistRepo) findOne(ctx context.Context, filter bson.M) (*models.Therapist, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var therapist models.Therapist
	if err := repo.coll.FindOne(ctx, filter).Decode(&therapist); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching therapist: %w", err)
	}
	return &therapist, nil
}

// UpdateFields applies a partial update to a therapist document.
func (repo *MongoTherapistRepo) UpdateFields(ctx context.Context, therapistID string, fields map[string]interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	fields["updated_at"] = time.Now().UTC()
	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": therapistID}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("error updating therapist %s: %w", therapistID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateRating stores the recomputed rating aggregate.
func (repo *MongoTherapistRepo) UpdateRating(ctx context.Context, therapistID string, avg float64, count int) error {
	return repo.UpdateFields(ctx, therapistID, map[string]interface{}{
		"rating_avg":   avg,
		"rating_count": count,
	})
}

// ListVisible returns approved, available therapists.
func (repo *MongoTherapistRepo) ListVisible(ctx context.Context, limit, offset int64) ([]models.Therapist, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{
		"vetting_status": models.VettingApproved,
		"available":      true,
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "rating_avg", Value: -1}}).
		SetSkip(offset).
		SetLimit(limit)
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing therapists: %w", err)
	}
	defer cursor.Close(ctx)

	var therapists []models.Therapist
	for cursor.Next(ctx) {
		var t models.Therapist
		if err := cursor.Decode(&t); err != nil {
			return nil, fmt.Errorf("error decoding therapist: %w", err)
		}
		therapists = append(therapists, t)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return therapists, nil
}
