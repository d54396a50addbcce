package practiceRepo

import (
	"context"
	"errors"
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

// ErrNotFound is returned when a practice does not exist.
var ErrNotFound = errors.New("practice not found")

// PracticeRepository persists multi-therapist practices.
type PracticeRepository interface {
	Create(ctx context.Context, practice *models.Practice) error
	GetByID(ctx context.Context, practiceID string) (*models.Practice, error)
	AddTherapist(ctx context.Context, practiceID, therapistID string) error
	RemoveTherapist(ctx context.Context, practiceID, therapistID string) error
}

// MongoPracticeRepo implements PracticeRepository using MongoDB.
type MongoPracticeRepo struct {
	coll *mongo.Collection
}

// NewMongoPracticeRepo constructs a new instance of MongoPracticeRepo.
func NewMongoPracticeRepo() PracticeRepository {
	repo := &MongoPracticeRepo{
		coll: database.DB().Collection("practices"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		utils.GetLogger().Warn("failed to create practice indexes", zap.Error(err))
	}
	return repo
}

// EnsureIndexes creates the indexes the practice queries rely on.
func (repo *MongoPracticeRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	_, err := repo.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "owner_user_id", Value: 1}},
			Options: options.Index().SetName("owner_idx"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create practice indexes: %w", err)
	}
	return nil
}

// Create inserts a new practice document.
func (repo *MongoPracticeRepo) Create(ctx context.Context, practice *models.Practice) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, practice); err != nil {
		return fmt.Errorf("error creating practice: %w", err)
	}
	return nil
}

// GetByID retrieves a practice document by ID.
func (repo *MongoPracticeRepo) GetByID(ctx context.Context, practiceID string) (*models.Practice, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var practice models.Practice
	if err := repo.coll.FindOne(ctx, bson.M{"id": practiceID}).Decode(&practice); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching practice %s: %w", practiceID, err)
	}
	return &practice, nil
}

// AddTherapist appends a therapist to the practice roster.
func (repo *MongoPracticeRepo) AddTherapist(ctx context.Context, practiceID, therapistID string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := repo.coll.UpdateOne(ctx,
		bson.M{"id": practiceID},
		bson.M{"$addToSet": bson.M{"therapist_ids": therapistID}},
	)
	if err != nil {
		return fmt.Errorf("error adding therapist to practice %s: %w", practiceID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// RemoveTherapist removes a therapist from the practice roster.
func (repo *MongoPracticeRepo) RemoveTherapist(ctx context.Context, practiceID, therapistID string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := repo.coll.UpdateOne(ctx,
		bson.M{"id": practiceID},
		bson.M{"$pull": bson.M{"therapist_ids": therapistID}},
	)
	if err != nil {
		return fmt.Errorf("error removing therapist from practice %s: %w", practiceID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
