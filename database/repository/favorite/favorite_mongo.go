package favoriteRepo

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

// ErrDuplicate is returned when a client saves the same therapist twice.
var ErrDuplicate = errors.New("therapist already favorited")

// ErrNotFound is returned when a favorite does not exist.
var ErrNotFound = errors.New("favorite not found")

// FavoriteRepository persists client favorites. Uniqueness of the
// (client, therapist) pair is enforced by the storage layer.
type FavoriteRepository interface {
	Insert(ctx context.Context, favorite *models.Favorite) error
	Remove(ctx context.Context, clientID, therapistID string) error
	ListByClient(ctx context.Context, clientID string) ([]models.Favorite, error)
}

// MongoFavoriteRepo implements FavoriteRepository using MongoDB.
type MongoFavoriteRepo struct {
	coll *mongo.Collection
}

// NewMongoFavoriteRepo constructs a new instance of MongoFavoriteRepo.
func NewMongoFavoriteRepo() FavoriteRepository {
	repo := &MongoFavoriteRepo{
		coll: database.DB().Collection("favorites"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		utils.GetLogger().Warn("failed to create favorite indexes", zap.Error(err))
	}
	return repo
}

// EnsureIndexes creates the unique pair index backing duplicate detection.
func (repo *MongoFavoriteRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{
			Keys:    bson.D{{Key: "client_id", Value: 1}, {Key: "therapist_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_client_therapist"),
		},
	}
	if _, err := repo.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create favorite indexes: %w", err)
	}
	return nil
}

// Insert stores a favorite; a duplicate pair returns ErrDuplicate.
func (repo *MongoFavoriteRepo) Insert(ctx context.Context, favorite *models.Favorite) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, favorite); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("error creating favorite: %w", err)
	}
	return nil
}

// Remove deletes the favorite pair.
func (repo *MongoFavoriteRepo) Remove(ctx context.Context, clientID, therapistID string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := repo.coll.DeleteOne(ctx, bson.M{"client_id": clientID, "therapist_id": therapistID})
	if err != nil {
		return fmt.Errorf("error removing favorite: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByClient returns all favorites saved by a client.
func (repo *MongoFavoriteRepo) ListByClient(ctx context.Context, clientID string) ([]models.Favorite, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := repo.coll.Find(ctx, bson.M{"client_id": clientID})
	if err != nil {
		return nil, fmt.Errorf("error listing favorites: %w", err)
	}
	defer cursor.Close(ctx)

	var favorites []models.Favorite
	for cursor.Next(ctx) {
		var f models.Favorite
		if err := cursor.Decode(&f); err != nil {
			return nil, fmt.Errorf("error decoding favorite: %w", err)
		}
		favorites = append(favorites, f)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return favorites, nil
}
