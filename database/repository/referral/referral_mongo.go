package referralRepo

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

// ErrNotFound is returned when a referral code does not exist.
var ErrNotFound = errors.New("referral code not found")

// ErrAlreadyRedeemed is returned when a user has already redeemed a code.
var ErrAlreadyRedeemed = errors.New("referral already redeemed by user")

// ReferralRepository persists referral codes and redemptions.
type ReferralRepository interface {
	GetCodeByUser(ctx context.Context, userID string) (*models.ReferralCode, error)
	GetCodeByCode(ctx context.Context, code string) (*models.ReferralCode, error)
	InsertCode(ctx context.Context, code *models.ReferralCode) error

	// InsertRedemption records a redemption; a second redemption by the same
	// referred user returns ErrAlreadyRedeemed.
	InsertRedemption(ctx context.Context, redemption *models.ReferralRedemption) error
	CountRedemptions(ctx context.Context, codeID string) (int64, error)
}

// MongoReferralRepo implements ReferralRepository using MongoDB.
type MongoReferralRepo struct {
	codeColl       *mongo.Collection
	redemptionColl *mongo.Collection
}

// NewMongoReferralRepo constructs a new instance of MongoReferralRepo.
func NewMongoReferralRepo() ReferralRepository {
	db := database.DB()
	repo := &MongoReferralRepo{
		codeColl:       db.Collection("referral_codes"),
		redemptionColl: db.Collection("referral_redemptions"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		utils.GetLogger().Warn("failed to create referral indexes", zap.Error(err))
	}
	return repo
}

// EnsureIndexes creates unique indexes on codes and redeeming users.
func (repo *MongoReferralRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	codeIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := repo.codeColl.Indexes().CreateMany(ctx, codeIndexes); err != nil {
		return fmt.Errorf("failed to create referral code indexes: %w", err)
	}

	redemptionIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "referred_id", Value: 1}}, Options: options.Index().SetUnique(true).SetName("unique_referred_user")},
	}
	if _, err := repo.redemptionColl.Indexes().CreateMany(ctx, redemptionIndexes); err != nil {
		return fmt.Errorf("failed to create referral redemption indexes: %w", err)
	}
	return nil
}

// GetCodeByUser retrieves the code owned by a user.
func (repo *MongoReferralRepo) GetCodeByUser(ctx context.Context, userID string) (*models.ReferralCode, error) {
	return repo.findCode(ctx, bson.M{"user_id": userID})
}

// GetCodeByCode retrieves a code by its shareable string.
func (repo *MongoReferralRepo) GetCodeByCode(ctx context.Context, code string) (*models.ReferralCode, error) {
	return repo.findCode(ctx, bson.M{"code": code})
}

func (repo *MongoReferralRepo) findCode(ctx context.Context, filter bson.M) (*models.ReferralCode, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var code models.ReferralCode
	if err := repo.codeColl.FindOne(ctx, filter).Decode(&code); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching referral code: %w", err)
	}
	return &code, nil
}

// InsertCode stores a new referral code.
func (repo *MongoReferralRepo) InsertCode(ctx context.Context, code *models.ReferralCode) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := repo.codeColl.InsertOne(ctx, code); err != nil {
		return fmt.Errorf("error creating referral code: %w", err)
	}
	return nil
}

// InsertRedemption records a redemption.
func (repo *MongoReferralRepo) InsertRedemption(ctx context.Context, redemption *models.ReferralRedemption) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := repo.redemptionColl.InsertOne(ctx, redemption); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrAlreadyRedeemed
		}
		return fmt.Errorf("error creating referral redemption: %w", err)
	}
	return nil
}

// CountRedemptions returns how many signups a code has produced.
func (repo *MongoReferralRepo) CountRedemptions(ctx context.Context, codeID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	n, err := repo.redemptionColl.CountDocuments(ctx, bson.M{"code_id": codeID})
	if err != nil {
		return 0, fmt.Errorf("error counting redemptions: %w", err)
	}
	return n, nil
}
