package walletRepo

import (
	"context"
	"fmt"
	"time"

	"plenura/database"
	"plenura/models"
	"plenura/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const queryTimeout = 5 * time.Second

// MongoWalletRepo implements WalletRepository using MongoDB.
type MongoWalletRepo struct {
	walletColl *mongo.Collection
	txColl     *mongo.Collection
}

// NewMongoWalletRepo constructs a new instance of MongoWalletRepo.
func NewMongoWalletRepo() WalletRepository {
	db := database.DB()
	repo := &MongoWalletRepo{
		walletColl: db.Collection("wallets"),
		txColl:     db.Collection("wallet_transactions"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		utils.GetLogger().Warn("failed to create wallet indexes", zap.Error(err))
	}
	return repo
}

// GetOrCreate returns the user's wallet, creating an empty one on first use.
func (repo *MongoWalletRepo) GetOrCreate(ctx context.Context, userID string) (*models.Wallet, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	now := time.Now().UTC()
	filter := bson.M{"user_id": userID}
	update := bson.M{
		"$setOnInsert": bson.M{
			"id":            uuid.New().String(),
			"user_id":       userID,
			"balance_cents": int64(0),
			"updated_at":    now,
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var wallet models.Wallet
	if err := repo.walletColl.FindOneAndUpdate(ctx, filter, update, opts).Decode(&wallet); err != nil {
		return nil, fmt.Errorf("error fetching wallet for user %s: %w", userID, err)
	}
	return &wallet, nil
}

// Debit subtracts from the balance only when funds suffice, then records the
// ledger entry in the same transaction.
func (repo *MongoWalletRepo) Debit(ctx context.Context, userID string, amountCents int64, tx *models.WalletTransaction) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	client := repo.walletColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		filter := bson.M{
			"user_id":       userID,
			"balance_cents": bson.M{"$gte": amountCents},
		}
		update := bson.M{
			"$inc": bson.M{"balance_cents": -amountCents},
			"$set": bson.M{"updated_at": time.Now().UTC()},
		}
		res, err := repo.walletColl.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("wallet debit failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrInsufficientFunds
		}
		if _, err := repo.txColl.InsertOne(sc, tx); err != nil {
			return fmt.Errorf("ledger insert failed: %w", err)
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

// Credit adds to the balance and records the ledger entry.
func (repo *MongoWalletRepo) Credit(ctx context.Context, userID string, amountCents int64, tx *models.WalletTransaction) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := repo.GetOrCreate(ctx, userID); err != nil {
		return err
	}

	client := repo.walletColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		update := bson.M{
			"$inc": bson.M{"balance_cents": amountCents},
			"$set": bson.M{"updated_at": time.Now().UTC()},
		}
		if _, err := repo.walletColl.UpdateOne(sc, bson.M{"user_id": userID}, update); err != nil {
			return fmt.Errorf("wallet credit failed: %w", err)
		}
		if _, err := repo.txColl.InsertOne(sc, tx); err != nil {
			return fmt.Errorf("ledger insert failed: %w", err)
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

// ListTransactions returns the user's ledger entries, newest first.
func (repo *MongoWalletRepo) ListTransactions(ctx context.Context, userID string, limit, offset int64) ([]models.WalletTransaction, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(offset).
		SetLimit(limit)
	cursor, err := repo.txColl.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing wallet transactions: %w", err)
	}
	defer cursor.Close(ctx)

	var txs []models.WalletTransaction
	for cursor.Next(ctx) {
		var t models.WalletTransaction
		if err := cursor.Decode(&t); err != nil {
			return nil, fmt.Errorf("error decoding wallet transaction: %w", err)
		}
		txs = append(txs, t)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return txs, nil
}
