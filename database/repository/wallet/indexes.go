package walletRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the unique wallet-per-user index and the ledger
// query index.
func (repo *MongoWalletRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	walletIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := repo.walletColl.Indexes().CreateMany(ctx, walletIndexes); err != nil {
		return fmt.Errorf("failed to create wallet indexes: %w", err)
	}

	txIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}, Options: options.Index().SetName("user_ledger_idx")},
	}
	if _, err := repo.txColl.Indexes().CreateMany(ctx, txIndexes); err != nil {
		return fmt.Errorf("failed to create wallet transaction indexes: %w", err)
	}
	return nil
}
