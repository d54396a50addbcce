package walletRepo

import (
	"context"
	"errors"

	"plenura/models"
)

// ErrInsufficientFunds is returned when a debit would overdraw the wallet.
var ErrInsufficientFunds = errors.New("insufficient wallet balance")

// WalletRepository persists wallet balances and their transaction ledger.
type WalletRepository interface {
	// GetOrCreate returns the user's wallet, creating an empty one on first use.
	GetOrCreate(ctx context.Context, userID string) (*models.Wallet, error)

	// Debit atomically subtracts amountCents from the balance and records the
	// ledger entry; returns ErrInsufficientFunds when the balance is short.
	Debit(ctx context.Context, userID string, amountCents int64, tx *models.WalletTransaction) error

	// Credit atomically adds amountCents and records the ledger entry.
	Credit(ctx context.Context, userID string, amountCents int64, tx *models.WalletTransaction) error

	ListTransactions(ctx context.Context, userID string, limit, offset int64) ([]models.WalletTransaction, error)
}
