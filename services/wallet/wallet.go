package wallet

import (
	"context"
	"errors"
	"time"

	bookingRepo "plenura/database/repository/booking"
	walletRepo "plenura/database/repository/wallet"
	"plenura/models"
	"plenura/utils"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// WalletService exposes the client wallet: balance, ledger, top-ups via
// Stripe, and paying for a booking out of the balance.
type WalletService interface {
	GetBalance(ctx context.Context, userID string) (*models.Wallet, error)
	ListTransactions(ctx context.Context, userID string, limit, offset int64) ([]models.WalletTransaction, error)

	// TopUpIntent creates a Stripe PaymentIntent for the given amount and
	// returns its client secret for the caller to confirm.
	TopUpIntent(ctx context.Context, userID string, amountCents int64, currency string) (string, error)

	// PayBooking debits the booking price from the client's wallet and moves
	// the booking's escrow to held.
	PayBooking(ctx context.Context, userID, bookingID string) error

	// Credit adds funds to a wallet with a ledger entry; used by referrals
	// and refunds.
	Credit(ctx context.Context, userID string, amountCents int64, txType, reference string) error
}

// DefaultWalletService implements WalletService.
type DefaultWalletService struct {
	Repo        walletRepo.WalletRepository
	BookingRepo bookingRepo.BookingRepository
}

func (s *DefaultWalletService) GetBalance(ctx context.Context, userID string) (*models.Wallet, error) {
	w, err := s.Repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, utils.UpstreamErr("failed to load wallet", err)
	}
	return w, nil
}

func (s *DefaultWalletService) ListTransactions(ctx context.Context, userID string, limit, offset int64) ([]models.WalletTransaction, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	txs, err := s.Repo.ListTransactions(ctx, userID, limit, offset)
	if err != nil {
		return nil, utils.UpstreamErr("failed to list wallet transactions", err)
	}
	return txs, nil
}

func (s *DefaultWalletService) TopUpIntent(ctx context.Context, userID string, amountCents int64, currency string) (string, error) {
	if amountCents <= 0 {
		return "", utils.InvalidInputErr("top-up amount must be positive")
	}
	if currency == "" {
		currency = string(stripe.CurrencyEUR)
	}
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(currency),
		Metadata: map[string]string{
			"user_id": userID,
			"purpose": "wallet_top_up",
		},
	}
	params.Context = ctx
	intent, err := paymentintent.New(params)
	if err != nil {
		return "", utils.UpstreamErr("failed to create payment intent", err)
	}
	utils.GetLogger().Info("wallet top-up intent created",
		zap.String("userID", userID),
		zap.Int64("amountCents", amountCents))
	return intent.ClientSecret, nil
}

func (s *DefaultWalletService) PayBooking(ctx context.Context, userID, bookingID string) error {
	booking, err := s.BookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return utils.NotFoundErr("booking")
		}
		return utils.UpstreamErr("failed to load booking", err)
	}
	if booking.ClientID != userID {
		return utils.UnauthorizedErr("booking belongs to another client")
	}
	if booking.EscrowStatus != models.EscrowUnpaid {
		return utils.InvalidStateErr("booking is already paid")
	}
	if booking.Status != models.StatusPending && booking.Status != models.StatusConfirmed {
		return utils.InvalidStateErr("booking is not payable in its current status")
	}

	entry := &models.WalletTransaction{
		ID:          uuid.New().String(),
		UserID:      userID,
		Type:        models.TxBookingPayment,
		AmountCents: -booking.PriceCents,
		BookingID:   booking.ID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.Repo.Debit(ctx, userID, booking.PriceCents, entry); err != nil {
		if errors.Is(err, walletRepo.ErrInsufficientFunds) {
			return utils.InvalidStateErr("insufficient wallet balance")
		}
		return utils.UpstreamErr("failed to debit wallet", err)
	}
	if err := s.BookingRepo.UpdateStatus(ctx, booking.ID, map[string]interface{}{
		"escrow_status": models.EscrowHeld,
	}); err != nil {
		// The debit landed but the escrow flip did not; refund so the ledger
		// stays consistent with the booking.
		refund := &models.WalletTransaction{
			ID:          uuid.New().String(),
			UserID:      userID,
			Type:        models.TxRefund,
			AmountCents: booking.PriceCents,
			BookingID:   booking.ID,
			CreatedAt:   time.Now().UTC(),
		}
		if creditErr := s.Repo.Credit(ctx, userID, booking.PriceCents, refund); creditErr != nil {
			utils.GetLogger().Error("failed to refund after escrow update failure",
				zap.String("bookingID", booking.ID),
				zap.Error(creditErr))
		}
		return utils.UpstreamErr("failed to mark booking paid", err)
	}
	utils.GetLogger().Info("booking paid from wallet",
		zap.String("bookingID", booking.ID),
		zap.String("userID", userID),
		zap.Int64("priceCents", booking.PriceCents))
	return nil
}

func (s *DefaultWalletService) Credit(ctx context.Context, userID string, amountCents int64, txType, reference string) error {
	if amountCents <= 0 {
		return utils.InvalidInputErr("credit amount must be positive")
	}
	entry := &models.WalletTransaction{
		ID:          uuid.New().String(),
		UserID:      userID,
		Type:        txType,
		AmountCents: amountCents,
		Reference:   reference,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.Repo.Credit(ctx, userID, amountCents, entry); err != nil {
		return utils.UpstreamErr("failed to credit wallet", err)
	}
	return nil
}
