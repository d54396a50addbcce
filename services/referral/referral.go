package referral

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"plenura/config"
	referralRepo "plenura/database/repository/referral"
	"plenura/models"
	"plenura/services/wallet"
	"plenura/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReferralService manages invite codes and rewards both sides of a
// successful referral with a wallet credit.
type ReferralService interface {
	// GetOrCreateCode returns the user's invite code, minting one on first use.
	GetOrCreateCode(ctx context.Context, userID string) (*models.ReferralCode, error)

	// Apply redeems a code on behalf of a newly signed-up user and credits
	// both wallets. A user can redeem at most one code, once.
	Apply(ctx context.Context, code, newUserID string) (*models.ReferralRedemption, error)
}

// DefaultReferralService implements ReferralService.
type DefaultReferralService struct {
	Repo   referralRepo.ReferralRepository
	Wallet wallet.WalletService
}

// codeAlphabet omits ambiguous characters (0/O, 1/I/L).
const codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

func newCode() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf), nil
}

func (s *DefaultReferralService) GetOrCreateCode(ctx context.Context, userID string) (*models.ReferralCode, error) {
	existing, err := s.Repo.GetCodeByUser(ctx, userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, referralRepo.ErrNotFound) {
		return nil, utils.UpstreamErr("failed to load referral code", err)
	}

	raw, err := newCode()
	if err != nil {
		return nil, utils.UpstreamErr("failed to generate referral code", err)
	}
	code := &models.ReferralCode{
		ID:        uuid.New().String(),
		UserID:    userID,
		Code:      raw,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Repo.InsertCode(ctx, code); err != nil {
		// A concurrent request may have minted one already; fall back to it.
		if existing, getErr := s.Repo.GetCodeByUser(ctx, userID); getErr == nil {
			return existing, nil
		}
		return nil, utils.UpstreamErr("failed to create referral code", err)
	}
	return code, nil
}

func (s *DefaultReferralService) Apply(ctx context.Context, code, newUserID string) (*models.ReferralRedemption, error) {
	if code == "" {
		return nil, utils.InvalidInputErr("referral code is required")
	}
	refCode, err := s.Repo.GetCodeByCode(ctx, code)
	if err != nil {
		if errors.Is(err, referralRepo.ErrNotFound) {
			return nil, utils.NotFoundErr("referral code")
		}
		return nil, utils.UpstreamErr("failed to load referral code", err)
	}
	if refCode.UserID == newUserID {
		return nil, utils.InvalidInputErr("cannot redeem your own referral code")
	}

	creditCents := config.AppConfig.ReferralCreditCents
	redemption := &models.ReferralRedemption{
		ID:          uuid.New().String(),
		CodeID:      refCode.ID,
		ReferrerID:  refCode.UserID,
		ReferredID:  newUserID,
		CreditCents: creditCents,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.Repo.InsertRedemption(ctx, redemption); err != nil {
		if errors.Is(err, referralRepo.ErrAlreadyRedeemed) {
			return nil, utils.ConflictErr("referral already redeemed")
		}
		return nil, utils.UpstreamErr("failed to record redemption", err)
	}

	// Credits are best-effort after the redemption record; a failed credit is
	// logged for reconciliation rather than unwinding the redemption.
	reference := fmt.Sprintf("referral:%s", redemption.ID)
	if err := s.Wallet.Credit(ctx, refCode.UserID, creditCents, models.TxReferralCredit, reference); err != nil {
		utils.GetLogger().Error("failed to credit referrer",
			zap.String("redemptionID", redemption.ID),
			zap.Error(err))
	}
	if err := s.Wallet.Credit(ctx, newUserID, creditCents, models.TxReferralCredit, reference); err != nil {
		utils.GetLogger().Error("failed to credit referred user",
			zap.String("redemptionID", redemption.ID),
			zap.Error(err))
	}

	utils.GetLogger().Info("referral redeemed",
		zap.String("referrerID", refCode.UserID),
		zap.String("referredID", newUserID),
		zap.Int64("creditCents", creditCents))
	return redemption, nil
}
