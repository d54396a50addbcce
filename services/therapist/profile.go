package therapist

import (
	"context"
	"errors"
	"time"

	therapistRepo "plenura/database/repository/therapist"
	"plenura/models"
	"plenura/utils"

	"github.com/google/uuid"
)

// Register creates the therapist profile on first therapist-role login.
// Profiles start unvetted on the free tier; they are never hard-deleted.
func (s *DefaultTherapistService) Register(ctx context.Context, userID, displayName string) (*models.Therapist, error) {
	existing, err := s.Repo.GetByUserID(ctx, userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, therapistRepo.ErrNotFound) {
		return nil, utils.UpstreamErr("failed to look up therapist", err)
	}

	now := time.Now().UTC()
	therapist := &models.Therapist{
		ID:               uuid.New().String(),
		UserID:           userID,
		DisplayName:      displayName,
		VettingStatus:    models.VettingPending,
		Available:        false,
		SubscriptionTier: models.TierFree,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.Repo.Create(ctx, therapist); err != nil {
		return nil, utils.UpstreamErr("failed to create therapist", err)
	}
	return therapist, nil
}

// GetProfile returns a therapist by ID.
func (s *DefaultTherapistService) GetProfile(ctx context.Context, therapistID string) (*models.Therapist, error) {
	therapist, err := s.Repo.GetByID(ctx, therapistID)
	if err != nil {
		if errors.Is(err, therapistRepo.ErrNotFound) {
			return nil, utils.NotFoundErr("therapist")
		}
		return nil, utils.UpstreamErr("failed to load therapist", err)
	}
	return therapist, nil
}

// GetByUserID returns the therapist profile owned by a user.
func (s *DefaultTherapistService) GetByUserID(ctx context.Context, userID string) (*models.Therapist, error) {
	therapist, err := s.Repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, therapistRepo.ErrNotFound) {
			return nil, utils.NotFoundErr("therapist")
		}
		return nil, utils.UpstreamErr("failed to load therapist", err)
	}
	return therapist, nil
}

// UpdateProfile applies the editable profile fields.
func (s *DefaultTherapistService) UpdateProfile(ctx context.Context, therapistID string, update ProfileUpdate) error {
	fields := map[string]interface{}{}
	if update.DisplayName != nil {
		if *update.DisplayName == "" {
			return utils.InvalidInputErr("display name cannot be empty")
		}
		fields["display_name"] = *update.DisplayName
	}
	if update.Bio != nil {
		fields["bio"] = *update.Bio
	}
	if len(fields) == 0 {
		return utils.InvalidInputErr("no fields to update")
	}
	return s.applyUpdate(ctx, therapistID, fields)
}

// SetAvailable toggles marketplace availability.
func (s *DefaultTherapistService) SetAvailable(ctx context.Context, therapistID string, available bool) error {
	return s.applyUpdate(ctx, therapistID, map[string]interface{}{"available": available})
}

// ListVisible returns approved, available therapists for marketplace search.
func (s *DefaultTherapistService) ListVisible(ctx context.Context, limit, offset int64) ([]models.Therapist, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	therapists, err := s.Repo.ListVisible(ctx, limit, offset)
	if err != nil {
		return nil, utils.UpstreamErr("failed to list therapists", err)
	}
	return therapists, nil
}

func (s *DefaultTherapistService) applyUpdate(ctx context.Context, therapistID string, fields map[string]interface{}) error {
	if err := s.Repo.UpdateFields(ctx, therapistID, fields); err != nil {
		if errors.Is(err, therapistRepo.ErrNotFound) {
			return utils.NotFoundErr("therapist")
		}
		return utils.UpstreamErr("failed to update therapist", err)
	}
	return nil
}
