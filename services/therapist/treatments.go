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

// AddTreatment creates a bookable treatment for a therapist.
func (s *DefaultTherapistService) AddTreatment(ctx context.Context, therapistID string, in TreatmentInput) (*models.TherapistService, error) {
	if in.Name == "" {
		return nil, utils.InvalidInputErr("treatment name is required")
	}
	if in.PriceCents <= 0 {
		return nil, utils.InvalidInputErr("price must be positive")
	}
	if in.DurationMinutes <= 0 {
		return nil, utils.InvalidInputErr("duration must be positive")
	}

	treatment := &models.TherapistService{
		ID:              uuid.New().String(),
		TherapistID:     therapistID,
		Name:            in.Name,
		Description:     in.Description,
		PriceCents:      in.PriceCents,
		DurationMinutes: in.DurationMinutes,
		Active:          true,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.Repo.CreateTreatment(ctx, treatment); err != nil {
		return nil, utils.UpstreamErr("failed to create treatment", err)
	}
	return treatment, nil
}

// UpdateTreatment applies a partial update to a treatment owned by the
// therapist. Allowed fields: name, description, price_cents,
// duration_minutes, active.
func (s *DefaultTherapistService) UpdateTreatment(ctx context.Context, therapistID, treatmentID string, fields map[string]interface{}) error {
	allowed := map[string]bool{
		"name":             true,
		"description":      true,
		"price_cents":      true,
		"duration_minutes": true,
		"active":           true,
	}
	update := map[string]interface{}{}
	for k, v := range fields {
		if allowed[k] {
			update[k] = v
		}
	}
	if len(update) == 0 {
		return utils.InvalidInputErr("no updatable fields provided")
	}
	if err := s.Repo.UpdateTreatment(ctx, therapistID, treatmentID, update); err != nil {
		if errors.Is(err, therapistRepo.ErrNotFound) {
			return utils.NotFoundErr("treatment")
		}
		return utils.UpstreamErr("failed to update treatment", err)
	}
	return nil
}

// ListTreatments returns a therapist's treatments.
func (s *DefaultTherapistService) ListTreatments(ctx context.Context, therapistID string, activeOnly bool) ([]models.TherapistService, error) {
	treatments, err := s.Repo.ListTreatments(ctx, therapistID, activeOnly)
	if err != nil {
		return nil, utils.UpstreamErr("failed to list treatments", err)
	}
	return treatments, nil
}
