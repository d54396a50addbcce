package therapistRepo

import (
	"context"
	"errors"

	"plenura/models"
)

// ErrNotFound is returned when a therapist or treatment does not exist.
var ErrNotFound = errors.New("therapist not found")

// TherapistRepository persists therapist profiles and their offered
// treatments.
type TherapistRepository interface {
	Create(ctx context.Context, therapist *models.Therapist) error
	GetByID(ctx context.Context, therapistID string) (*models.Therapist, error)
	GetByUserID(ctx context.Context, userID string) (*models.Therapist, error)
	UpdateFields(ctx context.Context, therapistID string, fields map[string]interface{}) error

	// UpdateRating stores the recomputed public-review aggregate.
	UpdateRating(ctx context.Context, therapistID string, avg float64, count int) error

	// ListVisible returns approved, available therapists for marketplace
	// search, paginated.
	ListVisible(ctx context.Context, limit, offset int64) ([]models.Therapist, error)

	CreateTreatment(ctx context.Context, treatment *models.TherapistService) error
	GetTreatment(ctx context.Context, treatmentID string) (*models.TherapistService, error)
	UpdateTreatment(ctx context.Context, therapistID, treatmentID string, fields map[string]interface{}) error
	ListTreatments(ctx context.Context, therapistID string, activeOnly bool) ([]models.TherapistService, error)
}
