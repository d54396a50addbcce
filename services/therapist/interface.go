package therapist

import (
	"context"

	availabilityRepo "plenura/database/repository/availability"
	therapistRepo "plenura/database/repository/therapist"
	"plenura/models"

	"github.com/go-redis/redis/v8"
)

// RuleInput is one weekly availability window in a save request.
type RuleInput struct {
	Weekday     int  `json:"weekday" binding:"min=0,max=6"`
	StartMinute int  `json:"start_minute" binding:"min=0,max=1439"`
	EndMinute   int  `json:"end_minute" binding:"min=1,max=1440"`
	Active      bool `json:"active"`
}

// ProfileUpdate carries the editable profile fields.
type ProfileUpdate struct {
	DisplayName *string `json:"display_name,omitempty"`
	Bio         *string `json:"bio,omitempty"`
}

// TreatmentInput describes a bookable treatment offered by a therapist.
type TreatmentInput struct {
	Name            string `json:"name" binding:"required"`
	Description     string `json:"description"`
	PriceCents      int64  `json:"price_cents" binding:"required,gt=0"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,gt=0"`
}

// TherapistService manages therapist profiles, offered treatments,
// availability and subscription state.
type TherapistService interface {
	Register(ctx context.Context, userID, displayName string) (*models.Therapist, error)
	GetProfile(ctx context.Context, therapistID string) (*models.Therapist, error)
	GetByUserID(ctx context.Context, userID string) (*models.Therapist, error)
	UpdateProfile(ctx context.Context, therapistID string, update ProfileUpdate) error
	SetAvailable(ctx context.Context, therapistID string, available bool) error
	ListVisible(ctx context.Context, limit, offset int64) ([]models.Therapist, error)

	SaveAvailability(ctx context.Context, therapistID string, rules []RuleInput) ([]models.AvailabilityRule, error)
	ListAvailability(ctx context.Context, therapistID string) ([]models.AvailabilityRule, error)
	AddBlockedPeriod(ctx context.Context, therapistID, startDate, endDate, reason string) (*models.BlockedPeriod, error)
	RemoveBlockedPeriod(ctx context.Context, therapistID, blockedID string) error
	ListBlockedPeriods(ctx context.Context, therapistID string) ([]models.BlockedPeriod, error)

	ChangeSubscriptionTier(ctx context.Context, therapistID, tier string) error
	SetVettingStatus(ctx context.Context, actorRole, therapistID, status string) error

	AddTreatment(ctx context.Context, therapistID string, in TreatmentInput) (*models.TherapistService, error)
	UpdateTreatment(ctx context.Context, therapistID, treatmentID string, fields map[string]interface{}) error
	ListTreatments(ctx context.Context, therapistID string, activeOnly bool) ([]models.TherapistService, error)
}

// DefaultTherapistService implements TherapistService.
type DefaultTherapistService struct {
	Repo         therapistRepo.TherapistRepository
	Availability availabilityRepo.AvailabilityRepository
	SlotCache    *redis.Client
}
