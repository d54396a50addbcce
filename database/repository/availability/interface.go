package availabilityRepo

import (
	"context"
	"errors"

	"plenura/models"
)

// ErrNotFound is returned when a blocked period does not exist.
var ErrNotFound = errors.New("blocked period not found")

// AvailabilityRepository persists weekly availability rules and blocked
// periods for therapists. Rules are never patched incrementally: a save
// replaces the full set.
type AvailabilityRepository interface {
	GetRules(ctx context.Context, therapistID string) ([]models.AvailabilityRule, error)
	ReplaceRules(ctx context.Context, therapistID string, rules []models.AvailabilityRule) error

	AddBlockedPeriod(ctx context.Context, blocked *models.BlockedPeriod) error
	RemoveBlockedPeriod(ctx context.Context, therapistID, blockedID string) error
	ListBlockedPeriods(ctx context.Context, therapistID string) ([]models.BlockedPeriod, error)

	// ListBlockedCovering returns blocked periods whose inclusive date range
	// contains the given date ("2006-01-02").
	ListBlockedCovering(ctx context.Context, therapistID, date string) ([]models.BlockedPeriod, error)
}
