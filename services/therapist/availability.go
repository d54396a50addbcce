package therapist

import (
	"context"
	"errors"
	"fmt"
	"time"

	availabilityRepo "plenura/database/repository/availability"
	"plenura/models"
	"plenura/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// SaveAvailability replaces the therapist's full weekly rule set. This is
// deliberately not a patch: the stored set after a save is exactly the
// submitted set. Rules on the same day may coexist; overlap between them is
// by convention, not enforced here.
func (s *DefaultTherapistService) SaveAvailability(ctx context.Context, therapistID string, inputs []RuleInput) ([]models.AvailabilityRule, error) {
	rules := make([]models.AvailabilityRule, 0, len(inputs))
	for i, in := range inputs {
		if in.Weekday < 0 || in.Weekday > 6 {
			return nil, utils.InvalidInputErr(fmt.Sprintf("rule %d: weekday must be 0..6", i))
		}
		if in.StartMinute < 0 || in.EndMinute > 24*60 || in.StartMinute >= in.EndMinute {
			return nil, utils.InvalidInputErr(fmt.Sprintf("rule %d: invalid time window", i))
		}
		rules = append(rules, models.AvailabilityRule{
			ID:          uuid.New().String(),
			TherapistID: therapistID,
			Weekday:     in.Weekday,
			StartMinute: in.StartMinute,
			EndMinute:   in.EndMinute,
			Active:      in.Active,
		})
	}

	if err := s.Availability.ReplaceRules(ctx, therapistID, rules); err != nil {
		return nil, utils.UpstreamErr("failed to save availability", err)
	}
	s.dropSlotCache(ctx, therapistID)
	return rules, nil
}

// ListAvailability returns the therapist's weekly rules.
func (s *DefaultTherapistService) ListAvailability(ctx context.Context, therapistID string) ([]models.AvailabilityRule, error) {
	rules, err := s.Availability.GetRules(ctx, therapistID)
	if err != nil {
		return nil, utils.UpstreamErr("failed to load availability", err)
	}
	return rules, nil
}

// AddBlockedPeriod removes an inclusive date range from availability.
func (s *DefaultTherapistService) AddBlockedPeriod(ctx context.Context, therapistID, startDate, endDate, reason string) (*models.BlockedPeriod, error) {
	if _, err := time.Parse(dateLayout, startDate); err != nil {
		return nil, utils.InvalidInputErr("start date must be formatted as YYYY-MM-DD")
	}
	if _, err := time.Parse(dateLayout, endDate); err != nil {
		return nil, utils.InvalidInputErr("end date must be formatted as YYYY-MM-DD")
	}
	if endDate < startDate {
		return nil, utils.InvalidInputErr("end date precedes start date")
	}

	blocked := &models.BlockedPeriod{
		ID:          uuid.New().String(),
		TherapistID: therapistID,
		StartDate:   startDate,
		EndDate:     endDate,
		Reason:      reason,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.Availability.AddBlockedPeriod(ctx, blocked); err != nil {
		return nil, utils.UpstreamErr("failed to add blocked period", err)
	}
	s.dropSlotCache(ctx, therapistID)
	return blocked, nil
}

// RemoveBlockedPeriod deletes a blocked period owned by the therapist.
func (s *DefaultTherapistService) RemoveBlockedPeriod(ctx context.Context, therapistID, blockedID string) error {
	if err := s.Availability.RemoveBlockedPeriod(ctx, therapistID, blockedID); err != nil {
		if errors.Is(err, availabilityRepo.ErrNotFound) {
			return utils.NotFoundErr("blocked period")
		}
		return utils.UpstreamErr("failed to remove blocked period", err)
	}
	s.dropSlotCache(ctx, therapistID)
	return nil
}

// ListBlockedPeriods returns the therapist's blocked periods.
func (s *DefaultTherapistService) ListBlockedPeriods(ctx context.Context, therapistID string) ([]models.BlockedPeriod, error) {
	blocked, err := s.Availability.ListBlockedPeriods(ctx, therapistID)
	if err != nil {
		return nil, utils.UpstreamErr("failed to list blocked periods", err)
	}
	return blocked, nil
}

// dropSlotCache clears all cached slot computations for the therapist after
// an availability change.
func (s *DefaultTherapistService) dropSlotCache(ctx context.Context, therapistID string) {
	if s.SlotCache == nil {
		return
	}
	keys, err := s.SlotCache.Keys(ctx, fmt.Sprintf("slots:%s:*", therapistID)).Result()
	if err != nil || len(keys) == 0 {
		return
	}
	if err := s.SlotCache.Del(ctx, keys...).Err(); err != nil {
		utils.GetLogger().Debug("slot cache invalidation failed", zap.Error(err))
	}
}
