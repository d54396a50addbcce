package therapist

import (
	"context"

	"plenura/models"
	"plenura/utils"
)

var validTiers = map[string]bool{
	models.TierFree:       true,
	models.TierPro:        true,
	models.TierBusiness:   true,
	models.TierEnterprise: true,
}

var validVettingStatuses = map[string]bool{
	models.VettingPending:   true,
	models.VettingApproved:  true,
	models.VettingRejected:  true,
	models.VettingSuspended: true,
}

// ChangeSubscriptionTier moves the therapist to a new plan. The tier's
// commission rate applies to marketplace bookings created afterwards;
// existing bookings keep their computed split.
func (s *DefaultTherapistService) ChangeSubscriptionTier(ctx context.Context, therapistID, tier string) error {
	if !validTiers[tier] {
		return utils.InvalidInputErr("unknown subscription tier: " + tier)
	}
	return s.applyUpdate(ctx, therapistID, map[string]interface{}{"subscription_tier": tier})
}

// SetVettingStatus changes the approval state gating marketplace visibility.
// Admin only.
func (s *DefaultTherapistService) SetVettingStatus(ctx context.Context, actorRole, therapistID, status string) error {
	if actorRole != "admin" {
		return utils.ForbiddenErr("only admins may change vetting status")
	}
	if !validVettingStatuses[status] {
		return utils.InvalidInputErr("unknown vetting status: " + status)
	}
	return s.applyUpdate(ctx, therapistID, map[string]interface{}{"vetting_status": status})
}
