package booking

import "plenura/models"

// Commission rates in basis points. Two policies coexist: marketplace
// bookings priced through the therapist's subscription tier, and manual
// therapist-entered bookings charged a flat platform rate. They are selected
// by booking origin and deliberately not unified.
const (
	manualCommissionBp = 1500 // flat 15% for therapist-entered bookings

	tierFreeBp       = 1000
	tierProBp        = 500
	tierBusinessBp   = 300
	tierEnterpriseBp = 0
)

// tierCommissionBp returns the commission rate for a subscription tier.
// Unknown tiers fall back to the free tier rate.
func tierCommissionBp(tier string) int64 {
	switch tier {
	case models.TierFree:
		return tierFreeBp
	case models.TierPro:
		return tierProBp
	case models.TierBusiness:
		return tierBusinessBp
	case models.TierEnterprise:
		return tierEnterpriseBp
	default:
		return tierFreeBp
	}
}

// commissionCents computes round-half-up commission for a price at the given
// basis-point rate, in integer cents.
func commissionCents(priceCents, rateBp int64) int64 {
	return (priceCents*rateBp + 5000) / 10000
}

// splitPrice returns (commission, payout) such that
// price == commission + payout always holds.
func splitPrice(priceCents, rateBp int64) (int64, int64) {
	commission := commissionCents(priceCents, rateBp)
	return commission, priceCents - commission
}
