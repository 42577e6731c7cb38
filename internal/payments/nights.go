// Package payments holds the premium subscription pricing rule.
package payments

// Known plan amounts, in the smallest currency unit. These take precedence
// over the generic formula: 3600 must credit 8 nights, not the 7 the
// formula would floor to.
const (
	planSmallAmount = 2000
	planSmallNights = 4
	planLargeAmount = 3600
	planLargeNights = 8

	// Fallback rate for non-plan amounts.
	nightPrice = 500
)

// NightsForAmount converts a completed payment amount to credited premium
// nights: exact plan amounts first, otherwise floor(amount / nightPrice).
func NightsForAmount(amount int64) int {
	switch amount {
	case planSmallAmount:
		return planSmallNights
	case planLargeAmount:
		return planLargeNights
	default:
		return int(amount / nightPrice)
	}
}
