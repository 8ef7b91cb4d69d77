package pipeline

// Bucket labels for the derived categorical indicators. Boundary values
// belong to the lower bucket; the lowest bound is included.
const (
	RatioLow    = "Low (<20%)"
	RatioMedium = "Medium (20-50%)"
	RatioHigh   = "High (>50%)"

	FinancePoor     = "Poor"
	FinanceAdequate = "Adequate"
	FinanceGood     = "Good"

	FomoFrequent = "Frequent"
	FomoRare     = "Rare"
)

// RatioBucketOrder is the canonical display order for expense-ratio buckets.
var RatioBucketOrder = []string{RatioLow, RatioMedium, RatioHigh}

// FinanceBucketOrder is the canonical display order for financial buckets.
var FinanceBucketOrder = []string{FinancePoor, FinanceAdequate, FinanceGood}

// FomoCategoryOrder is the canonical display order for FOMO categories.
var FomoCategoryOrder = []string{FomoFrequent, FomoRare}

// RatioBucket bins an expense ratio over breakpoints [0, 0.2, 0.5, +inf).
// Ratios below zero never occur (the ratio is clamped at 0 upstream).
func RatioBucket(r float64) string {
	switch {
	case r < 0:
		return ""
	case r <= 0.2:
		return RatioLow
	case r <= 0.5:
		return RatioMedium
	default:
		return RatioHigh
	}
}

// FinanceBucket bins the 1-5 financial-management score over breakpoints
// [0, 2.5, 3.5, 5]. Scores outside the valid range get no bucket.
func FinanceBucket(score float64) string {
	switch {
	case score < 0 || score > 5:
		return ""
	case score <= 2.5:
		return FinancePoor
	case score <= 3.5:
		return FinanceAdequate
	default:
		return FinanceGood
	}
}
