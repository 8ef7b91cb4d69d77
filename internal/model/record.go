// Package model defines domain types for survey records, filters, and aggregates.
package model

import "time"

// RawRecord is one survey response as read from the source file.
// Numeric and time fields are nil when the cell was empty or unparseable;
// string fields are "" when missing.
type RawRecord struct {
	Timestamp *time.Time
	Faculty   string
	Program   string

	Allowance    *float64 // monthly allowance, Rp
	FomoSpend    *float64 // monthly FOMO-driven spending, Rp
	FinanceSkill *float64 // self-rated financial management, 1-5

	FomoSpendFreq    *float64
	FomoActivityFreq *float64

	EmotionImpact      *float64
	FinanceStressFreq  *float64
	MotivationLossFreq *float64
	FomoStressFreq     *float64

	FeelsFomoOften string // raw answer to the "feels FOMO often" question
	PsychScore     *float64
	SupportNeed    string // "Ya"/"Tidak" emotional-support question
	SupportScore   *float64
}

// Record is a prepared survey response: the raw fields plus derived
// indicators. Derived fields stay nil/"" when their inputs are missing.
type Record struct {
	RawRecord

	DayOfWeek  string // English weekday name
	HourOfDay  *int
	WeekBucket string // ISO week, "2025-W03"

	ExpenseRatio       *float64 // FomoSpend / Allowance, clamped at 0
	RemainingAllowance *float64 // Allowance - FomoSpend

	RatioBucket   string // Low / Medium / High expense-ratio bucket
	FinanceBucket string // Poor / Adequate / Good
	FomoCategory  string // Frequent / Rare, never empty once prepared

	RelativeFomoScore *float64
	StressIndex       *float64
}

// Feature identifies a derived capability of a prepared dataset. Queries and
// views check feature availability instead of probing columns themselves.
type Feature string

const (
	FeatureTimestamp     Feature = "timestamp"
	FeatureFaculty       Feature = "faculty"
	FeatureProgram       Feature = "program"
	FeatureAllowance     Feature = "allowance"
	FeatureFomoSpend     Feature = "fomo_spend"
	FeatureExpenseRatio  Feature = "expense_ratio"
	FeatureFinanceBucket Feature = "finance_bucket"
	FeatureFomoCategory  Feature = "fomo_category"
	FeatureRelativeFomo  Feature = "relative_fomo"
	FeatureStressIndex   Feature = "stress_index"
	FeaturePsychScore    Feature = "psych_score"
	FeatureSupportNeed   Feature = "support_need"
)

// FeatureSet records which derived features the source columns could support.
type FeatureSet map[Feature]bool

// Has reports whether the feature is available.
func (fs FeatureSet) Has(f Feature) bool { return fs[f] }

// List returns the available features in stable (sorted) order.
func (fs FeatureSet) List() []Feature {
	out := make([]Feature, 0, len(fs))
	for f, ok := range fs {
		if ok {
			out = append(out, f)
		}
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j] < out[j-1]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// Dataset is the immutable prepared table plus its availability flags.
// It is built once per source-file content and never mutated afterwards.
type Dataset struct {
	Records  []Record
	Features FeatureSet

	Source     string // source file path
	CellErrors int    // cells that failed to parse and became missing
}

// Filter holds the user-selected predicates for the exploration view.
// Zero values mean "no filter"; predicates compose by logical AND.
// Programs distinguishes nil (no filter) from an empty non-nil set, which
// matches nothing: a program search with zero hits selects zero records.
type Filter struct {
	Faculty       string   // exact match
	FomoCategory  string   // exact match
	FinanceBucket string   // exact match
	RatioBucket   string   // exact match
	Programs      []string // set membership; nil disables the predicate
	RatioMin      *float64 // closed interval on ExpenseRatio
	RatioMax      *float64
}

// IsZero reports whether no predicate is set.
func (f Filter) IsZero() bool {
	return f.Faculty == "" && f.FomoCategory == "" && f.FinanceBucket == "" &&
		f.RatioBucket == "" && f.Programs == nil && f.RatioMin == nil && f.RatioMax == nil
}

// Matches reports whether a record passes every set predicate.
func (f Filter) Matches(r Record) bool {
	if f.Faculty != "" && r.Faculty != f.Faculty {
		return false
	}
	if f.FomoCategory != "" && r.FomoCategory != f.FomoCategory {
		return false
	}
	if f.FinanceBucket != "" && r.FinanceBucket != f.FinanceBucket {
		return false
	}
	if f.RatioBucket != "" && r.RatioBucket != f.RatioBucket {
		return false
	}
	if f.Programs != nil {
		found := false
		for _, p := range f.Programs {
			if r.Program == p {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.RatioMin != nil || f.RatioMax != nil {
		if r.ExpenseRatio == nil {
			return false
		}
		if f.RatioMin != nil && *r.ExpenseRatio < *f.RatioMin {
			return false
		}
		if f.RatioMax != nil && *r.ExpenseRatio > *f.RatioMax {
			return false
		}
	}
	return true
}
