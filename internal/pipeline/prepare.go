// Package pipeline prepares the survey table and serves filtered aggregations.
package pipeline

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/threeasure/fomodash/internal/model"
	"github.com/threeasure/fomodash/internal/survey"
)

// affirmative is the token that marks the "feels FOMO often" answer as yes,
// matched case- and whitespace-insensitively.
const affirmative = "ya"

// Prepare derives the prepared dataset from a raw survey table. It never
// mutates the input, and running it twice on the same table yields identical
// output. synonyms maps known misspelled category labels (after title-casing)
// to their canonical spelling; pass nil to apply no corrections.
func Prepare(tbl *survey.Table, synonyms map[string]string) *model.Dataset {
	ds := &model.Dataset{
		Records:    make([]model.Record, 0, len(tbl.Rows)),
		Features:   detectFeatures(tbl),
		CellErrors: tbl.CellErrors,
	}

	for _, raw := range tbl.Rows {
		ds.Records = append(ds.Records, prepareRecord(raw, tbl, synonyms))
	}

	return ds
}

// detectFeatures computes the availability flags from column presence.
// Each derived feature requires every source column it reads from.
func detectFeatures(tbl *survey.Table) model.FeatureSet {
	fs := model.FeatureSet{}

	fs[model.FeatureTimestamp] = tbl.Has(survey.ColTimestamp)
	fs[model.FeatureFaculty] = tbl.Has(survey.ColFaculty)
	fs[model.FeatureProgram] = tbl.Has(survey.ColProgram)
	fs[model.FeatureAllowance] = tbl.Has(survey.ColAllowance)
	fs[model.FeatureFomoSpend] = tbl.Has(survey.ColFomoSpend)
	fs[model.FeatureExpenseRatio] = tbl.Has(survey.ColAllowance) && tbl.Has(survey.ColFomoSpend)
	fs[model.FeatureFinanceBucket] = tbl.Has(survey.ColFinanceSkill)
	fs[model.FeatureFomoCategory] = tbl.Has(survey.ColFeelsFomoOften)
	fs[model.FeatureRelativeFomo] = tbl.Has(survey.ColFomoSpendFreq) && tbl.Has(survey.ColFomoActivityFreq)
	fs[model.FeatureStressIndex] = tbl.Has(survey.ColEmotionImpact) || tbl.Has(survey.ColFinanceStressFreq) ||
		tbl.Has(survey.ColMotivationLossFreq) || tbl.Has(survey.ColFomoStressFreq)
	fs[model.FeaturePsychScore] = tbl.Has(survey.ColPsychScore)
	fs[model.FeatureSupportNeed] = tbl.Has(survey.ColSupportNeed)

	return fs
}

func prepareRecord(raw model.RawRecord, tbl *survey.Table, synonyms map[string]string) model.Record {
	rec := model.Record{RawRecord: raw}

	rec.Faculty = CleanLabel(raw.Faculty, synonyms)
	rec.Program = CleanLabel(raw.Program, nil)
	rec.SupportNeed = CleanLabel(raw.SupportNeed, nil)

	if raw.Timestamp != nil {
		ts := *raw.Timestamp
		rec.DayOfWeek = ts.Weekday().String()
		h := ts.Hour()
		rec.HourOfDay = &h
		year, week := ts.ISOWeek()
		rec.WeekBucket = fmt.Sprintf("%04d-W%02d", year, week)
	}

	if raw.Allowance != nil && raw.FomoSpend != nil {
		if *raw.Allowance != 0 {
			ratio := *raw.FomoSpend / *raw.Allowance
			if ratio < 0 {
				ratio = 0
			}
			rec.ExpenseRatio = &ratio
			rec.RatioBucket = RatioBucket(ratio)
		}
		remaining := *raw.Allowance - *raw.FomoSpend
		rec.RemainingAllowance = &remaining
	}

	if raw.FinanceSkill != nil {
		rec.FinanceBucket = FinanceBucket(*raw.FinanceSkill)
	}

	if tbl.Has(survey.ColFeelsFomoOften) {
		rec.FomoCategory = FomoRare
		if strings.EqualFold(strings.TrimSpace(raw.FeelsFomoOften), affirmative) {
			rec.FomoCategory = FomoFrequent
		}
	}

	if raw.FomoSpendFreq != nil && raw.FomoActivityFreq != nil {
		score := (*raw.FomoSpendFreq + *raw.FomoActivityFreq) / 2
		rec.RelativeFomoScore = &score
	}

	rec.StressIndex = stressIndex(raw)

	return rec
}

// stressIndex is the row-wise mean over whichever stress-related values the
// row carries; nil when none are present. Summation order is fixed so the
// result is bit-identical across runs.
func stressIndex(raw model.RawRecord) *float64 {
	var sum float64
	var n int
	for _, v := range []*float64{raw.EmotionImpact, raw.FinanceStressFreq, raw.MotivationLossFreq, raw.FomoStressFreq} {
		if v != nil {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return nil
	}
	idx := sum / float64(n)
	return &idx
}

// CleanLabel normalizes a categorical text value: trims, collapses internal
// whitespace runs to one space, title-cases, then applies the synonym map.
func CleanLabel(s string, synonyms map[string]string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	for i, f := range fields {
		fields[i] = titleWord(f)
	}
	label := strings.Join(fields, " ")
	if canonical, ok := synonyms[label]; ok {
		return canonical
	}
	return label
}

func titleWord(w string) string {
	runes := []rune(strings.ToLower(w))
	for i, r := range runes {
		if unicode.IsLetter(r) {
			runes[i] = unicode.ToUpper(r)
			break
		}
	}
	return string(runes)
}
