package pipeline

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/threeasure/fomodash/internal/model"
	"github.com/threeasure/fomodash/internal/survey"
)

func fp(v float64) *float64 { return &v }

func fullColumns() map[string]bool {
	return map[string]bool{
		survey.ColTimestamp:      true,
		survey.ColFaculty:        true,
		survey.ColProgram:        true,
		survey.ColAllowance:      true,
		survey.ColFomoSpend:      true,
		survey.ColFinanceSkill:   true,
		survey.ColFeelsFomoOften: true,
	}
}

func TestPrepare_ExpenseRatio(t *testing.T) {
	tbl := &survey.Table{
		Columns: fullColumns(),
		Rows: []model.RawRecord{
			{Allowance: fp(1_000_000), FomoSpend: fp(300_000)},
		},
	}
	ds := Prepare(tbl, nil)
	r := ds.Records[0]

	if r.ExpenseRatio == nil || math.Abs(*r.ExpenseRatio-0.3) > 1e-9 {
		t.Fatalf("ExpenseRatio = %v, want 0.3", r.ExpenseRatio)
	}
	if r.RatioBucket != RatioMedium {
		t.Errorf("RatioBucket = %q, want %q", r.RatioBucket, RatioMedium)
	}
	if r.RemainingAllowance == nil || *r.RemainingAllowance != 700_000 {
		t.Errorf("RemainingAllowance = %v, want 700000", r.RemainingAllowance)
	}
}

func TestPrepare_ZeroAllowance(t *testing.T) {
	tbl := &survey.Table{
		Columns: fullColumns(),
		Rows: []model.RawRecord{
			{Allowance: fp(0), FomoSpend: fp(50_000)},
		},
	}
	r := Prepare(tbl, nil).Records[0]

	if r.ExpenseRatio != nil {
		t.Errorf("ExpenseRatio = %v, want nil for zero allowance", *r.ExpenseRatio)
	}
	if r.RatioBucket != "" {
		t.Errorf("RatioBucket = %q, want empty", r.RatioBucket)
	}
	if r.RemainingAllowance == nil || *r.RemainingAllowance != -50_000 {
		t.Errorf("RemainingAllowance = %v, want -50000", r.RemainingAllowance)
	}
}

func TestPrepare_NegativeRatioClamped(t *testing.T) {
	tbl := &survey.Table{
		Columns: fullColumns(),
		Rows: []model.RawRecord{
			{Allowance: fp(1_000_000), FomoSpend: fp(-200_000)},
		},
	}
	r := Prepare(tbl, nil).Records[0]
	if r.ExpenseRatio == nil || *r.ExpenseRatio != 0 {
		t.Errorf("ExpenseRatio = %v, want 0 (clamped)", r.ExpenseRatio)
	}
	if r.RatioBucket != RatioLow {
		t.Errorf("RatioBucket = %q, want %q", r.RatioBucket, RatioLow)
	}
}

func TestPrepare_FomoCategory(t *testing.T) {
	tests := []struct {
		answer string
		want   string
	}{
		{"Ya", FomoFrequent},
		{"  ya ", FomoFrequent},
		{"YA", FomoFrequent},
		{"tidak", FomoRare},
		{"", FomoRare},
		{"yah", FomoRare},
	}
	for _, tt := range tests {
		tbl := &survey.Table{
			Columns: fullColumns(),
			Rows:    []model.RawRecord{{FeelsFomoOften: tt.answer}},
		}
		r := Prepare(tbl, nil).Records[0]
		if r.FomoCategory != tt.want {
			t.Errorf("FomoCategory(%q) = %q, want %q", tt.answer, r.FomoCategory, tt.want)
		}
	}
}

func TestPrepare_FomoCategoryAbsentColumn(t *testing.T) {
	cols := fullColumns()
	delete(cols, survey.ColFeelsFomoOften)
	tbl := &survey.Table{Columns: cols, Rows: []model.RawRecord{{}}}
	r := Prepare(tbl, nil).Records[0]
	if r.FomoCategory != "" {
		t.Errorf("FomoCategory = %q, want empty when the column is absent", r.FomoCategory)
	}
}

func TestRatioBucket_Boundaries(t *testing.T) {
	tests := []struct {
		ratio float64
		want  string
	}{
		{0, RatioLow},
		{0.2, RatioLow},
		{0.200001, RatioMedium},
		{0.5, RatioMedium},
		{0.500001, RatioHigh},
		{1.5, RatioHigh},
	}
	for _, tt := range tests {
		if got := RatioBucket(tt.ratio); got != tt.want {
			t.Errorf("RatioBucket(%v) = %q, want %q", tt.ratio, got, tt.want)
		}
	}
}

func TestFinanceBucket_Boundaries(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{1, FinancePoor},
		{2.5, FinancePoor},
		{3, FinanceAdequate},
		{3.5, FinanceAdequate},
		{4, FinanceGood},
		{5, FinanceGood},
		{5.5, ""},
		{-1, ""},
	}
	for _, tt := range tests {
		if got := FinanceBucket(tt.score); got != tt.want {
			t.Errorf("FinanceBucket(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestPrepare_TimeFeatures(t *testing.T) {
	ts := time.Date(2024, 11, 3, 14, 30, 0, 0, time.UTC) // a Sunday
	tbl := &survey.Table{
		Columns: fullColumns(),
		Rows:    []model.RawRecord{{Timestamp: &ts}},
	}
	r := Prepare(tbl, nil).Records[0]

	if r.DayOfWeek != "Sunday" {
		t.Errorf("DayOfWeek = %q, want Sunday", r.DayOfWeek)
	}
	if r.HourOfDay == nil || *r.HourOfDay != 14 {
		t.Errorf("HourOfDay = %v, want 14", r.HourOfDay)
	}
	if r.WeekBucket != "2024-W44" {
		t.Errorf("WeekBucket = %q, want 2024-W44", r.WeekBucket)
	}
}

func TestPrepare_StressIndex(t *testing.T) {
	tbl := &survey.Table{
		Columns: fullColumns(),
		Rows: []model.RawRecord{
			{EmotionImpact: fp(4), FinanceStressFreq: fp(2)},
			{},
		},
	}
	ds := Prepare(tbl, nil)

	if ds.Records[0].StressIndex == nil || *ds.Records[0].StressIndex != 3 {
		t.Errorf("StressIndex = %v, want 3", ds.Records[0].StressIndex)
	}
	if ds.Records[1].StressIndex != nil {
		t.Errorf("StressIndex = %v, want nil for no stress answers", *ds.Records[1].StressIndex)
	}
}

func TestPrepare_Idempotent(t *testing.T) {
	ts := time.Date(2024, 11, 3, 9, 0, 0, 0, time.UTC)
	tbl := &survey.Table{
		Columns: fullColumns(),
		Rows: []model.RawRecord{
			{Timestamp: &ts, Faculty: "fakultas  teknik", Allowance: fp(2_000_000), FomoSpend: fp(500_000), FinanceSkill: fp(4), FeelsFomoOften: "Ya"},
		},
	}
	first := Prepare(tbl, nil)
	second := Prepare(tbl, nil)
	if !reflect.DeepEqual(first.Records, second.Records) {
		t.Error("Prepare is not idempotent over the same table")
	}
}

func TestCleanLabel(t *testing.T) {
	syn := map[string]string{
		"Fakultas Imu Sosial Budaya Dan Politik": "Fakultas Ilmu Sosial Budaya Dan Politik",
	}
	tests := []struct {
		in   string
		want string
	}{
		{"  fakultas   teknik ", "Fakultas Teknik"},
		{"FAKULTAS EKONOMI", "Fakultas Ekonomi"},
		{"fakultas imu sosial budaya dan politik", "Fakultas Ilmu Sosial Budaya Dan Politik"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := CleanLabel(tt.in, syn); got != tt.want {
			t.Errorf("CleanLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPrepare_SynonymUnifiesFaculty(t *testing.T) {
	syn := map[string]string{
		"Fakultas Imu Sosial Budaya Dan Politik": "Fakultas Ilmu Sosial Budaya Dan Politik",
	}
	tbl := &survey.Table{
		Columns: fullColumns(),
		Rows: []model.RawRecord{
			{Faculty: "Fakultas Imu Sosial Budaya dan Politik"},
			{Faculty: "fakultas ilmu sosial budaya dan politik"},
		},
	}
	ds := Prepare(tbl, syn)
	if ds.Records[0].Faculty != ds.Records[1].Faculty {
		t.Errorf("faculties not unified: %q vs %q", ds.Records[0].Faculty, ds.Records[1].Faculty)
	}
}
