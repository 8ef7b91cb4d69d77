package pipeline

import (
	"reflect"
	"testing"

	"github.com/threeasure/fomodash/internal/model"
)

func sampleRecords() []model.Record {
	mk := func(faculty, program, fomo, finance, ratio string, expRatio *float64) model.Record {
		r := model.Record{}
		r.Faculty = faculty
		r.Program = program
		r.FomoCategory = fomo
		r.FinanceBucket = finance
		r.RatioBucket = ratio
		r.ExpenseRatio = expRatio
		return r
	}
	return []model.Record{
		mk("Fakultas Teknik", "Informatika", FomoFrequent, FinancePoor, RatioHigh, fp(0.7)),
		mk("Fakultas Teknik", "Elektro", FomoRare, FinanceGood, RatioLow, fp(0.1)),
		mk("Fakultas Ekonomi", "Manajemen", FomoFrequent, FinanceAdequate, RatioMedium, fp(0.3)),
		mk("Fakultas Ekonomi", "Akuntansi", FomoRare, FinanceGood, RatioLow, nil),
	}
}

func TestApply_ZeroFilterCopies(t *testing.T) {
	recs := sampleRecords()
	out := Apply(recs, model.Filter{})
	if !reflect.DeepEqual(out, recs) {
		t.Fatal("zero filter should return all records")
	}
	out[0].Faculty = "changed"
	if recs[0].Faculty == "changed" {
		t.Error("Apply returned the input slice instead of a copy")
	}
}

func TestApply_SinglePredicates(t *testing.T) {
	recs := sampleRecords()
	tests := []struct {
		name   string
		filter model.Filter
		want   int
	}{
		{"faculty", model.Filter{Faculty: "Fakultas Teknik"}, 2},
		{"fomo", model.Filter{FomoCategory: FomoFrequent}, 2},
		{"finance", model.Filter{FinanceBucket: FinanceGood}, 2},
		{"ratio bucket", model.Filter{RatioBucket: RatioLow}, 2},
		{"programs", model.Filter{Programs: []string{"Informatika", "Manajemen"}}, 2},
		{"ratio range", model.Filter{RatioMin: fp(0.2), RatioMax: fp(0.5)}, 1},
		{"no match", model.Filter{Faculty: "Fakultas Hukum"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(recs, tt.filter)
			if len(got) != tt.want {
				t.Errorf("got %d records, want %d", len(got), tt.want)
			}
		})
	}
}

func TestApply_PredicatesCompose(t *testing.T) {
	recs := sampleRecords()
	f := model.Filter{Faculty: "Fakultas Teknik", FomoCategory: FomoFrequent}
	got := Apply(recs, f)
	if len(got) != 1 || got[0].Program != "Informatika" {
		t.Fatalf("composed filter returned %d records", len(got))
	}

	// AND composition is order-free: filtering in two steps matches one step.
	step1 := Apply(recs, model.Filter{Faculty: "Fakultas Teknik"})
	step2 := Apply(step1, model.Filter{FomoCategory: FomoFrequent})
	if !reflect.DeepEqual(got, step2) {
		t.Error("sequential filtering differs from composed filtering")
	}
}

func TestApply_EmptyProgramSetMatchesNothing(t *testing.T) {
	recs := sampleRecords()

	// A program search with zero hits produces an empty non-nil set, which
	// must select zero records, not fall back to "no filter".
	got := Apply(recs, model.Filter{Programs: []string{}})
	if len(got) != 0 {
		t.Errorf("empty program set matched %d of %d records, want 0", len(got), len(recs))
	}

	if (model.Filter{Programs: []string{}}).IsZero() {
		t.Error("filter with an empty program set reported IsZero")
	}
	if !(model.Filter{}).IsZero() {
		t.Error("filter with nil programs did not report IsZero")
	}
}

func TestApply_RatioRangeExcludesMissing(t *testing.T) {
	recs := sampleRecords()
	got := Apply(recs, model.Filter{RatioMin: fp(0)})
	for _, r := range got {
		if r.ExpenseRatio == nil {
			t.Error("record without ratio passed a ratio-range filter")
		}
	}
}

func TestFaculties_DistinctSorted(t *testing.T) {
	got := Faculties(sampleRecords())
	want := []string{"Fakultas Ekonomi", "Fakultas Teknik"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Faculties = %v, want %v", got, want)
	}
}

func TestApply_EmptyInput(t *testing.T) {
	got := Apply(nil, model.Filter{Faculty: "Fakultas Teknik"})
	if len(got) != 0 {
		t.Errorf("got %d records from empty input", len(got))
	}
}
