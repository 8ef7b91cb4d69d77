package pipeline

import (
	"math"
	"reflect"
	"testing"

	"github.com/threeasure/fomodash/internal/model"
)

func TestCountBy(t *testing.T) {
	recs := sampleRecords()
	got := CountBy(recs, ByFaculty)
	want := []model.GroupCount{
		{Label: "Fakultas Ekonomi", Count: 2},
		{Label: "Fakultas Teknik", Count: 2},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CountBy = %v, want %v", got, want)
	}
}

func TestCountBy_SkipsMissing(t *testing.T) {
	recs := sampleRecords()
	recs[0].Faculty = ""
	got := CountBy(recs, ByFaculty)
	total := 0
	for _, g := range got {
		total += g.Count
	}
	if total != 3 {
		t.Errorf("counted %d records, want 3 (one missing)", total)
	}
}

func TestMeanBy(t *testing.T) {
	recs := sampleRecords()
	got := MeanBy(recs, ByFaculty, ValExpenseRatio)

	// Ekonomi has one nil ratio; only the 0.3 counts.
	for _, g := range got {
		switch g.Label {
		case "Fakultas Ekonomi":
			if g.Count != 1 || math.Abs(g.Mean-0.3) > 1e-9 {
				t.Errorf("Ekonomi mean = %v (n=%d), want 0.3 (n=1)", g.Mean, g.Count)
			}
		case "Fakultas Teknik":
			if g.Count != 2 || math.Abs(g.Mean-0.4) > 1e-9 {
				t.Errorf("Teknik mean = %v (n=%d), want 0.4 (n=2)", g.Mean, g.Count)
			}
		}
	}
}

func TestTopK(t *testing.T) {
	groups := []model.GroupMean{
		{Label: "a", Mean: 1},
		{Label: "b", Mean: 3},
		{Label: "c", Mean: 3},
		{Label: "d", Mean: 2},
	}
	got := TopK(groups, 3)
	wantLabels := []string{"b", "c", "d"}
	for i, g := range got {
		if g.Label != wantLabels[i] {
			t.Errorf("TopK[%d] = %q, want %q (ties keep incoming order)", i, g.Label, wantLabels[i])
		}
	}
	if len(TopK(groups, 10)) != 4 {
		t.Error("TopK with k > len should return everything")
	}
	if !reflect.DeepEqual(groups[0], model.GroupMean{Label: "a", Mean: 1}) {
		t.Error("TopK mutated its input")
	}
}

func TestTopCounts(t *testing.T) {
	groups := []model.GroupCount{
		{Label: "a", Count: 1},
		{Label: "b", Count: 5},
		{Label: "c", Count: 5},
		{Label: "d", Count: 3},
	}
	got := TopCounts(groups, 3)
	wantLabels := []string{"b", "c", "d"}
	for i, g := range got {
		if g.Label != wantLabels[i] {
			t.Errorf("TopCounts[%d] = %q, want %q (ties keep incoming order)", i, g.Label, wantLabels[i])
		}
	}
	if len(TopCounts(groups, 10)) != 4 {
		t.Error("TopCounts with k > len should return everything")
	}
	if groups[0].Label != "a" {
		t.Error("TopCounts mutated its input")
	}
}

// Label-sorted counts reordered by TopCounts give the busiest groups, not the
// alphabetically first ones.
func TestTopCounts_AfterCountBy(t *testing.T) {
	var recs []model.Record
	add := func(program string, n int) {
		for i := 0; i < n; i++ {
			r := model.Record{}
			r.Program = program
			recs = append(recs, r)
		}
	}
	add("Akuntansi", 1)
	add("Elektro", 4)
	add("Informatika", 2)

	got := TopCounts(CountBy(recs, ByProgram), 2)
	want := []model.GroupCount{
		{Label: "Elektro", Count: 4},
		{Label: "Informatika", Count: 2},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("top programs = %v, want %v", got, want)
	}
}

func TestCrossTabulate_RowsSumTo100(t *testing.T) {
	recs := sampleRecords()
	ct := CrossTabulate(recs, ByFomoCategory, ByFinanceBucket, FomoCategoryOrder, FinanceBucketOrder)

	if len(ct.RowLabels) == 0 {
		t.Fatal("empty cross tab")
	}
	if ct.RowLabels[0] != FomoFrequent {
		t.Errorf("row order = %v, want canonical order first", ct.RowLabels)
	}
	for i := range ct.RowLabels {
		sum := 0.0
		for j := range ct.ColLabels {
			sum += ct.Cells[i][j]
		}
		if math.Abs(sum-100) > 1e-9 {
			t.Errorf("row %q sums to %v, want 100", ct.RowLabels[i], sum)
		}
	}
}

func TestCrossTabulate_Empty(t *testing.T) {
	ct := CrossTabulate(nil, ByFomoCategory, ByFinanceBucket, nil, nil)
	if len(ct.RowLabels) != 0 || len(ct.Cells) != 0 {
		t.Errorf("expected empty cross tab, got %+v", ct)
	}
}

func TestSummarize(t *testing.T) {
	recs := []model.Record{}
	for _, v := range []float64{0.1, 0.2, 0.3, 0.4} {
		r := model.Record{}
		r.ExpenseRatio = fp(v)
		recs = append(recs, r)
	}
	s, ok := Summarize(recs, ValExpenseRatio)
	if !ok {
		t.Fatal("Summarize returned ok=false")
	}
	if s.Count != 4 || math.Abs(s.Mean-0.25) > 1e-9 || math.Abs(s.Median-0.25) > 1e-9 {
		t.Errorf("Summarize = %+v", s)
	}
	if s.Min != 0.1 || s.Max != 0.4 {
		t.Errorf("Min/Max = %v/%v", s.Min, s.Max)
	}

	if _, ok := Summarize(nil, ValExpenseRatio); ok {
		t.Error("expected ok=false for empty input")
	}
}

func TestHistogram(t *testing.T) {
	recs := []model.Record{}
	for _, v := range []float64{0, 0.25, 0.5, 0.75, 1} {
		r := model.Record{}
		r.ExpenseRatio = fp(v)
		recs = append(recs, r)
	}
	bins := Histogram(recs, ValExpenseRatio, 4)
	if len(bins) != 4 {
		t.Fatalf("got %d bins, want 4", len(bins))
	}
	total := 0
	for _, b := range bins {
		total += b.Count
	}
	if total != 5 {
		t.Errorf("histogram counted %d values, want 5", total)
	}
	// The max value lands in the last bin.
	if bins[3].Count != 2 {
		t.Errorf("last bin = %d, want 2 (0.75 and 1)", bins[3].Count)
	}
}

func TestHistogram_ConstantValues(t *testing.T) {
	recs := []model.Record{}
	for i := 0; i < 3; i++ {
		r := model.Record{}
		r.ExpenseRatio = fp(0.5)
		recs = append(recs, r)
	}
	bins := Histogram(recs, ValExpenseRatio, 4)
	if len(bins) != 1 || bins[0].Count != 3 {
		t.Errorf("constant input should collapse to one bin, got %v", bins)
	}
}

func TestOverview(t *testing.T) {
	recs := sampleRecords()
	stats := Overview(recs)
	if stats.Respondents != 4 {
		t.Errorf("Respondents = %d", stats.Respondents)
	}
	if stats.TopFacultyCount != 2 {
		t.Errorf("TopFacultyCount = %d, want 2", stats.TopFacultyCount)
	}
	if stats.MeanExpenseRatio == nil {
		t.Fatal("MeanExpenseRatio is nil")
	}
	want := (0.7 + 0.1 + 0.3) / 3
	if math.Abs(*stats.MeanExpenseRatio-want) > 1e-9 {
		t.Errorf("MeanExpenseRatio = %v, want %v", *stats.MeanExpenseRatio, want)
	}
}

func TestScatterPoints(t *testing.T) {
	recs := []model.Record{}
	r1 := model.Record{}
	r1.Allowance = fp(1000)
	r1.FomoSpend = fp(100)
	r1.FomoCategory = FomoRare
	r2 := model.Record{}
	r2.Allowance = fp(2000) // missing spend, excluded
	recs = append(recs, r1, r2)

	pts := ScatterPoints(recs, ValAllowance, ValFomoSpend, ByFomoCategory)
	if len(pts) != 1 {
		t.Fatalf("got %d points, want 1", len(pts))
	}
	if pts[0].X != 1000 || pts[0].Y != 100 || pts[0].Category != FomoRare {
		t.Errorf("point = %+v", pts[0])
	}
}
