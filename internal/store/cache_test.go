package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/threeasure/fomodash/internal/model"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func testDataset() *model.Dataset {
	ts := time.Date(2024, 11, 4, 9, 30, 0, 0, time.UTC)
	hour := 9
	ratio := 0.3
	allowance := 1_000_000.0
	spend := 300_000.0

	r := model.Record{}
	r.Timestamp = &ts
	r.Faculty = "Fakultas Teknik"
	r.Program = "Informatika"
	r.Allowance = &allowance
	r.FomoSpend = &spend
	r.ExpenseRatio = &ratio
	r.RatioBucket = "Medium (20-50%)"
	r.FomoCategory = "Frequent"
	r.DayOfWeek = "Monday"
	r.HourOfDay = &hour
	r.WeekBucket = "2024-W45"

	empty := model.Record{}
	empty.Faculty = "Fakultas Ekonomi"

	return &model.Dataset{
		Records: []model.Record{r, empty},
		Features: model.FeatureSet{
			model.FeatureFaculty:      true,
			model.FeatureExpenseRatio: true,
		},
		Source:     "/data/fomo.csv",
		CellErrors: 2,
	}
}

func TestCache_SaveLoadRoundTrip(t *testing.T) {
	c := openTestCache(t)
	ds := testDataset()

	if err := c.SaveDataset(ds, 111, 222, "fp1"); err != nil {
		t.Fatalf("SaveDataset: %v", err)
	}

	got, ok, err := c.LoadDataset(ds.Source, 111, 222, "fp1")
	if err != nil {
		t.Fatalf("LoadDataset: %v", err)
	}
	if !ok {
		t.Fatal("expected a cache hit")
	}

	if len(got.Records) != 2 {
		t.Fatalf("got %d records, want 2", len(got.Records))
	}
	if got.CellErrors != 2 {
		t.Errorf("CellErrors = %d, want 2", got.CellErrors)
	}
	if !got.Features.Has(model.FeatureFaculty) || !got.Features.Has(model.FeatureExpenseRatio) {
		t.Errorf("features not restored: %v", got.Features.List())
	}

	r := got.Records[0]
	if r.Faculty != "Fakultas Teknik" || r.Program != "Informatika" {
		t.Errorf("labels = %q/%q", r.Faculty, r.Program)
	}
	if r.Timestamp == nil || !r.Timestamp.Equal(*ds.Records[0].Timestamp) {
		t.Errorf("Timestamp = %v", r.Timestamp)
	}
	if r.ExpenseRatio == nil || *r.ExpenseRatio != 0.3 {
		t.Errorf("ExpenseRatio = %v", r.ExpenseRatio)
	}
	if r.HourOfDay == nil || *r.HourOfDay != 9 {
		t.Errorf("HourOfDay = %v", r.HourOfDay)
	}
	if r.RatioBucket != "Medium (20-50%)" || r.FomoCategory != "Frequent" {
		t.Errorf("buckets = %q/%q", r.RatioBucket, r.FomoCategory)
	}

	empty := got.Records[1]
	if empty.Timestamp != nil || empty.Allowance != nil || empty.ExpenseRatio != nil {
		t.Error("missing values did not stay missing")
	}
}

func TestCache_MissOnChangedFile(t *testing.T) {
	c := openTestCache(t)
	ds := testDataset()

	if err := c.SaveDataset(ds, 111, 222, "fp1"); err != nil {
		t.Fatalf("SaveDataset: %v", err)
	}

	if _, ok, _ := c.LoadDataset(ds.Source, 999, 222, "fp1"); ok {
		t.Error("expected a miss on mtime change")
	}
	if _, ok, _ := c.LoadDataset(ds.Source, 111, 999, "fp1"); ok {
		t.Error("expected a miss on size change")
	}
	if _, ok, _ := c.LoadDataset("/other.csv", 111, 222, "fp1"); ok {
		t.Error("expected a miss for an unknown source")
	}
}

// An edited synonym map must invalidate the cache even when the survey file
// itself is untouched.
func TestCache_MissOnChangedSynonyms(t *testing.T) {
	c := openTestCache(t)
	ds := testDataset()

	if err := c.SaveDataset(ds, 111, 222, "fp1"); err != nil {
		t.Fatalf("SaveDataset: %v", err)
	}

	if _, ok, _ := c.LoadDataset(ds.Source, 111, 222, "fp2"); ok {
		t.Error("expected a miss on synonym fingerprint change")
	}
	if _, ok, _ := c.LoadDataset(ds.Source, 111, 222, "fp1"); !ok {
		t.Error("expected a hit with the original fingerprint")
	}
}

func TestCache_SaveReplacesRecords(t *testing.T) {
	c := openTestCache(t)
	ds := testDataset()

	if err := c.SaveDataset(ds, 1, 1, "fp1"); err != nil {
		t.Fatal(err)
	}

	ds.Records = ds.Records[:1]
	if err := c.SaveDataset(ds, 2, 2, "fp1"); err != nil {
		t.Fatal(err)
	}

	got, ok, err := c.LoadDataset(ds.Source, 2, 2, "fp1")
	if err != nil || !ok {
		t.Fatalf("reload failed: ok=%v err=%v", ok, err)
	}
	if len(got.Records) != 1 {
		t.Errorf("got %d records after resave, want 1", len(got.Records))
	}
}
