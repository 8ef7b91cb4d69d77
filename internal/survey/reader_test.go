package survey

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// writeCSV creates a temp survey file and returns its path.
func writeCSV(t *testing.T, lines ...string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "survey.csv")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadFile_MissingFile(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.csv"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestRead_HeaderNormalization(t *testing.T) {
	path := writeCSV(t,
		"  Timestamp ,FAKULTAS,Program_Studi,rata-rata_uang_saku_perbulan",
		"2025-06-01 10:00:00,Fisip,Ilmu Komunikasi,1000000",
	)

	tbl, err := ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, col := range []string{ColTimestamp, ColFaculty, ColProgram, ColAllowance} {
		if !tbl.Has(col) {
			t.Errorf("column %q not detected", col)
		}
	}
	if len(tbl.Rows) != 1 {
		t.Fatalf("Rows = %d, want 1", len(tbl.Rows))
	}
	r := tbl.Rows[0]
	if r.Faculty != "Fisip" {
		t.Errorf("Faculty = %q", r.Faculty)
	}
	if r.Allowance == nil || *r.Allowance != 1000000 {
		t.Errorf("Allowance = %v, want 1000000", r.Allowance)
	}
	if r.Timestamp == nil {
		t.Fatal("Timestamp not parsed")
	}
	want := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	if !r.Timestamp.Equal(want) {
		t.Errorf("Timestamp = %v, want %v", r.Timestamp, want)
	}
}

func TestRead_BadCellsBecomeMissing(t *testing.T) {
	path := writeCSV(t,
		"timestamp,rata-rata_uang_saku_perbulan,skor_psikologis",
		"not a date,oops,72",
		",500000,",
	)

	tbl, err := ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tbl.Rows) != 2 {
		t.Fatalf("Rows = %d, want 2", len(tbl.Rows))
	}

	r0 := tbl.Rows[0]
	if r0.Timestamp != nil {
		t.Error("unparseable timestamp should be nil")
	}
	if r0.Allowance != nil {
		t.Error("unparseable allowance should be nil")
	}
	if r0.PsychScore == nil || *r0.PsychScore != 72 {
		t.Errorf("PsychScore = %v, want 72", r0.PsychScore)
	}
	// Empty cells are missing, not parse errors.
	if tbl.CellErrors != 2 {
		t.Errorf("CellErrors = %d, want 2", tbl.CellErrors)
	}
}

func TestRead_ShortRowsTolerated(t *testing.T) {
	path := writeCSV(t,
		"fakultas,program_studi,skor_psikologis",
		"Fisip",
	)

	tbl, err := ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tbl.Rows) != 1 {
		t.Fatalf("Rows = %d, want 1", len(tbl.Rows))
	}
	if tbl.Rows[0].Program != "" || tbl.Rows[0].PsychScore != nil {
		t.Error("short row should pad with missing values")
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1000000", 1000000, true},
		{"1.250.000", 1250000, true},
		{"1,250,000", 1250000, true},
		{"Rp 300.000", 300000, true},
		{"3.5", 3.5, true},
		{"3,5", 3.5, true},
		{"1.250.000,50", 1250000.50, true},
		{"-200", -200, true},
		{" 4 ", 4, true},
		{"", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"Rp", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseNumber(tt.in)
		if ok != tt.ok {
			t.Errorf("ParseNumber(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("ParseNumber(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"2025/06/01 3:04:05 PM GMT", true},
		{"2025-06-01 10:00:00", true},
		{"6/1/2025 10:00:00", true},
		{"2025-06-01", true},
		{"yesterday", false},
		{"", false},
	}

	for _, tt := range tests {
		if _, ok := ParseTimestamp(tt.in); ok != tt.ok {
			t.Errorf("ParseTimestamp(%q) ok = %v, want %v", tt.in, ok, tt.ok)
		}
	}
}

// FuzzParseNumber checks the permissive parser never panics on survey input.
func FuzzParseNumber(f *testing.F) {
	f.Add("1.250.000")
	f.Add("Rp 300.000")
	f.Add("3,5")
	f.Add("-")
	f.Add("")
	f.Add("........")
	f.Add("1,2,3,4")

	f.Fuzz(func(t *testing.T, s string) {
		v, ok := ParseNumber(s)
		if ok && v != v {
			t.Errorf("ParseNumber(%q) returned NaN with ok=true", s)
		}
	})
}
