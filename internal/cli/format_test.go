package cli

import (
	"testing"
	"time"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-1234567, "-1,234,567"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatRupiah(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "Rp0"},
		{1500000, "Rp1.500.000"},
		{300000, "Rp300.000"},
		{999.6, "Rp1.000"},
		{-50000, "-Rp50.000"},
	}
	for _, tt := range tests {
		if got := FormatRupiah(tt.in); got != tt.want {
			t.Errorf("FormatRupiah(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(0.305); got != "30.5%" {
		t.Errorf("FormatPercent(0.305) = %q, want 30.5%%", got)
	}
}

func TestFormatDate(t *testing.T) {
	ts := time.Date(2024, 11, 3, 14, 0, 0, 0, time.UTC)
	if got := FormatDate(ts); got != "2024-11-03" {
		t.Errorf("FormatDate = %q", got)
	}
}

func TestFormatDayOfWeek(t *testing.T) {
	if got := FormatDayOfWeek(0); got != "Mon" {
		t.Errorf("FormatDayOfWeek(0) = %q, want Mon", got)
	}
	if got := FormatDayOfWeek(6); got != "Sun" {
		t.Errorf("FormatDayOfWeek(6) = %q, want Sun", got)
	}
	if got := FormatDayOfWeek(9); got != "???" {
		t.Errorf("FormatDayOfWeek(9) = %q, want ???", got)
	}
}
