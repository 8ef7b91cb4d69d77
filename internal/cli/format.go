// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatRupiah formats an amount in Indonesian rupiah with dot grouping.
// e.g., 1500000 -> "Rp1.500.000"
func FormatRupiah(v float64) string {
	if v < 0 {
		return "-" + FormatRupiah(-v)
	}
	grouped := strings.ReplaceAll(FormatNumber(int64(math.Round(v))), ",", ".")
	return "Rp" + grouped
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatScore formats a Likert-style score with one decimal place.
func FormatScore(f float64) string {
	return fmt.Sprintf("%.1f", f)
}

// FormatDate formats a timestamp as a short date.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatDayOfWeek returns a 3-letter day abbreviation from a weekday number,
// Monday first.
func FormatDayOfWeek(weekday int) string {
	days := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	if weekday >= 0 && weekday < 7 {
		return days[weekday]
	}
	return "???"
}
