// Package survey reads the raw questionnaire export into typed records.
package survey

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/threeasure/fomodash/internal/model"
)

// Table is the raw survey table: one RawRecord per response row plus the set
// of columns the source actually carried. Downstream feature derivation is
// gated on column presence, never on guesses.
type Table struct {
	Rows       []model.RawRecord
	Columns    map[string]bool // normalized header -> present
	CellErrors int             // cells that failed to parse and became missing
}

// Has reports whether the source carried the given normalized column.
func (t *Table) Has(col string) bool { return t.Columns[col] }

// ReadFile loads a delimited survey export. The only fatal condition is an
// absent or unreadable source; individual bad cells become missing values.
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening survey data %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading survey data %s: %w", path, err)
	}
	return t, nil
}

// Read parses survey CSV from a reader. The first row is the header; header
// names are normalized (trimmed, lower-cased) before matching. Unknown extra
// columns are ignored, short rows are padded with missing values.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1 // rows may be ragged; tolerate

	header, err := cr.Read()
	if err == io.EOF {
		return &Table{Columns: map[string]bool{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	// Map column index -> normalized name.
	names := make([]string, len(header))
	cols := make(map[string]bool, len(header))
	for i, h := range header {
		n := NormalizeHeader(h)
		names[i] = n
		if n != "" {
			cols[n] = true
		}
	}

	t := &Table{Columns: cols}

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", len(t.Rows)+2, err)
		}

		cells := make(map[string]string, len(row))
		for i, v := range row {
			if i < len(names) && names[i] != "" {
				cells[names[i]] = v
			}
		}
		t.Rows = append(t.Rows, t.buildRecord(cells))
	}

	return t, nil
}

// NormalizeHeader trims and lower-cases a raw header cell.
func NormalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}

func (t *Table) buildRecord(cells map[string]string) model.RawRecord {
	rec := model.RawRecord{
		Faculty:        strings.TrimSpace(cells[ColFaculty]),
		Program:        strings.TrimSpace(cells[ColProgram]),
		FeelsFomoOften: strings.TrimSpace(cells[ColFeelsFomoOften]),
		SupportNeed:    strings.TrimSpace(cells[ColSupportNeed]),
	}

	rec.Timestamp = t.timeCell(cells, ColTimestamp)
	rec.Allowance = t.numCell(cells, ColAllowance)
	rec.FomoSpend = t.numCell(cells, ColFomoSpend)
	rec.FinanceSkill = t.numCell(cells, ColFinanceSkill)
	rec.FomoSpendFreq = t.numCell(cells, ColFomoSpendFreq)
	rec.FomoActivityFreq = t.numCell(cells, ColFomoActivityFreq)
	rec.EmotionImpact = t.numCell(cells, ColEmotionImpact)
	rec.FinanceStressFreq = t.numCell(cells, ColFinanceStressFreq)
	rec.MotivationLossFreq = t.numCell(cells, ColMotivationLossFreq)
	rec.FomoStressFreq = t.numCell(cells, ColFomoStressFreq)
	rec.PsychScore = t.numCell(cells, ColPsychScore)
	rec.SupportScore = t.numCell(cells, ColSupportScore)

	return rec
}

func (t *Table) numCell(cells map[string]string, col string) *float64 {
	raw, ok := cells[col]
	if !ok || strings.TrimSpace(raw) == "" {
		return nil
	}
	v, ok := ParseNumber(raw)
	if !ok {
		t.CellErrors++
		return nil
	}
	return &v
}

func (t *Table) timeCell(cells map[string]string, col string) *time.Time {
	raw, ok := cells[col]
	if !ok || strings.TrimSpace(raw) == "" {
		return nil
	}
	ts, ok := ParseTimestamp(raw)
	if !ok {
		t.CellErrors++
		return nil
	}
	return &ts
}

// timestampLayouts are tried in order. The questionnaire export writes
// Google-Forms style stamps; ISO variants cover hand-edited files.
var timestampLayouts = []string{
	"2006/01/02 3:04:05 PM MST",
	"2006/01/02 15:04:05",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// ParseTimestamp parses a timestamp cell permissively.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// ParseNumber parses a numeric cell permissively: currency prefixes and
// grouping separators are tolerated, Indonesian decimal commas accepted.
// Returns false for anything that is not recognizably a number.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.TrimPrefix(s, "rp")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	// "1.250.000" -> grouping dots; "1.250.000,50" -> dot groups + decimal
	// comma; "3.5" -> plain decimal. Disambiguate by shape.
	switch {
	case strings.Contains(s, ".") && strings.Contains(s, ","):
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case strings.Contains(s, ","):
		if isGrouped(s, ',') {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.Replace(s, ",", ".", 1)
		}
	case strings.Contains(s, "."):
		if isGrouped(s, '.') {
			s = strings.ReplaceAll(s, ".", "")
		}
	}

	var v float64
	var seen, frac bool
	var div float64 = 1
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			if frac {
				div *= 10
				v += float64(c-'0') / div
			} else {
				v = v*10 + float64(c-'0')
			}
			seen = true
		case c == '.' && !frac:
			frac = true
		default:
			return 0, false
		}
	}
	if !seen {
		return 0, false
	}
	if neg {
		v = -v
	}
	return v, true
}

// isGrouped reports whether sep splits s into a thousands-grouped integer
// (every group after the first exactly three digits).
func isGrouped(s string, sep byte) bool {
	parts := strings.Split(s, string(sep))
	if len(parts) < 2 {
		return false
	}
	if len(parts[0]) == 0 || len(parts[0]) > 3 {
		return false
	}
	for _, p := range parts[1:] {
		if len(p) != 3 {
			return false
		}
		for i := 0; i < len(p); i++ {
			if p[i] < '0' || p[i] > '9' {
				return false
			}
		}
	}
	return true
}
