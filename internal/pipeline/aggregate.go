package pipeline

import (
	"sort"
	"strconv"

	"github.com/threeasure/fomodash/internal/model"
)

// Selector extracts a category label from a record; ok=false excludes the
// record from the aggregation (missing category).
type Selector func(model.Record) (string, bool)

// Value extracts a numeric value from a record; ok=false means missing.
type Value func(model.Record) (float64, bool)

// Selectors for the categorical fields used by the views.
var (
	ByFaculty       = stringSelector(func(r model.Record) string { return r.Faculty })
	ByProgram       = stringSelector(func(r model.Record) string { return r.Program })
	ByFomoCategory  = stringSelector(func(r model.Record) string { return r.FomoCategory })
	ByFinanceBucket = stringSelector(func(r model.Record) string { return r.FinanceBucket })
	ByRatioBucket   = stringSelector(func(r model.Record) string { return r.RatioBucket })
	BySupportNeed   = stringSelector(func(r model.Record) string { return r.SupportNeed })
)

// Values for the numeric fields used by the views.
var (
	ValExpenseRatio = floatValue(func(r model.Record) *float64 { return r.ExpenseRatio })
	ValFomoSpend    = floatValue(func(r model.Record) *float64 { return r.FomoSpend })
	ValAllowance    = floatValue(func(r model.Record) *float64 { return r.Allowance })
	ValPsychScore   = floatValue(func(r model.Record) *float64 { return r.PsychScore })
	ValStressIndex  = floatValue(func(r model.Record) *float64 { return r.StressIndex })
	ValRelativeFomo = floatValue(func(r model.Record) *float64 { return r.RelativeFomoScore })
)

func stringSelector(get func(model.Record) string) Selector {
	return func(r model.Record) (string, bool) {
		s := get(r)
		return s, s != ""
	}
}

func floatValue(get func(model.Record) *float64) Value {
	return func(r model.Record) (float64, bool) {
		v := get(r)
		if v == nil {
			return 0, false
		}
		return *v, true
	}
}

// CountBy counts records per category, sorted by label. Records without the
// category are excluded. An empty input yields an empty result.
func CountBy(recs []model.Record, key Selector) []model.GroupCount {
	counts := make(map[string]int)
	for _, r := range recs {
		if k, ok := key(r); ok {
			counts[k]++
		}
	}

	out := make([]model.GroupCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, model.GroupCount{Label: k, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

// MeanBy computes the per-category mean of a numeric field, sorted by label.
// Records missing either the category or the value are excluded; categories
// with no defined values are omitted entirely. Values accumulate in record
// order so repeated runs sum identically.
func MeanBy(recs []model.Record, key Selector, val Value) []model.GroupMean {
	type acc struct {
		sum float64
		n   int
	}
	sums := make(map[string]*acc)
	for _, r := range recs {
		k, ok := key(r)
		if !ok {
			continue
		}
		v, ok := val(r)
		if !ok {
			continue
		}
		a := sums[k]
		if a == nil {
			a = &acc{}
			sums[k] = a
		}
		a.sum += v
		a.n++
	}

	out := make([]model.GroupMean, 0, len(sums))
	for k, a := range sums {
		out = append(out, model.GroupMean{Label: k, Count: a.n, Mean: a.sum / float64(a.n)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

// TopK returns the k groups with the highest mean, descending, ties broken
// by the incoming (label) order. The input slice is not modified.
func TopK(groups []model.GroupMean, k int) []model.GroupMean {
	out := make([]model.GroupMean, len(groups))
	copy(out, groups)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Mean > out[j].Mean })
	if k >= 0 && k < len(out) {
		out = out[:k]
	}
	return out
}

// TopCounts returns the k groups with the highest count, descending, ties
// broken by the incoming (label) order. The input slice is not modified.
func TopCounts(groups []model.GroupCount, k int) []model.GroupCount {
	out := make([]model.GroupCount, len(groups))
	copy(out, groups)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if k >= 0 && k < len(out) {
		out = out[:k]
	}
	return out
}

// CrossTabulate builds a row-normalized percentage table between two
// categorical fields. rowOrder/colOrder pin the label order; nil means the
// observed labels sorted ascending. Records missing either category are
// excluded; an all-missing input yields an empty table.
func CrossTabulate(recs []model.Record, rowKey, colKey Selector, rowOrder, colOrder []string) model.CrossTab {
	counts := make(map[string]map[string]int)
	rowSeen := make(map[string]bool)
	colSeen := make(map[string]bool)

	for _, r := range recs {
		rk, ok := rowKey(r)
		if !ok {
			continue
		}
		ck, ok := colKey(r)
		if !ok {
			continue
		}
		if counts[rk] == nil {
			counts[rk] = make(map[string]int)
		}
		counts[rk][ck]++
		rowSeen[rk] = true
		colSeen[ck] = true
	}

	rows := orderLabels(rowSeen, rowOrder)
	cols := orderLabels(colSeen, colOrder)
	if len(rows) == 0 || len(cols) == 0 {
		return model.CrossTab{}
	}

	ct := model.CrossTab{
		RowLabels: rows,
		ColLabels: cols,
		Cells:     make([][]float64, len(rows)),
		RowCounts: make([]int, len(rows)),
	}
	for i, rk := range rows {
		ct.Cells[i] = make([]float64, len(cols))
		total := 0
		for _, n := range counts[rk] {
			total += n
		}
		ct.RowCounts[i] = total
		if total == 0 {
			continue
		}
		for j, ck := range cols {
			ct.Cells[i][j] = float64(counts[rk][ck]) / float64(total) * 100
		}
	}
	return ct
}

// orderLabels filters a canonical order down to observed labels, or sorts
// the observed labels when no order is given.
func orderLabels(seen map[string]bool, order []string) []string {
	var out []string
	if order != nil {
		for _, l := range order {
			if seen[l] {
				out = append(out, l)
			}
		}
		return out
	}
	for l := range seen {
		out = append(out, l)
	}
	sortStrings(out)
	return out
}

// Summarize computes distribution statistics for a numeric field. ok=false
// when no record carries a value.
func Summarize(recs []model.Record, val Value) (model.NumSummary, bool) {
	var vals []float64
	for _, r := range recs {
		if v, ok := val(r); ok {
			vals = append(vals, v)
		}
	}
	if len(vals) == 0 {
		return model.NumSummary{}, false
	}

	var sum float64
	for _, v := range vals {
		sum += v
	}

	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	s := model.NumSummary{
		Count:  len(vals),
		Mean:   sum / float64(len(vals)),
		Median: median(sorted),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
	}
	return s, true
}

// Histogram buckets a numeric field into bins equal-width bins over the
// observed range. Returns nil when no values are defined.
func Histogram(recs []model.Record, val Value, bins int) []model.GroupCount {
	if bins < 1 {
		bins = 1
	}
	var vals []float64
	for _, r := range recs {
		if v, ok := val(r); ok {
			vals = append(vals, v)
		}
	}
	if len(vals) == 0 {
		return nil
	}

	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	width := (hi - lo) / float64(bins)
	if width == 0 {
		return []model.GroupCount{{Label: formatBinLabel(lo, hi), Count: len(vals)}}
	}

	counts := make([]int, bins)
	for _, v := range vals {
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}

	out := make([]model.GroupCount, bins)
	for i, n := range counts {
		out[i] = model.GroupCount{
			Label: formatBinLabel(lo+float64(i)*width, lo+float64(i+1)*width),
			Count: n,
		}
	}
	return out
}

// Overview computes the headline metrics for the introduction view.
func Overview(recs []model.Record) model.OverviewStats {
	stats := model.OverviewStats{Respondents: len(recs)}

	for _, gc := range CountBy(recs, ByFaculty) {
		if gc.Count > stats.TopFacultyCount {
			stats.TopFaculty = gc.Label
			stats.TopFacultyCount = gc.Count
		}
	}

	if ms := MeanBy(recs, constantSelector, ValExpenseRatio); len(ms) > 0 {
		m := ms[0].Mean
		stats.MeanExpenseRatio = &m
	}

	var spends []float64
	for _, r := range recs {
		if r.FomoSpend != nil {
			spends = append(spends, *r.FomoSpend)
		}
	}
	if len(spends) > 0 {
		sort.Float64s(spends)
		med := median(spends)
		stats.MedianFomoSpend = &med
	}

	for _, r := range recs {
		if r.Timestamp == nil {
			continue
		}
		ts := *r.Timestamp
		if stats.FirstResponse == nil || ts.Before(*stats.FirstResponse) {
			t := ts
			stats.FirstResponse = &t
		}
		if stats.LastResponse == nil || ts.After(*stats.LastResponse) {
			t := ts
			stats.LastResponse = &t
		}
	}

	return stats
}

// ScatterPoints pairs two numeric fields, labelled by a category for
// coloring; rows missing either value are excluded.
func ScatterPoints(recs []model.Record, x, y Value, category Selector) []model.ScatterPoint {
	var out []model.ScatterPoint
	for _, r := range recs {
		xv, ok := x(r)
		if !ok {
			continue
		}
		yv, ok := y(r)
		if !ok {
			continue
		}
		p := model.ScatterPoint{X: xv, Y: yv}
		if category != nil {
			p.Category, _ = category(r)
		}
		out = append(out, p)
	}
	return out
}

func constantSelector(model.Record) (string, bool) { return "all", true }

// median of an already-sorted slice.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func sortStrings(s []string) { sort.Strings(s) }

func formatBinLabel(lo, hi float64) string {
	return strconv.FormatFloat(lo, 'g', 3, 64) + "-" + strconv.FormatFloat(hi, 'g', 3, 64)
}
