package pipeline

import "github.com/threeasure/fomodash/internal/model"

// Apply returns the records passing every predicate of the filter. The input
// slice is never modified; an empty result is a valid outcome.
func Apply(recs []model.Record, f model.Filter) []model.Record {
	if f.IsZero() {
		out := make([]model.Record, len(recs))
		copy(out, recs)
		return out
	}

	out := make([]model.Record, 0, len(recs))
	for _, r := range recs {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// Faculties returns the distinct cleaned faculty labels in sorted order.
func Faculties(recs []model.Record) []string {
	return distinct(recs, func(r model.Record) string { return r.Faculty })
}

// Programs returns the distinct cleaned program labels in sorted order.
func Programs(recs []model.Record) []string {
	return distinct(recs, func(r model.Record) string { return r.Program })
}

func distinct(recs []model.Record, key func(model.Record) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range recs {
		k := key(r)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sortStrings(out)
	return out
}
