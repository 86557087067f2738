// Package filter implements the derived-view contract applied to loaded
// tables: category membership, inclusive numeric range, and stable top-N,
// composed by conjunction in that fixed order. Predicates never fail the
// caller; a predicate that cannot be evaluated is skipped.
package filter

import (
	"sort"

	"soldash/internal/dataset"
)

// RangePredicate keeps rows whose Column value lies within [Min, Max].
type RangePredicate struct {
	Column string
	Min    float64
	Max    float64
}

// TopNPredicate keeps at most N rows with the largest Column value, ties
// broken by original row order. N <= 0 means "All".
type TopNPredicate struct {
	Column string
	N      int
}

// Predicates is the optional set applied to one table.
type Predicates struct {
	CategoryColumn string
	Categories     []string
	Range          *RangePredicate
	TopN           *TopNPredicate
}

// Apply produces the derived table. An empty input is returned unchanged
// with no predicate evaluated.
func Apply(t dataset.Table, p Predicates) dataset.Table {
	if t.IsEmpty() {
		return t
	}

	t = applyCategory(t, p.CategoryColumn, p.Categories)
	if p.Range != nil {
		t = applyRange(t, *p.Range)
	}
	if p.TopN != nil {
		t = applyTopN(t, *p.TopN)
	}
	return t
}

func applyCategory(t dataset.Table, column string, selected []string) dataset.Table {
	if len(selected) == 0 || column == "" || !t.HasColumn(column) {
		return t
	}

	set := make(map[string]struct{}, len(selected))
	for _, c := range selected {
		set[c] = struct{}{}
	}

	kept := make([]dataset.Row, 0, t.Len())
	for i, row := range t.Rows {
		cell, present := t.Cell(i, column)
		if present {
			if _, isString := cell.(string); !isString {
				// Type mismatch: skip the whole predicate.
				return t
			}
		}
		if _, ok := set[t.String(i, column)]; ok {
			kept = append(kept, row)
		}
	}
	return t.Derive(kept)
}

func applyRange(t dataset.Table, r RangePredicate) dataset.Table {
	if r.Column == "" || !t.HasColumn(r.Column) {
		return t
	}

	kept := make([]dataset.Row, 0, t.Len())
	for i, row := range t.Rows {
		v, ok := t.Float(i, r.Column)
		if !ok {
			if _, present := t.Cell(i, r.Column); present {
				// Present but non-numeric: skip the whole predicate.
				return t
			}
			// Null or absent cell: the row has no value in range.
			continue
		}
		if v >= r.Min && v <= r.Max {
			kept = append(kept, row)
		}
	}
	return t.Derive(kept)
}

func applyTopN(t dataset.Table, top TopNPredicate) dataset.Table {
	if top.N <= 0 || top.Column == "" || !t.HasColumn(top.Column) {
		return t
	}
	if t.Len() <= top.N {
		return t
	}

	type ranked struct {
		index int
		value float64
	}

	candidates := make([]ranked, 0, t.Len())
	for i := range t.Rows {
		v, ok := t.Float(i, top.Column)
		if !ok {
			if _, present := t.Cell(i, top.Column); present {
				return t
			}
			continue
		}
		candidates = append(candidates, ranked{index: i, value: v})
	}

	// Stable: equal values keep original row order.
	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].value > candidates[b].value
	})
	if len(candidates) > top.N {
		candidates = candidates[:top.N]
	}

	// Restore original row order within the winning set.
	sort.Slice(candidates, func(a, b int) bool {
		return candidates[a].index < candidates[b].index
	})

	kept := make([]dataset.Row, 0, len(candidates))
	for _, c := range candidates {
		kept = append(kept, t.Rows[c.index])
	}
	return t.Derive(kept)
}

// Threshold keeps rows whose column value is at most limit. It follows the
// same silent-skip semantics as the core predicates and runs after them.
func Threshold(t dataset.Table, column string, limit float64) dataset.Table {
	if t.IsEmpty() || column == "" || !t.HasColumn(column) {
		return t
	}

	kept := make([]dataset.Row, 0, t.Len())
	for i, row := range t.Rows {
		v, ok := t.Float(i, column)
		if !ok {
			if _, present := t.Cell(i, column); present {
				return t
			}
			continue
		}
		if v <= limit {
			kept = append(kept, row)
		}
	}
	return t.Derive(kept)
}
