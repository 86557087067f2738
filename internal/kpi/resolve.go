package kpi

import (
	"soldash/internal/dataset"
	"soldash/internal/filter"
)

// Aggregate selects how a KPI is computed from the filtered table.
type Aggregate string

const (
	AggregateSum   Aggregate = "sum"
	AggregateMean  Aggregate = "mean"
	AggregateCount Aggregate = "count"
)

// Kind selects the display formatting of a resolved value.
type Kind string

const (
	KindUSD     Kind = "usd"
	KindPercent Kind = "percent"
	KindRatio   Kind = "ratio"
	KindGini    Kind = "gini"
	KindCount   Kind = "count"
)

// Spec describes one KPI card: how to compute it from the filtered table and
// where to find its precomputed fallback in the summary record.
type Spec struct {
	Label           string
	Column          string
	Aggregate       Aggregate
	Kind            Kind
	FallbackSection string
	FallbackKey     string
}

// Card is one resolved, display-ready KPI.
type Card struct {
	Label       string `json:"label"`
	Value       string `json:"value"`
	FromSummary bool   `json:"from_summary"`
}

// Resolve computes a KPI from the filtered table, falling back to the summary
// record only when the table is empty or lacks the column. A legitimate zero
// from a non-empty table is a value, not an absence.
func Resolve(t dataset.Table, summary dataset.SummaryStats, spec Spec) Card {
	if v, ok := fromTable(t, spec); ok {
		return Card{Label: spec.Label, Value: Format(spec.Kind, v)}
	}

	if v, ok := summary.Lookup(spec.FallbackSection, spec.FallbackKey); ok {
		return Card{Label: spec.Label, Value: Format(spec.Kind, v), FromSummary: true}
	}

	return Card{Label: spec.Label, Value: placeholder(spec.Kind)}
}

// ResolveAll resolves a list of KPI specs against the same view.
func ResolveAll(t dataset.Table, summary dataset.SummaryStats, specs []Spec) []Card {
	cards := make([]Card, 0, len(specs))
	for _, spec := range specs {
		cards = append(cards, Resolve(t, summary, spec))
	}
	return cards
}

func fromTable(t dataset.Table, spec Spec) (float64, bool) {
	if t.IsEmpty() {
		return 0, false
	}

	switch spec.Aggregate {
	case AggregateCount:
		if spec.Column == "" {
			return float64(t.Len()), true
		}
		if !t.HasColumn(spec.Column) {
			return 0, false
		}
		return float64(filter.Count(t, spec.Column)), true
	case AggregateMean:
		return filter.Mean(t, spec.Column)
	default:
		return filter.Sum(t, spec.Column)
	}
}

// Format renders a value for a KPI kind.
func Format(kind Kind, v float64) string {
	switch kind {
	case KindPercent:
		return FormatPercent(v)
	case KindRatio:
		return FormatRatio(v)
	case KindGini:
		return FormatGini(v)
	case KindCount:
		return FormatCount(v)
	default:
		return FormatUSD(v)
	}
}

func placeholder(kind Kind) string {
	if kind == KindUSD {
		return PlaceholderUSD
	}
	return PlaceholderNA
}
