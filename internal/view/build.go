package view

import (
	"sort"
	"time"

	"soldash/internal/dataset"
	"soldash/internal/filter"
	"soldash/internal/kpi"
)

// Selections are the filter-widget values of one render, parsed from query
// parameters. Zero values mean "default": all categories up to the display
// cap, the full numeric range, top-N "All".
type Selections struct {
	Categories []string
	RangeMin   *float64
	RangeMax   *float64
	TopN       int
	Threshold  *float64
	Token      string
}

// Options carries display configuration into the builder.
type Options struct {
	MaxCategories int
	TopNChoices   []int
	MaxTableRows  int
}

// ChartRef points a rendered page at one chart endpoint.
type ChartRef struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// Model is a fully resolved, display-ready tab.
type Model struct {
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	LastUpdated time.Time  `json:"last_updated"`
	Warnings    []string   `json:"warnings,omitempty"`
	KPIs        []kpi.Card `json:"kpis"`
	Headers     []string   `json:"headers"`
	Rows        [][]string `json:"rows"`
	RowCount    int        `json:"row_count"`
	TotalCount  int        `json:"total_count"`
	Charts      []ChartRef `json:"charts"`

	// Filter widget state echoed back to the form.
	CategoryOptions    []string `json:"category_options,omitempty"`
	SelectedCategories []string `json:"selected_categories,omitempty"`
	RangeLabel         string   `json:"range_label,omitempty"`
	RangeEnabled       bool     `json:"range_enabled"`
	RangeMin           *float64 `json:"range_min,omitempty"`
	RangeMax           *float64 `json:"range_max,omitempty"`
	TopN               int      `json:"top_n"`
	TopNChoices        []int    `json:"top_n_choices"`
	ThresholdLabel     string   `json:"threshold_label,omitempty"`
	ThresholdEnabled   bool     `json:"threshold_enabled"`
	Threshold          *float64 `json:"threshold,omitempty"`
	Tokens             []string `json:"tokens,omitempty"`
	SelectedToken      string   `json:"selected_token,omitempty"`
}

// IsSelectedCategory reports whether a category is part of the current
// selection. Used by the filter form to echo widget state.
func (m Model) IsSelectedCategory(c string) bool {
	for _, sel := range m.SelectedCategories {
		if sel == c {
			return true
		}
	}
	return false
}

// BaseTable resolves the tab's unfiltered table from the snapshot. Holder
// drill-down tabs materialize the selected token's ranked list as a table.
func BaseTable(snap *dataset.Snapshot, tab TabSpec, sel Selections) dataset.Table {
	if !tab.HolderDrilldown {
		return snap.Table(tab.Dataset)
	}

	token := sel.Token
	if token == "" {
		if tokens := holderTokens(snap); len(tokens) > 0 {
			token = tokens[0]
		}
	}

	rows := make([]dataset.Row, 0, len(snap.Holders[token]))
	for _, h := range snap.Holders[token] {
		rows = append(rows, dataset.Row{
			"Address":   h.Address,
			"Balance":   h.Balance,
			"Share_Pct": h.SharePct,
		})
	}
	return dataset.NewTable([]string{"Address", "Balance", "Share_Pct"}, rows)
}

// FilteredTable applies the tab's filter chain to its base table.
func FilteredTable(snap *dataset.Snapshot, tab TabSpec, sel Selections) dataset.Table {
	t := BaseTable(snap, tab, sel)

	preds := filter.Predicates{
		CategoryColumn: tab.Filter.CategoryColumn,
		Categories:     sel.Categories,
	}
	if tab.Filter.RangeColumn != "" && (sel.RangeMin != nil || sel.RangeMax != nil) {
		r := filter.RangePredicate{Column: tab.Filter.RangeColumn, Min: minOr(sel.RangeMin), Max: maxOr(sel.RangeMax)}
		preds.Range = &r
	}
	if tab.Filter.RankColumn != "" && sel.TopN > 0 {
		preds.TopN = &filter.TopNPredicate{Column: tab.Filter.RankColumn, N: sel.TopN}
	}

	t = filter.Apply(t, preds)

	if tab.Filter.ThresholdColumn != "" && sel.Threshold != nil {
		t = filter.Threshold(t, tab.Filter.ThresholdColumn, *sel.Threshold)
	}
	return t
}

// Build renders one tab model from the snapshot and the current selections.
func Build(snap *dataset.Snapshot, tab TabSpec, sel Selections, opts Options) Model {
	base := BaseTable(snap, tab, sel)
	filtered := FilteredTable(snap, tab, sel)

	m := Model{
		Slug:        tab.Slug,
		Title:       tab.Title,
		LastUpdated: snap.Metadata.LastUpdated,
		Warnings:    snap.Warnings,
		KPIs:        kpi.ResolveAll(filtered, snap.Summary, tab.KPIs),
		RowCount:    filtered.Len(),
		TotalCount:  base.Len(),
		TopN:        sel.TopN,
		TopNChoices: opts.TopNChoices,
	}

	for _, c := range tab.Charts {
		m.Charts = append(m.Charts, ChartRef{Name: c.Name, Title: c.Title})
	}

	m.Headers = make([]string, 0, len(tab.Columns))
	for _, col := range tab.Columns {
		m.Headers = append(m.Headers, col.Header)
	}

	limit := filtered.Len()
	if opts.MaxTableRows > 0 && limit > opts.MaxTableRows {
		limit = opts.MaxTableRows
	}
	m.Rows = make([][]string, 0, limit)
	for i := 0; i < limit; i++ {
		row := make([]string, 0, len(tab.Columns))
		for _, col := range tab.Columns {
			row = append(row, formatCell(filtered, i, col))
		}
		m.Rows = append(m.Rows, row)
	}

	fillFilterState(&m, snap, tab, base, sel, opts)
	return m
}

func fillFilterState(m *Model, snap *dataset.Snapshot, tab TabSpec, base dataset.Table, sel Selections, opts Options) {
	if tab.Filter.CategoryColumn != "" && base.HasColumn(tab.Filter.CategoryColumn) {
		options := base.DistinctStrings(tab.Filter.CategoryColumn)
		if opts.MaxCategories > 0 && len(options) > opts.MaxCategories {
			options = options[:opts.MaxCategories]
		}
		m.CategoryOptions = options
		m.SelectedCategories = sel.Categories
	}

	if tab.Filter.RangeColumn != "" {
		m.RangeEnabled = base.HasColumn(tab.Filter.RangeColumn)
		m.RangeLabel = tab.Filter.RangeLabel
		m.RangeMin = sel.RangeMin
		m.RangeMax = sel.RangeMax
	}

	if tab.Filter.ThresholdColumn != "" {
		m.ThresholdEnabled = base.HasColumn(tab.Filter.ThresholdColumn)
		m.ThresholdLabel = tab.Filter.ThresholdLabel
		m.Threshold = sel.Threshold
	}

	if tab.HolderDrilldown {
		m.Tokens = holderTokens(snap)
		m.SelectedToken = sel.Token
		if m.SelectedToken == "" && len(m.Tokens) > 0 {
			m.SelectedToken = m.Tokens[0]
		}
	}
}

func formatCell(t dataset.Table, row int, col ColumnSpec) string {
	if col.Format == FormatText {
		s := t.String(row, col.Name)
		if s == "" {
			return kpi.PlaceholderNA
		}
		return s
	}

	v, ok := t.Float(row, col.Name)
	if !ok {
		if col.Format == FormatUSD {
			return kpi.PlaceholderUSD
		}
		return kpi.PlaceholderNA
	}

	switch col.Format {
	case FormatUSD:
		return kpi.FormatUSD(v)
	case FormatPercent:
		return kpi.FormatPercent(v)
	case FormatRatio:
		return kpi.FormatRatio(v)
	case FormatGini:
		return kpi.FormatGini(v)
	case FormatAmount:
		return kpi.FormatAmount(v)
	case FormatCount:
		return kpi.FormatCount(v)
	default:
		return kpi.FormatRatio(v)
	}
}

func holderTokens(snap *dataset.Snapshot) []string {
	tokens := make([]string, 0, len(snap.Holders))
	for token := range snap.Holders {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)
	return tokens
}

func minOr(v *float64) float64 {
	if v == nil {
		return -1e308
	}
	return *v
}

func maxOr(v *float64) float64 {
	if v == nil {
		return 1e308
	}
	return *v
}
