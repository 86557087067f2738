// Package view turns one loaded snapshot plus the current filter selections
// into display-ready tab models. Tabs are data: one TabSpec per tab, one
// builder for all of them.
package view

import (
	"soldash/internal/charts"
	"soldash/internal/dataset"
	"soldash/internal/kpi"
)

// CellFormat selects how a table cell renders.
type CellFormat string

const (
	FormatText    CellFormat = "text"
	FormatUSD     CellFormat = "usd"
	FormatPercent CellFormat = "percent"
	FormatRatio   CellFormat = "ratio"
	FormatGini    CellFormat = "gini"
	FormatCount   CellFormat = "count"
	FormatAmount  CellFormat = "amount"
)

// ColumnSpec maps a dataset column to a table column of the rendered tab.
type ColumnSpec struct {
	Name   string
	Header string
	Format CellFormat
}

// ChartSpec describes one chart of a tab. Dataset overrides the tab's own
// dataset (unfiltered) when set, e.g. the category aggregate pie.
type ChartSpec struct {
	Name        string
	Kind        charts.Kind
	Title       string
	Dataset     string
	LabelColumn string
	ValueColumn string
	XColumn     string
	YColumn     string
	GroupColumn string
}

// FilterSpec wires the shared filter widgets to this tab's columns. Empty
// column names disable the corresponding widget.
type FilterSpec struct {
	CategoryColumn  string
	RangeColumn     string
	RangeLabel      string
	RankColumn      string
	ThresholdColumn string
	ThresholdLabel  string
}

// TabSpec is the full, declarative description of one dashboard tab.
type TabSpec struct {
	Slug            string
	Title           string
	Dataset         string
	Columns         []ColumnSpec
	KPIs            []kpi.Spec
	Charts          []ChartSpec
	Filter          FilterSpec
	HolderDrilldown bool
}

// Chart returns the named chart spec of this tab.
func (t TabSpec) Chart(name string) (ChartSpec, bool) {
	for _, c := range t.Charts {
		if c.Name == name {
			return c, true
		}
	}
	return ChartSpec{}, false
}

// Tabs returns the dashboard's tab registry in display order.
func Tabs() []TabSpec {
	return []TabSpec{
		{
			Slug:    "overview",
			Title:   "Overview",
			Dataset: dataset.DatasetOverview,
			Columns: []ColumnSpec{
				{Name: dataset.ColProtocol, Header: "Protocol", Format: FormatText},
				{Name: dataset.ColCategory, Header: "Category", Format: FormatText},
				{Name: dataset.ColPriceUSD, Header: "Price", Format: FormatUSD},
				{Name: dataset.ColMarketCap, Header: "Market Cap", Format: FormatUSD},
				{Name: dataset.ColTVLUSD, Header: "TVL", Format: FormatUSD},
				{Name: dataset.ColChange24hPct, Header: "24h %", Format: FormatPercent},
				{Name: dataset.ColChange7dPct, Header: "7d %", Format: FormatPercent},
			},
			KPIs: []kpi.Spec{
				{Label: "Total TVL", Column: dataset.ColTVLUSD, Aggregate: kpi.AggregateSum, Kind: kpi.KindUSD, FallbackSection: "overview", FallbackKey: "total_tvl"},
				{Label: "Total Market Cap", Column: dataset.ColMarketCap, Aggregate: kpi.AggregateSum, Kind: kpi.KindUSD, FallbackSection: "overview", FallbackKey: "total_market_cap"},
				{Label: "Protocols", Aggregate: kpi.AggregateCount, Kind: kpi.KindCount, FallbackSection: "overview", FallbackKey: "protocol_count"},
				{Label: "Avg 24h Change", Column: dataset.ColChange24hPct, Aggregate: kpi.AggregateMean, Kind: kpi.KindPercent, FallbackSection: "overview", FallbackKey: "avg_change_24h_pct"},
			},
			Charts: []ChartSpec{
				{Name: "tvl", Kind: charts.KindBar, Title: "TVL by Protocol", LabelColumn: dataset.ColProtocol, ValueColumn: dataset.ColTVLUSD},
				{Name: "categories", Kind: charts.KindPie, Title: "TVL by Category", Dataset: dataset.DatasetCategoryTVL, LabelColumn: dataset.ColCategory, ValueColumn: dataset.ColTVLUSD},
			},
			Filter: FilterSpec{
				CategoryColumn: dataset.ColCategory,
				RangeColumn:    dataset.ColTVLUSD,
				RangeLabel:     "TVL (USD)",
				RankColumn:     dataset.ColTVLUSD,
			},
		},
		{
			Slug:    "financials",
			Title:   "P/F Ratios",
			Dataset: dataset.DatasetFinancials,
			Columns: []ColumnSpec{
				{Name: dataset.ColProtocol, Header: "Protocol", Format: FormatText},
				{Name: dataset.ColFees24h, Header: "Fees 24h", Format: FormatUSD},
				{Name: dataset.ColRevenue24h, Header: "Revenue 24h", Format: FormatUSD},
				{Name: dataset.ColPFRatio, Header: "P/F", Format: FormatRatio},
				{Name: dataset.ColPRRatio, Header: "P/R", Format: FormatRatio},
			},
			KPIs: []kpi.Spec{
				{Label: "Fees 24h", Column: dataset.ColFees24h, Aggregate: kpi.AggregateSum, Kind: kpi.KindUSD, FallbackSection: "financials", FallbackKey: "total_fees_24h"},
				{Label: "Revenue 24h", Column: dataset.ColRevenue24h, Aggregate: kpi.AggregateSum, Kind: kpi.KindUSD, FallbackSection: "financials", FallbackKey: "total_revenue_24h"},
				{Label: "Avg P/F", Column: dataset.ColPFRatio, Aggregate: kpi.AggregateMean, Kind: kpi.KindRatio, FallbackSection: "financials", FallbackKey: "avg_pf_ratio"},
				{Label: "Avg P/R", Column: dataset.ColPRRatio, Aggregate: kpi.AggregateMean, Kind: kpi.KindRatio, FallbackSection: "financials", FallbackKey: "avg_pr_ratio"},
			},
			Charts: []ChartSpec{
				{Name: "revenue", Kind: charts.KindBar, Title: "Revenue 24h by Protocol", LabelColumn: dataset.ColProtocol, ValueColumn: dataset.ColRevenue24h},
				{Name: "pf", Kind: charts.KindBar, Title: "P/F Ratio by Protocol", LabelColumn: dataset.ColProtocol, ValueColumn: dataset.ColPFRatio},
			},
			Filter: FilterSpec{
				RankColumn:      dataset.ColRevenue24h,
				ThresholdColumn: dataset.ColPFRatio,
				ThresholdLabel:  "Max P/F",
			},
		},
		{
			Slug:    "distribution",
			Title:   "Token Distribution",
			Dataset: dataset.DatasetDistribution,
			Columns: []ColumnSpec{
				{Name: dataset.ColToken, Header: "Token", Format: FormatText},
				{Name: dataset.ColTotalHolders, Header: "Holders", Format: FormatCount},
				{Name: dataset.ColTop10SharePct, Header: "Top 10 Share", Format: FormatPercent},
				{Name: dataset.ColTop100SharePct, Header: "Top 100 Share", Format: FormatPercent},
				{Name: dataset.ColGiniCoefficient, Header: "Gini", Format: FormatGini},
			},
			KPIs: []kpi.Spec{
				{Label: "Tokens", Aggregate: kpi.AggregateCount, Kind: kpi.KindCount, FallbackSection: "distribution", FallbackKey: "token_count"},
				{Label: "Avg Gini", Column: dataset.ColGiniCoefficient, Aggregate: kpi.AggregateMean, Kind: kpi.KindGini, FallbackSection: "distribution", FallbackKey: "avg_gini"},
				{Label: "Avg Top 100 Share", Column: dataset.ColTop100SharePct, Aggregate: kpi.AggregateMean, Kind: kpi.KindPercent, FallbackSection: "distribution", FallbackKey: "avg_top100_share_pct"},
			},
			Charts: []ChartSpec{
				{Name: "gini", Kind: charts.KindHistogram, Title: "Gini Coefficient Distribution", ValueColumn: dataset.ColGiniCoefficient},
				{Name: "concentration", Kind: charts.KindScatter, Title: "Top 100 Share vs Gini", XColumn: dataset.ColTop100SharePct, YColumn: dataset.ColGiniCoefficient},
			},
			Filter: FilterSpec{
				RankColumn:      dataset.ColGiniCoefficient,
				ThresholdColumn: dataset.ColGiniCoefficient,
				ThresholdLabel:  "Max Gini",
			},
		},
		{
			Slug:            "holders",
			Title:           "Top Holders",
			Dataset:         dataset.DatasetTopHolders,
			HolderDrilldown: true,
			Columns: []ColumnSpec{
				{Name: "Address", Header: "Address", Format: FormatText},
				{Name: "Balance", Header: "Balance", Format: FormatAmount},
				{Name: "Share_Pct", Header: "Share", Format: FormatPercent},
			},
			KPIs: []kpi.Spec{
				{Label: "Holders Listed", Aggregate: kpi.AggregateCount, Kind: kpi.KindCount},
				{Label: "Listed Share", Column: "Share_Pct", Aggregate: kpi.AggregateSum, Kind: kpi.KindPercent},
			},
			Charts: []ChartSpec{
				{Name: "shares", Kind: charts.KindPie, Title: "Holder Distribution", LabelColumn: "Address", ValueColumn: "Share_Pct"},
			},
			Filter: FilterSpec{
				RankColumn: "Balance",
			},
		},
	}
}

// Find returns the tab with the given slug.
func Find(slug string) (TabSpec, bool) {
	for _, tab := range Tabs() {
		if tab.Slug == slug {
			return tab, true
		}
	}
	return TabSpec{}, false
}
