package kpi

import (
	"testing"

	"github.com/stretchr/testify/require"

	"soldash/internal/dataset"
)

func TestResolvePrefersFilteredTable(t *testing.T) {
	table := dataset.FromRows([]dataset.Row{
		{"Protocol": "jupiter", "TVL_USD": 2.5e9},
		{"Protocol": "marinade", "TVL_USD": 1.1e9},
	})
	summary := dataset.SummaryStats{"overview": {"total_tvl": 9e9}}

	card := Resolve(table, summary, Spec{
		Label:           "Total TVL",
		Column:          "TVL_USD",
		Aggregate:       AggregateSum,
		Kind:            KindUSD,
		FallbackSection: "overview",
		FallbackKey:     "total_tvl",
	})

	require.Equal(t, "$3.60B", card.Value, "filtered table wins over summary")
	require.False(t, card.FromSummary)
}

func TestResolveFallsBackOnEmptyTable(t *testing.T) {
	summary := dataset.SummaryStats{"overview": {"total_tvl": 9e9}}

	card := Resolve(dataset.Table{}, summary, Spec{
		Label:           "Total TVL",
		Column:          "TVL_USD",
		Aggregate:       AggregateSum,
		Kind:            KindUSD,
		FallbackSection: "overview",
		FallbackKey:     "total_tvl",
	})

	require.Equal(t, "$9.00B", card.Value)
	require.True(t, card.FromSummary)
}

func TestResolveFallsBackOnMissingColumn(t *testing.T) {
	table := dataset.FromRows([]dataset.Row{{"Protocol": "drift"}})
	summary := dataset.SummaryStats{"financials": {"avg_pf": 12.5}}

	card := Resolve(table, summary, Spec{
		Label:           "Avg P/F",
		Column:          "PF_Ratio",
		Aggregate:       AggregateMean,
		Kind:            KindRatio,
		FallbackSection: "financials",
		FallbackKey:     "avg_pf",
	})

	require.Equal(t, "12.50", card.Value)
	require.True(t, card.FromSummary)
}

func TestResolveZeroIsAValue(t *testing.T) {
	table := dataset.FromRows([]dataset.Row{
		{"Protocol": "a", "Fees_24h": 0.0},
	})
	summary := dataset.SummaryStats{"financials": {"total_fees": 5e6}}

	card := Resolve(table, summary, Spec{
		Label:           "24h Fees",
		Column:          "Fees_24h",
		Aggregate:       AggregateSum,
		Kind:            KindUSD,
		FallbackSection: "financials",
		FallbackKey:     "total_fees",
	})

	require.Equal(t, "$0", card.Value, "a legitimate zero does not trigger the fallback")
	require.False(t, card.FromSummary)
}

func TestResolvePlaceholderWhenNothingResolves(t *testing.T) {
	usd := Resolve(dataset.Table{}, nil, Spec{Label: "TVL", Column: "TVL_USD", Kind: KindUSD})
	require.Equal(t, "$0", usd.Value)

	ratio := Resolve(dataset.Table{}, nil, Spec{Label: "P/F", Column: "PF_Ratio", Kind: KindRatio})
	require.Equal(t, "N/A", ratio.Value)
}

func TestResolveRowCount(t *testing.T) {
	table := dataset.FromRows([]dataset.Row{
		{"Protocol": "a"},
		{"Protocol": "b"},
		{"Protocol": "c"},
	})

	card := Resolve(table, nil, Spec{Label: "Protocols", Aggregate: AggregateCount, Kind: KindCount})
	require.Equal(t, "3", card.Value)
}

func TestResolveAllKeepsOrder(t *testing.T) {
	table := dataset.FromRows([]dataset.Row{{"TVL_USD": 1e6, "Fees_24h": 2e3}})

	cards := ResolveAll(table, nil, []Spec{
		{Label: "TVL", Column: "TVL_USD", Aggregate: AggregateSum, Kind: KindUSD},
		{Label: "Fees", Column: "Fees_24h", Aggregate: AggregateSum, Kind: KindUSD},
	})

	require.Len(t, cards, 2)
	require.Equal(t, "TVL", cards[0].Label)
	require.Equal(t, "$1.00M", cards[0].Value)
	require.Equal(t, "$2.00K", cards[1].Value)
}
