package charts

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"soldash/internal/dataset"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func renderToBuf(t *testing.T, kind Kind, table dataset.Table, p Params) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Render(kind, table, p, &buf))
	require.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic), "output is a PNG")
	return buf.Bytes()
}

func chartTable() dataset.Table {
	return dataset.FromRows([]dataset.Row{
		{"Protocol": "jupiter", "TVL_USD": 2.5e9, "Gini_Coefficient": 0.82, "Top_100_Share_Pct": 41.5, "Category": "DEX"},
		{"Protocol": "raydium", "TVL_USD": 1.8e9, "Gini_Coefficient": 0.74, "Top_100_Share_Pct": 38.0, "Category": "DEX"},
		{"Protocol": "marinade", "TVL_USD": 1.1e9, "Gini_Coefficient": 0.61, "Top_100_Share_Pct": 22.3, "Category": "Liquid Staking"},
	})
}

func TestBarChart(t *testing.T) {
	renderToBuf(t, KindBar, chartTable(), Params{
		Title:       "TVL by Protocol",
		LabelColumn: "Protocol",
		ValueColumn: "TVL_USD",
		Width:       640,
		Height:      360,
	})
}

func TestPieChartSkipsNonPositive(t *testing.T) {
	table := dataset.FromRows([]dataset.Row{
		{"Category": "DEX", "TVL_USD": 4.3e9},
		{"Category": "Dead", "TVL_USD": 0.0},
		{"Category": "Broken", "TVL_USD": -1.0},
	})
	renderToBuf(t, KindPie, table, Params{
		Title:       "TVL by Category",
		LabelColumn: "Category",
		ValueColumn: "TVL_USD",
		Width:       640,
		Height:      360,
	})
}

func TestScatterChart(t *testing.T) {
	renderToBuf(t, KindScatter, chartTable(), Params{
		Title:   "Share vs Gini",
		XColumn: "Top_100_Share_Pct",
		YColumn: "Gini_Coefficient",
		Width:   640,
		Height:  360,
	})
}

func TestScatterChartGrouped(t *testing.T) {
	renderToBuf(t, KindScatter, chartTable(), Params{
		Title:       "Share vs Gini",
		XColumn:     "Top_100_Share_Pct",
		YColumn:     "Gini_Coefficient",
		GroupColumn: "Category",
		Width:       640,
		Height:      360,
	})
}

func TestHistogramChart(t *testing.T) {
	renderToBuf(t, KindHistogram, chartTable(), Params{
		Title:       "Gini Distribution",
		ValueColumn: "Gini_Coefficient",
		Width:       640,
		Height:      360,
		Bins:        5,
	})
}

func TestEmptyTableRendersPlaceholder(t *testing.T) {
	for _, kind := range []Kind{KindBar, KindPie, KindScatter, KindHistogram} {
		renderToBuf(t, kind, dataset.Table{}, Params{
			Title:       "Empty",
			LabelColumn: "Protocol",
			ValueColumn: "TVL_USD",
			XColumn:     "Top_100_Share_Pct",
			YColumn:     "Gini_Coefficient",
			Width:       640,
			Height:      360,
		})
	}
}

func TestUnknownKind(t *testing.T) {
	var buf bytes.Buffer
	require.Error(t, Render(Kind("sparkline"), chartTable(), Params{}, &buf))
}
