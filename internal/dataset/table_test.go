package dataset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromRowsColumnUnion(t *testing.T) {
	table := FromRows([]Row{
		{"Protocol": "jupiter", "TVL_USD": 100.0},
		{"Protocol": "raydium", "Category": "DEX"},
	})

	require.Equal(t, []string{"Category", "Protocol", "TVL_USD"}, table.Columns)
	require.True(t, table.HasColumn("Category"))
	require.False(t, table.HasColumn("Gini_Coefficient"))
}

func TestFloatAccessor(t *testing.T) {
	table := FromRows([]Row{
		{"Protocol": "jupiter", "TVL_USD": 100.5, "Fees_24h": nil},
	})

	v, ok := table.Float(0, "TVL_USD")
	require.True(t, ok)
	require.Equal(t, 100.5, v)

	_, ok = table.Float(0, "Fees_24h")
	require.False(t, ok, "null cell is not a number")

	_, ok = table.Float(0, "Protocol")
	require.False(t, ok, "string cell is not a number")

	_, ok = table.Float(0, "Missing")
	require.False(t, ok)

	_, ok = table.Float(5, "TVL_USD")
	require.False(t, ok, "out of range row")
}

func TestStringAndCellAccessors(t *testing.T) {
	table := FromRows([]Row{
		{"Protocol": "orca", "TVL_USD": 1.0},
	})

	require.Equal(t, "orca", table.String(0, "Protocol"))
	require.Equal(t, "", table.String(0, "TVL_USD"))
	require.Equal(t, "", table.String(0, "Missing"))

	_, present := table.Cell(0, "Protocol")
	require.True(t, present)
	_, present = table.Cell(0, "Missing")
	require.False(t, present)
}

func TestDistinctStrings(t *testing.T) {
	table := FromRows([]Row{
		{"Category": "DEX"},
		{"Category": "Lending"},
		{"Category": "DEX"},
		{"Category": nil},
	})

	require.Equal(t, []string{"DEX", "Lending"}, table.DistinctStrings("Category"))
}

func TestDeriveKeepsColumns(t *testing.T) {
	table := FromRows([]Row{
		{"Protocol": "a"},
		{"Protocol": "b"},
	})

	derived := table.Derive(table.Rows[:1])
	require.Equal(t, table.Columns, derived.Columns)
	require.Equal(t, 1, derived.Len())
	require.False(t, table.IsEmpty())
	require.True(t, Table{}.IsEmpty())
}

func TestSummaryLookup(t *testing.T) {
	s := SummaryStats{"overview": {"total_tvl": 42.0}}

	v, ok := s.Lookup("overview", "total_tvl")
	require.True(t, ok)
	require.Equal(t, 42.0, v)

	_, ok = s.Lookup("overview", "missing")
	require.False(t, ok)
	_, ok = s.Lookup("missing", "total_tvl")
	require.False(t, ok)
}
