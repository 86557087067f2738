package dataset

import "time"

// Logical dataset names referenced by the snapshot metadata. The analysis
// pipeline maps each name to a concrete filename in metadata.json.
const (
	DatasetOverview     = "overview"
	DatasetFinancials   = "financials"
	DatasetDistribution = "token_distribution"
	DatasetCategoryTVL  = "category_tvl"
	DatasetSummaryStats = "summary_stats"
	DatasetTopHolders   = "top_holders"
)

// Canonical column names exposed by the upstream data contract. Any of these
// may be absent from a given snapshot; the dashboard degrades per column.
const (
	ColProtocol     = "Protocol"
	ColCategory     = "Category"
	ColPriceUSD     = "Price_USD"
	ColMarketCap    = "Market_Cap"
	ColTVLUSD       = "TVL_USD"
	ColChange24hPct = "Change_24h_Pct"
	ColChange7dPct  = "Change_7d_Pct"

	ColFees24h    = "Fees_24h"
	ColRevenue24h = "Revenue_24h"
	ColPFRatio    = "PF_Ratio"
	ColPRRatio    = "PR_Ratio"

	ColToken           = "Token"
	ColTotalHolders    = "Total_Holders"
	ColTop10SharePct   = "Top_10_Share_Pct"
	ColTop100SharePct  = "Top_100_Share_Pct"
	ColGiniCoefficient = "Gini_Coefficient"
)

// TableDatasets lists the logical names deserialized as row tables.
var TableDatasets = []string{
	DatasetOverview,
	DatasetFinancials,
	DatasetDistribution,
	DatasetCategoryTVL,
}

// Metadata describes one published snapshot of the processed data directory.
type Metadata struct {
	LastUpdated time.Time         `json:"last_updated"`
	DataFiles   map[string]string `json:"data_files"`
}

// HolderRow is one entry of a per-token ranked holder list.
type HolderRow struct {
	Address  string  `json:"address"`
	Balance  float64 `json:"balance"`
	SharePct float64 `json:"share_pct"`
}

// SummaryStats is the nested mapping of precomputed scalar KPIs, used as a
// fallback when the corresponding filtered table is empty.
type SummaryStats map[string]map[string]float64

// Lookup fetches one scalar from the summary record.
func (s SummaryStats) Lookup(section, key string) (float64, bool) {
	sec, ok := s[section]
	if !ok {
		return 0, false
	}
	v, ok := sec[key]
	return v, ok
}
