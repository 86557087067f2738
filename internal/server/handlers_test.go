package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"soldash/internal/config"
	"soldash/internal/view"
)

func writeDataFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func writeSnapshotDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeDataFile(t, dir, "metadata.json", `{
		"last_updated": "2025-06-01T12:00:00Z",
		"data_files": {
			"overview": "overview.json",
			"financials": "financials.json",
			"token_distribution": "distribution.json",
			"category_tvl": "category_tvl.json",
			"summary_stats": "summary.json",
			"top_holders": "holders.json"
		}
	}`)
	writeDataFile(t, dir, "overview.json", `[
		{"Protocol":"jupiter","Category":"DEX","TVL_USD":2500000000,"Market_Cap":1200000000,"Change_24h_Pct":3.1},
		{"Protocol":"marinade","Category":"Liquid Staking","TVL_USD":1100000000}
	]`)
	writeDataFile(t, dir, "financials.json", `[
		{"Protocol":"jupiter","Fees_24h":500000,"Revenue_24h":120000,"PF_Ratio":6.5,"PR_Ratio":27.4}
	]`)
	writeDataFile(t, dir, "distribution.json", `[
		{"Token":"JUP","Gini_Coefficient":0.82,"Top_10_Share_Pct":22.1,"Top_100_Share_Pct":41.5,"Total_Holders":955000}
	]`)
	writeDataFile(t, dir, "category_tvl.json", `[
		{"Category":"DEX","TVL_USD":2500000000},
		{"Category":"Liquid Staking","TVL_USD":1100000000}
	]`)
	writeDataFile(t, dir, "summary.json", `{"overview":{"total_tvl":3600000000,"protocol_count":2}}`)
	writeDataFile(t, dir, "holders.json", `{
		"JUP":[{"address":"addr1","balance":1000000.5,"share_pct":1.2}]
	}`)
	return dir
}

func testConfig(dataDir string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Addr: ":0", CORSOrigin: "*"},
		Data:   config.DataConfig{Dir: dataDir, MetadataFile: "metadata.json"},
		Display: config.DisplayConfig{
			MaxCategories: 10,
			TopNChoices:   []int{5, 10, 20, 50},
			MaxTableRows:  200,
		},
		Charts: config.ChartsConfig{Width: 480, Height: 240, HistogramBins: 10},
	}
}

func newTestServer(t *testing.T, dataDir string) *httptest.Server {
	t.Helper()
	srv := New(testConfig(dataDir), zerolog.Nop())
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, ts *httptest.Server, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	var sb strings.Builder
	buf := make([]byte, 32*1024)
	for {
		n, err := resp.Body.Read(buf)
		sb.Write(buf[:n])
		if err != nil {
			break
		}
	}
	return sb.String()
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, writeSnapshotDir(t))
	resp := get(t, ts, "/healthz")
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestReadyz(t *testing.T) {
	ts := newTestServer(t, writeSnapshotDir(t))
	resp := get(t, ts, "/readyz")
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestReadyzWithoutMetadata(t *testing.T) {
	ts := newTestServer(t, t.TempDir())
	resp := get(t, ts, "/readyz")
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestIndexRedirectsToFirstTab(t *testing.T) {
	ts := newTestServer(t, writeSnapshotDir(t))

	client := &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	resp, err := client.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/tab/overview", resp.Header.Get("Location"))
}

func TestTabRenders(t *testing.T) {
	ts := newTestServer(t, writeSnapshotDir(t))
	resp := get(t, ts, "/tab/overview")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	body := readBody(t, resp)
	require.Contains(t, body, "jupiter")
	require.Contains(t, body, "$2.50B")
	require.Contains(t, body, "Total TVL")
}

func TestTabWithFilters(t *testing.T) {
	ts := newTestServer(t, writeSnapshotDir(t))
	resp := get(t, ts, "/tab/overview?category=DEX&top=5")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	require.Contains(t, body, "jupiter")
	require.NotContains(t, body, "marinade")
}

func TestUnknownTab(t *testing.T) {
	ts := newTestServer(t, writeSnapshotDir(t))
	resp := get(t, ts, "/tab/nope")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTabWithoutMetadataRendersError(t *testing.T) {
	ts := newTestServer(t, t.TempDir())
	resp := get(t, ts, "/tab/overview")

	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Content-Type"), "text/html")
}

func TestChartPNG(t *testing.T) {
	ts := newTestServer(t, writeSnapshotDir(t))
	resp := get(t, ts, "/tab/overview/chart/tvl.png")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	require.True(t, strings.HasPrefix(readBody(t, resp), "\x89PNG"))
}

func TestUnknownChart(t *testing.T) {
	ts := newTestServer(t, writeSnapshotDir(t))
	resp := get(t, ts, "/tab/overview/chart/nope.png")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPITabs(t *testing.T) {
	ts := newTestServer(t, writeSnapshotDir(t))
	resp := get(t, ts, "/api/tabs")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Content-Type"), "application/json")

	var tabs []navTab
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tabs))
	require.Len(t, tabs, len(view.Tabs()))
	require.Equal(t, "overview", tabs[0].Slug)
}

func TestAPITab(t *testing.T) {
	ts := newTestServer(t, writeSnapshotDir(t))
	resp := get(t, ts, "/api/tab/overview?category=DEX")

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var model view.Model
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&model))
	require.Equal(t, "overview", model.Slug)
	require.Equal(t, 1, model.RowCount)
	require.Equal(t, 2, model.TotalCount)
}

func TestAPITabUnknown(t *testing.T) {
	ts := newTestServer(t, writeSnapshotDir(t))
	resp := get(t, ts, "/api/tab/nope")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestParseSelections(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/tab/overview?category=DEX&category=Lending&min=100&max=900&top=10&threshold=12.5&token=JUP", nil)
	sel := parseSelections(req)

	require.Equal(t, []string{"DEX", "Lending"}, sel.Categories)
	require.NotNil(t, sel.RangeMin)
	require.Equal(t, 100.0, *sel.RangeMin)
	require.NotNil(t, sel.RangeMax)
	require.Equal(t, 900.0, *sel.RangeMax)
	require.Equal(t, 10, sel.TopN)
	require.NotNil(t, sel.Threshold)
	require.Equal(t, 12.5, *sel.Threshold)
	require.Equal(t, "JUP", sel.Token)
}

func TestParseSelectionsDefaults(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/tab/overview?min=abc&top=-3", nil)
	sel := parseSelections(req)

	require.Empty(t, sel.Categories)
	require.Nil(t, sel.RangeMin)
	require.Nil(t, sel.RangeMax)
	require.Zero(t, sel.TopN)
	require.Nil(t, sel.Threshold)
}
