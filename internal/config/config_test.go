package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "soldash", cfg.App.Name)
	require.Equal(t, ":8080", cfg.Server.Addr)
	require.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	require.Equal(t, 15*time.Second, cfg.Server.ShutdownTimeout)
	require.Equal(t, "data/processed", cfg.Data.Dir)
	require.Equal(t, "metadata.json", cfg.Data.MetadataFile)
	require.Equal(t, []int{5, 10, 20, 50}, cfg.Display.TopNChoices)
	require.Equal(t, 200, cfg.Display.MaxTableRows)
	require.Equal(t, 960, cfg.Charts.Width)
	require.Equal(t, 10, cfg.Charts.HistogramBins)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app:
  environment: production
server:
  addr: ":9090"
  read_timeout: 5s
data:
  dir: /var/lib/soldash
display:
  max_table_rows: 50
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "production", cfg.App.Environment)
	require.Equal(t, ":9090", cfg.Server.Addr)
	require.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	require.Equal(t, "/var/lib/soldash", cfg.Data.Dir)
	require.Equal(t, 50, cfg.Display.MaxTableRows)

	// Untouched keys keep their defaults.
	require.Equal(t, "metadata.json", cfg.Data.MetadataFile)
	require.Equal(t, 960, cfg.Charts.Width)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SOLDASH_SERVER_ADDR", ":7070")
	t.Setenv("SOLDASH_DATA_DIR", "/tmp/snapshots")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, ":7070", cfg.Server.Addr)
	require.Equal(t, "/tmp/snapshots", cfg.Data.Dir)
}

func TestLoadBadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{{{"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Data:    DataConfig{Dir: "data", MetadataFile: "metadata.json"},
			Display: DisplayConfig{MaxCategories: 10, MaxTableRows: 200},
			Charts:  ChartsConfig{Width: 960, Height: 480, HistogramBins: 10},
		}
	}

	cfg := valid()
	require.NoError(t, cfg.Validate())

	cfg = valid()
	cfg.Data.Dir = ""
	require.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Display.MaxCategories = 0
	require.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Charts.Width = 0
	require.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Charts.HistogramBins = -1
	require.Error(t, cfg.Validate())
}
