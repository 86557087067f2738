package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"soldash/internal/logging"
)

// Config materialises application configuration.
type Config struct {
	App     AppConfig      `mapstructure:"app"`
	Logging logging.Config `mapstructure:"logging"`
	Server  ServerConfig   `mapstructure:"server"`
	Data    DataConfig     `mapstructure:"data"`
	Display DisplayConfig  `mapstructure:"display"`
	Charts  ChartsConfig   `mapstructure:"charts"`
}

// AppConfig general metadata.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

// ServerConfig governs the HTTP dashboard listener.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	CORSOrigin      string        `mapstructure:"cors_origin"`
}

// DataConfig locates the snapshot directory written by the collection pipeline.
type DataConfig struct {
	Dir          string `mapstructure:"dir"`
	MetadataFile string `mapstructure:"metadata_file"`
}

// DisplayConfig sets filter-widget defaults and table caps.
type DisplayConfig struct {
	MaxCategories int   `mapstructure:"max_categories"`
	TopNChoices   []int `mapstructure:"top_n_choices"`
	MaxTableRows  int   `mapstructure:"max_table_rows"`
}

// ChartsConfig sets rendered chart dimensions.
type ChartsConfig struct {
	Width         int `mapstructure:"width"`
	Height        int `mapstructure:"height"`
	HistogramBins int `mapstructure:"histogram_bins"`
}

// Load builds configuration from file, environment, and defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SOLDASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, decodeHook()); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "soldash")
	v.SetDefault("app.environment", "development")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "15s")
	v.SetDefault("server.cors_origin", "*")

	v.SetDefault("data.dir", "data/processed")
	v.SetDefault("data.metadata_file", "metadata.json")

	v.SetDefault("display.max_categories", 10)
	v.SetDefault("display.top_n_choices", []int{5, 10, 20, 50})
	v.SetDefault("display.max_table_rows", 200)

	v.SetDefault("charts.width", 960)
	v.SetDefault("charts.height", 480)
	v.SetDefault("charts.histogram_bins", 10)
}

func decodeHook() viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}
}

// Validate performs basic sanity checks on the configuration values.
func (c *Config) Validate() error {
	if c.Data.Dir == "" {
		return fmt.Errorf("data.dir must not be empty")
	}
	if c.Data.MetadataFile == "" {
		return fmt.Errorf("data.metadata_file must not be empty")
	}
	if c.Display.MaxCategories <= 0 {
		return fmt.Errorf("display.max_categories must be greater than zero")
	}
	if c.Display.MaxTableRows <= 0 {
		return fmt.Errorf("display.max_table_rows must be greater than zero")
	}
	if c.Charts.Width <= 0 || c.Charts.Height <= 0 {
		return fmt.Errorf("charts dimensions must be greater than zero")
	}
	if c.Charts.HistogramBins <= 0 {
		return fmt.Errorf("charts.histogram_bins must be greater than zero")
	}
	return nil
}
