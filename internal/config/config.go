// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load(ctx) layers a YAML file and environment variables on top.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"fmt"
	"strings"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8050".
	Addr string `koanf:"addr"`

	// DataSource selects the dataset loader: csv or sqlite.
	DataSource string `koanf:"data_source"`

	// DataPath is the CSV file or SQLite database holding the medal records.
	DataPath string `koanf:"data_path"`

	// SQLiteTable is the table read when DataSource is sqlite.
	SQLiteTable string `koanf:"sqlite_table"`

	// ChartWidth and ChartHeight size the rendered PNG charts in pixels.
	ChartWidth  int `koanf:"chart_width"`
	ChartHeight int `koanf:"chart_height"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:    "info",
		LogFormat:   "text",
		Addr:        ":8050",
		DataSource:  "csv",
		DataPath:    "Olympic_data.csv",
		SQLiteTable: "medals",
		ChartWidth:  640,
		ChartHeight: 420,
	}
}

// Validate checks the values Load cannot fix up on its own.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.DataPath == "":
		return fmt.Errorf("%w: data_path must not be empty", ErrInvalidConfig)
	case c.ChartWidth <= 0 || c.ChartHeight <= 0:
		return fmt.Errorf("%w: chart size must be positive", ErrInvalidConfig)
	}
	switch strings.ToLower(c.DataSource) {
	case "csv", "sqlite":
	default:
		return fmt.Errorf("%w: data_source must be csv or sqlite, got %q", ErrInvalidConfig, c.DataSource)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}
