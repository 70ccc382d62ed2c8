// Package config loads CLI configuration from objectkit.yml.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the tool-wide defaults that flags fall back to.
type Config struct {
	Output OutputConfig `mapstructure:"output"`
}

// OutputConfig controls how inspection results are rendered.
type OutputConfig struct {
	Format  string `mapstructure:"format"`
	NoColor bool   `mapstructure:"no_color"`
}

// Load reads objectkit.yml (or objectkit.yaml) from the working directory.
// A missing file is not an error; defaults apply.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("output.format", "table")
	v.SetDefault("output.no_color", false)

	v.SetConfigName("objectkit")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Output.Format != "table" && cfg.Output.Format != "json" {
		return nil, fmt.Errorf("invalid output format %q (want table or json)", cfg.Output.Format)
	}
	return &cfg, nil
}
