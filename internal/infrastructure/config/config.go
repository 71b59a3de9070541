// Package config provides centralized configuration management
// using Viper for configuration loading and validation
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/alchemorsel/mealcompose/internal/application/composition"
	"github.com/alchemorsel/mealcompose/internal/domain/measurement"
)

// Config holds all engine configuration
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Matching   MatchingConfig   `mapstructure:"matching"`
	Scheduling SchedulingConfig `mapstructure:"scheduling"`
	Units      UnitsConfig      `mapstructure:"units"`
	Names      NamesConfig      `mapstructure:"names"`
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`
	LogFormat   string `mapstructure:"log_format"`
	Debug       bool   `mapstructure:"debug"`
}

// MatchingConfig contains fuzzy-matching tunables
type MatchingConfig struct {
	Threshold float64 `mapstructure:"threshold"`
}

// SchedulingConfig contains scheduler tunables
type SchedulingConfig struct {
	HorizonMinutes int `mapstructure:"horizon_minutes"`
}

// UnitEntry extends the conversion table from configuration
type UnitEntry struct {
	Canonical string  `mapstructure:"canonical"`
	Family    string  `mapstructure:"family"`
	ToBase    float64 `mapstructure:"to_base"`
}

// UnitsConfig contains conversion-table extensions
type UnitsConfig struct {
	Extra map[string]UnitEntry `mapstructure:"extra"`
}

// NamesConfig contains name-normalization extensions
type NamesConfig struct {
	ExtraStopwords          []string `mapstructure:"extra_stopwords"`
	ExtraSingularExceptions []string `mapstructure:"extra_singular_exceptions"`
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/mealcompose")
	}

	v.SetEnvPrefix("MEALCOMPOSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "mealcompose")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.log_format", "json")
	v.SetDefault("app.debug", false)

	v.SetDefault("matching.threshold", 0.85)
	v.SetDefault("scheduling.horizon_minutes", 360)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Matching.Threshold <= 0 || c.Matching.Threshold > 1 {
		return fmt.Errorf("matching.threshold must be in (0, 1]")
	}
	if c.Scheduling.HorizonMinutes <= 0 {
		return fmt.Errorf("scheduling.horizon_minutes must be greater than 0")
	}
	for alias, entry := range c.Units.Extra {
		switch measurement.Family(entry.Family) {
		case measurement.FamilyVolume, measurement.FamilyWeight, measurement.FamilyCount:
		default:
			return fmt.Errorf("units.extra.%s: unknown family %q", alias, entry.Family)
		}
		if entry.ToBase <= 0 {
			return fmt.Errorf("units.extra.%s: to_base must be greater than 0", alias)
		}
	}
	return nil
}

// EngineOptions maps the configuration onto the composition service
// options
func (c *Config) EngineOptions() composition.Options {
	opts := composition.Options{
		FuzzyMatchThreshold:     c.Matching.Threshold,
		HorizonMinutes:          c.Scheduling.HorizonMinutes,
		ExtraStopwords:          c.Names.ExtraStopwords,
		ExtraSingularExceptions: c.Names.ExtraSingularExceptions,
	}
	if len(c.Units.Extra) > 0 {
		opts.ExtraUnits = make(map[string]measurement.UnitDefinition, len(c.Units.Extra))
		for alias, entry := range c.Units.Extra {
			opts.ExtraUnits[alias] = measurement.UnitDefinition{
				Canonical: entry.Canonical,
				Family:    measurement.Family(entry.Family),
				ToBase:    entry.ToBase,
			}
		}
	}
	return opts
}

// IsDevelopment returns true if running in development
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}
