// Package config provides Viper-based hierarchical configuration management.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// DefaultFioBaseURL is the production endpoint of the Fio bank read API.
const DefaultFioBaseURL = "https://fioapi.fio.cz/v1/rest"

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Fio struct {
		Token           string `mapstructure:"token" yaml:"-"` // Never serialize the token
		BaseURL         string `mapstructure:"base_url" yaml:"base_url"`
		CooldownSeconds int    `mapstructure:"cooldown_seconds" yaml:"cooldown_seconds"`
	} `mapstructure:"fio" yaml:"fio"`

	Firefly struct {
		URL   string `mapstructure:"url" yaml:"url"`
		Token string `mapstructure:"token" yaml:"-"` // Never serialize the token
	} `mapstructure:"firefly" yaml:"firefly"`

	Sync struct {
		LookbackDays int    `mapstructure:"lookback_days" yaml:"lookback_days"`
		OverlapDays  int    `mapstructure:"overlap_days" yaml:"overlap_days"`
		Timezone     string `mapstructure:"timezone" yaml:"timezone"`
	} `mapstructure:"sync" yaml:"sync"`

	Counterparties struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"counterparties" yaml:"counterparties"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then an optional config file, then environment variables.
// Service credentials are validated separately per command, see RequireLedger
// and RequireSync.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.fio-firefly")
	v.AddConfigPath(".fio-firefly")
	v.AddConfigPath(".")

	v.SetEnvPrefix("FIO_FIREFLY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Continue with defaults and env vars, the file is optional.
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// Secrets keep their conventional unprefixed names.
	if err := v.BindEnv("fio.token", "FIO_TOKEN"); err != nil {
		fmt.Printf("Warning: failed to bind FIO_TOKEN environment variable: %v\n", err)
	}
	if err := v.BindEnv("firefly.url", "FIREFLY_URL"); err != nil {
		fmt.Printf("Warning: failed to bind FIREFLY_URL environment variable: %v\n", err)
	}
	if err := v.BindEnv("firefly.token", "FIREFLY_TOKEN"); err != nil {
		fmt.Printf("Warning: failed to bind FIREFLY_TOKEN environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("fio.base_url", DefaultFioBaseURL)
	v.SetDefault("fio.cooldown_seconds", 30)

	v.SetDefault("sync.lookback_days", 3000)
	v.SetDefault("sync.overlap_days", 1)
	v.SetDefault("sync.timezone", "Europe/Prague")

	v.SetDefault("counterparties.file", "counterparties.yaml")
}

// validateConfig validates the configuration values.
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.Sync.LookbackDays < 1 {
		return fmt.Errorf("sync.lookback_days must be positive, got: %d", config.Sync.LookbackDays)
	}

	// Window falls back to its built-in default on a zero overlap, so a
	// configured zero would silently become one day. Reject it instead.
	if config.Sync.OverlapDays < 1 {
		return fmt.Errorf("sync.overlap_days must be positive, got: %d", config.Sync.OverlapDays)
	}

	if config.Fio.CooldownSeconds < 0 {
		return fmt.Errorf("fio.cooldown_seconds must not be negative, got: %d", config.Fio.CooldownSeconds)
	}

	if _, err := time.LoadLocation(config.Sync.Timezone); err != nil {
		return fmt.Errorf("invalid sync.timezone: %s", config.Sync.Timezone)
	}

	return nil
}

// RequireLedger checks the values needed to talk to the Firefly III service.
func (c *Config) RequireLedger() error {
	if c.Firefly.URL == "" {
		return fmt.Errorf("FIREFLY_URL is required")
	}
	if c.Firefly.Token == "" {
		return fmt.Errorf("FIREFLY_TOKEN is required")
	}
	return nil
}

// RequireSync checks everything a full sync run needs.
func (c *Config) RequireSync() error {
	if err := c.RequireLedger(); err != nil {
		return err
	}
	if c.Fio.Token == "" {
		return fmt.Errorf("FIO_TOKEN is required")
	}
	return nil
}

// Location returns the configured statement time zone.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Sync.Timezone)
}

// ConfigureLoggingFromConfig configures logging based on the Config struct.
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
