package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all configuration for building a FRED loader.
type Config struct {
	// FredAPIKey authenticates every request to the FRED API.
	FredAPIKey string `mapstructure:"fred_api_key"`

	// FredBaseURL is the API endpoint root (configurable for testing).
	FredBaseURL string `mapstructure:"fred_base_url"`

	// TimeoutSeconds bounds each HTTP request. Zero disables the timeout.
	TimeoutSeconds int `mapstructure:"timeout_seconds"`

	// RetryCount enables transparent retries of transient failures when
	// greater than zero. The default is zero: rate-limit and transient
	// errors are surfaced to the caller, not retried.
	RetryCount int `mapstructure:"retry_count"`

	// RateLimitRPS and RateLimitBurst tune the client-side request budget.
	RateLimitRPS   float64 `mapstructure:"rate_limit_rps"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
}

// Load reads configuration from environment variables and optional config file.
// Environment variables take precedence over config file values.
//
// Expected environment variables:
//   - FRED_API_KEY (required)
//   - FRED_BASE_URL (optional, defaults to production)
//   - FRED_TIMEOUT_SECONDS (optional)
//   - FRED_RETRY_COUNT (optional)
//   - FRED_RATE_LIMIT_RPS (optional)
//   - FRED_RATE_LIMIT_BURST (optional)
func Load() (*Config, error) {
	v := viper.New()

	// Set up environment variable support
	v.SetEnvPrefix("") // No prefix, use full names
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("fred_base_url", "https://api.stlouisfed.org/fred")
	v.SetDefault("timeout_seconds", 30)
	v.SetDefault("retry_count", 0)
	v.SetDefault("rate_limit_rps", 2.0)
	v.SetDefault("rate_limit_burst", 1)

	// Optionally read from config file if it exists
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.freddata")

	// Read config file (ignore if not found)
	_ = v.ReadInConfig()

	// Bind environment variables
	v.BindEnv("fred_api_key", "FRED_API_KEY")
	v.BindEnv("fred_base_url", "FRED_BASE_URL")
	v.BindEnv("timeout_seconds", "FRED_TIMEOUT_SECONDS")
	v.BindEnv("retry_count", "FRED_RETRY_COUNT")
	v.BindEnv("rate_limit_rps", "FRED_RATE_LIMIT_RPS")
	v.BindEnv("rate_limit_burst", "FRED_RATE_LIMIT_BURST")

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.FredAPIKey == "" {
		return nil, fmt.Errorf("missing required configuration: FRED_API_KEY")
	}

	return config, nil
}
