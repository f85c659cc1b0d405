// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jonathan/fleet-estimator/internal/llm"
	"github.com/jonathan/fleet-estimator/internal/types"
)

// Defaults applied by MergeWithDefaults and Defaults.
const (
	DefaultPort      = 8080
	DefaultCacheSize = 256
	DefaultCacheTTL  = "1h"
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or come from the environment.
type Config struct {
	APIKey          string `json:"api_key,omitempty"`          // Gemini API key
	DatabaseURL     string `json:"database_url,omitempty"`     // PostgreSQL connection URL
	Port            int    `json:"port,omitempty"`             // HTTP listen port
	FleetID         string `json:"fleet_id,omitempty"`         // Fleet all vehicles are stored under
	ModelTier       string `json:"model_tier,omitempty"`       // lite, standard or advanced
	EstimateTimeout string `json:"estimate_timeout,omitempty"` // Go duration bounding each model call
	CacheSize       int    `json:"cache_size,omitempty"`       // Max cached AI estimates
	CacheTTL        string `json:"cache_ttl,omitempty"`        // Go duration a cached estimate stays fresh
	Verbose         bool   `json:"verbose,omitempty"`          // Print detailed debug information
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Port:      DefaultPort,
		FleetID:   types.DefaultFleetID,
		ModelTier: string(llm.TierStandard),
		CacheSize: DefaultCacheSize,
		CacheTTL:  DefaultCacheTTL,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv returns a copy of c with GEMINI_API_KEY, DATABASE_URL, PORT and
// FLEET_ID applied where set. Environment values win over file values.
func (c *Config) FromEnv() (Config, error) {
	result := *c

	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		result.APIKey = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		result.DatabaseURL = v
	}
	if v := os.Getenv("FLEET_ID"); v != "" {
		result.FleetID = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PORT: %v", err)
		}
		result.Port = port
	}

	return result, nil
}

// Validate checks that the configuration has valid values.
// Required fields are checked by the commands that need them.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535, got %d", c.Port)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("config error: 'cache_size' must be non-negative")
	}
	if _, err := llm.ParseModelTier(c.ModelTier); err != nil {
		return fmt.Errorf("config error: 'model_tier': %w", err)
	}
	if _, err := parseDuration(c.EstimateTimeout); err != nil {
		return fmt.Errorf("config error: 'estimate_timeout': %w", err)
	}
	if _, err := parseDuration(c.CacheTTL); err != nil {
		return fmt.Errorf("config error: 'cache_ttl': %w", err)
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.FleetID == "" {
		result.FleetID = defaults.FleetID
	}
	if result.ModelTier == "" {
		result.ModelTier = defaults.ModelTier
	}
	if result.EstimateTimeout == "" {
		result.EstimateTimeout = defaults.EstimateTimeout
	}
	if result.CacheTTL == "" {
		result.CacheTTL = defaults.CacheTTL
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.CacheSize == 0 {
		result.CacheSize = defaults.CacheSize
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Tier returns the configured model tier.
func (c *Config) Tier() llm.ModelTier {
	tier, err := llm.ParseModelTier(c.ModelTier)
	if err != nil {
		return llm.TierStandard
	}
	return tier
}

// Timeout returns the per-call estimate timeout, zero when unset.
func (c *Config) Timeout() time.Duration {
	d, _ := parseDuration(c.EstimateTimeout)
	return d
}

// TTL returns how long cached estimates stay fresh, zero when unset.
func (c *Config) TTL() time.Duration {
	d, _ := parseDuration(c.CacheTTL)
	return d
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("must be non-negative, got %s", s)
	}
	return d, nil
}
