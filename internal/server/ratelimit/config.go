package ratelimit

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Defaults used when the corresponding RATE_LIMIT_* variable is unset or invalid.
const (
	defaultLimit           = 1000
	defaultWindow          = time.Minute
	defaultCleanupInterval = 5 * time.Minute

	// model calls are the expensive tier
	defaultEstimateLimit  = 10
	defaultEstimateWindow = time.Hour
	defaultEstimateBurst  = 2
)

// EndpointConfig is the limit applied to one route. A Path ending in "/"
// covers every path below it.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int           // requests per Window
	Window time.Duration
	Burst  int // 0 means Limit
}

// LoadConfig reads RATE_LIMIT_* variables from the process environment.
func LoadConfig() *Config {
	return loadConfig(os.Getenv)
}

func loadConfig(getenv func(string) string) *Config {
	env := envReader{getenv: getenv}

	if !env.boolean("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	estimates := EndpointConfig{
		Limit:  env.integer("RATE_LIMIT_ESTIMATE_LIMIT", defaultEstimateLimit),
		Window: env.duration("RATE_LIMIT_ESTIMATE_WINDOW", defaultEstimateWindow),
		Burst:  env.integer("RATE_LIMIT_ESTIMATE_BURST", defaultEstimateBurst),
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    env.integer("RATE_LIMIT_DEFAULT_LIMIT", defaultLimit),
		DefaultWindow:   env.duration("RATE_LIMIT_DEFAULT_WINDOW", defaultWindow),
		CleanupInterval: env.duration("RATE_LIMIT_CLEANUP_INTERVAL", defaultCleanupInterval),
		Whitelist:       env.set("RATE_LIMIT_WHITELIST"),
		Blacklist:       env.set("RATE_LIMIT_BLACKLIST"),
		EndpointConfigs: endpointConfigs(estimates),
	}
}

// DefaultEndpointConfigs returns the per-route limits with the built-in
// estimate tier. Routes not listed fall back to the default limit, and
// GET /health is never limited.
func DefaultEndpointConfigs() []EndpointConfig {
	return endpointConfigs(EndpointConfig{
		Limit:  defaultEstimateLimit,
		Window: defaultEstimateWindow,
		Burst:  defaultEstimateBurst,
	})
}

func endpointConfigs(estimates EndpointConfig) []EndpointConfig {
	ai := estimates
	ai.Path, ai.Method = "/estimates/ai", "POST"
	// POST below /vehicles/ is only /vehicles/{id}/estimate
	vehicleEstimate := estimates
	vehicleEstimate.Path, vehicleEstimate.Method = "/vehicles/", "POST"

	return []EndpointConfig{
		ai,
		vehicleEstimate,
		{Path: "/vehicles", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/vehicles/", Method: "DELETE", Limit: 100, Window: time.Minute, Burst: 10},
	}
}

// envReader parses typed settings, falling back to a default and logging
// when a value cannot be parsed.
type envReader struct {
	getenv func(string) string
}

func (e envReader) lookup(key string) (string, bool) {
	value := strings.TrimSpace(e.getenv(key))
	return value, value != ""
}

func (e envReader) boolean(key string, fallback bool) bool {
	value, ok := e.lookup(key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("[rate-limit] ignoring %s=%q: %v", key, value, err)
		return fallback
	}
	return b
}

func (e envReader) integer(key string, fallback int) int {
	value, ok := e.lookup(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		log.Printf("[rate-limit] ignoring %s=%q: want a non-negative integer", key, value)
		return fallback
	}
	return n
}

func (e envReader) duration(key string, fallback time.Duration) time.Duration {
	value, ok := e.lookup(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		log.Printf("[rate-limit] ignoring %s=%q: want a positive duration", key, value)
		return fallback
	}
	return d
}

// set parses a comma separated list of client IDs.
func (e envReader) set(key string) map[string]bool {
	result := make(map[string]bool)
	value, ok := e.lookup(key)
	if !ok {
		return result
	}
	for _, id := range strings.Split(value, ",") {
		if id = strings.TrimSpace(id); id != "" {
			result[id] = true
		}
	}
	return result
}
