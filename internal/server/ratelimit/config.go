package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Environment variables read by LoadConfig.
const (
	EnvEnabled         = "CV_SITE_RATE_LIMIT_ENABLED"
	EnvDefaultLimit    = "CV_SITE_RATE_LIMIT_DEFAULT_LIMIT"
	EnvDefaultWindow   = "CV_SITE_RATE_LIMIT_DEFAULT_WINDOW"
	EnvThemeLimit      = "CV_SITE_RATE_LIMIT_THEME_LIMIT"
	EnvCleanupInterval = "CV_SITE_RATE_LIMIT_CLEANUP_INTERVAL"
	EnvWhitelist       = "CV_SITE_RATE_LIMIT_WHITELIST"
	EnvBlacklist       = "CV_SITE_RATE_LIMIT_BLACKLIST"
)

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	enabled := getEnvBool(EnvEnabled, true)
	if !enabled {
		return &Config{
			Enabled: false,
		}
	}

	return &Config{
		Enabled:         enabled,
		DefaultLimit:    getEnvInt(EnvDefaultLimit, 600),
		DefaultWindow:   getEnvDuration(EnvDefaultWindow, time.Minute),
		CleanupInterval: getEnvDuration(EnvCleanupInterval, 5*time.Minute),
		Whitelist:       parseIPList(getEnvString(EnvWhitelist, "")),
		Blacklist:       parseIPList(getEnvString(EnvBlacklist, "")),
		EndpointConfigs: DefaultEndpointConfigs(getEnvInt(EnvThemeLimit, 60)),
	}
}

// DefaultEndpointConfigs returns the endpoint-specific limits. themeLimit is
// the per-minute budget for theme changes.
func DefaultEndpointConfigs(themeLimit int) []EndpointConfig {
	return []EndpointConfig{
		// Writes: theme selection mutates the session
		{Path: "/theme", Method: "POST", Limit: themeLimit, Window: time.Minute, Burst: 10},

		// JSON API shares one bucket
		{Path: "/api/", Method: "GET", Limit: 300, Window: time.Minute, Burst: 30},

		// Page, static files: default limit. Health and metrics: unlimited in the matcher.
	}
}

// getEnvString gets an environment variable as a string with a default value.
func getEnvString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets an environment variable as a boolean with a default value.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration gets an environment variable as a duration with a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a map.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	if list == "" {
		return result
	}

	ips := strings.Split(list, ",")
	for _, ip := range ips {
		ip = strings.TrimSpace(ip)
		if ip != "" {
			result[ip] = true
		}
	}

	return result
}

