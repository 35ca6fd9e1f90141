package ratelimit

import (
	"net/http"
	"time"

	"github.com/jonathan/talent-match/internal/config"
)

// EndpointConfig represents rate limiting configuration for a group of routes.
type EndpointConfig struct {
	Pattern string        // Path pattern; a "*" segment matches any single segment
	Method  string        // HTTP method (GET, POST, etc.)
	Limit   int           // Maximum requests per window
	Window  time.Duration // Time window
	Burst   int           // Burst capacity (defaults to Limit if 0)
}

// NewConfig builds the limiter configuration from the application settings.
func NewConfig(settings config.RateLimitConfig) *Config {
	if !settings.Enabled {
		return &Config{Enabled: false}
	}
	return &Config{
		Enabled:         true,
		DefaultLimit:    settings.DefaultLimit,
		DefaultWindow:   settings.DefaultWindow,
		CleanupInterval: 5 * time.Minute,
		EndpointConfigs: BatchEndpointConfigs(settings.BatchLimit, settings.BatchWindow),
	}
}

// BatchEndpointConfigs returns the stricter tier applied to batch matching routes.
func BatchEndpointConfigs(limit int, window time.Duration) []EndpointConfig {
	burst := max(limit/5, 1)
	return []EndpointConfig{
		{Pattern: "/matching/run", Method: http.MethodPost, Limit: limit, Window: window, Burst: burst},
		{Pattern: "/job-postings/*/match", Method: http.MethodPost, Limit: limit, Window: window, Burst: burst},
		{Pattern: "/candidates/*/match", Method: http.MethodPost, Limit: limit, Window: window, Burst: burst},
	}
}
