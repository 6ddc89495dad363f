// Package config handles configuration for the CLI client,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the operator CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the backend HTTP endpoint.
//   - RequestTimeout: per-request timeout for API calls.
type Config struct {
	ServerBaseURL  string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:3001"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
