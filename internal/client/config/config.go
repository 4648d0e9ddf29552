// Package config holds runtime settings for the TinyLink CLI.
package config

import "time"

// Config holds runtime settings.
//
// Fields:
//   - BaseURL: root URL of the TinyLink backend.
//   - DatabasePath: path of the client-local sqlite database.
//   - RequestTimeout: per-request timeout for backend calls.
type Config struct {
	BaseURL        string
	DatabasePath   string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://localhost:8080"
	c.DatabasePath = "tinylink.db"
	c.RequestTimeout = 15 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment (including a .env file, if present), a JSON file
// (if given) and command-line flags. Later sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
