package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the environment. A .env file
// in the working directory is loaded first; its absence is not an error.
//
// Recognized variables:
//
//	TINYLINK_BASE_URL         backend root URL
//	TINYLINK_DATABASE_PATH    client database path
//	TINYLINK_REQUEST_TIMEOUT  per-request timeout, e.g. "15s"
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v, ok := os.LookupEnv("TINYLINK_BASE_URL"); ok {
		cfg.BaseURL = v
	}
	if v, ok := os.LookupEnv("TINYLINK_DATABASE_PATH"); ok {
		cfg.DatabasePath = v
	}
	if v, ok := os.LookupEnv("TINYLINK_REQUEST_TIMEOUT"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
}
