package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/tinylink/tinylink-cli/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. The
// timeout is a duration string like "15s"; after parsing, values are
// copied into the runtime Config.
type JsonConfig struct {
	BaseURL        string `json:"base_url"`
	DatabasePath   string `json:"database_path"`
	RequestTimeout string `json:"request_timeout"`
}

// parseJson overlays Config with values loaded from the JSON file given
// via -c or -config. When no file is given, nothing happens. Read or
// unmarshal errors panic; the binary cannot do anything sensible with a
// config file it cannot read.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.BaseURL != "" {
		cfg.BaseURL = jc.BaseURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.RequestTimeout != "" {
		if d, err := time.ParseDuration(jc.RequestTimeout); err == nil {
			cfg.RequestTimeout = d
		}
	}
}
