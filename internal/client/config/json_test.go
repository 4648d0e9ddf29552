package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseJson_OverlaysGivenFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	err := os.WriteFile(path, []byte(`{
		"base_url": "https://json.example.com",
		"request_timeout": "7s"
	}`), 0o600)
	assert.NoError(t, err)

	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"cli", "-c", path}

	var cfg Config
	cfg.LoadDefaults()
	parseJson(&cfg)

	assert.Equal(t, "https://json.example.com", cfg.BaseURL)
	assert.Equal(t, 7*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "tinylink.db", cfg.DatabasePath, "absent fields keep prior value")
}

func TestParseJson_NoFileGivenIsNoop(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"cli"}

	var cfg Config
	cfg.LoadDefaults()
	parseJson(&cfg)

	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
}
