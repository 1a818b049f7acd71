package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "heuristic", cfg.Enrichment.Mode)
	assert.Equal(t, 0.5, cfg.Enrichment.Threshold)
	assert.Equal(t, 0.4, cfg.Enrichment.SimilarityFloor)
	assert.Equal(t, "stdout", cfg.Output.Format)
	assert.Equal(t, "standard", cfg.Output.Verbosity)
	assert.Equal(t, 10, cfg.Output.BatchSize)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Log.RedactPII)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
enrichment:
  mode: "off"
output:
  format: file
  path: /tmp/reports.ndjson
log:
  level: debug
  redact_pii: false
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "off", cfg.Enrichment.Mode)
	assert.Equal(t, "file", cfg.Output.Format)
	assert.Equal(t, "/tmp/reports.ndjson", cfg.Output.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.False(t, cfg.Log.RedactPII)
	// Untouched values keep defaults.
	assert.Equal(t, 0.5, cfg.Enrichment.Threshold)
	assert.Equal(t, "standard", cfg.Output.Verbosity)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: warn\n"), 0o600))

	t.Setenv("TRIAGE_LOG_LEVEL", "error")
	t.Setenv("TRIAGE_ENRICHMENT_THRESHOLD", "0.7")
	t.Setenv("TRIAGE_OUTPUT_WEBHOOK_URL", "https://hooks.example.com/bugs")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, 0.7, cfg.Enrichment.Threshold)
	assert.Equal(t, "https://hooks.example.com/bugs", cfg.Output.WebhookURL)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := Load("")
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad enrichment mode", func(c *Config) { c.Enrichment.Mode = "llm" }, "enrichment mode"},
		{"threshold too high", func(c *Config) { c.Enrichment.Threshold = 1.5 }, "out of range"},
		{"semantic without model", func(c *Config) { c.Enrichment.Mode = "semantic" }, "model_path"},
		{"bad output format", func(c *Config) { c.Output.Format = "kafka" }, "output format"},
		{"bad verbosity", func(c *Config) { c.Output.Verbosity = "loud" }, "verbosity"},
		{"file output without path", func(c *Config) { c.Output.Format = "file" }, "requires a path"},
		{"webhook without url", func(c *Config) { c.Output.Format = "webhook" }, "webhook_url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	assert.NoError(t, valid().Validate())
}
