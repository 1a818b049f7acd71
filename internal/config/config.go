// Package config provides configuration loading for triage.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "TRIAGE_"

// Config holds all triage configuration.
type Config struct {
	Enrichment EnrichmentConfig `koanf:"enrichment"`
	Output     OutputConfig     `koanf:"output"`
	Azure      AzureConfig      `koanf:"azure"`
	Log        LogConfig        `koanf:"log"`
}

// EnrichmentConfig controls the low-confidence field enrichment pass.
type EnrichmentConfig struct {
	Mode            string  `koanf:"mode"` // "off", "heuristic", "semantic"
	Threshold       float64 `koanf:"threshold"`
	ModelPath       string  `koanf:"model_path"`
	VocabPath       string  `koanf:"vocab_path"`
	SimilarityFloor float64 `koanf:"similarity_floor"`
}

// OutputConfig holds output destination settings.
type OutputConfig struct {
	Format        string `koanf:"format"`    // "stdout", "file", "webhook"
	Verbosity     string `koanf:"verbosity"` // "minimal", "standard", "full"
	Path          string `koanf:"path"`
	MaxFileSizeMB int    `koanf:"max_file_size_mb"`
	WebhookURL    string `koanf:"webhook_url"`
	BatchSize     int    `koanf:"batch_size"`
}

// AzureConfig holds work tracking API credentials.
type AzureConfig struct {
	OrgURL string `koanf:"org_url"`
	Token  string `koanf:"token"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level     string `koanf:"level"`
	RedactPII bool   `koanf:"redact_pii"`
}

// defaultYAML seeds the koanf tree so that every field has a value before
// file and environment overrides apply.
var defaultYAML = []byte(`
enrichment:
  mode: heuristic
  threshold: 0.5
  similarity_floor: 0.4
output:
  format: stdout
  verbosity: standard
  max_file_size_mb: 100
  batch_size: 10
log:
  level: info
  redact_pii: true
`)

// Load reads configuration with the following precedence, highest first:
//
//  1. TRIAGE_* environment variables (TRIAGE_ENRICHMENT_MODE,
//     TRIAGE_OUTPUT_WEBHOOK_URL, ...)
//  2. YAML config file, if configPath is non-empty
//  3. Built-in defaults
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider(defaultYAML), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("config: loading defaults: %w", err)
	}

	if configPath != "" {
		content, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", configPath, err)
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: parsing %s: %w", configPath, err)
		}
	}

	// TRIAGE_OUTPUT_WEBHOOK_URL -> output.webhook_url: the first underscore
	// separates the section, the rest is the field name.
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		lower := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		parts := strings.SplitN(lower, "_", 2)
		if len(parts) == 1 {
			return lower
		}
		return parts[0] + "." + parts[1]
	}), nil); err != nil {
		return nil, fmt.Errorf("config: loading environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshaling: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	switch c.Enrichment.Mode {
	case "off", "heuristic", "semantic":
	default:
		return fmt.Errorf("config: unknown enrichment mode: %s", c.Enrichment.Mode)
	}
	if c.Enrichment.Threshold < 0 || c.Enrichment.Threshold > 1 {
		return fmt.Errorf("config: enrichment threshold %v out of range [0, 1]", c.Enrichment.Threshold)
	}
	if c.Enrichment.Mode == "semantic" && (c.Enrichment.ModelPath == "" || c.Enrichment.VocabPath == "") {
		return fmt.Errorf("config: semantic enrichment requires model_path and vocab_path")
	}

	switch c.Output.Format {
	case "stdout", "file", "webhook":
	default:
		return fmt.Errorf("config: unknown output format: %s", c.Output.Format)
	}
	switch c.Output.Verbosity {
	case "minimal", "standard", "full":
	default:
		return fmt.Errorf("config: unknown output verbosity: %s", c.Output.Verbosity)
	}
	if c.Output.Format == "file" && c.Output.Path == "" {
		return fmt.Errorf("config: file output requires a path")
	}
	if c.Output.Format == "webhook" && c.Output.WebhookURL == "" {
		return fmt.Errorf("config: webhook output requires webhook_url")
	}

	return nil
}
