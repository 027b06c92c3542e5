// Package config provides configuration types, defaults and validation for carlot.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/carlot/internal/log"
	"github.com/zjrosen/carlot/internal/registration"
	"github.com/zjrosen/carlot/internal/tracing"
)

// Config holds all configuration options for carlot.
type Config struct {
	Input        InputConfig        `mapstructure:"input"`
	Registration RegistrationConfig `mapstructure:"registration"`
	Cache        CacheConfig        `mapstructure:"cache"`
	Log          LogConfig          `mapstructure:"log"`
	Tracing      tracing.Config     `mapstructure:"tracing"`
	SeedFile     string             `mapstructure:"seed_file"`
	UI           UIConfig           `mapstructure:"ui"`
}

// InputConfig controls how the menu converts typed numbers.
type InputConfig struct {
	// Strict rejects malformed numbers instead of substituting zero.
	Strict bool `mapstructure:"strict"`
}

// RegistrationConfig holds the county code allow-list used by the county search.
type RegistrationConfig struct {
	CountyCodes []string `mapstructure:"county_codes"`
}

// CacheConfig controls the catalog query cache.
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	TTL     time.Duration `mapstructure:"ttl"`
}

// LogConfig controls the debug log file.
type LogConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
	Level   string `mapstructure:"level"` // debug, info, warn, error
}

// UIConfig holds user interface options.
type UIConfig struct {
	ShowHelp      bool   `mapstructure:"show_help"`      // Show the key help line under the menu
	MarkdownStyle string `mapstructure:"markdown_style"` // "dark" (default) or "light"
}

// DefaultTracesFilePath returns ~/.config/carlot/traces/traces.jsonl, or "" without a home dir.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "carlot", "traces", "traces.jsonl")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	tc := tracing.DefaultConfig()
	tc.FilePath = "" // Derived from the config dir at runtime

	return Config{
		Registration: RegistrationConfig{
			CountyCodes: append([]string(nil), registration.KnownCodes...),
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     5 * time.Minute,
		},
		Log: LogConfig{
			Path:  "carlot.log",
			Level: "info",
		},
		Tracing: tc,
		UI: UIConfig{
			ShowHelp:      true,
			MarkdownStyle: "dark",
		},
	}
}

// Validate checks cfg for errors. Empty values that have defaults are accepted.
func Validate(cfg Config) error {
	if err := ValidateCountyCodes(cfg.Registration.CountyCodes); err != nil {
		return err
	}
	if _, err := log.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if cfg.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative, got %s", cfg.Cache.TTL)
	}
	switch cfg.UI.MarkdownStyle {
	case "", "dark", "light":
	default:
		return fmt.Errorf("ui.markdown_style must be \"dark\" or \"light\", got %q", cfg.UI.MarkdownStyle)
	}
	return ValidateTracing(cfg.Tracing)
}

// ValidateCountyCodes requires at least one code and no duplicates after normalisation.
func ValidateCountyCodes(codes []string) error {
	if len(codes) == 0 {
		return fmt.Errorf("registration.county_codes must list at least one code")
	}
	seen := make(map[string]bool, len(codes))
	for i, raw := range codes {
		code := registration.Normalize(raw)
		if code == "" {
			return fmt.Errorf("registration.county_codes[%d] is empty", i)
		}
		if seen[code] {
			return fmt.Errorf("registration.county_codes: duplicate code %q", code)
		}
		seen[code] = true
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
func ValidateTracing(tc tracing.Config) error {
	if tc.SampleRate < 0.0 || tc.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tc.SampleRate)
	}

	if !tracing.ValidExporter(tc.Exporter) {
		return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tc.Exporter)
	}

	// Path requirements only matter once tracing is on.
	if tc.Enabled && tc.Exporter == tracing.ExporterOTLP && tc.OTLPEndpoint == "" {
		return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
	}

	return nil
}

// DefaultConfigTemplate returns the default config as YAML with comments.
func DefaultConfigTemplate() string {
	return `# carlot configuration

# Number parsing in the menu forms.
input:
  strict: false           # true: reject malformed numbers instead of using 0

# County codes accepted by "Search by county code".
registration:
  county_codes: [C, D, W, WX, KK]

# Query cache for searches; flushed on every change.
cache:
  enabled: true
  ttl: 5m

# Debug log file (also enabled by --debug or CARLOT_DEBUG=1).
log:
  enabled: false
  path: carlot.log
  level: info             # debug, info, warn, error

# OpenTelemetry tracing of catalog operations.
tracing:
  enabled: false
  exporter: file          # none, file, stdout, otlp
  # file_path: ~/.config/carlot/traces/traces.jsonl
  otlp_endpoint: localhost:4317
  sample_rate: 1.0

# Optional YAML fixture loaded into the lot at startup.
# seed_file: cars.yaml

ui:
  show_help: true
  markdown_style: dark    # dark or light
`
}
