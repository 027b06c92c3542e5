package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaults_AreValid(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, Validate(cfg))
	require.Equal(t, []string{"C", "D", "W", "WX", "KK"}, cfg.Registration.CountyCodes)
	require.True(t, cfg.Cache.Enabled)
	require.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	require.False(t, cfg.Input.Strict)
	require.False(t, cfg.Log.Enabled)
	require.False(t, cfg.Tracing.Enabled)
	require.True(t, cfg.UI.ShowHelp)
}

func TestDefaults_CountyCodesAreACopy(t *testing.T) {
	cfg := Defaults()
	cfg.Registration.CountyCodes[0] = "ZZ"
	require.Equal(t, "C", Defaults().Registration.CountyCodes[0])
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "no county codes",
			mutate:  func(c *Config) { c.Registration.CountyCodes = nil },
			wantErr: "at least one code",
		},
		{
			name:    "blank county code",
			mutate:  func(c *Config) { c.Registration.CountyCodes = []string{"D", "  "} },
			wantErr: "county_codes[1] is empty",
		},
		{
			name:    "duplicate after normalisation",
			mutate:  func(c *Config) { c.Registration.CountyCodes = []string{"wx", "WX "} },
			wantErr: `duplicate code "WX"`,
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Log.Level = "loud" },
			wantErr: "log.level",
		},
		{
			name:    "negative ttl",
			mutate:  func(c *Config) { c.Cache.TTL = -time.Second },
			wantErr: "cache.ttl",
		},
		{
			name:    "bad markdown style",
			mutate:  func(c *Config) { c.UI.MarkdownStyle = "neon" },
			wantErr: "ui.markdown_style",
		},
		{
			name:    "sample rate above one",
			mutate:  func(c *Config) { c.Tracing.SampleRate = 1.5 },
			wantErr: "sample_rate",
		},
		{
			name:    "unknown exporter",
			mutate:  func(c *Config) { c.Tracing.Exporter = "zipkin" },
			wantErr: "tracing.exporter",
		},
		{
			name: "otlp without endpoint",
			mutate: func(c *Config) {
				c.Tracing.Enabled = true
				c.Tracing.Exporter = "otlp"
				c.Tracing.OTLPEndpoint = ""
			},
			wantErr: "otlp_endpoint",
		},
		{
			name: "otlp endpoint ignored when disabled",
			mutate: func(c *Config) {
				c.Tracing.Exporter = "otlp"
				c.Tracing.OTLPEndpoint = ""
			},
		},
		{
			name:   "lower-case codes accepted",
			mutate: func(c *Config) { c.Registration.CountyCodes = []string{"d", "kk"} },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDefaultTracesFilePath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	require.Equal(t, "/home/tester/.config/carlot/traces/traces.jsonl", DefaultTracesFilePath())
}
