package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// fileShape mirrors the parts of the config file the tests inspect.
type fileShape struct {
	Input struct {
		Strict bool `yaml:"strict"`
	} `yaml:"input"`
	Registration struct {
		CountyCodes []string `yaml:"county_codes"`
	} `yaml:"registration"`
	Cache struct {
		Enabled bool   `yaml:"enabled"`
		TTL     string `yaml:"ttl"`
	} `yaml:"cache"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

func readShape(t *testing.T, path string) (fileShape, string) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var shape fileShape
	require.NoError(t, yaml.Unmarshal(data, &shape))
	return shape, string(data)
}

func TestDefaultConfigTemplate_MatchesDefaults(t *testing.T) {
	var shape fileShape
	require.NoError(t, yaml.Unmarshal([]byte(DefaultConfigTemplate()), &shape))

	d := Defaults()
	require.Equal(t, d.Registration.CountyCodes, shape.Registration.CountyCodes)
	require.Equal(t, d.Cache.Enabled, shape.Cache.Enabled)
	require.Equal(t, d.Cache.TTL.String(), "5m0s")
	require.Equal(t, "5m", shape.Cache.TTL)
	require.Equal(t, d.Log.Level, shape.Log.Level)
	require.Equal(t, d.Input.Strict, shape.Input.Strict)
}

func TestWriteDefaultConfig_CreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ".carlot", "config.yaml")

	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, DefaultConfigTemplate(), string(data))
}

func TestSaveCountyCodes_PreservesOtherSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	require.NoError(t, SaveCountyCodes(path, []string{"d", " w", "LS"}))

	shape, raw := readShape(t, path)
	require.Equal(t, []string{"D", "W", "LS"}, shape.Registration.CountyCodes)
	require.True(t, shape.Cache.Enabled)
	require.Equal(t, "info", shape.Log.Level)
	require.Contains(t, raw, "debug, info, warn, error", "comments survive the rewrite")
}

func TestSaveCountyCodes_NewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh", "config.yaml")

	require.NoError(t, SaveCountyCodes(path, []string{"C"}))

	shape, _ := readShape(t, path)
	require.Equal(t, []string{"C"}, shape.Registration.CountyCodes)
}

func TestSaveCountyCodes_AddsMissingSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cache:\n  enabled: false\n"), 0o600))

	require.NoError(t, SaveCountyCodes(path, []string{"KK", "WX"}))

	shape, _ := readShape(t, path)
	require.Equal(t, []string{"KK", "WX"}, shape.Registration.CountyCodes)
	require.False(t, shape.Cache.Enabled)
}

func TestSaveCountyCodes_RejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	require.Error(t, SaveCountyCodes(path, nil))
	require.Error(t, SaveCountyCodes(path, []string{"D", "d"}))

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, string(before), string(after), "invalid codes leave the file untouched")
}

func TestSaveCountyCodes_RejectsNonMappingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- just\n- a list\n"), 0o600))

	err := SaveCountyCodes(path, []string{"D"})
	require.ErrorContains(t, err, "not a mapping")
}
