package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_File(t *testing.T) {
	settings, info, err := LoadSettings("../../test/testdata/fireplan.toml")
	require.NoError(t, err)

	assert.True(t, info.Found)
	assert.True(t, info.PortSpecified)
	assert.Equal(t, 9090, settings.Server.Port)
	assert.Equal(t, "0.0.0.0:9090", settings.Server.Addr())
	assert.Equal(t, "json", settings.Output.Format)
	assert.Equal(t, "debug", settings.Logging.Level)
	assert.Equal(t, "GBP", settings.Display.Currency)
	// Unset keys keep their defaults.
	assert.Equal(t, ".", settings.Output.Directory)
}

func TestLoadSettings_ExplicitMissingFile(t *testing.T) {
	_, _, err := LoadSettings(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestLoadSettings_PartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fireplan.toml")
	require.NoError(t, os.WriteFile(path, []byte("[output]\nformat = \"html\"\n"), 0o644))

	settings, info, err := LoadSettings(path)
	require.NoError(t, err)
	assert.False(t, info.PortSpecified)
	assert.Equal(t, "html", settings.Output.Format)
	assert.Equal(t, DefaultSettings().Server.Port, settings.Server.Port)
}

func TestLoadSettings_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[logging]\nlevel = \"loud\"\n"), 0o644))
	_, _, err := LoadSettings(path)
	assert.ErrorContains(t, err, "logging.level")

	require.NoError(t, os.WriteFile(path, []byte("[server\n"), 0o644))
	_, _, err = LoadSettings(path)
	assert.Error(t, err)
}

func TestSaveSettings_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "fireplan.toml")
	want := DefaultSettings()
	want.Server.Port = 1234
	require.NoError(t, SaveSettings(want, path))

	got, info, err := LoadSettings(path)
	require.NoError(t, err)
	assert.True(t, info.Found)
	assert.Equal(t, want, got)
}
