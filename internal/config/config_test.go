package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
	return path
}

// clearEnv keeps ambient SIGMA_* variables out of the layering tests.
// Empty values are treated as unset by apply.
func clearEnv(t *testing.T) {
	t.Setenv("SIGMA_CLIENT_ID", "")
	t.Setenv("SIGMA_SECRET", "")
	t.Setenv("SIGMA_BASE_URL", "")
}

func TestLoadFrom_Defaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.json") // does not exist

	cfg, err := LoadFrom(path, Overrides{})

	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.False(t, cfg.HasCredentials())
	assert.Equal(t, SourceDefault, cfg.SourceOf("base_url"))
}

func TestLoadFrom_FileLayer(t *testing.T) {
	clearEnv(t)
	path := writeConfigFile(t, `{"client_id": "file-id", "secret": "file-secret", "base_url": "https://file.example.com"}`)

	cfg, err := LoadFrom(path, Overrides{})

	require.NoError(t, err)
	assert.Equal(t, "file-id", cfg.ClientID)
	assert.Equal(t, "file-secret", cfg.Secret)
	assert.Equal(t, "https://file.example.com", cfg.BaseURL)
	assert.Equal(t, SourceFile, cfg.SourceOf("client_id"))
}

func TestLoadFrom_EnvBeatsFile(t *testing.T) {
	clearEnv(t)
	path := writeConfigFile(t, `{"client_id": "file-id", "secret": "file-secret"}`)
	t.Setenv("SIGMA_CLIENT_ID", "env-id")

	cfg, err := LoadFrom(path, Overrides{})

	require.NoError(t, err)
	assert.Equal(t, "env-id", cfg.ClientID)
	assert.Equal(t, SourceEnv, cfg.SourceOf("client_id"))
	assert.Equal(t, "file-secret", cfg.Secret, "unset env vars must not mask file values")
	assert.Equal(t, SourceFile, cfg.SourceOf("secret"))
}

func TestLoadFrom_FlagBeatsEnv(t *testing.T) {
	clearEnv(t)
	path := writeConfigFile(t, `{"client_id": "file-id"}`)
	t.Setenv("SIGMA_CLIENT_ID", "env-id")

	cfg, err := LoadFrom(path, Overrides{ClientID: "flag-id"})

	require.NoError(t, err)
	assert.Equal(t, "flag-id", cfg.ClientID)
	assert.Equal(t, SourceFlag, cfg.SourceOf("client_id"))
}

func TestLoadFrom_CorruptFile(t *testing.T) {
	path := writeConfigFile(t, `{not json`)

	_, err := LoadFrom(path, Overrides{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestSave_RoundTripWithRestrictivePermissions(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, ".sigma", "config.json")

	cfg, err := LoadFrom(path, Overrides{ClientID: "id", Secret: "secret", BaseURL: "https://api.example.com"})
	require.NoError(t, err)
	require.NoError(t, cfg.Save())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	reloaded, err := LoadFrom(path, Overrides{})
	require.NoError(t, err)
	assert.Equal(t, "id", reloaded.ClientID)
	assert.Equal(t, "secret", reloaded.Secret)
	assert.Equal(t, "https://api.example.com", reloaded.BaseURL)
}

func TestMaskedSecret(t *testing.T) {
	tests := []struct {
		secret string
		want   string
	}{
		{"", "(not set)"},
		{"short", "***"},
		{"abcdefgh", "***"},
		{"abcdefghijkl", "abcd...ijkl"},
	}

	for _, tt := range tests {
		cfg := &Config{Secret: tt.secret}
		assert.Equal(t, tt.want, cfg.MaskedSecret())
	}
}
