package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
[omdb]
api_key = "test-key"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8486, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "./data/reelfind.db", cfg.Database.Path)
	assert.Equal(t, time.Hour, cfg.OMDB.SearchTTL)
	assert.Equal(t, 24*time.Hour, cfg.OMDB.DetailTTL)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
}

func TestLoad_AllFields(t *testing.T) {
	path := writeConfig(t, `
[server]
host = "127.0.0.1"
port = 9000
log_level = "debug"

[database]
path = "/tmp/reelfind-test.db"

[omdb]
api_key = "abc123"
base_url = "http://localhost:1234"
search_ttl = "30m"
detail_ttl = "48h"

[auth]
secret = "super-secret"
token_ttl = "2h"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "abc123", cfg.OMDB.APIKey)
	assert.Equal(t, "http://localhost:1234", cfg.OMDB.BaseURL)
	assert.Equal(t, 30*time.Minute, cfg.OMDB.SearchTTL)
	assert.Equal(t, 48*time.Hour, cfg.OMDB.DetailTTL)
	assert.Equal(t, "super-secret", cfg.Auth.Secret)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
}

func TestLoad_EnvSubstitution(t *testing.T) {
	t.Setenv("OMDB_API_KEY", "key-from-env")

	path := writeConfig(t, `
[omdb]
api_key = "${OMDB_API_KEY}"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "key-from-env", cfg.OMDB.APIKey)
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	path := writeConfig(t, `
[server]
log_level = "verbose"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_level")
}

func TestLoad_InvalidPort(t *testing.T) {
	path := writeConfig(t, `
[server]
port = 99999
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "port")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestWriteDefault_ThenLoad(t *testing.T) {
	t.Setenv("OMDB_API_KEY", "test-omdb-key")
	t.Setenv("REELFIND_AUTH_SECRET", "test-secret")

	path := filepath.Join(t.TempDir(), "reelfind", "config.toml")
	require.NoError(t, WriteDefault(path))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "test-omdb-key", cfg.OMDB.APIKey)
	assert.Equal(t, "test-secret", cfg.Auth.Secret)
	assert.Equal(t, 8486, cfg.Server.Port)
}

func TestDiscover_EnvVar(t *testing.T) {
	path := writeConfig(t, `[omdb]
api_key = "k"
`)
	t.Setenv("REELFIND_CONFIG", path)

	got, err := Discover()
	require.NoError(t, err)
	assert.Equal(t, path, got)
}

func TestDiscover_EnvVarMissingFile(t *testing.T) {
	t.Setenv("REELFIND_CONFIG", filepath.Join(t.TempDir(), "nope.toml"))

	_, err := Discover()
	assert.Error(t, err)
}
