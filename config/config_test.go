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
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
auth:
  jwt:
    secret: test-secret
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:5000", cfg.Listen)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, DatabaseTypeMongo, cfg.Database.Type)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Database.URI)
	assert.Equal(t, "bistro", cfg.Database.Name)
	assert.Equal(t, time.Hour, cfg.Auth.JWT.TTL)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
listen: 127.0.0.1:9999
log_level: debug
database:
  type: memory
auth:
  jwt:
    secret: test-secret
    ttl: 30m
cors:
  allowed_origins:
    - https://bistro.example.com
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9999", cfg.Listen)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, DatabaseTypeMemory, cfg.Database.Type)
	assert.Equal(t, 30*time.Minute, cfg.Auth.JWT.TTL)
	assert.Equal(t, []string{"https://bistro.example.com"}, cfg.CORS.AllowedOrigins)
}

func TestLoadMissingSecret(t *testing.T) {
	path := writeConfig(t, `
listen: 127.0.0.1:9999
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadUnknownDatabaseType(t *testing.T) {
	path := writeConfig(t, `
database:
  type: cassandra
auth:
  jwt:
    secret: test-secret
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMongoRequiresURI(t *testing.T) {
	path := writeConfig(t, `
database:
  type: mongo
  uri: ""
auth:
  jwt:
    secret: test-secret
`)
	_, err := Load(path)
	assert.Error(t, err)
}
