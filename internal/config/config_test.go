package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[server]
http_port = 9090

[database]
host = "db"
user = "booking"
dbname = "garage"

[auth]
mode = "jwt"
jwt_secret = "file-secret"

[booking]
commit_timeout = 7

[redis]
enabled = true
addr = "cache:6379"
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_ParsesFileAndKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 7, cfg.Booking.CommitTimeout)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 3600, cfg.Redis.IntervalCacheTTL)
	assert.Equal(t, "booking.confirmed", cfg.Events.Queue)
	assert.Equal(t, "host=db port=5432 user=booking password= dbname=garage sslmode=disable", cfg.Database.DSN())
}

func TestLoad_EnvOverridesSecrets(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "env-secret")
	t.Setenv("DATABASE_PASSWORD", "s3cret")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, "s3cret", cfg.Database.Password)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"missing port", func(c *Config) { c.Server.HTTPPort = 0 }},
		{"missing db name", func(c *Config) { c.Database.DBName = "" }},
		{"unknown auth mode", func(c *Config) { c.Auth.Mode = "basic" }},
		{"jwt without secret", func(c *Config) { c.Auth.JWTSecret = "" }},
		{"remote without url", func(c *Config) { c.Auth.Mode = AuthModeRemote }},
		{"zero commit timeout", func(c *Config) { c.Booking.CommitTimeout = 0 }},
		{"events without url", func(c *Config) { c.Events.Enabled = true }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			cfg.Database.DBName = "garage"
			cfg.Auth.JWTSecret = "secret"
			tt.mutate(cfg)

			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}
