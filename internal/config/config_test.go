package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_DefaultsWithoutFile(t *testing.T) {
	t.Setenv("SESSION_SECRET", "s3cret")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "4000", cfg.Server.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "data.db", cfg.Database.Path)
	assert.Equal(t, "gradebook_session", cfg.Session.CookieName)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL())
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
}

func TestLoadConfig_FileThenEnvironment(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9000"
database:
  driver: sqlite
  path: grades.db
session:
  secret: from-file
  ttl: 2h
auth:
  bcrypt_cost: 10
`)
	t.Setenv("SERVER_PORT", "9100")
	t.Setenv("AUTH_BCRYPT_COST", "6")
	t.Setenv("SESSION_SECURE", "true")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.Server.Port)
	assert.Equal(t, "grades.db", cfg.Database.Path)
	assert.Equal(t, "from-file", cfg.Session.Secret)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL())
	assert.Equal(t, 6, cfg.Auth.BcryptCost)
	assert.True(t, cfg.Session.Secure)
}

func TestLoadConfig_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
	}{
		{
			name: "missing secret",
			body: "session:\n  secret: \"\"\n",
		},
		{
			name: "unknown driver",
			body: "database:\n  driver: oracle\nsession:\n  secret: x\n",
		},
		{
			name: "bad ttl",
			body: "session:\n  secret: x\n  ttl: forever\n",
		},
		{
			name: "bad read timeout",
			body: "server:\n  read_timeout: soon\nsession:\n  secret: x\n",
		},
		{
			name: "bcrypt cost too low",
			body: "session:\n  secret: x\nauth:\n  bcrypt_cost: 2\n",
		},
		{
			name: "half a seed admin",
			body: "session:\n  secret: x\nseed:\n  admin_username: root\n",
		},
		{
			name: "malformed env integer",
			body: "session:\n  secret: x\n",
			env:  map[string]string{"DB_MAX_OPEN_CONNS": "many"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestDataSourceName(t *testing.T) {
	cfg := Default()
	cfg.Database.Path = "/tmp/x.db"
	assert.Equal(t, "file:/tmp/x.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", cfg.DataSourceName())

	cfg.Database.Driver = DriverPostgres
	cfg.Database.Password = "pw"
	assert.Equal(t, "postgres://postgres:pw@localhost:5432/gradebook?sslmode=disable", cfg.DataSourceName())
}
