package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseConfig = `
env: "dev"
database:
  driver: "sqlite3"
  dsn: "file:test.db"
auth:
  admin_email: "admin@example.com"
  admin_password_hash: "$2a$10$abcdefghijklmnopqrstuv"
  jwt_secret: "secret"
`

func writeFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeFile(t, baseConfig))
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, BackendDisk, cfg.Attachments.Backend)
	assert.Equal(t, int64(10<<20), cfg.Attachments.MaxSize)
	assert.Equal(t, ProviderSMTP, cfg.Mail.Provider)
	assert.Equal(t, "file:test.db", cfg.Database.DataSource())
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name  string
		extra string
	}{
		{name: "unknown driver", extra: "database:\n  driver: \"mysql\"\n"},
		{name: "unknown backend", extra: "attachments:\n  backend: \"ftp\"\n"},
		{name: "s3 without credentials", extra: "attachments:\n  backend: \"s3\"\n"},
		{name: "unknown mail provider", extra: "mail:\n  provider: \"pigeon\"\n"},
		{name: "resend without key", extra: "mail:\n  provider: \"resend\"\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			content := baseConfig
			if tc.extra != "" {
				content = "env: \"dev\"\nauth:\n  admin_email: \"a@b.c\"\n  admin_password_hash: \"x\"\n  jwt_secret: \"s\"\n" + tc.extra
			}

			_, err := Load(writeFile(t, content))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestPostgresDataSource(t *testing.T) {
	d := Database{
		Driver:   DriverPostgres,
		Host:     "db",
		Port:     5432,
		User:     "app",
		Password: "pw",
		DBName:   "psyche_connect",
		SSLMode:  "disable",
	}

	assert.Equal(t, "host=db port=5432 user=app password=pw dbname=psyche_connect sslmode=disable", d.DataSource())
}

func TestLoadDatabase(t *testing.T) {
	db, err := LoadDatabase(writeFile(t, "database:\n  driver: \"sqlite3\"\n  dsn: \"file:x.db\"\n"))
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, db.Driver)

	_, err = LoadDatabase(writeFile(t, "database:\n  driver: \"oracle\"\n"))
	assert.Error(t, err)
}
