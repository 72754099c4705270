package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONFIG_FILE", "APP_ADDR", "DB_DRIVER", "DB_DSN", "DB_TIMEOUT", "DB_AUTO_MIGRATE",
		"LOG_LEVEL", "LOG_FORMAT", "SHUTDOWN_TIMEOUT", "ENABLE_HSTS", "MAX_BODY_BYTES",
		"RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "CORS_ALLOWED_ORIGINS",
	} {
		t.Setenv(key, "")
	}
	// run from an empty directory so no stray .env is picked up
	cwd, _ := os.Getwd()
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(cwd) })
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ADDR", ":9090")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_DSN", ":memory:")
	t.Setenv("DB_TIMEOUT", "750ms")
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("RATE_LIMIT_RPS", "0")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, ":memory:", cfg.Database.DSN)
	assert.Equal(t, 750*time.Millisecond, cfg.Database.Timeout)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Zero(t, cfg.RateLimit.RPS)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
}

func TestLoad_BadEnvValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_TIMEOUT", "soon")
	t.Setenv("RATE_LIMIT_BURST", "many")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_TIMEOUT")
	assert.Contains(t, err.Error(), "RATE_LIMIT_BURST")
}

func TestLoad_ValidationFails(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("LOG_FORMAT", "xml")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Driver")
	assert.Contains(t, err.Error(), "Format")
}

func TestLoad_YAMLFileWithPlaceholders(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
addr: ":7070"
database:
  driver: sqlite
  dsn: "${BOOKS_DB_PATH:file:books.db}"
  timeout: 2s
log:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Addr)
	assert.Equal(t, "file:books.db", cfg.Database.DSN)
	assert.Equal(t, 2*time.Second, cfg.Database.Timeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	// untouched sections keep their defaults
	assert.Equal(t, Default().Server, cfg.Server)

	t.Setenv("BOOKS_DB_PATH", "/var/lib/books.db")
	t.Setenv("APP_ADDR", ":6060")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/books.db", cfg.Database.DSN)
	assert.Equal(t, ":6060", cfg.Addr, "env wins over the file")
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_FILE", "/does/not/exist.yaml")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadEnvFiles_DoesNotOverrideExistingEnv(t *testing.T) {
	clearEnv(t)
	require.NoError(t, os.WriteFile(".env", []byte("DB_DSN=from_file\nLOG_LEVEL=debug\n"), 0o644))
	t.Setenv("DB_DSN", "from_env")
	t.Setenv("LOG_LEVEL", "")
	require.NoError(t, os.Unsetenv("LOG_LEVEL"))

	LoadEnvFiles()

	assert.Equal(t, "from_env", os.Getenv("DB_DSN"))
	assert.Equal(t, "debug", os.Getenv("LOG_LEVEL"))
	_ = os.Unsetenv("LOG_LEVEL")
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("BOOKS_HOST", "db.internal")
	t.Setenv("BOOKS_EMPTY", "")

	assert.Equal(t, "host=db.internal", expandEnvVars("host=${BOOKS_HOST:localhost}"))
	assert.Equal(t, "host=localhost", expandEnvVars("host=${BOOKS_EMPTY:localhost}"))
	assert.Equal(t, "host=", expandEnvVars("host=${BOOKS_EMPTY}"))
	assert.Equal(t, "plain", expandEnvVars("plain"))
}
