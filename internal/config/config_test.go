package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9000

[scheduling]
timezone = "Europe/Moscow"
afternoon_start_hour = 12

[counters]
backend = "redis"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.HTTPPort)
	assert.Equal(t, CounterBackendRedis, cfg.Counters.Backend)
	assert.Equal(t, 12, cfg.Scheduling.AfternoonStartHour)
	// значения по умолчанию сохраняются
	assert.Equal(t, 62, cfg.Scheduling.MaxRangeDays)
	assert.Equal(t, "delivery_slots", cfg.Redis.KeyPrefix)

	loc, err := cfg.Scheduling.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", loc.String())
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "db.local"

[counters]
backend = "postgres"
`)
	t.Setenv("DB_HOST", "pg.internal")
	t.Setenv("COUNTERS_BACKEND", "memory")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "pg.internal", cfg.Database.Host)
	assert.Equal(t, CounterBackendMemory, cfg.Counters.Backend)
	assert.Contains(t, cfg.Database.DSN(), "host=pg.internal port=5432")
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
		assert.Error(t, err)
	})

	t.Run("broken toml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "[server\nhttp_port = "))
		assert.Error(t, err)
	})

	invalid := map[string]string{
		"unknown backend": "[counters]\nbackend = \"mongo\"",
		"bad timezone":    "[scheduling]\ntimezone = \"Mars/Olympus\"",
		"afternoon hour":  "[scheduling]\nafternoon_start_hour = 0",
		"range days":      "[scheduling]\nmax_range_days = -1",
		"port":            "[server]\nhttp_port = 70000",
		"metrics path":    "[metrics]\nenabled = true\npath = \"\"",
	}
	for name, content := range invalid {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}
