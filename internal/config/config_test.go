package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "DATABASE_URL", "DB_USER", "DB_PASS", "DB_HOST", "DB_PORT", "DB_NAME",
		"STORAGE", "DB_SKIP_SCHEMA", "CORS_ORIGINS", "LIVE_FEED", "APP_VERSION",
	} {
		t.Setenv(key, "")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, StorageMySQL, cfg.Storage)
	assert.Equal(t, "*", cfg.CORSOrigins)
	assert.Equal(t, "127.0.0.1", cfg.Database.Host)
	assert.Equal(t, "3306", cfg.Database.Port)
	assert.True(t, cfg.LiveFeed)
	assert.False(t, cfg.SkipSchema)
	assert.Empty(t, cfg.DatabaseURL)
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8081")
	t.Setenv("DATABASE_URL", "turnos:secreto@tcp(db:3306)/turnos")
	t.Setenv("STORAGE", "Memory")
	t.Setenv("DB_SKIP_SCHEMA", "1")
	t.Setenv("LIVE_FEED", "false")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, "turnos:secreto@tcp(db:3306)/turnos", cfg.DatabaseURL)
	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.True(t, cfg.SkipSchema)
	assert.False(t, cfg.LiveFeed)
}

func TestFromEnvRejectsUnknownStorage(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE", "sqlite")

	_, err := FromEnv()
	assert.Error(t, err)
}
