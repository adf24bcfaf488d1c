package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, showVersion, err := Load(filepath.Join(t.TempDir(), "missing.env"), nil)
	require.NoError(t, err)

	assert.False(t, showVersion)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, 25, cfg.DB.MaxOpenConns)
	assert.Equal(t, 5*time.Minute, cfg.Cache.AvailabilityTTL)
	assert.Equal(t, 1.0, cfg.Telemetry.SampleRatio)
	assert.Equal(t, 15*time.Second, cfg.Telemetry.MetricInterval)
	assert.Empty(t, cfg.Admin.Username)
}

func TestLoadEnvFileAndFlags(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	content := "PORT=4000\nDB_DSN=postgres://cinema@localhost/cinema\nAVAILABILITY_CACHE_TTL=30s\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	// godotenv never overrides variables that are already set
	for _, key := range []string{"PORT", "DB_DSN", "AVAILABILITY_CACHE_TTL"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, _, err := Load(envFile, []string{"-port", "5000", "-env", "prod", "-otel-sample-ratio", "0.25"})
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "postgres://cinema@localhost/cinema", cfg.DB.DSN)
	assert.Equal(t, 30*time.Second, cfg.Cache.AvailabilityTTL)
	assert.Equal(t, 0.25, cfg.Telemetry.SampleRatio)
}

func TestLoadRejectsUnknownFlag(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "missing.env"), []string{"-nope"})
	assert.Error(t, err)
}
