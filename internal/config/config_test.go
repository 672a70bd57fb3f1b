package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDefaults(t *testing.T) {
	cfg := NewForTesting()
	require.NoError(t, cfg.ResolveDefaults())

	cfg = NewForTesting()
	cfg.SessionStore = "redis"
	assert.Error(t, cfg.ResolveDefaults())

	cfg = NewForTesting()
	cfg.OracleProvider = "openai"
	assert.Error(t, cfg.ResolveDefaults())

	cfg = NewForTesting()
	cfg.OracleTimeout = 0
	assert.Error(t, cfg.ResolveDefaults())

	cfg = NewForTesting()
	cfg.SweepIntervalSeconds = -1
	assert.Error(t, cfg.ResolveDefaults())
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("SYMPTOM_INTAKE_HTTP_PORT", "9191")
	t.Setenv("SYMPTOM_INTAKE_SESSION_STORE", "sqlite")
	t.Setenv("SYMPTOM_INTAKE_ORACLE_PROVIDER", "anthropic")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, 9191, cfg.HTTPPort)
	assert.Equal(t, "sqlite", cfg.SessionStore)
	assert.Equal(t, "anthropic", cfg.OracleProvider)
	assert.Equal(t, ":9191", cfg.GetHTTPAddr())
}
