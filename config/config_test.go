package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "atomic", cfg.Ledger.Strategy)
	assert.Equal(t, 30, cfg.Reminder.WindowDays)
	assert.Equal(t, 24*time.Hour, cfg.Reminder.Interval)
	assert.Equal(t, "10-M", cfg.RateLimit.Login)
	assert.Equal(t, 30, cfg.Email.RetentionDays)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LEDGER_STRATEGY", "sequential")
	t.Setenv("RECONCILE_INTERVAL", "2m")
	t.Setenv("EMAIL_WORKER_ENABLED", "false")
	t.Setenv("EMAIL_RETENTION_DAYS", "0")
	t.Setenv("REDIS_URL", "")
	t.Setenv("CORS_ORIGINS", "https://ledger.permata.test, http://localhost:5173")

	cfg := Load()

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "sequential", cfg.Ledger.Strategy)
	assert.Equal(t, 2*time.Minute, cfg.Ledger.ReconcileInterval)
	assert.False(t, cfg.Email.WorkerEnabled)
	assert.Zero(t, cfg.Email.RetentionDays)
	assert.Empty(t, cfg.Redis.URL)
	assert.Equal(t, []string{"https://ledger.permata.test", "http://localhost:5173"}, cfg.Server.CORSOrigins)
}
