package app

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handydesk/handydesk/internal/platform/kv"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("SETTINGS_SECRET", "s3cret")
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, kv.DriverSQLite, cfg.StorageDriver)
	assert.Equal(t, 0.045, cfg.QuoteTaxRate)
	assert.True(t, cfg.QuoteEnforceDepositCap)
	assert.Equal(t, 24*time.Hour, cfg.DraftStaleAfter)
	assert.Equal(t, DraftMonitorInProcess, cfg.DraftMonitor)
	assert.Equal(t, time.Minute, cfg.DraftCheckInterval)
	assert.Equal(t, 7, cfg.AttentionRules().NoContactDays)
	assert.Equal(t, 14, cfg.AttentionRules().FollowUpDays)
	assert.Equal(t, 3, cfg.AssistantConfig().RetryAttempts)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, slog.LevelInfo, cfg.Level())
}

func TestLoadConfigRequiresSettingsSecret(t *testing.T) {
	t.Setenv("SETTINGS_SECRET", "")
	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	cases := map[string][2]string{
		"driver":   {"STORAGE_DRIVER", "dynamo"},
		"monitor":  {"DRAFT_MONITOR", "sometimes"},
		"tax":      {"QUOTE_TAX_RATE", "1.5"},
		"contact":  {"ATTENTION_NO_CONTACT_DAYS", "0"},
		"duration": {"DRAFT_STALE_AFTER", "yesterday"},
	}
	for name, kvp := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("SETTINGS_SECRET", "s3cret")
			t.Setenv(kvp[0], kvp[1])
			_, err := LoadConfig()
			require.Error(t, err)
		})
	}
}

func TestConfigOverrides(t *testing.T) {
	t.Setenv("SETTINGS_SECRET", "s3cret")
	t.Setenv("QUOTE_TAX_RATE", "0.08")
	t.Setenv("QUOTE_ENFORCE_DEPOSIT_CAP", "false")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("APP_ENV", "production")
	cfg, err := LoadConfig()
	require.NoError(t, err)

	q := cfg.QuoteConfig()
	assert.Equal(t, 0.08, q.TaxRate)
	assert.False(t, q.EnforceDepositCap)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
	assert.True(t, cfg.IsProduction())
}

func TestRunDraftMonitorInProcess(t *testing.T) {
	t.Setenv(testModeEnv, "")
	RefreshTestMode()
	t.Cleanup(RefreshTestMode)

	assert.True(t, RunDraftMonitorInProcess(&Config{DraftMonitor: DraftMonitorInProcess}))
	assert.False(t, RunDraftMonitorInProcess(&Config{DraftMonitor: DraftMonitorWorker}))
	assert.False(t, RunDraftMonitorInProcess(nil))

	t.Setenv(testModeEnv, "1")
	RefreshTestMode()
	assert.False(t, RunDraftMonitorInProcess(&Config{DraftMonitor: DraftMonitorInProcess}))
}
