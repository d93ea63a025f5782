package app

import (
	"os"
	"sync"
	"sync/atomic"
)

const testModeEnv = "HANDYDESK_TEST_MODE"

var (
	testModeFlag atomic.Bool
	testModeOnce sync.Once
)

func detectTestMode() {
	testModeFlag.Store(os.Getenv(testModeEnv) == "1")
}

// InTestMode reports whether the application should skip runtime side effects
// such as background monitors and outbound connectivity checks.
func InTestMode() bool {
	testModeOnce.Do(detectTestMode)
	return testModeFlag.Load()
}

// RefreshTestMode updates the cached flag after environment changes.
func RefreshTestMode() {
	detectTestMode()
}

// RunDraftMonitorInProcess reports whether the server binary owns the draft monitor loop.
func RunDraftMonitorInProcess(cfg *Config) bool {
	if cfg == nil || InTestMode() {
		return false
	}
	return cfg.DraftMonitor == DraftMonitorInProcess
}
