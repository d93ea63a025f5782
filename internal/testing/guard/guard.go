// Package guard switches the process into test mode when imported for side
// effects, so app code skips background monitors and outbound checks.
package guard

import (
	"os"
	"sync"
)

// TestSettingsSecret is the settings secret installed when none is configured.
const TestSettingsSecret = "handydesk-test-settings-secret"

var once sync.Once

func init() {
	once.Do(func() {
		setDefault("HANDYDESK_TEST_MODE", "1")
		setDefault("SETTINGS_SECRET", TestSettingsSecret)
		setDefault("STORAGE_DRIVER", "memory")
		setDefault("GOTENBERG_URL", "http://127.0.0.1:0")
	})
}

func setDefault(key, value string) {
	if os.Getenv(key) == "" {
		_ = os.Setenv(key, value)
	}
}
