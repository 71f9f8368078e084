// Package guard switches the application into test mode when imported for
// side effects from a test file.
package guard

import (
	"os"
	"sync"
)

const envTestMode = "FREIGHTDESK_TEST_MODE"

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv(envTestMode) == "" {
			_ = os.Setenv(envTestMode, "1")
		}
	})
}

// Enabled reports whether test mode is switched on.
func Enabled() bool {
	return os.Getenv(envTestMode) == "1"
}
