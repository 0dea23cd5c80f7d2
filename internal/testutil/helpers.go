package testutil

import (
	"github.com/rs/zerolog"
)

// NopLogger returns a no-op logger for tests.
func NopLogger() zerolog.Logger {
	return zerolog.Nop()
}
