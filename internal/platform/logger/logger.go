// Package logger builds the process-wide zerolog logger for the intake
// binaries.
package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New returns a JSON logger writing to stdout, tagged with the emitting
// service's name. Collaborators receive it by value and attach their own
// contextual fields.
func New(serviceName string) zerolog.Logger {
	return zerolog.New(os.Stdout).With().
		Timestamp().
		Str("service", serviceName).
		Logger()
}
