// Package logtrace provides logging setup for the client. It integrates with
// zerolog for structured logging.
package logtrace

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger initializes the global logger. The CLI logs to stderr through a
// console writer at warn level so diagnostics never interleave with command
// output; set TICKETCTL_DEBUG to enable debug logging of requests and
// session transitions.
func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	level := zerolog.WarnLevel
	if os.Getenv("TICKETCTL_DEBUG") != "" {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
}
