// Package logging configures the zerolog logger used by the demo
// command. Library code never logs — only the demo entrypoint does,
// the same separation the
// teacher repo draws between its circuit/prover packages (silent unless
// something fails) and its own zerolog setup in test/tooling code.
package logging

import (
	"os"

	"github.com/rs/zerolog"
)

// New builds a console-writer zerolog.Logger at the given level,
// timestamped, matching the setup the teacher repo uses for its gnark
// test logger.
func New(level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).Level(level).With().Timestamp().Logger()
}
