// Package logging builds zerolog loggers for the `sqlcond` command.
package logging

import (
	"io"
	"strings"

	"github.com/rs/zerolog"
)

type Config struct {
	// trace, debug, info, warn, error or disabled. Unknown levels mean info.
	Level string

	// json or console.
	Format string
}

/*
Creates a logger writing to `out`. Console format is meant for humans reading
a terminal; json is meant for everything else.
*/
func New(out io.Writer, cfg Config) zerolog.Logger {
	if cfg.Format == `console` {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: `15:04:05`, NoColor: true}
	}
	return zerolog.New(out).Level(ParseLevel(cfg.Level)).With().Timestamp().Logger()
}

func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case `trace`:
		return zerolog.TraceLevel
	case `debug`:
		return zerolog.DebugLevel
	case `warn`, `warning`:
		return zerolog.WarnLevel
	case `error`:
		return zerolog.ErrorLevel
	case `disabled`:
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
