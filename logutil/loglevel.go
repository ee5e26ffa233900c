package logutil

import (
	"io"
	"strings"

	"github.com/rs/zerolog"
)

func ParseZerologLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	case "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// New builds a timestamped logger tagged with the SDK component name.
func New(w io.Writer, level string) zerolog.Logger {
	return zerolog.New(w).
		Level(ParseZerologLevel(level)).
		With().
		Timestamp().
		Str("component", "paypayopa").
		Logger()
}
