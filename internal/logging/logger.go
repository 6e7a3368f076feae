// Package logging builds the zerolog loggers used by the CLI and by callers
// that want codec diagnostics.
package logging

import (
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	EnvLogLevel   = "LEGACYREC_LOG_LEVEL"
	EnvLogNoColor = "LEGACYREC_LOG_NOCOLOR"
)

// New returns a console logger tagged with app, honouring the env overrides.
func New(app string) zerolog.Logger {
	return NewWithWriter(app, os.Stderr)
}

// NewWithWriter is New writing to w.
func NewWithWriter(app string, w io.Writer) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
	}
	if v, ok := parseBool(os.Getenv(EnvLogNoColor)); ok {
		output.NoColor = v
	}

	level := zerolog.InfoLevel
	if lvl, ok := ParseLevel(os.Getenv(EnvLogLevel)); ok {
		level = lvl
	}

	return zerolog.New(output).Level(level).With().Timestamp().Str("app", app).Logger()
}

// ParseLevel maps a user supplied level name to a zerolog level.
func ParseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zerolog.InfoLevel, false
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}

func parseBool(raw string) (bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}

	return v, true
}
