// Package logger provides a thin wrapper around zerolog.Logger tuned to
// the CLI's repeatable -v verbosity flag.
//
// The Logger type embeds zerolog.Logger so all standard zerolog methods
// (Debug, Info, Warn, Error, etc.) are available directly on *Logger.
// Components receive a *Logger and may derive enriched children via With.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger is a thin wrapper around zerolog.Logger.
// Embedding zerolog.Logger exposes the full zerolog API while allowing
// the application to add helper methods without modifying the upstream
// type.
type Logger struct {
	zerolog.Logger
}

// New constructs a *Logger writing human-readable console output to
// stderr. verbosity maps the CLI's repeated -v flag onto zerolog levels:
//
//	0 → warn, 1 → info, 2 → debug, ≥3 → trace
func New(verbosity int) *Logger {
	return NewWriter(os.Stderr, verbosity)
}

// NewWriter is New with an explicit output writer, for tests.
func NewWriter(w io.Writer, verbosity int) *Logger {
	cw := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05.000"}
	l := zerolog.New(cw).Level(levelFor(verbosity)).With().Timestamp().Logger()
	return &Logger{l}
}

// Nop returns a *Logger that discards all log output.
// It is intended for use in tests and other contexts where logging is
// undesirable or would produce noise.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// Child returns a new *Logger inheriting all fields of the receiver plus
// the given string field.
func (l *Logger) Child(key, value string) *Logger {
	return &Logger{l.With().Str(key, value).Logger()}
}

func levelFor(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}
