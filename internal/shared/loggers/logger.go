package loggers

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is a wrapper around zerolog.Logger for convenience.
type Logger = zerolog.Logger

// Format selects how log lines are encoded.
type Format string

const (
	FormatJSON    Format = "json"
	FormatConsole Format = "console"
)

// Options configures NewWithOptions. A nil Writer means stdout, an empty Format means JSON.
type Options struct {
	Level  string
	Format Format
	Writer io.Writer
}

// New creates a JSON logger on stdout at the given level.
// Returns an error if the log level string cannot be parsed.
func New(level string) (Logger, error) {
	return NewWithOptions(Options{Level: level})
}

// NewWithWriter is New writing to w instead of stdout.
func NewWithWriter(w io.Writer, level string) (Logger, error) {
	return NewWithOptions(Options{Level: level, Writer: w})
}

// NewWithOptions builds a leveled logger with timestamp and caller fields.
// Console output is meant for people reading a terminal; servers keep JSON lines.
func NewWithOptions(opts Options) (Logger, error) {
	zerologLevel, err := zerolog.ParseLevel(opts.Level)
	if err != nil {
		return zerolog.Nop(), err
	}

	w := opts.Writer
	if w == nil {
		w = os.Stdout
	}

	switch opts.Format {
	case "", FormatJSON:
	case FormatConsole:
		w = zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: time.RFC3339}
	default:
		return zerolog.Nop(), fmt.Errorf("unknown log format %q", opts.Format)
	}

	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}

	logger := zerolog.New(w).
		Level(zerologLevel).
		With().
		Timestamp().
		Caller().
		Logger()

	return logger, nil
}

// Component returns a child logger tagged with the owning app and component.
func Component(logger Logger, app, component string) Logger {
	return logger.With().
		Str(FieldApp, app).
		Str(FieldComponent, component).
		Logger()
}

// Ctx extracts a logger from the context.
// Returns a no-op logger if no logger is found in context.
var Ctx = func(ctx context.Context) *Logger {
	return zerolog.Ctx(ctx)
}
