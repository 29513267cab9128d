package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

var Logger *zerolog.Logger

// Init configures the global logger. Output goes to stderr because stdout
// carries the progress bar.
func Init(level string) {
	InitWithWriter(level, os.Stderr)
}

// InitWithWriter is Init with an explicit destination.
func InitWithWriter(level string, w io.Writer) {
	var logLevel zerolog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "info":
		logLevel = zerolog.InfoLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	default:
		logLevel = zerolog.WarnLevel
	}

	l := zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: "2006-01-02 15:04:05"}).
		Level(logLevel).
		With().
		Timestamp().
		Logger()
	Logger = &l
}

// Get returns the global logger, or a discard logger before Init.
func Get() *zerolog.Logger {
	if Logger == nil {
		l := zerolog.New(io.Discard)
		Logger = &l
	}
	return Logger
}
