package utils

import (
	"os"

	"github.com/rs/zerolog"
)

// Log is the application logger. main replaces it once config is loaded.
var Log = zerolog.New(os.Stderr).With().Timestamp().Logger()

// NewLogger builds a JSON logger, or a console logger for local development
func NewLogger(development bool) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	if development {
		return logger.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.DebugLevel)
	}
	return logger.Level(zerolog.InfoLevel)
}
