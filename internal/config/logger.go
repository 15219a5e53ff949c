package config

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// NewLogger creates a structured logger writing to stderr at the given level.
// An unknown level falls back to info and is reported once.
func NewLogger(level, prefix string) *log.Logger {
	return newLogger(os.Stderr, level, prefix)
}

func newLogger(w io.Writer, level, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	lvl, err := log.ParseLevel(level)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", level)
		lvl = log.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}
