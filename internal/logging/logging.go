// Package logging builds the charmbracelet loggers shared by frogcore
// components.
package logging

import (
	"io"

	"github.com/charmbracelet/log"
)

// New creates a timestamped logger writing to w with the given prefix.
// Debug output is enabled when verbose is set.
func New(w io.Writer, prefix string, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// OrDiscard returns logger, or a discarding logger if it is nil.
func OrDiscard(logger *log.Logger) *log.Logger {
	if logger == nil {
		return Discard()
	}
	return logger
}
