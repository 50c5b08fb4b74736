// Package logging provides the structured logger lintal's CLI and
// library layers log through, plus a linter.Channel adapter so the check
// pipeline's progress/warning output goes through the same logger.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New builds a logrus.Logger configured for CLI use: text formatting
// with colors disabled when writing somewhere other than a terminal is
// left to the caller (lintal only ever logs to stderr), full timestamps
// omitted since CLI output is read live rather than grepped from a log
// file.
func New(debug bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	logger.SetLevel(logrus.InfoLevel)
	if debug {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

// Discard returns a logger that drops everything, for callers (tests,
// library embedders) that don't want lintal's log output.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
