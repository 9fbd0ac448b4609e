// Package obslog constructs the shared logrus logger used by both tools.
// There is no package-level global logger: main constructs one and threads
// it explicitly through the run functions, so tests can supply their own.
package obslog

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New builds a JSON-formatted logger at the given level, writing to w.
// Unknown level names fall back to info, matching the rest of the
// environment-driven configuration in this codebase.
func New(level string, w io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})

	switch level {
	case "debug":
		logger.SetLevel(logrus.DebugLevel)
	case "info", "":
		logger.SetLevel(logrus.InfoLevel)
	case "warn", "warning":
		logger.SetLevel(logrus.WarnLevel)
	case "error":
		logger.SetLevel(logrus.ErrorLevel)
	default:
		logger.SetLevel(logrus.InfoLevel)
	}

	return logger
}

// NewFromEnv builds a logger using LOG_LEVEL (default "info"), writing to
// stderr so stdout stays free for any piped output.
func NewFromEnv() *logrus.Logger {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}
	return New(level, os.Stderr)
}
