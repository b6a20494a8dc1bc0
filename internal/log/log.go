// Package log builds the logrus loggers used across the module.
package log

import (
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
)

// DebugEnv enables debug level logging when set to a true value.
const DebugEnv = "ZPLANE_DEBUG"

// GetLogger returns a new text logger writing to stderr. The level is Info,
// or Debug when ZPLANE_DEBUG is true.
func GetLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)

	if debug, _ := strconv.ParseBool(os.Getenv(DebugEnv)); debug {
		l.SetLevel(logrus.DebugLevel)
	}

	return l
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)

	return l
}
