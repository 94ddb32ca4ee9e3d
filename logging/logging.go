// Package logging provides the leveled logging used across the engine.
//
// The object-first signature lets call sites tag messages with the
// component they belong to, e.g. logging.Debugf(b, "open %v", id).
package logging

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// Level describes the verbosity of a log message.
type Level = logrus.Level

// Log levels in decreasing severity.
const (
	LevelFatal = logrus.FatalLevel
	LevelError = logrus.ErrorLevel
	LevelInfo  = logrus.InfoLevel
	LevelDebug = logrus.DebugLevel
)

var std = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	return l
}()

// SetLevel sets the verbosity of the package logger.
func SetLevel(level Level) {
	std.SetLevel(level)
}

// SetLogger replaces the package logger, used by tests to capture
// output. It returns the previous logger so callers can restore it.
func SetLogger(l *logrus.Logger) *logrus.Logger {
	old := std
	std = l
	return old
}

// Logger returns the underlying logger.
func Logger() *logrus.Logger {
	return std
}

func logf(level logrus.Level, o interface{}, format string, args ...interface{}) {
	if !std.IsLevelEnabled(level) {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if o != nil {
		msg = fmt.Sprintf("%v: %s", o, msg)
	}
	std.Log(level, msg)
}

// Debugf writes debug level output for o.
func Debugf(o interface{}, format string, args ...interface{}) {
	logf(logrus.DebugLevel, o, format, args...)
}

// Infof writes info level output for o.
func Infof(o interface{}, format string, args ...interface{}) {
	logf(logrus.InfoLevel, o, format, args...)
}

// Errorf writes error level output for o.
func Errorf(o interface{}, format string, args ...interface{}) {
	logf(logrus.ErrorLevel, o, format, args...)
}

// Fatalf writes fatal level output for o and exits the process.
func Fatalf(o interface{}, format string, args ...interface{}) {
	logf(logrus.FatalLevel, o, format, args...)
	std.Exit(1)
}
