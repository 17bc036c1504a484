// Package hostlog is the VM's logging façade: a single package-level
// logrus.Logger, configured the way a util/log.go wrapper typically
// configures logrus for a long-running service.
package hostlog

import (
	"os"

	"github.com/sirupsen/logrus"
)

var logger = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// SetLevel parses level ("debug", "info", "warn", "error") and applies it,
// falling back to Info on an unrecognized name.
func SetLevel(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
}

// WithField and WithFields mirror logrus's entry-building API, scoped to
// the package logger.
func WithField(key string, value interface{}) *logrus.Entry { return logger.WithField(key, value) }
func WithFields(fields logrus.Fields) *logrus.Entry          { return logger.WithFields(fields) }

func Debugf(format string, args ...interface{}) { logger.Debugf(format, args...) }
func Infof(format string, args ...interface{})  { logger.Infof(format, args...) }
func Warnf(format string, args ...interface{})  { logger.Warnf(format, args...) }
func Errorf(format string, args ...interface{}) { logger.Errorf(format, args...) }
