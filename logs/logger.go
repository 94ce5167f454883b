package logs

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var logger = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyLevel: "severity",
			logrus.FieldKeyMsg:   "message",
		},
	})
	return l
}

// Logger exposes the shared logger, e.g. to redirect output in tests.
func Logger() *logrus.Logger {
	return logger
}

// SetLevel accepts logrus level names ("debug", "info", "warn", ...).
// Unknown names leave the level unchanged.
func SetLevel(level string) {
	if lvl, err := logrus.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	}
}

// LogJSON writes one JSON line. level is one of "DEBUG", "INFO", "WARN",
// "ERROR" or "FATAL".
func LogJSON(level, message string, fields map[string]interface{}) {
	entry := logger.WithFields(logrus.Fields(fields))
	switch strings.ToUpper(level) {
	case "DEBUG":
		entry.Debug(message)
	case "WARN", "WARNING":
		entry.Warn(message)
	case "ERROR":
		entry.Error(message)
	case "FATAL":
		entry.Fatal(message)
	default:
		entry.Info(message)
	}
}
