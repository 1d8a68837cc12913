package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Setup configures the standard logrus logger used across the process.
func Setup(level, format string) *logrus.Logger {
	logger := logrus.StandardLogger()
	logger.SetOutput(os.Stdout)

	if format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logger.Warnf("unknown log level %q, falling back to info", level)
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}
