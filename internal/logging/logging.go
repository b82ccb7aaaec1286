package logging

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var logger *logrus.Logger

// Init configures the shared structured logger. Text output with colors in
// development, JSON everywhere else.
func Init(level string, development bool) *logrus.Logger {
	log := logrus.New()

	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	if parsed, err := logrus.ParseLevel(strings.ToLower(level)); err == nil {
		log.SetLevel(parsed)
	} else {
		log.SetLevel(logrus.InfoLevel)
		if level != "" {
			log.WithField("invalid_level", level).Warn("Invalid LOG_LEVEL, using INFO")
		}
	}

	if !development || strings.EqualFold(os.Getenv("LOG_FORMAT"), "json") {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	log.SetOutput(os.Stdout)
	logger = log
	return log
}

// Get returns the shared logger, initializing a default one if needed.
func Get() *logrus.Logger {
	if logger == nil {
		return Init("info", false)
	}
	return logger
}
