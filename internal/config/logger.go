package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

var logg *logrus.Logger

func init() {
	logg = logrus.New()
	logg.SetFormatter(&logrus.JSONFormatter{})
	logg.SetLevel(logrus.InfoLevel)
	logg.SetOutput(os.Stdout)
}

// GetLogger returns the shared application logger.
func GetLogger() *logrus.Logger {
	return logg
}

// SetLogLevel adjusts the shared logger level from the app environment.
func SetLogLevel(debug bool) {
	if debug {
		logg.SetLevel(logrus.DebugLevel)
	} else {
		logg.SetLevel(logrus.InfoLevel)
	}
}
