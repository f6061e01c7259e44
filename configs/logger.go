package configs

import (
	"os"

	"github.com/sirupsen/logrus"
)

// ConfigureLogging func - applies the log level and format for the process
func ConfigureLogging(app App) {
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	level, err := logrus.ParseLevel(app.LogLevel)
	if err != nil {
		logrus.Warnf("Unknown log level %q, using info", app.LogLevel)
		level = logrus.InfoLevel
	}
	if app.Debug {
		level = logrus.DebugLevel
	}
	logrus.SetLevel(level)
}
