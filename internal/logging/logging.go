package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Afolstee/politiscope/pkg/discourse/config"
)

// Init configures the process logger from config.
func Init(cfg config.Logging) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		logrus.Warnf("Invalid log level '%s', using 'info' instead. Error: %v", cfg.Level, err)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	switch strings.ToLower(cfg.Format) {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	var output io.Writer
	switch strings.ToLower(cfg.Output) {
	case "", "stdout":
		output = os.Stdout
	case "stderr":
		output = os.Stderr
	default:
		file, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			logrus.Warnf("Failed to open log file '%s', using 'stdout' instead. Error: %v", cfg.Output, err)
			output = os.Stdout
		} else {
			output = file
		}
	}
	logrus.SetOutput(output)
}
