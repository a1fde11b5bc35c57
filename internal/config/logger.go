package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

// InitLogger configures the global logrus logger and returns an instance for
// injection into services. Production uses the JSON formatter.
func InitLogger(cfg *Config) *logrus.Logger {
	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}

	var formatter logrus.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	if cfg.Logging.Format == "json" || (cfg.Logging.Format == "" && cfg.Server.Env != "development") {
		formatter = &logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "@timestamp",
				logrus.FieldKeyMsg:  "message",
			},
		}
	}

	logrus.SetFormatter(formatter)
	logrus.SetLevel(level)

	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(formatter)
	logger.SetLevel(level)
	return logger
}
