package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// SetupLogging returns a JSON logger that tags every entry with the binary
// it came from ("api", "shell" or "pocketctl").
func SetupLogging(component string) *logrus.Logger {
	logger := logrus.Logger{
		Formatter: &logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyLevel: "loglevel",
			},
		},
		Out:   os.Stdout,
		Level: logrus.InfoLevel,
		Hooks: make(logrus.LevelHooks),
	}
	logger.AddHook(componentHook(component))

	return &logger
}

type componentHook string

func (h componentHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h componentHook) Fire(entry *logrus.Entry) error {
	if _, ok := entry.Data["component"]; !ok {
		entry.Data["component"] = string(h)
	}
	return nil
}

// SetLevel applies a textual level such as "debug". Unknown levels keep the current one.
func SetLevel(logger *logrus.Logger, level string) {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		logger.WithError(err).Warn("logging.SetLevel.unknown level")
		return
	}
	logger.SetLevel(parsed)
}
