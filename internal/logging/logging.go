package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

// NewLogger returns a logrus logger writing to w with millisecond timestamps.
// verbose forces debug level; an unparsable level falls back to info.
func NewLogger(w io.Writer, level string, verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)

	// Set timestamp format with milliseconds
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})

	switch {
	case verbose:
		logger.SetLevel(logrus.DebugLevel)
	case level != "":
		parsed, err := logrus.ParseLevel(level)
		if err != nil {
			logger.Warnf("Unknown log level %q, using info", level)
			parsed = logrus.InfoLevel
		}
		logger.SetLevel(parsed)
	default:
		logger.SetLevel(logrus.InfoLevel)
	}

	return logger
}
