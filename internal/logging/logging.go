// Package logging configures the process logger.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// Setup applies level and format ("text" or "json") to the standard logrus
// logger and returns it.
func Setup(level, format string, out io.Writer) (*logrus.Logger, error) {
	log := logrus.StandardLogger()
	if err := Configure(log, level, format, out); err != nil {
		return nil, err
	}
	return log, nil
}

// Configure applies level and format to log. A nil out keeps the current
// output.
func Configure(log *logrus.Logger, level, format string, out io.Writer) error {
	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	log.SetLevel(lvl)

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("log format %q: want text or json", format)
	}
	if out != nil {
		log.SetOutput(out)
	}
	return nil
}
