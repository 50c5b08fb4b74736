package logging

import (
	"github.com/sirupsen/logrus"

	"github.com/eleventy7/lintal/internal/linter"
)

// Channel adapts a logrus.Logger to linter.Channel, so CheckFile's
// progress and warning output is logged once through the CLI's shared
// logger rather than each caller wiring its own stderr writes.
type Channel struct {
	logger *logrus.Logger
}

// NewChannel wraps logger as a linter.Channel.
func NewChannel(logger *logrus.Logger) *Channel {
	return &Channel{logger: logger}
}

func (c *Channel) Log(level linter.Level, msg string) {
	switch level {
	case linter.LevelDebug:
		c.logger.Debug(msg)
	case linter.LevelInfo:
		c.logger.Info(msg)
	case linter.LevelWarn:
		c.logger.Warn(msg)
	case linter.LevelError:
		c.logger.Error(msg)
	default:
		c.logger.Info(msg)
	}
}

// Progress logs at debug level since a log line per file would be noisy
// at the default info level; the CLI's own stdout output is the primary
// progress signal for a human, this channel exists for diagnosability.
func (c *Channel) Progress(title string, pct int) {
	c.logger.WithField("percent", pct).Debug(title)
}

func (c *Channel) Warn(msg string) {
	c.logger.Warn(msg)
}
