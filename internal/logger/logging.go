// Package logger builds charmbracelet/log loggers preconfigured for
// spellserve's two output channels: diagnostic logging and direct
// user-facing CLI output.
package logger

import (
	"os"

	"github.com/charmbracelet/log"
)

// NewPlain returns a bare text logger for user-facing CLI output: no
// prefix, no caller, no timestamps. Scores and correction candidates go
// through this so they read as program output, not log lines.
func NewPlain() *log.Logger {
	return NewWithConfig("", log.GetLevel(), false, false, log.TextFormatter)
}

// NewWithConfig creates a charm log with custom config.
func NewWithConfig(prefix string, level log.Level, caller bool, showTimestamp bool, fmt log.Formatter) *log.Logger {
	return log.NewWithOptions(os.Stdout, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportCaller:    caller,
		ReportTimestamp: showTimestamp,
		Formatter:       fmt,
	})
}
