package clfeval

import (
	"log/slog"

	"github.com/jamesainslie/go-clfeval/report"
)

// Option configures an Evaluator.
type Option func(*config)

type config struct {
	logger        *slog.Logger
	skipMalformed bool
	logFile       string
	legacyLabels  bool
	format        report.Format
}

func defaultConfig() config {
	return config{
		logger: slog.Default(),
		format: report.FormatText,
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithSkipMalformed skips unparsable lines with a warning instead of failing.
func WithSkipMalformed(skip bool) Option {
	return func(c *config) {
		c.skipMalformed = skip
	}
}

// WithLogFile appends every report to path before printing it.
func WithLogFile(path string) Option {
	return func(c *config) {
		c.logFile = path
	}
}

// WithLegacyLabels writes the log file with the historic label set.
func WithLegacyLabels(legacy bool) Option {
	return func(c *config) {
		c.legacyLabels = legacy
	}
}

// WithFormat sets the console format (default: report.FormatText).
func WithFormat(f report.Format) Option {
	return func(c *config) {
		if f != "" {
			c.format = f
		}
	}
}
