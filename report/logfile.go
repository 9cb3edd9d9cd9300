package report

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Labels used in the evaluation log, in output order.
var logLabels = []string{
	"Accuracy",
	"F1-Score (Macro)",
	"F1-Score (Micro)",
	"Recall (Macro)",
	"Recall (Micro)",
	"Precision (Macro)",
	"Precision (Micro)",
}

// LogOption configures AppendLog.
type LogOption func(*logConfig)

type logConfig struct {
	legacyLabels bool
}

// WithLegacyLabels labels the micro recall line "Recall (Macro)", matching
// logs written by earlier versions of the evaluator.
func WithLegacyLabels() LogOption {
	return func(c *logConfig) {
		c.legacyLabels = true
	}
}

// LogLines returns the lines AppendLog writes for r, without newlines.
func LogLines(r Report, opts ...LogOption) []string {
	var cfg logConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	labels := logLabels
	if cfg.legacyLabels {
		labels = append([]string(nil), logLabels...)
		labels[4] = labels[3]
	}

	entries := r.Entries()
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = labels[i] + ": " + FormatValue(e.Value)
	}
	return lines
}

// AppendLog appends the report to the log file at path, creating it if
// needed. Existing content is never truncated.
func AppendLog(path string, r Report, opts ...LogOption) (err error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close log: %w", cerr))
		}
	}()

	block := strings.Join(LogLines(r, opts...), "\n") + "\n"
	if _, err := f.WriteString(block); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}
