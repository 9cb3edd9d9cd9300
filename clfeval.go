package clfeval

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/jamesainslie/go-clfeval/labels"
	"github.com/jamesainslie/go-clfeval/metrics"
	"github.com/jamesainslie/go-clfeval/report"
)

// Evaluator loads label pairs, scores them and writes the report.
type Evaluator struct {
	logger        *slog.Logger
	skipMalformed bool
	logFile       string
	logOpts       []report.LogOption
	format        report.Format
}

// New creates an Evaluator.
func New(opts ...Option) *Evaluator {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	var logOpts []report.LogOption
	if cfg.legacyLabels {
		logOpts = append(logOpts, report.WithLegacyLabels())
	}

	return &Evaluator{
		logger:        cfg.logger,
		skipMalformed: cfg.skipMalformed,
		logFile:       cfg.logFile,
		logOpts:       logOpts,
		format:        cfg.format,
	}
}

// Parse reads the label file at path.
func (e *Evaluator) Parse(path string) (*labels.Sequence, error) {
	var opts []labels.ReadOption
	if e.skipMalformed {
		opts = append(opts, labels.WithSkipMalformed(func(serr *labels.SyntaxError) {
			e.logger.Warn("skipping malformed line",
				"path", path, "line", serr.Line, "text", serr.Text, "err", serr.Err)
		}))
	}

	seq, err := labels.ReadFile(path, opts...)
	if err != nil {
		var serr *labels.SyntaxError
		if errors.As(err, &serr) {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}

	e.logger.Debug("parsed labels", "path", path, "pairs", seq.Len())
	return seq, nil
}

// Compute scores a label sequence.
func (e *Evaluator) Compute(seq *labels.Sequence) (report.Report, *metrics.Confusion, error) {
	if seq == nil || seq.Len() == 0 {
		return report.Report{}, nil, ErrInsufficientData
	}

	conf, err := metrics.NewConfusion(seq.Targets, seq.Predictions)
	if err != nil {
		if errors.Is(err, metrics.ErrEmpty) {
			return report.Report{}, nil, fmt.Errorf("%w: %w", ErrInsufficientData, err)
		}
		return report.Report{}, nil, err
	}

	e.logger.Debug("scored labels", "pairs", conf.Total(), "classes", len(conf.Classes()), "correct", conf.Correct())
	return report.FromConfusion(conf), conf, nil
}

// Report appends r to the log file, if one is configured, and then writes
// it to w. Nothing reaches w when the log cannot be written.
func (e *Evaluator) Report(w io.Writer, r report.Report) error {
	if e.logFile != "" {
		if err := report.AppendLog(e.logFile, r, e.logOpts...); err != nil {
			return fmt.Errorf("%w: %w", ErrIO, err)
		}
		e.logger.Info("appended report", "path", e.logFile)
	}

	if err := report.Write(w, r, e.format); err != nil {
		return fmt.Errorf("%w: writing report: %w", ErrIO, err)
	}
	return nil
}

// Run parses path, computes the report and writes it.
func (e *Evaluator) Run(w io.Writer, path string) (report.Report, error) {
	seq, err := e.Parse(path)
	if err != nil {
		return report.Report{}, err
	}

	r, _, err := e.Compute(seq)
	if err != nil {
		return report.Report{}, err
	}

	if err := e.Report(w, r); err != nil {
		return report.Report{}, err
	}
	return r, nil
}
