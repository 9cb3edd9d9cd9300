package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	clfeval "github.com/jamesainslie/go-clfeval"
	"github.com/jamesainslie/go-clfeval/report"
)

// Set via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Exit codes.
const (
	exitOK           = 0
	exitIO           = 1
	exitParse        = 2
	exitInsufficient = 3
)

const (
	defaultInput = "tmp/output"
	defaultLog   = "tmp/evaluation"
)

// formatValue adapts report.Format to pflag.Value.
type formatValue report.Format

var _ pflag.Value = (*formatValue)(nil)

func (f *formatValue) String() string { return string(*f) }

func (f *formatValue) Set(s string) error {
	parsed, err := report.ParseFormat(s)
	if err != nil {
		return err
	}
	*f = formatValue(parsed)
	return nil
}

func (f *formatValue) Type() string { return "format" }

type options struct {
	input         string
	logFile       string
	format        formatValue
	legacyLabels  bool
	skipMalformed bool
	perClass      bool
	logLevel      string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := options{
		input:    defaultInput,
		format:   formatValue(report.FormatText),
		logLevel: "warn",
	}

	cmd := &cobra.Command{
		Use:   "clfeval [input]",
		Short: "Score predicted class labels against ground truth",
		Long: `Read "<target>,<predicted>" label pairs, one per line, and print
Accuracy (weighted F1), macro/micro F1, macro/micro recall and macro/micro
precision.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.input = args[0]
			}
			return run(opts, stdout, stderr)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.StringVarP(&opts.input, "input", "i", opts.input, "label pairs file")
	flags.StringVar(&opts.logFile, "log", "", fmt.Sprintf("append the report to this file (e.g. %s)", defaultLog))
	flags.VarP(&opts.format, "format", "f", "console format: text, pretty or json")
	flags.BoolVar(&opts.legacyLabels, "legacy-labels", false, `label the micro recall log line "Recall (Macro)" like older logs`)
	flags.BoolVar(&opts.skipMalformed, "skip-malformed", false, "skip malformed lines with a warning instead of failing")
	flags.BoolVar(&opts.perClass, "per-class", false, "also print per-class precision, recall and F1")
	flags.StringVar(&opts.logLevel, "log-level", opts.logLevel, "diagnostic log level: debug, info, warn or error")

	return cmd
}

func run(opts options, stdout, stderr io.Writer) error {
	level, err := parseLevel(opts.logLevel)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	ev := clfeval.New(
		clfeval.WithLogger(logger),
		clfeval.WithSkipMalformed(opts.skipMalformed),
		clfeval.WithLogFile(opts.logFile),
		clfeval.WithLegacyLabels(opts.legacyLabels),
		clfeval.WithFormat(report.Format(opts.format)),
	)

	seq, err := ev.Parse(opts.input)
	if err != nil {
		return err
	}
	r, conf, err := ev.Compute(seq)
	if err != nil {
		return err
	}
	if err := ev.Report(stdout, r); err != nil {
		return err
	}

	if opts.perClass {
		if err := report.WriteClasses(stdout, conf.Scores()); err != nil {
			return fmt.Errorf("%w: writing classes: %w", clfeval.ErrIO, err)
		}
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

// exitCode maps an error to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, clfeval.ErrParse):
		return exitParse
	case errors.Is(err, clfeval.ErrInsufficientData):
		return exitInsufficient
	default:
		return exitIO
	}
}

func main() {
	cmd := newRootCmd(os.Stdout, os.Stderr)

	err := fang.Execute(
		context.Background(),
		cmd,
		fang.WithVersion(fmt.Sprintf("%s (%s, %s)", version, commit, date)),
	)
	os.Exit(exitCode(err))
}
