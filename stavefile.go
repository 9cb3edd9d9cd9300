//go:build stave

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

const (
	binary   = "bin/clfeval"
	mainPkg  = "./cmd/clfeval"
	defInput = "tmp/output"
	defLog   = "tmp/evaluation"
)

var Default = All

var Aliases = map[string]interface{}{
	"b": Build,
	"t": Test,
	"l": Lint,
}

// All lints and tests, then builds the binary.
func All() error {
	st.Deps(Lint, Test)
	st.Deps(Build)
	return nil
}

// Build compiles bin/clfeval when a Go source or module file is newer.
func Build() error {
	stale, err := target.Glob(binary, "**/*.go", "go.mod", "go.sum")
	if err != nil {
		return fmt.Errorf("stat sources: %w", err)
	}
	if !stale {
		return nil
	}
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binary, mainPkg)
}

// ldflags stamps version, commit and build date into cmd/clfeval.
func ldflags() string {
	describe, _ := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	rev, _ := sh.Output("git", "rev-parse", "--short", "HEAD")

	vars := [][2]string{
		{"main.version", strings.TrimSpace(describe)},
		{"main.commit", strings.TrimSpace(rev)},
		{"main.date", time.Now().UTC().Format(time.RFC3339)},
	}
	var flags []string
	for _, kv := range vars {
		if kv[1] != "" {
			flags = append(flags, "-X "+kv[0]+"="+kv[1])
		}
	}
	return strings.Join(flags, " ")
}

// Test runs the race-enabled test suite.
func Test() error {
	return sh.RunV("go", "test", "-race", "-cover", "./...")
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Clean removes bin/.
func Clean() error {
	return sh.Rm("bin")
}

// Install puts clfeval on GOBIN with the same version stamp as Build.
func Install() error {
	return sh.RunV("go", "install", "-ldflags", ldflags(), mainPkg)
}

// Eval runs the evaluator against local label files.
type Eval st.Namespace

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Run prints metrics for $CLFEVAL_INPUT (default tmp/output).
func (Eval) Run() error {
	st.Deps(Build)
	return sh.RunV(binary, "-i", envOr("CLFEVAL_INPUT", defInput))
}

// Log also appends the metrics to $CLFEVAL_LOG (default tmp/evaluation).
func (Eval) Log() error {
	st.Deps(Build)
	logPath := envOr("CLFEVAL_LOG", defLog)
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return err
	}
	return sh.RunV(binary, "-i", envOr("CLFEVAL_INPUT", defInput), "--log", logPath)
}

// Classes adds the per-class table in pretty format.
func (Eval) Classes() error {
	st.Deps(Build)
	return sh.RunV(binary, "-i", envOr("CLFEVAL_INPUT", defInput), "-f", "pretty", "--per-class")
}

// Sample generates a synthetic label file at $CLFEVAL_INPUT.
func (Eval) Sample() error {
	return sh.RunV("go", "run", "./scripts/gen-labels.go", "-out", envOr("CLFEVAL_INPUT", defInput))
}
