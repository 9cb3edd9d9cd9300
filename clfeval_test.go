package clfeval

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jamesainslie/go-clfeval/labels"
	"github.com/jamesainslie/go-clfeval/report"
)

// writeLabels writes content to a temp file and returns its path.
func writeLabels(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "output")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing labels: %v", err)
	}
	return path
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRun(t *testing.T) {
	path := writeLabels(t, "0,0\n1,1\n2,0\n1,1\n")

	var out bytes.Buffer
	r, err := New(WithLogger(quietLogger())).Run(&out, path)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if r.RecallMicro != 0.75 || r.PrecisionMicro != 0.75 {
		t.Errorf("micro recall/precision = %v/%v, want 0.75", r.RecallMicro, r.PrecisionMicro)
	}
	if r.Accuracy <= 0 || r.Accuracy >= 1 {
		t.Errorf("Accuracy = %v, want strictly between 0 and 1", r.Accuracy)
	}
	if math.Abs(r.Accuracy-2.0/3.0) > 1e-12 {
		t.Errorf("Accuracy = %v, want weighted F1 %v", r.Accuracy, 2.0/3.0)
	}

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("got %d output lines, want 7:\n%s", len(lines), out.String())
	}
	for i, name := range report.Names {
		if !strings.HasPrefix(lines[i], name+": ") {
			t.Errorf("line %d = %q, want prefix %q", i, lines[i], name+": ")
		}
	}
}

func TestRun_PerfectPredictions(t *testing.T) {
	path := writeLabels(t, "0,0\n1,1\n2,2\n2,2\n5,5\n")

	r, err := New(WithLogger(quietLogger())).Run(io.Discard, path)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	for _, e := range r.Entries() {
		if e.Value != 1 {
			t.Errorf("%s = %v, want 1", e.Name, e.Value)
		}
	}
}

func TestRun_DisjointLabels(t *testing.T) {
	path := writeLabels(t, "0,2\n1,3\n0,3\n1,2\n")

	r, err := New(WithLogger(quietLogger())).Run(io.Discard, path)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	for _, e := range r.Entries() {
		if e.Value != 0 {
			t.Errorf("%s = %v, want 0", e.Name, e.Value)
		}
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantErr error
	}{
		{
			name:    "missing file",
			path:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope") },
			wantErr: ErrIO,
		},
		{
			name:    "non-integer target",
			path:    func(t *testing.T) string { return writeLabels(t, "0,0\nabc,1\n") },
			wantErr: ErrParse,
		},
		{
			name:    "single field",
			path:    func(t *testing.T) string { return writeLabels(t, "3\n") },
			wantErr: ErrParse,
		},
		{
			name: "line over 1 MiB",
			path: func(t *testing.T) string {
				return writeLabels(t, "0,0\n"+strings.Repeat("7", 2<<20)+",1\n")
			},
			wantErr: ErrParse,
		},
		{
			name:    "empty file",
			path:    func(t *testing.T) string { return writeLabels(t, "\n\n") },
			wantErr: ErrInsufficientData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			_, err := New(WithLogger(quietLogger())).Run(&out, tt.path(t))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Run() error = %v, want %v", err, tt.wantErr)
			}
			if out.Len() != 0 {
				t.Errorf("expected no output on failure, got %q", out.String())
			}
		})
	}
}

func TestRun_SkipMalformed(t *testing.T) {
	path := writeLabels(t, "0,0\nabc,1\n1,1\n")

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	ev := New(WithLogger(logger), WithSkipMalformed(true))
	seq, err := ev.Parse(path)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if seq.Len() != 2 {
		t.Errorf("Len() = %d, want 2", seq.Len())
	}
	if !strings.Contains(logs.String(), "skipping malformed line") {
		t.Errorf("expected warning in logs, got %q", logs.String())
	}
}

func TestRun_SkipLineTooLong(t *testing.T) {
	path := writeLabels(t, "0,0\n"+strings.Repeat("7", 2<<20)+",1\n1,1\n")

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	seq, err := New(WithLogger(logger), WithSkipMalformed(true)).Parse(path)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if seq.Len() != 2 {
		t.Errorf("Len() = %d, want 2", seq.Len())
	}
	if !strings.Contains(logs.String(), "line=2") {
		t.Errorf("expected warning for line 2, got %q", logs.String())
	}
}

func TestCompute_Empty(t *testing.T) {
	ev := New(WithLogger(quietLogger()))
	if _, _, err := ev.Compute(&labels.Sequence{}); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("Compute(empty) error = %v, want ErrInsufficientData", err)
	}
	if _, _, err := ev.Compute(nil); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("Compute(nil) error = %v, want ErrInsufficientData", err)
	}
}

func TestRun_AppendLog(t *testing.T) {
	path := writeLabels(t, "0,0\n1,1\n2,0\n1,1\n")
	logPath := filepath.Join(t.TempDir(), "evaluation")

	ev := New(WithLogger(quietLogger()), WithLogFile(logPath))
	for i := 0; i < 2; i++ {
		if _, err := ev.Run(io.Discard, path); err != nil {
			t.Fatalf("Run() #%d error = %v", i+1, err)
		}
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 14 {
		t.Fatalf("got %d log lines, want 14:\n%s", len(lines), data)
	}
	if lines[4] != "Recall (Micro): 0.75" {
		t.Errorf("log line 5 = %q, want %q", lines[4], "Recall (Micro): 0.75")
	}
}

func TestRun_AppendLogLegacyLabels(t *testing.T) {
	path := writeLabels(t, "0,0\n1,1\n2,0\n1,1\n")
	logPath := filepath.Join(t.TempDir(), "evaluation")

	ev := New(WithLogger(quietLogger()), WithLogFile(logPath), WithLegacyLabels(true))
	if _, err := ev.Run(io.Discard, path); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(string(data), "Recall (Macro)") != 2 {
		t.Errorf("expected duplicated macro recall label, got:\n%s", data)
	}
}

func TestRun_LogUnwritable(t *testing.T) {
	path := writeLabels(t, "0,0\n")
	logPath := filepath.Join(t.TempDir(), "no-such-dir", "evaluation")

	var out bytes.Buffer
	_, err := New(WithLogger(quietLogger()), WithLogFile(logPath)).Run(&out, path)
	if !errors.Is(err, ErrIO) {
		t.Fatalf("Run() error = %v, want ErrIO", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no console output when the log fails, got %q", out.String())
	}
}

func TestRun_JSONFormat(t *testing.T) {
	path := writeLabels(t, "0,0\n1,0\n")

	var out bytes.Buffer
	ev := New(WithLogger(quietLogger()), WithFormat(report.FormatJSON))
	if _, err := ev.Run(&out, path); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out.String(), `"F1-Micro"`) {
		t.Errorf("expected JSON key F1-Micro, got %s", out.String())
	}
}
