// Package labels reads ground-truth and predicted class labels from delimited text.
package labels

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const (
	// maxLineSize bounds a single input line.
	maxLineSize = 1 << 20

	// textPreview is how much of an over-long line a SyntaxError keeps.
	textPreview = 64
)

// ErrLineTooLong indicates a line exceeded the 1 MiB limit.
var ErrLineTooLong = errors.New("line exceeds 1 MiB")

// Pair is one parsed record.
type Pair struct {
	Target    int
	Predicted int
}

// Sequence holds index-aligned target and predicted labels.
type Sequence struct {
	Targets     []int
	Predictions []int
}

// Append adds a pair to both columns.
func (s *Sequence) Append(p Pair) {
	s.Targets = append(s.Targets, p.Target)
	s.Predictions = append(s.Predictions, p.Predicted)
}

// Len returns the number of pairs.
func (s *Sequence) Len() int {
	return len(s.Targets)
}

// Pairs returns the sequence as a slice of pairs in input order.
func (s *Sequence) Pairs() []Pair {
	pairs := make([]Pair, len(s.Targets))
	for i := range s.Targets {
		pairs[i] = Pair{Target: s.Targets[i], Predicted: s.Predictions[i]}
	}
	return pairs
}

// SyntaxError describes a line that could not be parsed into a Pair.
type SyntaxError struct {
	Line int    // 1-based line number
	Text string // raw line
	Err  error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %q: %v", e.Line, e.Text, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// errTooFewFields is returned for lines with no second field.
var errTooFewFields = errors.New("expected at least two comma-separated fields")

// ReadOption configures Read.
type ReadOption func(*readConfig)

type readConfig struct {
	onMalformed func(*SyntaxError)
}

// WithSkipMalformed skips lines that fail to parse instead of failing the read.
// fn is called for every skipped line and may be nil.
func WithSkipMalformed(fn func(*SyntaxError)) ReadOption {
	return func(c *readConfig) {
		if fn == nil {
			fn = func(*SyntaxError) {}
		}
		c.onMalformed = fn
	}
}

// ParseLine parses a single "<target>,<predicted>[,...]" record.
// Fields beyond the second are ignored.
func ParseLine(line string) (Pair, error) {
	fields := strings.SplitN(line, ",", 3)
	if len(fields) < 2 {
		return Pair{}, errTooFewFields
	}

	target, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return Pair{}, fmt.Errorf("target: %w", err)
	}
	predicted, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return Pair{}, fmt.Errorf("prediction: %w", err)
	}

	return Pair{Target: target, Predicted: predicted}, nil
}

// Read parses label pairs from r, one per line. Blank lines are skipped.
// Lines longer than 1 MiB are reported as a *SyntaxError wrapping ErrLineTooLong.
func Read(r io.Reader, opts ...ReadOption) (*Sequence, error) {
	var cfg readConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	seq := &Sequence{}
	br := bufio.NewReaderSize(r, 64*1024)

	for lineNo := 1; ; lineNo++ {
		raw, tooLong, err := readLine(br)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read labels: %w", err)
		}

		line := string(raw)
		var pair Pair
		if tooLong {
			err = ErrLineTooLong
			line += "..."
		} else {
			if strings.TrimSpace(line) == "" {
				continue
			}
			pair, err = ParseLine(line)
		}

		if err != nil {
			serr := &SyntaxError{Line: lineNo, Text: line, Err: err}
			if cfg.onMalformed != nil {
				cfg.onMalformed(serr)
				continue
			}
			return nil, serr
		}
		seq.Append(pair)
	}

	return seq, nil
}

// readLine returns the next line without its terminator. Once a line
// passes maxLineSize the rest of it is discarded, tooLong is set and only
// the first textPreview bytes are returned.
func readLine(br *bufio.Reader) (line []byte, tooLong bool, err error) {
	for {
		frag, isPrefix, err := br.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) && (len(line) > 0 || tooLong) {
				return line, tooLong, nil
			}
			return nil, false, err
		}
		if !tooLong {
			line = append(line, frag...)
			if len(line) > maxLineSize {
				tooLong = true
				line = line[:textPreview:textPreview]
			}
		}
		if !isPrefix {
			return line, tooLong, nil
		}
	}
}

// ReadFile opens path read-only and parses it with Read.
func ReadFile(path string, opts ...ReadOption) (*Sequence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open labels: %w", err)
	}
	defer func() { _ = f.Close() }() // Read-only; close error carries no data loss

	seq, err := Read(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return seq, nil
}

// Write emits seq to w as "<target>,<predicted>" lines, the format Read parses.
func Write(w io.Writer, seq *Sequence) error {
	bw := bufio.NewWriter(w)
	for i, t := range seq.Targets {
		if _, err := fmt.Fprintf(bw, "%d,%d\n", t, seq.Predictions[i]); err != nil {
			return fmt.Errorf("write labels: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write labels: %w", err)
	}
	return nil
}

// WriteFile creates or truncates path and writes seq to it. A failed
// close is reported, since buffered data may not have reached disk.
func WriteFile(path string, seq *Sequence) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create labels: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close labels: %w", cerr))
		}
	}()

	return Write(f, seq)
}
