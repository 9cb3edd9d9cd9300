package report

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/charmbracelet/colorprofile"
	"github.com/samber/lo"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/jamesainslie/go-clfeval/metrics"
)

// Format selects the console rendering.
type Format string

const (
	// FormatText prints "<Name>: <value>" lines.
	FormatText Format = "text"
	// FormatPretty prints styled lines for terminals.
	FormatPretty Format = "pretty"
	// FormatJSON prints a single JSON object keyed by metric name.
	FormatJSON Format = "json"
)

// Formats lists the supported formats.
var Formats = []Format{FormatText, FormatPretty, FormatJSON}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if !lo.Contains(Formats, f) {
		return "", fmt.Errorf("unknown format %q (want one of %s)", s, strings.Join(lo.Map(Formats, func(f Format, _ int) string {
			return string(f)
		}), ", "))
	}
	return f, nil
}

var (
	nameStyle  = lipgloss.NewStyle().Bold(true).Width(17)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575"))
	headStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle  = lipgloss.NewStyle().Padding(0, 1)
)

// Write renders r to w in the given format.
func Write(w io.Writer, r Report, f Format) error {
	switch f {
	case FormatText, "":
		return writeText(w, r)
	case FormatPretty:
		return writePretty(w, r)
	case FormatJSON:
		return writeJSON(w, r)
	default:
		return fmt.Errorf("unknown format %q", f)
	}
}

func writeText(w io.Writer, r Report) error {
	var b strings.Builder
	for _, e := range r.Entries() {
		b.WriteString(e.Name)
		b.WriteString(": ")
		b.WriteString(FormatValue(e.Value))
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writePretty(w io.Writer, r Report) error {
	cw := colorprofile.NewWriter(w, os.Environ())
	for _, e := range r.Entries() {
		line := nameStyle.Render(e.Name+":") + " " + valueStyle.Render(FormatValue(e.Value))
		if _, err := fmt.Fprintln(cw, line); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, r Report) error {
	fields := lo.SliceToMap(r.Entries(), func(e Entry) (string, any) {
		return e.Name, e.Value
	})
	s, err := structpb.NewStruct(fields)
	if err != nil {
		return fmt.Errorf("building report struct: %w", err)
	}

	data, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	data = append(data, '\n')

	_, err = w.Write(data)
	return err
}

// WriteClasses renders a per-class breakdown table.
func WriteClasses(w io.Writer, scores []metrics.ClassScore) error {
	rows := lo.Map(scores, func(s metrics.ClassScore, _ int) []string {
		return []string{
			strconv.Itoa(s.Label),
			strconv.FormatFloat(s.Precision, 'f', 4, 64),
			strconv.FormatFloat(s.Recall, 'f', 4, 64),
			strconv.FormatFloat(s.F1, 'f', 4, 64),
			strconv.Itoa(s.Support),
		}
	})

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Class", "Precision", "Recall", "F1", "Support").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headStyle
			}
			return cellStyle
		})

	cw := colorprofile.NewWriter(w, os.Environ())
	_, err := fmt.Fprintln(cw, t.String())
	return err
}
