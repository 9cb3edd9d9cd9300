// Package report formats classification metrics for the console and the evaluation log.
package report

import (
	"strconv"
	"strings"

	"github.com/jamesainslie/go-clfeval/metrics"
)

// Metric names in output order.
const (
	NameAccuracy       = "Accuracy"
	NameF1Macro        = "F1-Macro"
	NameF1Micro        = "F1-Micro"
	NameRecallMacro    = "Recall-Macro"
	NameRecallMicro    = "Recall-Micro"
	NamePrecisionMacro = "Precision-Macro"
	NamePrecisionMicro = "Precision-Micro"
)

// Names lists the metric names in output order.
var Names = []string{
	NameAccuracy,
	NameF1Macro,
	NameF1Micro,
	NameRecallMacro,
	NameRecallMicro,
	NamePrecisionMacro,
	NamePrecisionMicro,
}

// Report holds the seven summary metrics of one evaluation run.
//
// Accuracy carries the support-weighted F1 score, not the fraction of
// correct predictions. Existing evaluation logs depend on that mapping.
type Report struct {
	Accuracy       float64
	F1Macro        float64
	F1Micro        float64
	RecallMacro    float64
	RecallMicro    float64
	PrecisionMacro float64
	PrecisionMicro float64
}

// Entry is a named metric value.
type Entry struct {
	Name  string
	Value float64
}

// FromConfusion computes a Report from a confusion matrix.
func FromConfusion(c *metrics.Confusion) Report {
	return Report{
		Accuracy:       c.F1(metrics.Weighted),
		F1Macro:        c.F1(metrics.Macro),
		F1Micro:        c.F1(metrics.Micro),
		RecallMacro:    c.Recall(metrics.Macro),
		RecallMicro:    c.Recall(metrics.Micro),
		PrecisionMacro: c.Precision(metrics.Macro),
		PrecisionMicro: c.Precision(metrics.Micro),
	}
}

// Entries returns the metrics in output order.
func (r Report) Entries() []Entry {
	return []Entry{
		{NameAccuracy, r.Accuracy},
		{NameF1Macro, r.F1Macro},
		{NameF1Micro, r.F1Micro},
		{NameRecallMacro, r.RecallMacro},
		{NameRecallMicro, r.RecallMicro},
		{NamePrecisionMacro, r.PrecisionMacro},
		{NamePrecisionMicro, r.PrecisionMicro},
	}
}

// FormatValue renders v in shortest round-trip form, keeping a
// trailing ".0" on integral values (1.0, 0.0).
func FormatValue(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eIN") {
		s += ".0"
	}
	return s
}
