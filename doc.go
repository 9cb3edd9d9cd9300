// Package clfeval computes multi-class classification metrics from a file of
// (target, predicted) label pairs.
//
// # Quick Start
//
//	ev := clfeval.New(clfeval.WithLogFile("tmp/evaluation"))
//	if _, err := ev.Run(os.Stdout, "tmp/output"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Input
//
// One record per line, "<target>,<predicted>". Further comma-separated fields
// are ignored and blank lines are skipped.
//
// # Output
//
// Seven metrics in fixed order: Accuracy, F1-Macro, F1-Micro, Recall-Macro,
// Recall-Micro, Precision-Macro, Precision-Micro. Accuracy reports the
// support-weighted F1 score. Per-class precision and recall fall back to 0
// when a class has no predicted or no actual instances.
package clfeval
