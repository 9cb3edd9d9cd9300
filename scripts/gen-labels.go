//go:build ignore

// Generate a synthetic label file for trying the evaluator locally.
// Each line is "<target>,<predicted>"; a fraction of predictions is flipped
// to a random other class.
// Usage: go run ./scripts/gen-labels.go [-n 1000] [-classes 5] [-noise 0.2] [-out tmp/output]
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/jamesainslie/go-clfeval/labels"
)

func main() {
	var (
		n       = flag.Int("n", 1000, "Number of label pairs")
		classes = flag.Int("classes", 5, "Number of classes")
		noise   = flag.Float64("noise", 0.2, "Fraction of wrong predictions")
		seed    = flag.Int64("seed", 0, "Random seed")
		out     = flag.String("out", "tmp/output", "Output file")
	)
	flag.Parse()

	if *classes < 2 {
		fmt.Fprintln(os.Stderr, "error: -classes must be at least 2")
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating directory: %v\n", err)
		os.Exit(1)
	}

	seq := generate(*n, *classes, *noise, *seed)
	if err := labels.WriteFile(*out, seq); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", *out, err)
		os.Exit(1)
	}

	fmt.Printf("  -> %s (%d pairs, %d classes)\n", *out, *n, *classes)
}

func generate(n, classes int, noise float64, seed int64) *labels.Sequence {
	rng := rand.New(rand.NewSource(seed))
	seq := &labels.Sequence{}
	for range n {
		target := rng.Intn(classes)
		predicted := target
		if rng.Float64() < noise {
			predicted = (target + 1 + rng.Intn(classes-1)) % classes
		}
		seq.Append(labels.Pair{Target: target, Predicted: predicted})
	}
	return seq
}
