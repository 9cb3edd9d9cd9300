// Package metrics computes multi-class precision, recall and F1 from a confusion matrix.
package metrics

import (
	"errors"
	"slices"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrEmpty indicates there were no samples to evaluate.
	ErrEmpty = errors.New("metrics: no samples")

	// ErrLengthMismatch indicates targets and predictions differ in length.
	ErrLengthMismatch = errors.New("metrics: targets and predictions differ in length")
)

// cell addresses a (true, predicted) class index pair.
type cell struct {
	row, col int
}

// Confusion is a confusion matrix over the classes observed in either the
// targets or the predictions. Rows are true labels, columns are predicted
// labels. Only non-zero cells are stored, so memory grows with the number
// of classes and samples, never with their square.
type Confusion struct {
	classes []int
	index   map[int]int
	cells   map[cell]int

	diag    []float64
	rowSums []float64
	colSums []float64
}

// NewConfusion tallies targets against predictions.
func NewConfusion(targets, predictions []int) (*Confusion, error) {
	if len(targets) != len(predictions) {
		return nil, ErrLengthMismatch
	}
	if len(targets) == 0 {
		return nil, ErrEmpty
	}

	classes := lo.Uniq(slices.Concat(targets, predictions))
	slices.Sort(classes)

	index := make(map[int]int, len(classes))
	for i, c := range classes {
		index[c] = i
	}

	n := len(classes)
	conf := &Confusion{
		classes: classes,
		index:   index,
		cells:   make(map[cell]int),
		diag:    make([]float64, n),
		rowSums: make([]float64, n),
		colSums: make([]float64, n),
	}
	for i, t := range targets {
		r, c := index[t], index[predictions[i]]
		conf.cells[cell{r, c}]++
		conf.rowSums[r]++
		conf.colSums[c]++
		if r == c {
			conf.diag[r]++
		}
	}

	return conf, nil
}

// Classes returns the sorted distinct labels.
func (c *Confusion) Classes() []int {
	return slices.Clone(c.classes)
}

// Matrix builds a dense copy of the counts. It allocates k×k for k
// classes; prefer Count for large label sets.
func (c *Confusion) Matrix() *mat.Dense {
	n := len(c.classes)
	m := mat.NewDense(n, n, nil)
	for at, v := range c.cells {
		m.Set(at.row, at.col, float64(v))
	}
	return m
}

// Count returns how many samples with true label target were predicted as predicted.
func (c *Confusion) Count(target, predicted int) int {
	r, ok := c.index[target]
	if !ok {
		return 0
	}
	col, ok := c.index[predicted]
	if !ok {
		return 0
	}
	return c.cells[cell{r, col}]
}

// Total returns the number of samples.
func (c *Confusion) Total() int {
	return int(floats.Sum(c.rowSums))
}

// Correct returns the number of samples on the diagonal.
func (c *Confusion) Correct() int {
	return int(floats.Sum(c.diag))
}
