package clfeval

import "errors"

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrIO indicates the label file could not be read or the log could not be written.
	ErrIO = errors.New("clfeval: i/o failure")

	// ErrParse indicates a line did not hold two integer labels.
	ErrParse = errors.New("clfeval: malformed label line")

	// ErrInsufficientData indicates no label pairs were available to evaluate.
	ErrInsufficientData = errors.New("clfeval: no label pairs to evaluate")
)
