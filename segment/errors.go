package segment

import "errors"

var (
	ErrEmptySeries   = errors.New("series is empty")
	ErrTooFewSamples = errors.New("fewer samples than mixture components")
	ErrMaxClusters   = errors.New("max clusters must be at least 1")
)
