package midi

import "errors"

var (
	ErrNoteOutOfRange = errors.New("note or velocity outside 0-127")
	ErrNegativeDelta  = errors.New("negative delta ticks")
	ErrNoMetricTicks  = errors.New("midi file does not use metric ticks")
)
