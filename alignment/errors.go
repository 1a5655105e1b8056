package alignment

import "errors"

var (
	ErrMalformedRow   = errors.New("malformed alignment row")
	ErrLengthMismatch = errors.New("alignment and word counts differ")
)
