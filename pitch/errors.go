package pitch

import "errors"

var (
	ErrMalformedRow   = errors.New("malformed pitch row")
	ErrLengthMismatch = errors.New("pitch series have different lengths")
)
