package builder

import "errors"

var (
	ErrInvalidSpan   = errors.New("invalid word span")
	ErrNegativeDelta = errors.New("word starts before the previous word ended")
)
