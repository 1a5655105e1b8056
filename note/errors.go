package note

import "errors"

var ErrInvalidInput = errors.New("frequency and confidence lists must have the same length")
