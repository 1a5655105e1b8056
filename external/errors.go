package external

import (
	"errors"
	"fmt"
)

var ErrUnknownMethod = errors.New("unknown alignment method")

// ProcessError is a failure of an external model script.
type ProcessError struct {
	Tool     string // "align.py", "pitch.py"
	Stage    string // "alignment", "pitch_detection"
	ExitCode int
	Stderr   string
	Cause    error
}

func (e *ProcessError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s failed at %s (exit %d): %s", e.Tool, e.Stage, e.ExitCode, e.Stderr)
	}
	return fmt.Sprintf("%s failed at %s (exit %d)", e.Tool, e.Stage, e.ExitCode)
}

func (e *ProcessError) Unwrap() error {
	return e.Cause
}

func newProcessError(tool, stage string, res *Result, cause error) *ProcessError {
	e := &ProcessError{Tool: tool, Stage: stage, Cause: cause}
	if res != nil {
		e.ExitCode = res.ExitCode
		e.Stderr = res.Stderr
	}
	return e
}
