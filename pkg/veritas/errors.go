package veritas

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input document does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrUnsupportedFormat indicates the document extension is not a supported
// table source.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// StageError wraps an error from one stage of the audit pipeline.
type StageError struct {
	// Stage names the failing stage: "extract", "proposals", "config".
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("audit stage %q: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// NewStageError creates a StageError.
func NewStageError(stage string, err error) *StageError {
	return &StageError{Stage: stage, Err: err}
}
