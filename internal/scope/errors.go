package scope

import (
	"errors"
	"fmt"
)

// Domain errors for frame data.
var (
	// ErrLengthMismatch indicates x and y sequences of different length.
	ErrLengthMismatch = errors.New("scope: x and y sample lengths differ")

	// ErrNonFinite indicates a NaN or Inf sample.
	ErrNonFinite = errors.New("scope: non-finite sample (NaN or Inf detected)")

	// ErrNilSource indicates a renderer or exporter was given no source.
	ErrNilSource = errors.New("scope: nil frame source")
)

// FrameError wraps an error with the frame index that produced it.
type FrameError struct {
	Frame   int
	Index   int
	Wrapped error
}

func (e *FrameError) Error() string {
	if errors.Is(e.Wrapped, ErrNonFinite) {
		return fmt.Sprintf("frame %d (sample %d): %v", e.Frame, e.Index, e.Wrapped)
	}
	return fmt.Sprintf("frame %d: %v", e.Frame, e.Wrapped)
}

func (e *FrameError) Unwrap() error {
	return e.Wrapped
}
