package trail

import "errors"

var (
	// ErrInvalidRingSize indicates a ring size of zero or less.
	ErrInvalidRingSize = errors.New("trail: ring size must be positive")

	// ErrInvalidDecayFloor indicates a floor outside (0, 1) for a ring with
	// more than one slot.
	ErrInvalidDecayFloor = errors.New("trail: decay floor must be in (0, 1)")

	// ErrClosed indicates a tick on a closed renderer.
	ErrClosed = errors.New("trail: renderer closed")
)
