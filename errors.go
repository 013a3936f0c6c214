package flstring

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfMemory is returned when an installed allocator hook fails to
	// provide a block. The operation that hit it leaves the string unchanged.
	ErrOutOfMemory = errors.New("allocation failed")

	// ErrIndexOutOfRange is the sentinel wrapped by IndexError. Use
	// errors.Is with this to classify bounds failures.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidGrowthStep is returned by the builder when a linear growth
	// policy is configured with a non-positive step.
	ErrInvalidGrowthStep = errors.New("growth step must be positive")

	// ErrInvalidCapacity is returned when a negative capacity or count is
	// requested.
	ErrInvalidCapacity = errors.New("capacity must be non-negative")
)

// IndexError reports a position outside the valid range of a string.
//
// The underlying sentinel can be accessed via errors.Unwrap / errors.Is.
type IndexError struct {
	Pos  int
	Size int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index out of range: position %d, size %d", e.Pos, e.Size)
}

func (e *IndexError) Unwrap() error { return ErrIndexOutOfRange }

func indexError(pos, size int) error {
	return &IndexError{Pos: pos, Size: size}
}
