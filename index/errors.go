package index

import "errors"

var (
	// ErrNilIndex is returned when a nil index is passed to Build.
	ErrNilIndex = errors.New("index required")
)
