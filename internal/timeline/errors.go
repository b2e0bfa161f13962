package timeline

import "errors"

var (
	// ErrNegativeFrame indicates a key recorded before frame 0.
	ErrNegativeFrame = errors.New("timeline: frame must be non-negative")
)
