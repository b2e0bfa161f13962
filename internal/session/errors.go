package session

import (
	"errors"
	"fmt"

	"github.com/san-kum/boxsim/internal/param"
)

var (
	// ErrBaseFrame indicates an attempt to delete a frame 0 key.
	ErrBaseFrame = errors.New("session: frame 0 keys cannot be deleted")

	// ErrNoSelection indicates a delete with nothing selected.
	ErrNoSelection = errors.New("session: no keyframe selected")

	// ErrPlaying indicates an edit attempted during playback.
	ErrPlaying = errors.New("session: pause playback before editing")

	// ErrOutOfBounds indicates a scripted value or frame outside its limits.
	ErrOutOfBounds = errors.New("session: value out of bounds")
)

// ActionError wraps an authoring failure with what was being attempted.
type ActionError struct {
	Op    string
	Kind  param.Kind
	Frame int
	Err   error
}

func (e *ActionError) Error() string {
	if e.Kind.Valid() {
		return fmt.Sprintf("%s %s at frame %d: %v", e.Op, e.Kind, e.Frame, e.Err)
	}
	return fmt.Sprintf("%s at frame %d: %v", e.Op, e.Frame, e.Err)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

// noKind marks actions that do not target a single track.
const noKind param.Kind = -1
