package replay

import (
	"context"

	"github.com/san-kum/boxsim/internal/body"
)

// Observer is notified of every frame a recording produces.
type Observer interface {
	OnFrame(frame int, s body.State)
}

type ObserverFunc func(frame int, s body.State)

func (f ObserverFunc) OnFrame(frame int, s body.State) { f(frame, s) }

// Frame is one recorded sample. State equals what Reconstruct(Frame)
// would produce; Contact describes the step that led to it.
type Frame struct {
	Frame   int
	State   body.State
	Contact body.Contact
}

type Trace struct {
	Arena  body.Arena
	Scale  float64
	Frames []Frame
}

func (t *Trace) Len() int {
	return len(t.Frames)
}

func (t *Trace) Final() (Frame, bool) {
	if len(t.Frames) == 0 {
		return Frame{}, false
	}
	return t.Frames[len(t.Frames)-1], true
}

// Contacts counts the recorded steps that touched any wall.
func (t *Trace) Contacts() int {
	n := 0
	for _, f := range t.Frames {
		if f.Contact&body.Walls != 0 {
			n++
		}
	}
	return n
}

// Record replays frames 0 through to, capturing each one. Cancelling ctx
// stops between frames and returns what was captured so far.
func (e *Engine) Record(ctx context.Context, to int, observers ...Observer) (*Trace, error) {
	to = e.Clamp(to)
	trace := &Trace{
		Arena:  e.body.Arena(),
		Scale:  e.scale,
		Frames: make([]Frame, 0, to+1),
	}

	emit := func(frame int, c body.Contact) {
		s := e.body.Save()
		trace.Frames = append(trace.Frames, Frame{Frame: frame, State: s, Contact: c})
		for _, obs := range observers {
			obs.OnFrame(frame, s)
		}
	}

	e.body.GoHome()
	e.Apply(0)
	emit(0, 0)

	for i := 0; i < to; i++ {
		select {
		case <-ctx.Done():
			return trace, ctx.Err()
		default:
		}

		c := e.Advance(i)
		e.Apply(i + 1)
		emit(i+1, c)
	}

	return trace, nil
}
