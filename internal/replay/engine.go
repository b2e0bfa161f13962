// Package replay reconstructs body state at any frame by replaying the
// simulation from frame 0 with the authored timeline applied on the way.
package replay

import (
	"github.com/san-kum/boxsim/internal/body"
	"github.com/san-kum/boxsim/internal/keyframe"
	"github.com/san-kum/boxsim/internal/param"
	"github.com/san-kum/boxsim/internal/timeline"
)

type Engine struct {
	body     *body.Body
	store    *timeline.Store
	maxFrame int
	scale    float64
}

func New(b *body.Body, store *timeline.Store, maxFrame int, scale float64) *Engine {
	return &Engine{
		body:     b,
		store:    store,
		maxFrame: maxFrame,
		scale:    scale,
	}
}

func (e *Engine) Body() *body.Body       { return e.body }
func (e *Engine) Store() *timeline.Store { return e.store }
func (e *Engine) MaxFrame() int          { return e.maxFrame }
func (e *Engine) SetMaxFrame(n int)      { e.maxFrame = n }
func (e *Engine) Scale() float64         { return e.scale }
func (e *Engine) SetScale(scale float64) { e.scale = scale }

// Clamp limits frame to [0, MaxFrame].
func (e *Engine) Clamp(frame int) int {
	return max(0, min(frame, e.maxFrame))
}

// Apply writes the timeline's values for frame onto the body.
//
// Physical constants follow the interpolated track at every frame.
// Motion values are taken from the interpolated track only at frame 0;
// after that only an exactly authored key overrides the integrated
// motion, so a single frame-0 key does not pin the body in place.
func (e *Engine) Apply(frame int) {
	for _, k := range param.All() {
		var (
			v  float64
			ok bool
		)
		if k.Kinematic() && frame > 0 {
			v, ok = e.store.Value(k, frame)
		} else {
			v, ok = e.store.Query(k, frame)
		}
		if ok {
			param.Set(k, e.body, v)
		}
	}
}

// Advance applies the values for frame and then steps the body once.
func (e *Engine) Advance(frame int) body.Contact {
	e.Apply(frame)
	return e.body.Step(e.scale)
}

// Reconstruct puts the body in the state it reaches after playing from
// frame 0 up to frame. The frame is clamped and returned.
func (e *Engine) Reconstruct(frame int) int {
	frame = e.Clamp(frame)

	e.body.GoHome()
	e.Apply(0)
	for i := 0; i < frame; i++ {
		e.Advance(i)
	}
	e.Apply(frame)
	return frame
}

// Bake replays the whole timeline and captures a snapshot every n frames
// and at the last frame. The body is left at MaxFrame.
func (e *Engine) Bake(every int) *keyframe.Sequence {
	if every <= 0 {
		every = 1
	}
	seq := keyframe.NewSequence()

	e.body.GoHome()
	e.Apply(0)
	seq.Put(keyframe.Capture(e.body, 0))
	for i := 0; i < e.maxFrame; i++ {
		e.Advance(i)
		e.Apply(i + 1)
		if (i+1)%every == 0 || i+1 == e.maxFrame {
			seq.Put(keyframe.Capture(e.body, i+1))
		}
	}
	return seq
}
