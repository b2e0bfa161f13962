package metrics

import (
	"math"

	"github.com/san-kum/boxsim/internal/body"
)

// Settle is the frame from which the body has stayed still on the floor,
// or -1 while it is moving.
type Settle struct {
	arena body.Arena
	rest  body.Rest
	since int
}

func NewSettle(arena body.Arena, rest body.Rest) *Settle {
	return &Settle{arena: arena, rest: rest, since: -1}
}

func (s *Settle) Name() string { return "settle_frame" }

func (s *Settle) Observe(frame int, st body.State) {
	still := math.Abs(st.VX) < s.rest.VelocityThreshold &&
		math.Abs(st.VY) < s.rest.VelocityThreshold &&
		math.Abs(st.AngularVelocity) < s.rest.AngularThreshold &&
		math.Abs(s.arena.Height-st.Bottom()) < s.rest.GroundTolerance

	switch {
	case !still:
		s.since = -1
	case s.since < 0:
		s.since = frame
	}
}

func (s *Settle) Value() float64 { return float64(s.since) }

func (s *Settle) Reset() { s.since = -1 }
