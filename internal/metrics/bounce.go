package metrics

import (
	"math"

	"github.com/san-kum/boxsim/internal/body"
)

// Apex records the clearance above the floor at the top of every flight.
type Apex struct {
	name    string
	arena   body.Arena
	prev    body.State
	samples int
	heights []float64
}

func NewApex(arena body.Arena) *Apex {
	return &Apex{
		name:  "apex",
		arena: arena,
	}
}

func (a *Apex) Name() string { return a.name }

func (a *Apex) Observe(frame int, s body.State) {
	// y grows downward: rising is vy < 0.
	if a.samples > 0 && a.prev.VY <= 0 && s.VY > 0 {
		a.heights = append(a.heights, a.arena.Height-a.prev.Bottom())
	}
	a.prev = s
	a.samples++
}

// Value is the most recent apex height.
func (a *Apex) Value() float64 {
	if len(a.heights) == 0 {
		return 0
	}
	return a.heights[len(a.heights)-1]
}

func (a *Apex) Heights() []float64 {
	return append([]float64(nil), a.heights...)
}

func (a *Apex) Reset() {
	a.prev = body.State{}
	a.samples = 0
	a.heights = nil
}

// Bounces counts wall impacts seen as velocity reversals: any flip of vx,
// and vy turning from falling to rising.
type Bounces struct {
	name    string
	prev    body.State
	samples int
	count   int
}

func NewBounces() *Bounces {
	return &Bounces{name: "bounces"}
}

func (b *Bounces) Name() string { return b.name }

func (b *Bounces) Observe(frame int, s body.State) {
	if b.samples > 0 {
		if b.prev.VX*s.VX < 0 || (b.prev.VY > 0 && s.VY < 0) {
			b.count++
		}
	}
	b.prev = s
	b.samples++
}

func (b *Bounces) Value() float64 {
	return float64(b.count)
}

func (b *Bounces) Reset() {
	b.prev = body.State{}
	b.samples = 0
	b.count = 0
}

// Spin is the mean absolute angular velocity.
type Spin struct {
	name    string
	sum     float64
	samples int
}

func NewSpin() *Spin {
	return &Spin{name: "spin"}
}

func (s *Spin) Name() string { return s.name }

func (s *Spin) Observe(frame int, st body.State) {
	s.sum += math.Abs(st.AngularVelocity)
	s.samples++
}

func (s *Spin) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return s.sum / float64(s.samples)
}

func (s *Spin) Reset() {
	s.sum = 0
	s.samples = 0
}
