package body

import "math"

// State is a checkpoint of every mutable field of a Body.
type State struct {
	X               float64 `json:"x"`
	Y               float64 `json:"y"`
	VX              float64 `json:"vx"`
	VY              float64 `json:"vy"`
	Orientation     float64 `json:"orientation"`
	AngularVelocity float64 `json:"angular_velocity"`
	Width           float64 `json:"width"`
	Height          float64 `json:"height"`
	Mass            float64 `json:"mass"`
	Restitution     float64 `json:"restitution"`
	Friction        float64 `json:"friction"`
	LinearDamping   float64 `json:"linear_damping"`
	AngularDamping  float64 `json:"angular_damping"`
	Gravity         float64 `json:"gravity"`
}

func (b *Body) Save() State {
	return State{
		X:               b.position.X,
		Y:               b.position.Y,
		VX:              b.velocity.X,
		VY:              b.velocity.Y,
		Orientation:     b.orientation,
		AngularVelocity: b.angularVelocity,
		Width:           b.width,
		Height:          b.height,
		Mass:            b.mass,
		Restitution:     b.restitution,
		Friction:        b.friction,
		LinearDamping:   b.linearDamping,
		AngularDamping:  b.angularDamping,
		Gravity:         b.gravity,
	}
}

// Restore overwrites the body with s. The home motion is left untouched.
func (b *Body) Restore(s State) {
	b.position = Vec2{X: s.X, Y: s.Y}
	b.velocity = Vec2{X: s.VX, Y: s.VY}
	b.orientation = s.Orientation
	b.angularVelocity = s.AngularVelocity
	b.width = s.Width
	b.height = s.Height
	b.mass = s.Mass
	b.restitution = s.Restitution
	b.friction = s.Friction
	b.linearDamping = s.LinearDamping
	b.angularDamping = s.AngularDamping
	b.gravity = s.Gravity
}

// Energy returns the total mechanical energy of s in arena a.
func (s State) Energy(a Arena) float64 {
	inertia := s.Mass * (s.Width*s.Width + s.Height*s.Height) / 12
	kinetic := 0.5*s.Mass*(s.VX*s.VX+s.VY*s.VY) + 0.5*inertia*s.AngularVelocity*s.AngularVelocity
	return kinetic + s.Mass*s.Gravity*(a.Height-s.Y)
}

// Corners returns the rotated corners of the checkpointed rectangle, in
// the same order as Body.Corners.
func (s State) Corners() [4]Vec2 {
	return corners(Vec2{X: s.X, Y: s.Y}, s.Width, s.Height, s.Orientation)
}

// Bottom returns the lowest extent of the rotated rectangle.
func (s State) Bottom() float64 {
	return s.Y + s.halfExtentY()
}

// Top returns the highest extent of the rotated rectangle.
func (s State) Top() float64 {
	return s.Y - s.halfExtentY()
}

func (s State) halfExtentY() float64 {
	sin, cos := math.Sincos(s.Orientation)
	return math.Abs(s.Width/2*sin) + math.Abs(s.Height/2*cos)
}
