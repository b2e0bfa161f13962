package body

import "math"

type Arena struct {
	Width  float64
	Height float64
}

// Rest holds the thresholds of the resting heuristic.
type Rest struct {
	VelocityThreshold float64
	AngularThreshold  float64
	GroundTolerance   float64
}

func DefaultRest() Rest {
	return Rest{
		VelocityThreshold: 0.2,
		AngularThreshold:  0.01,
		GroundTolerance:   2.0,
	}
}

// Props are the construction-time values of a body.
type Props struct {
	Width           float64
	Height          float64
	Velocity        Vec2
	Orientation     float64
	AngularVelocity float64
	Mass            float64
	Restitution     float64
	Friction        float64
	LinearDamping   float64
	AngularDamping  float64
	Gravity         float64
}

func DefaultProps() Props {
	return Props{
		Width:           40,
		Height:          40,
		Velocity:        Vec2{X: 16, Y: -30},
		Orientation:     30 * math.Pi / 180,
		AngularVelocity: 0.1,
		Mass:            1,
		Restitution:     0.999,
		Friction:        0.3,
		LinearDamping:   0.99,
		AngularDamping:  0.9,
		Gravity:         0.3,
	}
}

type Body struct {
	arena      Arena
	rest       Rest
	homeMargin float64

	width, height float64

	position        Vec2
	velocity        Vec2
	orientation     float64
	angularVelocity float64

	mass           float64
	restitution    float64
	friction       float64
	linearDamping  float64
	angularDamping float64
	gravity        float64

	homeVelocity        Vec2
	homeOrientation     float64
	homeAngularVelocity float64
}

// New creates a body at the origin. Call GoHome to place it at its
// starting corner.
func New(arena Arena, rest Rest, p Props, homeMargin float64) *Body {
	b := &Body{
		arena:          arena,
		rest:           rest,
		homeMargin:     homeMargin,
		width:          p.Width,
		height:         p.Height,
		mass:           p.Mass,
		restitution:    p.Restitution,
		friction:       p.Friction,
		linearDamping:  p.LinearDamping,
		angularDamping: p.AngularDamping,
		gravity:        p.Gravity,
	}
	b.SetInitialMotion(p.Velocity, p.Orientation, p.AngularVelocity)
	return b
}

func (b *Body) Arena() Arena             { return b.arena }
func (b *Body) SetArena(a Arena)         { b.arena = a }
func (b *Body) RestThresholds() Rest     { return b.rest }
func (b *Body) SetRestThresholds(r Rest) { b.rest = r }
func (b *Body) HomeMargin() float64      { return b.homeMargin }
func (b *Body) SetHomeMargin(m float64)  { b.homeMargin = m }

func (b *Body) Width() float64           { return b.width }
func (b *Body) Height() float64          { return b.height }
func (b *Body) Position() Vec2           { return b.position }
func (b *Body) Velocity() Vec2           { return b.velocity }
func (b *Body) Orientation() float64     { return b.orientation }
func (b *Body) AngularVelocity() float64 { return b.angularVelocity }
func (b *Body) Mass() float64            { return b.mass }
func (b *Body) Restitution() float64     { return b.restitution }
func (b *Body) Friction() float64        { return b.friction }
func (b *Body) LinearDamping() float64   { return b.linearDamping }
func (b *Body) AngularDamping() float64  { return b.angularDamping }
func (b *Body) Gravity() float64         { return b.gravity }

func (b *Body) SetWidth(w float64)           { b.width = w }
func (b *Body) SetHeight(h float64)          { b.height = h }
func (b *Body) SetPosition(p Vec2)           { b.position = p }
func (b *Body) SetX(x float64)               { b.position.X = x }
func (b *Body) SetY(y float64)               { b.position.Y = y }
func (b *Body) SetVelocity(v Vec2)           { b.velocity = v }
func (b *Body) SetVX(vx float64)             { b.velocity.X = vx }
func (b *Body) SetVY(vy float64)             { b.velocity.Y = vy }
func (b *Body) SetOrientation(a float64)     { b.orientation = a }
func (b *Body) SetAngularVelocity(w float64) { b.angularVelocity = w }
func (b *Body) SetMass(m float64)            { b.mass = m }
func (b *Body) SetRestitution(e float64)     { b.restitution = e }
func (b *Body) SetFriction(f float64)        { b.friction = f }
func (b *Body) SetLinearDamping(d float64)   { b.linearDamping = d }
func (b *Body) SetAngularDamping(d float64)  { b.angularDamping = d }
func (b *Body) SetGravity(g float64)         { b.gravity = g }

// SetInitialMotion sets the current motion and remembers it as the motion
// GoHome restores.
func (b *Body) SetInitialMotion(v Vec2, orientation, angularVelocity float64) {
	b.velocity = v
	b.orientation = orientation
	b.angularVelocity = angularVelocity
	b.homeVelocity = v
	b.homeOrientation = orientation
	b.homeAngularVelocity = angularVelocity
}

// HomeMotion returns the motion restored by GoHome.
func (b *Body) HomeMotion() (Vec2, float64, float64) {
	return b.homeVelocity, b.homeOrientation, b.homeAngularVelocity
}

// HomePosition is the bottom-left starting corner of the arena.
func (b *Body) HomePosition() Vec2 {
	return Vec2{
		X: b.width/2 + b.homeMargin,
		Y: b.arena.Height - b.height/2 - b.homeMargin,
	}
}

func (b *Body) GoHome() {
	b.position = b.HomePosition()
	b.velocity = b.homeVelocity
	b.orientation = b.homeOrientation
	b.angularVelocity = b.homeAngularVelocity
}

// Inertia is the moment of inertia of a thin rectangular plate about its
// centroid.
func (b *Body) Inertia() float64 {
	return b.mass * (b.width*b.width + b.height*b.height) / 12
}

// Corners returns the rotated corners in order: top-left, top-right,
// bottom-right, bottom-left of the unrotated rectangle.
func (b *Body) Corners() [4]Vec2 {
	return corners(b.position, b.width, b.height, b.orientation)
}

func corners(center Vec2, width, height, orientation float64) [4]Vec2 {
	hw, hh := width/2, height/2
	sin, cos := math.Sincos(orientation)
	local := [4]Vec2{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}

	var out [4]Vec2
	for i, l := range local {
		out[i] = Vec2{
			X: center.X + l.X*cos - l.Y*sin,
			Y: center.Y + l.X*sin + l.Y*cos,
		}
	}
	return out
}

// KineticEnergy includes the rotational term.
func (b *Body) KineticEnergy() float64 {
	return 0.5*b.mass*b.velocity.Dot(b.velocity) + 0.5*b.Inertia()*b.angularVelocity*b.angularVelocity
}

// PotentialEnergy is measured from the floor.
func (b *Body) PotentialEnergy() float64 {
	return b.mass * b.gravity * (b.arena.Height - b.position.Y)
}
