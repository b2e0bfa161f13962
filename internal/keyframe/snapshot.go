package keyframe

import (
	"fmt"
	"math"

	"github.com/san-kum/boxsim/internal/body"
)

// Snapshot is an immutable capture of a body's motion and material at
// one frame. Dimensions are not part of a snapshot.
type Snapshot struct {
	Frame int

	X               float64
	Y               float64
	VX              float64
	VY              float64
	Orientation     float64
	AngularVelocity float64

	Mass           float64
	Restitution    float64
	Friction       float64
	LinearDamping  float64
	AngularDamping float64
	Gravity        float64
}

func Capture(b *body.Body, frame int) Snapshot {
	p, v := b.Position(), b.Velocity()
	return Snapshot{
		Frame:           frame,
		X:               p.X,
		Y:               p.Y,
		VX:              v.X,
		VY:              v.Y,
		Orientation:     b.Orientation(),
		AngularVelocity: b.AngularVelocity(),
		Mass:            b.Mass(),
		Restitution:     b.Restitution(),
		Friction:        b.Friction(),
		LinearDamping:   b.LinearDamping(),
		AngularDamping:  b.AngularDamping(),
		Gravity:         b.Gravity(),
	}
}

// Apply overwrites the twelve captured fields of b.
func (s Snapshot) Apply(b *body.Body) {
	b.SetPosition(body.Vec2{X: s.X, Y: s.Y})
	b.SetVelocity(body.Vec2{X: s.VX, Y: s.VY})
	b.SetOrientation(s.Orientation)
	b.SetAngularVelocity(s.AngularVelocity)
	b.SetMass(s.Mass)
	b.SetRestitution(s.Restitution)
	b.SetFriction(s.Friction)
	b.SetLinearDamping(s.LinearDamping)
	b.SetAngularDamping(s.AngularDamping)
	b.SetGravity(s.Gravity)
}

// Interpolate blends a and b at frame. Frames outside [a.Frame, b.Frame]
// clamp to the nearer snapshot. Orientation takes the shortest way round.
// It panics if a and b share a frame.
func Interpolate(a, b Snapshot, frame int) Snapshot {
	if a.Frame == b.Frame {
		panic(fmt.Sprintf("keyframe: interpolate between snapshots at the same frame %d", a.Frame))
	}
	if frame <= a.Frame {
		return a
	}
	if frame >= b.Frame {
		return b
	}

	t := float64(frame-a.Frame) / float64(b.Frame-a.Frame)
	return Snapshot{
		Frame:           frame,
		X:               lerp(a.X, b.X, t),
		Y:               lerp(a.Y, b.Y, t),
		VX:              lerp(a.VX, b.VX, t),
		VY:              lerp(a.VY, b.VY, t),
		Orientation:     LerpAngle(a.Orientation, b.Orientation, t),
		AngularVelocity: lerp(a.AngularVelocity, b.AngularVelocity, t),
		Mass:            lerp(a.Mass, b.Mass, t),
		Restitution:     lerp(a.Restitution, b.Restitution, t),
		Friction:        lerp(a.Friction, b.Friction, t),
		LinearDamping:   lerp(a.LinearDamping, b.LinearDamping, t),
		AngularDamping:  lerp(a.AngularDamping, b.AngularDamping, t),
		Gravity:         lerp(a.Gravity, b.Gravity, t),
	}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpAngle interpolates from a toward b along the shorter arc. The result
// is not normalized.
func LerpAngle(a, b, t float64) float64 {
	return a + WrapAngle(b-a)*t
}

// WrapAngle maps d into (-π, π].
func WrapAngle(d float64) float64 {
	d = math.Mod(d, 2*math.Pi)
	if d > math.Pi {
		d -= 2 * math.Pi
	} else if d <= -math.Pi {
		d += 2 * math.Pi
	}
	return d
}
