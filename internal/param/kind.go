package param

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/boxsim/internal/body"
)

// Kind identifies one authorable scalar of a body.
type Kind int

const (
	X Kind = iota
	Y
	VX
	VY
	Orientation
	AngularVelocity
	Width
	Height
	Mass
	Restitution
	Friction
	LinearDamping
	AngularDamping
	Gravity

	Count int = iota
)

var names = [Count]string{
	"x", "y", "vx", "vy", "orientation", "angular_velocity",
	"width", "height", "mass", "restitution", "friction",
	"linear_damping", "angular_damping", "gravity",
}

var labels = [Count]string{
	"Position X", "Position Y", "Velocity X", "Velocity Y",
	"Rotation", "Angular Vel", "Width", "Height", "Mass",
	"Restitution", "Friction", "Linear Damp", "Angular Damp", "Gravity",
}

func All() []Kind {
	kinds := make([]Kind, Count)
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

func (k Kind) Valid() bool {
	return k >= 0 && int(k) < Count
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return names[k]
}

// Label is the human-readable name shown next to a track.
func (k Kind) Label() string {
	if !k.Valid() {
		return k.String()
	}
	return labels[k]
}

// Kinematic reports whether k describes motion rather than a physical
// constant.
func (k Kind) Kinematic() bool {
	return k >= X && k <= AngularVelocity
}

// ParseKind accepts the snake_case name, ignoring case and dashes.
func ParseKind(name string) (Kind, error) {
	n := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for i, candidate := range names {
		if candidate == n {
			return Kind(i), nil
		}
	}
	switch n {
	case "angle", "rotation":
		return Orientation, nil
	case "omega", "spin":
		return AngularVelocity, nil
	case "g":
		return Gravity, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// ToDisplay converts a stored value into the unit shown to users.
// Orientation is stored in radians and shown in degrees.
func (k Kind) ToDisplay(v float64) float64 {
	if k == Orientation {
		return v * 180 / math.Pi
	}
	return v
}

func (k Kind) FromDisplay(v float64) float64 {
	if k == Orientation {
		return v * math.Pi / 180
	}
	return v
}

type accessor struct {
	get func(*body.Body) float64
	set func(*body.Body, float64)
}

var accessors = [Count]accessor{
	X:               {func(b *body.Body) float64 { return b.Position().X }, (*body.Body).SetX},
	Y:               {func(b *body.Body) float64 { return b.Position().Y }, (*body.Body).SetY},
	VX:              {func(b *body.Body) float64 { return b.Velocity().X }, (*body.Body).SetVX},
	VY:              {func(b *body.Body) float64 { return b.Velocity().Y }, (*body.Body).SetVY},
	Orientation:     {(*body.Body).Orientation, (*body.Body).SetOrientation},
	AngularVelocity: {(*body.Body).AngularVelocity, (*body.Body).SetAngularVelocity},
	Width:           {(*body.Body).Width, (*body.Body).SetWidth},
	Height:          {(*body.Body).Height, (*body.Body).SetHeight},
	Mass:            {(*body.Body).Mass, (*body.Body).SetMass},
	Restitution:     {(*body.Body).Restitution, (*body.Body).SetRestitution},
	Friction:        {(*body.Body).Friction, (*body.Body).SetFriction},
	LinearDamping:   {(*body.Body).LinearDamping, (*body.Body).SetLinearDamping},
	AngularDamping:  {(*body.Body).AngularDamping, (*body.Body).SetAngularDamping},
	Gravity:         {(*body.Body).Gravity, (*body.Body).SetGravity},
}

// Get reads the value of k from b. k must be valid.
func Get(k Kind, b *body.Body) float64 {
	return accessors[k].get(b)
}

// Set writes v into b with no validation. k must be valid.
func Set(k Kind, b *body.Body, v float64) {
	accessors[k].set(b, v)
}

// Values reads every kind from b, indexed by Kind.
func Values(b *body.Body) [Count]float64 {
	var out [Count]float64
	for i, a := range accessors {
		out[i] = a.get(b)
	}
	return out
}

// FromState reads k from a saved body state.
func FromState(k Kind, s body.State) float64 {
	switch k {
	case X:
		return s.X
	case Y:
		return s.Y
	case VX:
		return s.VX
	case VY:
		return s.VY
	case Orientation:
		return s.Orientation
	case AngularVelocity:
		return s.AngularVelocity
	case Width:
		return s.Width
	case Height:
		return s.Height
	case Mass:
		return s.Mass
	case Restitution:
		return s.Restitution
	case Friction:
		return s.Friction
	case LinearDamping:
		return s.LinearDamping
	case AngularDamping:
		return s.AngularDamping
	case Gravity:
		return s.Gravity
	}
	return math.NaN()
}
