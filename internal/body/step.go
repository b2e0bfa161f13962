package body

import (
	"math"
	"strings"
)

// Contact reports what happened during one Step.
type Contact uint8

const (
	HitLeft Contact = 1 << iota
	HitRight
	HitTop
	HitBottom
	Resting
)

const Walls = HitLeft | HitRight | HitTop | HitBottom

func (c Contact) Has(f Contact) bool {
	return c&f != 0
}

func (c Contact) String() string {
	if c == 0 {
		return "none"
	}
	names := []string{"left", "right", "top", "bottom", "resting"}
	var parts []string
	for i, name := range names {
		if c&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "|")
}

type axis int

const (
	axisX axis = iota
	axisY
)

type wall struct {
	hit    Contact
	axis   axis
	normal Vec2 // points into the arena
}

// Resolution order matters: later walls see the corrections of earlier ones.
var walls = [4]wall{
	{hit: HitLeft, axis: axisX, normal: Vec2{X: 1}},
	{hit: HitRight, axis: axisX, normal: Vec2{X: -1}},
	{hit: HitTop, axis: axisY, normal: Vec2{Y: 1}},
	{hit: HitBottom, axis: axisY, normal: Vec2{Y: -1}},
}

func (w wall) limit(a Arena) float64 {
	switch w.hit {
	case HitRight:
		return a.Width
	case HitBottom:
		return a.Height
	}
	return 0
}

func (w wall) coord(p Vec2) float64 {
	if w.axis == axisX {
		return p.X
	}
	return p.Y
}

// penetration is positive when p lies outside the wall.
func (w wall) penetration(p Vec2, a Arena) float64 {
	sign := w.normal.X + w.normal.Y
	return sign * (w.limit(a) - w.coord(p))
}

// Step advances the body by one tick of length scale (tick interval over
// the reference interval). It never allocates.
func (b *Body) Step(scale float64) Contact {
	var contact Contact

	b.position = b.position.Add(b.velocity.Scale(scale))
	b.orientation += b.angularVelocity * scale

	b.velocity = b.velocity.Scale(b.linearDamping)
	b.angularVelocity *= b.angularDamping

	corners := b.Corners()
	for _, w := range walls {
		depth, point := w.contact(&corners, b.arena)
		if depth <= 0 {
			continue
		}
		contact |= w.hit
		b.resolve(w.normal, point.Sub(b.position))

		shift := w.normal.Scale(depth)
		b.position = b.position.Add(shift)
		for i := range corners {
			corners[i] = corners[i].Add(shift)
		}
	}

	stopped := false
	if b.onGround(&corners) {
		if math.Abs(b.velocity.X) < b.rest.VelocityThreshold && math.Abs(b.velocity.Y) < b.rest.VelocityThreshold {
			b.velocity = Vec2{}
			stopped = true
		}
		if math.Abs(b.angularVelocity) < b.rest.AngularThreshold {
			b.angularVelocity = 0
		}
	}

	if stopped {
		contact |= Resting
	} else {
		b.velocity.Y += b.gravity * scale
	}
	return contact
}

// contact returns the deepest penetration against w and the corner that
// reaches it. Of tied corners the first in winding order wins.
func (w wall) contact(corners *[4]Vec2, a Arena) (float64, Vec2) {
	deepest, point := math.Inf(-1), Vec2{}
	for _, c := range corners {
		if d := w.penetration(c, a); d > deepest {
			deepest, point = d, c
		}
	}
	if deepest <= 0 {
		return 0, Vec2{}
	}
	return deepest, point
}

// resolve applies the normal and friction impulses at lever arm r.
func (b *Body) resolve(n, r Vec2) {
	vc := b.velocity.Add(CrossScalar(b.angularVelocity, r))
	vn := vc.Dot(n)
	if vn >= 0 {
		return
	}

	invMass := 1 / b.mass
	inertia := b.Inertia()
	t := n.Perp()

	rn := r.Cross(n)
	jn := -(1 + b.restitution) * vn / (invMass + rn*rn/inertia)

	rt := r.Cross(t)
	jt := -vc.Dot(t) * b.friction / (invMass + rt*rt/inertia)

	impulse := n.Scale(jn).Add(t.Scale(jt))
	b.velocity = b.velocity.Add(impulse.Scale(invMass))
	b.angularVelocity += r.Cross(impulse) / inertia
}

func (b *Body) onGround(corners *[4]Vec2) bool {
	for _, c := range corners {
		if math.Abs(c.Y-b.arena.Height) < b.rest.GroundTolerance {
			return true
		}
	}
	return false
}
