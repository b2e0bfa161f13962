package param

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/boxsim/internal/body"
)

func newBody() *body.Body {
	b := body.New(body.Arena{Width: 800, Height: 600}, body.DefaultRest(), body.DefaultProps(), 10)
	b.GoHome()
	return b
}

func TestAllKinds(t *testing.T) {
	kinds := All()
	if len(kinds) != 14 {
		t.Fatalf("expected 14 kinds, got %d", len(kinds))
	}
	for i, k := range kinds {
		if int(k) != i {
			t.Errorf("expected kind %d at index %d", i, int(k))
		}
		if k.Label() == "" {
			t.Errorf("kind %s has no label", k)
		}
	}
}

func TestKinematic(t *testing.T) {
	for _, k := range All() {
		want := k <= AngularVelocity
		if k.Kinematic() != want {
			t.Errorf("%s: expected kinematic %v", k, want)
		}
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		name string
		want Kind
	}{
		{"x", X},
		{"VY", VY},
		{"angular-velocity", AngularVelocity},
		{" linear_damping ", LinearDamping},
		{"angle", Orientation},
		{"g", Gravity},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.name)
		if err != nil {
			t.Errorf("%q: unexpected error %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%q: expected %s, got %s", tt.name, tt.want, got)
		}
	}

	if _, err := ParseKind("colour"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
}

func TestKindStringRoundTrip(t *testing.T) {
	for _, k := range All() {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("%s: round trip gave %s, %v", k, got, err)
		}
	}
	if Kind(99).Valid() {
		t.Error("kind 99 should be invalid")
	}
}

func TestGetSet(t *testing.T) {
	b := newBody()
	for i, k := range All() {
		v := float64(i) + 0.5
		Set(k, b, v)
		if got := Get(k, b); got != v {
			t.Errorf("%s: expected %f, got %f", k, v, got)
		}
	}

	vals := Values(b)
	for i := range vals {
		if vals[i] != float64(i)+0.5 {
			t.Errorf("values[%d]: expected %f, got %f", i, float64(i)+0.5, vals[i])
		}
	}
}

func TestFromStateMatchesGet(t *testing.T) {
	b := newBody()
	for i := 0; i < 20; i++ {
		b.Step(1)
	}
	s := b.Save()
	for _, k := range All() {
		if FromState(k, s) != Get(k, b) {
			t.Errorf("%s: state %f, body %f", k, FromState(k, s), Get(k, b))
		}
	}
}

func TestDisplayUnits(t *testing.T) {
	if got := Orientation.ToDisplay(math.Pi); math.Abs(got-180) > 1e-9 {
		t.Errorf("expected 180, got %f", got)
	}
	if got := Orientation.FromDisplay(90); math.Abs(got-math.Pi/2) > 1e-9 {
		t.Errorf("expected pi/2, got %f", got)
	}
	if got := Mass.ToDisplay(2.5); got != 2.5 {
		t.Errorf("expected mass unchanged, got %f", got)
	}
}

func TestBounds(t *testing.T) {
	bounds := DefaultBounds(800, 600)

	if bounds[X].Max != 800 || bounds[Y].Max != 600 {
		t.Errorf("expected arena-sized position bounds, got %+v %+v", bounds[X], bounds[Y])
	}

	tests := []struct {
		b    Bounds
		in   float64
		want float64
	}{
		{bounds[Mass], 0, 0.1},
		{bounds[Mass], 9, 5},
		{bounds[Gravity], 0.7, 0.7},
		{bounds[VX], -80, -50},
	}
	for _, tt := range tests {
		if got := tt.b.Clamp(tt.in); got != tt.want {
			t.Errorf("clamp %f: expected %f, got %f", tt.in, tt.want, got)
		}
	}

	if got := bounds[Width].Snap(33.4); got != 33 {
		t.Errorf("expected snap to 33, got %f", got)
	}
	if !bounds[Restitution].Contains(0.5) || bounds[Restitution].Contains(1.5) {
		t.Error("restitution bounds should contain 0.5 but not 1.5")
	}
}
