package replay

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/boxsim/internal/body"
	"github.com/san-kum/boxsim/internal/param"
	"github.com/san-kum/boxsim/internal/timeline"
)

func newEngine(t *testing.T) *Engine {
	t.Helper()
	b := body.New(body.Arena{Width: 800, Height: 600}, body.DefaultRest(), body.DefaultProps(), 10)
	b.GoHome()

	store := timeline.New()
	for _, k := range param.All() {
		if err := store.Record(k, 0, param.Get(k, b)); err != nil {
			t.Fatalf("bootstrap %s: %v", k, err)
		}
	}
	return New(b, store, 600, 1)
}

func TestReconstructFrameZero(t *testing.T) {
	e := newEngine(t)
	home := e.Body().Save()

	for i := 0; i < 30; i++ {
		e.Body().Step(1)
	}
	if got := e.Reconstruct(0); got != 0 {
		t.Fatalf("expected frame 0, got %d", got)
	}
	if e.Body().Save() != home {
		t.Errorf("expected home state %+v, got %+v", home, e.Body().Save())
	}
}

func TestReconstructDeterministic(t *testing.T) {
	e := newEngine(t)
	if err := e.Store().Record(param.Gravity, 100, 0.8); err != nil {
		t.Fatal(err)
	}

	e.Reconstruct(250)
	first := e.Body().Save()
	e.Reconstruct(250)
	second := e.Body().Save()

	if first != second {
		t.Errorf("expected identical states, got %+v vs %+v", first, second)
	}
}

func TestReconstructPathDependent(t *testing.T) {
	e := newEngine(t)
	e.Reconstruct(50)
	before := e.Body().Save()

	if err := e.Store().Record(param.Mass, 10, 4); err != nil {
		t.Fatal(err)
	}
	if err := e.Store().Record(param.Gravity, 10, 1.5); err != nil {
		t.Fatal(err)
	}
	e.Reconstruct(50)
	after := e.Body().Save()

	if before == after {
		t.Error("authoring at frame 10 should change the state at frame 50")
	}
}

func TestReconstructClamps(t *testing.T) {
	e := newEngine(t)
	e.SetMaxFrame(40)

	if got := e.Reconstruct(1000); got != 40 {
		t.Errorf("expected clamp to 40, got %d", got)
	}
	if got := e.Reconstruct(-5); got != 0 {
		t.Errorf("expected clamp to 0, got %d", got)
	}
}

func TestParameterAppliesBeforeStep(t *testing.T) {
	plain := newEngine(t)
	heavy := newEngine(t)
	// A spike exactly at frame 5, flat elsewhere.
	for _, key := range []struct {
		frame int
		g     float64
	}{{4, 0.3}, {5, 2}, {6, 0.3}} {
		if err := heavy.Store().Record(param.Gravity, key.frame, key.g); err != nil {
			t.Fatal(err)
		}
	}

	plain.Reconstruct(5)
	heavy.Reconstruct(5)
	if plain.Body().Velocity() != heavy.Body().Velocity() {
		t.Error("frame 5 motion should not see the frame 5 gravity yet")
	}
	if heavy.Body().Gravity() != 2 {
		t.Errorf("expected gravity 2 at frame 5, got %f", heavy.Body().Gravity())
	}

	plain.Reconstruct(6)
	heavy.Reconstruct(6)
	if plain.Body().Velocity() == heavy.Body().Velocity() {
		t.Error("frame 6 motion should reflect the frame 5 gravity")
	}
}

func TestKinematicKeyOverridesMotion(t *testing.T) {
	e := newEngine(t)
	if err := e.Store().Record(param.VX, 20, 0); err != nil {
		t.Fatal(err)
	}

	e.Reconstruct(20)
	if e.Body().Velocity().X != 0 {
		t.Errorf("expected authored vx 0 at frame 20, got %f", e.Body().Velocity().X)
	}

	e.Reconstruct(19)
	if e.Body().Velocity().X == 0 {
		t.Error("frame-0 vx key should not pin later frames")
	}
}

func TestPhysicalTrackInterpolates(t *testing.T) {
	e := newEngine(t)
	if err := e.Store().Record(param.Friction, 10, 0.9); err != nil {
		t.Fatal(err)
	}

	e.Reconstruct(5)
	want := 0.3 + (0.9-0.3)*0.5
	if got := e.Body().Friction(); got < want-1e-12 || got > want+1e-12 {
		t.Errorf("expected friction %f, got %f", want, got)
	}
}

func TestRecordMatchesReconstruct(t *testing.T) {
	e := newEngine(t)
	if err := e.Store().Record(param.Restitution, 30, 0.5); err != nil {
		t.Fatal(err)
	}
	if err := e.Store().Record(param.VY, 60, -20); err != nil {
		t.Fatal(err)
	}

	var seen int
	trace, err := e.Record(context.Background(), 120, ObserverFunc(func(frame int, s body.State) {
		seen++
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if trace.Len() != 121 || seen != 121 {
		t.Fatalf("expected 121 frames, got %d (observed %d)", trace.Len(), seen)
	}

	for _, f := range []int{0, 1, 30, 60, 61, 120} {
		e.Reconstruct(f)
		if trace.Frames[f].State != e.Body().Save() {
			t.Errorf("frame %d: trace %+v, reconstruct %+v", f, trace.Frames[f].State, e.Body().Save())
		}
	}
}

func TestRecordCancelled(t *testing.T) {
	e := newEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	trace, err := e.Record(ctx, 100)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if trace.Len() != 1 {
		t.Errorf("expected only frame 0, got %d frames", trace.Len())
	}
}

func TestBake(t *testing.T) {
	e := newEngine(t)
	e.SetMaxFrame(95)

	seq := e.Bake(20)
	want := []int{0, 20, 40, 60, 80, 95}
	got := seq.Frames()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
		}
	}

	snap, _ := seq.At(40)
	e.Reconstruct(40)
	if snap.X != e.Body().Position().X || snap.VY != e.Body().Velocity().Y {
		t.Errorf("baked frame 40 differs from reconstruct: %+v", snap)
	}
}
