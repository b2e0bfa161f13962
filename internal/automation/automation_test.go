package automation

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/boxsim/internal/config"
	"github.com/san-kum/boxsim/internal/param"
	"github.com/san-kum/boxsim/internal/session"
)

const authoringScript = `name: delete-and-replay
description: key a friction spike, remove it again and zero gravity
preset: default
steps:
  - op: seek
    frame: 10
  - op: key
    param: friction
    frame: 10
    value: 0.5
  - op: select
    param: friction
    frame: 10
  - op: delete
  - op: expect
    param: friction
    value: 0.3
  - op: key
    param: gravity
    frame: 0
    value: 0
  - op: expect
    param: g
    value: 0
  - op: play
    frames: 5
`

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newSession(t *testing.T) *session.Session {
	t.Helper()
	s, err := session.New(config.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestLoadAndRunScript(t *testing.T) {
	script, err := LoadScript(writeScript(t, authoringScript))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if script.Name != "delete-and-replay" || len(script.Steps) != 8 {
		t.Fatalf("unexpected script: %+v", script)
	}

	cfg, err := script.Config()
	if err != nil {
		t.Fatal(err)
	}
	sess, err := session.New(cfg)
	if err != nil {
		t.Fatal(err)
	}

	results, err := Run(context.Background(), sess, script, io.Discard)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(results) != 8 {
		t.Fatalf("expected 8 results, got %d", len(results))
	}
	last := results[len(results)-1]
	if last.Frame != 15 {
		t.Errorf("expected frame 15 after play, got %d", last.Frame)
	}
	if last.State.Gravity != 0 {
		t.Errorf("expected zero gravity, got %f", last.State.Gravity)
	}
	if sess.Playing() {
		t.Error("play step should leave the session paused")
	}
	if got := sess.Store().Frames(param.X); len(got) != 1 {
		t.Errorf("expected x track untouched, got %v", got)
	}
}

func TestRunReportsFailingStep(t *testing.T) {
	cases := []struct {
		name string
		step Step
		want error
	}{
		{"unknown op", Step{Op: "teleport"}, ErrUnknownOp},
		{"expectation", Step{Op: "expect", Param: "mass", Value: 3}, ErrExpectation},
		{"missing key", Step{Op: "select", Param: "mass", Frame: 7}, session.ErrNoSelection},
		{"nothing selected", Step{Op: "delete"}, session.ErrNoSelection},
		{"out of bounds", Step{Op: "key", Param: "mass", Frame: 3, Value: 99}, session.ErrOutOfBounds},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			script := &Script{Steps: []Step{{Op: "seek", Frame: 2}, tc.step}}
			results, err := Run(context.Background(), newSession(t), script, io.Discard)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if len(results) != 1 {
				t.Errorf("expected the first step to succeed, got %d results", len(results))
			}
		})
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	script := &Script{Steps: []Step{{Op: "seek", Frame: 5}}}
	results, err := Run(ctx, newSession(t), script, io.Discard)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestScriptConfigRejectsUnknownPreset(t *testing.T) {
	script := &Script{Preset: "jupiter"}
	if _, err := script.Config(); err == nil {
		t.Error("expected an error for an unknown preset")
	}
}

func TestRunSweep(t *testing.T) {
	sweep := &ParameterSweep{Param: "restitution", Min: 0, Max: 1, Steps: 3, Frame: 100}
	results, err := RunSweep(context.Background(), config.DefaultConfig(), sweep, io.Discard)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	for i, want := range []float64{0, 0.5, 1} {
		if results[i].ParamValue != want {
			t.Errorf("result %d: expected value %f, got %f", i, want, results[i].ParamValue)
		}
		if results[i].FinalState.Restitution != want {
			t.Errorf("result %d: restitution not applied, got %f", i, results[i].FinalState.Restitution)
		}
	}
	if !(results[0].Energy < results[1].Energy && results[1].Energy < results[2].Energy) {
		t.Errorf("expected energy to grow with restitution: %f %f %f",
			results[0].Energy, results[1].Energy, results[2].Energy)
	}
}

func TestRunSweepRejectsBadInput(t *testing.T) {
	cfg := config.DefaultConfig()
	if _, err := RunSweep(context.Background(), cfg, &ParameterSweep{Param: "colour", Steps: 2}, io.Discard); err == nil {
		t.Error("expected an error for an unknown parameter")
	}
	if _, err := RunSweep(context.Background(), cfg, &ParameterSweep{Param: "mass", Steps: 0}, io.Discard); err == nil {
		t.Error("expected an error for zero steps")
	}
}

func TestRunMonteCarlo(t *testing.T) {
	mc := &MonteCarloConfig{
		Params:       []string{"vx", "vy", "mass"},
		Perturbation: 0.1,
		NumTrials:    8,
		Frame:        120,
		Seed:         42,
	}
	results, err := RunMonteCarlo(context.Background(), config.DefaultConfig(), mc, io.Discard)
	if err != nil {
		t.Fatalf("monte carlo: %v", err)
	}
	if len(results) != 8 {
		t.Fatalf("expected 8 trials, got %d", len(results))
	}

	stable, unstable := MonteCarloStats(results)
	if stable != 8 || unstable != 0 {
		t.Errorf("expected every trial inside the arena, got %d stable %d unstable", stable, unstable)
	}
	for _, r := range results {
		if len(r.Values) != 3 {
			t.Errorf("trial %d: expected 3 perturbed values, got %v", r.TrialID, r.Values)
		}
	}

	again, err := RunMonteCarlo(context.Background(), config.DefaultConfig(), mc, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if again[3].FinalState != results[3].FinalState {
		t.Error("same seed should reproduce the same trials")
	}
}

func TestRunSweepCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sweep := &ParameterSweep{Param: "gravity", Min: 0, Max: 1, Steps: 4, Frame: 10}
	if _, err := RunSweep(ctx, config.DefaultConfig(), sweep, io.Discard); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestEnsembleReturnsFirstErrorByIndex(t *testing.T) {
	errA, errB := errors.New("a"), errors.New("b")
	err := ensemble(context.Background(), 5, func(i int) error {
		switch i {
		case 1:
			return errA
		case 3:
			return errB
		}
		return nil
	})
	if err != errA {
		t.Errorf("expected %v, got %v", errA, err)
	}
}
