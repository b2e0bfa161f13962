package automation

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/boxsim/internal/body"
	"github.com/san-kum/boxsim/internal/config"
	"github.com/san-kum/boxsim/internal/param"
	"github.com/san-kum/boxsim/internal/session"
)

// Script is a yaml sequence of authoring actions replayed against a
// session, the same actions a user performs in the live view.
type Script struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Preset      string `yaml:"preset"`
	Steps       []Step `yaml:"steps"`
}

// Step is one action. Values are in display units.
type Step struct {
	Op        string  `yaml:"op"`
	Param     string  `yaml:"param,omitempty"`
	Frame     int     `yaml:"frame,omitempty"`
	Value     float64 `yaml:"value,omitempty"`
	Frames    int     `yaml:"frames,omitempty"`
	Every     int     `yaml:"every,omitempty"`
	Tolerance float64 `yaml:"tolerance,omitempty"`
}

// StepResult is the session position after a step.
type StepResult struct {
	Index int
	Op    string
	Frame int
	State body.State
}

func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var script Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, err
	}
	return &script, nil
}

// Config returns the script's preset, or the defaults when none is named.
func (s *Script) Config() (*config.Config, error) {
	if s.Preset == "" {
		return config.DefaultConfig(), nil
	}
	cfg := config.GetPreset(s.Preset)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", s.Preset, config.ListPresets())
	}
	return cfg, nil
}

// Run executes every step against sess, reporting progress to out.
func Run(ctx context.Context, sess *session.Session, script *Script, out io.Writer) ([]StepResult, error) {
	results := make([]StepResult, 0, len(script.Steps))

	for i, step := range script.Steps {
		select {
		case <-ctx.Done():
			return results, ctx.Err()
		default:
		}

		fmt.Fprintf(out, "Running step %d/%d: %s\n", i+1, len(script.Steps), describe(step))
		if err := apply(sess, step); err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		results = append(results, StepResult{
			Index: i,
			Op:    step.Op,
			Frame: sess.Frame(),
			State: sess.State(),
		})
	}

	return results, nil
}

func describe(step Step) string {
	if step.Param == "" {
		return step.Op
	}
	return step.Op + " " + step.Param
}

func kind(step Step) (param.Kind, error) {
	if step.Param == "" {
		return 0, fmt.Errorf("%s: missing param", step.Op)
	}
	return param.ParseKind(step.Param)
}

func apply(sess *session.Session, step Step) error {
	switch step.Op {
	case "seek":
		sess.Seek(step.Frame)
		return nil
	case "record_all":
		return sess.RecordAll()
	case "clear_selection":
		sess.ClearSelection()
		return nil
	case "delete":
		return sess.DeleteSelected()
	case "clear":
		return sess.ClearAll()
	case "pose":
		return sess.RecordPose()
	case "bake":
		sess.Bake(step.Every)
		return nil
	case "play":
		play(sess, step.Frames)
		return nil
	case "set", "record", "key", "select", "expect":
		k, err := kind(step)
		if err != nil {
			return err
		}
		return applyParam(sess, k, step)
	}
	return fmt.Errorf("%w: %q", ErrUnknownOp, step.Op)
}

func applyParam(sess *session.Session, k param.Kind, step Step) error {
	switch step.Op {
	case "set":
		_, err := sess.SetParam(k, step.Value)
		return err
	case "record":
		return sess.RecordParam(k)
	case "key":
		return sess.AuthorKey(k, step.Frame, step.Value)
	case "select":
		if !sess.Select(k, step.Frame) {
			return fmt.Errorf("select %s at frame %d: %w", k, step.Frame, session.ErrNoSelection)
		}
		return nil
	}

	got := k.ToDisplay(sess.Value(k))
	tol := step.Tolerance
	if tol == 0 {
		tol = 1e-6
	}
	if math.Abs(got-step.Value) > tol {
		return fmt.Errorf("%w: %s at frame %d is %g, want %g±%g", ErrExpectation, k, sess.Frame(), got, step.Value, tol)
	}
	return nil
}

// play ticks n frames from the current frame, or to the end when n is 0,
// and leaves the session paused.
func play(sess *session.Session, n int) {
	if n <= 0 {
		n = sess.MaxFrame() - sess.Frame()
	}
	sess.Play()
	for i := 0; i < n; i++ {
		if !sess.Tick() {
			break
		}
	}
	sess.Pause()
}
