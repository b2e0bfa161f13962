// Package session owns one body and its timeline and drives them the way
// an interactive editor does: periodic ticks during playback, and
// authoring, scrubbing and previews while paused.
package session

import (
	"context"
	"fmt"

	"github.com/san-kum/boxsim/internal/body"
	"github.com/san-kum/boxsim/internal/config"
	"github.com/san-kum/boxsim/internal/keyframe"
	"github.com/san-kum/boxsim/internal/metrics"
	"github.com/san-kum/boxsim/internal/param"
	"github.com/san-kum/boxsim/internal/replay"
	"github.com/san-kum/boxsim/internal/timeline"
)

// Session is not safe for concurrent use; every call is expected from the
// single goroutine that also delivers ticks.
type Session struct {
	cfg     *config.Config
	body    *body.Body
	store   *timeline.Store
	engine  *replay.Engine
	poses   *keyframe.Sequence
	bounds  [param.Count]param.Bounds
	metrics []metrics.Metric

	frame   int
	playing bool
	contact body.Contact
}

// New builds the body from cfg, places it at home and records every
// parameter at frame 0.
func New(cfg *config.Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.Clone()

	b := cfg.NewBody()
	store := timeline.New()
	s := &Session{
		cfg:    cfg,
		body:   b,
		store:  store,
		engine: replay.New(b, store, cfg.MaxFrame, cfg.TimeScale()),
		poses:  keyframe.NewSequence(),
		bounds: cfg.ParamBounds(),
	}
	s.recordAll(0)
	return s, nil
}

func (s *Session) recordAll(frame int) {
	for _, k := range param.All() {
		// Only invalid kinds or negative frames fail, neither possible here.
		_ = s.store.Record(k, frame, param.Get(k, s.body))
	}
}

func (s *Session) Config() *config.Config    { return s.cfg }
func (s *Session) Frame() int                { return s.frame }
func (s *Session) MaxFrame() int             { return s.engine.MaxFrame() }
func (s *Session) Playing() bool             { return s.playing }
func (s *Session) State() body.State         { return s.body.Save() }
func (s *Session) Corners() [4]body.Vec2     { return s.body.Corners() }
func (s *Session) Arena() body.Arena         { return s.body.Arena() }
func (s *Session) Store() *timeline.Store    { return s.store }
func (s *Session) LastContact() body.Contact { return s.contact }

// Value reads k from the live body.
func (s *Session) Value(k param.Kind) float64 {
	return param.Get(k, s.body)
}

func (s *Session) Bounds(k param.Kind) param.Bounds {
	return s.bounds[k]
}

func (s *Session) AddMetric(m metrics.Metric) {
	s.metrics = append(s.metrics, m)
}

func (s *Session) Metrics() []metrics.Metric {
	return s.metrics
}

func (s *Session) resetMetrics() {
	for _, m := range s.metrics {
		m.Reset()
	}
}

func (s *Session) Play()  { s.playing = true }
func (s *Session) Pause() { s.playing = false }

func (s *Session) Toggle() {
	s.playing = !s.playing
}

// PlayFromStart rewinds to frame 0 and starts playback.
func (s *Session) PlayFromStart() {
	s.Seek(0)
	s.resetMetrics()
	s.playing = true
}

// Tick advances playback by one frame and applies the keys of the new
// frame, so metrics see the same state a recorded playback does. At the
// last frame playback stops and the body returns to frame 0. It reports
// whether a step was taken.
func (s *Session) Tick() bool {
	if !s.playing {
		return false
	}
	if s.frame >= s.engine.MaxFrame() {
		s.playing = false
		s.frame = s.engine.Reconstruct(0)
		s.contact = 0
		return false
	}

	s.contact = s.engine.Advance(s.frame)
	s.frame++
	s.engine.Apply(s.frame)

	state := s.body.Save()
	for _, m := range s.metrics {
		m.Observe(s.frame, state)
	}
	return true
}

// Seek pauses playback and reconstructs the body at frame. The clamped
// frame is returned.
func (s *Session) Seek(frame int) int {
	s.playing = false
	s.frame = s.engine.Reconstruct(frame)
	s.contact = 0
	return s.frame
}

func (s *Session) StepFrame(delta int) int {
	return s.Seek(s.frame + delta)
}

// Reset pauses and returns to frame 0.
func (s *Session) Reset() {
	s.Seek(0)
	s.resetMetrics()
}

// Preview reconstructs frame without disturbing the live body.
func (s *Session) Preview(frame int) body.State {
	saved := s.body.Save()
	defer s.body.Restore(saved)

	s.engine.Reconstruct(frame)
	return s.body.Save()
}

// Playback records the whole timeline from frame 0, feeding every frame to
// the session metrics and observers. The live body is restored afterwards.
func (s *Session) Playback(ctx context.Context, observers ...replay.Observer) (*replay.Trace, error) {
	saved := s.body.Save()
	defer s.body.Restore(saved)

	s.resetMetrics()
	all := append([]replay.Observer{metrics.Observer(s.metrics)}, observers...)
	return s.engine.Record(ctx, s.engine.MaxFrame(), all...)
}

// Bake snapshots the replayed motion every n frames into the pose
// sequence and returns the number of poses stored.
func (s *Session) Bake(every int) int {
	saved := s.body.Save()
	defer s.body.Restore(saved)

	for _, snap := range s.engine.Bake(every).All() {
		s.poses.Put(snap)
	}
	return s.poses.Len()
}

// Reconfigure applies the environment of cfg (arena, rest thresholds,
// home margin, bounds, tick scale, frame limit) and reconstructs the
// current frame. Authored values and the body's own parameters are kept.
func (s *Session) Reconfigure(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg = cfg.Clone()

	s.cfg = cfg
	s.body.SetArena(cfg.ArenaSize())
	s.body.SetRestThresholds(cfg.RestThresholds())
	s.body.SetHomeMargin(cfg.HomeMargin)
	s.bounds = cfg.ParamBounds()
	s.engine.SetScale(cfg.TimeScale())
	s.engine.SetMaxFrame(cfg.MaxFrame)

	s.frame = s.engine.Reconstruct(s.frame)
	return nil
}

func (s *Session) String() string {
	st := s.body.Save()
	return fmt.Sprintf("frame %d/%d pos (%.1f, %.1f) vel (%.2f, %.2f) rot %.1f° ω %.3f",
		s.frame, s.engine.MaxFrame(), st.X, st.Y, st.VX, st.VY,
		param.Orientation.ToDisplay(st.Orientation), st.AngularVelocity)
}
