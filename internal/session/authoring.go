package session

import (
	"github.com/san-kum/boxsim/internal/keyframe"
	"github.com/san-kum/boxsim/internal/param"
	"github.com/san-kum/boxsim/internal/timeline"
)

func (s *Session) guard(op string, k param.Kind) error {
	if !k.Valid() && k != noKind {
		return &ActionError{Op: op, Kind: k, Frame: s.frame, Err: param.ErrUnknownKind}
	}
	if s.playing {
		return &ActionError{Op: op, Kind: k, Frame: s.frame, Err: ErrPlaying}
	}
	return nil
}

// SetParam writes a display-unit value onto the live body, clamped to the
// parameter's bounds, and returns the stored value. Velocity, orientation
// and angular velocity also become the motion restored on reset.
func (s *Session) SetParam(k param.Kind, display float64) (float64, error) {
	if err := s.guard("set", k); err != nil {
		return 0, err
	}
	v := k.FromDisplay(s.bounds[k].Clamp(display))

	param.Set(k, s.body, v)
	if k.Kinematic() && k != param.X && k != param.Y {
		s.body.SetInitialMotion(s.body.Velocity(), s.body.Orientation(), s.body.AngularVelocity())
	}
	return v, nil
}

// RecordParam stores the live value of k at the current frame.
func (s *Session) RecordParam(k param.Kind) error {
	if err := s.guard("record", k); err != nil {
		return err
	}
	if err := s.store.Record(k, s.frame, param.Get(k, s.body)); err != nil {
		return &ActionError{Op: "record", Kind: k, Frame: s.frame, Err: err}
	}
	return nil
}

// RecordAll stores every live value at the current frame.
func (s *Session) RecordAll() error {
	if err := s.guard("record all", noKind); err != nil {
		return err
	}
	s.recordAll(s.frame)
	return nil
}

// AuthorKey records a display-unit value at an arbitrary frame without
// touching the live body. Unlike SetParam it rejects out-of-range input.
func (s *Session) AuthorKey(k param.Kind, frame int, display float64) error {
	if err := s.guard("key", k); err != nil {
		return err
	}
	if frame < 0 || frame > s.engine.MaxFrame() || !s.bounds[k].Contains(display) {
		return &ActionError{Op: "key", Kind: k, Frame: frame, Err: ErrOutOfBounds}
	}
	if err := s.store.Record(k, frame, k.FromDisplay(display)); err != nil {
		return &ActionError{Op: "key", Kind: k, Frame: frame, Err: err}
	}
	s.frame = s.engine.Reconstruct(s.frame)
	return nil
}

// Select highlights an authored key. It reports false when nothing is
// authored at (k, frame).
func (s *Session) Select(k param.Kind, frame int) bool {
	return s.store.Select(k, frame)
}

func (s *Session) ClearSelection() {
	s.store.ClearSelection()
}

func (s *Session) Selection() (timeline.Selection, bool) {
	return s.store.Selection()
}

// DeleteSelected removes the selected key and reconstructs the current
// frame. Frame 0 keys are refused.
func (s *Session) DeleteSelected() error {
	if err := s.guard("delete", noKind); err != nil {
		return err
	}
	sel, ok := s.store.Selection()
	if !ok {
		return &ActionError{Op: "delete", Kind: noKind, Frame: s.frame, Err: ErrNoSelection}
	}
	if sel.Frame == 0 {
		return &ActionError{Op: "delete", Kind: sel.Kind, Frame: 0, Err: ErrBaseFrame}
	}

	s.store.DeleteSelected()
	s.frame = s.engine.Reconstruct(s.frame)
	return nil
}

// ClearAll drops every authored key except frame 0 and reconstructs the
// current frame.
func (s *Session) ClearAll() error {
	if err := s.guard("clear", noKind); err != nil {
		return err
	}
	s.store.ClearAuthored()
	s.frame = s.engine.Reconstruct(s.frame)
	return nil
}

// RecordPose captures the whole live state at the current frame.
func (s *Session) RecordPose() error {
	if err := s.guard("pose", noKind); err != nil {
		return err
	}
	s.poses.Put(keyframe.Capture(s.body, s.frame))
	return nil
}

func (s *Session) RemovePose(frame int) bool {
	return s.poses.Remove(frame)
}

// PoseAt returns the pose stored at frame or blended from its neighbours.
func (s *Session) PoseAt(frame int) (keyframe.Snapshot, bool) {
	return s.poses.At(frame)
}

func (s *Session) PoseFrames() []int {
	return s.poses.Frames()
}

// ApplyPose puts the pose for the current frame onto the live body. The
// timeline is not changed; record to keep the values.
func (s *Session) ApplyPose() (bool, error) {
	if err := s.guard("apply pose", noKind); err != nil {
		return false, err
	}
	snap, ok := s.poses.At(s.frame)
	if ok {
		snap.Apply(s.body)
	}
	return ok, nil
}
