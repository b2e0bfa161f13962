package timeline

import (
	"fmt"
	"slices"

	"github.com/san-kum/boxsim/internal/param"
)

// Selection is the single highlighted authored point.
type Selection struct {
	Kind  param.Kind
	Frame int
}

// Store holds one Track per parameter kind and the authoring selection.
// It is not safe for concurrent use.
type Store struct {
	tracks    [param.Count]Track
	selection Selection
	selected  bool
}

func New() *Store {
	return &Store{}
}

func (s *Store) Record(k param.Kind, frame int, value float64) error {
	if !k.Valid() {
		return fmt.Errorf("%w: %d", param.ErrUnknownKind, int(k))
	}
	if frame < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeFrame, frame)
	}
	s.tracks[k].Record(frame, value)
	return nil
}

// Delete removes the key at frame. A completed delete always clears the
// selection. Frame 0 is not protected here.
func (s *Store) Delete(k param.Kind, frame int) bool {
	if !k.Valid() {
		return false
	}
	if !s.tracks[k].Delete(frame) {
		return false
	}
	s.ClearSelection()
	return true
}

func (s *Store) Query(k param.Kind, frame int) (float64, bool) {
	if !k.Valid() {
		return 0, false
	}
	return s.tracks[k].Query(frame)
}

// Value returns only an exactly authored value.
func (s *Store) Value(k param.Kind, frame int) (float64, bool) {
	if !k.Valid() {
		return 0, false
	}
	return s.tracks[k].Value(frame)
}

func (s *Store) Has(k param.Kind, frame int) bool {
	_, ok := s.Value(k, frame)
	return ok
}

func (s *Store) Frames(k param.Kind) []int {
	if !k.Valid() {
		return nil
	}
	return s.tracks[k].Frames()
}

func (s *Store) Keys(k param.Kind) []Key {
	if !k.Valid() {
		return nil
	}
	return s.tracks[k].Keys()
}

func (s *Store) Neighbors(k param.Kind, frame int) (prev, next int) {
	if !k.Valid() {
		return -1, -1
	}
	return s.tracks[k].Neighbors(frame)
}

// AuthoredFrames returns the sorted union of frames over all tracks.
func (s *Store) AuthoredFrames() []int {
	var frames []int
	for i := range s.tracks {
		frames = append(frames, s.tracks[i].Frames()...)
	}
	slices.Sort(frames)
	return slices.Compact(frames)
}

// Len returns the number of keys over all tracks.
func (s *Store) Len() int {
	n := 0
	for i := range s.tracks {
		n += s.tracks[i].Len()
	}
	return n
}

// Select highlights (k, frame). It does nothing and returns false when no
// value is authored there.
func (s *Store) Select(k param.Kind, frame int) bool {
	if !s.Has(k, frame) {
		return false
	}
	s.selection = Selection{Kind: k, Frame: frame}
	s.selected = true
	return true
}

func (s *Store) ClearSelection() {
	s.selection = Selection{}
	s.selected = false
}

func (s *Store) IsSelected(k param.Kind, frame int) bool {
	return s.selected && s.selection.Kind == k && s.selection.Frame == frame
}

func (s *Store) Selection() (Selection, bool) {
	return s.selection, s.selected
}

// DeleteSelected removes the selected key and clears the selection.
func (s *Store) DeleteSelected() (Selection, bool) {
	sel, ok := s.Selection()
	if !ok {
		return Selection{}, false
	}
	s.tracks[sel.Kind].Delete(sel.Frame)
	s.ClearSelection()
	return sel, true
}

// ClearAuthored drops every key except those at frame 0 and clears the
// selection.
func (s *Store) ClearAuthored() {
	for i := range s.tracks {
		s.tracks[i].Prune(func(k Key) bool { return k.Frame == 0 })
	}
	s.ClearSelection()
}
