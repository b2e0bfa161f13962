package timeline

import (
	"cmp"
	"slices"
)

// Key is one authored value.
type Key struct {
	Frame int
	Value float64
}

// Track is a sparse, frame-ordered set of authored values for one
// parameter. Frames are unique.
type Track struct {
	keys []Key
}

func (t *Track) search(frame int) (int, bool) {
	return slices.BinarySearchFunc(t.keys, frame, func(k Key, f int) int {
		return cmp.Compare(k.Frame, f)
	})
}

// Record inserts or overwrites the value at frame.
func (t *Track) Record(frame int, value float64) {
	i, found := t.search(frame)
	if found {
		t.keys[i].Value = value
		return
	}
	t.keys = slices.Insert(t.keys, i, Key{Frame: frame, Value: value})
}

// Delete removes the value at frame and reports whether one existed.
func (t *Track) Delete(frame int) bool {
	i, found := t.search(frame)
	if !found {
		return false
	}
	t.keys = slices.Delete(t.keys, i, i+1)
	return true
}

// Value returns the value authored exactly at frame.
func (t *Track) Value(frame int) (float64, bool) {
	i, found := t.search(frame)
	if !found {
		return 0, false
	}
	return t.keys[i].Value, true
}

// Query returns the value at frame. Between two keys the value is
// linearly interpolated; outside the authored range the nearest key is
// held. An empty track has no value.
func (t *Track) Query(frame int) (float64, bool) {
	if len(t.keys) == 0 {
		return 0, false
	}
	i, found := t.search(frame)
	if found {
		return t.keys[i].Value, true
	}
	if i == 0 {
		return t.keys[0].Value, true
	}
	if i == len(t.keys) {
		return t.keys[i-1].Value, true
	}

	lo, hi := t.keys[i-1], t.keys[i]
	frac := float64(frame-lo.Frame) / float64(hi.Frame-lo.Frame)
	return lo.Value + (hi.Value-lo.Value)*frac, true
}

func (t *Track) Len() int {
	return len(t.keys)
}

func (t *Track) Frames() []int {
	frames := make([]int, len(t.keys))
	for i, k := range t.keys {
		frames[i] = k.Frame
	}
	return frames
}

// Keys returns a copy of the authored keys in frame order.
func (t *Track) Keys() []Key {
	return slices.Clone(t.keys)
}

// Prune drops every key for which keep returns false.
func (t *Track) Prune(keep func(Key) bool) {
	t.keys = slices.DeleteFunc(t.keys, func(k Key) bool { return !keep(k) })
}

// Neighbors returns the nearest authored frames strictly before and
// after frame, or -1 when there is none.
func (t *Track) Neighbors(frame int) (prev, next int) {
	prev, next = -1, -1
	i, found := t.search(frame)
	if i > 0 {
		prev = t.keys[i-1].Frame
	}
	if found {
		i++
	}
	if i < len(t.keys) {
		next = t.keys[i].Frame
	}
	return prev, next
}
