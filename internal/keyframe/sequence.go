package keyframe

import (
	"cmp"
	"slices"
)

// Sequence is a frame-ordered set of snapshots with at most one snapshot
// per frame.
type Sequence struct {
	snaps []Snapshot
}

func NewSequence() *Sequence {
	return &Sequence{}
}

func (q *Sequence) search(frame int) (int, bool) {
	return slices.BinarySearchFunc(q.snaps, frame, func(s Snapshot, f int) int {
		return cmp.Compare(s.Frame, f)
	})
}

// Put inserts s, replacing any snapshot at the same frame.
func (q *Sequence) Put(s Snapshot) {
	i, found := q.search(s.Frame)
	if found {
		q.snaps[i] = s
		return
	}
	q.snaps = slices.Insert(q.snaps, i, s)
}

func (q *Sequence) Remove(frame int) bool {
	i, found := q.search(frame)
	if !found {
		return false
	}
	q.snaps = slices.Delete(q.snaps, i, i+1)
	return true
}

// At returns the snapshot for frame: exact when stored, interpolated
// between the neighbours, otherwise the nearest end.
func (q *Sequence) At(frame int) (Snapshot, bool) {
	if len(q.snaps) == 0 {
		return Snapshot{}, false
	}
	i, found := q.search(frame)
	switch {
	case found:
		return q.snaps[i], true
	case i == 0:
		return q.snaps[0], true
	case i == len(q.snaps):
		return q.snaps[i-1], true
	}
	return Interpolate(q.snaps[i-1], q.snaps[i], frame), true
}

func (q *Sequence) Frames() []int {
	frames := make([]int, len(q.snaps))
	for i, s := range q.snaps {
		frames[i] = s.Frame
	}
	return frames
}

// All returns a copy of the snapshots in frame order.
func (q *Sequence) All() []Snapshot {
	return slices.Clone(q.snaps)
}

func (q *Sequence) Len() int {
	return len(q.snaps)
}

func (q *Sequence) Clear() {
	q.snaps = nil
}
