package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/harmonica"

	"github.com/san-kum/boxsim/internal/param"
	"github.com/san-kum/boxsim/internal/timeline"
)

type mark uint8

const (
	markOff mark = iota // past the last frame
	markEmpty
	markKey
	markSelected
	markPlayhead
	markPlayheadKey
)

// strip is the timeline view: one row of frames per parameter around the
// playhead. Its scroll position follows the playhead on a spring so jumps
// glide instead of snapping.
type strip struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
	width  int
}

func newStrip(fps, width int) strip {
	return strip{
		spring: harmonica.NewSpring(harmonica.FPS(max(fps, 1)), 6.0, 1.0),
		width:  width,
	}
}

// retune swaps the spring for a new tick rate, keeping the scroll where
// it is.
func (s *strip) retune(fps int) {
	s.spring = harmonica.NewSpring(harmonica.FPS(max(fps, 1)), 6.0, 1.0)
}

func (s *strip) follow(frame int) {
	s.pos, s.vel = s.spring.Update(s.pos, s.vel, float64(frame))
}

func (s *strip) settled(frame int) bool {
	return math.Abs(s.pos-float64(frame)) < 0.5 && math.Abs(s.vel) < 0.5
}

// start is the first frame shown, keeping the scroll position centred.
func (s *strip) start(maxFrame int) int {
	first := int(math.Round(s.pos)) - s.width/2
	return max(0, min(first, maxFrame-s.width+1))
}

func (s *strip) row(store *timeline.Store, k param.Kind, start, frame, maxFrame int) []mark {
	marks := make([]mark, s.width)
	for i := range marks {
		f := start + i
		switch {
		case f > maxFrame:
			marks[i] = markOff
		case store.IsSelected(k, f):
			marks[i] = markSelected
		case f == frame && store.Has(k, f):
			marks[i] = markPlayheadKey
		case f == frame:
			marks[i] = markPlayhead
		case store.Has(k, f):
			marks[i] = markKey
		default:
			marks[i] = markEmpty
		}
	}
	return marks
}

func (s *strip) render(store *timeline.Store, current param.Kind, frame, maxFrame int, st styles) string {
	start := s.start(maxFrame)

	var b strings.Builder
	b.WriteString(st.muted.Render(fmt.Sprintf("%-12s %-*d%d", "frame", s.width-len(fmt.Sprint(start+s.width-1)), start, start+s.width-1)))
	b.WriteByte('\n')

	for _, k := range param.All() {
		label := fmt.Sprintf("%-12s ", k.Label())
		if k == current {
			b.WriteString(st.key.Render(label))
		} else {
			b.WriteString(st.label.UnsetWidth().Render(label))
		}
		for _, m := range s.row(store, k, start, frame, maxFrame) {
			b.WriteString(renderMark(m, st))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func renderMark(m mark, st styles) string {
	switch m {
	case markEmpty:
		return st.muted.Render("·")
	case markKey:
		return st.key.Render("◆")
	case markSelected:
		return st.selected.Render("◆")
	case markPlayhead:
		return st.playhead.Render("│")
	case markPlayheadKey:
		return st.playhead.Render("◆")
	}
	return " "
}
