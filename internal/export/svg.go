// Package export renders stored runs for viewing outside the terminal.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/boxsim/internal/body"
	"github.com/san-kum/boxsim/internal/replay"
)

// SVGOptions control TraceToSVG. A body outline is drawn every Every
// frames and on every frame with a wall contact.
type SVGOptions struct {
	Scale        float64
	Every        int
	PathColor    string
	BodyColor    string
	ContactColor string
}

func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		Scale:        1,
		Every:        30,
		PathColor:    "#00ffff",
		BodyColor:    "#666688",
		ContactColor: "#ff00ff",
	}
}

// TraceToSVG draws the arena, the path of the centroid and periodic body
// outlines of a recorded run.
func TraceToSVG(w io.Writer, arena body.Arena, frames []replay.Frame, opts SVGOptions) error {
	if len(frames) < 2 {
		return fmt.Errorf("need at least two frames, got %d", len(frames))
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}

	width := arena.Width * opts.Scale
	height := arena.Height * opts.Scale

	var sb strings.Builder

	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a" stroke="#444466" stroke-width="2"/>
`, width, height, width, height)

	sb.WriteString(`<g fill="none" stroke-width="1">` + "\n")
	for i, f := range frames {
		contact := f.Contact&body.Walls != 0
		if !contact && (opts.Every <= 0 || i%opts.Every != 0) {
			continue
		}
		color := opts.BodyColor
		if contact {
			color = opts.ContactColor
		}
		fmt.Fprintf(&sb, `<polygon stroke="%s" points="%s"/>`+"\n", color, points(f.State.Corners(), opts.Scale))
	}
	sb.WriteString("</g>\n")

	fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, opts.PathColor)
	for i, f := range frames {
		x, y := f.State.X*opts.Scale, f.State.Y*opts.Scale
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}
	sb.WriteString(`"/>
</svg>
`)

	_, err := io.WriteString(w, sb.String())
	return err
}

func points(cs [4]body.Vec2, scale float64) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = fmt.Sprintf("%.1f,%.1f", c.X*scale, c.Y*scale)
	}
	return strings.Join(parts, " ")
}
