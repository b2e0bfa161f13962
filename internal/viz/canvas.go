package viz

import (
	"strings"

	"github.com/san-kum/boxsim/internal/body"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

// Canvas is a grid of Braille cells. Each cell holds 2x4 sub-pixels, so
// the drawable area is (Width*2) x (Height*4).
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, Grid: make([][]rune, h)}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set turns on the sub-pixel at (x, y). Points off the canvas are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= pixelMap[y%4][x%2]
}

func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&pixelMap[y%4][x%2] != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx, dy := absInt(x1-x0), absInt(y1-y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawPolygon connects pts in order and closes the outline.
func (c *Canvas) DrawPolygon(pts [][2]int) {
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		c.DrawLine(a[0], a[1], b[0], b[1])
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// viewport maps arena coordinates onto canvas sub-pixels with a uniform
// scale, so the body keeps its aspect ratio.
type viewport struct {
	scale float64
}

func newViewport(c *Canvas, a body.Arena) viewport {
	sx := float64(c.Width*2-1) / a.Width
	sy := float64(c.Height*4-1) / a.Height
	return viewport{scale: min(sx, sy)}
}

func (v viewport) project(p body.Vec2) (int, int) {
	return int(p.X*v.scale + 0.5), int(p.Y*v.scale + 0.5)
}

// drawScene paints the arena border, a dotted grid every gridStep units
// and the body outline.
func drawScene(c *Canvas, a body.Arena, corners [4]body.Vec2, gridStep float64) {
	c.Clear()
	v := newViewport(c, a)

	right, bottom := v.project(body.Vec2{X: a.Width, Y: a.Height})
	c.DrawPolygon([][2]int{{0, 0}, {right, 0}, {right, bottom}, {0, bottom}})

	if gridStep > 0 {
		for gx := gridStep; gx < a.Width; gx += gridStep {
			for gy := gridStep; gy < a.Height; gy += gridStep {
				c.Set(v.project(body.Vec2{X: gx, Y: gy}))
			}
		}
	}

	pts := make([][2]int, len(corners))
	for i, p := range corners {
		x, y := v.project(p)
		pts[i] = [2]int{x, y}
	}
	c.DrawPolygon(pts)
}
