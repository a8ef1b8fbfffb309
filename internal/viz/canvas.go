package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/scopetrail/internal/scope"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
	return c
}

// Set lights the dot at (x, y) in sub-pixel coordinates. The canvas is
// (Width*2) x (Height*4) sub-pixels.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
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

// DrawCurve connects consecutive samples of c as projected by vp.
func (c *Canvas) DrawCurve(curve scope.Curve, vp Viewport) {
	if curve.Len() == 0 {
		return
	}
	px, py := vp.Project(curve.X[0], curve.Y[0])
	c.Set(px, py)
	for i := 1; i < curve.Len(); i++ {
		x, y := vp.Project(curve.X[i], curve.Y[i])
		c.DrawLine(px, py, x, y)
		px, py = x, y
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Viewport maps the square [-Bounds, Bounds]² onto a canvas's sub-pixel
// grid with y pointing up.
type Viewport struct {
	Bounds        float64
	Width, Height int // in cells
}

// Project returns sub-pixel coordinates. Points far outside the bounds are
// pulled in to one canvas width of the edge so line drawing stays short.
func (v Viewport) Project(x, y float64) (int, int) {
	w, h := float64(v.Width*2-1), float64(v.Height*4-1)
	px := (x + v.Bounds) / (2 * v.Bounds) * w
	py := (v.Bounds - y) / (2 * v.Bounds) * h
	return int(clampf(px, -w, 2*w) + 0.5), int(clampf(py, -h, 2*h) + 0.5)
}

// Compose overlays same-sized layers into one colored string. Every cell
// shows the union of all layers' dots, colored by the last layer that has
// any dot in that cell. Runs of one color are rendered together.
func Compose(layers []*Canvas, styles []lipgloss.Style) string {
	if len(layers) == 0 {
		return ""
	}
	w, h := layers[0].Width, layers[0].Height

	var b strings.Builder
	run := make([]rune, 0, w)
	for row := 0; row < h; row++ {
		owner := -1
		run = run[:0]
		flush := func() {
			if len(run) == 0 {
				return
			}
			if owner < 0 {
				b.WriteString(string(run))
			} else {
				b.WriteString(styles[owner].Render(string(run)))
			}
			run = run[:0]
		}

		for col := 0; col < w; col++ {
			cell, top := rune(blank), -1
			for i, l := range layers {
				if bits := l.Grid[row][col] &^ blank; bits != 0 {
					cell |= bits
					top = i
				}
			}
			if top != owner {
				flush()
				owner = top
			}
			run = append(run, cell)
		}
		flush()
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

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
