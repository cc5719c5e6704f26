package viz

import (
	"math"
	"strings"

	"github.com/rkfall/rkfall/internal/dynamo"
	"github.com/rkfall/rkfall/internal/fixed"
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
	}
	c.Clear()
	return c
}

// Set lights the sub-pixel (x, y). The canvas is Width*2 by Height*4
// sub-pixels; out-of-range points are dropped.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
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

// Dot sets a 3x3 block around (x, y).
func (c *Canvas) Dot(x, y int) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			c.Set(x+dx, y+dy)
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Viewport maps real-valued world coordinates onto canvas sub-pixels with
// equal scale on both axes. World y grows upward.
type Viewport struct {
	MinX, MinY, MaxX, MaxY float64
}

// Fit returns the square viewport containing every body of every system
// with a 10% margin.
func Fit(trajectory ...dynamo.System) Viewport {
	v := Viewport{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	for _, sys := range trajectory {
		for _, b := range sys {
			x, y := fixed.ToFloat(b.X), fixed.ToFloat(b.Y)
			v.MinX, v.MaxX = math.Min(v.MinX, x), math.Max(v.MaxX, x)
			v.MinY, v.MaxY = math.Min(v.MinY, y), math.Max(v.MaxY, y)
		}
	}
	if math.IsInf(v.MinX, 1) {
		return Viewport{MinX: -1, MinY: -1, MaxX: 1, MaxY: 1}
	}

	cx, cy := (v.MinX+v.MaxX)/2, (v.MinY+v.MaxY)/2
	half := math.Max(v.MaxX-v.MinX, v.MaxY-v.MinY) / 2 * 1.1
	if half == 0 {
		half = 1
	}
	return Viewport{MinX: cx - half, MinY: cy - half, MaxX: cx + half, MaxY: cy + half}
}

// Project returns the sub-pixel position of world point (x, y).
func (v Viewport) Project(c *Canvas, x, y float64) (int, int) {
	w, h := float64(c.Width*2-1), float64(c.Height*4-1)
	scale := math.Min(w/(v.MaxX-v.MinX), h/(v.MaxY-v.MinY))
	offX := (w - scale*(v.MaxX-v.MinX)) / 2
	offY := (h - scale*(v.MaxY-v.MinY)) / 2
	px := offX + (x-v.MinX)*scale
	py := h - offY - (y-v.MinY)*scale
	return int(math.Round(px)), int(math.Round(py))
}

// DrawBody marks a body at its fixed-point position.
func (c *Canvas) DrawBody(v Viewport, b dynamo.Body) {
	x, y := v.Project(c, fixed.ToFloat(b.X), fixed.ToFloat(b.Y))
	c.Dot(x, y)
}

// DrawTrajectory traces every body's path through the recorded systems and
// marks the final positions.
func (c *Canvas) DrawTrajectory(v Viewport, trajectory []dynamo.System) {
	if len(trajectory) == 0 {
		return
	}
	prev := make(map[int][2]int)
	for _, sys := range trajectory {
		for _, b := range sys {
			x, y := v.Project(c, fixed.ToFloat(b.X), fixed.ToFloat(b.Y))
			if p, ok := prev[b.ID]; ok {
				c.DrawLine(p[0], p[1], x, y)
			} else {
				c.Set(x, y)
			}
			prev[b.ID] = [2]int{x, y}
		}
	}
	for _, b := range trajectory[len(trajectory)-1] {
		c.DrawBody(v, b)
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
