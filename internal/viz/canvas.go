package viz

import "strings"

// Braille cells pack a 2x4 dot grid per terminal character, so a
// canvas of W x H cells addresses (2W) x (4H) dots. Dot bits follow
// the Unicode braille layout starting at U+2800:
//
//	0x01 0x08
//	0x02 0x10
//	0x04 0x20
//	0x40 0x80
var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

const brailleBase = 0x2800

// Canvas is a monochrome braille drawing surface.
type Canvas struct {
	Cols, Rows int
	cells      []rune
}

func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{Cols: cols, Rows: rows, cells: make([]rune, cols*rows)}
	c.Clear()
	return c
}

// DotWidth and DotHeight give the drawable resolution in dots.
func (c *Canvas) DotWidth() int  { return c.Cols * 2 }
func (c *Canvas) DotHeight() int { return c.Rows * 4 }

func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = brailleBase
	}
}

// Set turns on the dot at (x, y) in dot coordinates. Out-of-range
// dots are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Cols || row >= c.Rows {
		return
	}
	c.cells[row*c.Cols+col] |= dotBits[y%4][x%2]
}

// Line draws between two dots with Bresenham stepping.
func (c *Canvas) Line(x0, y0, x1, y1 int) {
	dx, dy := x1-x0, y1-y0
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx - dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 > -dy {
			e -= dy
			x0 += sx
		}
		if e2 < dx {
			e += dx
			y0 += sy
		}
	}
}

// Blob fills a small square around (x, y), used for bobs and markers.
func (c *Canvas) Blob(x, y, r int) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			c.Set(x+dx, y+dy)
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	b.Grow(c.Rows * (c.Cols + 1))
	for row := 0; row < c.Rows; row++ {
		b.WriteString(string(c.cells[row*c.Cols : (row+1)*c.Cols]))
		b.WriteByte('\n')
	}
	return b.String()
}
