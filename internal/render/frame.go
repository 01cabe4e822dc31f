package render

import (
	"image"
	"image/color"
)

// Frame is a paletted raster with the drawing primitives the
// renderers need. Coordinates are pixels, y increasing downward.
type Frame struct {
	Img *image.Paletted
}

func NewFrame(w, h int, palette color.Palette) *Frame {
	img := image.NewPaletted(image.Rect(0, 0, w, h), palette)
	for i := range img.Pix {
		img.Pix[i] = ColorBackground
	}
	return &Frame{Img: img}
}

func (f *Frame) Set(x, y int, ci uint8) {
	if x < 0 || y < 0 || x >= f.Img.Rect.Dx() || y >= f.Img.Rect.Dy() {
		return
	}
	f.Img.SetColorIndex(x, y, ci)
}

// Line draws with Bresenham's algorithm.
func (f *Frame) Line(x0, y0, x1, y1 int, ci uint8) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
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
		f.Set(x0, y0, ci)
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

// ThickLine draws a line with the given half-width by offsetting
// perpendicular passes.
func (f *Frame) ThickLine(x0, y0, x1, y1, halfWidth int, ci uint8) {
	f.Line(x0, y0, x1, y1, ci)
	for w := 1; w <= halfWidth; w++ {
		if abs(x1-x0) >= abs(y1-y0) {
			f.Line(x0, y0-w, x1, y1-w, ci)
			f.Line(x0, y0+w, x1, y1+w, ci)
		} else {
			f.Line(x0-w, y0, x1-w, y1, ci)
			f.Line(x0+w, y0, x1+w, y1, ci)
		}
	}
}

// Disc fills a circle of radius r centered at (cx, cy).
func (f *Frame) Disc(cx, cy, r int, ci uint8) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				f.Set(cx+dx, cy+dy, ci)
			}
		}
	}
}

// Polyline connects consecutive points.
func (f *Frame) Polyline(xs, ys []int, ci uint8) {
	for i := 1; i < len(xs) && i < len(ys); i++ {
		f.Line(xs[i-1], ys[i-1], xs[i], ys[i], ci)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
