package render

import "image/color"

// Palette indices shared by the renderers. The trail entries fade the
// bob color toward the background in quadratic steps, matching the
// published animation.
const (
	ColorBackground = iota
	ColorForeground
	ColorBob1
	ColorBob2
	ColorAxis
	colorTrailBase // trail shades follow from here
)

// TrailSegments is the number of fading segments in the bob trail.
const TrailSegments = 20

var (
	background = color.RGBA{255, 255, 255, 255}
	foreground = color.RGBA{0, 0, 0, 255}
	bob1Color  = color.RGBA{0, 0, 255, 255}
	bob2Color  = color.RGBA{255, 0, 0, 255}
	axisColor  = color.RGBA{160, 160, 160, 255}
)

// NewPalette builds the shared palette: fixed drawing colors followed
// by TrailSegments shades of the second bob color blended toward the
// background with alpha (j/ns)^2.
func NewPalette() color.Palette {
	p := color.Palette{background, foreground, bob1Color, bob2Color, axisColor}
	for j := 0; j < TrailSegments; j++ {
		alpha := float64(j+1) / float64(TrailSegments)
		alpha *= alpha
		p = append(p, blend(bob2Color, background, alpha))
	}
	return p
}

// TrailColor returns the palette index for trail segment j, where
// j=TrailSegments-1 is the most recent (most opaque) segment.
func TrailColor(j int) uint8 {
	if j < 0 {
		j = 0
	}
	if j >= TrailSegments {
		j = TrailSegments - 1
	}
	return uint8(colorTrailBase + j)
}

func blend(c, bg color.RGBA, alpha float64) color.RGBA {
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a)*alpha + float64(b)*(1-alpha))
	}
	return color.RGBA{mix(c.R, bg.R), mix(c.G, bg.G), mix(c.B, bg.B), 255}
}
