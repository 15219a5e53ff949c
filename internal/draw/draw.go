// Package draw provides the drawing surfaces the fireworks are rendered on.
package draw

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Surface is the drawing target for particles and rockets.
// Both drawing operations composite additively ("lighter" blending).
type Surface interface {
	// Clear erases everything drawn since the last Clear.
	Clear()

	// FillGlow fills a circle of radius size centered at (x, y) with a two-stop
	// radial gradient: c at alpha in the center, fading to alpha 0 at radius glow.
	FillGlow(x, y, size, glow float64, c colorful.Color, alpha float64)

	// StrokePolyline strokes the segments between consecutive points.
	StrokePolyline(points []Point, c colorful.Color, alpha, width float64)
}

// Shade characters from lightest to darkest.
// Used when rendering to terminals without truecolor support.
var Shades = []rune{' ', '░', '▒', '▓', '█'}

// ShadeLevel returns a shade character for a value between 0.0 (empty) and 1.0 (solid).
func ShadeLevel(intensity float64) rune {
	if intensity <= 0 {
		return Shades[0]
	}
	if intensity >= 1 {
		return Shades[len(Shades)-1]
	}
	idx := int(intensity * float64(len(Shades)-1))
	if idx == 0 {
		idx = 1 // anything lit should be visible
	}
	return Shades[idx]
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
