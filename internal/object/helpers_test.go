package object

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/fireworks/internal/draw"
)

type glowCall struct {
	X, Y, Size, Glow, Alpha float64
	Color                   colorful.Color
}

type strokeCall struct {
	Points       []draw.Point
	Alpha, Width float64
}

// recordSurface records every draw call.
type recordSurface struct {
	clears  int
	glows   []glowCall
	strokes []strokeCall
}

func (r *recordSurface) Clear() { r.clears++ }

func (r *recordSurface) FillGlow(x, y, size, glow float64, c colorful.Color, alpha float64) {
	r.glows = append(r.glows, glowCall{X: x, Y: y, Size: size, Glow: glow, Alpha: alpha, Color: c})
}

func (r *recordSurface) StrokePolyline(points []draw.Point, _ colorful.Color, alpha, width float64) {
	r.strokes = append(r.strokes, strokeCall{
		Points: append([]draw.Point(nil), points...),
		Alpha:  alpha,
		Width:  width,
	})
}

// collectSpawner keeps every spawned particle.
type collectSpawner struct {
	particles []*Particle
}

func (c *collectSpawner) Spawn(p *Particle) {
	c.particles = append(c.particles, p)
}

// panicSampler fails the test if any randomized parameter is sampled.
type panicSampler struct{}

func (panicSampler) Float(min, max float64) float64 {
	panic("unexpected sample")
}

func testContext(s Sampler, sp Spawner) UpdateContext {
	return UpdateContext{
		Screen:   NewScreen(960, 600),
		Spawner:  sp,
		Sampler:  s,
		Palette:  DefaultPalette(),
		Profiles: DefaultProfiles(),
	}
}
