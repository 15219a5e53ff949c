// Package glow implements draw.Surface on an ebiten image with true radial
// gradients and additive blending.
package glow

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/fireworks/internal/draw"
)

// spriteRadius is the radius in texels of the prebuilt glow sprites.
const spriteRadius = 64

// Surface draws onto the ebiten image set with Target.
type Surface struct {
	dst      *ebiten.Image
	disc     *ebiten.Image // solid white disc
	gradient *ebiten.Image // white disc fading linearly to transparent at the rim
	white    *ebiten.Image // 1x1 white source for stroked triangles

	vertices []ebiten.Vertex
	indices  []uint16
}

var _ draw.Surface = (*Surface)(nil)

// New builds the glow sprites. Ebiten defers the pixel upload, so it may be
// called before RunGame.
func New() *Surface {
	base := ebiten.NewImage(3, 3)
	base.Fill(color.White)

	return &Surface{
		disc:     ebiten.NewImageFromImage(radialImage(func(float64) float64 { return 1 })),
		gradient: ebiten.NewImageFromImage(radialImage(func(t float64) float64 { return 1 - t })),
		white:    base.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
	}
}

// radialImage renders a premultiplied white disc whose alpha at normalized
// radius t in [0,1] is falloff(t).
func radialImage(falloff func(t float64) float64) *image.RGBA {
	size := spriteRadius * 2
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := math.Hypot(float64(x)+0.5-spriteRadius, float64(y)+0.5-spriteRadius)
			t := d / spriteRadius
			if t > 1 {
				continue
			}
			a := uint8(math.Round(255 * math.Max(0, falloff(t))))
			img.SetRGBA(x, y, color.RGBA{a, a, a, a})
		}
	}
	return img
}

// Target sets the image subsequent calls draw onto.
func (s *Surface) Target(dst *ebiten.Image) {
	s.dst = dst
}

// Clear implements draw.Surface.
func (s *Surface) Clear() {
	if s.dst != nil {
		s.dst.Clear()
	}
}

// FillGlow implements draw.Surface.
//
// The clipped gradient alpha·(1 − d/glow) for d ≤ size is the sum of a flat disc
// at the rim value and a linear sprite spanning the rest.
func (s *Surface) FillGlow(x, y, size, glow float64, c colorful.Color, alpha float64) {
	if s.dst == nil || alpha <= 0 || size <= 0 {
		return
	}
	radius := size
	rim := 0.0
	if glow > 0 {
		radius = math.Min(size, glow)
		rim = alpha * math.Max(0, 1-size/glow)
	}
	s.drawSprite(s.disc, x, y, radius, c, rim)
	s.drawSprite(s.gradient, x, y, radius, c, alpha-rim)
}

func (s *Surface) drawSprite(sprite *ebiten.Image, x, y, radius float64, c colorful.Color, a float64) {
	if a <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-spriteRadius, -spriteRadius)
	op.GeoM.Scale(radius/spriteRadius, radius/spriteRadius)
	op.GeoM.Translate(x, y)
	op.ColorScale.Scale(float32(c.R*a), float32(c.G*a), float32(c.B*a), float32(a))
	op.Blend = ebiten.BlendLighter
	op.Filter = ebiten.FilterLinear
	s.dst.DrawImage(sprite, op)
}

// StrokePolyline implements draw.Surface.
func (s *Surface) StrokePolyline(points []draw.Point, c colorful.Color, alpha, width float64) {
	if s.dst == nil || len(points) < 2 || alpha <= 0 {
		return
	}

	var path vector.Path
	path.MoveTo(float32(points[0].X), float32(points[0].Y))
	for _, p := range points[1:] {
		path.LineTo(float32(p.X), float32(p.Y))
	}

	s.vertices, s.indices = path.AppendVerticesAndIndicesForStroke(s.vertices[:0], s.indices[:0], &vector.StrokeOptions{
		Width:    float32(width),
		LineJoin: vector.LineJoinRound,
		LineCap:  vector.LineCapRound,
	})
	for i := range s.vertices {
		s.vertices[i].SrcX = 1
		s.vertices[i].SrcY = 1
		s.vertices[i].ColorR = float32(c.R)
		s.vertices[i].ColorG = float32(c.G)
		s.vertices[i].ColorB = float32(c.B)
		s.vertices[i].ColorA = float32(alpha)
	}

	s.dst.DrawTriangles(s.vertices, s.indices, s.white, &ebiten.DrawTrianglesOptions{
		Blend:     ebiten.BlendLighter,
		AntiAlias: true,
	})
}
