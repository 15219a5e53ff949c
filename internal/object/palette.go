package object

import (
	"errors"
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Palette is the fixed set of colors particles and rockets are drawn from.
type Palette []colorful.Color

// DefaultPalette returns the warm amber, coral, violet, cream and pink set.
func DefaultPalette() Palette {
	return Palette{
		rgb255(255, 189, 89),
		rgb255(255, 119, 97),
		rgb255(138, 79, 255),
		rgb255(255, 235, 180),
		rgb255(255, 82, 200),
	}
}

// ParsePalette parses hex colors such as "#ffbd59".
func ParsePalette(hexes []string) (Palette, error) {
	if len(hexes) == 0 {
		return nil, errors.New("palette is empty")
	}
	p := make(Palette, 0, len(hexes))
	for _, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("palette color %q: %w", h, err)
		}
		p = append(p, c)
	}
	return p, nil
}

// Pick returns a uniformly chosen color. An empty palette yields white.
func (p Palette) Pick(s Sampler) colorful.Color {
	if len(p) == 0 {
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	idx := int(math.Floor(s.Float(0, float64(len(p)))))
	if idx < 0 {
		idx = 0
	} else if idx >= len(p) {
		idx = len(p) - 1
	}
	return p[idx]
}

func rgb255(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}
