package draw

import (
	"bytes"
	"strings"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	white = colorful.Color{R: 1, G: 1, B: 1}
	red   = colorful.Color{R: 1}
)

func TestFillGlowCenterIntensity(t *testing.T) {
	c := NewCanvas(4, 2)

	c.FillGlow(1.5, 1.5, 0.6, 2, white, 0.5)

	assert.Equal(t, colorful.Color{R: 0.5, G: 0.5, B: 0.5}, c.At(1, 1))
	assert.Equal(t, colorful.Color{}, c.At(3, 3), "outside the disc")
}

func TestFillGlowFalloff(t *testing.T) {
	c := NewCanvas(8, 4)

	c.FillGlow(3.5, 3.5, 2, 2, white, 1)

	assert.InDelta(t, 1.0, c.At(3, 3).R, 1e-12)
	assert.InDelta(t, 0.5, c.At(4, 3).R, 1e-12, "one unit out of a glow of two")
	assert.Equal(t, 0.0, c.At(5, 3).R, "the rim is transparent")
}

func TestFillGlowTinyDiscLightsCenterPixel(t *testing.T) {
	c := NewCanvas(4, 2)

	c.FillGlow(1.2, 1.2, 0.1, 1, red, 0.5)

	assert.Equal(t, colorful.Color{R: 0.5}, c.At(1, 1))
}

func TestFillGlowIsAdditive(t *testing.T) {
	c := NewCanvas(4, 2)

	c.FillGlow(1.5, 1.5, 0.6, 2, white, 0.6)
	c.FillGlow(1.5, 1.5, 0.6, 2, white, 0.6)

	assert.InDelta(t, 1.2, c.At(1, 1).G, 1e-12)

	c.Clear()
	assert.Equal(t, colorful.Color{}, c.At(1, 1))
}

func TestFillGlowSkipsInvisible(t *testing.T) {
	c := NewCanvas(4, 2)
	c.FillGlow(1.5, 1.5, 1, 2, white, 0)
	c.FillGlow(-10, -10, 1, 2, white, 1)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			require.Equal(t, colorful.Color{}, c.At(x, y))
		}
	}
}

func TestStrokePolylineLightsJointsOnce(t *testing.T) {
	c := NewCanvas(10, 5)

	c.StrokePolyline([]Point{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 3}}, white, 0.5, 2)

	assert.Equal(t, 0.5, c.At(0, 0).R)
	assert.Equal(t, 0.5, c.At(3, 0).R)
	assert.Equal(t, 0.5, c.At(3, 3).R)
	assert.Equal(t, 0.5, c.At(3, 2).R)
	assert.Equal(t, 0.0, c.At(4, 1).R)
}

func TestRenderTopHalf(t *testing.T) {
	c := NewCanvas(2, 1)
	c.FillGlow(0.5, 0.5, 0.1, 1, red, 1)

	var buf bytes.Buffer
	c.Render(&buf)

	assert.Equal(t, "\033[1;1H\033[38;2;255;0;0m\033[49m▀\033[0m", buf.String())
}

func TestRenderBottomHalfWithOffset(t *testing.T) {
	c := NewCanvas(2, 1)
	c.SetOffset(3, 2)
	c.FillGlow(1.5, 1.5, 0.1, 1, red, 1)

	var buf bytes.Buffer
	c.Render(&buf)

	assert.Equal(t, "\033[3;5H\033[38;2;255;0;0m\033[49m▄\033[0m", buf.String())
}

func TestRenderClampsAccumulatedLight(t *testing.T) {
	c := NewCanvas(1, 1)
	for i := 0; i < 3; i++ {
		c.FillGlow(0.5, 0.5, 0.1, 1, white, 1)
		c.FillGlow(0.5, 1.5, 0.1, 1, red, 1)
	}

	var buf bytes.Buffer
	c.Render(&buf)

	assert.Equal(t, "\033[1;1H\033[38;2;255;255;255m\033[48;2;255;0;0m▀\033[0m", buf.String())
}

func TestRenderMonochrome(t *testing.T) {
	c := NewCanvas(1, 1)
	c.SetMonochrome(true)
	c.FillGlow(0.5, 0.5, 0.1, 1, white, 1)

	var buf bytes.Buffer
	c.Render(&buf)

	assert.Equal(t, "\033[1;1H█\033[0m", buf.String())
}

func TestTerminalToLogical(t *testing.T) {
	c := NewScaledCanvas(96, 30, 960, 600)

	x, y := c.TerminalToLogical(1, 1)
	assert.InDelta(t, 5.0, x, 1e-9)
	assert.InDelta(t, 10.0, y, 1e-9)

	c.SetOffset(2, 3)
	x, y = c.TerminalToLogical(3, 4)
	assert.InDelta(t, 5.0, x, 1e-9)
	assert.InDelta(t, 10.0, y, 1e-9)

	col, row := c.LogicalToTerminal(955, 595)
	assert.Equal(t, 96, col)
	assert.Equal(t, 30, row)
}

func TestResizeKeepsLogicalSize(t *testing.T) {
	c := NewScaledCanvas(96, 30, 960, 600)
	c.Resize(48, 15)

	assert.Equal(t, 48, c.TerminalWidth())
	assert.Equal(t, 15, c.TerminalHeight())
	assert.Equal(t, 960.0, c.LogicalWidth())
	assert.Equal(t, 600.0, c.LogicalHeight())

	c.Resize(-3, -1)
	assert.Equal(t, 0, c.TerminalWidth())
	c.FillGlow(10, 10, 5, 5, white, 1) // must not panic on an empty canvas
}

func TestShadeLevel(t *testing.T) {
	assert.Equal(t, ' ', ShadeLevel(0))
	assert.Equal(t, '░', ShadeLevel(0.01))
	assert.Equal(t, '▒', ShadeLevel(0.5))
	assert.Equal(t, '█', ShadeLevel(3))
}

func TestChunkWriterOffset(t *testing.T) {
	var buf bytes.Buffer
	cw := NewChunkWriter(&buf, 2, 1)

	cw.WriteAt(2, 2, "hi")
	cw.WriteAt(0, -4, "x")
	require.NoError(t, cw.Flush())

	assert.Equal(t, "\033[3;4Hhi\033[2;3Hx", buf.String())
}

// writeSizes records the length of every write.
type writeSizes []int

func (w *writeSizes) Write(p []byte) (int, error) {
	*w = append(*w, len(p))
	return len(p), nil
}

func TestChunkWriterFlushChunks(t *testing.T) {
	var sizes writeSizes
	cw := NewChunkWriter(&sizes, 0, 0)

	cw.WriteString(strings.Repeat("x", 2*maxChunkSize+10))
	require.NoError(t, cw.Flush())
	assert.Equal(t, writeSizes{maxChunkSize, maxChunkSize, 10}, sizes)

	sizes = nil
	require.NoError(t, cw.Flush())
	assert.Empty(t, sizes, "flush starts a new frame")
}

func TestRenderWritesOnce(t *testing.T) {
	c := NewScaledCanvas(80, 40, 80, 80)
	for y := 0.0; y < 80; y += 4 {
		for x := 0.0; x < 80; x += 4 {
			c.FillGlow(x+2, y+2, 2, 2, colorful.Color{R: 1, G: 0.5, B: 0.2}, 1)
		}
	}

	var sizes writeSizes
	c.Render(&sizes)
	require.Len(t, sizes, 1)
	assert.Greater(t, sizes[0], maxChunkSize)
}
