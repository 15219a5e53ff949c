package draw

import (
	"fmt"
	"io"
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Canvas is a color drawing buffer with 2x vertical resolution using half-block characters.
// Colors accumulate additively per sub-pixel and are clamped when rendered.
// Supports scaling from logical coordinates to actual terminal pixels.
type Canvas struct {
	termWidth      int              // Actual terminal columns
	termHeight     int              // Actual terminal rows
	subPixelHeight int              // termHeight * 2
	pixels         []colorful.Color // Flat slice: [y * termWidth + x], additive light

	// Scaling from logical to pixel coordinates
	logicalWidth  float64 // Target/logical width
	logicalHeight float64 // Target/logical height
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// Offset for centering the render area when terminal is larger than max resolution.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	// Monochrome renders shade characters instead of truecolor escapes.
	monochrome bool

	renderBuf strings.Builder // Buffer for batching render output
}

// Compile-time check that Canvas is a Surface.
var _ Surface = (*Canvas)(nil)

// NewCanvas creates a canvas for the given terminal dimensions.
// The canvas has 2x vertical resolution (height*2 sub-pixels).
// No scaling is applied (1:1 mapping).
func NewCanvas(width, height int) *Canvas {
	return NewScaledCanvas(width, height, float64(width), float64(height*2))
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by the scene.
// termWidth/Height are the actual terminal dimensions.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth < 0 {
		termWidth = 0
	}
	if termHeight < 0 {
		termHeight = 0
	}
	subPixelHeight := termHeight * 2

	if termWidth != c.termWidth || termHeight != c.termHeight || c.pixels == nil {
		c.pixels = make([]colorful.Color, subPixelHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}

	c.scaleX = safeDiv(float64(termWidth), c.logicalWidth)
	c.scaleY = safeDiv(float64(subPixelHeight), c.logicalHeight)
}

// SetLogicalSize changes the logical coordinate space, keeping the terminal size.
func (c *Canvas) SetLogicalSize(width, height float64) {
	c.logicalWidth = width
	c.logicalHeight = height
	c.Resize(c.termWidth, c.termHeight)
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// SetMonochrome switches between truecolor and shade-character rendering.
func (c *Canvas) SetMonochrome(mono bool) {
	c.monochrome = mono
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// At returns the accumulated (unclamped) light at a sub-pixel.
func (c *Canvas) At(px, py int) colorful.Color {
	if px < 0 || px >= c.termWidth || py < 0 || py >= c.subPixelHeight {
		return colorful.Color{}
	}
	return c.pixels[py*c.termWidth+px]
}

// addPixel adds light to a pixel at actual terminal coordinates (no scaling).
func (c *Canvas) addPixel(x, y int, col colorful.Color, intensity float64) {
	if intensity <= 0 {
		return
	}
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		p := &c.pixels[y*c.termWidth+x]
		p.R += col.R * intensity
		p.G += col.G * intensity
		p.B += col.B * intensity
	}
}

// FillGlow implements Surface. The disc is sampled at sub-pixel centers; a disc
// smaller than one sub-pixel still lights the sub-pixel containing its center.
func (c *Canvas) FillGlow(x, y, size, glow float64, col colorful.Color, alpha float64) {
	if alpha <= 0 || c.scaleX == 0 || c.scaleY == 0 {
		return
	}

	cx := x * c.scaleX
	cy := y * c.scaleY
	rx := size * c.scaleX
	ry := size * c.scaleY

	lit := false
	for py := int(math.Floor(cy - ry)); py <= int(math.Ceil(cy+ry)); py++ {
		for px := int(math.Floor(cx - rx)); px <= int(math.Ceil(cx+rx)); px++ {
			// Distance from the glow center in logical units
			dx := (float64(px) + 0.5 - cx) / c.scaleX
			dy := (float64(py) + 0.5 - cy) / c.scaleY
			d := math.Hypot(dx, dy)
			if d > size {
				continue
			}
			c.addPixel(px, py, col, alpha*gradientStop(d, glow))
			lit = true
		}
	}

	if !lit {
		c.addPixel(int(math.Floor(cx)), int(math.Floor(cy)), col, alpha)
	}
}

// gradientStop is the two-stop radial falloff: 1 at the center, 0 at radius glow.
func gradientStop(d, glow float64) float64 {
	if glow <= 0 {
		return 1
	}
	return math.Max(0, 1-d/glow)
}

// StrokePolyline implements Surface. Terminal sub-pixels are far wider than any
// stroke, so width is ignored and each segment is one sub-pixel thick.
func (c *Canvas) StrokePolyline(points []Point, col colorful.Color, alpha, _ float64) {
	for i := 0; i+1 < len(points); i++ {
		// Shared joints are lit once
		c.drawLine(points[i], points[i+1], col, alpha, i > 0)
	}
}

// DrawLine adds a line of light using Bresenham's algorithm.
// Coordinates are in logical space and get scaled to pixels.
func (c *Canvas) DrawLine(p1, p2 Point, col colorful.Color, alpha float64) {
	c.drawLine(p1, p2, col, alpha, false)
}

func (c *Canvas) drawLine(p1, p2 Point, col colorful.Color, alpha float64, skipFirst bool) {
	x1 := int(math.Floor(p1.X * c.scaleX))
	y1 := int(math.Floor(p1.Y * c.scaleY))
	x2 := int(math.Floor(p2.X * c.scaleX))
	y2 := int(math.Floor(p2.Y * c.scaleY))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for first := true; ; first = false {
		if !(first && skipFirst) {
			c.addPixel(x1, y1, col, alpha)
		}

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// Render outputs the canvas to the writer using half-block characters.
// Unlit cells are skipped; the caller is expected to have cleared the screen.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.termWidth * c.termHeight * 8)

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := (row*2 + 1) * c.termWidth

		for col := 0; col < c.termWidth; col++ {
			top := c.pixels[topOffset+col].Clamped()
			bottom := c.pixels[bottomOffset+col].Clamped()
			topLit := lit(top)
			bottomLit := lit(bottom)
			if !topLit && !bottomLit {
				continue
			}

			fmt.Fprintf(&c.renderBuf, "\033[%d;%dH", row+1+c.offsetRow, col+1+c.offsetCol)

			if c.monochrome {
				_, _, lt := top.Hsl()
				_, _, lb := bottom.Hsl()
				c.renderBuf.WriteRune(ShadeLevel(2 * math.Max(lt, lb)))
				continue
			}

			switch {
			case topLit && bottomLit:
				writeColor(&c.renderBuf, 38, top)
				writeColor(&c.renderBuf, 48, bottom)
				c.renderBuf.WriteRune(BlockUpperHalf)
			case topLit:
				writeColor(&c.renderBuf, 38, top)
				c.renderBuf.WriteString("\033[49m")
				c.renderBuf.WriteRune(BlockUpperHalf)
			default:
				writeColor(&c.renderBuf, 38, bottom)
				c.renderBuf.WriteString("\033[49m")
				c.renderBuf.WriteRune(BlockLowerHalf)
			}
		}
	}
	c.renderBuf.WriteString("\033[0m")

	io.WriteString(w, c.renderBuf.String())
}

// lit reports whether a clamped color is visible in 8-bit output.
func lit(col colorful.Color) bool {
	r, g, b := col.RGB255()
	return r|g|b != 0
}

// writeColor writes a truecolor SGR sequence; layer is 38 (foreground) or 48 (background).
func writeColor(sb *strings.Builder, layer int, col colorful.Color) {
	r, g, b := col.RGB255()
	fmt.Fprintf(sb, "\033[%d;2;%d;%d;%dm", layer, r, g, b)
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the max render resolution on either axis.
func (c *Canvas) RenderBorder(w io.Writer) {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars
	if !hasH && !hasV {
		return
	}

	// Border positions (1-based terminal coordinates)
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder
	line := strings.Repeat("─", c.termWidth)

	if hasV {
		if hasH {
			fmt.Fprintf(&buf, "\033[%d;%dH┌%s┐", top, left, line)
			fmt.Fprintf(&buf, "\033[%d;%dH└%s┘", bottom, left, line)
		} else {
			fmt.Fprintf(&buf, "\033[%d;%dH%s", top, c.offsetCol+1, line)
			fmt.Fprintf(&buf, "\033[%d;%dH%s", bottom, c.offsetCol+1, line)
		}
	}

	if hasH {
		startRow, endRow := top+1, bottom
		if !hasV {
			startRow = c.offsetRow + 1
			endRow = c.offsetRow + c.termHeight + 1
		}
		for row := startRow; row < endRow; row++ {
			fmt.Fprintf(&buf, "\033[%d;%dH│\033[%d;%dH│", row, left, row, right)
		}
	}

	io.WriteString(w, buf.String())
}

// LogicalWidth returns the logical width (target resolution).
func (c *Canvas) LogicalWidth() float64 {
	return c.logicalWidth
}

// LogicalHeight returns the logical height (target resolution).
func (c *Canvas) LogicalHeight() float64 {
	return c.logicalHeight
}

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToTerminal converts logical coordinates to 1-based canvas position (col, row).
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Floor(x * c.scaleX))
	py := int(math.Floor(y * c.scaleY))
	return px + 1, py/2 + 1
}

// TerminalToLogical converts a 1-based terminal position (as reported by the
// mouse) to the logical coordinate at the center of that cell.
// The centering offset is removed first.
func (c *Canvas) TerminalToLogical(col, row int) (x, y float64) {
	px := float64(col-1-c.offsetCol) + 0.5
	py := float64(row-1-c.offsetRow)*2 + 1
	return safeDiv(px, c.scaleX), safeDiv(py, c.scaleY)
}

func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}
