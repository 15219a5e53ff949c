package loop

import (
	"github.com/tomz197/fireworks/internal/draw"
	"github.com/tomz197/fireworks/internal/input"
	"github.com/tomz197/fireworks/internal/loop/config"
	"github.com/tomz197/fireworks/internal/scene"
)

// StimulusKind identifies an external event applied to the scene between frames.
type StimulusKind int

const (
	StimulusMove   StimulusKind = iota // Ambient trail at (X, Y)
	StimulusClick                      // Burst at (X, Y)
	StimulusLaunch                     // Launch a rocket now
	StimulusClear                      // Drop every rocket and particle
)

// Stimulus is an external event in scene coordinates.
type Stimulus struct {
	Kind StimulusKind
	X, Y float64
}

// Stimuli converts one frame of input into scene stimuli. Pointer positions
// are mapped from terminal cells to logical coordinates; positions outside the
// render area are dropped.
func Stimuli(in input.Input, canvas *draw.Canvas) []Stimulus {
	var out []Stimulus
	for _, ev := range in.Pointer {
		if !insideCanvas(canvas, ev.Col, ev.Row) {
			continue
		}
		x, y := canvas.TerminalToLogical(ev.Col, ev.Row)
		switch ev.Kind {
		case input.PointerMove:
			out = append(out, Stimulus{Kind: StimulusMove, X: x, Y: y})
		case input.PointerPress:
			out = append(out, Stimulus{Kind: StimulusClick, X: x, Y: y})
		}
	}
	if in.Launch {
		out = append(out, Stimulus{Kind: StimulusLaunch})
	}
	if in.Clear {
		out = append(out, Stimulus{Kind: StimulusClear})
	}
	return out
}

func insideCanvas(canvas *draw.Canvas, col, row int) bool {
	c := col - 1 - canvas.OffsetCol()
	r := row - 1 - canvas.OffsetRow()
	return c >= 0 && c < canvas.TerminalWidth() && r >= 0 && r < canvas.TerminalHeight()
}

// Apply delivers a stimulus to the scene. Returns the particles emitted.
func Apply(sc *scene.Scene, st Stimulus) int {
	switch st.Kind {
	case StimulusMove:
		return sc.Move(st.X, st.Y)
	case StimulusClick:
		return sc.Click(st.X, st.Y)
	case StimulusLaunch:
		sc.Launch()
	case StimulusClear:
		sc.Clear()
	}
	return 0
}

// ClampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func ClampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}
