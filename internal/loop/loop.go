// Package loop drives the scene from a terminal: input, stimuli, frame, render.
package loop

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/tomz197/fireworks/internal/draw"
	"github.com/tomz197/fireworks/internal/input"
	"github.com/tomz197/fireworks/internal/loop/config"
	"github.com/tomz197/fireworks/internal/object"
	"github.com/tomz197/fireworks/internal/scene"
)

// Options configures the local loop.
type Options struct {
	TermSizeFunc   draw.TermSizeFunc
	Sampler        object.Sampler
	Palette        object.Palette
	Profiles       *object.Profiles
	LaunchInterval time.Duration
	Monochrome     bool
}

// Run starts the local fireworks loop with the Input → Stimuli → Frame → Render cycle.
// It returns when the user quits or the input stream closes.
func Run(r *bufio.Reader, w io.Writer, opts Options) error {
	sizeFunc := opts.TermSizeFunc
	if sizeFunc == nil {
		sizeFunc = draw.DefaultTermSizeFunc
	}

	sc := scene.New(scene.Options{
		View:     object.NewScreen(config.ViewWidth, config.ViewHeight),
		Sampler:  opts.Sampler,
		Palette:  opts.Palette,
		Profiles: opts.Profiles,
	})
	launcher := NewLauncher(opts.LaunchInterval)
	defer launcher.Stop()

	stream := input.StartStream(r)

	draw.EnterSession(w)
	defer draw.LeaveSession(w)

	termWidth, termHeight, err := sizeFunc()
	if err != nil {
		return fmt.Errorf("query terminal size: %w", err)
	}
	renderWidth, renderHeight, offsetCol, offsetRow := ClampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, config.ViewWidth, config.ViewHeight)
	canvas.SetOffset(offsetCol, offsetRow)
	canvas.SetMonochrome(opts.Monochrome)
	cw := draw.NewChunkWriter(w, offsetCol, offsetRow)

	paused := false
	lastTime := time.Now()

	for {
		frameStart := time.Now()
		delta := frameStart.Sub(lastTime)
		lastTime = frameStart

		// ===== INPUT PHASE =====
		in := input.ReadInput(stream)
		if in.Quit {
			break
		}
		if in.Pause {
			paused = !paused
		}

		if tw, th, err := sizeFunc(); err == nil {
			resizeCanvas(canvas, cw, tw, th)
		}

		// ===== STIMULI =====
		for _, st := range Stimuli(in, canvas) {
			Apply(sc, st)
		}

		// ===== FRAME =====
		if paused {
			sc.Draw(canvas)
		} else {
			for n := launcher.Advance(delta); n > 0; n-- {
				sc.Launch()
			}
			sc.Frame(canvas)
		}

		// ===== RENDER =====
		cw.WriteString(draw.SeqClear)
		canvas.Render(cw)
		canvas.RenderBorder(cw)
		DrawHUD(cw, canvas, HUD{Rockets: sc.Rockets(), Particles: sc.Particles(), Paused: paused})
		if err := cw.Flush(); err != nil {
			return fmt.Errorf("write frame: %w", err)
		}

		// ===== FRAME TIMING =====
		elapsed := time.Since(frameStart)
		if elapsed < config.TargetFrameTime {
			time.Sleep(config.TargetFrameTime - elapsed)
		}
	}

	return nil
}

// resizeCanvas applies the clamped terminal size to the canvas and writer.
// Returns true if the render area changed.
func resizeCanvas(canvas *draw.Canvas, cw *draw.ChunkWriter, termWidth, termHeight int) bool {
	renderWidth, renderHeight, offsetCol, offsetRow := ClampTermSize(termWidth, termHeight)
	changed := renderWidth != canvas.TerminalWidth() || renderHeight != canvas.TerminalHeight() ||
		offsetCol != canvas.OffsetCol() || offsetRow != canvas.OffsetRow()

	canvas.Resize(renderWidth, renderHeight)
	canvas.SetOffset(offsetCol, offsetRow)
	cw.SetOffset(offsetCol, offsetRow)
	return changed
}

// HUD is the overlay shown on top of the sky.
type HUD struct {
	Rockets   int
	Particles int
	Viewers   int // 0 hides the viewer count
	Paused    bool
}

const helpText = "click: burst  space: launch  c: clear  p: pause  q: quit"

// DrawHUD writes the status line and help text in canvas coordinates.
func DrawHUD(cw *draw.ChunkWriter, canvas *draw.Canvas, hud HUD) {
	width := canvas.TerminalWidth()
	height := canvas.TerminalHeight()

	status := fmt.Sprintf("rockets: %d  particles: %d", hud.Rockets, hud.Particles)
	if hud.Viewers > 0 {
		status += fmt.Sprintf("  viewers: %d", hud.Viewers)
	}
	cw.WriteAt(2, height, status)

	if len(status)+len(helpText)+4 <= width {
		cw.WriteAt(width-len(helpText), height, helpText)
	}

	if hud.Paused {
		title := "PAUSED"
		cw.WriteAt(width/2-len(title)/2, height/2, title)
	}
}
