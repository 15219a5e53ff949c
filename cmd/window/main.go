package main

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/spf13/pflag"

	"github.com/tomz197/fireworks/internal/config"
	"github.com/tomz197/fireworks/internal/draw/glow"
	"github.com/tomz197/fireworks/internal/loop"
	loopconfig "github.com/tomz197/fireworks/internal/loop/config"
	"github.com/tomz197/fireworks/internal/object"
	"github.com/tomz197/fireworks/internal/scene"
)

// Game drives the scene from ebiten's fixed-rate Update.
type Game struct {
	scene    *scene.Scene
	launcher *loop.Launcher
	surface  *glow.Surface
	logger   *log.Logger

	paused    bool
	showStats bool
	cursorX   int
	cursorY   int
	touchIDs  []ebiten.TouchID
}

func main() {
	configFile := pflag.StringP("config", "c", "", "optional config file (yaml, toml or json)")
	pflag.Parse()

	settings, err := config.Load(*configFile)
	if err != nil {
		config.NewLogger("info", "window").Fatal("load settings", "err", err)
	}
	logger := config.NewLogger(settings.LogLevel, "window")

	palette, profiles, err := config.LoadTuning(settings.TuningFile)
	if err != nil {
		logger.Fatal("load tuning", "err", err)
	}

	ebiten.SetWindowSize(loopconfig.ViewWidth, loopconfig.ViewHeight)
	ebiten.SetWindowTitle("Fireworks")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(loopconfig.TargetFPS)

	g := &Game{
		scene: scene.New(scene.Options{
			View:     object.NewScreen(loopconfig.ViewWidth, loopconfig.ViewHeight),
			Sampler:  object.NewRandSampler(settings.Seed),
			Palette:  palette,
			Profiles: &profiles,
		}),
		launcher: loop.NewLauncher(settings.LaunchInterval),
		surface:  glow.New(),
		logger:   logger,
	}

	logger.Info("opening window", "width", loopconfig.ViewWidth, "height", loopconfig.ViewHeight)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal("window error", "err", err)
	}
	g.launcher.Stop()
}

// Update reads input, applies stimuli and advances the scene one tick.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.showStats = !g.showStats
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.scene.Launch()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.scene.Clear()
	}

	g.pointerStimuli()
	g.touchStimuli()

	if g.paused {
		return nil
	}
	for n := g.launcher.Advance(loopconfig.TargetFrameTime); n > 0; n-- {
		g.scene.Launch()
	}
	g.scene.Step()
	return nil
}

// pointerStimuli emits an ambient trail when the cursor moves and a burst on
// a left click.
func (g *Game) pointerStimuli() {
	x, y := ebiten.CursorPosition()
	if x != g.cursorX || y != g.cursorY {
		g.cursorX, g.cursorY = x, y
		g.scene.Move(float64(x), float64(y))
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.scene.Click(float64(x), float64(y))
	}
}

// touchStimuli maps touchstart to a burst and touchmove to an ambient trail.
func (g *Game) touchStimuli() {
	g.touchIDs = inpututil.AppendJustPressedTouchIDs(g.touchIDs[:0])
	for _, id := range g.touchIDs {
		x, y := ebiten.TouchPosition(id)
		g.scene.Click(float64(x), float64(y))
	}

	g.touchIDs = ebiten.AppendTouchIDs(g.touchIDs[:0])
	for _, id := range g.touchIDs {
		if inpututil.TouchPressDuration(id) == 1 {
			continue
		}
		x, y := ebiten.TouchPosition(id)
		px, py := inpututil.TouchPositionInPreviousTick(id)
		if x != px || y != py {
			g.scene.Move(float64(x), float64(y))
		}
	}
}

// Draw renders the scene with additive glow sprites.
func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.Target(screen)
	g.scene.Draw(g.surface)

	if g.showStats {
		ebitenutil.DebugPrint(screen, fmt.Sprintf(
			"rockets: %d\nparticles: %d\nfps: %.0f\ntps: %.0f",
			g.scene.Rockets(), g.scene.Particles(), ebiten.ActualFPS(), ebiten.ActualTPS(),
		))
	}
	if g.paused {
		ebitenutil.DebugPrintAt(screen, "PAUSED", screen.Bounds().Dx()/2-18, screen.Bounds().Dy()/2)
	}
}

// Layout follows the window size; the scene's view is resized to match so
// launches span the whole window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	view := g.scene.View()
	if outsideWidth != view.Width || outsideHeight != view.Height {
		g.scene.Resize(object.NewScreen(outsideWidth, outsideHeight))
		g.logger.Debug("resized", "width", outsideWidth, "height", outsideHeight)
	}
	return outsideWidth, outsideHeight
}
