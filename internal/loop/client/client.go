// Package client runs one SSH viewer of the shared sky: it forwards the
// session's pointer and keys to the server and renders the scene it reads back.
package client

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/tomz197/fireworks/internal/draw"
	"github.com/tomz197/fireworks/internal/input"
	"github.com/tomz197/fireworks/internal/loop"
	"github.com/tomz197/fireworks/internal/loop/config"
	"github.com/tomz197/fireworks/internal/loop/server"
)

// Client handles rendering and input for a single connection.
type Client struct {
	server       server.SkyServer
	handle       *server.ClientHandle
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	termSizeFunc draw.TermSizeFunc
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Monochrome   bool
}

// NewClient creates a new client connected to the given server.
func NewClient(ss server.SkyServer, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}

	state := NewClientState()
	state.termSizeFunc = termSizeFunc

	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := loop.ClampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, config.ViewWidth, config.ViewHeight)
	canvas.SetOffset(offsetCol, offsetRow)
	canvas.SetMonochrome(opts.Monochrome)

	return &Client{
		server:       ss,
		handle:       ss.RegisterClient(opts.Username),
		state:        state,
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		lastInput:    time.Now(),
		inputStream:  input.StartStream(r),
		termSizeFunc: termSizeFunc,
	}
}

// Run starts the client loop. Blocks until the session ends or the server stops.
func (c *Client) Run() error {
	draw.EnterSession(c.writer)
	defer draw.LeaveSession(c.writer)

	// Unregister from server on every exit path
	defer c.server.UnregisterClient(c.handle.ID)

	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.processInput()
		c.processServerEvents()
		c.updateScreen()

		if c.state.State == SessionShutdown {
			c.updateShutdownState()
		}

		if err := c.drawFrame(); err != nil {
			return fmt.Errorf("session %d: %w", c.handle.ID, err)
		}

		elapsed := time.Since(frameStart)
		if elapsed < config.TargetFrameTime {
			time.Sleep(config.TargetFrameTime - elapsed)
		}
	}

	return nil
}

// processInput reads input and forwards stimuli to the server.
func (c *Client) processInput() {
	c.state.Input = input.ReadInput(c.inputStream)
	in := c.state.Input

	if len(in.Pressed) > 0 || len(in.Pointer) > 0 {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if in.Quit {
		c.state.Running = false
		return
	}
	if c.state.State == SessionShutdown {
		return
	}

	if c.state.State == SessionIntro && (len(in.Pressed) > 0 || hasPress(in.Pointer)) {
		c.state.State = SessionWatching
	}
	if in.Pause {
		c.state.Paused = !c.state.Paused
	}

	for _, st := range loop.Stimuli(in, c.canvas) {
		c.server.SendStimulus(c.handle.ID, st)
	}
}

func hasPress(events []input.PointerEvent) bool {
	for _, ev := range events {
		if ev.Kind == input.PointerPress {
			return true
		}
	}
	return false
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventServerShutdown:
				c.state.State = SessionShutdown
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := loop.ClampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}
