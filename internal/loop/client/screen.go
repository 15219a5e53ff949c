package client

import (
	"fmt"
	"time"

	"github.com/tomz197/fireworks/internal/draw"
	"github.com/tomz197/fireworks/internal/loop"
	"github.com/tomz197/fireworks/internal/loop/config"
	"github.com/tomz197/fireworks/internal/scene"
)

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// Unlit cells are skipped by Render, so the screen is cleared every frame.
	c.chunkWriter.WriteString(draw.SeqClear)

	// A paused viewer keeps re-rendering the last picture it pulled.
	if !c.state.Paused {
		c.server.View(func(sc *scene.Scene) {
			sc.Draw(c.canvas)
		})
	}

	c.canvas.Render(c.chunkWriter)
	c.canvas.RenderBorder(c.chunkWriter)
	c.drawUI()

	return c.chunkWriter.Flush()
}

// drawUI draws the overlay for the current session state.
func (c *Client) drawUI() {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if c.state.State == SessionShutdown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	stats := c.server.Stats()
	loop.DrawHUD(c.chunkWriter, c.canvas, loop.HUD{
		Rockets:   stats.Rockets,
		Particles: stats.Particles,
		Viewers:   stats.Viewers,
		Paused:    c.state.Paused,
	})

	if c.state.State == SessionIntro {
		c.drawIntroScreen(centerX, centerY)
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	cw := c.chunkWriter
	title := "INACTIVITY WARNING"
	cw.WriteAt(centerX-len(title)/2, centerY-2, title)

	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()),
	)
	cw.WriteAt(centerX-len(msg)/2, centerY, msg)

	hint := "Press any key to continue"
	cw.WriteAt(centerX-len(hint)/2, centerY+2, hint)
}

// drawIntroScreen draws the title over the live sky.
func (c *Client) drawIntroScreen(centerX, centerY int) {
	// ASCII art title (figlet "small" font)
	titleArt := []string{
		`  ___ ___ ___ _____      _____  ___ _  _____  `,
		` | __|_ _| _ \ __\ \    / / _ \| _ \ |/ / __| `,
		` | _| | ||   / _| \ \/\/ / (_) |   / ' <\__ \ `,
		` |_| |___|_|_\___| \_/\_/ \___/|_|_\_|\_\___/ `,
		`                                              `,
	}

	titleWidth := 0
	for _, line := range titleArt {
		if len(line) > titleWidth {
			titleWidth = len(line)
		}
	}

	cw := c.chunkWriter
	titleStartY := centerY - 6
	for i, line := range titleArt {
		cw.WriteAt(centerX-titleWidth/2, titleStartY+i, line)
	}

	subtitle := "~ One shared sky over SSH ~"
	cw.WriteAt(centerX-len(subtitle)/2, titleStartY+len(titleArt)+1, subtitle)

	controlLines := []string{
		"Mouse move . . .  Sparkle",
		"Click  . . . . . .  Burst",
		"SPACE  . . . . . . Launch",
		"C  . . . . . . . .  Clear",
		"P  . . . . . . . .  Pause",
		"Q  . . . . . . . . . Quit",
	}
	controlsY := titleStartY + len(titleArt) + 3
	for i, line := range controlLines {
		cw.WriteAt(centerX-len(line)/2, controlsY+i, line)
	}

	if time.Now().UnixMilli()/600%2 == 0 {
		prompt := ">>  Press any key to watch  <<"
		cw.WriteAt(centerX-len(prompt)/2, controlsY+len(controlLines)+1, prompt)
	}
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	cw := c.chunkWriter
	title := "SERVER SHUTTING DOWN"
	cw.WriteAt(centerX-len(title)/2, centerY-3, title)

	msg1 := "The server is restarting for maintenance."
	cw.WriteAt(centerX-len(msg1)/2, centerY-1, msg1)

	msg2 := "Please reconnect in a moment."
	cw.WriteAt(centerX-len(msg2)/2, centerY, msg2)

	remaining := int(c.state.shutdownTimer) + 1
	countdown := fmt.Sprintf("Disconnecting in %d seconds...", remaining)
	cw.WriteAt(centerX-len(countdown)/2, centerY+2, countdown)

	hint := "Press Q to disconnect now"
	cw.WriteAt(centerX-len(hint)/2, centerY+4, hint)
}
