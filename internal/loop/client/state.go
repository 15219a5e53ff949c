package client

import (
	"time"

	"github.com/tomz197/fireworks/internal/draw"
	"github.com/tomz197/fireworks/internal/input"
)

// SessionState represents the current phase of a viewer session.
type SessionState int

const (
	SessionIntro    SessionState = iota // Title overlay over the live sky
	SessionWatching                     // Sky only, with HUD
	SessionShutdown                     // Server is shutting down
)

// ClientState holds per-session state. Each session has its own instance,
// managed by the Client.
type ClientState struct {
	Input         input.Input
	State         SessionState
	Paused        bool              // Freeze this viewer's picture; the shared sky keeps running
	termSizeFunc  draw.TermSizeFunc // Function to get terminal size
	Running       bool              // Client loop running
	delta         time.Duration     // Frame delta time (client-side)
	shutdownTimer float64           // Countdown before auto-disconnect on shutdown
	isInactive    bool              // Whether the session is in inactive warning state
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		State:   SessionIntro,
		Running: true,
	}
}
