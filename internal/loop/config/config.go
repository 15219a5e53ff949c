// Package config centralizes the fixed engine parameters.
package config

import "time"

// View resolution - the scene's coordinate space in logical units.
// Rockets climb a few hundred units, so the view is sized like a small window;
// rendering scales it down to the terminal.
const (
	ViewWidth  = 960
	ViewHeight = 600
)

// Max render resolution in terminal cells. Larger terminals get a centered,
// bordered render area.
const (
	MaxTermWidth  = 240
	MaxTermHeight = 75
)

// Launching
const (
	LaunchInterval = 1800 * time.Millisecond
)

// Frame rate. All motion is specified per tick, so this is also the simulation rate.
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
)

// Sessions
const (
	ShutdownDisplaySeconds   = 5.0   // Seconds to show shutdown message before auto-disconnect
	InactivityWarnUser       = 600.0 // Seconds
	InactivityDisconnectUser = 900.0 // Seconds
	MaxStimuliPerFrame       = 64    // Pointer events a session may queue per frame
)
