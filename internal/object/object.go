// Package object implements the fireworks entities: particles, rockets and the
// emission policies that create particles.
package object

import (
	"github.com/tomz197/fireworks/internal/draw"
)

// Spawner accepts particles emitted during an update or by an external stimulus.
type Spawner interface {
	Spawn(p *Particle)
}

// UpdateContext provides everything an entity needs during one tick.
type UpdateContext struct {
	Screen   Screen   // Viewport in logical units
	Spawner  Spawner  // Destination for emitted particles
	Sampler  Sampler  // Source of every randomized parameter
	Palette  Palette  // Colors to pick from when none is given
	Profiles Profiles // Emission parameter profiles
}

// Screen represents viewport dimensions in logical units.
type Screen struct {
	Width   int
	Height  int
	CenterX int
	CenterY int
}

// NewScreen returns a Screen with its center filled in.
func NewScreen(width, height int) Screen {
	return Screen{
		Width:   width,
		Height:  height,
		CenterX: width / 2,
		CenterY: height / 2,
	}
}

// Object is a drawable entity advanced once per tick.
type Object interface {
	// Update advances the entity one tick. Returns true if it should be removed.
	Update(ctx UpdateContext) (remove bool)

	// Draw renders the entity onto the surface.
	Draw(s draw.Surface)
}

var (
	_ Object = (*Particle)(nil)
	_ Object = (*Rocket)(nil)
)
