// Package scene owns the live rockets and particles and runs the per-frame
// update, draw and cull pass.
package scene

import (
	"github.com/tomz197/fireworks/internal/draw"
	"github.com/tomz197/fireworks/internal/object"
)

// Options configures a Scene. Zero values fall back to the defaults.
type Options struct {
	View     object.Screen
	Sampler  object.Sampler
	Palette  object.Palette
	Profiles *object.Profiles
}

// Scene holds the two entity collections.
//
// Stimuli (Launch, Move, Click) only append; Frame mutates in place and then
// compacts. The caller must not run a stimulus concurrently with Frame.
type Scene struct {
	rockets   []*object.Rocket
	particles []*object.Particle

	view     object.Screen
	sampler  object.Sampler
	palette  object.Palette
	profiles object.Profiles
}

var _ object.Spawner = (*Scene)(nil)

// New creates an empty scene.
func New(opts Options) *Scene {
	s := &Scene{
		view:     opts.View,
		sampler:  opts.Sampler,
		palette:  opts.Palette,
		profiles: object.DefaultProfiles(),
	}
	if s.sampler == nil {
		s.sampler = object.NewRandSampler(0)
	}
	if len(s.palette) == 0 {
		s.palette = object.DefaultPalette()
	}
	if opts.Profiles != nil {
		s.profiles = *opts.Profiles
	}
	return s
}

// Spawn adds a particle. Implements object.Spawner.
func (s *Scene) Spawn(p *object.Particle) {
	s.particles = append(s.particles, p)
}

// AddRocket adds an already constructed rocket.
func (s *Scene) AddRocket(r *object.Rocket) {
	s.rockets = append(s.rockets, r)
}

func (s *Scene) updateContext() object.UpdateContext {
	return object.UpdateContext{
		Screen:   s.view,
		Spawner:  s,
		Sampler:  s.sampler,
		Palette:  s.palette,
		Profiles: s.profiles,
	}
}

// Frame runs one animation frame: clear the surface, update and draw every
// rocket (dropping exploded or offscreen ones), update and draw every
// particle, then sweep the dead particles. A nil surface skips drawing.
func (s *Scene) Frame(surface draw.Surface) {
	if surface != nil {
		surface.Clear()
	}
	ctx := s.updateContext()

	kept := s.rockets[:0] // reuse backing array
	for _, r := range s.rockets {
		remove := r.Update(ctx)
		if surface != nil {
			r.Draw(surface)
		}
		if !remove {
			kept = append(kept, r)
		}
	}
	clear(s.rockets[len(kept):])
	s.rockets = kept

	// Particles spawned by rockets above are updated in this same frame.
	for _, p := range s.particles {
		p.Update(ctx)
		if surface != nil {
			p.Draw(surface)
		}
	}

	s.sweep()
}

// sweep removes dead particles in a single retain pass.
func (s *Scene) sweep() {
	kept := s.particles[:0]
	for _, p := range s.particles {
		if p.Dead() {
			p.Release()
			continue
		}
		kept = append(kept, p)
	}
	clear(s.particles[len(kept):])
	s.particles = kept
}

// Step advances one frame without drawing.
func (s *Scene) Step() {
	s.Frame(nil)
}

// Draw renders the current state without advancing it.
func (s *Scene) Draw(surface draw.Surface) {
	surface.Clear()
	for _, r := range s.rockets {
		r.Draw(surface)
	}
	for _, p := range s.particles {
		p.Draw(surface)
	}
}

// Launch spawns one rocket from below the viewport.
func (s *Scene) Launch() *object.Rocket {
	r := object.NewRocket(s.view, s.sampler, s.palette)
	s.AddRocket(r)
	return r
}

// Move emits the ambient pointer trail at (x, y). Returns the particles emitted.
func (s *Scene) Move(x, y float64) int {
	return object.EmitAmbient(x, y, s.updateContext())
}

// Click emits a pointer burst at (x, y). Returns the particles emitted.
func (s *Scene) Click(x, y float64) int {
	return object.EmitClick(x, y, s.updateContext())
}

// Clear drops every rocket and particle.
func (s *Scene) Clear() {
	for _, p := range s.particles {
		p.Release()
	}
	clear(s.particles)
	s.particles = s.particles[:0]
	clear(s.rockets)
	s.rockets = s.rockets[:0]
}

// Resize updates the viewport used for launches and the offscreen check.
func (s *Scene) Resize(view object.Screen) {
	s.view = view
}

// View returns the current viewport.
func (s *Scene) View() object.Screen {
	return s.view
}

// Rockets returns the number of live rockets.
func (s *Scene) Rockets() int {
	return len(s.rockets)
}

// Particles returns the number of live particles.
func (s *Scene) Particles() int {
	return len(s.particles)
}
