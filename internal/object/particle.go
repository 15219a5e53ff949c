package object

import (
	"math"
	"sync"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/fireworks/internal/draw"
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a single decaying point of light.
type Particle struct {
	X, Y     float64 // Position
	VX, VY   float64 // Velocity per tick
	Size     float64 // Radius of the lit disc
	Glow     float64 // Radius at which the gradient reaches alpha 0
	Color    colorful.Color
	Friction float64 // Velocity multiplier per tick (1.0 = no drag)
	Gravity  float64 // Added to VY every tick
	Age      int     // Ticks lived
	Life     float64 // Age at which alpha reaches 0
	Alpha    float64 // max(0, 1 - Age/Life)
}

// ParticleConfig enumerates every particle option. Each Range is sampled
// independently per particle; a Fixed range pins the value.
type ParticleConfig struct {
	VX       Range
	VY       Range
	Size     Range
	Life     Range
	Glow     Range
	Friction float64
	Gravity  float64
	Color    *colorful.Color // nil picks from the palette
}

// DefaultParticleConfig returns the options used when an emitter does not override them.
func DefaultParticleConfig() ParticleConfig {
	return ParticleConfig{
		VX:       Range{Min: -1, Max: 1},
		VY:       Range{Min: -2, Max: -0.2},
		Size:     Range{Min: 1, Max: 4},
		Life:     Range{Min: 40, Max: 120},
		Glow:     Range{Min: 6, Max: 26},
		Friction: 0.985,
		Gravity:  0.03,
	}
}

// NewParticle creates a particle at (x, y) from the pool.
func NewParticle(x, y float64, cfg ParticleConfig, s Sampler, palette Palette) *Particle {
	p := particlePool.Get().(*Particle)
	p.X = x
	p.Y = y
	p.VX = cfg.VX.Sample(s)
	p.VY = cfg.VY.Sample(s)
	p.Size = cfg.Size.Sample(s)
	p.Life = cfg.Life.Sample(s)
	if cfg.Color != nil {
		p.Color = *cfg.Color
	} else {
		p.Color = palette.Pick(s)
	}
	p.Glow = cfg.Glow.Sample(s)
	p.Friction = cfg.Friction
	p.Gravity = cfg.Gravity
	p.Age = 0
	p.Alpha = 1
	return p
}

// Release returns the particle to the pool for reuse.
// Must only be called once the particle is no longer referenced.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// Alpha returns the opacity of a particle of the given life at the given age.
func Alpha(age int, life float64) float64 {
	if life <= 0 {
		return 0
	}
	return math.Max(0, 1-float64(age)/life)
}

// Update advances the particle one tick. Returns true once it is dead.
func (p *Particle) Update(_ UpdateContext) bool {
	p.VX *= p.Friction
	p.VY *= p.Friction
	p.VY += p.Gravity
	p.X += p.VX
	p.Y += p.VY
	p.Age++
	p.Alpha = Alpha(p.Age, p.Life)
	return p.Dead()
}

// Dead reports whether the particle has faded out completely.
func (p *Particle) Dead() bool {
	return p.Alpha <= 0
}

// Draw renders the particle as an additive radial glow. Dead particles draw nothing.
func (p *Particle) Draw(s draw.Surface) {
	if p.Alpha <= 0 {
		return
	}
	s.FillGlow(p.X, p.Y, p.Size, p.Glow, p.Color, p.Alpha)
}
