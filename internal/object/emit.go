package object

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Profile is the parameter set of one emission policy.
type Profile struct {
	Count   Range   `yaml:"count"`
	Speed   Range   `yaml:"speed"` // Bursts only; trails keep the default velocity
	Size    Range   `yaml:"size"`
	Glow    Range   `yaml:"glow"`
	Life    Range   `yaml:"life"`
	Gravity float64 `yaml:"gravity"`
}

// Profiles holds the four emission policies.
type Profiles struct {
	TrailSpark  Profile `yaml:"trail_spark"`
	RocketBurst Profile `yaml:"rocket_burst"`
	ClickBurst  Profile `yaml:"click_burst"`
	Ambient     Profile `yaml:"ambient"`
}

// DefaultProfiles returns the stock fireworks look.
func DefaultProfiles() Profiles {
	return Profiles{
		TrailSpark: Profile{
			Count:   Fixed(2),
			Size:    Range{Min: 1, Max: 2},
			Glow:    Range{Min: 6, Max: 12},
			Life:    Range{Min: 20, Max: 40},
			Gravity: 0.05,
		},
		RocketBurst: Profile{
			Count:   Range{Min: 40, Max: 70},
			Speed:   Range{Min: 1.5, Max: 5},
			Size:    Range{Min: 1.5, Max: 3.5},
			Glow:    Range{Min: 10, Max: 30},
			Life:    Range{Min: 80, Max: 160},
			Gravity: 0.03,
		},
		ClickBurst: Profile{
			Count:   Range{Min: 20, Max: 40},
			Speed:   Range{Min: 1.5, Max: 4},
			Size:    Range{Min: 1.2, Max: 3},
			Glow:    Range{Min: 10, Max: 30},
			Life:    Range{Min: 80, Max: 150},
			Gravity: 0.02,
		},
		Ambient: Profile{
			Count:   Fixed(2),
			Size:    Range{Min: 1, Max: 3},
			Glow:    Range{Min: 8, Max: 20},
			Life:    Range{Min: 40, Max: 80},
			Gravity: 0.01,
		},
	}
}

// SampleCount draws the batch size, rounded to a whole particle count.
func (p Profile) SampleCount(s Sampler) int {
	n := int(math.Round(p.Count.Sample(s)))
	if n < 0 {
		return 0
	}
	return n
}

// BurstAngle returns the direction of particle i in a burst of n: 2π·i/n.
func BurstAngle(i, n int) float64 {
	return 2 * math.Pi * float64(i) / float64(n)
}

// EmitTrail emits a trail batch at (x, y) with the default drifting velocity.
// A nil color picks a palette color per particle. Returns the number emitted.
func EmitTrail(x, y float64, color *colorful.Color, prof Profile, ctx UpdateContext) int {
	if ctx.Spawner == nil {
		return 0
	}
	n := prof.SampleCount(ctx.Sampler)
	for i := 0; i < n; i++ {
		cfg := DefaultParticleConfig()
		cfg.Size = prof.Size
		cfg.Glow = prof.Glow
		cfg.Life = prof.Life
		cfg.Gravity = prof.Gravity
		cfg.Color = color
		ctx.Spawner.Spawn(NewParticle(x, y, cfg, ctx.Sampler, ctx.Palette))
	}
	return n
}

// EmitBurst emits a radial burst at (x, y). Particles sit at exactly equal
// angular steps around the circle; only speed, size, glow and life vary.
// A nil color picks a palette color per particle. Returns the number emitted.
func EmitBurst(x, y float64, color *colorful.Color, prof Profile, ctx UpdateContext) int {
	if ctx.Spawner == nil {
		return 0
	}
	n := prof.SampleCount(ctx.Sampler)
	for i := 0; i < n; i++ {
		angle := BurstAngle(i, n)
		speed := prof.Speed.Sample(ctx.Sampler)

		cfg := DefaultParticleConfig()
		cfg.VX = Fixed(math.Cos(angle) * speed)
		cfg.VY = Fixed(math.Sin(angle) * speed)
		cfg.Size = prof.Size
		cfg.Glow = prof.Glow
		cfg.Life = prof.Life
		cfg.Gravity = prof.Gravity
		cfg.Color = color
		ctx.Spawner.Spawn(NewParticle(x, y, cfg, ctx.Sampler, ctx.Palette))
	}
	return n
}

// EmitAmbient emits the pointer-move trail.
func EmitAmbient(x, y float64, ctx UpdateContext) int {
	return EmitTrail(x, y, nil, ctx.Profiles.Ambient, ctx)
}

// EmitClick emits the pointer-click burst.
func EmitClick(x, y float64, ctx UpdateContext) int {
	return EmitBurst(x, y, nil, ctx.Profiles.ClickBurst, ctx)
}
