package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlpha(t *testing.T) {
	assert.Equal(t, 1.0, Alpha(0, 40))
	assert.Equal(t, 0.5, Alpha(20, 40))
	assert.Equal(t, 0.0, Alpha(40, 40))
	assert.Equal(t, 0.0, Alpha(55, 40))
	assert.Equal(t, 0.0, Alpha(0, 0), "zero life is dead immediately")
}

func TestParticleUpdate(t *testing.T) {
	p := &Particle{VX: 1, VY: 0, Friction: 0.5, Gravity: 0.1, Life: 10, Alpha: 1}

	dead := p.Update(UpdateContext{})

	assert.False(t, dead)
	assert.InDelta(t, 0.5, p.VX, 1e-12)
	assert.InDelta(t, 0.1, p.VY, 1e-12)
	assert.InDelta(t, 0.5, p.X, 1e-12)
	assert.InDelta(t, 0.1, p.Y, 1e-12)
	assert.Equal(t, 1, p.Age)
	assert.InDelta(t, 0.9, p.Alpha, 1e-12)
}

func TestParticleAlphaNeverIncreases(t *testing.T) {
	p := NewParticle(100, 100, DefaultParticleConfig(), NewRandSampler(7), DefaultPalette())

	prev := p.Alpha
	ticks := 0
	for !p.Update(UpdateContext{}) {
		require.LessOrEqual(t, p.Alpha, prev)
		prev = p.Alpha
		ticks++
		require.Less(t, ticks, 200, "particle never died")
	}
	assert.True(t, p.Dead())
	assert.Equal(t, 0.0, p.Alpha)
}

func TestParticleDiesAtLife(t *testing.T) {
	p := &Particle{Life: 40, Alpha: 1, Friction: 1}
	for i := 0; i < 20; i++ {
		p.Update(UpdateContext{})
	}
	assert.Equal(t, 0.5, p.Alpha)
	assert.False(t, p.Dead())

	for i := 0; i < 20; i++ {
		p.Update(UpdateContext{})
	}
	assert.True(t, p.Dead())
}

func TestParticleDrawSkipsDead(t *testing.T) {
	surface := &recordSurface{}

	live := &Particle{X: 3, Y: 4, Size: 2, Glow: 10, Alpha: 0.25}
	live.Draw(surface)
	dead := &Particle{X: 3, Y: 4, Size: 2, Glow: 10, Alpha: 0}
	dead.Draw(surface)

	require.Len(t, surface.glows, 1)
	assert.Equal(t, glowCall{X: 3, Y: 4, Size: 2, Glow: 10, Alpha: 0.25}, surface.glows[0])
}

func TestNewParticleDefaults(t *testing.T) {
	p := NewParticle(10, 20, DefaultParticleConfig(), MidpointSampler{}, DefaultPalette())

	assert.Equal(t, 10.0, p.X)
	assert.Equal(t, 20.0, p.Y)
	assert.Equal(t, 0.0, p.VX)
	assert.InDelta(t, -1.1, p.VY, 1e-12)
	assert.Equal(t, 2.5, p.Size)
	assert.Equal(t, 80.0, p.Life)
	assert.Equal(t, 16.0, p.Glow)
	assert.Equal(t, 0.985, p.Friction)
	assert.Equal(t, 0.03, p.Gravity)
	assert.Equal(t, 0, p.Age)
	assert.Equal(t, 1.0, p.Alpha)
	assert.Equal(t, DefaultPalette()[2], p.Color)
}

func TestNewParticleFixedColorSkipsPalette(t *testing.T) {
	c := DefaultPalette()[4]
	cfg := ParticleConfig{
		VX:    Fixed(1),
		VY:    Fixed(2),
		Size:  Fixed(3),
		Life:  Fixed(4),
		Glow:  Fixed(5),
		Color: &c,
	}

	p := NewParticle(0, 0, cfg, panicSampler{}, nil)

	assert.Equal(t, c, p.Color)
	assert.Equal(t, 1.0, p.VX)
	assert.Equal(t, 5.0, p.Glow)
}
