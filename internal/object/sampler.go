package object

import (
	"math/rand/v2"
)

// Sampler draws uniform random numbers.
type Sampler interface {
	// Float returns a value in [min, max) when min < max. The bounds may be
	// given in either order.
	Float(min, max float64) float64
}

// RandSampler samples from a math/rand/v2 generator.
type RandSampler struct {
	rng *rand.Rand
}

// NewRandSampler returns a sampler seeded with seed. A zero seed picks a random one.
func NewRandSampler(seed uint64) *RandSampler {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &RandSampler{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Float implements Sampler.
func (s *RandSampler) Float(min, max float64) float64 {
	return min + s.rng.Float64()*(max-min)
}

// MidpointSampler always returns the middle of the requested range.
// It makes emission fully deterministic.
type MidpointSampler struct{}

// Float implements Sampler.
func (MidpointSampler) Float(min, max float64) float64 {
	return (min + max) / 2
}

// Range is an inclusive interval sampled uniformly.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Fixed returns a Range that always samples v.
func Fixed(v float64) Range {
	return Range{Min: v, Max: v}
}

// Sample draws a value from r. A degenerate range returns its bound without
// consulting the sampler.
func (r Range) Sample(s Sampler) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return s.Float(r.Min, r.Max)
}
