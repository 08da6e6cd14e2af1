// Package systems provides the particle mesh simulation: kinematics,
// population management, proximity links and density reconciliation.
package systems

import (
	"math"

	"github.com/pthm-cable/holomesh/components"
	"github.com/pthm-cable/holomesh/config"
)

// RandomSource yields uniform samples in [0, 1). *math/rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// Bounds is the surface extent particles are spawned over.
type Bounds struct {
	W, H float64
}

// Area returns W*H, treating negative extents as empty.
func (b Bounds) Area() float64 {
	if b.W <= 0 || b.H <= 0 {
		return 0
	}
	return b.W * b.H
}

// Particle is a copy of one particle's state.
type Particle struct {
	Pos  components.Position
	Vel  components.Velocity
	Look components.Appearance
}

// ParticleRules holds the spawn ranges and respawn margin.
type ParticleRules struct {
	MaxSpeed   float64 // Velocity per axis in [-MaxSpeed, MaxSpeed)
	EdgeMargin float64
	SizeMin    float64
	SizeMax    float64
	AlphaMin   float64
	AlphaMax   float64
}

// RulesFromConfig extracts particle rules from the loaded config.
func RulesFromConfig(cfg *config.Config) ParticleRules {
	p := cfg.Particles
	return ParticleRules{
		MaxSpeed:   p.MaxSpeed,
		EdgeMargin: p.EdgeMargin,
		SizeMin:    p.SizeMin,
		SizeMax:    p.SizeMax,
		AlphaMin:   p.AlphaMin,
		AlphaMax:   p.AlphaMax,
	}
}

// Reset re-randomizes every attribute of a particle.
func (r ParticleRules) Reset(rng RandomSource, b Bounds, pos *components.Position, vel *components.Velocity, look *components.Appearance) {
	pos.X = uniform(rng, 0, math.Max(b.W, 0))
	pos.Y = uniform(rng, 0, math.Max(b.H, 0))
	vel.X = uniform(rng, -r.MaxSpeed, r.MaxSpeed)
	vel.Y = uniform(rng, -r.MaxSpeed, r.MaxSpeed)
	look.Size = uniform(rng, r.SizeMin, r.SizeMax)
	look.Alpha = uniform(rng, r.AlphaMin, r.AlphaMax)
}

// Move advances a particle by its velocity. A particle that ends up past the
// edge margin on either axis is reset in place of the move; Move reports
// whether that happened.
func (r ParticleRules) Move(rng RandomSource, b Bounds, pos *components.Position, vel *components.Velocity, look *components.Appearance) bool {
	pos.X += vel.X
	pos.Y += vel.Y

	if r.InBounds(b, pos.X, pos.Y) {
		return false
	}
	r.Reset(rng, b, pos, vel, look)
	return true
}

// InBounds reports whether (x, y) lies within the surface extended by the edge margin.
func (r ParticleRules) InBounds(b Bounds, x, y float64) bool {
	m := r.EdgeMargin
	return x >= -m && x <= b.W+m && y >= -m && y <= b.H+m
}

// uniform samples [lo, hi). An empty range yields lo.
func uniform(rng RandomSource, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	v := lo + rng.Float64()*(hi-lo)
	// Rounding can land exactly on hi for samples just below 1
	if v >= hi {
		v = math.Nextafter(hi, lo)
	}
	return v
}
