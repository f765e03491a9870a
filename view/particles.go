package view

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// Particle represents a single particle of a burst
type Particle struct {
	pos      mgl64.Vec3 // world position
	vel      mgl64.Vec3 // velocity vector
	age      float64    // age in seconds
	lifetime float64    // total lifetime in seconds
	color    color.NRGBA
	size     float64
}

// IsAlive returns true if the particle is still alive
func (p *Particle) IsAlive() bool {
	return p.age < p.lifetime
}

// Position returns the particle's world position
func (p *Particle) Position() mgl64.Vec3 { return p.pos }

// Size returns the particle's radius in screen pixels
func (p *Particle) Size() float64 { return p.size }

// Color returns the particle's color faded by its age
func (p *Particle) Color() color.NRGBA {
	clr := p.color
	clr.A = uint8(float64(p.color.A) * (1 - p.age/p.lifetime))
	return clr
}

// ParticleSystem emits one-shot bursts, used when the player's flight ends
type ParticleSystem struct {
	particles    []Particle
	maxParticles int
	rng          *rand.Rand

	velocityMin float64 // minimum particle speed
	velocityMax float64 // maximum particle speed
	lifetimeMin float64 // minimum particle lifetime
	lifetimeMax float64 // maximum particle lifetime
	sizeMin     float64 // minimum particle size
	sizeMax     float64 // maximum particle size
}

// NewParticleSystem creates an empty particle system
func NewParticleSystem(maxParticles int) *ParticleSystem {
	return &ParticleSystem{
		particles:    make([]Particle, 0, maxParticles),
		maxParticles: maxParticles,
		rng:          rand.New(rand.NewSource(1)),
		velocityMin:  40,
		velocityMax:  160,
		lifetimeMin:  0.4,
		lifetimeMax:  1.1,
		sizeMin:      1.5,
		sizeMax:      3.5,
	}
}

// Burst emits count particles radially from pos in the XY plane
func (ps *ParticleSystem) Burst(pos mgl64.Vec3, count int, base color.NRGBA) {
	for i := 0; i < count && len(ps.particles) < ps.maxParticles; i++ {
		angle := ps.rng.Float64() * 2 * math.Pi
		speed := ps.velocityMin + ps.rng.Float64()*(ps.velocityMax-ps.velocityMin)
		ps.particles = append(ps.particles, Particle{
			pos:      pos,
			vel:      mgl64.Vec3{math.Cos(angle) * speed, math.Sin(angle) * speed, 0},
			lifetime: ps.lifetimeMin + ps.rng.Float64()*(ps.lifetimeMax-ps.lifetimeMin),
			color:    base,
			size:     ps.sizeMin + ps.rng.Float64()*(ps.sizeMax-ps.sizeMin),
		})
	}
}

// Update ages and moves the particles, dropping dead ones
func (ps *ParticleSystem) Update(dt float64) {
	live := ps.particles[:0]
	for _, p := range ps.particles {
		p.age += dt
		p.pos = p.pos.Add(p.vel.Mul(dt))
		if p.IsAlive() {
			live = append(live, p)
		}
	}
	ps.particles = live
}

// Clear removes every particle
func (ps *ParticleSystem) Clear() {
	ps.particles = ps.particles[:0]
}

// Particles returns the live particles. The slice is only valid until the next Update.
func (ps *ParticleSystem) Particles() []Particle {
	return ps.particles
}
