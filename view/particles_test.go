package view

import (
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orange = color.NRGBA{255, 120, 40, 255}

func TestParticleSystem_BurstRespectsCapacity(t *testing.T) {
	ps := NewParticleSystem(8)
	ps.Burst(mgl64.Vec3{10, 20, 0}, 5, orange)
	ps.Burst(mgl64.Vec3{10, 20, 0}, 5, orange)

	require.Len(t, ps.Particles(), 8)
	for _, p := range ps.Particles() {
		assert.Equal(t, mgl64.Vec3{10, 20, 0}, p.Position())
		assert.Equal(t, orange, p.Color())
		assert.GreaterOrEqual(t, p.Size(), 1.5)
		assert.LessOrEqual(t, p.Size(), 3.5)
	}
}

func TestParticleSystem_UpdateMovesAndFades(t *testing.T) {
	origin := mgl64.Vec3{100, 100, 0}
	ps := NewParticleSystem(64)
	ps.Burst(origin, 32, orange)

	ps.Update(0.1)

	require.Len(t, ps.Particles(), 32)
	for _, p := range ps.Particles() {
		moved := p.Position().Sub(origin)
		assert.GreaterOrEqual(t, moved.Len(), 4.0-1e-9)
		assert.LessOrEqual(t, moved.Len(), 16.0+1e-9)
		assert.Zero(t, moved.Z())
		assert.Less(t, p.Color().A, orange.A)
	}
}

func TestParticleSystem_DropsDeadParticles(t *testing.T) {
	ps := NewParticleSystem(64)
	ps.Burst(mgl64.Vec3{}, 16, orange)

	ps.Update(0.3)
	assert.Len(t, ps.Particles(), 16)

	ps.Update(1)
	assert.Empty(t, ps.Particles())
}

func TestParticleSystem_Clear(t *testing.T) {
	ps := NewParticleSystem(64)
	ps.Burst(mgl64.Vec3{}, 16, orange)
	ps.Clear()
	assert.Empty(t, ps.Particles())

	ps.Burst(mgl64.Vec3{}, 4, orange)
	assert.Len(t, ps.Particles(), 4)
}
