package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"gravityshot/view"
)

// drawParticles renders the live burst particles, already faded by age
func drawParticles(screen *ebiten.Image, ps *view.ParticleSystem, camera *view.Camera) {
	for _, p := range ps.Particles() {
		pos := p.Position()
		sx, sy := camera.WorldToScreen(pos.X(), pos.Y())
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(p.Size()), p.Color(), true)
	}
}
