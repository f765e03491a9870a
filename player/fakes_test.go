package player

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

type fakeBody struct {
	pos       mgl64.Vec3
	vel       mgl64.Vec3
	mass      float64
	gravity   bool
	destroyed bool

	setVelocityCalls int
	destroyCalls     int
}

func newFakeBody(pos mgl64.Vec3) *fakeBody {
	return &fakeBody{pos: pos, mass: 1}
}

func (b *fakeBody) Position() mgl64.Vec3 { return b.pos }
func (b *fakeBody) Velocity() mgl64.Vec3 { return b.vel }
func (b *fakeBody) Mass() float64        { return b.mass }

func (b *fakeBody) SetVelocity(v mgl64.Vec3) {
	b.vel = v
	b.setVelocityCalls++
}

func (b *fakeBody) SetGravityEnabled(enabled bool) { b.gravity = enabled }
func (b *fakeBody) GravityEnabled() bool           { return b.gravity }

func (b *fakeBody) Destroy() {
	b.destroyed = true
	b.destroyCalls++
}

func (b *fakeBody) Destroyed() bool { return b.destroyed }

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type fakeAim struct {
	point mgl64.Vec3
}

func (a *fakeAim) AimPoint() mgl64.Vec3 { return a.point }

type fakePointer struct {
	pressed, released bool
}

func (p *fakePointer) JustPressed() bool  { return p.pressed }
func (p *fakePointer) JustReleased() bool { return p.released }

type fakeGate struct {
	canShoot bool
	blocked  bool
}

func (g *fakeGate) CanShoot() bool     { return g.canShoot }
func (g *fakeGate) InputBlocked() bool { return g.blocked }

// recorder captures every presentation and lifecycle call
type recorder struct {
	paths     [][]mgl64.Vec3
	positions []mgl64.Vec3
	activated int
	stopped   []Category
	sounds    int
}

func (r *recorder) ShowPath(path []mgl64.Vec3) {
	r.paths = append(r.paths, append([]mgl64.Vec3(nil), path...))
}

func (r *recorder) ShowPosition(pos mgl64.Vec3) { r.positions = append(r.positions, pos) }
func (r *recorder) PlayerActivated()            { r.activated++ }
func (r *recorder) PlayerStopped(c Category)    { r.stopped = append(r.stopped, c) }
func (r *recorder) PlayLaunch()                 { r.sounds++ }

func (r *recorder) lastPath() []mgl64.Vec3 {
	if len(r.paths) == 0 {
		return nil
	}
	return r.paths[len(r.paths)-1]
}
