package level

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gravityshot/physics"
	"gravityshot/player"
	"gravityshot/world"
)

func testLayout() Layout {
	return Layout{
		Planets: []Planet{
			{Position: mgl64.Vec3{300, 300, 0}, Radius: 30, Mass: 500},
			{Position: mgl64.Vec3{600, 200, 0}, Radius: 20, Mass: 200},
		},
		GoalPosition: mgl64.Vec3{900, 500, 0},
		GoalRadius:   25,
		Start:        mgl64.Vec3{50, 500, 0},
		PlayerRadius: 8,
		PlayerMass:   2,
	}
}

func newWorld() *world.World {
	return world.NewWorld(world.Settings{
		Width:           1000,
		Height:          1000,
		CellSize:        32,
		MaxSpeed:        100,
		GravityConstant: 10,
	}, zerolog.Nop())
}

func TestLayout_Build(t *testing.T) {
	w := newWorld()
	body, err := testLayout().Build(w, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, mgl64.Vec3{50, 500, 0}, body.Position())
	assert.Equal(t, 2.0, body.Mass())
	assert.False(t, body.GravityEnabled())

	kinds := map[world.Kind]int{}
	for _, e := range w.Entities() {
		kinds[e.Kind]++
	}
	assert.Equal(t, map[world.Kind]int{world.KindPlanet: 2, world.KindGoal: 1, world.KindPlayer: 1}, kinds)
}

func TestLayout_BuildRejectsInvalidPlanet(t *testing.T) {
	layout := testLayout()
	layout.Planets[1].Mass = 0

	_, err := layout.Build(newWorld(), zerolog.Nop())
	require.Error(t, err)
	assert.ErrorIs(t, err, world.ErrInvalidMass)
	assert.Contains(t, err.Error(), "planet 1")
}

func TestLayout_BuildRejectsInvalidGoal(t *testing.T) {
	layout := testLayout()
	layout.GoalRadius = 0

	_, err := layout.Build(newWorld(), zerolog.Nop())
	assert.ErrorIs(t, err, world.ErrInvalidRadius)
}

func TestLayout_FieldScript(t *testing.T) {
	layout := testLayout()
	layout.FieldScript = `function force(x, y, z, mass) { return [0, 3 * mass, 0]; }`

	w := newWorld()
	body, err := layout.Build(w, zerolog.Nop())
	require.NoError(t, err)

	launch := mgl64.Vec3{40, -30, 0}
	path, err := physics.PredictPath(body.Position(), launch, body.Mass(), 60, 0.02, w.Settings().MaxSpeed, w.Gravity())
	require.NoError(t, err)

	body.SetVelocity(launch)
	body.SetGravityEnabled(true)
	for i := 1; i < len(path); i++ {
		w.Step(0.02)
		require.Equal(t, path[i], body.Position(), "diverged at step %d", i)
	}
}

func TestLayout_BrokenFieldScript(t *testing.T) {
	layout := testLayout()
	layout.FieldScript = `function notForce() {}`

	_, err := layout.Build(newWorld(), zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field script")
}

type stepClock struct{ now time.Time }

func (c *stepClock) Now() time.Time { return c.now }

type aimAt mgl64.Vec3

func (a aimAt) AimPoint() mgl64.Vec3 { return mgl64.Vec3(a) }

type levelGate struct{ *Level }

func (levelGate) InputBlocked() bool { return false }

func TestLayout_RespawnAfterCrash(t *testing.T) {
	layout := testLayout()
	w := newWorld()
	body, err := layout.Build(w, zerolog.Nop())
	require.NoError(t, err)

	lvl := New(0, 0, zerolog.Nop())
	clock := &stepClock{now: time.Unix(0, 0)}
	launcher, err := player.NewLauncher(player.Settings{
		MaxSpeed:        100,
		MaxChargeTime:   time.Second,
		PredictionSteps: 10,
		FixedStep:       20 * time.Millisecond,
	}, player.Deps{
		Body:    body,
		Gravity: w.Gravity(),
		Aim:     aimAt(layout.Planets[0].Position),
		Clock:   clock,
		Level:   lvl,
		Gate:    levelGate{lvl},
	})
	require.NoError(t, err)
	responder := player.NewCollisionResponder(body, lvl, zerolog.Nop())

	fly := func(b *world.Entity) {
		launcher.OnPressStart()
		clock.now = clock.now.Add(time.Second)
		launcher.OnPressEnd()
		for i := 0; i < 500 && lvl.Phase() == InFlight; i++ {
			for _, c := range w.Step(0.02) {
				if c.Entity == b {
					responder.OnCollision(c.Category)
				}
			}
		}
	}

	fly(body)
	require.Equal(t, Crash, lvl.Outcome())
	require.True(t, body.Destroyed())
	require.True(t, lvl.Update(0))
	lvl.Reset()

	next, err := layout.SpawnPlayer(w)
	require.NoError(t, err)
	launcher.Reset(next)
	responder.Reset(next)
	assert.Equal(t, player.Idle, launcher.State())
	assert.False(t, responder.Stopped())

	fly(next)
	assert.Equal(t, Crash, lvl.Outcome())
	assert.Equal(t, 2, lvl.Shots())
	assert.True(t, next.Destroyed())

	w.Step(0.02)
	for _, e := range w.Entities() {
		assert.NotEqual(t, world.KindPlayer, e.Kind)
	}
}
