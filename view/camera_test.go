package view

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

type fixedCursor struct{ x, y int }

func (c fixedCursor) Position() (int, int) { return c.x, c.y }

func fittedCamera(cursor Cursor) *Camera {
	c := NewCamera(800, 600, 10, cursor)
	c.Fit(1600, 1200)
	return c
}

func TestCamera_Fit(t *testing.T) {
	c := fittedCamera(fixedCursor{})

	assert.Equal(t, 800.0, c.X)
	assert.Equal(t, 600.0, c.Y)
	assert.Equal(t, 0.5, c.Zoom)

	// World corners land on the screen corners
	sx, sy := c.WorldToScreen(0, 0)
	assert.Equal(t, 0.0, sx)
	assert.Equal(t, 0.0, sy)
	sx, sy = c.WorldToScreen(1600, 1200)
	assert.Equal(t, 800.0, sx)
	assert.Equal(t, 600.0, sy)
}

func TestCamera_FitKeepsAspect(t *testing.T) {
	c := NewCamera(800, 600, 10, fixedCursor{})
	c.Fit(1600, 400)

	assert.Equal(t, 0.5, c.Zoom)
	_, sy := c.WorldToScreen(0, 0)
	assert.Equal(t, 200.0, sy)
}

func TestCamera_ScreenToWorldInvertsWorldToScreen(t *testing.T) {
	c := fittedCamera(fixedCursor{})

	sx, sy := c.WorldToScreen(100, 250)
	assert.Equal(t, 50.0, sx)
	assert.Equal(t, 125.0, sy)

	wx, wy := c.ScreenToWorld(sx, sy)
	assert.Equal(t, 100.0, wx)
	assert.Equal(t, 250.0, wy)
}

func TestCamera_AimPointOnPlayPlane(t *testing.T) {
	c := fittedCamera(fixedCursor{50, 125})
	assert.Equal(t, mgl64.Vec3{100, 250, 0}, c.AimPoint())

	c.Z = 5
	assert.Equal(t, mgl64.Vec3{100, 250, 15}, c.AimPoint())
}
