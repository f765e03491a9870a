// Package view maps the world onto the screen and keeps the purely visual
// state drawn on top of it. Nothing here touches the graphics backend.
package view

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Cursor reports the pointer position in screen pixels
type Cursor interface {
	Position() (int, int)
}

// Camera represents the viewport into the world. It looks down the +Z axis
// at the play plane from Distance units away.
type Camera struct {
	X, Y   float64 // Camera position in world coordinates
	Z      float64 // Camera depth, the play plane is at Z+Distance
	Zoom   float64 // Zoom level
	Width  float64 // Viewport width
	Height float64 // Viewport height

	// Distance is the fixed depth at which the cursor is projected into the world
	Distance float64

	cursor Cursor
}

// NewCamera creates a new camera at the given distance from the play plane
func NewCamera(width, height, distance float64, cursor Cursor) *Camera {
	return &Camera{
		Z:        -distance,
		Zoom:     1.0,
		Width:    width,
		Height:   height,
		Distance: distance,
		cursor:   cursor,
	}
}

// Fit centers the camera on a worldW x worldH area and zooms so it fills the viewport
func (c *Camera) Fit(worldW, worldH float64) {
	c.X = worldW / 2
	c.Y = worldH / 2
	c.Zoom = math.Min(c.Width/worldW, c.Height/worldH)
}

// WorldToScreen converts world coordinates to screen coordinates
func (c *Camera) WorldToScreen(wx, wy float64) (float64, float64) {
	sx := (wx-c.X)*c.Zoom + c.Width/2
	sy := (wy-c.Y)*c.Zoom + c.Height/2
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates
func (c *Camera) ScreenToWorld(sx, sy float64) (float64, float64) {
	wx := (sx-c.Width/2)/c.Zoom + c.X
	wy := (sy-c.Height/2)/c.Zoom + c.Y
	return wx, wy
}

// AimPoint projects the cursor onto the play plane
func (c *Camera) AimPoint() mgl64.Vec3 {
	sx, sy := c.cursor.Position()
	wx, wy := c.ScreenToWorld(float64(sx), float64(sy))
	return mgl64.Vec3{wx, wy, c.Z + c.Distance}
}
