package player

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Body is the controllable rigid body as exposed by the physics engine.
// The engine owns its state; the player core reads snapshots and writes the
// velocity exactly once, when a launch is committed.
type Body interface {
	Position() mgl64.Vec3
	Velocity() mgl64.Vec3
	Mass() float64

	// SetVelocity replaces the velocity instantaneously (not an accumulating force)
	SetVelocity(v mgl64.Vec3)

	SetGravityEnabled(enabled bool)
	GravityEnabled() bool

	// Destroy removes the body from the simulation
	Destroy()
	Destroyed() bool
}

// AimSource yields the world-space point the player is aiming at.
// Screen to world projection at the fixed camera distance happens behind it.
type AimSource interface {
	AimPoint() mgl64.Vec3
}

// Pointer reports edge-triggered pointer button transitions for the current frame
type Pointer interface {
	JustPressed() bool
	JustReleased() bool
}

// PathDisplay shows the predicted path. An empty path clears it.
// The slice is reused by the caller once ShowPath returns, so implementations
// that keep it must copy it.
type PathDisplay interface {
	ShowPath(path []mgl64.Vec3)
}

// PositionIndicator shows the body's current position
type PositionIndicator interface {
	ShowPosition(pos mgl64.Vec3)
}

// LevelLifecycle receives the level-relevant player notifications
type LevelLifecycle interface {
	PlayerActivated()
	PlayerStopped(cause Category)
}

// LaunchAudio plays the launch sound. Fire and forget.
type LaunchAudio interface {
	PlayLaunch()
}

// Gate holds the polled predicates deciding whether input is processed
type Gate interface {
	// CanShoot reports whether the player may currently act
	CanShoot() bool
	// InputBlocked reports whether a UI element is swallowing input
	InputBlocked() bool
}

// Clock supplies the current time for charge timing
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock
type SystemClock struct{}

// Now returns time.Now()
func (SystemClock) Now() time.Time { return time.Now() }

type nopCollaborators struct{}

func (nopCollaborators) ShowPath([]mgl64.Vec3)   {}
func (nopCollaborators) ShowPosition(mgl64.Vec3) {}
func (nopCollaborators) PlayerActivated()        {}
func (nopCollaborators) PlayerStopped(Category)  {}
func (nopCollaborators) PlayLaunch()             {}
func (nopCollaborators) CanShoot() bool          { return true }
func (nopCollaborators) InputBlocked() bool      { return false }
func (nopCollaborators) JustPressed() bool       { return false }
func (nopCollaborators) JustReleased() bool      { return false }
