package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// State is the kinematic state of a body for simulation.
// The authoritative engine and the trajectory predictor both advance a State
// through Step, so a preview can never drift from the real flight.
type State struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
}

// Step advances the state by one fixed timestep using semi-implicit Euler:
// the velocity is updated from the force, clamped to maxSpeed, and the clamped
// velocity is then used for the position update.
func Step(s *State, mass, dt, maxSpeed float64, field GravityField) {
	force := field.Force(s.Position, mass)
	acc := mgl64.Vec3{force[0] / mass, force[1] / mass, force[2] / mass}

	s.Velocity = ClampLength(s.Velocity.Add(acc.Mul(dt)), maxSpeed)
	s.Position = s.Position.Add(s.Velocity.Mul(dt))
}

// ClampLength scales v down to maxLength if it is longer, keeping its direction
func ClampLength(v mgl64.Vec3, maxLength float64) mgl64.Vec3 {
	length := v.Len()
	if length > maxLength {
		return v.Mul(maxLength / length)
	}
	return v
}

// Direction returns the unit vector of v. ok is false for zero-length or
// non-finite vectors, which have no direction.
func Direction(v mgl64.Vec3) (dir mgl64.Vec3, ok bool) {
	length := v.Len()
	if length == 0 || !isFinite(length) {
		return mgl64.Vec3{}, false
	}
	return v.Mul(1 / length), true
}

// IsFiniteVec reports whether every component of v is a finite number
func IsFiniteVec(v mgl64.Vec3) bool {
	return isFinite(v[0]) && isFinite(v[1]) && isFinite(v[2])
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
