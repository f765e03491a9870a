package physics

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Errors returned by PredictPath for inputs it cannot simulate
var (
	ErrNonPositiveMass   = errors.New("mass must be positive")
	ErrNegativeStepCount = errors.New("step count must not be negative")
	ErrInvalidTimestep   = errors.New("timestep must be positive and finite")
	ErrInvalidMaxSpeed   = errors.New("max speed must be positive")
	ErrNilGravityField   = errors.New("gravity field is nil")
	ErrNonFiniteState    = errors.New("simulation produced a non-finite state")
)

// PredictPath forward-simulates a body from the given start state and returns
// stepCount positions. The first position is the start position itself; every
// following one is the result of one more Step, so the path matches what the
// engine will do with the same inputs frame for frame.
func PredictPath(start, velocity mgl64.Vec3, mass float64, stepCount int, dt, maxSpeed float64, field GravityField) ([]mgl64.Vec3, error) {
	return PredictPathInto(nil, start, velocity, mass, stepCount, dt, maxSpeed, field)
}

// PredictPathInto is PredictPath writing into dst's backing array when it is
// large enough. The returned slice is only valid until the next call with the
// same dst. On error nil is returned and dst's contents are unspecified.
func PredictPathInto(dst []mgl64.Vec3, start, velocity mgl64.Vec3, mass float64, stepCount int, dt, maxSpeed float64, field GravityField) ([]mgl64.Vec3, error) {
	if err := validatePrediction(mass, stepCount, dt, maxSpeed, field); err != nil {
		return nil, err
	}

	if cap(dst) < stepCount {
		dst = make([]mgl64.Vec3, 0, stepCount)
	}
	path := dst[:0]
	if stepCount == 0 {
		return path, nil
	}

	state := State{Position: start, Velocity: velocity}
	path = append(path, state.Position)

	for i := 1; i < stepCount; i++ {
		Step(&state, mass, dt, maxSpeed, field)
		if !IsFiniteVec(state.Position) || !IsFiniteVec(state.Velocity) {
			return nil, fmt.Errorf("step %d: %w", i, ErrNonFiniteState)
		}
		path = append(path, state.Position)
	}

	return path, nil
}

func validatePrediction(mass float64, stepCount int, dt, maxSpeed float64, field GravityField) error {
	if !(mass > 0) {
		return fmt.Errorf("predict path with mass %v: %w", mass, ErrNonPositiveMass)
	}
	if stepCount < 0 {
		return fmt.Errorf("predict path with %d steps: %w", stepCount, ErrNegativeStepCount)
	}
	if !(dt > 0) || math.IsInf(dt, 0) {
		return fmt.Errorf("predict path with dt %v: %w", dt, ErrInvalidTimestep)
	}
	if !(maxSpeed > 0) {
		return fmt.Errorf("predict path with max speed %v: %w", maxSpeed, ErrInvalidMaxSpeed)
	}
	if field == nil {
		return ErrNilGravityField
	}
	return nil
}
