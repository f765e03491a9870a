package physics

import "github.com/go-gl/mathgl/mgl64"

// GravityField returns the instantaneous force acting on a body of the given
// mass at the given position. Implementations must be deterministic and free
// of side effects: the predictor calls them many times per tick.
type GravityField interface {
	Force(position mgl64.Vec3, mass float64) mgl64.Vec3
}

// GravityFieldFunc adapts a plain function to GravityField
type GravityFieldFunc func(position mgl64.Vec3, mass float64) mgl64.Vec3

// Force calls f(position, mass)
func (f GravityFieldFunc) Force(position mgl64.Vec3, mass float64) mgl64.Vec3 {
	return f(position, mass)
}

// ConstantField applies the same force everywhere, independent of mass.
// The zero value is a field with no force at all.
type ConstantField struct {
	Value mgl64.Vec3
}

// Force returns the constant force
func (c ConstantField) Force(mgl64.Vec3, float64) mgl64.Vec3 {
	return c.Value
}

// NoGravity is the field used for bodies whose gravity is switched off
var NoGravity GravityField = ConstantField{}

// Attractor is a point mass pulling other bodies towards it
type Attractor struct {
	Position mgl64.Vec3
	Mass     float64
}

// PlanetField is a softened Newtonian field produced by a set of attractors.
// Softening keeps the force finite when a body passes close to a center.
type PlanetField struct {
	G          float64
	Softening  float64
	Attractors []Attractor
}

// Force sums G*m*M/(r²+ε²) towards every attractor
func (p PlanetField) Force(position mgl64.Vec3, mass float64) mgl64.Vec3 {
	var force mgl64.Vec3
	eps2 := p.Softening * p.Softening

	for _, a := range p.Attractors {
		offset := a.Position.Sub(position)
		dir, ok := Direction(offset)
		if !ok {
			// Exactly at the center: the pull cancels out
			continue
		}
		dist2 := offset.Dot(offset) + eps2
		if dist2 == 0 {
			continue
		}
		force = force.Add(dir.Mul(p.G * mass * a.Mass / dist2))
	}

	return force
}

// Fields sums several fields, in order
type Fields []GravityField

// Force returns the sum of every field's force
func (fs Fields) Force(position mgl64.Vec3, mass float64) mgl64.Vec3 {
	var force mgl64.Vec3
	for _, f := range fs {
		force = force.Add(f.Force(position, mass))
	}
	return force
}
