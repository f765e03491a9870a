package world

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/solarlune/resolv"

	"gravityshot/player"
)

// Kind identifies what an entity is
type Kind int

const (
	KindPlayer Kind = iota
	KindPlanet
	KindGoal
)

// Collision tags carried by the resolv objects
const (
	TagPlayer = "player"
	TagPlanet = "planet"
	TagGoal   = "goal"
)

func (k Kind) tag() string {
	switch k {
	case KindPlanet:
		return TagPlanet
	case KindGoal:
		return TagGoal
	default:
		return TagPlayer
	}
}

// Entity is a circular body in the world. Planets and goals are static;
// players are dynamic and implement player.Body.
type Entity struct {
	Kind   Kind
	Radius float64

	pos     mgl64.Vec3
	vel     mgl64.Vec3
	mass    float64
	static  bool
	gravity bool

	destroyed bool

	object *resolv.Object
	world  *World
}

var _ player.Body = (*Entity)(nil)

func newEntity(kind Kind, pos mgl64.Vec3, radius, mass float64, static bool) *Entity {
	e := &Entity{
		Kind:   kind,
		Radius: radius,
		pos:    pos,
		mass:   mass,
		static: static,
	}
	e.object = resolv.NewObject(pos.X()-radius, pos.Y()-radius, 2*radius, 2*radius, kind.tag())
	e.object.Data = e
	return e
}

// Position returns the entity's position
func (e *Entity) Position() mgl64.Vec3 { return e.pos }

// Velocity returns the entity's velocity
func (e *Entity) Velocity() mgl64.Vec3 { return e.vel }

// Mass returns the entity's mass
func (e *Entity) Mass() float64 { return e.mass }

// Static reports whether the engine never moves this entity
func (e *Entity) Static() bool { return e.static }

// SetVelocity replaces the velocity. Static entities ignore it.
func (e *Entity) SetVelocity(v mgl64.Vec3) {
	if e.static {
		return
	}
	e.vel = v
}

// SetGravityEnabled switches the gravity field on or off for this entity
func (e *Entity) SetGravityEnabled(enabled bool) { e.gravity = enabled }

// GravityEnabled reports whether gravity acts on the entity
func (e *Entity) GravityEnabled() bool { return e.gravity }

// Destroy removes the entity from the simulation. Repeated calls are harmless.
func (e *Entity) Destroy() {
	if e.destroyed {
		return
	}
	e.destroyed = true
	if e.world != nil {
		e.world.remove(e)
	}
}

// Destroyed reports whether the entity has been removed
func (e *Entity) Destroyed() bool { return e.destroyed }

// Overlaps reports whether two entities' circles intersect in the play plane
func (e *Entity) Overlaps(other *Entity) bool {
	dx := e.pos.X() - other.pos.X()
	dy := e.pos.Y() - other.pos.Y()
	r := e.Radius + other.Radius
	return dx*dx+dy*dy < r*r
}

// syncObject moves the collision object to the entity's position
func (e *Entity) syncObject() {
	e.object.X = e.pos.X() - e.Radius
	e.object.Y = e.pos.Y() - e.Radius
	e.object.Update()
}

// categoryOf maps a collision object's tags onto the player's closed category set
func categoryOf(obj *resolv.Object) player.Category {
	switch {
	case obj.HasTags(TagPlanet):
		return player.Planet
	case obj.HasTags(TagGoal):
		return player.Goal
	default:
		return player.Other
	}
}
