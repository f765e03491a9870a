package world

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
	"github.com/solarlune/resolv"

	"gravityshot/physics"
	"gravityshot/player"
)

// Errors returned when an entity cannot be added
var (
	ErrInvalidMass   = errors.New("entity mass must be positive")
	ErrInvalidRadius = errors.New("entity radius must be positive")
)

// Settings configures the world
type Settings struct {
	// Width and Height bound the play area, starting at the origin
	Width, Height float64

	// CellSize is the size of each collision partition cell
	CellSize float64

	// MaxSpeed clamps every dynamic body's speed after the velocity update
	MaxSpeed float64

	// GravityConstant and Softening shape the planets' gravity field
	GravityConstant float64
	Softening       float64
}

// Contact is a collision between a dynamic entity and another entity found during a step
type Contact struct {
	Entity   *Entity
	Other    *Entity
	Category player.Category
}

// World is the authoritative simulation: it owns every body, steps the
// dynamic ones with physics.Step and reports contacts.
type World struct {
	settings Settings
	space    *resolv.Space
	field    physics.PlanetField
	extra    []physics.GravityField

	entities []*Entity
	contacts []Contact

	log zerolog.Logger
}

// NewWorld creates an empty world
func NewWorld(settings Settings, logger zerolog.Logger) *World {
	cell := int(settings.CellSize)
	if cell < 1 {
		cell = 1
	}
	return &World{
		settings: settings,
		space:    resolv.NewSpace(int(settings.Width), int(settings.Height), cell, cell),
		field: physics.PlanetField{
			G:         settings.GravityConstant,
			Softening: settings.Softening,
		},
		entities: make([]*Entity, 0, 16),
		log:      logger.With().Str("component", "world").Logger(),
	}
}

// Settings returns the world settings
func (w *World) Settings() Settings {
	return w.settings
}

// Gravity returns the field produced by the registered planets and any
// added fields. Callers that predict motion must fetch it after the level
// is fully populated.
func (w *World) Gravity() physics.GravityField {
	if len(w.extra) == 0 {
		return w.field
	}
	fields := make(physics.Fields, 0, len(w.extra)+1)
	fields = append(fields, w.field)
	return append(fields, w.extra...)
}

// AddField adds a field acting on every body with gravity enabled
func (w *World) AddField(f physics.GravityField) {
	w.extra = append(w.extra, f)
}

// Entities returns the live entities. The slice must not be modified.
func (w *World) Entities() []*Entity {
	return w.entities
}

// AddPlanet registers a static attracting body
func (w *World) AddPlanet(pos mgl64.Vec3, radius, mass float64) (*Entity, error) {
	if err := validateBody(radius, mass); err != nil {
		return nil, fmt.Errorf("add planet: %w", err)
	}
	e := newEntity(KindPlanet, pos, radius, mass, true)
	w.register(e)
	w.field.Attractors = append(w.field.Attractors, physics.Attractor{Position: pos, Mass: mass})
	return e, nil
}

// AddGoal registers the static target area
func (w *World) AddGoal(pos mgl64.Vec3, radius float64) (*Entity, error) {
	if !(radius > 0) {
		return nil, fmt.Errorf("add goal: %w", ErrInvalidRadius)
	}
	e := newEntity(KindGoal, pos, radius, 0, true)
	w.register(e)
	return e, nil
}

// AddPlayer registers a dynamic body at rest with gravity off
func (w *World) AddPlayer(pos mgl64.Vec3, radius, mass float64) (*Entity, error) {
	if err := validateBody(radius, mass); err != nil {
		return nil, fmt.Errorf("add player: %w", err)
	}
	e := newEntity(KindPlayer, pos, radius, mass, false)
	w.register(e)
	return e, nil
}

func validateBody(radius, mass float64) error {
	if !(radius > 0) {
		return ErrInvalidRadius
	}
	if !(mass > 0) {
		return ErrInvalidMass
	}
	return nil
}

func (w *World) register(e *Entity) {
	e.world = w
	w.space.Add(e.object)
	w.entities = append(w.entities, e)
}

// remove unregisters an entity from the collision space. It stays in the
// entity list until the next sweep so iteration during a step is safe.
func (w *World) remove(e *Entity) {
	w.space.Remove(e.object)
	w.log.Debug().Int("kind", int(e.Kind)).Msg("entity destroyed")
}

func (w *World) sweep() {
	live := w.entities[:0]
	for _, e := range w.entities {
		if !e.destroyed {
			live = append(live, e)
		}
	}
	for i := len(live); i < len(w.entities); i++ {
		w.entities[i] = nil
	}
	w.entities = live
}

// Step advances every dynamic entity by dt and returns the contacts found.
// The returned slice is reused by the next call.
func (w *World) Step(dt float64) []Contact {
	w.sweep()
	w.contacts = w.contacts[:0]
	gravity := w.Gravity()

	for _, e := range w.entities {
		if e.static || e.destroyed {
			continue
		}

		field := physics.NoGravity
		if e.gravity {
			field = gravity
		}

		state := physics.State{Position: e.pos, Velocity: e.vel}
		physics.Step(&state, e.mass, dt, w.settings.MaxSpeed, field)
		e.pos = state.Position
		e.vel = state.Velocity
		e.syncObject()

		w.collide(e)
	}

	return w.contacts
}

// collide finds the entities e touches. The resolv space narrows the search
// to shared cells; the circle test decides actual contact.
func (w *World) collide(e *Entity) {
	collision := e.object.Check(0, 0)
	if collision == nil {
		return
	}

	for _, obj := range collision.Objects {
		other, ok := obj.Data.(*Entity)
		if !ok || other == e || other.destroyed || !e.Overlaps(other) {
			continue
		}

		contact := Contact{Entity: e, Other: other, Category: categoryOf(obj)}
		w.contacts = append(w.contacts, contact)

		// Static bodies absorb the impact
		if other.static {
			e.vel = mgl64.Vec3{}
		}

		w.log.Debug().
			Stringer("category", contact.Category).
			Float64("x", e.pos.X()).
			Float64("y", e.pos.Y()).
			Msg("contact")
	}
}

// InBounds reports whether a position lies inside the play area
func (w *World) InBounds(pos mgl64.Vec3) bool {
	return pos.X() >= 0 && pos.X() <= w.settings.Width &&
		pos.Y() >= 0 && pos.Y() <= w.settings.Height
}
