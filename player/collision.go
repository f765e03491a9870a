package player

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Category classifies the other party of a collision. The engine boundary
// decides it; the core never compares tags.
type Category int

const (
	Other Category = iota
	Planet
	Goal
)

func (c Category) String() string {
	switch c {
	case Other:
		return "other"
	case Planet:
		return "planet"
	case Goal:
		return "goal"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// CollisionResponder ends the flight when the body hits a planet or the goal
type CollisionResponder struct {
	body    Body
	level   LevelLifecycle
	log     zerolog.Logger
	stopped bool
}

// NewCollisionResponder creates a responder for body. A nil level is replaced by a no-op.
func NewCollisionResponder(body Body, level LevelLifecycle, logger zerolog.Logger) *CollisionResponder {
	if level == nil {
		level = nopCollaborators{}
	}
	return &CollisionResponder{
		body:  body,
		level: level,
		log:   logger.With().Str("component", "collision").Logger(),
	}
}

// Stopped reports whether the flight has already been ended
func (r *CollisionResponder) Stopped() bool {
	return r.stopped
}

// OnCollision reacts to an authoritative collision event.
// Planet and Goal stop the flight and switch gravity off; a Planet also
// destroys the body. Other is ignored. Only the first stop has any effect.
func (r *CollisionResponder) OnCollision(other Category) {
	if other != Planet && other != Goal {
		return
	}
	if r.stopped || r.body.Destroyed() {
		r.log.Debug().Stringer("other", other).Msg("collision after stop ignored")
		return
	}

	r.stopped = true
	r.level.PlayerStopped(other)
	r.body.SetGravityEnabled(false)

	if other == Planet {
		r.body.Destroy()
	}

	r.log.Info().Stringer("other", other).Msg("player stopped")
}

// Reset re-arms the responder for a new body
func (r *CollisionResponder) Reset(body Body) {
	if body != nil {
		r.body = body
	}
	r.stopped = false
}
