package level

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"

	"gravityshot/script"
	"gravityshot/world"
)

// Planet is an attracting obstacle
type Planet struct {
	Position mgl64.Vec3
	Radius   float64
	Mass     float64
}

// Layout is the static arrangement of a level and where the player starts
type Layout struct {
	Planets []Planet

	GoalPosition mgl64.Vec3
	GoalRadius   float64

	Start        mgl64.Vec3
	PlayerRadius float64
	PlayerMass   float64

	// FieldScript is optional JavaScript whose force adds to the planets' pull
	FieldScript string
}

// Build populates w with the layout and returns the player's body.
// Field script failures during flight are reported through logger.
func (l Layout) Build(w *world.World, logger zerolog.Logger) (*world.Entity, error) {
	for i, p := range l.Planets {
		if _, err := w.AddPlanet(p.Position, p.Radius, p.Mass); err != nil {
			return nil, fmt.Errorf("planet %d: %w", i, err)
		}
	}
	if _, err := w.AddGoal(l.GoalPosition, l.GoalRadius); err != nil {
		return nil, err
	}
	if l.FieldScript != "" {
		field, err := script.NewField(l.FieldScript, logger)
		if err != nil {
			return nil, fmt.Errorf("field script: %w", err)
		}
		w.AddField(field)
	}
	return l.SpawnPlayer(w)
}

// SpawnPlayer adds a fresh player body at the start position
func (l Layout) SpawnPlayer(w *world.World) (*world.Entity, error) {
	return w.AddPlayer(l.Start, l.PlayerRadius, l.PlayerMass)
}
