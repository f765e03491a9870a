package level

import (
	"time"

	"github.com/rs/zerolog"

	"gravityshot/player"
	"gravityshot/world"
)

// Phase is where the current attempt stands
type Phase int

const (
	Ready Phase = iota
	InFlight
	Stopped
)

func (p Phase) String() string {
	switch p {
	case Ready:
		return "ready"
	case InFlight:
		return "in-flight"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Outcome is how the last shot ended
type Outcome int

const (
	NoOutcome Outcome = iota
	Success
	Crash
	Lost
	TimedOut
)

func (o Outcome) String() string {
	switch o {
	case NoOutcome:
		return "none"
	case Success:
		return "success"
	case Crash:
		return "crash"
	case Lost:
		return "lost"
	case TimedOut:
		return "timed-out"
	default:
		return "unknown"
	}
}

// Level tracks one level's attempts. It receives the player's lifecycle
// notifications and decides when the player may shoot and when the level
// has to be rebuilt.
type Level struct {
	phase   Phase
	outcome Outcome
	shots   int

	restartDelay time.Duration
	remaining    time.Duration

	// Zero disables the flight timeout
	flightTimeout time.Duration
	flying        time.Duration

	log zerolog.Logger
}

// New creates a level in the Ready phase. A flight still going after
// flightTimeout ends as TimedOut; zero or less never times out.
func New(restartDelay, flightTimeout time.Duration, logger zerolog.Logger) *Level {
	if restartDelay < 0 {
		restartDelay = 0
	}
	if flightTimeout < 0 {
		flightTimeout = 0
	}
	return &Level{
		restartDelay:  restartDelay,
		flightTimeout: flightTimeout,
		log:           logger.With().Str("component", "level").Logger(),
	}
}

// Phase returns where the current attempt stands
func (l *Level) Phase() Phase { return l.phase }

// Outcome returns how the last flight ended, NoOutcome until one has
func (l *Level) Outcome() Outcome { return l.outcome }

// Shots returns the number of launches since the level was last completed
func (l *Level) Shots() int { return l.shots }

// CanShoot reports whether the player may start a launch
func (l *Level) CanShoot() bool { return l.phase == Ready }

// PlayerActivated marks the start of a flight
func (l *Level) PlayerActivated() {
	if l.phase != Ready {
		l.log.Debug().Stringer("phase", l.phase).Msg("activation ignored")
		return
	}
	l.phase = InFlight
	l.flying = 0
	l.shots++
	l.log.Info().Int("shot", l.shots).Msg("player launched")
}

// PlayerStopped ends the flight with the outcome matching the cause
func (l *Level) PlayerStopped(cause player.Category) {
	switch cause {
	case player.Goal:
		l.stop(Success)
	case player.Planet:
		l.stop(Crash)
	default:
		l.log.Debug().Stringer("cause", cause).Msg("stop ignored")
	}
}

// PlayerLost ends the flight of a player that left the play area
func (l *Level) PlayerLost() {
	l.stop(Lost)
}

// CheckBounds ends the flight of body once it leaves w's play area. Gravity
// is switched off so the lost body drifts instead of falling back in.
// It returns true when the flight was ended.
func (l *Level) CheckBounds(w *world.World, body *world.Entity) bool {
	if l.phase != InFlight || w.InBounds(body.Position()) {
		return false
	}
	body.SetGravityEnabled(false)
	l.PlayerLost()
	return true
}

func (l *Level) stop(outcome Outcome) {
	if l.phase != InFlight {
		l.log.Debug().Stringer("phase", l.phase).Stringer("outcome", outcome).Msg("stop ignored")
		return
	}
	l.phase = Stopped
	l.outcome = outcome
	l.remaining = l.restartDelay
	l.log.Info().Stringer("outcome", outcome).Int("shots", l.shots).Msg("player stopped")
}

// Update advances the flight timeout and the restart countdown. It returns
// true once the level should be rebuilt; the caller then calls Reset.
func (l *Level) Update(dt time.Duration) bool {
	switch l.phase {
	case InFlight:
		l.flying += dt
		if l.flightTimeout > 0 && l.flying >= l.flightTimeout {
			l.stop(TimedOut)
		}
		return false
	case Stopped:
		l.remaining -= dt
		return l.remaining <= 0
	default:
		return false
	}
}

// Reset returns the level to Ready. A completed level starts counting shots
// from zero again; a failed one keeps the count.
func (l *Level) Reset() {
	if l.outcome == Success {
		l.shots = 0
	}
	l.phase = Ready
	l.outcome = NoOutcome
	l.remaining = 0
	l.flying = 0
	l.log.Debug().Int("shots", l.shots).Msg("level reset")
}
