package player

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"

	"gravityshot/physics"
)

// LaunchState is the charge/launch phase of a controllable body
type LaunchState int

const (
	Idle LaunchState = iota
	Charging
	Launched
)

func (s LaunchState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Charging:
		return "charging"
	case Launched:
		return "launched"
	default:
		return fmt.Sprintf("LaunchState(%d)", int(s))
	}
}

// ErrMissingDependency is returned by NewLauncher when a required collaborator is nil
var ErrMissingDependency = errors.New("missing launcher dependency")

// Settings holds the launch tuning shared by the preview and the commit
type Settings struct {
	// MaxSpeed is both the full-charge launch speed and the flight speed clamp
	MaxSpeed float64

	// MaxChargeTime is the hold duration that gives a full charge
	MaxChargeTime time.Duration

	// PredictionSteps is the number of samples in every preview path
	PredictionSteps int

	// FixedStep is the engine's fixed simulation timestep
	FixedStep time.Duration
}

// Deps are the collaborators a Launcher talks to. Body, Gravity, Aim and
// Clock are required; the rest default to no-ops and an always-open gate.
type Deps struct {
	Body      Body
	Gravity   physics.GravityField
	Aim       AimSource
	Clock     Clock
	Pointer   Pointer
	Path      PathDisplay
	Indicator PositionIndicator
	Level     LevelLifecycle
	Audio     LaunchAudio
	Gate      Gate
	Logger    *zerolog.Logger
}

// Launcher turns a timed pointer hold into a launch velocity.
// It runs on two scheduler callbacks: FixedTick for the preview and
// PresentationTick for input polling. Neither is reentrant.
type Launcher struct {
	settings Settings

	body      Body
	gravity   physics.GravityField
	aim       AimSource
	clock     Clock
	pointer   Pointer
	path      PathDisplay
	indicator PositionIndicator
	level     LevelLifecycle
	audio     LaunchAudio
	gate      Gate
	log       zerolog.Logger

	state       LaunchState
	chargeStart time.Time

	// Last valid aim direction seen while charging
	lastDir mgl64.Vec3
	hasDir  bool

	// Prediction buffer reused across ticks
	preview []mgl64.Vec3
}

// NewLauncher creates an idle launcher
func NewLauncher(settings Settings, deps Deps) (*Launcher, error) {
	switch {
	case deps.Body == nil:
		return nil, fmt.Errorf("%w: body", ErrMissingDependency)
	case deps.Gravity == nil:
		return nil, fmt.Errorf("%w: gravity field", ErrMissingDependency)
	case deps.Aim == nil:
		return nil, fmt.Errorf("%w: aim source", ErrMissingDependency)
	case deps.Clock == nil:
		return nil, fmt.Errorf("%w: clock", ErrMissingDependency)
	}

	nop := nopCollaborators{}
	l := &Launcher{
		settings:  settings,
		body:      deps.Body,
		gravity:   deps.Gravity,
		aim:       deps.Aim,
		clock:     deps.Clock,
		pointer:   deps.Pointer,
		path:      deps.Path,
		indicator: deps.Indicator,
		level:     deps.Level,
		audio:     deps.Audio,
		gate:      deps.Gate,
		log:       zerolog.Nop(),
		state:     Idle,
		preview:   make([]mgl64.Vec3, 0, settings.PredictionSteps),
	}
	if l.pointer == nil {
		l.pointer = nop
	}
	if l.path == nil {
		l.path = nop
	}
	if l.indicator == nil {
		l.indicator = nop
	}
	if l.level == nil {
		l.level = nop
	}
	if l.audio == nil {
		l.audio = nop
	}
	if l.gate == nil {
		l.gate = nop
	}
	if deps.Logger != nil {
		l.log = deps.Logger.With().Str("component", "launcher").Logger()
	}

	return l, nil
}

// State returns the current launch state
func (l *Launcher) State() LaunchState {
	return l.state
}

// ChargeElapsed returns how long the current charge has been held, zero when not charging
func (l *Launcher) ChargeElapsed() time.Duration {
	if l.state != Charging {
		return 0
	}
	elapsed := l.clock.Now().Sub(l.chargeStart)
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// ChargeRatio returns the current charge in [0, 1]
func (l *Launcher) ChargeRatio() float64 {
	return physics.ChargeRatio(l.ChargeElapsed().Seconds(), l.settings.MaxChargeTime.Seconds())
}

// OnPressStart begins charging. It is ignored unless the launcher is idle and
// the gate lets the player act.
func (l *Launcher) OnPressStart() {
	if l.state != Idle {
		l.log.Debug().Stringer("state", l.state).Msg("press start ignored")
		return
	}
	if !l.gate.CanShoot() {
		l.log.Debug().Msg("press start ignored: player cannot shoot")
		return
	}

	l.chargeStart = l.clock.Now()
	l.state = Charging
	l.log.Debug().Time("start", l.chargeStart).Msg("charging")
}

// FixedTick recomputes and publishes the preview path while charging
func (l *Launcher) FixedTick() {
	if l.state != Charging {
		return
	}

	velocity := l.launchVelocity(l.ChargeElapsed())
	path, err := physics.PredictPathInto(
		l.preview,
		l.body.Position(),
		velocity,
		l.body.Mass(),
		l.settings.PredictionSteps,
		l.settings.FixedStep.Seconds(),
		l.settings.MaxSpeed,
		l.gravity,
	)
	if err != nil {
		l.log.Error().Err(err).Msg("trajectory prediction failed")
		l.path.ShowPath(nil)
		return
	}

	l.preview = path
	l.path.ShowPath(path)
}

// OnPressEnd commits the charge: the launch velocity is applied to the body,
// gravity is switched on and the level is told the player is in flight.
// Calls while not charging are ignored, so a body launches at most once.
func (l *Launcher) OnPressEnd() {
	if l.state != Charging {
		l.log.Debug().Stringer("state", l.state).Msg("press end ignored")
		return
	}

	l.path.ShowPath(nil)

	elapsed := l.ChargeElapsed()
	if elapsed > l.settings.MaxChargeTime {
		elapsed = l.settings.MaxChargeTime
	}
	velocity := l.launchVelocity(elapsed)

	l.state = Launched
	l.body.SetVelocity(velocity)
	l.body.SetGravityEnabled(true)
	l.level.PlayerActivated()
	l.audio.PlayLaunch()

	l.log.Info().
		Dur("charge", elapsed).
		Float64("speed", velocity.Len()).
		Msg("launched")
}

// PresentationTick publishes the body position and, when the gate is open,
// feeds pointer transitions into the state machine
func (l *Launcher) PresentationTick() {
	l.indicator.ShowPosition(l.body.Position())

	if !l.gate.CanShoot() || l.gate.InputBlocked() {
		return
	}
	if l.pointer.JustPressed() {
		l.OnPressStart()
	}
	if l.pointer.JustReleased() {
		l.OnPressEnd()
	}
}

// Reset returns the launcher to Idle for a fresh attempt with a new body
func (l *Launcher) Reset(body Body) {
	if body != nil {
		l.body = body
	}
	l.state = Idle
	l.chargeStart = time.Time{}
	l.hasDir = false
	l.lastDir = mgl64.Vec3{}
	l.path.ShowPath(nil)
}

// launchVelocity computes the launch velocity for the given charge. A
// degenerate aim (on top of the body) reuses the last valid direction.
func (l *Launcher) launchVelocity(elapsed time.Duration) mgl64.Vec3 {
	pos := l.body.Position()
	aim := l.aim.AimPoint()

	if dir, ok := physics.Direction(aim.Sub(pos)); ok {
		l.lastDir = dir
		l.hasDir = true
	} else if l.hasDir {
		aim = pos.Add(l.lastDir)
	}

	return physics.ComputeLaunchVelocity(
		pos,
		aim,
		elapsed.Seconds(),
		l.settings.MaxSpeed,
		l.settings.MaxChargeTime.Seconds(),
	)
}
