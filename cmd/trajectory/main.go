// Command trajectory charges and launches the player headlessly and compares
// the preview path with the flight the engine actually produces.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"gravityshot/config"
	"gravityshot/level"
	"gravityshot/logging"
	"gravityshot/player"
	"gravityshot/world"
)

// Sample is one simulated step
type Sample struct {
	Step      int
	Predicted mgl64.Vec3
	Actual    mgl64.Vec3
}

// Report is the outcome of one headless shot
type Report struct {
	Samples       []Sample
	MaxDivergence float64
	Outcome       level.Outcome
	Shots         int
}

// manualClock only moves when told to
type manualClock struct {
	now time.Time
}

func (c *manualClock) Now() time.Time { return c.now }

type fixedAim mgl64.Vec3

func (a fixedAim) AimPoint() mgl64.Vec3 { return mgl64.Vec3(a) }

// pathRecorder keeps the last non-empty preview
type pathRecorder struct {
	path []mgl64.Vec3
}

func (r *pathRecorder) ShowPath(path []mgl64.Vec3) {
	if len(path) > 0 {
		r.path = append(r.path[:0], path...)
	}
}

// Simulate builds the configured level, holds the pointer for charge while
// aiming at aim, releases, and flies for at most steps fixed steps.
func Simulate(cfg config.Config, charge time.Duration, aim mgl64.Vec3, steps int, logger zerolog.Logger) (Report, error) {
	w := world.NewWorld(cfg.WorldSettings(), logger)
	body, err := cfg.Layout().Build(w, logger)
	if err != nil {
		return Report{}, err
	}

	lvl := level.New(0, cfg.Level.FlightTimeout, logger)
	clock := &manualClock{now: time.Unix(0, 0)}
	recorder := &pathRecorder{}
	launcher, err := player.NewLauncher(cfg.LauncherSettings(), player.Deps{
		Body:    body,
		Gravity: w.Gravity(),
		Aim:     fixedAim(aim),
		Clock:   clock,
		Path:    recorder,
		Level:   lvl,
		Gate:    openGate{level: lvl},
		Logger:  &logger,
	})
	if err != nil {
		return Report{}, err
	}
	responder := player.NewCollisionResponder(body, lvl, logger)

	launcher.OnPressStart()
	clock.now = clock.now.Add(charge)
	launcher.FixedTick()
	launcher.OnPressEnd()

	step := cfg.Physics.FixedStep
	dt := step.Seconds()
	report := Report{Samples: make([]Sample, 0, steps)}
	for i := 1; i <= steps && lvl.Phase() == level.InFlight; i++ {
		for _, c := range w.Step(dt) {
			if c.Entity == body {
				responder.OnCollision(c.Category)
			}
		}
		lvl.CheckBounds(w, body)
		lvl.Update(step)

		if i >= len(recorder.path) {
			continue
		}
		s := Sample{Step: i, Predicted: recorder.path[i], Actual: body.Position()}
		report.Samples = append(report.Samples, s)
		if d := s.Predicted.Sub(s.Actual).Len(); d > report.MaxDivergence && !responder.Stopped() {
			report.MaxDivergence = d
		}
	}

	report.Outcome = lvl.Outcome()
	report.Shots = lvl.Shots()
	return report, nil
}

// openGate lets the level decide and never blocks input
type openGate struct {
	level *level.Level
}

func (g openGate) CanShoot() bool     { return g.level.CanShoot() }
func (g openGate) InputBlocked() bool { return false }

func run(args []string, out io.Writer) error {
	flags := pflag.NewFlagSet("trajectory", pflag.ContinueOnError)
	flags.SetOutput(out)
	config.RegisterFlags(flags)
	charge := flags.Duration("charge", time.Second, "how long the pointer is held")
	aimX := flags.Float64("aim-x", 0, "aim point x in world units (default: the goal)")
	aimY := flags.Float64("aim-y", 0, "aim point y in world units (default: the goal)")
	steps := flags.Int("steps", 0, "flight steps to simulate (default: launch.predictionSteps)")
	every := flags.Int("every", 10, "print every n-th step")
	if err := flags.Parse(args); err != nil {
		return err
	}

	path, _ := flags.GetString("config")
	cfg, err := config.Load(path, flags)
	if err != nil {
		return err
	}
	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogPretty)

	aim := cfg.Level.Goal.Position.Vec()
	if flags.Changed("aim-x") || flags.Changed("aim-y") {
		aim = mgl64.Vec3{*aimX, *aimY, aim.Z()}
	}
	if *steps <= 0 {
		*steps = cfg.Launch.PredictionSteps
	}
	if *every < 1 {
		*every = 1
	}

	report, err := Simulate(cfg, *charge, aim, *steps, logger)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%6s  %-24s  %-24s  %s\n", "step", "predicted", "actual", "divergence")
	for _, s := range report.Samples {
		if s.Step%*every != 0 && s.Step != len(report.Samples) {
			continue
		}
		fmt.Fprintf(out, "%6d  (%9.2f, %9.2f)    (%9.2f, %9.2f)    %.3g\n",
			s.Step, s.Predicted.X(), s.Predicted.Y(), s.Actual.X(), s.Actual.Y(), s.Predicted.Sub(s.Actual).Len())
	}
	fmt.Fprintf(out, "max divergence before contact: %g\n", report.MaxDivergence)
	fmt.Fprintf(out, "outcome: %s\n", report.Outcome)
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if err == pflag.ErrHelp {
			return
		}
		fmt.Fprintln(os.Stderr, "trajectory:", err)
		os.Exit(1)
	}
}
