package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"gravityshot/level"
	"gravityshot/player"
	"gravityshot/script"
	"gravityshot/world"
)

// EnvPrefix prefixes every environment override, e.g. GRAVITYSHOT_PHYSICS_MAXSPEED
const EnvPrefix = "GRAVITYSHOT"

// Point is a position in world units
type Point struct {
	X float64 `mapstructure:"x"`
	Y float64 `mapstructure:"y"`
	Z float64 `mapstructure:"z"`
}

// Vec returns the point as a vector
func (p Point) Vec() mgl64.Vec3 {
	return mgl64.Vec3{p.X, p.Y, p.Z}
}

// AudioConfig holds sound settings
type AudioConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	Volume  float64 `mapstructure:"volume"`
}

// ScreenConfig holds the window size in pixels
type ScreenConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// WorldConfig holds the play area
type WorldConfig struct {
	// Width and Height of the play area in world units
	Width  float64 `mapstructure:"width"`
	Height float64 `mapstructure:"height"`

	// CellSize is the size of each collision partition cell
	CellSize float64 `mapstructure:"cellSize"`
}

// PhysicsConfig holds the simulation tuning
type PhysicsConfig struct {
	FixedStep       time.Duration `mapstructure:"fixedStep"`
	MaxSpeed        float64       `mapstructure:"maxSpeed"`
	GravityConstant float64       `mapstructure:"gravityConstant"`
	Softening       float64       `mapstructure:"softening"`
}

// LaunchConfig holds the charge and preview tuning
type LaunchConfig struct {
	MaxChargeTime   time.Duration `mapstructure:"maxChargeTime"`
	PredictionSteps int           `mapstructure:"predictionSteps"`

	// CameraDistance is the depth at which the cursor is projected into the world
	CameraDistance float64 `mapstructure:"cameraDistance"`
}

// PlayerConfig describes the controllable body
type PlayerConfig struct {
	Mass   float64 `mapstructure:"mass"`
	Radius float64 `mapstructure:"radius"`
	Start  Point   `mapstructure:"start"`
}

// PlanetConfig describes one attracting body
type PlanetConfig struct {
	Position Point   `mapstructure:"position"`
	Radius   float64 `mapstructure:"radius"`
	Mass     float64 `mapstructure:"mass"`
}

// GoalConfig describes the target area
type GoalConfig struct {
	Position Point   `mapstructure:"position"`
	Radius   float64 `mapstructure:"radius"`
}

// LevelConfig describes the level layout
type LevelConfig struct {
	RestartDelay time.Duration  `mapstructure:"restartDelay"`
	Planets      []PlanetConfig `mapstructure:"planets"`
	Goal         GoalConfig     `mapstructure:"goal"`

	// FlightTimeout ends a flight that has neither landed nor left the play
	// area after this long. Zero disables it.
	FlightTimeout time.Duration `mapstructure:"flightTimeout"`

	// FieldScript is JavaScript defining force(x, y, z, mass) added to the planets' pull
	FieldScript string `mapstructure:"fieldScript"`
}

// Config holds the game configuration
type Config struct {
	LogLevel  string `mapstructure:"logLevel"`
	LogPretty bool   `mapstructure:"logPretty"`

	Audio   AudioConfig   `mapstructure:"audio"`
	Screen  ScreenConfig  `mapstructure:"screen"`
	World   WorldConfig   `mapstructure:"world"`
	Physics PhysicsConfig `mapstructure:"physics"`
	Launch  LaunchConfig  `mapstructure:"launch"`
	Player  PlayerConfig  `mapstructure:"player"`
	Level   LevelConfig   `mapstructure:"level"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		LogLevel:  "info",
		LogPretty: true,
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.5,
		},
		Screen: ScreenConfig{
			Width:  1024,
			Height: 768,
		},
		World: WorldConfig{
			Width:    1600,
			Height:   1200,
			CellSize: 32,
		},
		Physics: PhysicsConfig{
			FixedStep:       10 * time.Millisecond,
			MaxSpeed:        600,
			GravityConstant: 1000,
			Softening:       20,
		},
		Launch: LaunchConfig{
			MaxChargeTime:   1500 * time.Millisecond,
			PredictionSteps: 150,
			CameraDistance:  10,
		},
		Player: PlayerConfig{
			Mass:   1,
			Radius: 10,
			Start:  Point{X: 150, Y: 600},
		},
		Level: LevelConfig{
			RestartDelay:  1500 * time.Millisecond,
			FlightTimeout: 20 * time.Second,
			Planets: []PlanetConfig{
				{Position: Point{X: 700, Y: 600}, Radius: 60, Mass: 20000},
				{Position: Point{X: 1150, Y: 350}, Radius: 40, Mass: 9000},
				{Position: Point{X: 1100, Y: 950}, Radius: 35, Mass: 7000},
			},
			Goal: GoalConfig{Position: Point{X: 1450, Y: 650}, Radius: 30},
		},
	}
}

// flagKeys maps command line flags to the config keys they override
var flagKeys = map[string]string{
	"log-level":        "logLevel",
	"log-pretty":       "logPretty",
	"mute":             "audio.enabled",
	"max-speed":        "physics.maxSpeed",
	"fixed-step":       "physics.fixedStep",
	"max-charge-time":  "launch.maxChargeTime",
	"prediction-steps": "launch.predictionSteps",
}

// RegisterFlags adds the configuration flags to fs
func RegisterFlags(fs *pflag.FlagSet) {
	def := DefaultConfig()
	fs.String("config", "", "path to a json, yaml or toml config file")
	fs.String("log-level", def.LogLevel, "log level (trace, debug, info, warn, error)")
	fs.Bool("log-pretty", def.LogPretty, "human readable log output")
	fs.Bool("mute", false, "disable audio")
	fs.Float64("max-speed", def.Physics.MaxSpeed, "launch and flight speed limit")
	fs.Duration("fixed-step", def.Physics.FixedStep, "fixed simulation timestep")
	fs.Duration("max-charge-time", def.Launch.MaxChargeTime, "hold time for a full charge")
	fs.Int("prediction-steps", def.Launch.PredictionSteps, "number of preview samples")
}

// Load builds the configuration from defaults, the optional config file at
// path, GRAVITYSHOT_* environment variables and the changed flags of fs, in
// increasing order of precedence.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	setDefaults(v, cfg)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return Config{}, err
		}
	}

	// A configured planet list replaces the default layout instead of merging into it
	if v.InConfig("level.planets") {
		cfg.Level.Planets = nil
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("logLevel", cfg.LogLevel)
	v.SetDefault("logPretty", cfg.LogPretty)

	v.SetDefault("audio.enabled", cfg.Audio.Enabled)
	v.SetDefault("audio.volume", cfg.Audio.Volume)

	v.SetDefault("screen.width", cfg.Screen.Width)
	v.SetDefault("screen.height", cfg.Screen.Height)

	v.SetDefault("world.width", cfg.World.Width)
	v.SetDefault("world.height", cfg.World.Height)
	v.SetDefault("world.cellSize", cfg.World.CellSize)

	v.SetDefault("physics.fixedStep", cfg.Physics.FixedStep)
	v.SetDefault("physics.maxSpeed", cfg.Physics.MaxSpeed)
	v.SetDefault("physics.gravityConstant", cfg.Physics.GravityConstant)
	v.SetDefault("physics.softening", cfg.Physics.Softening)

	v.SetDefault("launch.maxChargeTime", cfg.Launch.MaxChargeTime)
	v.SetDefault("launch.predictionSteps", cfg.Launch.PredictionSteps)
	v.SetDefault("launch.cameraDistance", cfg.Launch.CameraDistance)

	v.SetDefault("player.mass", cfg.Player.Mass)
	v.SetDefault("player.radius", cfg.Player.Radius)
	v.SetDefault("player.start.x", cfg.Player.Start.X)
	v.SetDefault("player.start.y", cfg.Player.Start.Y)
	v.SetDefault("player.start.z", cfg.Player.Start.Z)

	v.SetDefault("level.restartDelay", cfg.Level.RestartDelay)
	v.SetDefault("level.flightTimeout", cfg.Level.FlightTimeout)
	v.SetDefault("level.goal.position.x", cfg.Level.Goal.Position.X)
	v.SetDefault("level.goal.position.y", cfg.Level.Goal.Position.Y)
	v.SetDefault("level.goal.position.z", cfg.Level.Goal.Position.Z)
	v.SetDefault("level.goal.radius", cfg.Level.Goal.Radius)
	v.SetDefault("level.fieldScript", cfg.Level.FieldScript)
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if name == "mute" {
			// --mute is the inverse of audio.enabled
			if f.Changed {
				v.Set(key, f.Value.String() != "true")
			}
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("error binding flag %s: %w", name, err)
		}
	}
	return nil
}

// Validate reports every invalid setting
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Audio.Volume >= 0 && c.Audio.Volume <= 1, "audio.volume must be in [0, 1], got %v", c.Audio.Volume)
	check(c.Screen.Width > 0 && c.Screen.Height > 0, "screen size must be positive, got %dx%d", c.Screen.Width, c.Screen.Height)
	check(c.World.Width > 0 && c.World.Height > 0, "world size must be positive, got %vx%v", c.World.Width, c.World.Height)
	check(c.World.CellSize >= 1, "world.cellSize must be at least 1, got %v", c.World.CellSize)
	check(c.Physics.FixedStep > 0, "physics.fixedStep must be positive, got %v", c.Physics.FixedStep)
	check(c.Physics.MaxSpeed > 0, "physics.maxSpeed must be positive, got %v", c.Physics.MaxSpeed)
	check(c.Physics.GravityConstant >= 0, "physics.gravityConstant must not be negative, got %v", c.Physics.GravityConstant)
	check(c.Physics.Softening >= 0, "physics.softening must not be negative, got %v", c.Physics.Softening)
	check(c.Launch.MaxChargeTime >= 0, "launch.maxChargeTime must not be negative, got %v", c.Launch.MaxChargeTime)
	check(c.Launch.PredictionSteps >= 0, "launch.predictionSteps must not be negative, got %d", c.Launch.PredictionSteps)
	check(c.Launch.CameraDistance > 0, "launch.cameraDistance must be positive, got %v", c.Launch.CameraDistance)
	check(c.Player.Mass > 0, "player.mass must be positive, got %v", c.Player.Mass)
	check(c.Player.Radius > 0, "player.radius must be positive, got %v", c.Player.Radius)
	check(c.Level.RestartDelay >= 0, "level.restartDelay must not be negative, got %v", c.Level.RestartDelay)
	check(c.Level.FlightTimeout >= 0, "level.flightTimeout must not be negative, got %v", c.Level.FlightTimeout)
	check(c.Level.Goal.Radius > 0, "level.goal.radius must be positive, got %v", c.Level.Goal.Radius)
	for i, p := range c.Level.Planets {
		check(p.Radius > 0, "level.planets[%d].radius must be positive, got %v", i, p.Radius)
		check(p.Mass > 0, "level.planets[%d].mass must be positive, got %v", i, p.Mass)
	}
	if c.Level.FieldScript != "" {
		if _, err := script.NewField(c.Level.FieldScript, zerolog.Nop()); err != nil {
			errs = append(errs, fmt.Errorf("level.fieldScript: %w", err))
		}
	}

	return errors.Join(errs...)
}

// WorldSettings returns the engine settings
func (c Config) WorldSettings() world.Settings {
	return world.Settings{
		Width:           c.World.Width,
		Height:          c.World.Height,
		CellSize:        c.World.CellSize,
		MaxSpeed:        c.Physics.MaxSpeed,
		GravityConstant: c.Physics.GravityConstant,
		Softening:       c.Physics.Softening,
	}
}

// LauncherSettings returns the launch tuning. MaxSpeed and FixedStep are the
// engine's, so the preview steps exactly like the flight.
func (c Config) LauncherSettings() player.Settings {
	return player.Settings{
		MaxSpeed:        c.Physics.MaxSpeed,
		MaxChargeTime:   c.Launch.MaxChargeTime,
		PredictionSteps: c.Launch.PredictionSteps,
		FixedStep:       c.Physics.FixedStep,
	}
}

// Layout returns the level layout
func (c Config) Layout() level.Layout {
	planets := make([]level.Planet, 0, len(c.Level.Planets))
	for _, p := range c.Level.Planets {
		planets = append(planets, level.Planet{Position: p.Position.Vec(), Radius: p.Radius, Mass: p.Mass})
	}
	return level.Layout{
		Planets:      planets,
		GoalPosition: c.Level.Goal.Position.Vec(),
		GoalRadius:   c.Level.Goal.Radius,
		Start:        c.Player.Start.Vec(),
		PlayerRadius: c.Player.Radius,
		PlayerMass:   c.Player.Mass,
		FieldScript:  c.Level.FieldScript,
	}
}
