// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"image/color"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// AU is the astronomical unit in meters, used for config values given in AU.
const AU = 1.49597e11

// Placement modes for left-click.
const (
	PlacementDefault = "default" // fixed mass/radius, random colour, zero velocity
	PlacementPanel   = "panel"   // values from the on-screen sliders
	PlacementPrompt  = "prompt"  // blocking text prompts on stdin
)

// Solver names.
const (
	SolverDirect    = "direct"
	SolverBarnesHut = "barnes_hut"
)

// ErrInvalid is returned (wrapped) when a loaded config fails validation.
var ErrInvalid = errors.New("invalid config")

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Camera    CameraConfig    `yaml:"camera"`
	Collision CollisionConfig `yaml:"collision"`
	Placement PlacementConfig `yaml:"placement"`
	Trail     TrailConfig     `yaml:"trail"`
	Render    RenderConfig    `yaml:"render"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Audio     AudioConfig     `yaml:"audio"`
	AutoOrbit bool            `yaml:"auto_orbit"` // give placed bodies a circular orbit around the heaviest body
	Bodies    []BodyConfig    `yaml:"bodies"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// PhysicsConfig holds simulation physics parameters.
type PhysicsConfig struct {
	G             float64 `yaml:"g"`               // N m^2 / kg^2
	DT            float64 `yaml:"dt"`              // simulated seconds per step
	StepsPerFrame int     `yaml:"steps_per_frame"` // physics steps per rendered frame
	Solver        string  `yaml:"solver"`          // "direct" or "barnes_hut"
	Theta         float64 `yaml:"theta"`           // Barnes-Hut opening angle
}

// CameraConfig holds viewport parameters.
type CameraConfig struct {
	PixelsPerAU    float64 `yaml:"pixels_per_au"`
	ZoomFactor     float64 `yaml:"zoom_factor"`
	PanSpeed       float64 `yaml:"pan_speed"` // pixels per frame while an arrow is held
	MinScaleFactor float64 `yaml:"min_scale_factor"`
	MaxScaleFactor float64 `yaml:"max_scale_factor"`
	WheelFactor    float64 `yaml:"wheel_factor"`
}

// CollisionConfig controls collision handling.
type CollisionConfig struct {
	Halt bool `yaml:"halt"` // freeze the simulation on the first collision
}

// PlacementConfig holds click-to-place defaults.
type PlacementConfig struct {
	Mode   string  `yaml:"mode"`
	Mass   float64 `yaml:"mass"`   // kg
	Radius float64 `yaml:"radius"` // m
	Speed  float64 `yaml:"speed"`  // m/s, panel mode initial value
	Angle  float64 `yaml:"angle"`  // degrees, panel mode initial value
}

// TrailConfig holds trajectory settings.
type TrailConfig struct {
	MaxPoints int `yaml:"max_points"` // 0 = unbounded
}

// RenderConfig holds drawing parameters.
type RenderConfig struct {
	RadiusExaggeration float64 `yaml:"radius_exaggeration"` // drawn radius = radius * scale * this
	MinRadiusPx        float64 `yaml:"min_radius_px"`
	TrailAlpha         uint8   `yaml:"trail_alpha"`
	Background         string  `yaml:"background"`
}

// TelemetryConfig holds telemetry collection parameters.
type TelemetryConfig struct {
	StatsWindowSteps int `yaml:"stats_window_steps"` // steps per stats window
	PerfWindow       int `yaml:"perf_window"`        // frames in the rolling perf average
	TrajectoryEvery  int `yaml:"trajectory_every"`   // steps between trajectory rows
}

// AudioConfig holds the collision chime settings.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	SampleRate int     `yaml:"sample_rate"`
	Frequency  float64 `yaml:"frequency"` // Hz
	DurationMs int     `yaml:"duration_ms"`
	Volume     float64 `yaml:"volume"` // 0..1
}

// BodyConfig is an initial body. Positions are in AU, velocities in m/s.
type BodyConfig struct {
	Name   string     `yaml:"name"`
	Mass   float64    `yaml:"mass"`
	Radius float64    `yaml:"radius"`
	Pos    [2]float64 `yaml:"pos"`
	Vel    [2]float64 `yaml:"vel"`
	Color  string     `yaml:"color"` // hex, e.g. "#0000ff"
}

// DerivedConfig holds values computed from the loaded config.
type DerivedConfig struct {
	Scale       float64      // pixels per meter
	BodyColors  []color.RGBA // parsed Bodies[i].Color
	Background  color.RGBA
	SimDaysStep float64 // simulated days per step
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	var data []byte
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}
	return Parse(data)
}

// Parse merges data over the embedded defaults. Empty data yields the
// defaults.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if len(data) > 0 {
		// Unmarshal into same struct - only overwrites fields present in data
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Physics.DT <= 0:
		return fmt.Errorf("%w: physics.dt must be positive, got %g", ErrInvalid, c.Physics.DT)
	case c.Physics.G <= 0:
		return fmt.Errorf("%w: physics.g must be positive, got %g", ErrInvalid, c.Physics.G)
	case c.Physics.StepsPerFrame < 1:
		return fmt.Errorf("%w: physics.steps_per_frame must be at least 1", ErrInvalid)
	case c.Physics.Solver != SolverDirect && c.Physics.Solver != SolverBarnesHut:
		return fmt.Errorf("%w: unknown physics.solver %q", ErrInvalid, c.Physics.Solver)
	case c.Camera.PixelsPerAU <= 0:
		return fmt.Errorf("%w: camera.pixels_per_au must be positive", ErrInvalid)
	case c.Camera.ZoomFactor <= 1:
		return fmt.Errorf("%w: camera.zoom_factor must be greater than 1", ErrInvalid)
	case c.Placement.Mode != PlacementDefault && c.Placement.Mode != PlacementPanel && c.Placement.Mode != PlacementPrompt:
		return fmt.Errorf("%w: unknown placement.mode %q", ErrInvalid, c.Placement.Mode)
	case c.Placement.Mass <= 0 || c.Placement.Radius <= 0:
		return fmt.Errorf("%w: placement mass and radius must be positive", ErrInvalid)
	case c.Trail.MaxPoints < 0:
		return fmt.Errorf("%w: trail.max_points must not be negative", ErrInvalid)
	}
	for i, b := range c.Bodies {
		if b.Mass <= 0 || b.Radius <= 0 {
			return fmt.Errorf("%w: bodies[%d]: mass and radius must be positive", ErrInvalid, i)
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	c.Derived.Scale = c.Camera.PixelsPerAU / AU
	c.Derived.SimDaysStep = c.Physics.DT / 86400

	c.Derived.BodyColors = make([]color.RGBA, len(c.Bodies))
	for i, b := range c.Bodies {
		rgba, err := ParseHex(b.Color)
		if err != nil {
			return fmt.Errorf("%w: bodies[%d].color: %w", ErrInvalid, i, err)
		}
		c.Derived.BodyColors[i] = rgba
	}

	bg, err := ParseHex(c.Render.Background)
	if err != nil {
		return fmt.Errorf("%w: render.background: %w", ErrInvalid, err)
	}
	c.Derived.Background = bg
	return nil
}

// ParseHex parses "#rrggbb" into an opaque colour.
func ParseHex(s string) (color.RGBA, error) {
	col, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, err
	}
	r, g, b := col.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
