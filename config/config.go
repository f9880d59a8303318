// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Arena     ArenaConfig     `yaml:"arena"`
	Snake     SnakeConfig     `yaml:"snake"`
	AI        AIConfig        `yaml:"ai"`
	Pellets   PelletConfig    `yaml:"pellets"`
	Collision CollisionConfig `yaml:"collision"`
	Camera    CameraConfig    `yaml:"camera"`
	Sim       SimConfig       `yaml:"sim"`
	Game      GameConfig      `yaml:"game"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds the viewport the camera frames.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// ArenaConfig holds the arena extent. The arena is the square
// [-MapSize/2, MapSize/2] on both axes, centred on the origin.
type ArenaConfig struct {
	MapSize float64 `yaml:"map_size"`
}

// SnakeConfig holds movement and body parameters shared by every snake.
type SnakeConfig struct {
	InitialLength        float64 `yaml:"initial_length"`
	MinLength            float64 `yaml:"min_length"`            // Boost can never drain below this
	BaseSpeed            float64 `yaml:"base_speed"`            // Player speed, units/second
	SegmentRadius        float64 `yaml:"segment_radius"`        // Radius stamped on every segment
	LinkSpacing          float64 `yaml:"link_spacing"`          // Distance between consecutive segments
	CompressionThreshold float64 `yaml:"compression_threshold"` // Segments closer than this are dropped
	DeadZone             float64 `yaml:"dead_zone"`             // Pointer within this of the head = no steering
	BoostMultiplier      float64 `yaml:"boost_multiplier"`
	BoostDrainRate       float64 `yaml:"boost_drain_rate"` // Length lost per second while boosting
	TailGrowth           bool    `yaml:"tail_growth"`      // Extend the tail when the chain runs short of Length
}

// AIConfig holds autonomous snake parameters.
type AIConfig struct {
	Count           int     `yaml:"count"`
	SpawnRadius     float64 `yaml:"spawn_radius"` // Ring around the origin AI snakes spawn on
	BaseSpeed       float64 `yaml:"base_speed"`
	ScanLimit       int     `yaml:"scan_limit"`       // Only the first N pellets are considered
	DetectionRadius float64 `yaml:"detection_radius"` // Pellets farther than this are ignored
	WanderChance    float64 `yaml:"wander_chance"`    // Per-tick chance of a new random heading
}

// PelletConfig holds pellet population parameters.
type PelletConfig struct {
	Count            int      `yaml:"count"`
	CollectionRadius float64  `yaml:"collection_radius"` // Fixed basis for every snake
	Size             float64  `yaml:"size"`
	Palette          []string `yaml:"palette"`
}

// CollisionConfig holds lethal collision parameters.
type CollisionConfig struct {
	OtherRadius     float64 `yaml:"other_radius"`
	OtherHeadExempt int     `yaml:"other_head_exempt"` // Leading segments of other snakes that never kill
	SelfRadius      float64 `yaml:"self_radius"`
	SelfHeadExempt  int     `yaml:"self_head_exempt"` // Leading segments of the player's own body that never kill
}

// CameraConfig holds camera smoothing and zoom parameters.
// Factors are per tick, not time-normalized.
type CameraConfig struct {
	FollowFactor float64 `yaml:"follow_factor"`
	StartZoom    float64 `yaml:"start_zoom"`
	BaseZoom     float64 `yaml:"base_zoom"`
	MinZoom      float64 `yaml:"min_zoom"`
	ZoomScale    float64 `yaml:"zoom_scale"`   // Zoom lost per unit of length above min_length
	IntroFactor  float64 `yaml:"intro_factor"` // Slow zoom until the first target is reached
	ZoomFactor   float64 `yaml:"zoom_factor"`  // Zoom follow after the intro latch
	ZoomEpsilon  float64 `yaml:"zoom_epsilon"`
}

// SimConfig holds tick pacing parameters.
type SimConfig struct {
	TicksPerSecond int     `yaml:"ticks_per_second"`
	MaxDT          float64 `yaml:"max_dt"` // Frame deltas above this are clamped
}

// GameConfig holds host parameters: restart delay and the headless autopilot.
type GameConfig struct {
	RestartDelay           float64 `yaml:"restart_delay"` // Seconds between game over and the next start
	AutopilotBoostLength   float64 `yaml:"autopilot_boost_length"`
	AutopilotBoostDistance float64 `yaml:"autopilot_boost_distance"`
	AutopilotAvoidRadius   float64 `yaml:"autopilot_avoid_radius"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // Seconds of simulation per stats row
	PerfWindow  int     `yaml:"perf_window"`  // Ticks averaged by the perf collector
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT           float64 // Nominal seconds per tick
	HalfMap      float64 // Arena.MapSize / 2
	ViewportW    float64 // Screen.Width as float64
	ViewportH    float64 // Screen.Height as float64
	RestartTicks int     // Game.RestartDelay in ticks
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

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate rejects tuning the simulation cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Arena.MapSize <= 0 {
		errs = append(errs, errors.New("arena.map_size must be positive"))
	}
	if c.Snake.MinLength < 1 {
		errs = append(errs, errors.New("snake.min_length must be at least 1"))
	}
	if c.Snake.InitialLength < c.Snake.MinLength {
		errs = append(errs, errors.New("snake.initial_length must not be below snake.min_length"))
	}
	if c.Snake.LinkSpacing <= 0 {
		errs = append(errs, errors.New("snake.link_spacing must be positive"))
	}
	if c.Snake.CompressionThreshold < 0 || c.Snake.CompressionThreshold >= c.Snake.LinkSpacing {
		errs = append(errs, errors.New("snake.compression_threshold must be in [0, link_spacing)"))
	}
	if c.AI.Count < 0 {
		errs = append(errs, errors.New("ai.count must not be negative"))
	}
	if c.AI.WanderChance < 0 || c.AI.WanderChance > 1 {
		errs = append(errs, errors.New("ai.wander_chance must be in [0, 1]"))
	}
	if c.Pellets.Count < 0 {
		errs = append(errs, errors.New("pellets.count must not be negative"))
	}
	if len(c.Pellets.Palette) == 0 {
		errs = append(errs, errors.New("pellets.palette must not be empty"))
	}
	if c.Collision.OtherHeadExempt < 0 || c.Collision.SelfHeadExempt < 0 {
		errs = append(errs, errors.New("collision head exemptions must not be negative"))
	}
	if c.Camera.MinZoom <= 0 || c.Camera.BaseZoom < c.Camera.MinZoom {
		errs = append(errs, errors.New("camera zoom bounds must satisfy 0 < min_zoom <= base_zoom"))
	}
	if c.Sim.TicksPerSecond <= 0 {
		errs = append(errs, errors.New("sim.ticks_per_second must be positive"))
	}
	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT = 1.0 / float64(c.Sim.TicksPerSecond)
	c.Derived.HalfMap = c.Arena.MapSize / 2
	c.Derived.ViewportW = float64(c.Screen.Width)
	c.Derived.ViewportH = float64(c.Screen.Height)
	c.Derived.RestartTicks = int(c.Game.RestartDelay * float64(c.Sim.TicksPerSecond))
}

// Recompute refreshes derived values after fields were changed in code.
func (c *Config) Recompute() {
	c.computeDerived()
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
