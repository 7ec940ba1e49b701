// Package config provides configuration loading and access for the aquarium.
package config

import (
	_ "embed"
	"fmt"
	"image/color"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all scene configuration parameters.
type Config struct {
	Screen      ScreenConfig      `yaml:"screen"`
	Camera      CameraConfig      `yaml:"camera"`
	Lighting    LightingConfig    `yaml:"lighting"`
	Scene       SceneConfig       `yaml:"scene"`
	Physics     PhysicsConfig     `yaml:"physics"`
	Body        BodyConfig        `yaml:"body"`
	Impulses    ImpulseConfig     `yaml:"impulses"`
	Containment ContainmentConfig `yaml:"containment"`
	Highlight   HighlightConfig   `yaml:"highlight"`
	Overlay     OverlayConfig     `yaml:"overlay"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`
	Transport   TransportConfig   `yaml:"transport"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	TargetFPS  int    `yaml:"target_fps"`
	Title      string `yaml:"title"`
	Background string `yaml:"background"` // hex color
}

// CameraConfig holds the perspective camera placement.
type CameraConfig struct {
	Position [3]float64 `yaml:"position"`
	Target   [3]float64 `yaml:"target"`
	FOV      float64    `yaml:"fov"` // vertical, degrees
	Near     float64    `yaml:"near"`
	Far      float64    `yaml:"far"`
}

// PointLightConfig describes one point light.
type PointLightConfig struct {
	Position    [3]float64 `yaml:"position"`
	Intensity   float64    `yaml:"intensity"`
	Color       string     `yaml:"color"`
	CastShadows bool       `yaml:"cast_shadows"`
}

// LightingConfig holds scene lights and the environment preset.
type LightingConfig struct {
	Ambient     float64            `yaml:"ambient"`
	Points      []PointLightConfig `yaml:"points"`
	Environment string             `yaml:"environment"`
}

// SceneConfig holds population parameters.
type SceneConfig struct {
	ObjectCount int     `yaml:"object_count"`
	SpawnExtent float64 `yaml:"spawn_extent"` // objects spawn in [-extent, extent] on x and y
}

// PhysicsConfig holds stepping and solver parameters.
type PhysicsConfig struct {
	DT             float64    `yaml:"dt"`
	MaxSubsteps    int        `yaml:"max_substeps"`
	Gravity        [3]float64 `yaml:"gravity"`
	SleepLinear    float64    `yaml:"sleep_linear"`
	SleepAngular   float64    `yaml:"sleep_angular"`
	SleepTime      float64    `yaml:"sleep_time"`
	MaxLinearSpeed float64    `yaml:"max_linear_speed"`
}

// BodyConfig holds per-body material parameters.
type BodyConfig struct {
	Restitution    float64 `yaml:"restitution"`
	Friction       float64 `yaml:"friction"`
	LinearDamping  float64 `yaml:"linear_damping"`
	AngularDamping float64 `yaml:"angular_damping"`
	Density        float64 `yaml:"density"`
	Roughness      float64 `yaml:"roughness"`
	Metalness      float64 `yaml:"metalness"`
}

// ImpulseConfig holds the impulse ranges applied to bodies.
type ImpulseConfig struct {
	DriftLinear float64 `yaml:"drift_linear"` // per-axis (rand-0.5)*this
	DriftTorque float64 `yaml:"drift_torque"` // per-axis rand*this
	ClickLinear float64 `yaml:"click_linear"` // per-axis (rand-0.5)*this
}

// ContainmentConfig holds wall geometry.
type ContainmentConfig struct {
	WallHalfThickness float64 `yaml:"wall_half_thickness"`
	WallHalfSpan      float64 `yaml:"wall_half_span"`
	Depth             float64 `yaml:"depth"`
	MinViewport       float64 `yaml:"min_viewport"`
}

// HighlightConfig holds the hover material.
type HighlightConfig struct {
	Color             string  `yaml:"color"`
	Emissive          string  `yaml:"emissive"`
	EmissiveIntensity float64 `yaml:"emissive_intensity"`
}

// OverlayConfig holds the 2D text overlay.
type OverlayConfig struct {
	Brand         string   `yaml:"brand"`
	Badge         string   `yaml:"badge"`
	Headline      string   `yaml:"headline"`
	TypingText    string   `yaml:"typing_text"`
	TypingSpeedMS int      `yaml:"typing_speed_ms"`
	TypingDelayMS int      `yaml:"typing_delay_ms"`
	CaretBlinkMS  int      `yaml:"caret_blink_ms"`
	Prompt        string   `yaml:"prompt"`
	FontSize      int      `yaml:"font_size"`
	HeadlineSize  int      `yaml:"headline_size"`
	Opacity       float64  `yaml:"opacity"`
	TextColor     string   `yaml:"text_color"`
	Footer        []string `yaml:"footer"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// TransportConfig holds the remote renderer settings.
type TransportConfig struct {
	Listen           string `yaml:"listen"`
	SnapshotInterval int    `yaml:"snapshot_interval_ms"`
	CommandBuffer    int    `yaml:"command_buffer"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32           float32
	ScreenW32      float32
	ScreenH32      float32
	FOVRadians     float32
	Background     color.RGBA
	HighlightColor color.RGBA
	EmissiveColor  color.RGBA
	TypingColor    color.RGBA
	LightColors    []color.RGBA
	TypingInterval time.Duration
	TypingDelay    time.Duration
	CaretBlink     time.Duration
	SnapshotEvery  time.Duration
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

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	if c.Physics.Gravity != [3]float64{} {
		return fmt.Errorf("physics.gravity must be zero, got %v", c.Physics.Gravity)
	}
	if c.Physics.DT <= 0 {
		return fmt.Errorf("physics.dt must be positive, got %v", c.Physics.DT)
	}
	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.FOVRadians = float32(c.Camera.FOV * math.Pi / 180)

	var err error
	if c.Derived.Background, err = ParseHex(c.Screen.Background); err != nil {
		return fmt.Errorf("screen.background: %w", err)
	}
	if c.Derived.HighlightColor, err = ParseHex(c.Highlight.Color); err != nil {
		return fmt.Errorf("highlight.color: %w", err)
	}
	if c.Derived.EmissiveColor, err = ParseHex(c.Highlight.Emissive); err != nil {
		return fmt.Errorf("highlight.emissive: %w", err)
	}
	if c.Derived.TypingColor, err = ParseHex(c.Overlay.TextColor); err != nil {
		return fmt.Errorf("overlay.text_color: %w", err)
	}
	c.Derived.LightColors = make([]color.RGBA, len(c.Lighting.Points))
	for i, p := range c.Lighting.Points {
		if c.Derived.LightColors[i], err = ParseHex(p.Color); err != nil {
			return fmt.Errorf("lighting.points[%d].color: %w", i, err)
		}
	}

	c.Derived.TypingInterval = time.Duration(c.Overlay.TypingSpeedMS) * time.Millisecond
	c.Derived.TypingDelay = time.Duration(c.Overlay.TypingDelayMS) * time.Millisecond
	c.Derived.CaretBlink = time.Duration(c.Overlay.CaretBlinkMS) * time.Millisecond
	c.Derived.SnapshotEvery = time.Duration(c.Transport.SnapshotInterval) * time.Millisecond
	return nil
}

// ParseHex parses "#RRGGBB" or "RRGGBB" into an opaque color.
func ParseHex(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}, nil
}

// WriteYAML writes the config to a YAML file.
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
