// Package config loads the YAML configuration of the lair viewer
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/leterax/go-lair/internal/logger"
	"github.com/leterax/go-lair/pkg/camera"
	"github.com/leterax/go-lair/pkg/engine"
	"github.com/leterax/go-lair/pkg/scene"
)

type Config struct {
	Window      WindowConfig      `yaml:"window"`
	Camera      CameraConfig      `yaml:"camera"`
	Controls    ControlsConfig    `yaml:"controls"`
	Loop        LoopConfig        `yaml:"loop"`
	Assets      AssetsConfig      `yaml:"assets"`
	Screenshots ScreenshotsConfig `yaml:"screenshots"`
	Logging     LoggingConfig     `yaml:"logging"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	VSync  bool   `yaml:"vsync"`
}

// CameraConfig takes angles in degrees
type CameraConfig struct {
	Position     []float32 `yaml:"position"`
	YawDegrees   float32   `yaml:"yaw_degrees"`
	PitchDegrees float32   `yaml:"pitch_degrees"`
	FOVDegrees   float32   `yaml:"fov_degrees"`
	Near         float32   `yaml:"near"`
	Far          float32   `yaml:"far"`

	// BoundRadius keeps the camera inside the sky dome; 0 disables the limit
	BoundRadius float32 `yaml:"bound_radius"`
}

// ControlsConfig maps action names (move_forward, look_up, ...) to key names
type ControlsConfig struct {
	Bindings map[string]string `yaml:"bindings"`
}

type LoopConfig struct {
	MoveSpeed        float32 `yaml:"move_speed"`
	TurnSpeedDegrees float32 `yaml:"turn_speed_degrees"`
	MaxDeltaSeconds  float64 `yaml:"max_delta_seconds"`
	MaxDrawFailures  int     `yaml:"max_draw_failures"`
}

type AssetsConfig struct {
	TextureDir     string `yaml:"texture_dir"`
	MaxTextureSize int    `yaml:"max_texture_size"`
}

// ScreenshotsConfig saves a WebP of the current frame when Key is pressed.
// An empty key disables screenshots.
type ScreenshotsConfig struct {
	Key string `yaml:"key"`
	Dir string `yaml:"dir"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns a complete configuration: an 800x600 window, the camera
// 8 units in front of the planet and W/S/A/D plus arrow key controls.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  800,
			Height: 600,
			Title:  "Little Prince's Lair",
			VSync:  true,
		},
		Camera: CameraConfig{
			Position:    []float32{0, 0, 8},
			FOVDegrees:  camera.DefaultFOV,
			Near:        camera.DefaultNear,
			Far:         5 * scene.DistanceLimit,
			BoundRadius: scene.SafetyRadius,
		},
		Controls: ControlsConfig{
			Bindings: map[string]string{
				"move_forward": "w",
				"move_back":    "s",
				"strafe_left":  "a",
				"strafe_right": "d",
				"turn_left":    "left",
				"turn_right":   "right",
				"look_up":      "up",
				"look_down":    "down",
			},
		},
		Loop: LoopConfig{
			MoveSpeed:        5,
			TurnSpeedDegrees: 90,
			MaxDeltaSeconds:  0.1,
			MaxDrawFailures:  30,
		},
		Assets: AssetsConfig{
			TextureDir:     "textures",
			MaxTextureSize: 2048,
		},
		Screenshots: ScreenshotsConfig{
			Key: "f12",
			Dir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: logger.FormatConsole,
		},
	}
}

// Load reads path over the defaults and validates the result. Keys absent
// from the file keep their default; unknown keys are an error. An empty path
// returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	defaults := cfg.Controls.Bindings
	cfg.Controls.Bindings = nil

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Controls.Bindings = mergeBindings(cfg.Controls.Bindings, defaults)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// mergeBindings fills in default bindings for actions the file leaves out.
// A default whose key the file already gives to another action is dropped,
// so remapping one action never unbinds it in favour of a default.
func mergeBindings(user, defaults map[string]string) map[string]string {
	merged := make(map[string]string, len(defaults))
	taken := make(map[string]bool, len(user))
	for action, key := range user {
		merged[action] = key
		taken[normalizeKey(key)] = true
	}
	for action, key := range defaults {
		if _, set := merged[action]; set || taken[normalizeKey(key)] {
			continue
		}
		merged[action] = key
	}
	return merged
}

func normalizeKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Write encodes the configuration as YAML
func (c *Config) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}

// Validate reports every invalid value, joined
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0,
		"window: size %dx%d must be positive", c.Window.Width, c.Window.Height)

	check(len(c.Camera.Position) == 3, "camera: position needs 3 components, got %d", len(c.Camera.Position))
	check(c.Camera.FOVDegrees > 0 && c.Camera.FOVDegrees < 180,
		"camera: fov_degrees %v must be in (0, 180)", c.Camera.FOVDegrees)
	check(c.Camera.Near > 0, "camera: near %v must be positive", c.Camera.Near)
	check(c.Camera.Far > c.Camera.Near, "camera: far %v must exceed near %v", c.Camera.Far, c.Camera.Near)
	check(c.Camera.BoundRadius >= 0, "camera: bound_radius %v must not be negative", c.Camera.BoundRadius)
	if len(c.Camera.Position) == 3 && c.Camera.BoundRadius > 0 {
		check(c.Camera.position().Sub(scene.SkyCenter).Len() <= c.Camera.BoundRadius,
			"camera: position %v lies outside bound_radius %v", c.Camera.Position, c.Camera.BoundRadius)
	}

	check(len(c.Controls.Bindings) > 0, "controls: no bindings")

	check(c.Loop.MoveSpeed > 0, "loop: move_speed %v must be positive", c.Loop.MoveSpeed)
	check(c.Loop.TurnSpeedDegrees > 0, "loop: turn_speed_degrees %v must be positive", c.Loop.TurnSpeedDegrees)
	check(c.Loop.MaxDeltaSeconds > 0, "loop: max_delta_seconds %v must be positive", c.Loop.MaxDeltaSeconds)
	check(c.Loop.MaxDrawFailures > 0, "loop: max_draw_failures %d must be positive", c.Loop.MaxDrawFailures)

	check(c.Assets.TextureDir != "", "assets: texture_dir is empty")
	check(c.Assets.MaxTextureSize >= 0, "assets: max_texture_size %d must not be negative", c.Assets.MaxTextureSize)

	check(c.Screenshots.Key == "" || c.Screenshots.Dir != "", "screenshots: dir is empty")

	check(logger.ValidLevel(c.Logging.Level), "logging: unknown level %q", c.Logging.Level)
	check(logger.ValidFormat(c.Logging.Format), "logging: unknown format %q", c.Logging.Format)

	return errors.Join(errs...)
}

func (c CameraConfig) position() mgl32.Vec3 {
	return mgl32.Vec3{c.Position[0], c.Position[1], c.Position[2]}
}

// Camera converts to radians and bounds the camera to the sky dome
func (c CameraConfig) Camera() camera.Config {
	return camera.Config{
		Position:    c.position(),
		Yaw:         mgl32.DegToRad(c.YawDegrees),
		Pitch:       mgl32.DegToRad(c.PitchDegrees),
		FOV:         mgl32.DegToRad(c.FOVDegrees),
		Near:        c.Near,
		Far:         c.Far,
		BoundCenter: scene.SkyCenter,
		BoundRadius: c.BoundRadius,
	}
}

// Engine converts the turn speed to radians per second
func (c LoopConfig) Engine() engine.Config {
	return engine.Config{
		MoveSpeed:       c.MoveSpeed,
		TurnSpeed:       mgl32.DegToRad(c.TurnSpeedDegrees),
		MaxDelta:        c.MaxDeltaSeconds,
		MaxDrawFailures: c.MaxDrawFailures,
	}
}

// Logger leaves Output unset so the logger picks its default
func (c LoggingConfig) Logger() logger.Config {
	return logger.Config{Level: c.Level, Format: c.Format}
}
