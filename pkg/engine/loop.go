// Package engine drives the per-frame update and render cycle.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/go-lair/pkg/camera"
	"github.com/leterax/go-lair/pkg/input"
	"github.com/leterax/go-lair/pkg/scene"
)

var (
	// ErrFrameDraw marks a frame that could not be drawn. The loop skips it.
	ErrFrameDraw = errors.New("engine: frame draw failed")
	// ErrDeviceLost marks a lost graphics context. The loop stops.
	ErrDeviceLost = errors.New("engine: graphics device lost")
	// ErrNotRunning is returned by Tick outside the Running state
	ErrNotRunning = errors.New("engine: loop not running")
)

// Renderer draws one frame from a read-only camera and scene
type Renderer interface {
	Draw(cam *camera.Camera, s *scene.Scene) error
}

// EventSource delivers window events. PollEvents dispatches pending key
// events to their handlers.
type EventSource interface {
	PollEvents()
	ShouldClose() bool
}

// Clock returns a monotonic time in seconds
type Clock func() float64

// State is the loop lifecycle stage
type State uint8

const (
	Initializing State = iota
	Running
	ShuttingDown
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Running:
		return "running"
	case ShuttingDown:
		return "shutting down"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Config controls how held actions move the camera
type Config struct {
	MoveSpeed float32 // units per second
	TurnSpeed float32 // radians per second

	// MaxDelta caps the seconds a single tick may advance, so a stalled
	// frame does not teleport the camera
	MaxDelta float64

	// MaxDrawFailures consecutive failed frames stop the loop
	MaxDrawFailures int
}

// DefaultConfig returns the default navigation speeds and limits
func DefaultConfig() Config {
	return Config{
		MoveSpeed:       5,
		TurnSpeed:       mgl32.DegToRad(90),
		MaxDelta:        0.1,
		MaxDrawFailures: 30,
	}
}

// Loop couples the held input state to the camera and hands every frame to
// the renderer. It is not safe for concurrent use; all calls belong on the
// thread that owns the graphics context.
type Loop struct {
	cfg      Config
	cam      *camera.Camera
	scene    *scene.Scene
	input    *input.State
	renderer Renderer
	log      *slog.Logger

	state    State
	last     float64
	failures int
	frames   uint64
}

// NewLoop creates a loop in the Initializing state. Zero config fields take
// their defaults.
func NewLoop(cfg Config, cam *camera.Camera, s *scene.Scene, in *input.State, r Renderer, log *slog.Logger) *Loop {
	def := DefaultConfig()
	if cfg.MoveSpeed <= 0 {
		cfg.MoveSpeed = def.MoveSpeed
	}
	if cfg.TurnSpeed <= 0 {
		cfg.TurnSpeed = def.TurnSpeed
	}
	if cfg.MaxDelta <= 0 {
		cfg.MaxDelta = def.MaxDelta
	}
	if cfg.MaxDrawFailures <= 0 {
		cfg.MaxDrawFailures = def.MaxDrawFailures
	}
	if log == nil {
		log = slog.Default()
	}

	return &Loop{
		cfg:      cfg,
		cam:      cam,
		scene:    s,
		input:    in,
		renderer: r,
		log:      log,
	}
}

// State returns the current lifecycle stage
func (l *Loop) State() State {
	return l.state
}

// Frames returns how many frames were drawn successfully
func (l *Loop) Frames() uint64 {
	return l.frames
}

// Start moves the loop to Running and records the first timestamp
func (l *Loop) Start(now float64) error {
	if l.state != Initializing {
		return fmt.Errorf("engine: start in state %s", l.state)
	}
	l.state = Running
	l.last = now
	l.failures = 0
	l.log.Info("Loop started", "move_speed", l.cfg.MoveSpeed, "turn_speed", l.cfg.TurnSpeed)
	return nil
}

// Tick advances the camera by the time elapsed since the previous tick and
// draws one frame. A non-nil error is fatal and leaves the loop ShuttingDown.
func (l *Loop) Tick(now float64) error {
	if l.state != Running {
		return fmt.Errorf("%w: %s", ErrNotRunning, l.state)
	}

	dt := now - l.last
	if dt < 0 {
		dt = 0
	} else if dt > l.cfg.MaxDelta {
		l.log.Debug("Clamped frame delta", "delta", dt, "max", l.cfg.MaxDelta)
		dt = l.cfg.MaxDelta
	}
	l.last = now

	for _, a := range l.input.Active() {
		l.apply(a, float32(dt))
	}

	err := l.renderer.Draw(l.cam, l.scene)
	if err == nil {
		l.failures = 0
		l.frames++
		return nil
	}

	if errors.Is(err, ErrDeviceLost) {
		l.log.Error("Graphics device lost", "err", err)
		l.state = ShuttingDown
		return err
	}

	l.failures++
	l.log.Warn("Skipped frame", "err", err, "consecutive", l.failures)
	if l.failures >= l.cfg.MaxDrawFailures {
		l.state = ShuttingDown
		return fmt.Errorf("engine: %d consecutive draw failures: %w", l.failures, err)
	}
	return nil
}

// apply performs the camera operation bound to one held action
func (l *Loop) apply(a input.Action, dt float32) {
	move := l.cfg.MoveSpeed * dt
	turn := l.cfg.TurnSpeed * dt

	switch a {
	case input.MoveForward:
		l.translate(camera.Forward, move)
	case input.MoveBack:
		l.translate(camera.Back, move)
	case input.StrafeLeft:
		l.translate(camera.Left, move)
	case input.StrafeRight:
		l.translate(camera.Right, move)
	case input.TurnLeft:
		l.cam.Rotate(camera.Yaw, turn)
	case input.TurnRight:
		l.cam.Rotate(camera.Yaw, -turn)
	case input.LookUp:
		l.cam.Rotate(camera.Pitch, turn)
	case input.LookDown:
		l.cam.Rotate(camera.Pitch, -turn)
	}
}

func (l *Loop) translate(dir mgl32.Vec3, distance float32) {
	if !l.cam.Translate(dir, distance) {
		l.log.Debug("Move rejected at bound", "position", l.cam.Position())
	}
}

// Run starts the loop and ticks until the event source asks to close, ctx
// is cancelled, or a fatal error occurs. Events are polled before every
// tick so key changes apply to the frame that follows them.
func (l *Loop) Run(ctx context.Context, events EventSource, clock Clock) error {
	if err := l.Start(clock()); err != nil {
		return err
	}
	defer l.Shutdown()

	for {
		select {
		case <-ctx.Done():
			l.log.Info("Loop cancelled", "cause", context.Cause(ctx))
			return nil
		default:
		}

		events.PollEvents()
		if events.ShouldClose() {
			l.log.Info("Window closed")
			return nil
		}

		if err := l.Tick(clock()); err != nil {
			return err
		}
	}
}

// Shutdown moves the loop to ShuttingDown. Calling it again has no effect.
func (l *Loop) Shutdown() {
	if l.state == ShuttingDown {
		return
	}
	l.state = ShuttingDown
	l.log.Info("Loop stopped", "frames", l.frames)
}
