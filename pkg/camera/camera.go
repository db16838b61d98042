// Package camera implements a free-flying yaw/pitch camera.
package camera

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Axis selects which angle Rotate changes
type Axis uint8

const (
	// Yaw turns about the world up axis. Positive turns left.
	Yaw Axis = iota
	// Pitch tilts about the camera's right axis. Positive looks up.
	Pitch
)

func (a Axis) String() string {
	switch a {
	case Yaw:
		return "yaw"
	case Pitch:
		return "pitch"
	default:
		return fmt.Sprintf("Axis(%d)", uint8(a))
	}
}

// Config holds the construction-time camera parameters. Angles are radians.
type Config struct {
	Position mgl32.Vec3
	Yaw      float32
	Pitch    float32

	FOV  float32 // vertical field of view, radians
	Near float32
	Far  float32

	// BoundRadius > 0 keeps the camera within that distance of BoundCenter
	BoundCenter mgl32.Vec3
	BoundRadius float32
}

// DefaultConfig returns a camera at the origin looking down -Z
func DefaultConfig() Config {
	return Config{
		FOV:  mgl32.DegToRad(DefaultFOV),
		Near: DefaultNear,
		Far:  DefaultFar,
	}
}

// Camera owns a position and a yaw/pitch orientation.
// The view matrix and basis vectors are derived on demand and never cached.
type Camera struct {
	position mgl32.Vec3

	// Euler angles, radians
	yaw   float32
	pitch float32

	// Lens
	fov  float32
	near float32
	far  float32

	boundCenter mgl32.Vec3
	boundRadius float32
}

// New creates a camera from cfg. Zero lens values fall back to the defaults.
func New(cfg Config) *Camera {
	def := DefaultConfig()
	if cfg.FOV <= 0 {
		cfg.FOV = def.FOV
	}
	if cfg.Near <= 0 {
		cfg.Near = def.Near
	}
	if cfg.Far <= cfg.Near {
		cfg.Far = def.Far
	}

	c := &Camera{
		position:    cfg.Position,
		fov:         cfg.FOV,
		near:        cfg.Near,
		far:         cfg.Far,
		boundCenter: cfg.BoundCenter,
		boundRadius: cfg.BoundRadius,
	}
	c.Rotate(Yaw, cfg.Yaw)
	c.Rotate(Pitch, cfg.Pitch)

	return c
}

// Position returns the current camera position
func (c *Camera) Position() mgl32.Vec3 {
	return c.position
}

// Orientation returns the current yaw and pitch in radians
func (c *Camera) Orientation() (yaw, pitch float32) {
	return c.yaw, c.pitch
}

// Basis returns the orthonormal forward, right and up vectors of the current orientation
func (c *Camera) Basis() (forward, right, up mgl32.Vec3) {
	yaw := float64(c.yaw)
	pitch := float64(c.pitch)

	forward = mgl32.Vec3{
		float32(-math.Sin(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(-math.Cos(yaw) * math.Cos(pitch)),
	}.Normalize()

	// Gram-Schmidt against world up; valid because pitch never reaches ±90°
	right = forward.Cross(WorldUp).Normalize()
	up = right.Cross(forward).Normalize()

	return forward, right, up
}

// FrontVector returns the look direction
func (c *Camera) FrontVector() mgl32.Vec3 {
	f, _, _ := c.Basis()
	return f
}

// Translate moves the camera by distance along a camera-local direction.
// Forward always means the current look direction, not world -Z.
//
// It reports false when the move was rejected because it would leave the
// bounding sphere; the position is then unchanged.
func (c *Camera) Translate(localDirection mgl32.Vec3, distance float32) bool {
	if distance == 0 || isBad(distance) {
		return true
	}

	l := localDirection.Len()
	if l == 0 || isBad(l) {
		return true
	}
	local := localDirection.Mul(1 / l)

	forward, right, up := c.Basis()
	world := right.Mul(local.X()).
		Add(up.Mul(local.Y())).
		Sub(forward.Mul(local.Z()))

	next := c.position.Add(world.Mul(distance))
	if c.boundRadius > 0 && next.Sub(c.boundCenter).Len() > c.boundRadius {
		return false
	}

	c.position = next
	return true
}

// Rotate changes yaw or pitch by angle radians.
// Yaw wraps into [0, 2π); pitch is clamped to [MinPitch, MaxPitch].
func (c *Camera) Rotate(axis Axis, angle float32) {
	if angle == 0 || isBad(angle) {
		return
	}

	switch axis {
	case Yaw:
		c.yaw = wrapAngle(c.yaw + angle)
	case Pitch:
		c.pitch = mgl32.Clamp(c.pitch+angle, MinPitch, MaxPitch)
	}
}

// LookAt points the camera at target
func (c *Camera) LookAt(target mgl32.Vec3) {
	direction := target.Sub(c.position)
	if direction.Len() == 0 {
		return
	}
	direction = direction.Normalize()

	yaw := float32(math.Atan2(float64(-direction.X()), float64(-direction.Z())))
	pitch := float32(math.Asin(float64(mgl32.Clamp(direction.Y(), -1, 1))))

	c.yaw = wrapAngle(yaw)
	c.pitch = mgl32.Clamp(pitch, MinPitch, MaxPitch)
}

// ViewMatrix returns the world-to-camera transform for the current state
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	forward, _, up := c.Basis()
	return mgl32.LookAtV(c.position, c.position.Add(forward), up)
}

// ProjectionMatrix returns the perspective projection for a viewport size
func (c *Camera) ProjectionMatrix(width, height int) mgl32.Mat4 {
	if height <= 0 {
		height = 1
	}
	if width <= 0 {
		width = 1
	}
	aspect := float32(width) / float32(height)
	return mgl32.Perspective(c.fov, aspect, c.near, c.far)
}

// Lens returns the vertical field of view in radians and the clip planes
func (c *Camera) Lens() (fov, near, far float32) {
	return c.fov, c.near, c.far
}

// DegenerateError reports a collapsed orientation basis
type DegenerateError struct {
	ForwardLen float32
	UpLen      float32
	Dot        float32
}

func (e *DegenerateError) Error() string {
	return fmt.Sprintf("camera: degenerate basis: |forward|=%g |up|=%g forward·up=%g", e.ForwardLen, e.UpLen, e.Dot)
}

// CheckBasis verifies forward and up are unit length and perpendicular
func (c *Camera) CheckBasis() error {
	forward, _, up := c.Basis()

	fl, ul, dot := forward.Len(), up.Len(), forward.Dot(up)
	if abs(fl-1) > Epsilon || abs(ul-1) > Epsilon || abs(dot) > Epsilon || isBad(fl) || isBad(ul) {
		return &DegenerateError{ForwardLen: fl, UpLen: ul, Dot: dot}
	}
	return nil
}

func wrapAngle(a float32) float32 {
	w := math.Mod(float64(a), twoPi)
	if w < 0 {
		w += twoPi
	}
	r := float32(w)
	if r >= twoPi {
		r = 0
	}
	return r
}

func isBad(f float32) bool {
	return math.IsNaN(float64(f)) || math.IsInf(float64(f), 0)
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
