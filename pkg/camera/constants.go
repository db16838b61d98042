package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera-local unit directions. The camera looks down -Z, +Y is up and +X is right.
var (
	Forward = mgl32.Vec3{0, 0, -1}
	Back    = mgl32.Vec3{0, 0, 1}
	Left    = mgl32.Vec3{-1, 0, 0}
	Right   = mgl32.Vec3{1, 0, 0}
	Up      = mgl32.Vec3{0, 1, 0}
	Down    = mgl32.Vec3{0, -1, 0}
)

// WorldUp is the world's vertical axis
var WorldUp = mgl32.Vec3{0, 1, 0}

// Camera constants
const (
	// Field of view, in degrees at the configuration boundary
	DefaultFOV  = 45.0
	DefaultNear = 0.1
	DefaultFar  = 500.0

	// Pitch stays strictly inside (-90°, 90°) so yaw is always defined
	MaxPitch = 89.0 * math.Pi / 180.0
	MinPitch = -MaxPitch

	// Tolerance for basis length and orthogonality checks
	Epsilon = 1e-4

	twoPi = 2 * math.Pi
)
