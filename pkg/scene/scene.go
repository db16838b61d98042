// Package scene describes what to draw: an ordered, immutable list of render
// objects that reference geometry and materials by name.
package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// GeometryRef names a mesh held in asset storage
type GeometryRef string

// MaterialRef names a material held in asset storage
type MaterialRef string

// Transform places an object: scale, then rotate, then translate
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

// Identity returns a transform that leaves geometry unchanged
func Identity() Transform {
	return Transform{
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// normalized fills in a zero rotation or scale so a literal Transform{} behaves as Identity
func (t Transform) normalized() Transform {
	if t.Rotation.W == 0 && t.Rotation.V == (mgl32.Vec3{}) {
		t.Rotation = mgl32.QuatIdent()
	} else {
		t.Rotation = t.Rotation.Normalize()
	}
	if t.Scale == (mgl32.Vec3{}) {
		t.Scale = mgl32.Vec3{1, 1, 1}
	}
	return t
}

// Matrix returns T * R * S
func (t Transform) Matrix() mgl32.Mat4 {
	t = t.normalized()
	return mgl32.Translate3D(t.Position[0], t.Position[1], t.Position[2]).
		Mul4(t.Rotation.Mat4()).
		Mul4(mgl32.Scale3D(t.Scale[0], t.Scale[1], t.Scale[2]))
}

// Compose returns child expressed in the parent's space.
// The parent's scale must be uniform for the result to be exact.
func (t Transform) Compose(child Transform) Transform {
	t = t.normalized()
	child = child.normalized()

	return Transform{
		Position: t.Position.Add(t.Rotation.Rotate(mulElem(child.Position, t.Scale))),
		Rotation: t.Rotation.Mul(child.Rotation).Normalize(),
		Scale:    mulElem(t.Scale, child.Scale),
	}
}

// WithScale returns a copy of t with its scale replaced
func (t Transform) WithScale(scale mgl32.Vec3) Transform {
	t.Scale = scale
	return t
}

// Motion is a continuous rotation about an axis through the origin of its frame
type Motion struct {
	Axis mgl32.Vec3
	Rate float32 // radians per second
}

// At returns the rotation accumulated after t seconds
func (m Motion) At(t float64) mgl32.Quat {
	if m.Rate == 0 || m.Axis.Len() == 0 {
		return mgl32.QuatIdent()
	}
	// Accumulate in float64 so long sessions do not lose precision
	angle := math.Mod(float64(m.Rate)*t, 2*math.Pi)
	return mgl32.QuatRotate(float32(angle), m.Axis.Normalize())
}

// RenderObject is one drawable entry of a Scene
type RenderObject struct {
	Name      string
	Transform Transform
	Spin      Motion // about the object's own origin, in its local frame
	Orbit     Motion // about the world origin
	Geometry  GeometryRef
	Material  MaterialRef
}

// ModelAt returns the object's model matrix t seconds into the animation
func (o RenderObject) ModelAt(t float64) mgl32.Mat4 {
	return o.Orbit.At(t).Mat4().
		Mul4(o.Transform.Matrix()).
		Mul4(o.Spin.At(t).Mat4())
}

// Light is a point light
type Light struct {
	Position mgl32.Vec3
	Orbit    Motion
	Ambient  mgl32.Vec3
	Diffuse  mgl32.Vec3
	Specular mgl32.Vec3
}

// PositionAt returns the light position t seconds into the animation
func (l Light) PositionAt(t float64) mgl32.Vec3 {
	return l.Orbit.At(t).Rotate(l.Position)
}

// Scene is an ordered, read-only list of render objects plus lighting
type Scene struct {
	objects    []RenderObject
	light      Light
	clearColor mgl32.Vec4
}

// New creates a scene. The objects are copied and drawn in the given order.
func New(light Light, clearColor mgl32.Vec4, objects ...RenderObject) *Scene {
	return &Scene{
		objects:    append([]RenderObject(nil), objects...),
		light:      light,
		clearColor: clearColor,
	}
}

// Len returns the number of objects
func (s *Scene) Len() int {
	return len(s.objects)
}

// Object returns the i-th object in draw order
func (s *Scene) Object(i int) RenderObject {
	return s.objects[i]
}

// Objects returns a copy of the objects in draw order
func (s *Scene) Objects() []RenderObject {
	return append([]RenderObject(nil), s.objects...)
}

// Light returns the scene light
func (s *Scene) Light() Light {
	return s.light
}

// ClearColor returns the background color
func (s *Scene) ClearColor() mgl32.Vec4 {
	return s.clearColor
}

// Geometries returns every referenced geometry once, in first-use order
func (s *Scene) Geometries() []GeometryRef {
	seen := make(map[GeometryRef]bool)
	var refs []GeometryRef
	for _, o := range s.objects {
		if !seen[o.Geometry] {
			seen[o.Geometry] = true
			refs = append(refs, o.Geometry)
		}
	}
	return refs
}

// Materials returns every referenced material once, in first-use order
func (s *Scene) Materials() []MaterialRef {
	seen := make(map[MaterialRef]bool)
	var refs []MaterialRef
	for _, o := range s.objects {
		if !seen[o.Material] {
			seen[o.Material] = true
			refs = append(refs, o.Material)
		}
	}
	return refs
}

// OnSphere returns a transform standing on a sphere around center: its local +Y
// is the surface normal at the given longitude and latitude (degrees), height is
// the distance from center and heading turns the result about that normal.
func OnSphere(center mgl32.Vec3, longitude, latitude, height, heading float32) Transform {
	frame := mgl32.QuatRotate(mgl32.DegToRad(longitude-90), mgl32.Vec3{0, 1, 0}).
		Mul(mgl32.QuatRotate(mgl32.DegToRad(latitude-90), mgl32.Vec3{0, 0, 1}))

	return Transform{
		Position: center.Add(frame.Rotate(mgl32.Vec3{0, height, 0})),
		Rotation: frame.Mul(mgl32.QuatRotate(mgl32.DegToRad(heading), mgl32.Vec3{0, 1, 0})).Normalize(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

func mulElem(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}
