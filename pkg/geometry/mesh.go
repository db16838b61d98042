// Package geometry generates the CPU-side meshes the scene is built from.
// Every mesh uses the same interleaved layout: position (3), normal (3),
// texture coordinates (2).
package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// FloatsPerVertex is the stride of Mesh.Vertices in float32 units
const FloatsPerVertex = 8

// Mesh is an indexed triangle list
type Mesh struct {
	Vertices []float32
	Indices  []uint32
}

// VertexCount returns the number of vertices
func (m Mesh) VertexCount() int {
	return len(m.Vertices) / FloatsPerVertex
}

// Position returns the position of vertex i
func (m Mesh) Position(i int) mgl32.Vec3 {
	o := i * FloatsPerVertex
	return mgl32.Vec3{m.Vertices[o], m.Vertices[o+1], m.Vertices[o+2]}
}

// Normal returns the normal of vertex i
func (m Mesh) Normal(i int) mgl32.Vec3 {
	o := i*FloatsPerVertex + 3
	return mgl32.Vec3{m.Vertices[o], m.Vertices[o+1], m.Vertices[o+2]}
}

// TexCoord returns the texture coordinates of vertex i
func (m Mesh) TexCoord(i int) mgl32.Vec2 {
	o := i*FloatsPerVertex + 6
	return mgl32.Vec2{m.Vertices[o], m.Vertices[o+1]}
}

func (m *Mesh) addVertex(position, normal mgl32.Vec3, uv mgl32.Vec2) uint32 {
	idx := uint32(m.VertexCount())
	m.Vertices = append(m.Vertices,
		position[0], position[1], position[2],
		normal[0], normal[1], normal[2],
		uv[0], uv[1],
	)
	return idx
}

// addGrid emits two triangles per cell of a (rows+1) x (cols+1) vertex grid starting at base
func (m *Mesh) addGrid(base uint32, rows, cols int) {
	stride := uint32(cols + 1)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			a := base + uint32(i)*stride + uint32(j)
			b := a + stride
			m.Indices = append(m.Indices,
				a, b, a+1,
				a+1, b, b+1,
			)
		}
	}
}

// Sphere creates a unit sphere centered on the origin with its poles on the Y axis
func Sphere(slices, stacks int) Mesh {
	slices = max(slices, 3)
	stacks = max(stacks, 2)

	var m Mesh
	m.Vertices = make([]float32, 0, (stacks+1)*(slices+1)*FloatsPerVertex)
	m.Indices = make([]uint32, 0, stacks*slices*6)

	for i := 0; i <= stacks; i++ {
		phi := math.Pi * float64(i) / float64(stacks)
		for j := 0; j <= slices; j++ {
			theta := 2 * math.Pi * float64(j) / float64(slices)
			p := mgl32.Vec3{
				float32(math.Sin(phi) * math.Cos(theta)),
				float32(math.Cos(phi)),
				float32(math.Sin(phi) * math.Sin(theta)),
			}
			uv := mgl32.Vec2{
				float32(j) / float32(slices),
				1 - float32(i)/float32(stacks),
			}
			m.addVertex(p, p, uv)
		}
	}
	m.addGrid(0, stacks, slices)

	return m
}

// Cylinder creates an open tube of height 1 standing on the XZ plane along +Y.
// The radius goes linearly from baseRadius at y=0 to topRadius at y=1, so a
// smaller top radius produces a truncated cone.
func Cylinder(baseRadius, topRadius float32, slices, stacks int) Mesh {
	slices = max(slices, 3)
	stacks = max(stacks, 1)

	var m Mesh
	m.Vertices = make([]float32, 0, (stacks+1)*(slices+1)*FloatsPerVertex)
	m.Indices = make([]uint32, 0, stacks*slices*6)

	// Slope of the side wall; the normal leans up when the tube narrows
	slope := baseRadius - topRadius

	for i := 0; i <= stacks; i++ {
		t := float32(i) / float32(stacks)
		r := baseRadius + (topRadius-baseRadius)*t
		for j := 0; j <= slices; j++ {
			theta := 2 * math.Pi * float64(j) / float64(slices)
			cos, sin := float32(math.Cos(theta)), float32(math.Sin(theta))

			p := mgl32.Vec3{r * cos, t, r * sin}
			n := mgl32.Vec3{cos, slope, sin}.Normalize()
			uv := mgl32.Vec2{float32(j) / float32(slices), t}
			m.addVertex(p, n, uv)
		}
	}
	m.addGrid(0, stacks, slices)

	return m
}

// CrossedQuads creates faces unit quads standing on the XZ plane, spaced evenly
// over half a turn around the Y axis so that a cut-out texture reads as a solid
// object from any heading. Each quad spans x in [-0.5, 0.5] and y in [0, 1].
// Normals point along +Y so the quads shade like the ground they stand on.
func CrossedQuads(faces int) Mesh {
	faces = max(faces, 1)

	var m Mesh
	m.Vertices = make([]float32, 0, faces*4*FloatsPerVertex)
	m.Indices = make([]uint32, 0, faces*6)

	corners := [4]mgl32.Vec3{
		{-0.5, 0, 0},
		{0.5, 0, 0},
		{0.5, 1, 0},
		{-0.5, 1, 0},
	}
	uvs := [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	normal := mgl32.Vec3{0, 1, 0}

	for f := 0; f < faces; f++ {
		rot := mgl32.Rotate3DY(math.Pi * float32(f) / float32(faces))
		base := m.addVertex(rot.Mul3x1(corners[0]), normal, uvs[0])
		for c := 1; c < 4; c++ {
			m.addVertex(rot.Mul3x1(corners[c]), normal, uvs[c])
		}
		m.Indices = append(m.Indices,
			base, base+1, base+2,
			base+2, base+3, base,
		)
	}

	return m
}
