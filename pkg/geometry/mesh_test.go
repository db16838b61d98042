package geometry

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/go-lair/internal/mathtest"
)

func checkIndices(t *testing.T, m Mesh) {
	t.Helper()
	if len(m.Indices)%3 != 0 {
		t.Fatalf("len(Indices) = %d, not a triangle list", len(m.Indices))
	}
	n := uint32(m.VertexCount())
	for i, idx := range m.Indices {
		if idx >= n {
			t.Fatalf("Indices[%d] = %d, out of range for %d vertices", i, idx, n)
		}
	}
}

func TestSphere(t *testing.T) {
	tests := []struct {
		name           string
		slices, stacks int
		wantVerts      int
	}{
		{"planet", 64, 64, 65 * 65},
		{"coarse", 8, 4, 9 * 5},
		{"clamped", 1, 1, 4 * 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Sphere(tt.slices, tt.stacks)
			if m.VertexCount() != tt.wantVerts {
				t.Fatalf("VertexCount() = %d, want %d", m.VertexCount(), tt.wantVerts)
			}
			checkIndices(t, m)

			for i := 0; i < m.VertexCount(); i++ {
				p := m.Position(i)
				if math.Abs(float64(p.Len())-1) > 1e-5 {
					t.Fatalf("vertex %d at radius %v", i, p.Len())
				}
				if !mathtest.Vec3Near(m.Normal(i), p, 1e-5) {
					t.Fatalf("vertex %d normal %v != position %v", i, m.Normal(i), p)
				}
				uv := m.TexCoord(i)
				if uv.X() < 0 || uv.X() > 1 || uv.Y() < 0 || uv.Y() > 1 {
					t.Fatalf("vertex %d uv %v outside [0,1]", i, uv)
				}
			}
		})
	}
}

func TestSpherePoles(t *testing.T) {
	m := Sphere(16, 8)
	if top := m.Position(0); !mathtest.Vec3Near(top, mgl32.Vec3{0, 1, 0}, 1e-5) {
		t.Errorf("first vertex = %v, want north pole", top)
	}
	if bottom := m.Position(m.VertexCount() - 1); !mathtest.Vec3Near(bottom, mgl32.Vec3{0, -1, 0}, 1e-5) {
		t.Errorf("last vertex = %v, want south pole", bottom)
	}
}

func TestCylinder(t *testing.T) {
	m := Cylinder(1, 1.0/7, 32, 4)
	checkIndices(t, m)

	if got, want := m.VertexCount(), 5*33; got != want {
		t.Fatalf("VertexCount() = %d, want %d", got, want)
	}

	for i := 0; i < m.VertexCount(); i++ {
		p := m.Position(i)
		wantR := 1 + (1.0/7-1)*p.Y()
		r := float32(math.Hypot(float64(p.X()), float64(p.Z())))
		if math.Abs(float64(r-wantR)) > 1e-5 {
			t.Fatalf("vertex %d at height %v has radius %v, want %v", i, p.Y(), r, wantR)
		}
		if n := m.Normal(i); math.Abs(float64(n.Len())-1) > 1e-5 || n.Y() <= 0 {
			t.Fatalf("vertex %d normal %v should be unit and lean up for a narrowing tube", i, n)
		}
	}
}

func TestStraightCylinderNormalsAreHorizontal(t *testing.T) {
	m := Cylinder(0.5, 0.5, 12, 1)
	for i := 0; i < m.VertexCount(); i++ {
		if n := m.Normal(i); n.Y() != 0 {
			t.Fatalf("vertex %d normal %v, want horizontal", i, n)
		}
	}
}

func TestCrossedQuads(t *testing.T) {
	for _, faces := range []int{1, 4, 10} {
		m := CrossedQuads(faces)
		checkIndices(t, m)

		if m.VertexCount() != faces*4 {
			t.Errorf("CrossedQuads(%d).VertexCount() = %d, want %d", faces, m.VertexCount(), faces*4)
		}
		if len(m.Indices) != faces*6 {
			t.Errorf("CrossedQuads(%d) has %d indices, want %d", faces, len(m.Indices), faces*6)
		}

		for i := 0; i < m.VertexCount(); i++ {
			p := m.Position(i)
			if p.Y() < 0 || p.Y() > 1 {
				t.Fatalf("vertex %d height %v outside [0,1]", i, p.Y())
			}
			if r := math.Hypot(float64(p.X()), float64(p.Z())); math.Abs(r-0.5) > 1e-5 {
				t.Fatalf("vertex %d at horizontal distance %v, want 0.5", i, r)
			}
		}
	}
}

func TestCrossedQuadsSpacing(t *testing.T) {
	m := CrossedQuads(4)
	// Face 1 of 4 is turned by π/4 about Y
	edge := m.Position(4 + 1)
	if math.Abs(float64(edge.Y())) > 1e-6 {
		t.Fatalf("bottom-right corner of face 1 = %v", edge)
	}
	angle := math.Atan2(float64(-edge.Z()), float64(edge.X()))
	if math.Abs(math.Abs(angle)-math.Pi/4) > 1e-5 {
		t.Errorf("face 1 is rotated %v rad, want π/4", angle)
	}
}
