package mathtest

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestVec3NearAgainstZero(t *testing.T) {
	noise := float32(math.Cos(math.Pi / 2))
	tests := []struct {
		name string
		a, b mgl32.Vec3
		want bool
	}{
		{"trig noise next to zero", mgl32.Vec3{-1, 0, noise}, mgl32.Vec3{-1, 0, 0}, true},
		{"equal", mgl32.Vec3{1, 2, 3}, mgl32.Vec3{1, 2, 3}, true},
		{"outside tolerance", mgl32.Vec3{0, 0, 1e-3}, mgl32.Vec3{}, false},
		{"negative difference", mgl32.Vec3{5, 0, 0}, mgl32.Vec3{5.001, 0, 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Vec3Near(tt.a, tt.b, 1e-4); got != tt.want {
				t.Errorf("Vec3Near(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestQuatAndMat4Near(t *testing.T) {
	q := mgl32.QuatRotate(math.Pi, mgl32.Vec3{0, 1, 0})
	if !QuatNear(q, mgl32.Quat{W: 0, V: mgl32.Vec3{0, 1, 0}}, 1e-4) {
		t.Errorf("QuatNear rejected %v", q)
	}
	if QuatNear(mgl32.QuatIdent(), mgl32.Quat{W: -1}, 1e-4) {
		t.Error("QuatNear accepted the negated identity")
	}

	m := mgl32.HomogRotate3DY(math.Pi / 2)
	want := mgl32.Mat4{0, 0, -1, 0, 0, 1, 0, 0, 1, 0, 0, 0, 0, 0, 0, 1}
	if !Mat4Near(m, want, 1e-4) {
		t.Errorf("Mat4Near(%v, %v) = false", m, want)
	}
	want[15] = 2
	if Mat4Near(m, want, 1e-4) {
		t.Error("Mat4Near accepted a different matrix")
	}
}
