// Package mathtest compares mgl32 values in tests.
//
// mgl32's ApproxEqualThreshold switches to a squared threshold when either
// operand is zero, which rejects ordinary float32 trig noise such as
// cos(π/2). These helpers compare every component against an absolute
// tolerance instead.
package mathtest

import "github.com/go-gl/mathgl/mgl32"

func near(a, b, tol float32) bool {
	d := a - b
	return d <= tol && d >= -tol
}

// Vec3Near reports whether every component of a and b differs by at most tol
func Vec3Near(a, b mgl32.Vec3, tol float32) bool {
	for i := range a {
		if !near(a[i], b[i], tol) {
			return false
		}
	}
	return true
}

// QuatNear compares component-wise; q and -q are treated as different
func QuatNear(a, b mgl32.Quat, tol float32) bool {
	return near(a.W, b.W, tol) && Vec3Near(a.V, b.V, tol)
}

func Mat4Near(a, b mgl32.Mat4, tol float32) bool {
	for i := range a {
		if !near(a[i], b[i], tol) {
			return false
		}
	}
	return true
}
