package canvas

import "math"

// Transform is a 2D affine matrix in canvas order:
//
//	x' = A*x + C*y + E
//	y' = B*x + D*y + F
type Transform struct {
	A, B, C, D, E, F float64
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{A: 1, D: 1}
}

// Translate returns t followed by a translation in t's local space.
func (t Transform) Translate(x, y float64) Transform {
	t.E += t.A*x + t.C*y
	t.F += t.B*x + t.D*y
	return t
}

// Rotate returns t followed by a clockwise rotation (screen space, y down)
// of angle radians in t's local space.
func (t Transform) Rotate(angle float64) Transform {
	sin, cos := math.Sincos(angle)
	return Transform{
		A: t.A*cos + t.C*sin,
		B: t.B*cos + t.D*sin,
		C: t.C*cos - t.A*sin,
		D: t.D*cos - t.B*sin,
		E: t.E,
		F: t.F,
	}
}

// Apply maps a local point to surface coordinates.
func (t Transform) Apply(x, y float64) (float64, float64) {
	return t.A*x + t.C*y + t.E, t.B*x + t.D*y + t.F
}

// Angle returns the rotation component of t in radians.
func (t Transform) Angle() float64 {
	return math.Atan2(t.B, t.A)
}
