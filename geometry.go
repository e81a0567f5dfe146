package retrograde

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

const (
	tangentε = 1e-12 // relative tolerance on the discriminant of tangent lines
)

// Intersect returns where the ray from a through b leaves the circle of the provided radius and center.
//
// The line (a, b) is written as A·x + B·y + C = 0 in the frame of the circle, which crosses
// the circle in (x0 ± B·m, y0 ∓ A·m) where (x0, y0) is the foot of the perpendicular from the center.
// The crossing kept is on the side of b with respect to the perpendicular to the line through a;
// when both are (a lies outside the circle), the furthest one is kept.
func Intersect(radius float64, center, a, b r2.Vec) (r2.Vec, error) {
	// Shift the origin to the center.
	ra := r2.Sub(a, center)
	rb := r2.Sub(b, center)
	x1, y1 := ra.X, ra.Y
	x2, y2 := rb.X, rb.Y

	A := y1 - y2
	B := x2 - x1
	C := y2*x1 - x2*y1
	AB := A*A + B*B
	if AB == 0 {
		return r2.Vec{}, newDomainError(DegenerateLine, "(%f, %f) and (%f, %f) coincide", a.X, a.Y, b.X, b.Y)
	}

	x0 := -A * C / AB
	y0 := -B * C / AB
	d := radius*radius - C*C/AB
	if d < 0 {
		if d < -tangentε*radius*radius {
			return r2.Vec{}, newDomainError(NoIntersection, "line is %f away from the center of a circle of radius %f", math.Sqrt(C*C/AB), radius)
		}
		d = 0
	}
	m := math.Sqrt(d / AB)
	p1 := r2.Vec{X: x0 + B*m, Y: y0 - A*m}
	p2 := r2.Vec{X: x0 - B*m, Y: y0 + A*m}

	// Perpendicular to the line, through a: a1·x + b1·y + c1 = 0.
	a1, b1, c1 := -B, A, B*x1-A*y1
	side := lineEval(a1, b1, c1, rb) > 0
	s1 := lineEval(a1, b1, c1, p1)
	s2 := lineEval(a1, b1, c1, p2)
	ahead1 := (s1 > 0) == side || s1 == 0
	ahead2 := (s2 > 0) == side || s2 == 0

	var p r2.Vec
	switch {
	case ahead1 && ahead2:
		p = p1
		if math.Abs(s2) > math.Abs(s1) {
			p = p2
		}
	case ahead1:
		p = p1
	case ahead2:
		p = p2
	default:
		return r2.Vec{}, newDomainError(NoIntersection, "circle is behind (%f, %f) looking towards (%f, %f)", a.X, a.Y, b.X, b.Y)
	}
	return r2.Add(p, center), nil
}
