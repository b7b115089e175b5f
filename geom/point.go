// Package geom holds the planar primitives shared by the level grid and the
// polygon pipeline.
//
// Coordinates follow the screen convention used by tile maps: x grows to the
// right and y grows downwards. Under that convention a tile quad listed as
// top-left, top-right, bottom-right, bottom-left is what the rest of the
// package calls counterclockwise, and holes run the other way.
package geom

import (
	"math"

	"github.com/golang/geo/r2"
)

// Point is a 2-D coordinate or direction. It is r2.Point, so Add, Sub, Mul,
// Dot, Cross and Norm are available directly.
type Point = r2.Point

// Epsilon is the tolerance used wherever a float comparison has to absorb
// arithmetic noise.
const Epsilon = 1e-9

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Equal compares two points exactly.
func Equal(a, b Point) bool {
	return a.X == b.X && a.Y == b.Y
}

// ApproxEqual compares two points coordinate-wise within eps.
func ApproxEqual(a, b Point, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps
}

func Distance(a, b Point) float64 {
	return b.Sub(a).Norm()
}

// Area is the signed area of the triple a, b, c, scaled by two. It is
// negative when a->b->c turns the way a counterclockwise contour turns at a
// convex corner, and zero when the points are collinear.
func Area(a, b, c Point) float64 {
	return (b.Y-a.Y)*(c.X-b.X) - (b.X-a.X)*(c.Y-b.Y)
}

// IsConvex reports whether the corner p1->p2->p3 of a counterclockwise
// contour is strictly convex. The turn is judged on quantized coordinates.
func IsConvex(p1, p2, p3 Point) bool {
	return Orient(p1, p2, p3) < 0
}

// InCone reports whether p lies inside the corner p1->p2->p3 of a
// counterclockwise contour. Reflex corners accept anything that is not behind
// both of their edges.
func InCone(p1, p2, p3, p Point) bool {
	if IsConvex(p1, p2, p3) {
		return IsConvex(p1, p2, p) && IsConvex(p2, p3, p)
	}
	return IsConvex(p1, p2, p) || IsConvex(p2, p3, p)
}

// Intersects reports whether segments p11-p12 and p21-p22 cross. Segments
// sharing an endpoint never intersect. Endpoints and turns are compared on
// quantized coordinates.
func Intersects(p11, p12, p21, p22 Point) bool {
	if SameKey(p11, p21) || SameKey(p11, p22) || SameKey(p12, p21) || SameKey(p12, p22) {
		return false
	}

	side21 := Orient(p11, p12, p21)
	side22 := Orient(p11, p12, p22)
	side11 := Orient(p21, p22, p11)
	side12 := Orient(p21, p22, p12)

	if side21 == 0 && side22 == 0 {
		// Collinear: they cross only if their projections overlap.
		dir := p12.Sub(p11)
		t1, t2 := p21.Sub(p11).Dot(dir), p22.Sub(p11).Dot(dir)
		length := dir.Dot(dir)
		return math.Max(t1, t2) > 0 && math.Min(t1, t2) < length
	}

	return !(side11*side12 > 0 || side21*side22 > 0)
}

// Often we want to treat a slice as a circular buffer. This gives the modular
// index given length n, but unlike the raw modulo operator it never goes
// negative.
func CircularIndex(i, n int) int {
	return (i%n + n) % n
}
