package geom

import (
	"fmt"
	"math"
	"strings"
)

// Contour is a closed ring of points. The last point connects back to the
// first; it is not repeated.
type Contour []Point

// Polygon is one outer contour with any number of holes nested inside it.
// The outer contour runs counterclockwise, holes run clockwise.
type Polygon struct {
	Outer Contour
	Holes []Contour
}

func (c Contour) Reverse() Contour {
	reversed := make(Contour, len(c))
	for i, p := range c {
		reversed[len(c)-1-i] = p
	}
	return reversed
}

// Translate returns a copy of the contour moved by offset.
func (c Contour) Translate(offset Point) Contour {
	moved := make(Contour, len(c))
	for i, p := range c {
		moved[i] = p.Add(offset)
	}
	return moved
}

// SignedArea is the shoelace area. It is positive for counterclockwise
// contours and negative for clockwise ones.
func (c Contour) SignedArea() float64 {
	var sum float64
	for i, p1 := range c {
		p2 := c[CircularIndex(i+1, len(c))]
		sum += p1.X*p2.Y - p2.X*p1.Y
	}
	return sum / 2
}

func (c Contour) Area() float64 {
	return math.Abs(c.SignedArea())
}

// IsClockwise reports whether the contour winds the way holes do.
func (c Contour) IsClockwise() bool {
	return IsClockwise(c)
}

// IsConvex reports whether every corner of the contour is strictly convex.
func (c Contour) IsConvex() bool {
	n := len(c)
	for i := range c {
		if !IsConvex(c[CircularIndex(i-1, n)], c[i], c[CircularIndex(i+1, n)]) {
			return false
		}
	}
	return true
}

// ContainsPointByEvenOdd is a ray casting point-in-polygon test. Output is
// not defined for points exactly on an edge.
func (c Contour) ContainsPointByEvenOdd(p Point) bool {
	inside := false
	j := len(c) - 1
	for i := range c {
		xi, yi := c[i].X, c[i].Y
		xj, yj := c[j].X, c[j].Y
		if (yi > p.Y) != (yj > p.Y) && p.X < (xj-xi)*(p.Y-yi)/(yj-yi)+xi {
			inside = !inside
		}
		j = i
	}
	return inside
}

func (c Contour) String() string {
	parts := make([]string, len(c))
	for i, p := range c {
		parts[i] = fmt.Sprintf("(%g, %g)", p.X, p.Y)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// IsClockwise reports whether points wind clockwise under the package's
// screen convention.
func IsClockwise(points []Point) bool {
	var sum float64
	for i, p1 := range points {
		p2 := points[CircularIndex(i+1, len(points))]
		sum += (p2.X - p1.X) * (p2.Y + p1.Y)
	}
	return sum > 0
}

// Area of the outer contour minus the area of the holes.
func (poly Polygon) Area() float64 {
	area := poly.Outer.Area()
	for _, hole := range poly.Holes {
		area -= hole.Area()
	}
	return area
}

// ContainsPointByEvenOdd applies the even-odd rule over the outer contour
// and every hole.
func (poly Polygon) ContainsPointByEvenOdd(p Point) bool {
	inside := poly.Outer.ContainsPointByEvenOdd(p)
	for _, hole := range poly.Holes {
		if hole.ContainsPointByEvenOdd(p) {
			inside = !inside
		}
	}
	return inside
}
