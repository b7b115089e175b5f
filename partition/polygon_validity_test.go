package partition

// This contains no actual tests. It is just helpers for checking partition
// validity.

import (
	"math"
	"testing"

	"github.com/osuushi/levelx/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper to check that a triangulation is valid. The rules are:
// 1. Every triangle vertex is a vertex of the polygon.
// 2. Every triangle winds the same way as the polygon, with nonzero area.
// 3. The sum of the triangle areas equals the area of the polygon.
func assertValidTriangulation(t *testing.T, polygon geom.Contour, triangles []geom.Contour) {
	require.False(t, polygon.IsClockwise(), "polygon is not counterclockwise")

	polyPoints := make(map[geom.Key]bool)
	for _, p := range polygon {
		polyPoints[geom.KeyOf(p)] = true
	}

	var triangleArea float64
	for _, tri := range triangles {
		require.Len(t, tri, 3)
		for _, p := range tri {
			require.True(t, polyPoints[geom.KeyOf(p)], "triangle vertex %v is not a polygon vertex", p)
		}
		require.Greater(t, tri.SignedArea(), 0.0, "clockwise or flat triangle: %s", tri)
		triangleArea += tri.Area()
	}

	require.InDelta(t, polygon.Area(), triangleArea, 1e-6, "sum of the triangle areas must equal the polygon area")
}

// Every corner is convex or straight, up to float noise.
func assertConvex(t *testing.T, contour geom.Contour) {
	n := len(contour)
	for i := range contour {
		prev, next := contour[geom.CircularIndex(i-1, n)], contour[geom.CircularIndex(i+1, n)]
		assert.LessOrEqual(t, geom.Area(prev, contour[i], next), geom.Epsilon, "reflex corner at %v in %s", contour[i], contour)
	}
}

func sumArea(contours []geom.Contour) float64 {
	var area float64
	for _, c := range contours {
		area += c.Area()
	}
	return area
}

// Sample a grid over the bounding box and check that the pieces cover exactly
// the expected polygon. Overlapping pieces cancel under the even-odd rule, so
// this also catches overlap.
func validatePiecesBySampling(t *testing.T, pieces []geom.Contour, expected geom.Polygon) {
	minX, minY, maxX, maxY := math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)
	for _, p := range expected.Outer {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}

	// Pad the bounding box by 10%
	xPadding := (maxX - minX) * 0.1
	yPadding := (maxY - minY) * 0.1
	minX -= xPadding
	minY -= yPadding
	maxX += xPadding
	maxY += yPadding

	step := math.Max(maxX-minX, maxY-minY) / 50
	// Offset the samples so they do not land on integer edges or diagonals.
	xOffset, yOffset := step*0.37, step*0.61

	for y := minY + yOffset; y <= maxY; y += step {
		for x := minX + xOffset; x <= maxX; x += step {
			p := geom.Pt(x, y)

			actual := false
			for _, piece := range pieces {
				if piece.ContainsPointByEvenOdd(p) {
					actual = !actual
				}
			}
			if expected.ContainsPointByEvenOdd(p) {
				assert.True(t, actual, "point %v should be covered", p)
			} else {
				assert.False(t, actual, "point %v should not be covered", p)
			}
		}
	}
}
