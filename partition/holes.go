package partition

import (
	"math"

	"github.com/osuushi/levelx/geom"
)

// RemoveHoles splices every hole into the outer contour through a zero-width
// bridge, producing a single weakly simple contour with the same area. The
// outer contour must run counterclockwise and the holes clockwise unless
// skipWindingCheck is set.
//
// Holes are processed rightmost first. Each one is bridged from its rightmost
// vertex to an outer vertex that sees it without crossing any edge,
// preferring the vertex whose direction is closest to +x.
func RemoveHoles(polygon geom.Contour, holes []geom.Contour, skipWindingCheck bool) (result geom.Contour, err error) {
	defer func() {
		if recoveredErr := HandlePanicRecover(recover()); recoveredErr != nil {
			result = nil
			err = recoveredErr
		}
	}()
	return removeHoles(polygon, holes, skipWindingCheck), nil
}

func removeHoles(polygon geom.Contour, holes []geom.Contour, skipWindingCheck bool) geom.Contour {
	if !skipWindingCheck {
		if geom.IsClockwise(polygon) {
			fatalf("polygon should be counterclockwise")
		}
		for _, hole := range holes {
			if !geom.IsClockwise(hole) {
				fatalf("hole should be clockwise")
			}
		}
	}

	holes = append([]geom.Contour(nil), holes...)
	for len(holes) > 0 {
		holeIndex, holePointIndex := rightmostHolePoint(holes)
		hole := holes[holeIndex]
		holePoint := hole[holePointIndex]

		n := len(polygon)
		polyPointIndex := -1
		for i := 0; i < n; i++ {
			p1 := polygon[geom.CircularIndex(i-1, n)]
			p2 := polygon[i]
			p3 := polygon[geom.CircularIndex(i+1, n)]
			if !geom.InCone(p1, p2, p3, holePoint) {
				continue
			}

			if polyPointIndex >= 0 {
				candidate := p2.Sub(holePoint)
				best := polygon[polyPointIndex].Sub(holePoint)
				if best.X/best.Norm() > candidate.X/candidate.Norm() {
					continue
				}
			}

			if bridgeIsVisible(holePoint, p2, polygon, holes) {
				polyPointIndex = i
			}
		}

		if polyPointIndex < 0 {
			fatalf("failed to find cutting point, there may be self-intersection in the polygon")
		}

		// outer[0..k], hole from the bridge point all the way around and back to
		// it, then outer[k..]. Both bridge ends appear twice.
		merged := make(geom.Contour, 0, n+len(hole)+2)
		merged = append(merged, polygon[:polyPointIndex+1]...)
		for i := 0; i <= len(hole); i++ {
			merged = append(merged, hole[(i+holePointIndex)%len(hole)])
		}
		merged = append(merged, polygon[polyPointIndex:]...)

		polygon = merged
		holes = append(holes[:holeIndex:holeIndex], holes[holeIndex+1:]...)
	}

	return polygon
}

func rightmostHolePoint(holes []geom.Contour) (holeIndex, pointIndex int) {
	largestX := math.Inf(-1)
	for i, hole := range holes {
		for j, p := range hole {
			if p.X > largestX {
				largestX = p.X
				holeIndex, pointIndex = i, j
			}
		}
	}
	return holeIndex, pointIndex
}

// A bridge is usable if it crosses no edge of the outer contour nor of any
// hole still waiting to be spliced in.
func bridgeIsVisible(from, to geom.Point, polygon geom.Contour, holes []geom.Contour) bool {
	for _, ring := range append([]geom.Contour{polygon}, holes...) {
		n := len(ring)
		for j := 0; j < n; j++ {
			if geom.Intersects(from, to, ring[j], ring[geom.CircularIndex(j+1, n)]) {
				return false
			}
		}
	}
	return true
}
