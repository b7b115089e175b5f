package partition

import "github.com/osuushi/levelx/geom"

// ConvexPartition splits a simple, hole-free, counterclockwise contour into
// convex pieces. Contours that are already convex come back unchanged.
// Otherwise the contour is triangulated, and neighbouring pieces are merged
// across their shared diagonal whenever both ends of the diagonal stay convex
// (Hertel-Mehlhorn). The result has at most four times the optimal number of
// pieces.
func ConvexPartition(polygon geom.Contour, skipWindingCheck bool) (pieces []geom.Contour, err error) {
	defer func() {
		if recoveredErr := HandlePanicRecover(recover()); recoveredErr != nil {
			pieces = nil
			err = recoveredErr
		}
	}()
	return convexPartition(polygon, skipWindingCheck), nil
}

func convexPartition(polygon geom.Contour, skipWindingCheck bool) []geom.Contour {
	if polygon.IsConvex() {
		return []geom.Contour{polygon}
	}

	triangles := triangulate(polygon, skipWindingCheck)
	var pieces []geom.Contour

	for len(triangles) > 0 {
		poly := triangles[0]
		triangles = triangles[1:]

		for i := 0; i < len(poly); i++ {
			n := len(poly)
			diag1 := poly[i]
			diag2 := poly[geom.CircularIndex(i+1, n)]

			triIndex, apex, found := findOppositeTriangle(triangles, diag1, diag2)
			if !found {
				continue
			}

			// Both ends of the diagonal must stay convex (or straight) once the
			// triangle is absorbed.
			if geom.Orient(poly[geom.CircularIndex(i-1, n)], diag1, apex) > 0 {
				continue
			}
			if geom.Orient(apex, diag2, poly[geom.CircularIndex(i+2, n)]) > 0 {
				continue
			}

			merged := make(geom.Contour, 0, n+1)
			for j := geom.CircularIndex(i+1, n); j != i; j = geom.CircularIndex(j+1, n) {
				merged = append(merged, poly[j])
			}
			merged = append(merged, diag1, apex)

			poly = merged
			triangles = append(triangles[:triIndex:triIndex], triangles[triIndex+1:]...)
			// Restart the scan; every edge of the merged piece is a candidate again.
			i = -1
		}

		pieces = append(pieces, poly)
	}

	return pieces
}

// Find the triangle that owns the edge diag2->diag1, and its third vertex.
func findOppositeTriangle(triangles []geom.Contour, diag1, diag2 geom.Point) (int, geom.Point, bool) {
	for triIndex, tri := range triangles {
		for k := 0; k < 3; k++ {
			if geom.SameKey(tri[k], diag2) && geom.SameKey(tri[(k+1)%3], diag1) {
				return triIndex, tri[(k+2)%3], true
			}
		}
	}
	return 0, geom.Point{}, false
}
