package partition

import (
	"math"

	"github.com/osuushi/levelx/geom"
)

// Residual triangles thinner than this are dropped once clipping finishes.
const degenerateArea = 1e-5

// Ear clipping works on a circular doubly linked list of vertices. Vertices
// are never freed, only deactivated, so the backing slice doubles as the
// iteration order when searching for ears.
type earVertex struct {
	point        geom.Point
	prev, next   *earVertex
	isActive     bool
	isConvex     bool
	isEar        bool
	angleCos     float64
	shouldUpdate bool
}

// Triangulate splits a simple, hole-free, counterclockwise contour into
// triangles by ear clipping. Contours with fewer than four points are returned
// as they are. Pass skipWindingCheck to accept contours without validating
// their orientation.
func Triangulate(polygon geom.Contour, skipWindingCheck bool) (triangles []geom.Contour, err error) {
	defer func() {
		if recoveredErr := HandlePanicRecover(recover()); recoveredErr != nil {
			triangles = nil
			err = recoveredErr
		}
	}()
	return triangulate(polygon, skipWindingCheck), nil
}

func triangulate(polygon geom.Contour, skipWindingCheck bool) []geom.Contour {
	if !skipWindingCheck && geom.IsClockwise(polygon) {
		fatalf("polygon should be counterclockwise")
	}

	if len(polygon) < 4 {
		return []geom.Contour{polygon}
	}

	n := len(polygon)
	vertices := make([]*earVertex, n)
	for i, p := range polygon {
		vertices[i] = &earVertex{point: p, isActive: true, shouldUpdate: true}
	}
	for i, v := range vertices {
		v.prev = vertices[geom.CircularIndex(i-1, n)]
		v.next = vertices[geom.CircularIndex(i+1, n)]
	}
	for _, v := range vertices {
		v.update(vertices)
	}

	triangles := make([]geom.Contour, 0, n-2)
	for remaining := n; remaining > 3; {
		// Clip the sharpest ear first.
		var ear *earVertex
		for _, v := range vertices {
			if !v.isActive || !v.isEar {
				continue
			}
			if ear == nil || v.angleCos > ear.angleCos {
				ear = v
			}
		}

		if ear == nil {
			for _, v := range vertices {
				if v.isActive && math.Abs(geom.Area(v.prev.point, v.point, v.next.point)) > degenerateArea {
					fatalf("failed to find ear, there may be self-intersection in the polygon")
				}
			}
			break
		}

		triangles = append(triangles, geom.Contour{ear.prev.point, ear.point, ear.next.point})

		ear.isActive = false
		ear.prev.next = ear.next
		ear.next.prev = ear.prev
		ear.prev.shouldUpdate = true
		ear.next.shouldUpdate = true
		remaining--
		remaining -= removeCollinearOrDuplicate(ear.next)

		for _, v := range vertices {
			if v.isActive {
				v.update(vertices)
			}
		}
	}

	for _, v := range vertices {
		if !v.isActive {
			continue
		}
		v.prev.isActive = false
		v.next.isActive = false
		if math.Abs(geom.Area(v.prev.point, v.point, v.next.point)) > degenerateArea {
			triangles = append(triangles, geom.Contour{v.prev.point, v.point, v.next.point})
		}
	}

	return triangles
}

func (v *earVertex) update(vertices []*earVertex) {
	if !v.shouldUpdate {
		return
	}
	v.shouldUpdate = false

	v1, v2, v3 := v.prev.point, v.point, v.next.point
	v.isConvex = geom.IsConvex(v1, v2, v3)

	toPrev := v1.Sub(v2).Normalize()
	toNext := v3.Sub(v2).Normalize()
	v.angleCos = toPrev.Dot(toNext)

	if !v.isConvex {
		v.isEar = false
		return
	}

	v.isEar = true
	for _, other := range vertices {
		if !other.isActive || other == v {
			continue
		}
		p := other.point
		if geom.SameKey(p, v1) || geom.SameKey(p, v2) || geom.SameKey(p, v3) {
			continue
		}

		sideA := geom.Orient(v1, p, v2)
		sideB := geom.Orient(v2, p, v3)
		sideC := geom.Orient(v3, p, v1)
		if sideA > 0 && sideB > 0 && sideC > 0 {
			v.isEar = false
			return
		}
		// A vertex lying on one of the triangle's edges only blocks the ear if
		// its neighbours reach inside the triangle.
		if sideA == 0 && sideB >= 0 && sideC >= 0 && reachesInside(other, v1, v2) {
			v.isEar = false
			return
		}
		if sideB == 0 && sideA >= 0 && sideC >= 0 && reachesInside(other, v2, v3) {
			v.isEar = false
			return
		}
		if sideC == 0 && sideA >= 0 && sideB >= 0 && reachesInside(other, v3, v1) {
			v.isEar = false
			return
		}
	}
}

func reachesInside(other *earVertex, a, b geom.Point) bool {
	return geom.Orient(a, other.prev.point, b) > 0 || geom.Orient(a, other.next.point, b) > 0
}

// Unlink collinear or duplicate vertices, judged on quantized coordinates,
// starting at start, walking forward
// until a full lap passes without a removal. Returns how many were removed.
func removeCollinearOrDuplicate(start *earVertex) (removed int) {
	curr, end := start, start
	for {
		if geom.SameKey(curr.point, curr.next.point) || geom.Orient(curr.prev.point, curr.point, curr.next.point) == 0 {
			curr.isActive = false
			curr.prev.next = curr.next
			curr.next.prev = curr.prev
			curr.prev.shouldUpdate = true
			curr.next.shouldUpdate = true
			removed++
			if curr == curr.next {
				break
			}
			end = curr.prev
			curr = curr.next
			continue
		}
		curr = curr.next
		if curr == end {
			break
		}
	}
	return removed
}
