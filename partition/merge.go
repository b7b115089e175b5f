package partition

import (
	"math"

	"github.com/osuushi/levelx/geom"
)

// A ring whose turning sum exceeds (n-2)π by more than this is a hole.
const holeAngleTolerance = math.Pi * 1e-4

// Merger accumulates counterclockwise polygons and dissolves their shared
// edges, yielding the outline of every connected group.
//
// Input vertices are snapped to the geom.Quantum grid, so edges only cancel
// when both endpoints match after snapping.
type Merger struct {
	polygons []geom.Contour
}

type mergeEdge struct {
	from, to geom.Point
	group    int
	removed  bool
}

type edgeKey struct {
	from, to geom.Key
}

func (e *mergeEdge) key() edgeKey {
	return edgeKey{geom.KeyOf(e.from), geom.KeyOf(e.to)}
}

// AddPolygon registers one counterclockwise polygon. Repeated consecutive
// vertices are dropped, and polygons that collapse below three vertices are
// ignored.
func (m *Merger) AddPolygon(points ...geom.Point) {
	contour := make(geom.Contour, 0, len(points))
	for _, p := range points {
		p = geom.Snap(p)
		if len(contour) > 0 && geom.Equal(contour[len(contour)-1], p) {
			continue
		}
		contour = append(contour, p)
	}
	for len(contour) > 1 && geom.Equal(contour[0], contour[len(contour)-1]) {
		contour = contour[:len(contour)-1]
	}
	if len(contour) < 3 {
		return
	}
	m.polygons = append(m.polygons, contour)
}

// Len is the number of polygons added so far.
func (m *Merger) Len() int {
	return len(m.polygons)
}

// MergedPolygons dissolves the accumulated polygons. Each connected group
// comes back as one polygon: a counterclockwise outer contour plus its
// clockwise holes, in the order the groups were first added.
func (m *Merger) MergedPolygons() (polygons []geom.Polygon, err error) {
	defer func() {
		if recoveredErr := HandlePanicRecover(recover()); recoveredErr != nil {
			polygons = nil
			err = recoveredErr
		}
	}()
	return m.merge(), nil
}

// Convexes merges the polygons, removes holes from each result and splits it
// into convex pieces.
func (m *Merger) Convexes() (convexes []geom.Contour, err error) {
	defer func() {
		if recoveredErr := HandlePanicRecover(recover()); recoveredErr != nil {
			convexes = nil
			err = recoveredErr
		}
	}()
	for _, polygon := range m.merge() {
		contour := removeHoles(polygon.Outer, polygon.Holes, false)
		convexes = append(convexes, convexPartition(contour, false)...)
	}
	return convexes, nil
}

func (m *Merger) merge() []geom.Polygon {
	if len(m.polygons) == 0 {
		return nil
	}

	g := newEdgeGraph(len(m.polygons))
	for id, contour := range m.polygons {
		for i, p := range contour {
			g.add(p, contour[geom.CircularIndex(i+1, len(contour))], id)
		}
	}

	g.dissolveSharedEdges()
	g.fuseCollinearEdges()
	return g.walkRings()
}

// edgeGraph holds the directed edges of every polygon. Edges are kept in
// insertion order so the output does not depend on map iteration.
type edgeGraph struct {
	edges    []*mergeEdge
	byKey    map[edgeKey][]*mergeEdge
	outgoing map[geom.Key][]*mergeEdge
	groups   []int
}

func newEdgeGraph(numPolygons int) *edgeGraph {
	g := &edgeGraph{
		byKey:    make(map[edgeKey][]*mergeEdge),
		outgoing: make(map[geom.Key][]*mergeEdge),
		groups:   make([]int, numPolygons),
	}
	for i := range g.groups {
		g.groups[i] = i
	}
	return g
}

func (g *edgeGraph) add(from, to geom.Point, group int) *mergeEdge {
	e := &mergeEdge{from: from, to: to, group: group}
	g.edges = append(g.edges, e)
	k := e.key()
	g.byKey[k] = append(g.byKey[k], e)
	g.outgoing[k.from] = append(g.outgoing[k.from], e)
	return e
}

func (g *edgeGraph) remove(e *mergeEdge) {
	e.removed = true
	k := e.key()
	g.byKey[k] = without(g.byKey[k], e)
	g.outgoing[k.from] = without(g.outgoing[k.from], e)
}

func without(edges []*mergeEdge, e *mergeEdge) []*mergeEdge {
	for i, candidate := range edges {
		if candidate == e {
			return append(edges[:i:i], edges[i+1:]...)
		}
	}
	return edges
}

func (g *edgeGraph) find(group int) int {
	for g.groups[group] != group {
		g.groups[group] = g.groups[g.groups[group]]
		group = g.groups[group]
	}
	return group
}

func (g *edgeGraph) union(a, b int) {
	a, b = g.find(a), g.find(b)
	if a < b {
		g.groups[b] = a
	} else {
		g.groups[a] = b
	}
}

// An edge whose exact reverse exists lies between two polygons. Both copies
// go away and their groups become one.
func (g *edgeGraph) dissolveSharedEdges() {
	for _, e := range g.edges {
		if e.removed {
			continue
		}
		k := e.key()
		reverses := g.byKey[edgeKey{from: k.to, to: k.from}]
		if len(reverses) == 0 {
			continue
		}
		reverse := reverses[0]
		g.remove(e)
		g.remove(reverse)
		g.union(e.group, reverse.group)
	}
}

// Chains of collinear edges become one edge. Vertices with more than one
// outgoing edge are junctions and are left alone.
func (g *edgeGraph) fuseCollinearEdges() {
	// g.edges grows while we walk it; fused edges get their own turn.
	for i := 0; i < len(g.edges); i++ {
		e := g.edges[i]
		if e.removed {
			continue
		}
		nexts := g.outgoing[geom.KeyOf(e.to)]
		if len(nexts) != 1 {
			continue
		}
		next := nexts[0]
		if next == e || geom.Orient(e.from, e.to, next.to) != 0 {
			continue
		}
		if g.find(e.group) != g.find(next.group) {
			fatalf("found invalid edge %v -> %v -> %v", e.from, e.to, next.to)
		}
		g.remove(e)
		g.remove(next)
		if geom.SameKey(e.from, next.to) {
			continue
		}
		g.add(e.from, next.to, e.group)
	}
}

// Follow the remaining edges into closed rings and sort them into outer
// contours and holes.
func (g *edgeGraph) walkRings() []geom.Polygon {
	var (
		order   []int
		outers  = make(map[int]geom.Contour)
		holes   = make(map[int][]geom.Contour)
		visited = make(map[*mergeEdge]bool)
	)

	for _, start := range g.edges {
		if start.removed || visited[start] {
			continue
		}
		group := g.find(start.group)
		visited[start] = true

		contour := geom.Contour{start.from}
		var angleSum float64
		curr := start
		for {
			next, angle := g.nextInRing(curr, group, visited)
			if next == nil {
				fatalf("failed to find closed ring at %v", curr.to)
			}
			visited[next] = true
			contour = append(contour, next.from)
			angleSum += angle
			curr = next
			if geom.SameKey(next.to, start.from) {
				break
			}
		}
		angleSum += vectorsAngle(start.to.Sub(start.from), curr.from.Sub(curr.to))

		if angleSum-float64(len(contour)-2)*math.Pi > holeAngleTolerance {
			holes[group] = append(holes[group], contour)
			continue
		}
		if _, ok := outers[group]; ok {
			fatalf("polygon id %d is duplicated", group)
		}
		outers[group] = contour
		order = append(order, group)
	}

	for group := range holes {
		if _, ok := outers[group]; !ok {
			fatalf("failed to find outer contour for holes in group %d", group)
		}
	}

	polygons := make([]geom.Polygon, 0, len(order))
	for _, group := range order {
		polygons = append(polygons, geom.Polygon{Outer: outers[group], Holes: holes[group]})
	}
	return polygons
}

// Among the unvisited edges leaving curr.to in the same group, pick the one
// with the smallest angle to the reversed incoming edge. That hugs the filled
// side, so polygons touching at a corner are walked separately.
func (g *edgeGraph) nextInRing(curr *mergeEdge, group int, visited map[*mergeEdge]bool) (*mergeEdge, float64) {
	var next *mergeEdge
	minAngle := math.Inf(1)
	back := curr.from.Sub(curr.to)
	for _, candidate := range g.outgoing[geom.KeyOf(curr.to)] {
		if visited[candidate] || g.find(candidate.group) != group {
			continue
		}
		angle := vectorsAngle(candidate.to.Sub(candidate.from), back)
		if angle < minAngle {
			next, minAngle = candidate, angle
		}
	}
	return next, minAngle
}

// vectorsAngle is the angle swept from v1 to v2, in [0, 2π).
func vectorsAngle(v1, v2 geom.Point) float64 {
	angle := math.Atan2(v2.Y, v2.X) - math.Atan2(v1.Y, v1.X)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return angle
}
