// Package pathfind searches tile grids: shortest paths by A* and step-bounded
// reachability by breadth-first expansion.
//
// Searches only see a Grid, a passability oracle over integer tile
// coordinates, so they work the same on a level or on a plain test grid.
package pathfind

import (
	"container/heap"
	"image"
	"math"
)

// Grid is the passability oracle a search runs over.
type Grid interface {
	// Size is the grid extent in tiles.
	Size() (cols, rows int)
	// Passable reports whether p can be entered. Empty cells and obstacles
	// are never passable; occupied tiles are impassable when objsAsObstacles
	// is set.
	Passable(p image.Point, objsAsObstacles bool) bool
}

// Options selects the neighbourhood and what counts as blocked.
type Options struct {
	ObjsAsObstacles bool
	AllowDiagonals  bool
}

type step struct {
	delta image.Point
	cost  float64
}

var (
	orthogonalSteps = []step{
		{image.Pt(0, -1), 1},
		{image.Pt(1, 0), 1},
		{image.Pt(0, 1), 1},
		{image.Pt(-1, 0), 1},
	}
	diagonalSteps = append(append([]step(nil), orthogonalSteps...),
		step{image.Pt(1, -1), math.Sqrt2},
		step{image.Pt(1, 1), math.Sqrt2},
		step{image.Pt(-1, 1), math.Sqrt2},
		step{image.Pt(-1, -1), math.Sqrt2},
	)
)

func (o Options) steps() []step {
	if o.AllowDiagonals {
		return diagonalSteps
	}
	return orthogonalSteps
}

// Heuristic estimates the remaining cost from a to b: Manhattan distance on
// the 4-neighbourhood, Euclidean distance on the 8-neighbourhood.
func Heuristic(a, b image.Point, allowDiagonals bool) float64 {
	dx := math.Abs(float64(b.X - a.X))
	dy := math.Abs(float64(b.Y - a.Y))
	if allowDiagonals {
		return math.Hypot(dx, dy)
	}
	return dx + dy
}

// Cost sums the step costs along a path: 1 per orthogonal step, √2 per
// diagonal one.
func Cost(path []image.Point) float64 {
	var cost float64
	for i := 1; i < len(path); i++ {
		d := path[i].Sub(path[i-1])
		if d.X != 0 && d.Y != 0 {
			cost += math.Sqrt2
		} else {
			cost++
		}
	}
	return cost
}

type pathNode struct {
	g       float64
	parent  int
	visited bool
	closed  bool
}

// Open set entries. A node can be pushed again when a cheaper route turns up;
// the stale entry is skipped when it is popped.
type openEntry struct {
	index int
	f     float64
	g     float64
	seq   int
}

type openSet []openEntry

func (pq openSet) Len() int { return len(pq) }

// Lowest f first, ties in insertion order.
func (pq openSet) Less(i, j int) bool {
	if pq[i].f != pq[j].f {
		return pq[i].f < pq[j].f
	}
	return pq[i].seq < pq[j].seq
}

func (pq openSet) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *openSet) Push(x any) { *pq = append(*pq, x.(openEntry)) }

func (pq *openSet) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

// AStar returns the cheapest path from start to end, both inclusive, or nil
// if end cannot be reached. Only tiles the grid reports as passable are
// entered; start itself is not checked. A path from a tile to itself is just
// that tile.
func AStar(g Grid, start, end image.Point, opts Options) []image.Point {
	cols, rows := g.Size()
	bounds := image.Rect(0, 0, cols, rows)
	if !start.In(bounds) || !end.In(bounds) {
		return nil
	}
	if start == end {
		return []image.Point{start}
	}

	index := func(p image.Point) int { return p.Y*cols + p.X }
	point := func(i int) image.Point { return image.Pt(i%cols, i/cols) }

	nodes := make([]pathNode, cols*rows)
	open := &openSet{}
	seq := 0
	push := func(i int, g float64) {
		heap.Push(open, openEntry{index: i, g: g, f: g + Heuristic(point(i), end, opts.AllowDiagonals), seq: seq})
		seq++
	}

	startIndex, endIndex := index(start), index(end)
	nodes[startIndex] = pathNode{parent: -1, visited: true}
	push(startIndex, 0)

	for open.Len() > 0 {
		current := heap.Pop(open).(openEntry)
		node := &nodes[current.index]
		if node.closed || current.g > node.g {
			continue
		}
		if current.index == endIndex {
			return reconstructPath(nodes, endIndex, point)
		}
		node.closed = true

		currentPoint := point(current.index)
		for _, s := range opts.steps() {
			next := currentPoint.Add(s.delta)
			if !next.In(bounds) || !g.Passable(next, opts.ObjsAsObstacles) {
				continue
			}
			i := index(next)
			neighbor := &nodes[i]
			if neighbor.closed {
				continue
			}
			tentativeG := node.g + s.cost
			if neighbor.visited && tentativeG >= neighbor.g {
				continue
			}
			*neighbor = pathNode{g: tentativeG, parent: current.index, visited: true}
			push(i, tentativeG)
		}
	}
	return nil
}

func reconstructPath(nodes []pathNode, end int, point func(int) image.Point) []image.Point {
	var path []image.Point
	for i := end; i >= 0; i = nodes[i].parent {
		path = append(path, point(i))
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
