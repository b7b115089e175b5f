package pathfind

import "image"

type rangeEntry struct {
	p         image.Point
	remaining int
}

// InRange expands breadth-first from origin, spending one unit of steps per
// move, and returns every tile reached in discovery order. The origin is not
// included. Impassable tiles are neither returned nor expanded. Returns nil
// when nothing is reachable.
func InRange(g Grid, origin image.Point, steps int, opts Options) []image.Point {
	cols, rows := g.Size()
	bounds := image.Rect(0, 0, cols, rows)
	if !origin.In(bounds) {
		return nil
	}

	visited := make([]bool, cols*rows)
	visited[origin.Y*cols+origin.X] = true

	var reached []image.Point
	queue := []rangeEntry{{origin, steps}}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current.remaining <= 0 {
			continue
		}

		for _, s := range opts.steps() {
			next := current.p.Add(s.delta)
			if !next.In(bounds) {
				continue
			}
			i := next.Y*cols + next.X
			if visited[i] || !g.Passable(next, opts.ObjsAsObstacles) {
				continue
			}
			visited[i] = true
			reached = append(reached, next)
			queue = append(queue, rangeEntry{next, current.remaining - 1})
		}
	}
	return reached
}
