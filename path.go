package levelx

import (
	"image"

	"github.com/osuushi/levelx/geom"
	"github.com/osuushi/levelx/pathfind"
)

// levelGrid exposes a level to the pathfind package.
type levelGrid struct {
	l *Level
}

func (g levelGrid) Size() (int, int) {
	return g.l.numCols, g.l.numRows
}

func (g levelGrid) Passable(p image.Point, objsAsObstacles bool) bool {
	t := g.l.TileFromTilePos(p)
	return t != nil && !t.isObstacle && !(objsAsObstacles && t.HasAny())
}

func (l *Level) tilesAt(points []image.Point) []*Tile {
	if points == nil {
		return nil
	}
	tiles := make([]*Tile, len(points))
	for i, p := range points {
		tiles[i] = l.TileFromTilePos(p)
	}
	return tiles
}

func (l *Level) owns(t *Tile) bool {
	return t != nil && t.level == l
}

// PathFromTile returns the cheapest path from start to end, both included,
// or nil when there is none. Steps cost 1, or √2 when diagonals are allowed
// and taken.
func (l *Level) PathFromTile(start, end *Tile, opts PathingOpts) []*Tile {
	if !l.owns(start) || !l.owns(end) {
		return nil
	}
	return l.tilesAt(pathfind.AStar(levelGrid{l}, start.tilePos, end.tilePos, opts))
}

// PathFromTilePos is PathFromTile for grid coordinates. Returns nil if either
// cell is empty or off the grid.
func (l *Level) PathFromTilePos(start, end image.Point, opts PathingOpts) []*Tile {
	return l.PathFromTile(l.TileFromTilePos(start), l.TileFromTilePos(end), opts)
}

func (l *Level) PathFromLocalPos(start, end geom.Point, opts PathingOpts) []*Tile {
	return l.PathFromTilePos(l.LocalPosToTilePos(start), l.LocalPosToTilePos(end), opts)
}

func (l *Level) PathFromWorldPos(start, end geom.Point, opts PathingOpts) []*Tile {
	return l.PathFromTilePos(l.WorldPosToTilePos(start), l.WorldPosToTilePos(end), opts)
}

// TilesInRangeOfTile returns the tiles reachable from tile in at most steps
// moves, in discovery order and without tile itself. Returns nil if there
// are none.
func (l *Level) TilesInRangeOfTile(tile *Tile, steps int, opts PathingOpts) []*Tile {
	if !l.owns(tile) {
		return nil
	}
	return l.tilesAt(pathfind.InRange(levelGrid{l}, tile.tilePos, steps, opts))
}

func (l *Level) TilesInRangeOfTilePos(p image.Point, steps int, opts PathingOpts) []*Tile {
	return l.TilesInRangeOfTile(l.TileFromTilePos(p), steps, opts)
}

func (l *Level) TilesInRangeOfLocalPos(p geom.Point, steps int, opts PathingOpts) []*Tile {
	return l.TilesInRangeOfTilePos(l.LocalPosToTilePos(p), steps, opts)
}

func (l *Level) TilesInRangeOfWorldPos(p geom.Point, steps int, opts PathingOpts) []*Tile {
	return l.TilesInRangeOfTilePos(l.WorldPosToTilePos(p), steps, opts)
}
