// Package levelx builds tile-grid levels from character maps: coordinate
// conversion between world, level-local and grid space, tile lookup, path and
// range queries, off-screen pausing, and convex collision shapes derived from
// obstacle tiles.
package levelx

import (
	"image"
	"log"
	"math"
	"slices"
	"unicode/utf8"

	"github.com/golang/geo/r2"
	"github.com/osuushi/levelx/geom"
	"github.com/pkg/errors"
)

const obstacleTag = "obstacle"

// Level is a rectangular grid of tiles. Cells are stored row-major; empty
// cells are nil.
type Level struct {
	opts             Options
	numCols, numRows int
	tiles            []*Tile

	// Tile area made visible by the last refresh. Max is exclusive.
	lastVisible image.Rectangle
	shapes      []ShapeGroup

	log *log.Logger
}

// New builds a level from rows of map characters. The first row sets the
// width of the grid: shorter rows leave their missing cells empty, and longer
// rows are cut off. Characters are runes, so multi-byte legends work.
func New(rows []string, opts Options) (*Level, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if len(rows) == 0 || rows[0] == "" {
		return nil, errors.New("empty map")
	}

	l := &Level{
		opts:    opts,
		numCols: utf8.RuneCountInString(rows[0]),
		numRows: len(rows),
		log:     opts.logger(),
	}
	l.tiles = make([]*Tile, l.numCols*l.numRows)

	for y, row := range rows {
		x := 0
		for _, r := range row {
			if x >= l.numCols {
				break
			}
			l.tiles[y*l.numCols+x] = l.buildTile(r, image.Pt(x, y))
			x++
		}
	}

	if opts.PauseOffScreenTiles {
		l.Update()
	}

	if opts.MergeObstacles {
		shapes, err := l.DeriveObstacleShapes()
		if err != nil {
			return nil, errors.Wrap(err, "merging obstacles")
		}
		l.shapes = shapes
		l.registerShapes()
	}

	return l, nil
}

func (l *Level) buildTile(r rune, tilePos image.Point) *Tile {
	factory := l.opts.Tiles[r]
	if factory == nil {
		return nil
	}

	localPos := l.TilePosToLocalPos(tilePos)
	comps := factory(localPos, tilePos, l.LocalPosToWorldPos(localPos))
	if len(comps) == 0 {
		return nil
	}

	t := &Tile{
		level:   l,
		tilePos: tilePos,
		pos:     localPos,
		comps:   slices.Clone(comps),
		paused:  l.opts.PauseOffScreenTiles,
		hidden:  l.opts.PauseOffScreenTiles,
	}

	var hasPos, hasTileX bool
	for _, comp := range comps {
		switch comp := comp.(type) {
		case Pos:
			hasPos = true
			// A factory position is relative to the cell.
			t.pos = comp.Add(localPos)
		case TileX:
			hasTileX = true
			t.isObstacle = comp.IsObstacle
			t.obstacleArea = slices.Clone(geom.Contour(comp.ObstacleArea))
		case Tag:
			t.tags = append(t.tags, string(comp))
		case Size:
			t.size = &comp
		case Anchor:
			t.anchor = &comp
		}
	}
	if !hasPos {
		t.comps = append(t.comps, Pos{localPos})
	}
	if !hasTileX {
		t.comps = append(t.comps, TileX{})
	}

	if len(t.obstacleArea) == 0 {
		w, h := t.dimensions()
		t.obstacleArea = geom.Contour{geom.Pt(0, 0), geom.Pt(w, 0), geom.Pt(w, h), geom.Pt(0, h)}
	}

	return t
}

func (l *Level) TileWidth() float64  { return l.opts.TileWidth }
func (l *Level) TileHeight() float64 { return l.opts.TileHeight }
func (l *Level) NumCols() int        { return l.numCols }
func (l *Level) NumRows() int        { return l.numRows }

// Width of the level in world units.
func (l *Level) Width() float64 { return float64(l.numCols) * l.opts.TileWidth }

// Height of the level in world units.
func (l *Level) Height() float64 { return float64(l.numRows) * l.opts.TileHeight }

// Pos is the world position of the level origin.
func (l *Level) Pos() geom.Point { return l.opts.Pos }

// Bounds is the world-space rectangle the level covers.
func (l *Level) Bounds() r2.Rect {
	return r2.RectFromPoints(l.opts.Pos, l.opts.Pos.Add(geom.Pt(l.Width(), l.Height())))
}

// Tiles returns every cell in row-major order, nil for empty ones.
func (l *Level) Tiles() []*Tile {
	return slices.Clone(l.tiles)
}

func (l *Level) TilePosToLocalPos(p image.Point) geom.Point {
	return geom.Pt(float64(p.X)*l.opts.TileWidth, float64(p.Y)*l.opts.TileHeight)
}

// LocalPosToTilePos returns the cell containing p. Positions left of or above
// the origin give negative coordinates.
func (l *Level) LocalPosToTilePos(p geom.Point) image.Point {
	return image.Pt(
		int(math.Floor(p.X/l.opts.TileWidth)),
		int(math.Floor(p.Y/l.opts.TileHeight)),
	)
}

func (l *Level) TilePosToWorldPos(p image.Point) geom.Point {
	return l.LocalPosToWorldPos(l.TilePosToLocalPos(p))
}

func (l *Level) WorldPosToTilePos(p geom.Point) image.Point {
	return l.LocalPosToTilePos(l.WorldPosToLocalPos(p))
}

func (l *Level) LocalPosToWorldPos(p geom.Point) geom.Point { return p.Add(l.opts.Pos) }
func (l *Level) WorldPosToLocalPos(p geom.Point) geom.Point { return p.Sub(l.opts.Pos) }

func (l *Level) IsTilePosValid(p image.Point) bool {
	return p.X >= 0 && p.X < l.numCols && p.Y >= 0 && p.Y < l.numRows
}

func (l *Level) IsLocalPosValid(p geom.Point) bool {
	return l.IsTilePosValid(l.LocalPosToTilePos(p))
}

func (l *Level) IsWorldPosValid(p geom.Point) bool {
	return l.IsTilePosValid(l.WorldPosToTilePos(p))
}

// TileFromTilePos returns nil for empty cells and positions off the grid.
func (l *Level) TileFromTilePos(p image.Point) *Tile {
	if !l.IsTilePosValid(p) {
		return nil
	}
	return l.tiles[p.Y*l.numCols+p.X]
}

func (l *Level) TileFromLocalPos(p geom.Point) *Tile {
	return l.TileFromTilePos(l.LocalPosToTilePos(p))
}

func (l *Level) TileFromWorldPos(p geom.Point) *Tile {
	return l.TileFromTilePos(l.WorldPosToTilePos(p))
}
