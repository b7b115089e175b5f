package levelx

import (
	"image"
	"maps"
	"slices"

	"github.com/google/uuid"
	"github.com/osuushi/levelx/geom"
)

// Tile is one non-empty cell of a Level.
type Tile struct {
	level   *Level
	tilePos image.Point
	// Relative to the level origin.
	pos geom.Point

	isObstacle   bool
	obstacleArea geom.Contour
	tags         []string
	comps        []Comp
	size         *Size
	anchor       *Anchor

	objs map[uuid.UUID]Occupant

	paused, hidden bool
}

func (t *Tile) TilePos() image.Point { return t.tilePos }

// Pos is the tile position relative to the level origin.
func (t *Tile) Pos() geom.Point { return t.pos }

func (t *Tile) WorldPos() geom.Point { return t.pos.Add(t.level.opts.Pos) }

// Center is the middle of the tile's grid cell, relative to the level origin.
func (t *Tile) Center() geom.Point {
	return t.pos.Add(geom.Pt(t.level.opts.TileWidth/2, t.level.opts.TileHeight/2))
}

func (t *Tile) IsObstacle() bool { return t.isObstacle }

// SetObstacle changes whether pathing treats the tile as blocked. Collision
// shapes already derived are not updated.
func (t *Tile) SetObstacle(isObstacle bool) { t.isObstacle = isObstacle }

// ObstacleArea is the tile's collision outline in tile-local coordinates.
func (t *Tile) ObstacleArea() geom.Contour { return slices.Clone(t.obstacleArea) }

func (t *Tile) Tags() []string { return slices.Clone(t.tags) }

// Is reports whether the tile carries tag.
func (t *Tile) Is(tag string) bool { return slices.Contains(t.tags, tag) }

// Comps returns the comps the tile was built from, including the ones the
// level filled in.
func (t *Tile) Comps() []Comp { return slices.Clone(t.comps) }

func (t *Tile) Paused() bool { return t.paused }
func (t *Tile) Hidden() bool { return t.hidden }

// The tile's own size if it has one, else the grid's.
func (t *Tile) dimensions() (width, height float64) {
	width, height = t.level.opts.TileWidth, t.level.opts.TileHeight
	if t.size != nil {
		if t.size.Width != 0 {
			width = t.size.Width
		}
		if t.size.Height != 0 {
			height = t.size.Height
		}
	}
	return width, height
}

// AddObj places an occupant on the tile. Adding the same ID twice replaces
// the earlier occupant.
func (t *Tile) AddObj(obj Occupant) {
	if t.objs == nil {
		t.objs = make(map[uuid.UUID]Occupant)
	}
	t.objs[obj.ID()] = obj
}

func (t *Tile) HasObj(obj Occupant) bool {
	_, ok := t.objs[obj.ID()]
	return ok
}

func (t *Tile) RemoveObj(obj Occupant) {
	delete(t.objs, obj.ID())
}

func (t *Tile) ClearObjs() {
	clear(t.objs)
}

// Objs returns a copy of the occupant set.
func (t *Tile) Objs() map[uuid.UUID]Occupant {
	return maps.Clone(t.objs)
}

// HasAny reports whether anything occupies the tile.
func (t *Tile) HasAny() bool {
	return len(t.objs) > 0
}
