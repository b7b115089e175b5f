package levelx

import (
	"image"
	"io"
	"log"

	"github.com/google/uuid"
	"github.com/osuushi/levelx/geom"
	"github.com/osuushi/levelx/pathfind"
	"github.com/pkg/errors"
)

// TileFunc builds the comps for one map cell. It receives the cell's
// position relative to the level, its grid coordinate, and its world
// position. Returning no comps leaves the cell empty.
type TileFunc func(localPos geom.Point, tilePos image.Point, worldPos geom.Point) []Comp

// Options configures a Level.
type Options struct {
	// Size of one grid cell. Both must be positive.
	TileWidth, TileHeight float64
	// Factories keyed by map character. Characters without one are empty cells.
	Tiles map[rune]TileFunc
	// World position of the level's top-left corner.
	Pos geom.Point

	// MergeObstacles derives collision shapes from obstacle tiles when the
	// level is built.
	MergeObstacles bool
	// Tags that get their own obstacle group. Tiles carrying none of them go
	// to the "obstacle" group.
	MergeByTag []string
	// Tags attached to every derived shape. Defaults to ["obstacle"], or to
	// nothing when MergeByTag is set.
	MergeTags []string

	// PauseOffScreenTiles pauses and hides tiles outside the viewport.
	PauseOffScreenTiles bool
	Viewport            Viewport

	// Collider receives the derived collision shapes. Optional.
	Collider Collider
	// Logger defaults to discarding everything.
	Logger *log.Logger
}

func (o *Options) validate() error {
	if o.TileWidth <= 0 || o.TileHeight <= 0 {
		return errors.Errorf("tile size must be positive, got %gx%g", o.TileWidth, o.TileHeight)
	}
	if o.Tiles == nil {
		return errors.New("no tile factories")
	}
	return nil
}

func (o *Options) mergeTags() []string {
	if o.MergeTags != nil {
		return o.MergeTags
	}
	if o.MergeByTag != nil {
		return []string{}
	}
	return []string{obstacleTag}
}

func (o *Options) logger() *log.Logger {
	if o.Logger == nil {
		return log.New(io.Discard, "", 0)
	}
	return o.Logger
}

// PathingOpts selects the neighbourhood for path and range queries, and
// whether occupied tiles block.
type PathingOpts = pathfind.Options

// Viewport is the camera a level pauses tiles against.
type Viewport interface {
	// CamPos is the world position of the centre of the view.
	CamPos() geom.Point
	// ViewSize is the view extent in world units.
	ViewSize() (w, h float64)
}

// Collider receives the convex obstacle shapes of a level, in world space.
type Collider interface {
	AddStatic(shape []geom.Point, tags []string)
}

// ColliderFunc adapts a function to Collider.
type ColliderFunc func(shape []geom.Point, tags []string)

func (f ColliderFunc) AddStatic(shape []geom.Point, tags []string) {
	f(shape, tags)
}

// Occupant is anything placed on a tile. It is tracked by ID.
type Occupant interface {
	ID() uuid.UUID
}
