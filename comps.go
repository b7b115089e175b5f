package levelx

import (
	"github.com/osuushi/levelx/geom"
	"github.com/pkg/errors"
)

// Comp is a capability attached to a tile by its factory. The level reads the
// comps it knows about (Pos, TileX, Tag, Size, Anchor) and keeps the rest for
// the host.
type Comp interface {
	ID() string
}

// Pos offsets the tile from the position the grid gives it.
type Pos struct {
	geom.Point
}

func (Pos) ID() string { return "pos" }

// TileX carries the tile's pathing and collision traits. An empty
// ObstacleArea means the tile rectangle.
type TileX struct {
	IsObstacle   bool
	ObstacleArea []geom.Point
}

func (TileX) ID() string { return "tileX" }

// Tag labels a tile. Tags pick the obstacle group a tile merges into.
type Tag string

func (Tag) ID() string { return "tag" }

// Size overrides the grid tile size for this tile's default obstacle area and
// anchor offset.
type Size struct {
	Width, Height float64
}

func (Size) ID() string { return "size" }

// Anchor says which point of the tile its position refers to, as a vector in
// [-1, 1] on each axis: (-1, -1) is the top-left corner and (0, 0) the centre.
// Obstacle areas are shifted so that the anchor lands on the tile position.
type Anchor struct {
	geom.Point
}

func (Anchor) ID() string { return "anchor" }

var namedAnchors = map[string]Anchor{
	"topleft":  {geom.Pt(-1, -1)},
	"top":      {geom.Pt(0, -1)},
	"topright": {geom.Pt(1, -1)},
	"left":     {geom.Pt(-1, 0)},
	"center":   {geom.Pt(0, 0)},
	"right":    {geom.Pt(1, 0)},
	"botleft":  {geom.Pt(-1, 1)},
	"bot":      {geom.Pt(0, 1)},
	"botright": {geom.Pt(1, 1)},
}

// NamedAnchor looks up one of the nine named anchors ("topleft", "top",
// "topright", "left", "center", "right", "botleft", "bot", "botright").
func NamedAnchor(name string) (Anchor, error) {
	anchor, ok := namedAnchors[name]
	if !ok {
		return Anchor{}, errors.Errorf("unknown anchor %q", name)
	}
	return anchor, nil
}

// Offset to add to a top-left based area so it sits where the anchor says,
// for a tile of the given size.
func (a Anchor) offset(width, height float64) geom.Point {
	return geom.Pt((a.X+1)*width*-0.5, (a.Y+1)*height*-0.5)
}
