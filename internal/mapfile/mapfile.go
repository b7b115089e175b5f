// Package mapfile reads level descriptions for the commands: a character map
// plus a legend saying what each character builds.
package mapfile

import (
	"encoding/json"
	"image"
	"os"
	"unicode/utf8"

	"github.com/osuushi/levelx"
	"github.com/osuushi/levelx/geom"
	"github.com/pkg/errors"
)

// TileDef describes the tile one legend character builds.
type TileDef struct {
	Obstacle bool     `json:"obstacle"`
	Tags     []string `json:"tags"`
	// One of the named anchors, or empty for none.
	Anchor string `json:"anchor"`
	// Optional size override, in world units.
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	// Obstacle outline in tile-local coordinates. Empty means the tile
	// rectangle.
	Area [][2]float64 `json:"area"`
}

// File is a parsed level description.
type File struct {
	Name       string             `json:"name"`
	TileWidth  float64            `json:"tile_width"`
	TileHeight float64            `json:"tile_height"`
	X          float64            `json:"x"`
	Y          float64            `json:"y"`
	Rows       []string           `json:"rows"`
	Legend     map[string]TileDef `json:"legend"`

	MergeObstacles bool     `json:"merge_obstacles"`
	MergeByTag     []string `json:"merge_by_tag"`
	MergeTags      []string `json:"merge_tags"`
}

// Load reads and validates a level file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read level file %s", path)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "level file %s", path)
	}
	return f, nil
}

// Parse decodes and validates a level description.
func Parse(data []byte) (*File, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "failed to parse")
	}
	if err := f.validate(); err != nil {
		return nil, errors.Wrap(err, "invalid level")
	}
	return &f, nil
}

func (f *File) validate() error {
	if f.TileWidth <= 0 || f.TileHeight <= 0 {
		return errors.Errorf("invalid tile size: %gx%g", f.TileWidth, f.TileHeight)
	}
	if len(f.Rows) == 0 {
		return errors.New("no rows")
	}
	if len(f.Legend) == 0 {
		return errors.New("empty legend")
	}
	for key, def := range f.Legend {
		if utf8.RuneCountInString(key) != 1 {
			return errors.Errorf("legend key %q is not a single character", key)
		}
		if def.Anchor != "" {
			if _, err := levelx.NamedAnchor(def.Anchor); err != nil {
				return errors.Wrapf(err, "legend %q", key)
			}
		}
		if len(def.Area) > 0 && len(def.Area) < 3 {
			return errors.Errorf("legend %q: area needs at least 3 points, got %d", key, len(def.Area))
		}
	}
	return nil
}

// Options turns the file into level options. Callers add the host side
// (viewport, collider, logger) before building the level.
func (f *File) Options() levelx.Options {
	tiles := make(map[rune]levelx.TileFunc, len(f.Legend))
	for key, def := range f.Legend {
		r, _ := utf8.DecodeRuneInString(key)
		tiles[r] = def.factory()
	}
	return levelx.Options{
		TileWidth:      f.TileWidth,
		TileHeight:     f.TileHeight,
		Tiles:          tiles,
		Pos:            geom.Pt(f.X, f.Y),
		MergeObstacles: f.MergeObstacles,
		MergeByTag:     f.MergeByTag,
		MergeTags:      f.MergeTags,
	}
}

// NewLevel builds the level, letting configure fill in the host side of the
// options first. configure may be nil.
func (f *File) NewLevel(configure func(*levelx.Options)) (*levelx.Level, error) {
	opts := f.Options()
	if configure != nil {
		configure(&opts)
	}
	l, err := levelx.New(f.Rows, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "building %q", f.Name)
	}
	return l, nil
}

// The anchor name was checked by validate.
func (def TileDef) factory() levelx.TileFunc {
	var comps []levelx.Comp
	tileX := levelx.TileX{IsObstacle: def.Obstacle}
	for _, p := range def.Area {
		tileX.ObstacleArea = append(tileX.ObstacleArea, geom.Pt(p[0], p[1]))
	}
	comps = append(comps, tileX)
	for _, tag := range def.Tags {
		comps = append(comps, levelx.Tag(tag))
	}
	if def.Width != 0 || def.Height != 0 {
		comps = append(comps, levelx.Size{Width: def.Width, Height: def.Height})
	}
	if def.Anchor != "" {
		anchor, _ := levelx.NamedAnchor(def.Anchor)
		comps = append(comps, anchor)
	}

	return func(geom.Point, image.Point, geom.Point) []levelx.Comp {
		return comps
	}
}
