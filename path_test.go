package levelx

import (
	"image"
	"testing"

	"github.com/google/uuid"
	"github.com/osuushi/levelx/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type occupant struct {
	id uuid.UUID
}

func (o occupant) ID() uuid.UUID { return o.id }

func newOccupant() occupant {
	return occupant{uuid.New()}
}

func tilePositions(tiles []*Tile) []image.Point {
	positions := make([]image.Point, len(tiles))
	for i, t := range tiles {
		positions[i] = t.TilePos()
	}
	return positions
}

func TestPath(t *testing.T) {
	l := mustLevel(t, []string{
		".....",
		".###.",
		".....",
	}, Options{TileWidth: 10, TileHeight: 10, Pos: geom.Pt(-50, 0)})

	t.Run("around the wall", func(t *testing.T) {
		path := l.PathFromTilePos(image.Pt(0, 1), image.Pt(4, 1), PathingOpts{})
		require.Len(t, path, 7)
		assert.Equal(t, image.Pt(0, 1), path[0].TilePos())
		assert.Equal(t, image.Pt(4, 1), path[6].TilePos())
		for _, tile := range path {
			assert.False(t, tile.IsObstacle())
		}
	})

	t.Run("world and local positions", func(t *testing.T) {
		fromWorld := l.PathFromWorldPos(geom.Pt(-45, 15), geom.Pt(-5, 15), PathingOpts{})
		fromLocal := l.PathFromLocalPos(geom.Pt(5, 15), geom.Pt(45, 15), PathingOpts{})
		assert.Equal(t, tilePositions(fromWorld), tilePositions(fromLocal))
		assert.Len(t, fromWorld, 7)
	})

	t.Run("same tile", func(t *testing.T) {
		start := l.TileFromTilePos(image.Pt(2, 0))
		assert.Equal(t, []*Tile{start}, l.PathFromTile(start, start, PathingOpts{}))
	})

	t.Run("invalid endpoints", func(t *testing.T) {
		assert.Nil(t, l.PathFromTilePos(image.Pt(0, 0), image.Pt(2, 1), PathingOpts{}))
		assert.Nil(t, l.PathFromTilePos(image.Pt(-1, 0), image.Pt(2, 0), PathingOpts{}))
		assert.Nil(t, l.PathFromTile(nil, l.TileFromTilePos(image.Pt(0, 0)), PathingOpts{}))

		other := mustLevel(t, []string{"."}, Options{})
		assert.Nil(t, l.PathFromTile(other.TileFromTilePos(image.Pt(0, 0)), l.TileFromTilePos(image.Pt(0, 0)), PathingOpts{}))
	})

	t.Run("diagonals", func(t *testing.T) {
		path := l.PathFromTilePos(image.Pt(0, 0), image.Pt(4, 2), PathingOpts{AllowDiagonals: true})
		// One diagonal step past the wall end saves a tile.
		assert.Len(t, path, 6)
	})
}

func TestPath_Occupants(t *testing.T) {
	l := mustLevel(t, []string{"..."}, Options{})
	middle := l.TileFromTilePos(image.Pt(1, 0))
	blocker := newOccupant()
	middle.AddObj(blocker)

	assert.True(t, middle.HasAny())
	assert.True(t, middle.HasObj(blocker))
	assert.False(t, middle.HasObj(newOccupant()))

	assert.Len(t, l.PathFromTilePos(image.Pt(0, 0), image.Pt(2, 0), PathingOpts{}), 3)
	assert.Nil(t, l.PathFromTilePos(image.Pt(0, 0), image.Pt(2, 0), PathingOpts{ObjsAsObstacles: true}))

	middle.RemoveObj(blocker)
	assert.False(t, middle.HasAny())
	assert.Len(t, l.PathFromTilePos(image.Pt(0, 0), image.Pt(2, 0), PathingOpts{ObjsAsObstacles: true}), 3)
}

func TestTile_Objs(t *testing.T) {
	l := mustLevel(t, []string{"."}, Options{})
	tile := l.TileFromTilePos(image.Pt(0, 0))
	a, b := newOccupant(), newOccupant()

	tile.AddObj(a)
	tile.AddObj(b)
	tile.AddObj(a)
	objs := tile.Objs()
	assert.Len(t, objs, 2)

	// The returned set is a copy.
	delete(objs, a.ID())
	assert.True(t, tile.HasObj(a))

	tile.ClearObjs()
	assert.False(t, tile.HasAny())
	assert.Empty(t, tile.Objs())
}

func TestTilesInRange(t *testing.T) {
	l := mustLevel(t, []string{
		"...",
		".#.",
		"...",
	}, Options{TileWidth: 4, TileHeight: 4})

	reached := l.TilesInRangeOfTilePos(image.Pt(0, 0), 2, PathingOpts{})
	assert.ElementsMatch(t,
		[]image.Point{{1, 0}, {0, 1}, {2, 0}, {0, 2}},
		tilePositions(reached))

	fromLocal := l.TilesInRangeOfLocalPos(geom.Pt(1, 1), 2, PathingOpts{})
	fromWorld := l.TilesInRangeOfWorldPos(geom.Pt(1, 1), 2, PathingOpts{})
	assert.Equal(t, tilePositions(reached), tilePositions(fromLocal))
	assert.Equal(t, tilePositions(reached), tilePositions(fromWorld))

	assert.Len(t, l.TilesInRangeOfTilePos(image.Pt(0, 0), 1, PathingOpts{AllowDiagonals: true}), 2)
	assert.Nil(t, l.TilesInRangeOfTilePos(image.Pt(0, 0), 0, PathingOpts{}))
	assert.Nil(t, l.TilesInRangeOfTilePos(image.Pt(5, 5), 3, PathingOpts{}))
	assert.Nil(t, l.TilesInRangeOfTile(nil, 3, PathingOpts{}))
}
