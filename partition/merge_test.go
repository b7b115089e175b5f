package partition

import (
	"testing"

	"github.com/osuushi/levelx/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerger_TwoSquares(t *testing.T) {
	m := mergerFromRows("##")
	assert.Equal(t, 2, m.Len())

	polygons, err := m.MergedPolygons()
	require.NoError(t, err)
	require.Len(t, polygons, 1)

	// The shared edge is gone and the collinear halves are fused.
	outer := polygons[0].Outer
	assert.ElementsMatch(t, []geom.Point{geom.Pt(0, 0), geom.Pt(2, 0), geom.Pt(2, 1), geom.Pt(0, 1)}, []geom.Point(outer))
	assert.False(t, outer.IsClockwise())
	assert.InDelta(t, 2.0, outer.Area(), 1e-9)
	assert.Empty(t, polygons[0].Holes)
}

func TestMerger_Ring(t *testing.T) {
	m := mergerFromRows(
		"###",
		"#.#",
		"###",
	)
	polygons, err := m.MergedPolygons()
	require.NoError(t, err)
	require.Len(t, polygons, 1)

	poly := polygons[0]
	assert.Len(t, poly.Outer, 4)
	assert.InDelta(t, 9.0, poly.Outer.Area(), 1e-9)
	require.Len(t, poly.Holes, 1)
	assert.Len(t, poly.Holes[0], 4)
	assert.True(t, poly.Holes[0].IsClockwise())
	assert.InDelta(t, 8.0, poly.Area(), 1e-9)

	convexes, err := m.Convexes()
	require.NoError(t, err)
	for _, piece := range convexes {
		assertConvex(t, piece)
	}
	assert.InDelta(t, 8.0, sumArea(convexes), 1e-9)
	validatePiecesBySampling(t, convexes, poly)
}

func TestMerger_SeparateGroups(t *testing.T) {
	m := mergerFromRows(
		"##..#",
		"....#",
	)
	polygons, err := m.MergedPolygons()
	require.NoError(t, err)
	require.Len(t, polygons, 2)

	// Groups come back in the order they were first added.
	assert.InDelta(t, 2.0, polygons[0].Outer.Area(), 1e-9)
	assert.Contains(t, polygons[0].Outer, geom.Pt(0, 0))
	assert.InDelta(t, 2.0, polygons[1].Outer.Area(), 1e-9)
	assert.Contains(t, polygons[1].Outer, geom.Pt(4, 0))
}

func TestMerger_DiagonalNeighbours(t *testing.T) {
	// Tiles touching only at a corner stay separate.
	m := mergerFromRows(
		"#.",
		".#",
	)
	polygons, err := m.MergedPolygons()
	require.NoError(t, err)
	require.Len(t, polygons, 2)
	for _, poly := range polygons {
		assert.Len(t, poly.Outer, 4)
		assert.Empty(t, poly.Holes)
	}
}

func TestMerger_PinchedHole(t *testing.T) {
	// The empty centre touches the empty corner at (1, 1).
	m := mergerFromRows(
		".##",
		"#.#",
		"###",
	)
	polygons, err := m.MergedPolygons()
	require.NoError(t, err)
	require.Len(t, polygons, 1)
	assert.InDelta(t, 7.0, polygons[0].Area(), 1e-9)

	convexes, err := m.Convexes()
	require.NoError(t, err)
	for _, piece := range convexes {
		assertConvex(t, piece)
	}
	assert.InDelta(t, 7.0, sumArea(convexes), 1e-9)
}

func TestMerger_SnapsNearlyEqualVertices(t *testing.T) {
	x, y := 0.1, 0.2
	require.NotEqual(t, 0.3, x+y)

	m := &Merger{}
	m.AddPolygon(geom.Pt(0, 0), geom.Pt(x+y, 0), geom.Pt(x+y, 1), geom.Pt(0, 1))
	m.AddPolygon(geom.Pt(0.3, 0), geom.Pt(1, 0), geom.Pt(1, 1), geom.Pt(0.3, 1))

	polygons, err := m.MergedPolygons()
	require.NoError(t, err)
	require.Len(t, polygons, 1)
	assert.Len(t, polygons[0].Outer, 4)
}

func TestMerger_DegenerateInput(t *testing.T) {
	m := &Merger{}
	m.AddPolygon(geom.Pt(0, 0), geom.Pt(1, 1), geom.Pt(1, 1))
	assert.Equal(t, 0, m.Len())

	polygons, err := m.MergedPolygons()
	require.NoError(t, err)
	assert.Empty(t, polygons)
}

func TestMerger_HoleWithoutOuter(t *testing.T) {
	m := &Merger{}
	m.AddPolygon(geom.Pt(0, 0), geom.Pt(0, 1), geom.Pt(1, 1), geom.Pt(1, 0))
	_, err := m.MergedPolygons()
	assert.EqualError(t, err, "failed to find outer contour for holes in group 0")
}

func TestMerger_Convexes(t *testing.T) {
	m := mergerFromRows(
		"####",
		"#..#",
		"#.##",
		"#...",
	)
	polygons, err := m.MergedPolygons()
	require.NoError(t, err)
	require.Len(t, polygons, 1)

	convexes, err := m.Convexes()
	require.NoError(t, err)
	for _, piece := range convexes {
		assertConvex(t, piece)
	}
	assert.InDelta(t, 10.0, sumArea(convexes), 1e-9)
	validatePiecesBySampling(t, convexes, polygons[0])
}

func TestMerger_DuplicatedOuter(t *testing.T) {
	// The same tile twice, held together by a clockwise strip that cancels
	// against both copies.
	top := []geom.Point{geom.Pt(0, 1), geom.Pt(1, 1), geom.Pt(1, 2), geom.Pt(0, 2)}
	m := &Merger{}
	m.AddPolygon(top...)
	m.AddPolygon(geom.Pt(0, 2), geom.Pt(1, 2), geom.Pt(1, 0), geom.Pt(0, 0))
	m.AddPolygon(geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(1, 1), geom.Pt(0, 1))
	m.AddPolygon(top...)

	polygons, err := m.MergedPolygons()
	var geometryError *GeometryError
	assert.ErrorAs(t, err, &geometryError)
	assert.EqualError(t, err, "polygon id 0 is duplicated")
	assert.Nil(t, polygons)
}

func TestEdgeGraph_InvalidEdge(t *testing.T) {
	// Every removal pairs edges of groups that end up unioned, so a straight
	// run across groups only shows up in a graph built by hand.
	g := newEdgeGraph(2)
	g.add(geom.Pt(0, 0), geom.Pt(1, 0), 0)
	g.add(geom.Pt(1, 0), geom.Pt(2, 0), 1)

	err := func() (err error) {
		defer func() {
			if recoveredErr := HandlePanicRecover(recover()); recoveredErr != nil {
				err = recoveredErr
			}
		}()
		g.fuseCollinearEdges()
		return nil
	}()
	var geometryError *GeometryError
	assert.ErrorAs(t, err, &geometryError)
	assert.Contains(t, err.Error(), "found invalid edge")
}
