package levelx

import (
	"image"
	"math"

	"github.com/golang/geo/r2"
	"github.com/osuushi/levelx/geom"
)

// Update refreshes tile visibility against the configured viewport. It does
// nothing unless PauseOffScreenTiles is set and a Viewport is configured.
// Call it once per frame.
func (l *Level) Update() int {
	if !l.opts.PauseOffScreenTiles || l.opts.Viewport == nil {
		return 0
	}
	w, h := l.opts.Viewport.ViewSize()
	return l.RefreshVisibility(l.opts.Viewport.CamPos(), w, h)
}

// RefreshVisibility unpauses the tiles under a view of viewW by viewH world
// units centred on camPos, and pauses the ones that were visible last time
// but no longer are. It returns the number of tiles it touched, which is zero
// when the visible tile area has not changed.
//
// Tiles outside both the old and the new area are left alone, so this relies
// on every tile starting paused, as PauseOffScreenTiles arranges.
func (l *Level) RefreshVisibility(camPos geom.Point, viewW, viewH float64) int {
	visible := l.visibleTileArea(camPos, viewW, viewH)
	if visible == l.lastVisible {
		return 0
	}

	touched := 0
	area := visible.Union(l.lastVisible)
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			p := image.Pt(x, y)
			t := l.TileFromTilePos(p)
			if t == nil {
				continue
			}
			offScreen := !p.In(visible)
			t.paused, t.hidden = offScreen, offScreen
			touched++
		}
	}

	l.lastVisible = visible
	return touched
}

// VisibleArea is the tile area the last refresh made visible. Max is
// exclusive.
func (l *Level) VisibleArea() image.Rectangle {
	return l.lastVisible
}

// The min edge is floored and the max edge ceiled, so a partly visible tile
// counts as visible, plus one tile of slack on the max side.
func (l *Level) visibleTileArea(camPos geom.Point, viewW, viewH float64) image.Rectangle {
	view := r2.RectFromCenterSize(camPos, r2.Point{X: viewW, Y: viewH})
	lo := l.WorldPosToLocalPos(view.Lo())
	hi := l.WorldPosToLocalPos(view.Hi())

	minX := max(0, int(math.Floor(lo.X/l.opts.TileWidth)))
	minY := max(0, int(math.Floor(lo.Y/l.opts.TileHeight)))
	maxX := min(l.numCols-1, int(math.Ceil(hi.X/l.opts.TileWidth)))
	maxY := min(l.numRows-1, int(math.Ceil(hi.Y/l.opts.TileHeight)))

	area := image.Rectangle{Min: image.Pt(minX, minY), Max: image.Pt(maxX+1, maxY+1)}
	if area.Empty() {
		return image.Rectangle{}
	}
	return area
}
