package levelx

import (
	"slices"

	"github.com/osuushi/levelx/dbg"
	"github.com/osuushi/levelx/geom"
	"github.com/osuushi/levelx/partition"
	"github.com/pkg/errors"
)

// ShapeGroup is the convex collision geometry for one merge group.
type ShapeGroup struct {
	// Tag is the merge group: one of Options.MergeByTag, or "obstacle".
	Tag string
	// Tags are the extra tags from Options.MergeTags.
	Tags []string
	// Convexes are counterclockwise convex contours in world space.
	Convexes []geom.Contour
}

// ObstacleShapes returns the shapes derived when the level was built with
// MergeObstacles, or nil otherwise.
func (l *Level) ObstacleShapes() []ShapeGroup {
	return l.shapes
}

// DeriveObstacleShapes merges the obstacle areas of all obstacle tiles and
// splits the result into convex shapes, one group per merge tag. A tile
// joins the group of the first MergeByTag tag it carries, or the "obstacle"
// group if it carries none. Empty groups are left out.
//
// It works from the tiles' current state, so it can be called again after
// tiles change.
func (l *Level) DeriveObstacleShapes() ([]ShapeGroup, error) {
	groupTags := make([]string, 0, len(l.opts.MergeByTag)+1)
	for _, tag := range append(slices.Clone(l.opts.MergeByTag), obstacleTag) {
		if !slices.Contains(groupTags, tag) {
			groupTags = append(groupTags, tag)
		}
	}

	mergers := make(map[string]*partition.Merger, len(groupTags))
	for _, tag := range groupTags {
		mergers[tag] = &partition.Merger{}
	}

	for _, t := range l.tiles {
		if t == nil || !t.isObstacle {
			continue
		}
		group := obstacleTag
		for _, tag := range l.opts.MergeByTag {
			if t.Is(tag) {
				group = tag
				break
			}
		}
		// Merge in level space; the anchor moves the area so the anchor point
		// sits on the tile position.
		offset := t.pos
		if t.anchor != nil {
			offset = offset.Add(t.anchor.offset(t.dimensions()))
		}
		mergers[group].AddPolygon(t.obstacleArea.Translate(offset)...)
	}

	var groups []ShapeGroup
	for _, tag := range groupTags {
		merger := mergers[tag]
		if merger.Len() == 0 {
			continue
		}
		convexes, err := merger.Convexes()
		if err != nil {
			return nil, errors.Wrapf(err, "group %q", tag)
		}
		for i, convex := range convexes {
			convexes[i] = convex.Translate(l.opts.Pos)
		}
		l.log.Printf("levelx: merged %d %s tiles into %d shapes", merger.Len(), tag, len(convexes))
		// dbg names are never freed, so only name groups someone will read about.
		if l.opts.Logger != nil {
			name := dbg.Name(merger)
			for _, convex := range convexes {
				l.log.Printf("levelx: %s/%s %s", tag, name, dbg.Contour(convex))
			}
		}
		groups = append(groups, ShapeGroup{
			Tag:      tag,
			Tags:     slices.Clone(l.opts.mergeTags()),
			Convexes: convexes,
		})
	}
	return groups, nil
}

// Hand the derived shapes to the collider, tagged with the group tag first
// and each tag once.
func (l *Level) registerShapes() {
	if l.opts.Collider == nil {
		return
	}
	for _, group := range l.shapes {
		tags := []string{group.Tag}
		for _, tag := range group.Tags {
			if !slices.Contains(tags, tag) {
				tags = append(tags, tag)
			}
		}
		for _, convex := range group.Convexes {
			l.opts.Collider.AddStatic(convex, tags)
		}
	}
}
