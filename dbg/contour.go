package dbg

import (
	"fmt"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/osuushi/levelx/geom"
)

// Contour describes a ring for log output: green for counterclockwise
// (outer) rings, red for clockwise (hole) rings, cyan for degenerate ones.
func Contour(c geom.Contour) string {
	label := fmt.Sprintf("%d pts, area %g", len(c), c.Area())
	switch {
	case len(c) < 3 || c.Area() == 0:
		label = aurora.Cyan(label).String()
	case c.IsClockwise():
		label = aurora.Red(label).String()
	default:
		label = aurora.Green(label).String()
	}
	return fmt.Sprintf("%s %s", label, c)
}

// Polygon describes an outer contour and its holes on separate lines.
func Polygon(poly geom.Polygon) string {
	lines := []string{Contour(poly.Outer)}
	for _, hole := range poly.Holes {
		lines = append(lines, "  hole "+Contour(hole))
	}
	return strings.Join(lines, "\n")
}
