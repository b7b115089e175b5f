package partition

import (
	"embed"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/JoshVarga/svgparser"
	"github.com/osuushi/levelx/geom"
)

// This file parses the svg fixtures into polygons. It is not a real svg
// parser. It takes every <polygon> element in the file, treats the one with
// the largest area as the outer contour and the rest as holes, and fixes up
// the winding. If anything goes wrong, it bails.
//
// Fixtures are available by name in the fixtures/ directory, sans extension.

//go:embed fixtures
var fixtures embed.FS

func LoadFixture(name string) geom.Polygon {
	fixture, err := fixtures.Open("fixtures/" + name + ".svg")
	if err != nil {
		log.Fatalf("Could not load fixture %q: %v", name, err)
	}

	defer fixture.Close()
	rootEl, err := svgparser.Parse(fixture, true)
	if err != nil {
		log.Fatalf("Failed to parse fixture %q: %v", name, err)
	}

	polygonEls := rootEl.FindAll("polygon")
	if len(polygonEls) == 0 {
		log.Fatalf("No polygons found in fixture %q", name)
	}

	var contours []geom.Contour
	for _, polygonEl := range polygonEls {
		contours = append(contours, parsePoints(polygonEl.Attributes["points"]))
	}

	outerIndex := 0
	for i, contour := range contours {
		if contour.Area() > contours[outerIndex].Area() {
			outerIndex = i
		}
	}

	var result geom.Polygon
	for i, contour := range contours {
		if i == outerIndex {
			if contour.IsClockwise() {
				contour = contour.Reverse()
			}
			result.Outer = contour
			continue
		}
		if !contour.IsClockwise() {
			contour = contour.Reverse()
		}
		result.Holes = append(result.Holes, contour)
	}
	return result
}

func parsePoints(pointString string) geom.Contour {
	var contour geom.Contour
	for _, pointString := range strings.Fields(pointString) {
		pointStrings := strings.Split(pointString, ",")
		if len(pointStrings) != 2 {
			log.Fatalf("Invalid point string %q", pointString)
		}
		x, err := strconv.ParseFloat(pointStrings[0], 64)
		if err != nil {
			log.Fatalf("Invalid x value %q: %v", pointStrings[0], err)
		}
		y, err := strconv.ParseFloat(pointStrings[1], 64)
		if err != nil {
			log.Fatalf("Invalid y value %q: %v", pointStrings[1], err)
		}
		contour = append(contour, geom.Pt(x, y))
	}
	return contour
}

// Some ad hoc code specified fixtures

func SimpleStar() geom.Contour {
	var points geom.Contour
	const outerRadius = 5
	const innerRadius = 2
	for i := 0; i < 10; i++ {
		radius := float64(outerRadius)
		if i%2 == 1 {
			radius = innerRadius
		}
		angle := 2 * math.Pi * float64(i) / 10
		points = append(points, geom.Pt(radius*math.Cos(angle), radius*math.Sin(angle)))
	}
	return points
}

func SquareWithHole() geom.Polygon {
	return geom.Polygon{
		Outer: geom.Contour{geom.Pt(-5, -5), geom.Pt(5, -5), geom.Pt(5, 5), geom.Pt(-5, 5)},
		Holes: []geom.Contour{
			{geom.Pt(-2, -2), geom.Pt(-2, 2), geom.Pt(2, 2), geom.Pt(2, -2)},
		},
	}
}

func StarOutline() geom.Polygon {
	var filled, hole geom.Contour
	const filledOuterRadius = 10
	const filledInnerRadius = 5
	const holeOuterRadius = filledOuterRadius - 2
	const holeInnerRadius = filledInnerRadius - 2
	for i := 0; i < 10; i++ {
		filledRadius, holeRadius := float64(filledOuterRadius), float64(holeOuterRadius)
		if i%2 == 1 {
			filledRadius, holeRadius = filledInnerRadius, holeInnerRadius
		}
		angle := 2 * math.Pi * float64(i) / 10
		filled = append(filled, geom.Pt(filledRadius*math.Cos(angle), filledRadius*math.Sin(angle)))
		hole = append(hole, geom.Pt(holeRadius*math.Cos(angle), holeRadius*math.Sin(angle)))
	}
	return geom.Polygon{Outer: filled, Holes: []geom.Contour{hole.Reverse()}}
}

// Unit tile quad with its top-left corner at (x, y), in level winding.
func tileQuad(x, y float64) []geom.Point {
	return []geom.Point{geom.Pt(x, y), geom.Pt(x+1, y), geom.Pt(x+1, y+1), geom.Pt(x, y+1)}
}

// Add one tile per '#' in rows.
func mergerFromRows(rows ...string) *Merger {
	m := &Merger{}
	for y, row := range rows {
		for x, r := range row {
			if r == '#' {
				m.AddPolygon(tileQuad(float64(x), float64(y))...)
			}
		}
	}
	return m
}
