package partition

import (
	"io"
	"math"
	"os"

	"github.com/fogleman/gg"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/osuushi/levelx/geom"
	"github.com/pkg/errors"
)

// Padding around the drawing, in pixels
const drawPadding = 20

// DrawPNG renders contours as filled outlines and writes a PNG to w. The
// canvas uses screen orientation, like the level grid, so y grows downwards.
func DrawPNG(w io.Writer, scale float64, contours []geom.Contour) error {
	c := drawContours(scale, contours)
	return errors.Wrap(c.EncodePNG(w), "encoding png")
}

// DrawToTerminal saves the drawing to path and prints it inline (iTerm only).
// Handy when debugging a level layout.
func DrawToTerminal(path string, scale float64, contours []geom.Contour) error {
	c := drawContours(scale, contours)
	if err := c.SavePNG(path); err != nil {
		return errors.Wrapf(err, "saving %s", path)
	}
	imgcat.CatFile(path, os.Stdout)
	return nil
}

func drawContours(scale float64, contours []geom.Contour) *gg.Context {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, contour := range contours {
		for _, p := range contour {
			minX = math.Min(minX, p.X)
			minY = math.Min(minY, p.Y)
			maxX = math.Max(maxX, p.X)
			maxY = math.Max(maxY, p.Y)
		}
	}
	if math.IsInf(minX, 1) {
		minX, minY, maxX, maxY = 0, 0, 0, 0
	}

	width := int(scale*(maxX-minX)) + drawPadding*2
	height := int(scale*(maxY-minY)) + drawPadding*2
	c := gg.NewContext(width, height)
	c.SetRGB(0, 0, 0)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()

	c.Translate(drawPadding, drawPadding)
	c.Scale(scale, scale)
	c.Translate(-minX, -minY)

	c.SetLineWidth(2)
	for _, contour := range contours {
		if len(contour) == 0 {
			continue
		}
		c.MoveTo(contour[0].X, contour[0].Y)
		for _, p := range contour[1:] {
			c.LineTo(p.X, p.Y)
		}
		c.ClosePath()
		c.SetRGB(0, 0.5, 0)
		c.FillPreserve()
		c.SetRGB(0, 1, 1)
		c.Stroke()
	}
	return c
}
