package main

import (
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/osuushi/levelx"
	"github.com/osuushi/levelx/dbg"
	"github.com/osuushi/levelx/geom"
	"github.com/osuushi/levelx/internal/mapfile"
	"github.com/osuushi/levelx/partition"
	"github.com/pkg/errors"
	"gopkg.in/alecthomas/kingpin.v2"
)

// Query a level file from the command line. Tile positions are given as
// "x,y" grid coordinates.
//
//	levelx path level.json 1,1 8,4 --diagonals
//	levelx range level.json 4,4 3
//	levelx shapes level.json --png shapes.png
var (
	app     = kingpin.New("levelx", "Query tile-grid levels described by JSON level files.")
	verbose = app.Flag("verbose", "Log level construction to stderr.").Short('v').Bool()

	pathCmd       = app.Command("path", "Print the cheapest path between two tiles.")
	pathLevel     = pathCmd.Arg("level", "Level file.").Required().ExistingFile()
	pathFrom      = pathCmd.Arg("from", "Start tile.").Required().String()
	pathTo        = pathCmd.Arg("to", "End tile.").Required().String()
	pathDiagonals = pathCmd.Flag("diagonals", "Allow diagonal steps.").Short('d').Bool()
	pathObjs      = pathCmd.Flag("objs", "Treat occupied tiles as obstacles.").Bool()

	rangeCmd       = app.Command("range", "Print the tiles reachable within a number of steps.")
	rangeLevel     = rangeCmd.Arg("level", "Level file.").Required().ExistingFile()
	rangeFrom      = rangeCmd.Arg("from", "Origin tile.").Required().String()
	rangeSteps     = rangeCmd.Arg("steps", "Step budget.").Required().Int()
	rangeDiagonals = rangeCmd.Flag("diagonals", "Allow diagonal steps.").Short('d').Bool()

	shapesCmd   = app.Command("shapes", "Merge obstacle tiles and print the convex shapes.")
	shapesLevel = shapesCmd.Arg("level", "Level file.").Required().ExistingFile()
	shapesPNG   = shapesCmd.Flag("png", "Also draw the shapes to this PNG file.").String()
	shapesCat   = shapesCmd.Flag("cat", "Draw the shapes inline in the terminal (iTerm2).").Bool()
	shapesScale = shapesCmd.Flag("scale", "Drawing scale.").Default("4").Float64()
)

func main() {
	switch kingpin.MustParse(app.Parse(os.Args[1:])) {
	case pathCmd.FullCommand():
		app.FatalIfError(runPath(os.Stdout), "path")
	case rangeCmd.FullCommand():
		app.FatalIfError(runRange(os.Stdout), "range")
	case shapesCmd.FullCommand():
		app.FatalIfError(runShapes(os.Stdout), "shapes")
	}
}

func loadLevel(path string, mergeObstacles bool) (*levelx.Level, error) {
	f, err := mapfile.Load(path)
	if err != nil {
		return nil, err
	}
	return f.NewLevel(func(opts *levelx.Options) {
		opts.MergeObstacles = opts.MergeObstacles || mergeObstacles
		if *verbose {
			opts.Logger = log.New(os.Stderr, "", log.Ltime)
		}
	})
}

func parseTilePos(s string) (image.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return image.Point{}, errors.Errorf("tile position %q should be x,y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return image.Point{}, errors.Wrapf(err, "tile position %q", s)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return image.Point{}, errors.Wrapf(err, "tile position %q", s)
	}
	return image.Pt(x, y), nil
}

func runPath(out io.Writer) error {
	l, err := loadLevel(*pathLevel, false)
	if err != nil {
		return err
	}
	from, err := parseTilePos(*pathFrom)
	if err != nil {
		return err
	}
	to, err := parseTilePos(*pathTo)
	if err != nil {
		return err
	}

	path := l.PathFromTilePos(from, to, levelx.PathingOpts{
		AllowDiagonals:  *pathDiagonals,
		ObjsAsObstacles: *pathObjs,
	})
	if path == nil {
		fmt.Fprintln(out, aurora.Red("no path"))
		return nil
	}

	positions := make([]image.Point, len(path))
	for i, t := range path {
		positions[i] = t.TilePos()
	}
	fmt.Fprintln(out, renderGrid(l, positions))
	fmt.Fprintf(out, "%d tiles: %v\n", len(positions), positions)
	return nil
}

func runRange(out io.Writer) error {
	l, err := loadLevel(*rangeLevel, false)
	if err != nil {
		return err
	}
	from, err := parseTilePos(*rangeFrom)
	if err != nil {
		return err
	}

	tiles := l.TilesInRangeOfTilePos(from, *rangeSteps, levelx.PathingOpts{AllowDiagonals: *rangeDiagonals})
	positions := make([]image.Point, len(tiles))
	for i, t := range tiles {
		positions[i] = t.TilePos()
	}
	fmt.Fprintln(out, renderGrid(l, positions))
	fmt.Fprintf(out, "%d tiles in range\n", len(positions))
	return nil
}

func runShapes(out io.Writer) error {
	l, err := loadLevel(*shapesLevel, true)
	if err != nil {
		return err
	}

	var all []geom.Contour
	for _, group := range l.ObstacleShapes() {
		fmt.Fprintf(out, "%s %v: %d shapes\n", aurora.Bold(group.Tag), group.Tags, len(group.Convexes))
		for _, convex := range group.Convexes {
			fmt.Fprintf(out, "  %s\n", dbg.Contour(convex))
		}
		all = append(all, group.Convexes...)
	}

	if *shapesPNG != "" {
		file, err := os.Create(*shapesPNG)
		if err != nil {
			return errors.Wrap(err, "creating png")
		}
		defer file.Close()
		if err := partition.DrawPNG(file, *shapesScale, all); err != nil {
			return err
		}
	}
	if *shapesCat {
		tmp, err := os.CreateTemp("", "levelx-*.png")
		if err != nil {
			return errors.Wrap(err, "creating temp file")
		}
		tmp.Close()
		defer os.Remove(tmp.Name())
		return partition.DrawToTerminal(tmp.Name(), *shapesScale, all)
	}
	return nil
}

// Map characters are not kept on the level, so the grid is drawn from tile
// state: '#' obstacle, '.' open, ' ' empty, '*' marked.
func renderGrid(l *levelx.Level, marked []image.Point) string {
	marks := make(map[image.Point]bool, len(marked))
	for _, p := range marked {
		marks[p] = true
	}

	var sb strings.Builder
	for y := 0; y < l.NumRows(); y++ {
		for x := 0; x < l.NumCols(); x++ {
			p := image.Pt(x, y)
			t := l.TileFromTilePos(p)
			switch {
			case marks[p]:
				sb.WriteString(aurora.Yellow("*").String())
			case t == nil:
				sb.WriteByte(' ')
			case t.IsObstacle():
				sb.WriteByte('#')
			default:
				sb.WriteByte('.')
			}
		}
		if y < l.NumRows()-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
