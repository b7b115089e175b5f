package main

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/osuushi/levelx"
	"github.com/osuushi/levelx/geom"
	"github.com/osuushi/levelx/internal/mapfile"
	"gopkg.in/alecthomas/kingpin.v2"
)

// Window onto a level file. Arrow keys or WASD move the camera. The level
// pauses tiles against a view smaller than the window, so the paused border
// shows up dimmed around the active area.
var (
	levelPath = kingpin.Arg("level", "Level file.").Required().ExistingFile()
	width     = kingpin.Flag("width", "Window width.").Default("800").Int()
	height    = kingpin.Flag("height", "Window height.").Default("600").Int()
	viewScale = kingpin.Flag("view", "Fraction of the window the level treats as on screen.").Default("0.6").Float64()
	speed     = kingpin.Flag("speed", "Camera speed in world units per tick.").Default("4").Float64()
	verbose   = kingpin.Flag("verbose", "Log level construction.").Short('v').Bool()
)

var (
	floorColor    = color.RGBA{80, 80, 80, 255}
	obstacleColor = color.RGBA{60, 80, 120, 255}
	pausedColor   = color.RGBA{30, 30, 30, 255}
	shapeColor    = color.RGBA{240, 200, 60, 255}
	viewColor     = color.RGBA{200, 60, 60, 255}
)

// camera is the level's viewport.
type camera struct {
	pos        geom.Point
	viewWidth  float64
	viewHeight float64
}

func (c *camera) CamPos() geom.Point { return c.pos }

func (c *camera) ViewSize() (float64, float64) { return c.viewWidth, c.viewHeight }

type viewer struct {
	level   *levelx.Level
	cam     *camera
	touched int
}

func (v *viewer) Update() error {
	var dx, dy float64
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		dx -= *speed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		dx += *speed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		dy -= *speed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		dy += *speed
	}
	v.cam.pos = v.cam.pos.Add(geom.Pt(dx, dy))

	if n := v.level.Update(); n > 0 {
		v.touched = n
	}
	return nil
}

// World to screen, with the camera in the middle of the window.
func (v *viewer) toScreen(p geom.Point) (float32, float32) {
	return float32(p.X - v.cam.pos.X + float64(*width)/2), float32(p.Y - v.cam.pos.Y + float64(*height)/2)
}

func (v *viewer) Draw(screen *ebiten.Image) {
	tw, th := float32(v.level.TileWidth()), float32(v.level.TileHeight())
	for _, t := range v.level.Tiles() {
		if t == nil {
			continue
		}
		x, y := v.toScreen(v.level.TilePosToWorldPos(t.TilePos()))
		clr := floorColor
		switch {
		case t.Paused():
			clr = pausedColor
		case t.IsObstacle():
			clr = obstacleColor
		}
		vector.FillRect(screen, x, y, tw, th, clr, false)
		vector.StrokeRect(screen, x, y, tw, th, 1, color.RGBA{40, 40, 40, 255}, false)
	}

	for _, group := range v.level.ObstacleShapes() {
		for _, convex := range group.Convexes {
			for i, p := range convex {
				q := convex[geom.CircularIndex(i+1, len(convex))]
				x0, y0 := v.toScreen(p)
				x1, y1 := v.toScreen(q)
				vector.StrokeLine(screen, x0, y0, x1, y1, 2, shapeColor, true)
			}
		}
	}

	vw, vh := v.cam.ViewSize()
	x, y := v.toScreen(v.cam.pos.Sub(geom.Pt(vw/2, vh/2)))
	vector.StrokeRect(screen, x, y, float32(vw), float32(vh), 1, viewColor, false)

	visible := v.level.VisibleArea()
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf(
		"cam %.0f,%.0f  visible %v (%d tiles)  last refresh touched %d",
		v.cam.pos.X, v.cam.pos.Y, visible, area(visible), v.touched,
	), 8, 8)
}

func (v *viewer) Layout(int, int) (int, int) {
	return *width, *height
}

func area(r image.Rectangle) int {
	return r.Dx() * r.Dy()
}

func main() {
	kingpin.Parse()

	f, err := mapfile.Load(*levelPath)
	kingpin.FatalIfError(err, "loading level")

	cam := &camera{
		viewWidth:  float64(*width) * *viewScale,
		viewHeight: float64(*height) * *viewScale,
	}
	level, err := f.NewLevel(func(opts *levelx.Options) {
		opts.PauseOffScreenTiles = true
		opts.Viewport = cam
		if *verbose {
			opts.Logger = log.New(os.Stderr, "", log.Ltime)
		}
	})
	kingpin.FatalIfError(err, "building level")

	bounds := level.Bounds()
	cam.pos = bounds.Center()

	ebiten.SetWindowSize(*width, *height)
	ebiten.SetWindowTitle("levelview: " + f.Name)
	if err := ebiten.RunGame(&viewer{level: level, cam: cam}); err != nil {
		log.Fatal(err)
	}
}
