// Command worldedit is the brush editor for world JSON files: paint
// tile types, sculpt corner heights, erase, undo and redo, save.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"math"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/wrenware/isoworld/editor"
	"github.com/wrenware/isoworld/engine/input"
	"github.com/wrenware/isoworld/engine/iso"
	"github.com/wrenware/isoworld/engine/render"
	"github.com/wrenware/isoworld/engine/ui"
	"github.com/wrenware/isoworld/engine/world"
)

const (
	ScreenWidth  = 1280
	ScreenHeight = 720
)

var brushes = []struct {
	key  ebiten.Key
	t    world.TileType
	name string
}{
	{ebiten.KeyDigit1, world.TypeGrass, "Grass"},
	{ebiten.KeyDigit2, world.TypeDirt, "Dirt"},
	{ebiten.KeyDigit3, world.TypeSand, "Sand"},
	{ebiten.KeyDigit4, world.TypeStone, "Stone"},
}

type App struct {
	editor *editor.Editor
	rend   *render.Renderer
	cam    *render.Camera
	in     *input.Controller
	toasts *ui.Toasts

	brushIdx       int
	hoverX, hoverY int
}

func NewApp(worldPath, atlasPath string, size int) *App {
	atlas, err := render.LoadAtlas(atlasPath)
	if err != nil {
		log.Printf("no tile atlas: %v (drawing flat tiles)", err)
	}

	a := &App{
		editor: editor.New(world.New(size, size, 0)),
		rend:   render.NewRenderer(atlas),
		cam:    render.NewCamera(ScreenWidth, ScreenHeight),
		in:     input.New(),
		toasts: ui.NewToasts(),
	}
	// Painting along the window edge must not pan the view.
	a.in.EdgeScroll = false

	if worldPath != "" {
		if err := a.editor.Load(worldPath); err != nil {
			log.Printf("loading %s: %v (starting empty)", worldPath, err)
			a.editor.FilePath = worldPath
		} else {
			a.toasts.Push("loaded %s", worldPath)
		}
	}

	w := a.editor.World
	a.cam.SetWorldBounds(w.Width, w.Height)
	a.cam.SetNextTarget(float64(w.Width)/2, float64(w.Height)/2)
	a.cam.SnapToNextTarget()
	a.renderWorld()
	return a
}

func (a *App) Update() error {
	a.in.Update()

	dt := 1.0 / float64(ebiten.TPS())
	if mx, my := a.in.IsoMovementVector(); mx != 0 || my != 0 {
		a.cam.Move(mx*a.cam.Speed*dt, my*a.cam.Speed*dt)
	}
	switch z := a.in.ZoomIntent(); {
	case z > 0:
		a.cam.ZoomIn()
	case z < 0:
		a.cam.ZoomOut()
	}
	a.cam.Update()
	offX, offY := a.cam.ScreenPosition()
	a.rend.SetView(offX, offY, a.cam.Zoom)

	cx, cy := a.in.Cursor()
	wx, wy := a.cam.ScreenToWorld(cx, cy)
	a.hoverX = int(math.Floor(wx))
	a.hoverY = int(math.Floor(wy))

	if a.handleEditing() {
		a.renderWorld()
	}
	a.toasts.Update(dt)
	return nil
}

// handleEditing applies this frame's editing keys and clicks, reporting
// whether the world changed and needs re-rendering.
func (a *App) handleEditing() bool {
	for i, b := range brushes {
		if inpututil.IsKeyJustPressed(b.key) {
			a.brushIdx = i
			a.editor.Brush = b.t
			a.editor.Tool = editor.ToolPaint
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		a.editor.Tool = editor.ToolPaint
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		a.editor.Tool = editor.ToolRaise
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		a.editor.Tool = editor.ToolLower
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		a.editor.Tool = editor.ToolErase
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		a.editor.BrushSize += 2
		if a.editor.BrushSize > 5 {
			a.editor.BrushSize = 1
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		a.editor.ShowGrid = !a.editor.ShowGrid
	}

	dirty := false
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl)
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyZ) {
		if ebiten.IsKeyPressed(ebiten.KeyShift) {
			dirty = a.editor.Redo()
		} else {
			dirty = a.editor.Undo()
		}
	}
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyS) {
		if err := a.editor.Save(""); err != nil {
			a.toasts.Push("save failed: %v", err)
			log.Printf("save failed: %v", err)
		} else {
			a.toasts.Push("saved %s", a.editor.FilePath)
		}
	}

	if !ctrl && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if a.editor.Paint(a.hoverX, a.hoverY) {
			dirty = true
		}
	}
	return dirty
}

func (a *App) renderWorld() {
	a.rend.Clear()
	a.editor.World.Range(func(t world.Tile) bool {
		a.rend.RenderTile(t, t.NorthHeight)
		return true
	})
}

func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{30, 30, 40, 255})

	a.rend.Draw(screen)
	if a.editor.ShowGrid {
		w := a.editor.World
		minX, minY, maxX, maxY := a.cam.VisibleTileRange(w.Width, w.Height)
		a.rend.DrawGrid(screen, minX, minY, maxX, maxY)
	}
	a.drawBrushOutline(screen)
	a.toasts.Draw(screen)
	a.drawHUD(screen)
}

// drawBrushOutline strokes the diamond covering the brush square around
// the hovered tile.
func (a *App) drawBrushOutline(screen *ebiten.Image) {
	r := a.editor.BrushSize / 2
	hw := float32(iso.TileWidth) / 2 * float32(a.cam.Zoom)
	hh := float32(iso.TileHeight) / 2 * float32(a.cam.Zoom)

	tx, ty := a.cam.WorldToScreen(float64(a.hoverX-r), float64(a.hoverY-r))
	rx, ry := a.cam.WorldToScreen(float64(a.hoverX+r), float64(a.hoverY-r))
	bx, by := a.cam.WorldToScreen(float64(a.hoverX+r), float64(a.hoverY+r))
	lx, ly := a.cam.WorldToScreen(float64(a.hoverX-r), float64(a.hoverY+r))

	clr := color.RGBA{255, 255, 0, 150}
	vector.StrokeLine(screen, float32(tx), float32(ty), float32(rx)+hw, float32(ry)+hh, 2, clr, false)
	vector.StrokeLine(screen, float32(rx)+hw, float32(ry)+hh, float32(bx), float32(by)+2*hh, 2, clr, false)
	vector.StrokeLine(screen, float32(bx), float32(by)+2*hh, float32(lx)-hw, float32(ly)+hh, 2, clr, false)
	vector.StrokeLine(screen, float32(lx)-hw, float32(ly)+hh, float32(tx), float32(ty), 2, clr, false)
}

func (a *App) drawHUD(screen *ebiten.Image) {
	tileInfo := "-"
	if t, ok := a.editor.World.Tile(a.hoverX, a.hoverY); ok {
		tileInfo = fmt.Sprintf("%s h%d", brushName(t.Type), t.NorthHeight)
	}
	mark := ""
	if a.editor.Modified {
		mark = " *"
	}

	info := fmt.Sprintf(
		"World Editor%s | Tile (%d, %d) %s | Brush %s size %d | Tool %s\n"+
			"[1-4] Brush [P/R/L/E] Tool [Tab] Size [G] Grid [Ctrl+Z] Undo [Ctrl+Shift+Z] Redo [Ctrl+S] Save",
		mark, a.hoverX, a.hoverY, tileInfo,
		brushes[a.brushIdx].name, a.editor.BrushSize, toolName(a.editor.Tool),
	)
	ebitenutil.DebugPrint(screen, info)
}

func (a *App) Layout(_, _ int) (int, int) {
	return ScreenWidth, ScreenHeight
}

func brushName(t world.TileType) string {
	for _, b := range brushes {
		if b.t == t {
			return b.name
		}
	}
	return "Unknown"
}

func toolName(t editor.Tool) string {
	switch t {
	case editor.ToolPaint:
		return "paint"
	case editor.ToolRaise:
		return "raise"
	case editor.ToolLower:
		return "lower"
	case editor.ToolErase:
		return "erase"
	}
	return "?"
}

func main() {
	var (
		worldPath = flag.String("world", "", "world JSON file to edit (created on save)")
		atlasPath = flag.String("atlas", "", "tile atlas PNG (default assets/tiles.png)")
		size      = flag.Int("size", 64, "bounds of a newly created world")
	)
	flag.Parse()

	if *atlasPath == "" {
		*atlasPath = filepath.Join(render.AssetsDir(), "tiles.png")
	}

	ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
	ebiten.SetWindowTitle("Isoworld Editor")

	if err := ebiten.RunGame(NewApp(*worldPath, *atlasPath, *size)); err != nil {
		log.Fatal(err)
	}
}
