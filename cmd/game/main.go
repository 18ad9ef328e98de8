package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"path/filepath"
	"sort"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/wrenware/isoworld/engine/game"
	"github.com/wrenware/isoworld/engine/input"
	"github.com/wrenware/isoworld/engine/render"
	"github.com/wrenware/isoworld/engine/ui"
	"github.com/wrenware/isoworld/engine/world"
)

const (
	ScreenWidth  = 1280
	ScreenHeight = 720
	WorldSize    = 100
)

// Game implements ebiten.Game around the world controller. The controller
// owns the frame loop; this layer adds the key toggles and prop placement
// that only make sense in a windowed client.
type Game struct {
	ctrl   *game.Controller
	store  *world.World
	cam    *render.Camera
	rend   *render.Renderer
	help   *ui.Help
	toasts *ui.Toasts

	models     []string
	modelIndex int
	propAngle  int

	showGrid    bool
	showMinimap bool
}

func NewGame(atlasPath, spriteDir string, seed int64) *Game {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ctx := game.NewContext()
	ctx.AtlasPath = atlasPath
	ctx.SpriteDir = spriteDir

	store := world.New(WorldSize, WorldSize, seed)
	store.GenerateRandom()

	atlas, err := render.LoadAtlas(atlasPath)
	if err != nil {
		log.Printf("no tile atlas: %v (drawing flat tiles)", err)
	}
	rend := render.NewRenderer(atlas)

	var models []string
	if lib, err := render.LoadSpriteLib(spriteDir); err != nil {
		log.Printf("no sprite library: %v (prop placement disabled)", err)
	} else {
		rend.Lib = lib
		for name := range lib.Models {
			models = append(models, name)
		}
		sort.Strings(models)
	}

	cam := render.NewCamera(ScreenWidth, ScreenHeight)
	ctrl := game.NewController(ctx, store, cam, rend, input.New())
	ctrl.Initialize()

	help := ui.NewHelp(ScreenWidth, []string{
		"[WASD] Pan  [Wheel] Zoom",
		"[G] Grid  [M] Minimap",
		"[R] Regenerate world",
		"[Tab] Next model",
		"[Q] Rotate model",
		"[LClick] Place prop",
		"[RClick] Remove prop",
		"[H] Hide this panel",
	})
	toasts := ui.NewToasts()
	ctrl.AddOverlay(help)
	ctrl.AddOverlay(toasts)

	return &Game{
		ctrl:        ctrl,
		store:       store,
		cam:         cam,
		rend:        rend,
		help:        help,
		toasts:      toasts,
		models:      models,
		showMinimap: true,
	}
}

func (g *Game) Update() error {
	g.ctrl.Update(1.0 / float64(ebiten.TPS()))

	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		g.showGrid = !g.showGrid
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.showMinimap = !g.showMinimap
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.help.Toggle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.ctrl.GenerateRandomWorld()
		g.toasts.Push("world regenerated")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) && len(g.models) > 0 {
		g.modelIndex = (g.modelIndex + 1) % len(g.models)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		g.propAngle = (g.propAngle + 90) % 360
	}

	// Props anchor on the hovered tile.
	if x, y, ok := g.ctrl.HoveredTile(); ok {
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && len(g.models) > 0 {
			model := g.models[g.modelIndex]
			if g.rend.PlaceProp(model, g.propAngle, x, y) {
				g.toasts.Push("placed %s at (%d, %d)", model, x, y)
			} else {
				g.toasts.Push("cannot place %s here", model)
			}
		}
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
			g.rend.RemoveProp(x, y)
		}
	}

	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{20, 20, 30, 255})

	g.rend.Draw(screen)

	if g.showGrid {
		minX, minY, maxX, maxY := g.cam.VisibleTileRange(g.store.Width, g.store.Height)
		g.rend.DrawGrid(screen, minX, minY, maxX, maxY)
	}

	if g.showMinimap {
		g.rend.DrawMinimap(screen, g.store, g.cam, ScreenWidth-170, ScreenHeight-170, 160)
	}

	g.ctrl.DrawOverlays(screen)
	g.drawHUD(screen)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	hover := "-"
	if x, y, ok := g.ctrl.HoveredTile(); ok {
		if t, exists := g.store.Tile(x, y); exists {
			hover = fmt.Sprintf("(%d, %d) %s h%d", x, y, tileTypeName(t.Type), t.NorthHeight)
		}
	}
	model := "-"
	if len(g.models) > 0 {
		model = fmt.Sprintf("%s @ %d", g.models[g.modelIndex], g.propAngle)
	}

	info := fmt.Sprintf(
		"FPS: %.0f | Tiles: %d | Props: %d | Zoom: %.2fx\n"+
			"Tile: %s | Model: %s | [H] Help",
		ebiten.ActualFPS(),
		g.rend.TileCount(),
		g.rend.PropCount(),
		g.cam.Zoom,
		hover,
		model,
	)
	ebitenutil.DebugPrint(screen, info)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

func tileTypeName(t world.TileType) string {
	switch t {
	case world.TypeGrass:
		return "Grass"
	case world.TypeDirt:
		return "Dirt"
	case world.TypeSand:
		return "Sand"
	case world.TypeStone:
		return "Stone"
	}
	return "Unknown"
}

func main() {
	var (
		atlasPath = flag.String("atlas", "", "tile atlas PNG (default assets/tiles.png)")
		spriteDir = flag.String("sprites", "", "baked sprite directory (default assets/models)")
		seed      = flag.Int64("seed", 0, "world generation seed (0 = time-based)")
	)
	flag.Parse()

	if *atlasPath == "" {
		*atlasPath = filepath.Join(render.AssetsDir(), "tiles.png")
	}
	if *spriteDir == "" {
		*spriteDir = filepath.Join(render.AssetsDir(), "models")
	}

	ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
	ebiten.SetWindowTitle("Isoworld")
	ebiten.SetVsyncEnabled(true)

	if err := ebiten.RunGame(NewGame(*atlasPath, *spriteDir, *seed)); err != nil {
		log.Fatal(err)
	}
}
