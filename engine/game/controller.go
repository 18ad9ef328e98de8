// Package game orchestrates the per-frame loop: input intents drive the
// camera, the camera drives the renderer view, and the world store stays
// the single source of tile truth.
package game

import (
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/wrenware/isoworld/engine/iso"
	"github.com/wrenware/isoworld/engine/render"
	"github.com/wrenware/isoworld/engine/world"
)

// Context carries the process-wide collaborators a controller needs.
// Everything is injected; there is no package-level state.
type Context struct {
	Rand      *rand.Rand
	AtlasPath string
	SpriteDir string
	Log       *log.Logger
}

// NewContext returns a context with a seeded RNG and the default logger.
func NewContext() *Context {
	return &Context{
		Rand: rand.New(rand.NewSource(time.Now().UnixNano())),
		Log:  log.Default(),
	}
}

// TileRenderer is the slice of the renderer the controller drives.
type TileRenderer interface {
	RenderTile(t world.Tile, northHeight int)
	SetTileHover(x, y int, hovered bool)
	SetView(offsetX, offsetY, zoom float64)
	Clear()
}

// InputSource is the slice of the input controller consumed each frame.
type InputSource interface {
	Update()
	IsoMovementVector() (float64, float64)
	EdgeScrollVector(screenW, screenH int) (int, int)
	ZoomIntent() int
	Cursor() (int, int)
}

// Controller runs the world loop. It starts uninitialized; Initialize
// builds the first scene and arms the update cycle.
type Controller struct {
	ctx   *Context
	store *world.World
	cam   *render.Camera
	rend  TileRenderer
	in    InputSource

	initialized bool
	overlays    []Overlay

	hoverX, hoverY int
	hasHover       bool
}

// NewController wires a controller to its collaborators. A nil ctx gets
// defaults.
func NewController(ctx *Context, store *world.World, cam *render.Camera, rend TileRenderer, in InputSource) *Controller {
	if ctx == nil {
		ctx = NewContext()
	}
	if ctx.Log == nil {
		ctx.Log = log.Default()
	}
	return &Controller{
		ctx:   ctx,
		store: store,
		cam:   cam,
		rend:  rend,
		in:    in,
	}
}

// Initialized reports whether Initialize has run.
func (g *Controller) Initialized() bool {
	return g.initialized
}

// Initialize renders the initial world and frames the camera on its
// center. One-shot: a repeat call warns and leaves everything untouched.
func (g *Controller) Initialize() {
	if g.initialized {
		g.ctx.Log.Printf("world controller already initialized; ignoring")
		return
	}
	g.initialized = true

	g.cam.SetWorldBounds(g.store.Width, g.store.Height)
	g.renderWorld()
	g.CenterOn(float64(g.store.Width)/2, float64(g.store.Height)/2)
}

// GenerateRandomWorld regenerates the tile store and re-renders every
// tile. Before Initialize it warns and does nothing; a caller asking too
// early is a recoverable mistake, not a fault.
func (g *Controller) GenerateRandomWorld() {
	if !g.initialized {
		g.ctx.Log.Printf("generateRandomWorld ignored: world controller not initialized")
		return
	}
	g.store.GenerateRandom()
	g.renderWorld()
}

// CenterOn points the camera at a world position and snaps, with no
// smoothing residue. Used for one-time framing, not per-frame movement.
func (g *Controller) CenterOn(x, y float64) {
	g.cam.SetNextTarget(x, y)
	g.cam.SnapToNextTarget()
}

// Update runs one frame: consume input intents, smooth the camera, push
// the resulting view into the renderer, refresh hover, tick overlays.
func (g *Controller) Update(dt float64) {
	if !g.initialized {
		return
	}

	g.in.Update()

	mx, my := g.in.IsoMovementVector()
	if ex, ey := g.in.EdgeScrollVector(g.cam.ScreenW, g.cam.ScreenH); ex != 0 || ey != 0 {
		wx, wy := iso.ScreenToWorldMovement(float64(ex), float64(ey))
		mx += wx
		my += wy
	}
	if mx != 0 || my != 0 {
		g.cam.Move(mx*g.cam.Speed*dt, my*g.cam.Speed*dt)
	}

	switch z := g.in.ZoomIntent(); {
	case z > 0:
		g.cam.ZoomIn()
	case z < 0:
		g.cam.ZoomOut()
	}

	g.cam.Update()

	offX, offY := g.cam.ScreenPosition()
	g.rend.SetView(offX, offY, g.cam.Zoom)

	g.updateHover()

	for _, o := range g.overlays {
		o.Update(dt)
	}
}

// AddOverlay registers an overlay. Overlays that implement Shower run
// their setup hook immediately.
func (g *Controller) AddOverlay(o Overlay) {
	g.overlays = append(g.overlays, o)
	if s, ok := o.(Shower); ok {
		s.Show()
	}
}

// Resize propagates a new window size to the camera and to overlays that
// implement Resizer.
func (g *Controller) Resize(w, h int) {
	g.cam.ScreenW = w
	g.cam.ScreenH = h
	for _, o := range g.overlays {
		if r, ok := o.(Resizer); ok {
			r.Resize(w, h)
		}
	}
}

// DrawOverlays paints registered overlays in registration order.
func (g *Controller) DrawOverlays(dst *ebiten.Image) {
	for _, o := range g.overlays {
		o.Draw(dst)
	}
}

// HoveredTile returns the tile under the cursor, if any.
func (g *Controller) HoveredTile() (int, int, bool) {
	return g.hoverX, g.hoverY, g.hasHover
}

func (g *Controller) renderWorld() {
	g.rend.Clear()
	g.store.Range(func(t world.Tile) bool {
		g.rend.RenderTile(t, t.NorthHeight)
		return true
	})
}

// updateHover maps the cursor through the camera into tile coordinates
// and keeps at most one tile hovered.
func (g *Controller) updateHover() {
	cx, cy := g.in.Cursor()
	wx, wy := g.cam.ScreenToWorld(cx, cy)
	tx := int(math.Floor(wx))
	ty := int(math.Floor(wy))

	_, over := g.store.Tile(tx, ty)
	if g.hasHover && (!over || tx != g.hoverX || ty != g.hoverY) {
		g.rend.SetTileHover(g.hoverX, g.hoverY, false)
		g.hasHover = false
	}
	if over && !g.hasHover {
		g.rend.SetTileHover(tx, ty, true)
		g.hoverX, g.hoverY = tx, ty
		g.hasHover = true
	}
}
