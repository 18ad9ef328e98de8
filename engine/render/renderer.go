package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/wrenware/isoworld/engine/iso"
	"github.com/wrenware/isoworld/engine/scene"
	"github.com/wrenware/isoworld/engine/world"
)

// TileColors are the flat fallback colors per tile type, used for the
// vector diamonds when no atlas is loaded and for the minimap.
var TileColors = map[world.TileType]color.RGBA{
	world.TypeGrass: {34, 139, 34, 255},
	world.TypeDirt:  {139, 119, 101, 255},
	world.TypeSand:  {238, 214, 175, 255},
	world.TypeStone: {128, 128, 128, 255},
}

// TileSprite is the render-side projection of one tile. Position and
// depth derive from the world tile; the store stays authoritative. Img
// is nil when no atlas is loaded and the tile draws as a flat diamond.
type TileSprite struct {
	X, Y             int
	Type             world.TileType
	ScreenX, ScreenY float64
	Depth            float64
	Hovered          bool
	Img              *ebiten.Image
}

// Renderer keeps one sprite per rendered tile in a depth-sorted scene
// graph and draws everything under the camera transform pushed in by the
// controller each frame.
type Renderer struct {
	Atlas *Atlas
	Lib   *SpriteLib

	OffsetX, OffsetY float64
	Zoom             float64

	graph    *scene.Graph
	tiles    map[world.Point]scene.ID
	props    map[world.Point]scene.ID
	hoverKey world.Point
	hasHover bool

	fallback map[world.TileType]*ebiten.Image
	whiteImg *ebiten.Image
}

// NewRenderer creates a renderer. The atlas may be nil; tiles then draw
// as flat colored diamonds.
func NewRenderer(atlas *Atlas) *Renderer {
	return &Renderer{
		Atlas:    atlas,
		Zoom:     1,
		graph:    scene.NewGraph(),
		tiles:    make(map[world.Point]scene.ID),
		props:    make(map[world.Point]scene.ID),
		fallback: make(map[world.TileType]*ebiten.Image),
	}
}

// SetView stores this frame's camera offset and zoom.
func (r *Renderer) SetView(offsetX, offsetY, zoom float64) {
	r.OffsetX = offsetX
	r.OffsetY = offsetY
	r.Zoom = zoom
}

// RenderTile replaces the sprite for a tile. The old sprite is destroyed
// and recreated, never mutated in place; the new sprite is positioned by
// the projection shifted up by the north-corner height and keyed for
// depth-sorted drawing.
func (r *Renderer) RenderTile(t world.Tile, northHeight int) {
	key := world.Point{X: t.X, Y: t.Y}
	if id, ok := r.tiles[key]; ok {
		r.graph.Remove(id)
		delete(r.tiles, key)
	}

	sx, sy := iso.WorldToScreen(float64(t.X), float64(t.Y))
	sp := &TileSprite{
		X:       t.X,
		Y:       t.Y,
		Type:    t.Type,
		ScreenX: sx - iso.TileWidth/2,
		ScreenY: sy - float64(northHeight*iso.TileDepth),
		Depth:   iso.Depth(float64(t.X), float64(t.Y), float64(northHeight)),
		Img:     r.Atlas.TileImage(t.Type),
	}
	r.tiles[key] = r.graph.Add(r.graph.Root(), sp.Depth, sp)
}

// SetTileHover flips the darken flag on one tile sprite. Unknown
// coordinates are ignored. Exclusivity is the caller's job; the renderer
// only remembers the last key it was asked to hover.
func (r *Renderer) SetTileHover(x, y int, hovered bool) {
	id, ok := r.tiles[world.Point{X: x, Y: y}]
	if !ok {
		return
	}
	if sp, ok := r.graph.Payload(id).(*TileSprite); ok {
		sp.Hovered = hovered
	}
	if hovered {
		r.hoverKey = world.Point{X: x, Y: y}
		r.hasHover = true
	} else if r.hasHover && r.hoverKey.X == x && r.hoverKey.Y == y {
		r.hasHover = false
	}
}

// HoveredTile returns the last hovered tile coordinate, if any.
func (r *Renderer) HoveredTile() (int, int, bool) {
	return r.hoverKey.X, r.hoverKey.Y, r.hasHover
}

// TileCount returns the number of live tile sprites.
func (r *Renderer) TileCount() int {
	return len(r.tiles)
}

// Clear destroys all sprites. Safe to call on an empty renderer.
func (r *Renderer) Clear() {
	r.graph.Clear()
	r.tiles = make(map[world.Point]scene.ID)
	r.props = make(map[world.Point]scene.ID)
	r.hasHover = false
}

// Draw paints all sprites in depth order under the current view.
func (r *Renderer) Draw(dst *ebiten.Image) {
	cx := float64(dst.Bounds().Dx()) / 2
	cy := float64(dst.Bounds().Dy()) / 2

	for _, id := range r.graph.Children(r.graph.Root()) {
		switch sp := r.graph.Payload(id).(type) {
		case *TileSprite:
			img := sp.Img
			if img == nil {
				img = r.tileFallback(sp.Type)
			}
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(sp.ScreenX, sp.ScreenY)
			op.GeoM.Scale(r.Zoom, r.Zoom)
			op.GeoM.Translate(r.OffsetX+cx, r.OffsetY+cy)
			if sp.Hovered {
				op.ColorScale.Scale(0.5, 0.5, 0.5, 1)
			}
			dst.DrawImage(img, op)
		case *PropSprite:
			if sp.Img == nil {
				continue
			}
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(sp.Scale, sp.Scale)
			op.GeoM.Translate(sp.ScreenX, sp.ScreenY)
			op.GeoM.Scale(r.Zoom, r.Zoom)
			op.GeoM.Translate(r.OffsetX+cx, r.OffsetY+cy)
			dst.DrawImage(sp.Img, op)
		}
	}
}

// DrawGrid strokes diamond outlines over the given tile range.
func (r *Renderer) DrawGrid(dst *ebiten.Image, minX, minY, maxX, maxY int) {
	cx := float64(dst.Bounds().Dx()) / 2
	cy := float64(dst.Bounds().Dy()) / 2
	gridColor := color.RGBA{255, 255, 255, 30}

	hw := float32(iso.TileWidth) / 2 * float32(r.Zoom)
	hh := float32(iso.TileHeight) / 2 * float32(r.Zoom)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			sx, sy := iso.WorldToScreen(float64(x), float64(y))
			px := float32(sx*r.Zoom + r.OffsetX + cx)
			py := float32(sy*r.Zoom+r.OffsetY+cy) + hh

			vector.StrokeLine(dst, px, py-hh, px+hw, py, 1, gridColor, false)
			vector.StrokeLine(dst, px+hw, py, px, py+hh, 1, gridColor, false)
		}
	}
}

// DrawMinimap paints a type-colored overview of the world with the
// camera viewport marked.
func (r *Renderer) DrawMinimap(dst *ebiten.Image, w *world.World, cam *Camera, posX, posY, size int) {
	minimap := ebiten.NewImage(size, size)
	minimap.Fill(color.RGBA{0, 0, 0, 180})

	scaleX := float64(size) / float64(w.Width)
	scaleY := float64(size) / float64(w.Height)

	w.Range(func(t world.Tile) bool {
		if t.X < 0 || t.Y < 0 || t.X >= w.Width || t.Y >= w.Height {
			return true
		}
		clr, ok := TileColors[t.Type]
		if !ok {
			clr = color.RGBA{128, 128, 128, 255}
		}
		px := float32(float64(t.X) * scaleX)
		py := float32(float64(t.Y) * scaleY)
		vector.DrawFilledRect(minimap, px, py, float32(scaleX)+1, float32(scaleY)+1, clr, false)
		return true
	})

	wx0, wy0 := cam.ScreenToWorld(0, 0)
	wx1, wy1 := cam.ScreenToWorld(cam.ScreenW, cam.ScreenH)
	viewColor := color.RGBA{255, 255, 255, 200}
	vx0 := float32(wx0 * scaleX)
	vy0 := float32(wy0 * scaleY)
	vx1 := float32(wx1 * scaleX)
	vy1 := float32(wy1 * scaleY)
	vector.StrokeLine(minimap, vx0, vy0, vx1, vy0, 1, viewColor, false)
	vector.StrokeLine(minimap, vx1, vy0, vx1, vy1, 1, viewColor, false)
	vector.StrokeLine(minimap, vx1, vy1, vx0, vy1, 1, viewColor, false)
	vector.StrokeLine(minimap, vx0, vy1, vx0, vy0, 1, viewColor, false)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(posX), float64(posY))
	dst.DrawImage(minimap, op)
}

// tileFallback returns a cached flat diamond for a tile type.
func (r *Renderer) tileFallback(t world.TileType) *ebiten.Image {
	if img, ok := r.fallback[t]; ok {
		return img
	}

	clr, ok := TileColors[t]
	if !ok {
		clr = color.RGBA{255, 0, 255, 255}
	}

	const tw, th = iso.TileWidth, iso.TileHeight
	img := ebiten.NewImage(tw, th)
	hw := float32(tw) / 2
	hh := float32(th) / 2

	var path vector.Path
	path.MoveTo(hw, 0)
	path.LineTo(tw, hh)
	path.LineTo(hw, th)
	path.LineTo(0, hh)
	path.Close()

	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = float32(clr.R) / 255
		vs[i].ColorG = float32(clr.G) / 255
		vs[i].ColorB = float32(clr.B) / 255
		vs[i].ColorA = float32(clr.A) / 255
	}
	if r.whiteImg == nil {
		r.whiteImg = ebiten.NewImage(3, 3)
		r.whiteImg.Fill(color.White)
	}
	img.DrawTriangles(vs, is, r.whiteImg, nil)

	vector.StrokeLine(img, hw, 0, tw, hh, 1, color.RGBA{0, 0, 0, 80}, false)
	vector.StrokeLine(img, tw, hh, hw, th, 1, color.RGBA{0, 0, 0, 80}, false)
	vector.StrokeLine(img, hw, th, 0, hh, 1, color.RGBA{0, 0, 0, 80}, false)
	vector.StrokeLine(img, 0, hh, hw, 0, 1, color.RGBA{0, 0, 0, 80}, false)

	r.fallback[t] = img
	return img
}
