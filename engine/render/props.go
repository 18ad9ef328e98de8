package render

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/wrenware/isoworld/engine/bake"
	"github.com/wrenware/isoworld/engine/iso"
	"github.com/wrenware/isoworld/engine/world"
)

// PropScale converts baked sprite pixels to game pixels. Sprites are
// baked at 128px per tile and placed at 32px per tile.
const PropScale = float64(iso.TileWidth) / float64(bake.TileWidthPx)

// PropSprite is a placed model sprite spanning one or more tiles,
// anchored at the bottom vertex of its footprint diamond.
type PropSprite struct {
	Model            string
	X, Y             int
	ScreenX, ScreenY float64
	Depth            float64
	Scale            float64
	Img              *ebiten.Image
}

// SpriteLib holds the baked model index and lazily decoded sprites.
type SpriteLib struct {
	Models map[string]bake.ModelMetadata

	dir   string
	cache map[string]*ebiten.Image
}

// LoadSpriteLib reads models-metadata.json from dir. Sprite images are
// decoded on first use, not up front.
func LoadSpriteLib(dir string) (*SpriteLib, error) {
	data, err := os.ReadFile(filepath.Join(dir, bake.MetadataFile))
	if err != nil {
		return nil, fmt.Errorf("reading model metadata: %w", err)
	}
	models := make(map[string]bake.ModelMetadata)
	if err := json.Unmarshal(data, &models); err != nil {
		return nil, fmt.Errorf("parsing model metadata: %w", err)
	}
	return &SpriteLib{
		Models: models,
		dir:    dir,
		cache:  make(map[string]*ebiten.Image),
	}, nil
}

// Angle returns the sprite record for one view of a model.
func (l *SpriteLib) Angle(model string, angle int) (bake.AngleSprite, bool) {
	md, ok := l.Models[model]
	if !ok {
		return bake.AngleSprite{}, false
	}
	for _, a := range md.Angles {
		if a.Angle == angle {
			return a, true
		}
	}
	return bake.AngleSprite{}, false
}

// Sprite returns the decoded image for one view of a model.
func (l *SpriteLib) Sprite(model string, angle int) (*ebiten.Image, bake.AngleSprite, bool) {
	a, ok := l.Angle(model, angle)
	if !ok {
		return nil, bake.AngleSprite{}, false
	}
	if img, ok := l.cache[a.File]; ok {
		return img, a, true
	}

	img := loadImageFile(filepath.Join(l.dir, a.File))
	if img == nil {
		return nil, a, false
	}
	l.cache[a.File] = img
	return img, a, true
}

// propPlacement computes the screen anchor and depth for a sprite of
// pixel size (w, h) whose footprint starts at tile (x, y). The anchor is
// the bottom vertex of the footprint diamond; depth keys off the
// footprint's far tile so the sprite draws over every tile it covers.
func propPlacement(x, y int, fp bake.Footprint, w, h int, scale float64) (sx, sy, depth float64) {
	vx, vy := iso.WorldToScreen(float64(x+fp.X), float64(y+fp.Y))
	sx = vx - float64(w)*scale/2
	sy = vy - float64(h)*scale
	depth = iso.Depth(float64(x+fp.X-1), float64(y+fp.Y-1), 1)
	return sx, sy, depth
}

// PlaceProp places a baked model sprite with its footprint anchored at
// tile (x, y). A prop already anchored there is replaced. Returns false
// if the model or angle is unknown or its sprite cannot be decoded.
func (r *Renderer) PlaceProp(model string, angle, x, y int) bool {
	if r.Lib == nil {
		return false
	}
	img, a, ok := r.Lib.Sprite(model, angle)
	if !ok {
		return false
	}

	key := world.Point{X: x, Y: y}
	if id, exists := r.props[key]; exists {
		r.graph.Remove(id)
		delete(r.props, key)
	}

	w, h := a.RenderDimensions.Width, a.RenderDimensions.Height
	sx, sy, depth := propPlacement(x, y, a.Footprint, w, h, PropScale)
	sp := &PropSprite{
		Model:   model,
		X:       x,
		Y:       y,
		ScreenX: sx,
		ScreenY: sy,
		Depth:   depth,
		Scale:   PropScale,
		Img:     img,
	}
	r.props[key] = r.graph.Add(r.graph.Root(), depth, sp)
	return true
}

// RemoveProp removes the prop anchored at tile (x, y), if any.
func (r *Renderer) RemoveProp(x, y int) {
	key := world.Point{X: x, Y: y}
	id, ok := r.props[key]
	if !ok {
		return
	}
	r.graph.Remove(id)
	delete(r.props, key)
}

// PropCount returns the number of placed props.
func (r *Renderer) PropCount() int {
	return len(r.props)
}
