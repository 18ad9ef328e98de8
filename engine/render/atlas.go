package render

import (
	"fmt"
	"image"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"runtime"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/wrenware/isoworld/engine/iso"
	"github.com/wrenware/isoworld/engine/world"
)

// TileRect returns the atlas pixel rectangle for a tile type. The sheet
// is a single row of four TileWidth x TileHeight cells, indexed by type.
func TileRect(t world.TileType) image.Rectangle {
	x := int(t) * iso.TileWidth
	return image.Rect(x, 0, x+iso.TileWidth, iso.TileHeight)
}

// Atlas is the terrain sheet sliced into per-type sub-images.
type Atlas struct {
	Image *ebiten.Image
	tiles [world.TypeCount]*ebiten.Image
}

// LoadAtlas reads the 4-tile sheet PNG and slices it into cells.
func LoadAtlas(path string) (*Atlas, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tile atlas %s: %w", path, err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode tile atlas %s: %w", path, err)
	}

	a := &Atlas{Image: ebiten.NewImageFromImage(src)}
	for t := world.TileType(0); t < world.TypeCount; t++ {
		a.tiles[t] = a.Image.SubImage(TileRect(t)).(*ebiten.Image)
	}
	return a, nil
}

// TileImage returns the sheet cell for t, or nil for unknown types.
func (a *Atlas) TileImage(t world.TileType) *ebiten.Image {
	if a == nil || int(t) >= len(a.tiles) {
		return nil
	}
	return a.tiles[t]
}

// AssetsDir resolves the assets directory: next to the executable first,
// then relative to the source tree, then the working directory.
func AssetsDir() string {
	exe, err := os.Executable()
	if err == nil {
		dir := filepath.Join(filepath.Dir(exe), "assets")
		if _, err := os.Stat(dir); err == nil {
			return dir
		}
	}
	_, filename, _, _ := runtime.Caller(0)
	dir := filepath.Join(filepath.Dir(filename), "..", "..", "assets")
	if _, err := os.Stat(dir); err == nil {
		return dir
	}
	return "assets"
}

// loadImageFile loads one PNG as an ebiten image, returning nil when the
// file is absent and logging when it is present but unreadable.
func loadImageFile(path string) *ebiten.Image {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		log.Printf("Warning: could not decode sprite %s: %v", path, err)
		return nil
	}
	return ebiten.NewImageFromImage(img)
}
