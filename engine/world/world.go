// Package world owns the tile grid for the building game. Each tile
// stores a single height at its north corner; the other three corners are
// read from neighboring tiles, so the heightfield stays seamless without
// duplicating shared corners.
package world

import "math/rand"

// TileType selects which cell of the terrain atlas a tile draws with.
type TileType uint8

const (
	TypeGrass TileType = iota
	TypeDirt
	TypeSand
	TypeStone
	TypeCount // number of tile types, also the atlas column count
)

// Tile is an immutable value record; edits replace the whole tile.
type Tile struct {
	Type        TileType
	NorthHeight int
	X, Y        int
}

// Point keys the tile store.
type Point struct {
	X, Y int
}

// Corner identifies one corner of a tile diamond.
type Corner int

const (
	CornerN Corner = iota
	CornerE
	CornerS
	CornerW
)

// World stores tiles keyed by coordinate. Width and Height bound random
// generation and camera framing only; the store itself accepts any
// coordinate, so editing tools may paint outside the declared area.
type World struct {
	Width  int
	Height int

	tiles map[Point]Tile
	rng   *rand.Rand
}

// New creates an empty world with the given generation bounds. The seed
// makes generation reproducible.
func New(width, height int, seed int64) *World {
	return &World{
		Width:  width,
		Height: height,
		tiles:  make(map[Point]Tile, width*height),
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Tile returns the tile at (x, y) if present.
func (w *World) Tile(x, y int) (Tile, bool) {
	t, ok := w.tiles[Point{x, y}]
	return t, ok
}

// SetTile stores t at (x, y), stamping its coordinates.
func (w *World) SetTile(x, y int, t Tile) {
	t.X = x
	t.Y = y
	w.tiles[Point{x, y}] = t
}

// Delete removes the tile at (x, y) if present.
func (w *World) Delete(x, y int) {
	delete(w.tiles, Point{x, y})
}

// CornerHeight returns the height of one corner of the tile at (x, y).
// The north corner is stored on the tile itself; the east, south and west
// corners are the north corners of the tiles at (x+1,y), (x+1,y+1) and
// (x,y+1). A missing tile counts as height 0.
func (w *World) CornerHeight(x, y int, c Corner) int {
	switch c {
	case CornerE:
		x++
	case CornerS:
		x++
		y++
	case CornerW:
		y++
	}
	if t, ok := w.tiles[Point{x, y}]; ok {
		return t.NorthHeight
	}
	return 0
}

// GenerateRandom replaces the whole store with a fresh Width×Height grid
// of random flat tiles.
func (w *World) GenerateRandom() {
	w.tiles = make(map[Point]Tile, w.Width*w.Height)
	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			w.tiles[Point{x, y}] = Tile{
				Type: TileType(w.rng.Intn(int(TypeCount))),
				X:    x,
				Y:    y,
			}
		}
	}
}

// Len returns the number of stored tiles.
func (w *World) Len() int {
	return len(w.tiles)
}

// Range calls fn for every stored tile until fn returns false. Iteration
// order is unspecified; callers that draw must order by depth themselves.
func (w *World) Range(fn func(Tile) bool) {
	for _, t := range w.tiles {
		if !fn(t) {
			return
		}
	}
}
