// Package iso holds the pure coordinate math for the 2:1 isometric
// projection shared by the game renderer and the input layer.
package iso

// Tile dimensions in screen pixels at zoom 1.0. TileDepth is the vertical
// screen offset applied per unit of tile height.
const (
	TileWidth  = 32
	TileHeight = 16
	TileDepth  = TileHeight / 2
)

// depthRowSpan separates depth rows. It must exceed any plausible height
// value so the height term can never promote a tile past the next row.
const depthRowSpan = 1000

// WorldToScreen converts world tile coords to screen pixel coords.
func WorldToScreen(wx, wy float64) (sx, sy float64) {
	sx = (wx - wy) * (TileWidth / 2)
	sy = (wx + wy) * (TileHeight / 2)
	return
}

// ScreenToWorld converts screen pixel coords back to world tile coords.
// Exact algebraic inverse of WorldToScreen.
func ScreenToWorld(sx, sy float64) (wx, wy float64) {
	wx = sx/TileWidth + sy/TileHeight
	wy = sy/TileHeight - sx/TileWidth
	return
}

// Depth returns the draw-order key for world position and height. Rows
// sort by x+y; height breaks ties within a row so taller content draws
// on top.
func Depth(wx, wy, height float64) float64 {
	return (wx+wy)*depthRowSpan + height
}

// ScreenToWorldMovement rotates a screen-space movement vector into world
// space, so "right on screen" maps to the matching world diagonal.
func ScreenToWorldMovement(sx, sy float64) (wx, wy float64) {
	wx = (sx + sy) / 2
	wy = (sy - sx) / 2
	return
}
