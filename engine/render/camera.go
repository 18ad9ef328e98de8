package render

import (
	"math"

	"github.com/wrenware/isoworld/engine/iso"
)

// Bounds is the clamp rectangle for camera targets, in world tile coords.
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Camera approaches a goal position and zoom with exponential smoothing.
// NextTargetX/Y and NextZoom are the goals; TargetX/Y and Zoom trail them
// on every Update and snap exactly once the remaining deltas fall under
// epsilon. Zoom goals are whole steps; the smoothed Zoom is continuous
// while in transit.
type Camera struct {
	TargetX, TargetY         float64 // current smoothed position (world coords)
	NextTargetX, NextTargetY float64 // goal position, always inside Bounds
	Zoom                     float64 // current smoothed zoom
	NextZoom                 int     // goal zoom step in [MinZoom, MaxZoom]
	MinZoom                  int
	MaxZoom                  int

	Speed     float64 // pan speed in world tiles per second
	Smoothing float64 // fraction of the remaining position delta closed per update
	ZoomSpeed float64 // same, for the zoom axis

	Bounds  Bounds
	ScreenW int
	ScreenH int
}

const (
	posSnapEpsilon  = 0.001
	zoomSnapEpsilon = 0.01
)

// NewCamera creates a camera for a screenW x screenH viewport.
func NewCamera(screenW, screenH int) *Camera {
	return &Camera{
		Zoom:      1,
		NextZoom:  1,
		MinZoom:   1,
		MaxZoom:   4,
		Speed:     12,
		Smoothing: 0.15,
		ZoomSpeed: 0.15,
		ScreenW:   screenW,
		ScreenH:   screenH,
	}
}

// SetWorldBounds fits the clamp rectangle to a w x h tile world.
func (c *Camera) SetWorldBounds(w, h int) {
	c.Bounds = Bounds{MaxX: float64(w - 1), MaxY: float64(h - 1)}
}

// SetNextTarget sets the camera goal, clamped into bounds.
func (c *Camera) SetNextTarget(x, y float64) {
	c.NextTargetX = clamp(x, c.Bounds.MinX, c.Bounds.MaxX)
	c.NextTargetY = clamp(y, c.Bounds.MinY, c.Bounds.MaxY)
}

// Move shifts the goal relative to the current goal, not the smoothed
// position, so repeated calls within one frame compose additively. The
// bounds clamp is reapplied on every call.
func (c *Camera) Move(dx, dy float64) {
	c.SetNextTarget(c.NextTargetX+dx, c.NextTargetY+dy)
}

// SetZoom sets the zoom goal as a whole step, clamped.
func (c *Camera) SetZoom(z int) {
	if z < c.MinZoom {
		z = c.MinZoom
	}
	if z > c.MaxZoom {
		z = c.MaxZoom
	}
	c.NextZoom = z
}

// ZoomIn raises the zoom goal by one step.
func (c *Camera) ZoomIn() {
	c.SetZoom(c.NextZoom + 1)
}

// ZoomOut lowers the zoom goal by one step.
func (c *Camera) ZoomOut() {
	c.SetZoom(c.NextZoom - 1)
}

// Update advances position and zoom toward their goals by one smoothing
// step. Once all three deltas are inside epsilon it snaps exactly, so
// convergence terminates instead of drifting asymptotically.
func (c *Camera) Update() {
	dx := c.NextTargetX - c.TargetX
	dy := c.NextTargetY - c.TargetY
	dz := float64(c.NextZoom) - c.Zoom
	if math.Abs(dx) < posSnapEpsilon && math.Abs(dy) < posSnapEpsilon && math.Abs(dz) < zoomSnapEpsilon {
		c.snap()
		return
	}
	c.TargetX += dx * c.Smoothing
	c.TargetY += dy * c.Smoothing
	c.Zoom += dz * c.ZoomSpeed
}

// SnapToNextTarget places the camera exactly on its goals, skipping the
// smoothing transition. Used for one-time framing such as initial centering.
func (c *Camera) SnapToNextTarget() {
	c.snap()
}

func (c *Camera) snap() {
	c.TargetX = c.NextTargetX
	c.TargetY = c.NextTargetY
	c.Zoom = float64(c.NextZoom)
}

// ScreenPosition returns the renderer origin offset for the current
// smoothed state: the projected target, negated and scaled by zoom. The
// renderer adds the screen-center shift itself.
func (c *Camera) ScreenPosition() (float64, float64) {
	sx, sy := iso.WorldToScreen(c.TargetX, c.TargetY)
	return -sx * c.Zoom, -sy * c.Zoom
}

// WorldToScreen converts world tile coords to a screen pixel under the
// current camera state.
func (c *Camera) WorldToScreen(wx, wy float64) (float64, float64) {
	offX, offY := c.ScreenPosition()
	sx, sy := iso.WorldToScreen(wx, wy)
	sx = sx*c.Zoom + offX + float64(c.ScreenW)/2
	sy = sy*c.Zoom + offY + float64(c.ScreenH)/2
	return sx, sy
}

// ScreenToWorld converts a screen pixel back to world tile coords under
// the current camera state.
func (c *Camera) ScreenToWorld(sx, sy int) (float64, float64) {
	offX, offY := c.ScreenPosition()
	ix := (float64(sx) - float64(c.ScreenW)/2 - offX) / c.Zoom
	iy := (float64(sy) - float64(c.ScreenH)/2 - offY) / c.Zoom
	return iso.ScreenToWorld(ix, iy)
}

// VisibleTileRange returns the tile rectangle covering the viewport,
// padded by two tiles and clamped to a worldW x worldH grid.
func (c *Camera) VisibleTileRange(worldW, worldH int) (minX, minY, maxX, maxY int) {
	wx0, wy0 := c.ScreenToWorld(0, 0)
	wx1, wy1 := c.ScreenToWorld(c.ScreenW, 0)
	wx2, wy2 := c.ScreenToWorld(0, c.ScreenH)
	wx3, wy3 := c.ScreenToWorld(c.ScreenW, c.ScreenH)

	minXf := math.Min(math.Min(wx0, wx1), math.Min(wx2, wx3))
	minYf := math.Min(math.Min(wy0, wy1), math.Min(wy2, wy3))
	maxXf := math.Max(math.Max(wx0, wx1), math.Max(wx2, wx3))
	maxYf := math.Max(math.Max(wy0, wy1), math.Max(wy2, wy3))

	const pad = 2
	minX = int(math.Floor(minXf)) - pad
	minY = int(math.Floor(minYf)) - pad
	maxX = int(math.Ceil(maxXf)) + pad
	maxY = int(math.Ceil(maxYf)) + pad

	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX >= worldW {
		maxX = worldW - 1
	}
	if maxY >= worldH {
		maxY = worldH - 1
	}
	return
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
