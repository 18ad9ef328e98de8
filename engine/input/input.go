// Package input samples raw device state into per-frame movement and
// zoom intents. It never drives the camera itself.
package input

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/wrenware/isoworld/engine/iso"
)

// ZoomCooldown gates zoom intents so one wheel gesture or key press
// yields a single discrete zoom step.
const ZoomCooldown = 150 * time.Millisecond

// Keys the controller samples each frame. Anything else is read through
// inpututil edge triggers by the app directly.
var trackedKeys = []ebiten.Key{
	ebiten.KeyW, ebiten.KeyA, ebiten.KeyS, ebiten.KeyD,
	ebiten.KeyUp, ebiten.KeyDown, ebiten.KeyLeft, ebiten.KeyRight,
	ebiten.KeyEqual, ebiten.KeyMinus,
	ebiten.KeyG, ebiten.KeyM, ebiten.KeySpace, ebiten.KeyEscape,
}

// Controller buffers device state between frames. Wheel deltas queue up
// and are consumed by the next eligible ZoomIntent call; the key set is
// dropped whenever the window loses focus so keys cannot stick mid-press.
type Controller struct {
	MouseX, MouseY int

	EdgeScroll bool
	EdgeSize   int

	keys          map[ebiten.Key]bool
	wheelQueue    []float64
	zoomKeyIntent int
	lastZoom      time.Time
	now           func() time.Time
}

// New creates an input controller.
func New() *Controller {
	return &Controller{
		EdgeScroll: true,
		EdgeSize:   20,
		keys:       make(map[ebiten.Key]bool),
		now:        time.Now,
	}
}

// Update samples the devices. Call once at the start of every frame.
func (c *Controller) Update() {
	if !ebiten.IsFocused() {
		c.Reset()
		return
	}

	c.MouseX, c.MouseY = ebiten.CursorPosition()

	for _, k := range trackedKeys {
		c.keys[k] = ebiten.IsKeyPressed(k)
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		c.wheelQueue = append(c.wheelQueue, wy)
	}

	c.zoomKeyIntent = 0
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		c.zoomKeyIntent = 1
	} else if inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		c.zoomKeyIntent = -1
	}
}

// Reset drops all buffered state.
func (c *Controller) Reset() {
	for k := range c.keys {
		delete(c.keys, k)
	}
	c.wheelQueue = c.wheelQueue[:0]
	c.zoomKeyIntent = 0
}

// KeyDown reports whether a tracked key is currently held.
func (c *Controller) KeyDown(k ebiten.Key) bool {
	return c.keys[k]
}

// Cursor returns the last sampled cursor position.
func (c *Controller) Cursor() (int, int) {
	return c.MouseX, c.MouseY
}

// MovementVector returns this frame's screen-space movement intent from
// WASD and the arrow keys. Components are -1, 0 or 1; diagonals are not
// normalized.
func (c *Controller) MovementVector() (int, int) {
	x, y := 0, 0
	if c.keys[ebiten.KeyA] || c.keys[ebiten.KeyLeft] {
		x--
	}
	if c.keys[ebiten.KeyD] || c.keys[ebiten.KeyRight] {
		x++
	}
	if c.keys[ebiten.KeyW] || c.keys[ebiten.KeyUp] {
		y--
	}
	if c.keys[ebiten.KeyS] || c.keys[ebiten.KeyDown] {
		y++
	}
	return x, y
}

// IsoMovementVector is MovementVector rotated into world space, so
// screen-relative keys move the camera along the matching world diagonal.
func (c *Controller) IsoMovementVector() (float64, float64) {
	x, y := c.MovementVector()
	return iso.ScreenToWorldMovement(float64(x), float64(y))
}

// ZoomIntent returns +1, -1 or 0. Key presses win over the wheel; wheel
// deltas are summed, consumed and sign-inverted (wheel up zooms out).
// Intents inside the cooldown window return 0 and leave the queue intact.
func (c *Controller) ZoomIntent() int {
	if c.now().Sub(c.lastZoom) < ZoomCooldown {
		return 0
	}
	intent := c.zoomKeyIntent
	if intent == 0 && len(c.wheelQueue) > 0 {
		var sum float64
		for _, d := range c.wheelQueue {
			sum += d
		}
		c.wheelQueue = c.wheelQueue[:0]
		if sum > 0 {
			intent = -1
		} else if sum < 0 {
			intent = 1
		}
	}
	if intent != 0 {
		c.lastZoom = c.now()
	}
	return intent
}

// EdgeScrollVector returns a screen-space pan intent when the cursor sits
// inside the edge zone of a screenW x screenH window.
func (c *Controller) EdgeScrollVector(screenW, screenH int) (int, int) {
	if !c.EdgeScroll {
		return 0, 0
	}
	x, y := 0, 0
	if c.MouseX >= 0 && c.MouseX < c.EdgeSize {
		x--
	}
	if c.MouseX >= screenW-c.EdgeSize && c.MouseX < screenW {
		x++
	}
	if c.MouseY >= 0 && c.MouseY < c.EdgeSize {
		y--
	}
	if c.MouseY >= screenH-c.EdgeSize && c.MouseY < screenH {
		y++
	}
	return x, y
}
