// Package ui holds the flat overlay widgets the clients layer over the
// world view: a transient notification feed and a key-legend panel.
// Everything draws with the debug font and vector rects; a themed
// widget toolkit stays an external concern.
package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ToastDuration is how long one notification stays up, in seconds.
const ToastDuration = 2.5

const maxToasts = 4

type toast struct {
	text      string
	remaining float64
}

// Toasts is a transient notification feed anchored to the bottom-left
// corner. Entries age out on their own; the feed never blocks input.
type Toasts struct {
	items []toast
}

func NewToasts() *Toasts { return &Toasts{} }

// Push queues a notification. The oldest entry drops when the feed is
// full.
func (t *Toasts) Push(format string, args ...any) {
	t.items = append(t.items, toast{
		text:      fmt.Sprintf(format, args...),
		remaining: ToastDuration,
	})
	if len(t.items) > maxToasts {
		t.items = t.items[len(t.items)-maxToasts:]
	}
}

// Update ages the feed and drops expired entries.
func (t *Toasts) Update(dt float64) {
	live := t.items[:0]
	for _, it := range t.items {
		it.remaining -= dt
		if it.remaining > 0 {
			live = append(live, it)
		}
	}
	t.items = live
}

// Draw paints the feed rows just above the bottom edge, oldest on top.
func (t *Toasts) Draw(dst *ebiten.Image) {
	h := dst.Bounds().Dy()
	for i, it := range t.items {
		y := h - 24 - (len(t.items)-1-i)*20
		w := float32(len(it.text)*6 + 12)
		vector.DrawFilledRect(dst, 8, float32(y)-4, w, 18, color.RGBA{0, 0, 0, 160}, false)
		ebitenutil.DebugPrintAt(dst, it.text, 14, y)
	}
}

// Help is the key-legend panel anchored to the right edge.
type Help struct {
	Lines   []string
	Visible bool

	screenW int
}

func NewHelp(screenW int, lines []string) *Help {
	return &Help{Lines: lines, screenW: screenW}
}

// Show makes the panel visible. The controller calls it when the
// overlay is registered, so a fresh client boots with the legend up.
func (h *Help) Show() { h.Visible = true }

// Toggle flips visibility.
func (h *Help) Toggle() { h.Visible = !h.Visible }

// Resize keeps the panel glued to the right edge.
func (h *Help) Resize(w, _ int) { h.screenW = w }

func (h *Help) Update(float64) {}

func (h *Help) Draw(dst *ebiten.Image) {
	if !h.Visible {
		return
	}
	const panelW = 230
	x := float32(h.screenW - panelW - 10)
	ph := float32(len(h.Lines)*18 + 20)
	vector.DrawFilledRect(dst, x, 40, panelW, ph, color.RGBA{20, 20, 40, 220}, false)
	vector.StrokeRect(dst, x, 40, panelW, ph, 1, color.RGBA{100, 100, 160, 255}, false)
	for i, line := range h.Lines {
		ebitenutil.DebugPrintAt(dst, line, int(x)+10, 50+i*18)
	}
}
