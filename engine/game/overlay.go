package game

import "github.com/hajimehoshi/ebiten/v2"

// Overlay is a UI layer the controller updates and draws on top of the
// world each frame.
type Overlay interface {
	Update(dt float64)
	Draw(dst *ebiten.Image)
}

// Resizer is implemented by overlays that care about window size. The
// controller checks for it with a type assertion when the layout changes.
type Resizer interface {
	Resize(w, h int)
}

// Shower is implemented by overlays that run setup when they first
// appear.
type Shower interface {
	Show()
}
