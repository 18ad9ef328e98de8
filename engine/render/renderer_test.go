package render

import (
	"testing"

	"github.com/wrenware/isoworld/engine/world"
)

func tileSprite(t *testing.T, r *Renderer, x, y int) *TileSprite {
	t.Helper()
	id, ok := r.tiles[world.Point{X: x, Y: y}]
	if !ok {
		t.Fatalf("no sprite registered for tile (%d,%d)", x, y)
	}
	sp, ok := r.graph.Payload(id).(*TileSprite)
	if !ok {
		t.Fatalf("payload for tile (%d,%d) is not a *TileSprite", x, y)
	}
	return sp
}

func TestRenderTilePositioning(t *testing.T) {
	r := NewRenderer(nil)
	r.RenderTile(world.Tile{Type: world.TypeGrass, X: 2, Y: 3}, 0)

	sp := tileSprite(t, r, 2, 3)
	if sp.ScreenX != -32 || sp.ScreenY != 40 {
		t.Errorf("sprite screen position = (%v,%v), want (-32,40)", sp.ScreenX, sp.ScreenY)
	}
	if sp.Depth != 5000 {
		t.Errorf("sprite depth = %v, want 5000", sp.Depth)
	}
}

func TestRenderTileElevation(t *testing.T) {
	r := NewRenderer(nil)
	r.RenderTile(world.Tile{Type: world.TypeStone, X: 2, Y: 3}, 2)

	sp := tileSprite(t, r, 2, 3)
	if sp.ScreenY != 24 {
		t.Errorf("elevated sprite ScreenY = %v, want 24", sp.ScreenY)
	}
	if sp.Depth != 5002 {
		t.Errorf("elevated sprite depth = %v, want 5002", sp.Depth)
	}
}

func TestRenderTileReplacesSprite(t *testing.T) {
	r := NewRenderer(nil)
	r.RenderTile(world.Tile{Type: world.TypeGrass, X: 1, Y: 1}, 0)
	first := tileSprite(t, r, 1, 1)

	r.RenderTile(world.Tile{Type: world.TypeDirt, X: 1, Y: 1}, 1)
	second := tileSprite(t, r, 1, 1)

	if first == second {
		t.Error("sprite was mutated in place instead of replaced")
	}
	if second.Type != world.TypeDirt {
		t.Errorf("replacement sprite type = %d, want %d", second.Type, world.TypeDirt)
	}
	if r.TileCount() != 1 {
		t.Errorf("TileCount = %d after re-render, want 1", r.TileCount())
	}
}

func TestDrawOrderFollowsDepth(t *testing.T) {
	r := NewRenderer(nil)
	r.RenderTile(world.Tile{X: 5, Y: 5}, 0)
	r.RenderTile(world.Tile{X: 0, Y: 0}, 0)
	r.RenderTile(world.Tile{X: 3, Y: 1}, 4)

	var depths []float64
	for _, id := range r.graph.Children(r.graph.Root()) {
		depths = append(depths, r.graph.Payload(id).(*TileSprite).Depth)
	}
	want := []float64{0, 4004, 10000}
	if len(depths) != len(want) {
		t.Fatalf("got %d sprites, want %d", len(depths), len(want))
	}
	for i := range want {
		if depths[i] != want[i] {
			t.Errorf("draw position %d has depth %v, want %v", i, depths[i], want[i])
		}
	}
}

func TestTileHover(t *testing.T) {
	r := NewRenderer(nil)
	r.RenderTile(world.Tile{X: 4, Y: 2}, 0)

	r.SetTileHover(4, 2, true)
	if !tileSprite(t, r, 4, 2).Hovered {
		t.Error("sprite not marked hovered")
	}
	if x, y, ok := r.HoveredTile(); !ok || x != 4 || y != 2 {
		t.Errorf("HoveredTile = (%d,%d,%v), want (4,2,true)", x, y, ok)
	}

	r.SetTileHover(4, 2, false)
	if tileSprite(t, r, 4, 2).Hovered {
		t.Error("sprite still hovered after clear")
	}
	if _, _, ok := r.HoveredTile(); ok {
		t.Error("HoveredTile still set after clear")
	}

	// Unknown coordinates are a no-op.
	r.SetTileHover(99, 99, true)
	if _, _, ok := r.HoveredTile(); ok {
		t.Error("hover recorded for a tile that was never rendered")
	}
}

func TestRendererClear(t *testing.T) {
	r := NewRenderer(nil)
	r.RenderTile(world.Tile{X: 0, Y: 0}, 0)
	r.RenderTile(world.Tile{X: 1, Y: 0}, 0)
	r.SetTileHover(0, 0, true)

	r.Clear()
	if r.TileCount() != 0 {
		t.Errorf("TileCount = %d after Clear, want 0", r.TileCount())
	}
	if _, _, ok := r.HoveredTile(); ok {
		t.Error("hover survived Clear")
	}

	// The renderer stays usable after clearing.
	r.RenderTile(world.Tile{X: 2, Y: 2}, 0)
	if r.TileCount() != 1 {
		t.Errorf("TileCount = %d after re-render, want 1", r.TileCount())
	}
}
