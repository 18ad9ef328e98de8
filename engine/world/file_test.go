package world

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	w := New(8, 6, 1)
	w.SetTile(0, 0, Tile{Type: TypeGrass, NorthHeight: 2})
	w.SetTile(3, 4, Tile{Type: TypeStone})
	// Tiles outside the declared bounds survive the trip too.
	w.SetTile(-2, 7, Tile{Type: TypeSand, NorthHeight: 1})

	path := filepath.Join(t.TempDir(), "test.world.json")
	if err := w.SaveJSON(path); err != nil {
		t.Fatalf("SaveJSON: %v", err)
	}

	got, err := LoadJSON(path)
	if err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	if got.Width != 8 || got.Height != 6 {
		t.Errorf("bounds = %dx%d, want 8x6", got.Width, got.Height)
	}
	if got.Len() != 3 {
		t.Fatalf("loaded %d tiles, want 3", got.Len())
	}
	tile, ok := got.Tile(-2, 7)
	if !ok {
		t.Fatal("out-of-bounds tile lost")
	}
	if tile.Type != TypeSand || tile.NorthHeight != 1 || tile.X != -2 || tile.Y != 7 {
		t.Errorf("tile = %+v", tile)
	}
}

func TestLoadJSONRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadJSON(path); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestLoadJSONMissingFile(t *testing.T) {
	if _, err := LoadJSON(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
