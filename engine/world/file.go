package world

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// fileTile is the on-disk record for one stored tile.
type fileTile struct {
	X    int      `json:"x"`
	Y    int      `json:"y"`
	Type TileType `json:"type"`
	H    int      `json:"northHeight"`
}

type fileWorld struct {
	Width  int        `json:"width"`
	Height int        `json:"height"`
	Tiles  []fileTile `json:"tiles"`
}

// SaveJSON writes the world as a sparse tile list, ordered row-major
// so saved files diff cleanly.
func (w *World) SaveJSON(path string) error {
	f := fileWorld{
		Width:  w.Width,
		Height: w.Height,
		Tiles:  make([]fileTile, 0, len(w.tiles)),
	}
	for _, t := range w.tiles {
		f.Tiles = append(f.Tiles, fileTile{X: t.X, Y: t.Y, Type: t.Type, H: t.NorthHeight})
	}
	sort.Slice(f.Tiles, func(i, j int) bool {
		if f.Tiles[i].Y != f.Tiles[j].Y {
			return f.Tiles[i].Y < f.Tiles[j].Y
		}
		return f.Tiles[i].X < f.Tiles[j].X
	})

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// LoadJSON reads a world saved by SaveJSON.
func LoadJSON(path string) (*World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f fileWorld
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	w := New(f.Width, f.Height, 0)
	for _, t := range f.Tiles {
		w.SetTile(t.X, t.Y, Tile{Type: t.Type, NorthHeight: t.H})
	}
	return w, nil
}
