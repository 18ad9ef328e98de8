// Package editor applies undoable brush strokes to a world. It backs
// the worldedit tool but carries no UI of its own.
package editor

import (
	"github.com/wrenware/isoworld/engine/world"
)

// Tool selects what a Paint stroke does to the tiles under the brush.
type Tool int

const (
	ToolPaint Tool = iota
	ToolRaise
	ToolLower
	ToolErase
)

// maxHeight caps corner heights; raising a tile stops there.
const maxHeight = 8

// change records one tile edit. Either side may be a missing tile:
// painting can create one and erasing removes one.
type change struct {
	x, y          int
	before, after world.Tile
	had, has      bool
}

// Editor holds the world being edited plus brush and history state.
type Editor struct {
	World     *world.World
	Brush     world.TileType
	BrushSize int
	Tool      Tool
	FilePath  string
	Modified  bool
	ShowGrid  bool

	undo [][]change
	redo [][]change
}

// New wraps a world for editing with a 1-tile grass brush.
func New(w *world.World) *Editor {
	return &Editor{
		World:     w,
		Brush:     world.TypeGrass,
		BrushSize: 1,
		ShowGrid:  true,
	}
}

// Paint applies the current tool over the brush square centered on
// (cx, cy) and pushes one undo step for the whole stroke. Tiles the
// tool leaves unchanged are not recorded; a stroke that changed
// nothing reports false and leaves the history alone.
func (e *Editor) Paint(cx, cy int) bool {
	var stroke []change
	r := e.BrushSize / 2
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if ch, ok := e.apply(cx+dx, cy+dy); ok {
				stroke = append(stroke, ch)
			}
		}
	}
	if len(stroke) == 0 {
		return false
	}
	e.undo = append(e.undo, stroke)
	e.redo = nil
	e.Modified = true
	return true
}

func (e *Editor) apply(x, y int) (change, bool) {
	before, had := e.World.Tile(x, y)
	ch := change{x: x, y: y, before: before, had: had}

	switch e.Tool {
	case ToolPaint:
		if had && before.Type == e.Brush {
			return change{}, false
		}
		t := world.Tile{Type: e.Brush, NorthHeight: before.NorthHeight}
		e.World.SetTile(x, y, t)
	case ToolRaise:
		if !had || before.NorthHeight >= maxHeight {
			return change{}, false
		}
		t := before
		t.NorthHeight++
		e.World.SetTile(x, y, t)
	case ToolLower:
		if !had || before.NorthHeight <= 0 {
			return change{}, false
		}
		t := before
		t.NorthHeight--
		e.World.SetTile(x, y, t)
	case ToolErase:
		if !had {
			return change{}, false
		}
		e.World.Delete(x, y)
		return ch, true
	}

	ch.after, ch.has = e.World.Tile(x, y)
	return ch, true
}

// Undo reverts the most recent stroke.
func (e *Editor) Undo() bool {
	if len(e.undo) == 0 {
		return false
	}
	stroke := e.undo[len(e.undo)-1]
	e.undo = e.undo[:len(e.undo)-1]
	for _, ch := range stroke {
		if ch.had {
			e.World.SetTile(ch.x, ch.y, ch.before)
		} else {
			e.World.Delete(ch.x, ch.y)
		}
	}
	e.redo = append(e.redo, stroke)
	e.Modified = true
	return true
}

// Redo re-applies the most recently undone stroke.
func (e *Editor) Redo() bool {
	if len(e.redo) == 0 {
		return false
	}
	stroke := e.redo[len(e.redo)-1]
	e.redo = e.redo[:len(e.redo)-1]
	for _, ch := range stroke {
		if ch.has {
			e.World.SetTile(ch.x, ch.y, ch.after)
		} else {
			e.World.Delete(ch.x, ch.y)
		}
	}
	e.undo = append(e.undo, stroke)
	e.Modified = true
	return true
}

func (e *Editor) CanUndo() bool { return len(e.undo) > 0 }
func (e *Editor) CanRedo() bool { return len(e.redo) > 0 }

// Load replaces the edited world with the contents of path and clears
// the history.
func (e *Editor) Load(path string) error {
	w, err := world.LoadJSON(path)
	if err != nil {
		return err
	}
	e.World = w
	e.FilePath = path
	e.Modified = false
	e.undo, e.redo = nil, nil
	return nil
}

// Save writes the world to path, falling back to the last used name.
func (e *Editor) Save(path string) error {
	if path == "" {
		path = e.FilePath
	}
	if path == "" {
		path = "untitled.world.json"
	}
	if err := e.World.SaveJSON(path); err != nil {
		return err
	}
	e.FilePath = path
	e.Modified = false
	return nil
}
