// Package bake renders GLB models into 2:1 isometric sprite sheets.
// Each model is loaded once, normalized, then rasterized from four fixed
// compass angles into cropped PNGs plus a consolidated metadata index the
// game loads at startup.
package bake

import (
	"fmt"
	"time"
)

// MetadataFile is the index document written next to the sprites.
const MetadataFile = "models-metadata.json"

// Pixel density of one world tile in baked sprites. The game draws tiles
// at 32x16, so baked art is scaled down 4x at placement time.
const (
	TileWidthPx     = 128
	TileHeightPx    = 64
	MinCanvasHeight = 200
)

// Angles are the four render azimuths in bake order.
var Angles = [4]int{0, 90, 180, 270}

// AngleName maps an azimuth to its compass suffix in sprite filenames.
func AngleName(angle int) string {
	switch angle {
	case 0:
		return "ne"
	case 90:
		return "nw"
	case 180:
		return "sw"
	case 270:
		return "se"
	}
	return ""
}

// SpriteFile is the output filename for one model angle.
func SpriteFile(modelName string, angle int) string {
	return fmt.Sprintf("%s_%s.png", modelName, AngleName(angle))
}

// Footprint is a ground-plane extent in whole tiles.
type Footprint struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// WorldSize is the unrounded ground-plane extent of a model in world
// units, before footprint scaling.
type WorldSize struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Dimensions is a pixel width and height.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// AngleSprite records one rendered view of a model. Its dimensions are
// the cropped sprite's, which can be smaller than the model canvas.
type AngleSprite struct {
	Angle            int        `json:"angle"`
	AngleName        string     `json:"angleName"`
	File             string     `json:"file"`
	Footprint        Footprint  `json:"footprint"`
	RenderDimensions Dimensions `json:"renderDimensions"`
}

// ModelMetadata indexes the sprites baked from one model. Its render
// dimensions are the full canvas shared by all four angles. Models whose
// renders all failed are absent from the document entirely.
type ModelMetadata struct {
	ModelName        string        `json:"modelName"`
	BaseFootprint    Footprint     `json:"baseFootprint"`
	WorldSize        WorldSize     `json:"worldSize"`
	RenderDimensions Dimensions    `json:"renderDimensions"`
	Angles           []AngleSprite `json:"angles"`
	RenderDate       time.Time     `json:"renderDate"`
}
