package bake

import (
	"os"
	"path/filepath"
	"time"
)

// NeedsRebuild reports whether a model's sprites must be regenerated:
// any of the four outputs is missing, older than the model file, or
// older than stamp (the bake tool's own build time). Callers assemble
// the work list from this; RunBatch processes exactly what it is
// given.
func NeedsRebuild(modelPath, outDir string, stamp time.Time) bool {
	src, err := os.Stat(modelPath)
	if err != nil {
		return true
	}

	name := modelName(modelPath)
	for _, angle := range Angles {
		info, err := os.Stat(filepath.Join(outDir, SpriteFile(name, angle)))
		if err != nil {
			return true
		}
		if info.ModTime().Before(src.ModTime()) || info.ModTime().Before(stamp) {
			return true
		}
	}
	return false
}
