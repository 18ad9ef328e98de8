package bake

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/wrenware/isoworld/engine/glb"
	"github.com/wrenware/isoworld/engine/render3d"
)

// Notifier is pinged once per model that produced at least one sprite.
// The preview server implements it; nil disables notifications.
type Notifier interface {
	ModelBaked(name string)
	Close() error
}

// Pipeline bakes GLB models into isometric sprites. It owns a single
// raster surface, so renders are strictly sequential. Close releases
// the surface and shuts the notifier down; skipping it leaves the
// notifier's listener open.
type Pipeline struct {
	raster *render3d.Raster
	notify Notifier
	log    *log.Logger
}

// New creates a pipeline. notify and logger may be nil.
func New(notify Notifier, logger *log.Logger) *Pipeline {
	if logger == nil {
		logger = log.Default()
	}
	return &Pipeline{
		raster: render3d.NewRaster(TileWidthPx*superSample, MinCanvasHeight*superSample),
		notify: notify,
		log:    logger,
	}
}

// Close releases the render surface and stops the notifier. The
// pipeline renders nothing after Close.
func (p *Pipeline) Close() error {
	if p.raster == nil {
		return nil
	}
	p.raster = nil
	if p.notify != nil {
		return p.notify.Close()
	}
	return nil
}

// AngleResult is the outcome of one angle render.
type AngleResult struct {
	Angle int
	File  string
	Size  Dimensions
	Err   error
}

// ModelResult collects the outcomes for one model. Err is set when the
// model could not be loaded at all; otherwise the angle results tell
// which sprites were written.
type ModelResult struct {
	Name   string
	Meta   ModelMetadata
	Angles []AngleResult
	Err    error
}

// Baked reports whether at least one sprite was written.
func (r ModelResult) Baked() bool { return len(r.Meta.Angles) > 0 }

// RenderModel bakes all four angles of one model into outDir. A load
// failure fails the whole model; a single bad angle is logged and
// skipped so the other three still land.
func (p *Pipeline) RenderModel(path, outDir string) ModelResult {
	res := ModelResult{Name: modelName(path)}

	if p.raster == nil {
		p.log.Printf("bake: render of %s ignored: pipeline is closed", path)
		res.Err = errors.New("pipeline is closed")
		return res
	}

	model, err := glb.Load(path)
	if err != nil {
		res.Err = fmt.Errorf("loading %s: %w", path, err)
		return res
	}
	res.Name = model.Name

	bbMin, bbMax := model.Mesh.Bounds()
	pl := ComputeFootprint(bbMin, bbMax)
	view := FrameView(pl.Footprint)

	res.Meta = ModelMetadata{
		ModelName:        model.Name,
		BaseFootprint:    pl.Footprint,
		WorldSize:        pl.WorldSize,
		RenderDimensions: Dimensions{Width: view.W, Height: view.H},
		RenderDate:       time.Now().UTC(),
	}

	for _, angle := range Angles {
		ar := p.renderAngle(model, pl, angle, outDir)
		res.Angles = append(res.Angles, ar)
		if ar.Err != nil {
			p.log.Printf("bake: %s angle %d: %v", model.Name, angle, ar.Err)
			continue
		}
		res.Meta.Angles = append(res.Meta.Angles, AngleSprite{
			Angle:            angle,
			AngleName:        AngleName(angle),
			File:             ar.File,
			Footprint:        pl.Footprint,
			RenderDimensions: ar.Size,
		})
	}

	if len(res.Meta.Angles) > 0 && p.notify != nil {
		p.notify.ModelBaked(model.Name)
	}
	return res
}

func (p *Pipeline) renderAngle(model *glb.Model, pl Placement, angle int, outDir string) AngleResult {
	sprite := RenderAngle(p.raster, model.Mesh, model.Texture, pl, angle)
	file := SpriteFile(model.Name, angle)

	if err := writePNG(filepath.Join(outDir, file), sprite); err != nil {
		return AngleResult{Angle: angle, Err: err}
	}
	return AngleResult{
		Angle: angle,
		File:  file,
		Size:  Dimensions{Width: sprite.Bounds().Dx(), Height: sprite.Bounds().Dy()},
	}
}

func modelName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
