package bake

import (
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/wrenware/isoworld/engine/render3d"
)

// superSample is the render oversampling factor. Sprites are drawn at
// twice the target size and downscaled with Catmull-Rom.
const superSample = 2

// View is the render framing for one footprint: the final canvas size
// in pixels and the orthographic half-extents in world units.
type View struct {
	W, H         int
	HalfW, HalfH float64
}

// FrameView sizes the canvas for a footprint. The width is an exact
// multiple of TileWidthPx so sprites tile seamlessly in the game; the
// height gets a floor of MinCanvasHeight for tall thin models. The
// half-extents follow from footprint.x / width world-units-per-pixel,
// which puts one footprint tile on exactly TileWidthPx pixels.
func FrameView(fp Footprint) View {
	w := fp.X * TileWidthPx
	h := fp.Y * TileHeightPx
	if h < MinCanvasHeight {
		h = MinCanvasHeight
	}
	upp := float64(fp.X) / float64(w)
	return View{
		W:     w,
		H:     h,
		HalfW: float64(w) / 2 * upp,
		HalfH: float64(h) / 2 * upp,
	}
}

// RenderAngle draws the model at one compass angle into the raster and
// returns the cropped sprite. The raster is resized to the
// supersampled canvas; the result is a fresh image, safe to keep after
// the raster is reused.
func RenderAngle(r *render3d.Raster, m *render3d.Mesh, tex *image.RGBA, pl Placement, angleDeg int) *image.RGBA {
	view := FrameView(pl.Footprint)
	r.Reset(view.W*superSample, view.H*superSample)
	r.Texture = tex
	r.Draw(m.Transform(pl.Transform(angleDeg)), render3d.ViewProjection(view.HalfW, view.HalfH))

	return CropAlpha(downscale(r.Image(), view.W, view.H), CropThreshold, CropPad)
}

func downscale(src *image.RGBA, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}
