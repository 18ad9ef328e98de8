package bake

import (
	"image"
	"image/draw"
)

// Crop defaults: the alpha threshold tolerates anti-aliased fringes
// and the pad keeps soft edges from being clipped.
const (
	CropThreshold = 8
	CropPad       = 4
)

// CropAlpha cuts the image down to the bounding box of pixels whose
// alpha exceeds threshold, grown by pad and clamped to the image
// bounds. A fully transparent image is returned unchanged.
func CropAlpha(img *image.RGBA, threshold uint8, pad int) *image.RGBA {
	b := img.Bounds()
	found := false
	var minX, minY, maxX, maxY int

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.Pix[img.PixOffset(x, y)+3] <= threshold {
				continue
			}
			if !found {
				minX, maxX, minY, maxY = x, x, y, y
				found = true
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			maxY = y
		}
	}
	if !found {
		return img
	}

	r := image.Rect(minX-pad, minY-pad, maxX+1+pad, maxY+1+pad).Intersect(b)
	out := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(out, out.Bounds(), img, r.Min, draw.Src)
	return out
}
