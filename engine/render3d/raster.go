package render3d

import (
	"image"
	"math"
)

// Raster rasterizes meshes into an RGBA buffer with a float depth test.
// One instance owns its buffers and is reused across renders; it is not
// safe for concurrent Draw calls.
type Raster struct {
	Light   LightingSetup
	Texture *image.RGBA // optional; modulates lit vertex colors

	w, h  int
	img   *image.RGBA
	depth []float64
}

// NewRaster creates a rasterizer with a w x h canvas and the standard
// bake lighting.
func NewRaster(w, h int) *Raster {
	r := &Raster{Light: BakeLighting()}
	r.Reset(w, h)
	return r
}

// Reset resizes the canvas if needed and clears it to fully transparent
// with an empty depth buffer. Buffers are reused when the size matches.
func (r *Raster) Reset(w, h int) {
	if r.img == nil || r.w != w || r.h != h {
		r.w, r.h = w, h
		r.img = image.NewRGBA(image.Rect(0, 0, w, h))
		r.depth = make([]float64, w*h)
	} else {
		for i := range r.img.Pix {
			r.img.Pix[i] = 0
		}
	}
	for i := range r.depth {
		r.depth[i] = math.MaxFloat64
	}
}

// Size returns the canvas dimensions.
func (r *Raster) Size() (int, int) {
	return r.w, r.h
}

// Image returns the canvas. The pixels belong to the rasterizer and are
// overwritten by the next Reset.
func (r *Raster) Image() *image.RGBA {
	return r.img
}

// Draw projects the mesh through vp and rasterizes it with depth
// testing, Gouraud shading and optional nearest-neighbor texturing.
// Back faces (clockwise after projection) are culled.
func (r *Raster) Draw(mesh *Mesh, vp Mat4) {
	sw, sh := float64(r.w), float64(r.h)

	for _, tri := range mesh.Triangles {
		var sx, sy, sz [3]float64
		var lit [3]Color3

		for i := 0; i < 3; i++ {
			v := tri.V[i]
			clip := vp.TransformPoint(v.Pos)
			sx[i] = (clip.X*0.5 + 0.5) * sw
			sy[i] = (1 - (clip.Y*0.5 + 0.5)) * sh
			sz[i] = clip.Z
			lit[i] = r.Light.ComputeLighting(v.Normal, v.Color)
		}

		// Screen-space winding, Y-down. Front faces wind positive;
		// anything below half a pixel of area is dropped.
		ax, ay := sx[1]-sx[0], sy[1]-sy[0]
		bx, by := sx[2]-sx[0], sy[2]-sy[0]
		area := ax*by - ay*bx
		if area < 0.5 {
			continue
		}

		minX := clampInt(int(math.Floor(math.Min(sx[0], math.Min(sx[1], sx[2])))), 0, r.w-1)
		maxX := clampInt(int(math.Ceil(math.Max(sx[0], math.Max(sx[1], sx[2])))), 0, r.w-1)
		minY := clampInt(int(math.Floor(math.Min(sy[0], math.Min(sy[1], sy[2])))), 0, r.h-1)
		maxY := clampInt(int(math.Ceil(math.Max(sy[0], math.Max(sy[1], sy[2])))), 0, r.h-1)

		for py := minY; py <= maxY; py++ {
			cy := float64(py) + 0.5
			for px := minX; px <= maxX; px++ {
				cx := float64(px) + 0.5

				w0 := (sx[2]-sx[1])*(cy-sy[1]) - (sy[2]-sy[1])*(cx-sx[1])
				w1 := (sx[0]-sx[2])*(cy-sy[2]) - (sy[0]-sy[2])*(cx-sx[2])
				w2 := (sx[1]-sx[0])*(cy-sy[0]) - (sy[1]-sy[0])*(cx-sx[0])
				if w0 < 0 || w1 < 0 || w2 < 0 {
					continue
				}
				b0, b1, b2 := w0/area, w1/area, w2/area

				z := b0*sz[0] + b1*sz[1] + b2*sz[2]
				idx := py*r.w + px
				if z >= r.depth[idx] {
					continue
				}
				r.depth[idx] = z

				cr := b0*lit[0].R + b1*lit[1].R + b2*lit[2].R
				cg := b0*lit[0].G + b1*lit[1].G + b2*lit[2].G
				cb := b0*lit[0].B + b1*lit[1].B + b2*lit[2].B

				if r.Texture != nil {
					u := b0*tri.V[0].UV[0] + b1*tri.V[1].UV[0] + b2*tri.V[2].UV[0]
					v := b0*tri.V[0].UV[1] + b1*tri.V[1].UV[1] + b2*tri.V[2].UV[1]
					tr, tg, tb := sampleNearest(r.Texture, u, v)
					cr *= tr
					cg *= tg
					cb *= tb
				}

				o := r.img.PixOffset(px, py)
				r.img.Pix[o] = clamp255(cr)
				r.img.Pix[o+1] = clamp255(cg)
				r.img.Pix[o+2] = clamp255(cb)
				r.img.Pix[o+3] = 255
			}
		}
	}
}

// sampleNearest reads the texel under (u,v) with repeat wrapping.
func sampleNearest(tex *image.RGBA, u, v float64) (float64, float64, float64) {
	u -= math.Floor(u)
	v -= math.Floor(v)
	b := tex.Bounds()
	tx := b.Min.X + int(u*float64(b.Dx()))
	ty := b.Min.Y + int(v*float64(b.Dy()))
	if tx > b.Max.X-1 {
		tx = b.Max.X - 1
	}
	if ty > b.Max.Y-1 {
		ty = b.Max.Y - 1
	}
	o := tex.PixOffset(tx, ty)
	return float64(tex.Pix[o]) / 255, float64(tex.Pix[o+1]) / 255, float64(tex.Pix[o+2]) / 255
}

func clamp255(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
