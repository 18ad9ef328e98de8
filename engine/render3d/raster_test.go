package render3d

import (
	"image"
	"testing"
)

// ambientOnly lights every surface at full base color regardless of
// normals, which makes pixel assertions exact.
func ambientOnly() LightingSetup {
	return LightingSetup{Ambient: AmbientLight{Color: Color3{1, 1, 1}, Intensity: 1}}
}

// ndcTriangle builds one front-facing triangle from NDC corner positions
// (clockwise in NDC, which is front-facing after the screen Y flip).
func ndcTriangle(z float64, c Color3, pts [3][2]float64) *Mesh {
	m := NewMesh()
	n := V3(0, 0, 1)
	m.AddTriangle(
		Vertex{Pos: V3(pts[0][0], pts[0][1], z), Normal: n, Color: c},
		Vertex{Pos: V3(pts[1][0], pts[1][1], z), Normal: n, Color: c},
		Vertex{Pos: V3(pts[2][0], pts[2][1], z), Normal: n, Color: c},
	)
	return m
}

var fullishTriangle = [3][2]float64{{-0.9, -0.9}, {0, 0.9}, {0.9, -0.9}}

func pixelAt(r *Raster, x, y int) (uint8, uint8, uint8, uint8) {
	o := r.Image().PixOffset(x, y)
	p := r.Image().Pix
	return p[o], p[o+1], p[o+2], p[o+3]
}

func TestRasterDrawsTriangle(t *testing.T) {
	r := NewRaster(64, 64)
	r.Light = ambientOnly()
	r.Draw(ndcTriangle(0, Color3{1, 0, 0}, fullishTriangle), Mat4Identity())

	cr, cg, cb, ca := pixelAt(r, 32, 32)
	if ca != 255 || cr != 255 || cg != 0 || cb != 0 {
		t.Errorf("center pixel = (%d,%d,%d,%d), want opaque red", cr, cg, cb, ca)
	}
	if _, _, _, a := pixelAt(r, 0, 0); a != 0 {
		t.Error("corner pixel not transparent")
	}
}

func TestRasterCullsBackFaces(t *testing.T) {
	r := NewRaster(64, 64)
	r.Light = ambientOnly()

	// Same triangle with reversed winding is a back face.
	rev := [3][2]float64{fullishTriangle[2], fullishTriangle[1], fullishTriangle[0]}
	r.Draw(ndcTriangle(0, Color3{1, 0, 0}, rev), Mat4Identity())

	if _, _, _, a := pixelAt(r, 32, 32); a != 0 {
		t.Error("back-facing triangle was drawn")
	}
}

func TestRasterDepthTest(t *testing.T) {
	near := ndcTriangle(-0.5, Color3{0, 0, 1}, fullishTriangle)
	far := ndcTriangle(0.5, Color3{1, 0, 0}, fullishTriangle)

	// Near geometry wins regardless of draw order.
	for name, order := range map[string][2]*Mesh{
		"far then near": {far, near},
		"near then far": {near, far},
	} {
		r := NewRaster(64, 64)
		r.Light = ambientOnly()
		r.Draw(order[0], Mat4Identity())
		r.Draw(order[1], Mat4Identity())

		cr, _, cb, _ := pixelAt(r, 32, 32)
		if cb != 255 || cr != 0 {
			t.Errorf("%s: center pixel = (%d,_,%d), want blue on top", name, cr, cb)
		}
	}
}

func TestRasterTextureModulates(t *testing.T) {
	// 2x1 texture: left texel red, right texel green.
	tex := image.NewRGBA(image.Rect(0, 0, 2, 1))
	tex.Pix[0], tex.Pix[3] = 255, 255
	tex.Pix[5], tex.Pix[7] = 255, 255

	r := NewRaster(32, 32)
	r.Light = ambientOnly()
	r.Texture = tex

	// Full-screen quad, white base, u sweeping 0 to 1 left to right.
	m := NewMesh()
	n := V3(0, 0, 1)
	white := Color3{1, 1, 1}
	m.AddQuad(
		Vertex{Pos: V3(-1, 1, 0), Normal: n, UV: [2]float64{0, 0}, Color: white},
		Vertex{Pos: V3(1, 1, 0), Normal: n, UV: [2]float64{1, 0}, Color: white},
		Vertex{Pos: V3(1, -1, 0), Normal: n, UV: [2]float64{1, 0}, Color: white},
		Vertex{Pos: V3(-1, -1, 0), Normal: n, UV: [2]float64{0, 0}, Color: white},
	)
	r.Draw(m, Mat4Identity())

	if cr, cg, _, _ := pixelAt(r, 8, 16); cr != 255 || cg != 0 {
		t.Errorf("left quarter = (%d,%d), want red texel", cr, cg)
	}
	if cr, cg, _, _ := pixelAt(r, 24, 16); cr != 0 || cg != 255 {
		t.Errorf("right quarter = (%d,%d), want green texel", cr, cg)
	}
}

func TestRasterResetClears(t *testing.T) {
	r := NewRaster(16, 16)
	r.Light = ambientOnly()
	r.Draw(ndcTriangle(0, Color3{1, 1, 1}, fullishTriangle), Mat4Identity())
	if _, _, _, a := pixelAt(r, 8, 8); a == 0 {
		t.Fatal("nothing drawn before reset")
	}

	r.Reset(16, 16)
	if _, _, _, a := pixelAt(r, 8, 8); a != 0 {
		t.Error("canvas not transparent after Reset")
	}

	// Depth buffer must be clear too: far geometry draws again.
	r.Draw(ndcTriangle(0.9, Color3{0, 1, 0}, fullishTriangle), Mat4Identity())
	if _, cg, _, _ := pixelAt(r, 8, 8); cg != 255 {
		t.Error("depth buffer kept stale values across Reset")
	}
}

func TestRasterBoxUnderBakeRig(t *testing.T) {
	r := NewRaster(64, 64)
	box := MakeBox(1, 1, 1, Color3{0.8, 0.8, 0.8})
	r.Draw(box, ViewProjection(1.5, 1.5))

	if _, _, _, a := pixelAt(r, 32, 32); a != 255 {
		t.Error("box center not rendered under the bake rig")
	}
	if _, _, _, a := pixelAt(r, 1, 1); a != 0 {
		t.Error("background not transparent under the bake rig")
	}
}
