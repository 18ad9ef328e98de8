package bake

import (
	"math"
	"testing"

	"github.com/wrenware/isoworld/engine/render3d"
)

const eps = 1e-9

func vecNear(a, b render3d.Vec3) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps && math.Abs(a.Z-b.Z) < eps
}

func TestComputeFootprintRoundsAndScales(t *testing.T) {
	pl := ComputeFootprint(render3d.V3(0, 0, 0), render3d.V3(2.4, 1.1, 3.6))

	if pl.Footprint != (Footprint{X: 2, Y: 4}) {
		t.Fatalf("footprint = %+v, want {2 4}", pl.Footprint)
	}
	// min(2/2.4, 4/3.6) picks the x axis.
	if want := 2.0 / 2.4; math.Abs(pl.Scale-want) > eps {
		t.Errorf("scale = %v, want %v", pl.Scale, want)
	}
	if pl.WorldSize != (WorldSize{X: 2.4, Y: 3.6}) {
		t.Errorf("world size = %+v, want {2.4 3.6}", pl.WorldSize)
	}
	if want := 1.1 * 2.0 / 2.4; math.Abs(pl.Height-want) > eps {
		t.Errorf("height = %v, want %v", pl.Height, want)
	}
}

func TestComputeFootprintMinimumOneTile(t *testing.T) {
	pl := ComputeFootprint(render3d.V3(0, 0, 0), render3d.V3(0.2, 0.5, 0.3))

	if pl.Footprint != (Footprint{X: 1, Y: 1}) {
		t.Fatalf("footprint = %+v, want {1 1}", pl.Footprint)
	}
	if want := 1.0 / 0.3; math.Abs(pl.Scale-want) > eps {
		t.Errorf("scale = %v, want %v", pl.Scale, want)
	}
}

func TestComputeFootprintNeverOverflows(t *testing.T) {
	boxes := [][2]render3d.Vec3{
		{render3d.V3(0, 0, 0), render3d.V3(2.4, 1.1, 3.6)},
		{render3d.V3(-1, 0, -1), render3d.V3(1, 2, 1)},
		{render3d.V3(0, 0, 0), render3d.V3(0.4, 0.2, 5.7)},
		{render3d.V3(3, 1, 2), render3d.V3(4.5, 2, 9.49)},
	}
	for _, b := range boxes {
		pl := ComputeFootprint(b[0], b[1])
		sx := (b[1].X - b[0].X) * pl.Scale
		sz := (b[1].Z - b[0].Z) * pl.Scale
		if sx > float64(pl.Footprint.X)+eps || sz > float64(pl.Footprint.Y)+eps {
			t.Errorf("box %v scaled to %.3fx%.3f overflows footprint %+v", b, sx, sz, pl.Footprint)
		}
	}
}

func TestPlacementTransformCentersModel(t *testing.T) {
	pl := ComputeFootprint(render3d.V3(2, 1, 4), render3d.V3(4, 3, 8))
	m := pl.Transform(0)

	// The bottom center lands on the vertical axis, half the height
	// below the camera target.
	if got := m.TransformPoint(render3d.V3(3, 1, 6)); !vecNear(got, render3d.V3(0, -1, 0)) {
		t.Errorf("bottom center maps to %v, want (0,-1,0)", got)
	}
	if got := m.TransformPoint(render3d.V3(2, 1, 4)); !vecNear(got, render3d.V3(-1, -1, -2)) {
		t.Errorf("min corner maps to %v, want (-1,-1,-2)", got)
	}
	if got := m.TransformPoint(render3d.V3(4, 3, 8)); !vecNear(got, render3d.V3(1, 1, 2)) {
		t.Errorf("max corner maps to %v, want (1,1,2)", got)
	}
}

func TestPlacementTransformRotates(t *testing.T) {
	pl := ComputeFootprint(render3d.V3(-0.5, 0, -0.5), render3d.V3(0.5, 1, 0.5))

	// Angle 90 is a -90 degree yaw: +X goes to +Z.
	if got := pl.Transform(90).TransformPoint(render3d.V3(0.5, 0, 0)); !vecNear(got, render3d.V3(0, -0.5, 0.5)) {
		t.Errorf("angle 90 maps +X flank to %v, want (0,-0.5,0.5)", got)
	}
	if got := pl.Transform(180).TransformPoint(render3d.V3(0.5, 0, 0)); !vecNear(got, render3d.V3(-0.5, -0.5, 0)) {
		t.Errorf("angle 180 maps +X flank to %v, want (-0.5,-0.5,0)", got)
	}
}
