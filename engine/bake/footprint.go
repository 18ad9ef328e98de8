package bake

import (
	"math"

	"github.com/wrenware/isoworld/engine/render3d"
)

// Placement fixes how a model sits inside its tile footprint. It is
// computed once from the unrotated bounds and shared by all four angle
// renders, so the footprint never changes with the view direction.
type Placement struct {
	Footprint Footprint
	WorldSize WorldSize
	Scale     float64
	Height    float64 // model height after grounding and scaling

	normalize render3d.Mat4
}

// ComputeFootprint derives the placement from an axis-aligned bounding
// box. The footprint rounds the horizontal extents to whole tiles with
// a 1x1 minimum, and the uniform scale is the more restrictive of the
// two axis ratios so the model never overflows its tiles on either
// axis. Centering and grounding use the pre-scale geometry.
func ComputeFootprint(min, max render3d.Vec3) Placement {
	sizeX := max.X - min.X
	sizeY := max.Y - min.Y
	sizeZ := max.Z - min.Z

	fx := int(math.Round(sizeX))
	fz := int(math.Round(sizeZ))
	if fx < 1 {
		fx = 1
	}
	if fz < 1 {
		fz = 1
	}

	scale := 1.0
	switch {
	case sizeX > 1e-9 && sizeZ > 1e-9:
		scale = math.Min(float64(fx)/sizeX, float64(fz)/sizeZ)
	case sizeX > 1e-9:
		scale = float64(fx) / sizeX
	case sizeZ > 1e-9:
		scale = float64(fz) / sizeZ
	}

	center := render3d.Mat4Translate(-(min.X+max.X)/2, -min.Y, -(min.Z+max.Z)/2)

	return Placement{
		Footprint: Footprint{X: fx, Y: fz},
		WorldSize: WorldSize{X: sizeX, Y: sizeZ},
		Scale:     scale,
		Height:    sizeY * scale,
		normalize: render3d.Mat4Scale(scale, scale, scale).Mul(center),
	}
}

// Transform returns the full model transform for one render angle:
// normalization, a -angle yaw about the vertical axis, and a drop of
// half the model height so the camera target sits at its middle.
func (p Placement) Transform(angleDeg int) render3d.Mat4 {
	rot := render3d.Mat4RotateY(-float64(angleDeg) * math.Pi / 180)
	lift := render3d.Mat4Translate(0, -p.Height/2, 0)
	return lift.Mul(rot).Mul(p.normalize)
}
