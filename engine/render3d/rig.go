package render3d

import "math"

// The fixed camera rig: orthographic, 30 degrees above the horizon at a
// 45 degree azimuth, looking at the origin. Classic dimetric game angle.
const (
	CameraElevation = 30 * math.Pi / 180
	CameraAzimuth   = 45 * math.Pi / 180

	cameraDistance = 100.0
	cameraNear     = 0.1
	cameraFar      = 500.0
)

// ViewProjection returns the combined view-projection matrix for an
// orthographic window of the given half-extents in world units.
func ViewProjection(halfW, halfH float64) Mat4 {
	eye := V3(
		cameraDistance*math.Sin(CameraAzimuth)*math.Cos(CameraElevation),
		cameraDistance*math.Sin(CameraElevation),
		cameraDistance*math.Cos(CameraAzimuth)*math.Cos(CameraElevation),
	)
	view := Mat4LookAt(eye, V3(0, 0, 0), V3(0, 1, 0))
	proj := Mat4Ortho(-halfW, halfW, -halfH, halfH, cameraNear, cameraFar)
	return proj.Mul(view)
}
