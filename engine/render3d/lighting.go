package render3d

import "math"

// DirectionalLight represents a sun-like light
type DirectionalLight struct {
	Direction Vec3   // normalized direction TO the light (from surface)
	Color     Color3 // light color
	Intensity float64
}

// AmbientLight provides fill lighting
type AmbientLight struct {
	Color     Color3
	Intensity float64
}

// LightingSetup contains the scene lighting
type LightingSetup struct {
	Key     DirectionalLight
	Fill    DirectionalLight
	Ambient AmbientLight
}

// BakeLighting is the fixed three-light rig every model and angle is
// rendered under, so sprites from different sources shade identically.
func BakeLighting() LightingSetup {
	return LightingSetup{
		Key: DirectionalLight{
			Direction: V3(-0.4, 0.85, -0.35).Normalize(),
			Color:     Color3{1.0, 0.98, 0.92},
			Intensity: 1.0,
		},
		Fill: DirectionalLight{
			Direction: V3(0.5, 0.4, 0.6).Normalize(),
			Color:     Color3{0.7, 0.8, 1.0},
			Intensity: 0.4,
		},
		Ambient: AmbientLight{
			Color:     Color3{0.78, 0.8, 0.85},
			Intensity: 0.55,
		},
	}
}

// ComputeLighting calculates the lit color for a surface: ambient plus
// clamped Lambert diffuse from the key and fill lights.
func (ls *LightingSetup) ComputeLighting(normal Vec3, baseColor Color3) Color3 {
	ambient := baseColor.Mul(ls.Ambient.Color).Scale(ls.Ambient.Intensity)

	ndotk := math.Max(0, normal.Dot(ls.Key.Direction))
	diffuse := baseColor.Mul(ls.Key.Color).Scale(ndotk * ls.Key.Intensity)

	result := ambient.Add(diffuse)

	ndotf := math.Max(0, normal.Dot(ls.Fill.Direction))
	fill := baseColor.Mul(ls.Fill.Color).Scale(ndotf * ls.Fill.Intensity)
	result = result.Add(fill)

	result.R = math.Min(result.R, 1.0)
	result.G = math.Min(result.G, 1.0)
	result.B = math.Min(result.B, 1.0)
	return result
}
