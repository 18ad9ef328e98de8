// Package render3d is a small software 3D core: vector math, triangle
// meshes, a fixed dimetric camera rig and a CPU rasterizer. It backs the
// offline sprite baking pipeline, so nothing here touches the GPU.
package render3d

import "math"

// Vertex carries position, shading normal, texture coordinate and base
// color. UV follows image convention: (0,0) is the texture's top left.
type Vertex struct {
	Pos    Vec3
	Normal Vec3
	UV     [2]float64
	Color  Color3
}

// Triangle is three vertices in front-face winding order.
type Triangle struct {
	V [3]Vertex
}

// Mesh is a bag of triangles.
type Mesh struct {
	Triangles []Triangle
}

func NewMesh() *Mesh { return &Mesh{} }

func (m *Mesh) AddTriangle(v0, v1, v2 Vertex) {
	m.Triangles = append(m.Triangles, Triangle{V: [3]Vertex{v0, v1, v2}})
}

func (m *Mesh) AddQuad(v0, v1, v2, v3 Vertex) {
	m.AddTriangle(v0, v1, v2)
	m.AddTriangle(v0, v2, v3)
}

func (m *Mesh) Append(other *Mesh) {
	m.Triangles = append(m.Triangles, other.Triangles...)
}

// Transform returns a new mesh with positions run through mat and
// normals through its linear part, renormalized.
func (m *Mesh) Transform(mat Mat4) *Mesh {
	out := &Mesh{Triangles: make([]Triangle, len(m.Triangles))}
	for i, tri := range m.Triangles {
		for j := 0; j < 3; j++ {
			out.Triangles[i].V[j] = tri.V[j]
			out.Triangles[i].V[j].Pos = mat.TransformPoint(tri.V[j].Pos)
			out.Triangles[i].V[j].Normal = mat.TransformDir(tri.V[j].Normal).Normalize()
		}
	}
	return out
}

// SetColor paints every vertex with one base color.
func (m *Mesh) SetColor(c Color3) {
	for i := range m.Triangles {
		for j := 0; j < 3; j++ {
			m.Triangles[i].V[j].Color = c
		}
	}
}

// Bounds returns the axis-aligned bounding box over all vertices. An
// empty mesh yields a zero box.
func (m *Mesh) Bounds() (min, max Vec3) {
	if len(m.Triangles) == 0 {
		return Vec3{}, Vec3{}
	}
	min = Vec3{math.MaxFloat64, math.MaxFloat64, math.MaxFloat64}
	max = Vec3{-math.MaxFloat64, -math.MaxFloat64, -math.MaxFloat64}
	for _, tri := range m.Triangles {
		for j := 0; j < 3; j++ {
			p := tri.V[j].Pos
			min.X = math.Min(min.X, p.X)
			min.Y = math.Min(min.Y, p.Y)
			min.Z = math.Min(min.Z, p.Z)
			max.X = math.Max(max.X, p.X)
			max.Y = math.Max(max.Y, p.Y)
			max.Z = math.Max(max.Z, p.Z)
		}
	}
	return min, max
}

// MakeBox builds a w x h x d box centered at the origin. Used for test
// fixtures and placeholder art while real models are still being baked.
func MakeBox(w, h, d float64, c Color3) *Mesh {
	m := NewMesh()
	hw, hh, hd := w/2, h/2, d/2

	v := [8]Vec3{
		{-hw, -hh, -hd}, {hw, -hh, -hd}, {hw, hh, -hd}, {-hw, hh, -hd},
		{-hw, -hh, hd}, {hw, -hh, hd}, {hw, hh, hd}, {-hw, hh, hd},
	}

	faces := [][4]int{
		{0, 1, 2, 3}, // front
		{5, 4, 7, 6}, // back
		{4, 0, 3, 7}, // left
		{1, 5, 6, 2}, // right
		{3, 2, 6, 7}, // top
		{4, 5, 1, 0}, // bottom
	}
	normals := []Vec3{
		{0, 0, -1}, {0, 0, 1}, {-1, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, -1, 0},
	}

	for fi, f := range faces {
		n := normals[fi]
		v0 := Vertex{Pos: v[f[0]], Normal: n, Color: c}
		v1 := Vertex{Pos: v[f[1]], Normal: n, Color: c}
		v2 := Vertex{Pos: v[f[2]], Normal: n, Color: c}
		v3 := Vertex{Pos: v[f[3]], Normal: n, Color: c}
		m.AddQuad(v0, v1, v2, v3)
	}
	return m
}
