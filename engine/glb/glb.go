// Package glb loads binary glTF models into software meshes for sprite
// baking. Source materials are not honored: every model is normalized to
// one flat-lit look, textured white when a colormap ships next to the
// model and neutral gray otherwise.
package glb

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/wrenware/isoworld/engine/render3d"
)

// Base colors after material normalization.
var (
	baseTextured = render3d.Color3{R: 1, G: 1, B: 1}
	baseFlat     = render3d.Color3{R: 0.74, G: 0.74, B: 0.74}
)

// colormapRel is the sibling-directory convention for a model's texture.
var colormapRel = filepath.Join("Textures", "colormap.png")

// Model is a loaded, material-normalized GLB model.
type Model struct {
	Name    string
	Mesh    *render3d.Mesh
	Texture *image.RGBA // nil for the untextured gray look
}

// Load reads a .glb file, flattens its default scene into one triangle
// mesh in world space and applies material normalization. A colormap at
// Textures/colormap.png next to the model is picked up automatically;
// its absence is the normal untextured path, while an unreadable one is
// an error.
func Load(path string) (*Model, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}

	mesh := render3d.NewMesh()
	for _, root := range sceneRoots(doc) {
		if err := flattenNode(doc, root, render3d.Mat4Identity(), mesh); err != nil {
			return nil, fmt.Errorf("flattening %s: %w", filepath.Base(path), err)
		}
	}
	if len(mesh.Triangles) == 0 {
		return nil, fmt.Errorf("model %s contains no triangles", filepath.Base(path))
	}

	tex, err := loadColormap(path)
	if err != nil {
		return nil, err
	}
	if tex != nil {
		mesh.SetColor(baseTextured)
	} else {
		mesh.SetColor(baseFlat)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return &Model{Name: name, Mesh: mesh, Texture: tex}, nil
}

// sceneRoots returns the root node indices of the default scene, or of
// the first scene, or every unparented node for documents without one.
func sceneRoots(doc *gltf.Document) []uint32 {
	if doc.Scene != nil && int(*doc.Scene) < len(doc.Scenes) {
		return doc.Scenes[*doc.Scene].Nodes
	}
	if len(doc.Scenes) > 0 {
		return doc.Scenes[0].Nodes
	}
	child := make(map[uint32]bool)
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			child[c] = true
		}
	}
	var roots []uint32
	for i := range doc.Nodes {
		if !child[uint32(i)] {
			roots = append(roots, uint32(i))
		}
	}
	return roots
}

func flattenNode(doc *gltf.Document, idx uint32, parent render3d.Mat4, out *render3d.Mesh) error {
	if int(idx) >= len(doc.Nodes) {
		return fmt.Errorf("node index %d out of range", idx)
	}
	n := doc.Nodes[idx]
	world := parent.Mul(nodeTransform(n))

	if n.Mesh != nil {
		if int(*n.Mesh) >= len(doc.Meshes) {
			return fmt.Errorf("mesh index %d out of range", *n.Mesh)
		}
		if err := appendMesh(doc, doc.Meshes[*n.Mesh], world, out); err != nil {
			return err
		}
	}
	for _, c := range n.Children {
		if err := flattenNode(doc, c, world, out); err != nil {
			return err
		}
	}
	return nil
}

var identityMatrix = [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

// nodeTransform composes a node's local transform. A matrix wins over
// TRS; zero-valued fields are treated as unset either way.
func nodeTransform(n *gltf.Node) render3d.Mat4 {
	if n.Matrix != identityMatrix && n.Matrix != ([16]float32{}) {
		var m render3d.Mat4
		for i, v := range n.Matrix {
			m[i] = float64(v)
		}
		return m
	}

	t := n.Translation
	m := render3d.Mat4Translate(float64(t[0]), float64(t[1]), float64(t[2]))
	if r := n.Rotation; r != ([4]float32{}) && r != ([4]float32{0, 0, 0, 1}) {
		m = m.Mul(render3d.Mat4FromQuat(float64(r[0]), float64(r[1]), float64(r[2]), float64(r[3])))
	}
	if s := n.Scale; s != ([3]float32{}) && s != ([3]float32{1, 1, 1}) {
		m = m.Mul(render3d.Mat4Scale(float64(s[0]), float64(s[1]), float64(s[2])))
	}
	return m
}

func appendMesh(doc *gltf.Document, m *gltf.Mesh, world render3d.Mat4, out *render3d.Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return fmt.Errorf("reading positions: %w", err)
		}

		var normals [][3]float32
		if ni, ok := prim.Attributes[gltf.NORMAL]; ok {
			normals, err = modeler.ReadNormal(doc, doc.Accessors[ni], nil)
			if err != nil {
				return fmt.Errorf("reading normals: %w", err)
			}
		}

		var uvs [][2]float32
		if ti, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
			uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[ti], nil)
			if err != nil {
				return fmt.Errorf("reading texture coords: %w", err)
			}
		}

		var indices []uint32
		if prim.Indices != nil {
			indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
			if err != nil {
				return fmt.Errorf("reading indices: %w", err)
			}
		} else {
			indices = make([]uint32, len(positions))
			for i := range indices {
				indices[i] = uint32(i)
			}
		}

		for i := 0; i+2 < len(indices); i += 3 {
			var verts [3]render3d.Vertex
			for j := 0; j < 3; j++ {
				vi := indices[i+j]
				if int(vi) >= len(positions) {
					return fmt.Errorf("index %d out of range for %d positions", vi, len(positions))
				}
				p := positions[vi]
				verts[j].Pos = world.TransformPoint(render3d.V3(float64(p[0]), float64(p[1]), float64(p[2])))
				if int(vi) < len(normals) {
					n := normals[vi]
					verts[j].Normal = world.TransformDir(render3d.V3(float64(n[0]), float64(n[1]), float64(n[2]))).Normalize()
				}
				if int(vi) < len(uvs) {
					verts[j].UV = [2]float64{float64(uvs[vi][0]), float64(uvs[vi][1])}
				}
			}
			if len(normals) == 0 {
				n := faceNormal(verts[0].Pos, verts[1].Pos, verts[2].Pos)
				verts[0].Normal, verts[1].Normal, verts[2].Normal = n, n, n
			}
			out.AddTriangle(verts[0], verts[1], verts[2])
		}
	}
	return nil
}

// faceNormal is the flat normal for a triangle wound counter-clockwise.
func faceNormal(p0, p1, p2 render3d.Vec3) render3d.Vec3 {
	return p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
}

// loadColormap decodes the conventional sibling texture for a model.
func loadColormap(modelPath string) (*image.RGBA, error) {
	p := filepath.Join(filepath.Dir(modelPath), colormapRel)
	f, err := os.Open(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening colormap: %w", err)
	}
	defer f.Close()

	src, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding colormap %s: %w", p, err)
	}
	if rgba, ok := src.(*image.RGBA); ok {
		return rgba, nil
	}
	rgba := image.NewRGBA(src.Bounds())
	draw.Draw(rgba, rgba.Bounds(), src, src.Bounds().Min, draw.Src)
	return rgba, nil
}
