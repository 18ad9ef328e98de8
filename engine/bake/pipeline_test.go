package bake

import (
	"encoding/json"
	"fmt"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// writeQuadGLB writes a model holding a flat ground quad spanning
// sx by sz world units, wound to face up.
func writeQuadGLB(t *testing.T, path string, sx, sz float64) {
	t.Helper()
	doc := &gltf.Document{Asset: gltf.Asset{Version: "2.0"}}
	pos := modeler.WritePosition(doc, [][3]float32{
		{0, 0, 0}, {0, 0, float32(sz)}, {float32(sx), 0, float32(sz)}, {float32(sx), 0, 0},
	})
	norm := modeler.WriteNormal(doc, [][3]float32{
		{0, 1, 0}, {0, 1, 0}, {0, 1, 0}, {0, 1, 0},
	})
	idx := modeler.WriteIndices(doc, []uint16{0, 1, 2, 0, 2, 3})

	doc.Meshes = append(doc.Meshes, &gltf.Mesh{Primitives: []*gltf.Primitive{{
		Attributes: map[string]uint32{gltf.POSITION: pos, gltf.NORMAL: norm},
		Indices:    gltf.Index(idx),
		Mode:       gltf.PrimitiveTriangles,
	}}})
	doc.Nodes = append(doc.Nodes, &gltf.Node{Mesh: gltf.Index(0)})
	doc.Scenes = append(doc.Scenes, &gltf.Scene{Nodes: []uint32{0}})
	doc.Scene = gltf.Index(0)

	if err := gltf.SaveBinary(doc, path); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func spriteWidth(t *testing.T, path string) int {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening %s: %v", path, err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decoding %s: %v", path, err)
	}
	return img.Bounds().Dx()
}

type recordingNotifier struct {
	baked  []string
	closed bool
}

func (n *recordingNotifier) ModelBaked(name string) { n.baked = append(n.baked, name) }
func (n *recordingNotifier) Close() error           { n.closed = true; return nil }

func TestRenderModelBakesFourAngles(t *testing.T) {
	dir := t.TempDir()
	model := filepath.Join(dir, "barn.glb")
	writeQuadGLB(t, model, 3, 2)
	out := filepath.Join(dir, "out")
	if err := os.MkdirAll(out, 0o755); err != nil {
		t.Fatal(err)
	}

	p := New(nil, quietLogger())
	defer p.Close()

	res := p.RenderModel(model, out)
	if res.Err != nil {
		t.Fatalf("RenderModel: %v", res.Err)
	}
	if res.Meta.BaseFootprint != (Footprint{X: 3, Y: 2}) {
		t.Errorf("footprint = %+v, want {3 2}", res.Meta.BaseFootprint)
	}
	if res.Meta.WorldSize != (WorldSize{X: 3, Y: 2}) {
		t.Errorf("world size = %+v, want {3 2}", res.Meta.WorldSize)
	}
	if want := (Dimensions{Width: 3 * TileWidthPx, Height: MinCanvasHeight}); res.Meta.RenderDimensions != want {
		t.Errorf("render dimensions = %+v, want %+v", res.Meta.RenderDimensions, want)
	}
	if len(res.Meta.Angles) != 4 {
		t.Fatalf("%d angle entries, want 4", len(res.Meta.Angles))
	}

	wantNames := []string{"ne", "nw", "sw", "se"}
	for i, as := range res.Meta.Angles {
		if as.Angle != Angles[i] || as.AngleName != wantNames[i] {
			t.Errorf("entry %d = %d/%s, want %d/%s", i, as.Angle, as.AngleName, Angles[i], wantNames[i])
		}
		if want := fmt.Sprintf("barn_%s.png", wantNames[i]); as.File != want {
			t.Errorf("entry %d file = %s, want %s", i, as.File, want)
		}
		if w := spriteWidth(t, filepath.Join(out, as.File)); w != 3*TileWidthPx {
			t.Errorf("%s width = %d, want %d", as.File, w, 3*TileWidthPx)
		}
	}
}

func TestRenderModelIsolatesAngleFailure(t *testing.T) {
	dir := t.TempDir()
	model := filepath.Join(dir, "silo.glb")
	writeQuadGLB(t, model, 1, 1)
	out := filepath.Join(dir, "out")
	// A directory squatting on the ne output path fails that angle.
	if err := os.MkdirAll(filepath.Join(out, "silo_ne.png"), 0o755); err != nil {
		t.Fatal(err)
	}

	p := New(nil, quietLogger())
	defer p.Close()

	res := p.RenderModel(model, out)
	if res.Err != nil {
		t.Fatalf("RenderModel: %v", res.Err)
	}
	if res.Angles[0].Err == nil {
		t.Fatal("blocked ne angle reported success")
	}
	if len(res.Meta.Angles) != 3 {
		t.Fatalf("%d angle entries, want 3", len(res.Meta.Angles))
	}
	if res.Meta.Angles[0].AngleName != "nw" {
		t.Errorf("first surviving angle = %s, want nw", res.Meta.Angles[0].AngleName)
	}
}

func TestRunBatchContinuesPastFailures(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "house.glb")
	writeQuadGLB(t, good, 2, 2)
	bad := filepath.Join(dir, "broken.glb")
	if err := os.WriteFile(bad, []byte("junk"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out")

	p := New(nil, quietLogger())
	defer p.Close()

	res, err := p.RunBatch([]string{bad, good}, out)
	if err != nil {
		t.Fatalf("RunBatch: %v", err)
	}
	if len(res.Models) != 2 || res.Failed != 1 {
		t.Fatalf("models=%d failed=%d, want 2 and 1", len(res.Models), res.Failed)
	}
	if res.Models[0].Err == nil {
		t.Error("unparsable model reported success")
	}

	data, err := os.ReadFile(filepath.Join(out, MetadataFile))
	if err != nil {
		t.Fatalf("reading metadata: %v", err)
	}
	var doc map[string]ModelMetadata
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("parsing metadata: %v", err)
	}
	if len(doc) != 1 {
		t.Fatalf("metadata has %d entries, want 1", len(doc))
	}
	m, ok := doc["house"]
	if !ok {
		t.Fatal("house missing from metadata")
	}
	if m.ModelName != "house" || len(m.Angles) != 4 {
		t.Errorf("house entry = %s with %d angles, want house with 4", m.ModelName, len(m.Angles))
	}
	if m.RenderDate.IsZero() {
		t.Error("render date missing")
	}
}

func TestRunBatchSkipsModelWithNoSprites(t *testing.T) {
	dir := t.TempDir()
	model := filepath.Join(dir, "shed.glb")
	writeQuadGLB(t, model, 1, 1)
	out := filepath.Join(dir, "out")
	for _, angle := range Angles {
		if err := os.MkdirAll(filepath.Join(out, SpriteFile("shed", angle)), 0o755); err != nil {
			t.Fatal(err)
		}
	}

	n := &recordingNotifier{}
	p := New(n, quietLogger())
	defer p.Close()

	res, err := p.RunBatch([]string{model}, out)
	if err != nil {
		t.Fatalf("RunBatch: %v", err)
	}
	if res.Failed != 1 {
		t.Errorf("failed = %d, want 1", res.Failed)
	}
	if len(res.Metadata) != 0 {
		t.Errorf("metadata entries = %d, want none", len(res.Metadata))
	}
	if len(n.baked) != 0 {
		t.Errorf("notifier pinged for %v despite zero sprites", n.baked)
	}
}

func TestRunBatchMergesExistingMetadata(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "barn.glb")
	writeQuadGLB(t, first, 3, 2)
	second := filepath.Join(dir, "well.glb")
	writeQuadGLB(t, second, 1, 1)
	out := filepath.Join(dir, "out")

	p := New(nil, quietLogger())
	defer p.Close()

	if _, err := p.RunBatch([]string{first}, out); err != nil {
		t.Fatalf("first RunBatch: %v", err)
	}
	if _, err := p.RunBatch([]string{second}, out); err != nil {
		t.Fatalf("second RunBatch: %v", err)
	}

	index, err := ReadMetadata(filepath.Join(out, MetadataFile))
	if err != nil {
		t.Fatalf("ReadMetadata: %v", err)
	}
	if len(index) != 2 {
		t.Fatalf("index has %d entries, want 2", len(index))
	}
	for _, name := range []string{"barn", "well"} {
		if _, ok := index[name]; !ok {
			t.Errorf("%s missing from index", name)
		}
	}
}

func TestPipelineNotifiesAndCloses(t *testing.T) {
	dir := t.TempDir()
	model := filepath.Join(dir, "hut.glb")
	writeQuadGLB(t, model, 1, 1)
	out := filepath.Join(dir, "out")

	n := &recordingNotifier{}
	p := New(n, quietLogger())

	if _, err := p.RunBatch([]string{model}, out); err != nil {
		t.Fatalf("RunBatch: %v", err)
	}
	if len(n.baked) != 1 || n.baked[0] != "hut" {
		t.Fatalf("notified %v, want [hut]", n.baked)
	}

	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !n.closed {
		t.Error("notifier left open after Close")
	}
	if err := p.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}

	res := p.RenderModel(model, out)
	if res.Err == nil {
		t.Error("render after Close reported success")
	}
}
