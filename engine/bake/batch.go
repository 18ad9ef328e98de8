package bake

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// BatchResult summarizes one bake run.
type BatchResult struct {
	Models   []ModelResult
	Metadata map[string]ModelMetadata
	Failed   int // models that produced no sprites at all
}

// RunBatch bakes the given models sequentially into outDir and writes
// the consolidated metadata document. New entries merge over whatever
// index is already there, so callers may pass only the stale subset of
// their models. Per-model failures are recorded and skipped, and a
// model with zero successful angles gets no metadata entry; only setup
// problems abort the run. The caller decides which models need baking,
// typically via NeedsRebuild.
func (p *Pipeline) RunBatch(paths []string, outDir string) (BatchResult, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return BatchResult{}, fmt.Errorf("creating output dir: %w", err)
	}

	res := BatchResult{Metadata: make(map[string]ModelMetadata)}
	for _, path := range paths {
		mr := p.RenderModel(path, outDir)
		res.Models = append(res.Models, mr)
		if mr.Err != nil || !mr.Baked() {
			res.Failed++
			continue
		}
		res.Metadata[mr.Name] = mr.Meta
	}

	metaPath := filepath.Join(outDir, MetadataFile)
	index, err := ReadMetadata(metaPath)
	if err != nil {
		index = make(map[string]ModelMetadata)
	}
	for name, meta := range res.Metadata {
		index[name] = meta
	}
	if err := WriteMetadata(metaPath, index); err != nil {
		return res, err
	}
	return res, nil
}

// ReadMetadata loads a model index written by WriteMetadata.
func ReadMetadata(path string) (map[string]ModelMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	models := make(map[string]ModelMetadata)
	if err := json.Unmarshal(data, &models); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return models, nil
}

// WriteMetadata writes the model index as indented JSON.
func WriteMetadata(path string, models map[string]ModelMetadata) error {
	data, err := json.MarshalIndent(models, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
