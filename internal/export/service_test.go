package export

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/eakyildiz/CourseLens/internal/material"
	"github.com/eakyildiz/CourseLens/internal/storage"
	"github.com/eakyildiz/CourseLens/pkg/types"
)

func newTestService(t *testing.T) (*Service, material.Repository) {
	t.Helper()

	adapter, err := storage.NewLocalAdapter(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create storage adapter: %v", err)
	}
	t.Cleanup(func() { adapter.Close() })

	repo := material.NewRepository(adapter)
	return NewService(repo), repo
}

func readBundle(t *testing.T, r io.Reader) map[string][]byte {
	t.Helper()

	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("Failed to read bundle: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("Bundle is not a valid zip: %v", err)
	}

	files := make(map[string][]byte)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("Failed to open %s: %v", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("Failed to read %s: %v", f.Name, err)
		}
		files[f.Name] = content
	}
	return files
}

func TestBundleMaterial(t *testing.T) {
	service, repo := newTestService(t)
	ctx := context.Background()

	m := &types.Material{ID: "exp-1", Filename: "lecture.txt", Format: "txt", Status: types.StatusProcessed}
	repo.SaveMaterial(ctx, m)
	repo.SaveAnalysis(ctx, &types.MaterialAnalysis{
		MaterialID: "exp-1",
		Summary:    "A lecture summary.",
		Difficulty: types.DifficultyBeginner,
	})

	t.Run("Bundle contains manifest, metadata and analysis", func(t *testing.T) {
		bundle, err := service.BundleMaterial(ctx, "exp-1")
		if err != nil {
			t.Fatalf("BundleMaterial failed: %v", err)
		}

		files := readBundle(t, bundle)
		for _, name := range []string{"manifest.json", "metadata.json", "analysis.json"} {
			if _, ok := files[name]; !ok {
				t.Errorf("Bundle missing %s", name)
			}
		}

		var manifest Manifest
		if err := json.Unmarshal(files["manifest.json"], &manifest); err != nil {
			t.Fatalf("Invalid manifest: %v", err)
		}
		if len(manifest.MaterialIDs) != 1 || manifest.MaterialIDs[0] != "exp-1" {
			t.Errorf("Manifest IDs = %v", manifest.MaterialIDs)
		}
		if manifest.Compared {
			t.Error("Single-material bundle should not be marked compared")
		}

		var analysis types.MaterialAnalysis
		if err := json.Unmarshal(files["analysis.json"], &analysis); err != nil {
			t.Fatalf("Invalid analysis: %v", err)
		}
		if analysis.Summary != "A lecture summary." {
			t.Errorf("Summary = %q", analysis.Summary)
		}
	})

	t.Run("Unprocessed material rejected", func(t *testing.T) {
		pending := &types.Material{ID: "exp-2", Filename: "x.txt", Format: "txt", Status: types.StatusProcessing}
		repo.SaveMaterial(ctx, pending)

		if _, err := service.BundleMaterial(ctx, "exp-2"); err == nil {
			t.Error("Expected error for unprocessed material")
		}
	})

	t.Run("Missing material", func(t *testing.T) {
		if _, err := service.BundleMaterial(ctx, "missing"); err == nil {
			t.Error("Expected error for missing material")
		}
	})
}

func TestBundleComparison(t *testing.T) {
	service, repo := newTestService(t)
	ctx := context.Background()

	repo.SaveAnalysis(ctx, &types.MaterialAnalysis{MaterialID: "cmp-1", Summary: "First."})
	repo.SaveAnalysis(ctx, &types.MaterialAnalysis{MaterialID: "cmp-2", Summary: "Second."})

	comparison := &types.ComparisonResult{
		MaterialCount:  2,
		SharedConcepts: []string{"sorting"},
	}

	bundle, err := service.BundleComparison(ctx, []string{"cmp-1", "cmp-2"}, comparison)
	if err != nil {
		t.Fatalf("BundleComparison failed: %v", err)
	}

	files := readBundle(t, bundle)
	for _, name := range []string{"manifest.json", "analyses/cmp-1.json", "analyses/cmp-2.json", "comparison.json"} {
		if _, ok := files[name]; !ok {
			t.Errorf("Bundle missing %s", name)
		}
	}

	var manifest Manifest
	if err := json.Unmarshal(files["manifest.json"], &manifest); err != nil {
		t.Fatalf("Invalid manifest: %v", err)
	}
	if !manifest.Compared {
		t.Error("Comparison bundle should be marked compared")
	}
}
