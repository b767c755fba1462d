package export

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/eakyildiz/CourseLens/internal/material"
	"github.com/eakyildiz/CourseLens/pkg/types"
)

// Service packages analysis results into downloadable ZIP bundles
type Service struct {
	repo material.Repository
}

// NewService creates a new export service
func NewService(repo material.Repository) *Service {
	return &Service{repo: repo}
}

// Manifest describes the contents of an exported bundle
type Manifest struct {
	MaterialIDs []string  `json:"material_ids"`
	CreatedAt   time.Time `json:"created_at"`
	Version     string    `json:"version"`
	Compared    bool      `json:"compared"`
}

// BundleMaterial creates a ZIP archive with one material's metadata
// and analysis
func (s *Service) BundleMaterial(ctx context.Context, materialID string) (io.Reader, error) {
	m, err := s.repo.GetMaterial(ctx, materialID)
	if err != nil {
		return nil, fmt.Errorf("failed to get material: %w", err)
	}

	if m.Status != types.StatusProcessed {
		return nil, fmt.Errorf("material is not processed (status: %s)", m.Status)
	}

	analysis, err := s.repo.GetAnalysis(ctx, materialID)
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}

	buf := new(bytes.Buffer)
	zipWriter := zip.NewWriter(buf)

	manifest := Manifest{
		MaterialIDs: []string{materialID},
		CreatedAt:   time.Now(),
		Version:     "1",
	}
	if err := s.addJSONFile(zipWriter, "manifest.json", manifest); err != nil {
		return nil, fmt.Errorf("failed to add manifest: %w", err)
	}
	if err := s.addJSONFile(zipWriter, "metadata.json", m); err != nil {
		return nil, fmt.Errorf("failed to add metadata: %w", err)
	}
	if err := s.addJSONFile(zipWriter, "analysis.json", analysis); err != nil {
		return nil, fmt.Errorf("failed to add analysis: %w", err)
	}

	if err := zipWriter.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}

	return buf, nil
}

// BundleComparison creates a ZIP archive with several analyses plus
// their comparison result
func (s *Service) BundleComparison(ctx context.Context, materialIDs []string, comparison *types.ComparisonResult) (io.Reader, error) {
	buf := new(bytes.Buffer)
	zipWriter := zip.NewWriter(buf)

	manifest := Manifest{
		MaterialIDs: materialIDs,
		CreatedAt:   time.Now(),
		Version:     "1",
		Compared:    true,
	}
	if err := s.addJSONFile(zipWriter, "manifest.json", manifest); err != nil {
		return nil, fmt.Errorf("failed to add manifest: %w", err)
	}

	for _, id := range materialIDs {
		analysis, err := s.repo.GetAnalysis(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to get analysis %s: %w", id, err)
		}
		path := fmt.Sprintf("analyses/%s.json", id)
		if err := s.addJSONFile(zipWriter, path, analysis); err != nil {
			return nil, fmt.Errorf("failed to add analysis %s: %w", id, err)
		}
	}

	if err := s.addJSONFile(zipWriter, "comparison.json", comparison); err != nil {
		return nil, fmt.Errorf("failed to add comparison: %w", err)
	}

	if err := zipWriter.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}

	return buf, nil
}

// addJSONFile writes a JSON-encoded entry into the archive
func (s *Service) addJSONFile(zipWriter *zip.Writer, path string, data interface{}) error {
	writer, err := zipWriter.Create(path)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
