package material

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/eakyildiz/CourseLens/internal/storage"
	"github.com/eakyildiz/CourseLens/internal/util"
	"github.com/eakyildiz/CourseLens/pkg/types"
)

// Repository handles material metadata, raw file and analysis persistence
type Repository interface {
	// SaveMaterial stores material metadata
	SaveMaterial(ctx context.Context, m *types.Material) error

	// GetMaterial retrieves material metadata by ID
	GetMaterial(ctx context.Context, materialID string) (*types.Material, error)

	// UpdateMaterial updates material metadata
	UpdateMaterial(ctx context.Context, m *types.Material) error

	// ListMaterials returns all materials
	ListMaterials(ctx context.Context) ([]*types.Material, error)

	// SaveRawFile stores the uploaded raw file
	SaveRawFile(ctx context.Context, materialID string, data []byte, format string) error

	// GetRawFile retrieves the uploaded raw file
	GetRawFile(ctx context.Context, materialID, format string) ([]byte, error)

	// DeleteRawFile removes the raw file; the operation is idempotent
	DeleteRawFile(ctx context.Context, materialID, format string) error

	// SaveAnalysis stores the analysis record
	SaveAnalysis(ctx context.Context, analysis *types.MaterialAnalysis) error

	// GetAnalysis retrieves the analysis record for a material
	GetAnalysis(ctx context.Context, materialID string) (*types.MaterialAnalysis, error)
}

// StorageRepository implements Repository using a storage adapter
type StorageRepository struct {
	storage storage.Adapter
}

// NewRepository creates a new material repository
func NewRepository(storageAdapter storage.Adapter) Repository {
	return &StorageRepository{storage: storageAdapter}
}

// SaveMaterial stores material metadata
func (r *StorageRepository) SaveMaterial(ctx context.Context, m *types.Material) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal material: %w", err)
	}

	return r.storage.Put(ctx, util.MetadataPath(m.ID), bytes.NewReader(data))
}

// GetMaterial retrieves material metadata by ID
func (r *StorageRepository) GetMaterial(ctx context.Context, materialID string) (*types.Material, error) {
	reader, err := r.storage.Get(ctx, util.MetadataPath(materialID))
	if err != nil {
		return nil, fmt.Errorf("failed to get material metadata: %w", err)
	}
	defer reader.Close()

	var m types.Material
	if err := json.NewDecoder(reader).Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to decode material metadata: %w", err)
	}

	return &m, nil
}

// UpdateMaterial updates material metadata
func (r *StorageRepository) UpdateMaterial(ctx context.Context, m *types.Material) error {
	return r.SaveMaterial(ctx, m)
}

// ListMaterials returns all materials
func (r *StorageRepository) ListMaterials(ctx context.Context) ([]*types.Material, error) {
	paths, err := r.storage.List(ctx, "materials/")
	if err != nil {
		return nil, fmt.Errorf("failed to list materials: %w", err)
	}

	materials := make([]*types.Material, 0)
	for _, path := range paths {
		if filepath.Base(path) != "metadata.json" {
			continue
		}

		reader, err := r.storage.Get(ctx, path)
		if err != nil {
			continue // Skip materials that can't be read
		}

		var m types.Material
		err = json.NewDecoder(reader).Decode(&m)
		reader.Close()
		if err != nil {
			continue
		}

		materials = append(materials, &m)
	}

	return materials, nil
}

// SaveRawFile stores the uploaded raw file
func (r *StorageRepository) SaveRawFile(ctx context.Context, materialID string, data []byte, format string) error {
	return r.storage.Put(ctx, util.RawFilePath(materialID, format), bytes.NewReader(data))
}

// GetRawFile retrieves the uploaded raw file
func (r *StorageRepository) GetRawFile(ctx context.Context, materialID, format string) ([]byte, error) {
	reader, err := r.storage.Get(ctx, util.RawFilePath(materialID, format))
	if err != nil {
		return nil, fmt.Errorf("raw file not found: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read raw file: %w", err)
	}

	return data, nil
}

// DeleteRawFile removes the raw file. Raw uploads are deleted once
// analysis completes; deleting an already-deleted file is a no-op.
func (r *StorageRepository) DeleteRawFile(ctx context.Context, materialID, format string) error {
	return r.storage.Delete(ctx, util.RawFilePath(materialID, format))
}

// SaveAnalysis stores the analysis record
func (r *StorageRepository) SaveAnalysis(ctx context.Context, analysis *types.MaterialAnalysis) error {
	data, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}

	return r.storage.Put(ctx, util.AnalysisPath(analysis.MaterialID), bytes.NewReader(data))
}

// GetAnalysis retrieves the analysis record for a material
func (r *StorageRepository) GetAnalysis(ctx context.Context, materialID string) (*types.MaterialAnalysis, error) {
	reader, err := r.storage.Get(ctx, util.AnalysisPath(materialID))
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}
	defer reader.Close()

	var analysis types.MaterialAnalysis
	if err := json.NewDecoder(reader).Decode(&analysis); err != nil {
		return nil, fmt.Errorf("failed to decode analysis: %w", err)
	}

	return &analysis, nil
}
