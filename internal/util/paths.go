package util

import (
	"fmt"
	"path/filepath"
)

// MetadataPath returns the storage path for a material's metadata
func MetadataPath(materialID string) string {
	return filepath.Join("materials", materialID, "metadata.json")
}

// RawFilePath returns the storage path for a material's raw upload
func RawFilePath(materialID, format string) string {
	return filepath.Join("materials", materialID, fmt.Sprintf("raw.%s", format))
}

// AnalysisPath returns the storage path for a material's analysis record
func AnalysisPath(materialID string) string {
	return filepath.Join("materials", materialID, "analysis.json")
}
