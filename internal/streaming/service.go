package streaming

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/eakyildiz/CourseLens/internal/material"
	"github.com/eakyildiz/CourseLens/pkg/types"
)

// Service streams material summaries as NDJSON
type Service struct {
	repo material.Repository
}

// NewService creates a new streaming service
func NewService(repo material.Repository) *Service {
	return &Service{repo: repo}
}

// Summary is a single item in the NDJSON stream: material metadata
// plus headline analysis fields when the analysis exists
type Summary struct {
	*types.Material
	Difficulty   types.Difficulty  `json:"difficulty,omitempty"`
	ContentType  types.ContentType `json:"content_type,omitempty"`
	ConceptCount int               `json:"concept_count"`
	AnalysisURL  string            `json:"analysis_url"`
}

// ListSummaries returns one summary per material, ordered by upload
// time so concurrent processing never changes the listing order
func (s *Service) ListSummaries(ctx context.Context) ([]Summary, error) {
	materials, err := s.repo.ListMaterials(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list materials: %w", err)
	}

	sort.Slice(materials, func(i, j int) bool {
		if materials[i].UploadedAt.Equal(materials[j].UploadedAt) {
			return materials[i].ID < materials[j].ID
		}
		return materials[i].UploadedAt.Before(materials[j].UploadedAt)
	})

	summaries := make([]Summary, 0, len(materials))
	for _, m := range materials {
		summary := Summary{
			Material:    m,
			AnalysisURL: fmt.Sprintf("/api/v1/materials/%s/analysis", m.ID),
		}

		if m.Status == types.StatusProcessed {
			if analysis, err := s.repo.GetAnalysis(ctx, m.ID); err == nil {
				summary.Difficulty = analysis.Difficulty
				summary.ContentType = analysis.ContentType
				summary.ConceptCount = len(analysis.Concepts)
			}
		}

		summaries = append(summaries, summary)
	}

	return summaries, nil
}

// EncodeNDJSON encodes summaries as NDJSON
func EncodeNDJSON(items []Summary) (string, error) {
	var result string
	for _, item := range items {
		jsonData, err := json.Marshal(item)
		if err != nil {
			return "", fmt.Errorf("failed to marshal item: %w", err)
		}
		result += string(jsonData) + "\n"
	}
	return result, nil
}
