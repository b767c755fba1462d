package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/eakyildiz/CourseLens/internal/analysis"
	"github.com/eakyildiz/CourseLens/internal/batch"
	"github.com/eakyildiz/CourseLens/internal/export"
	"github.com/eakyildiz/CourseLens/internal/extract"
	"github.com/eakyildiz/CourseLens/internal/lifecycle"
	"github.com/eakyildiz/CourseLens/internal/material"
	"github.com/eakyildiz/CourseLens/internal/streaming"
	"github.com/eakyildiz/CourseLens/pkg/types"
)

// MaterialHandler handles material-related API endpoints
type MaterialHandler struct {
	repo         material.Repository
	factory      extract.Factory
	orchestrator *batch.Orchestrator
	lifecycle    *lifecycle.Manager
	exportSvc    *export.Service
	streamingSvc *streaming.Service
	maxFileBytes int64
}

// NewMaterialHandler creates a new material handler
func NewMaterialHandler(repo material.Repository, factory extract.Factory, orchestrator *batch.Orchestrator, lc *lifecycle.Manager, maxFileSizeMB int) *MaterialHandler {
	return &MaterialHandler{
		repo:         repo,
		factory:      factory,
		orchestrator: orchestrator,
		lifecycle:    lc,
		exportSvc:    export.NewService(repo),
		streamingSvc: streaming.NewService(repo),
		maxFileBytes: int64(maxFileSizeMB) << 20,
	}
}

// UploadMaterials handles POST /api/v1/materials. Multiple files may
// be uploaded together; each file is accepted or rejected on its own,
// and rejections never fail the batch.
func (h *MaterialHandler) UploadMaterials(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(h.maxFileBytes + (1 << 20)); err != nil {
		respondError(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	headers := r.MultipartForm.File["files"]
	headers = append(headers, r.MultipartForm.File["file"]...)
	if len(headers) == 0 {
		respondError(w, "No files provided", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	result := &types.UploadResult{
		Accepted: make([]*types.Material, 0, len(headers)),
		Rejected: make([]types.FileRejection, 0),
	}
	var items []batch.Item

	for _, header := range headers {
		format := strings.TrimPrefix(strings.ToLower(filepath.Ext(header.Filename)), ".")
		if format == "" {
			result.Rejected = append(result.Rejected, types.FileRejection{
				Filename: header.Filename,
				Reason:   "could not detect file format",
			})
			continue
		}

		if _, err := h.factory.GetExtractor(format); err != nil {
			result.Rejected = append(result.Rejected, types.FileRejection{
				Filename: header.Filename,
				Reason:   fmt.Sprintf("unsupported format: %s", format),
			})
			continue
		}

		if header.Size > h.maxFileBytes {
			result.Rejected = append(result.Rejected, types.FileRejection{
				Filename: header.Filename,
				Reason:   fmt.Sprintf("file too large: %d bytes (max %d)", header.Size, h.maxFileBytes),
			})
			continue
		}

		file, err := header.Open()
		if err != nil {
			result.Rejected = append(result.Rejected, types.FileRejection{
				Filename: header.Filename,
				Reason:   "failed to open uploaded file",
			})
			continue
		}
		data, err := io.ReadAll(io.LimitReader(file, h.maxFileBytes+1))
		file.Close()
		if err != nil || int64(len(data)) > h.maxFileBytes {
			result.Rejected = append(result.Rejected, types.FileRejection{
				Filename: header.Filename,
				Reason:   "failed to read uploaded file",
			})
			continue
		}

		m := &types.Material{
			ID:         uuid.NewString(),
			Filename:   header.Filename,
			Format:     format,
			SizeBytes:  int64(len(data)),
			UploadedAt: time.Now(),
			Status:     types.StatusUploaded,
		}

		if err := h.repo.SaveMaterial(ctx, m); err != nil {
			result.Rejected = append(result.Rejected, types.FileRejection{
				Filename: header.Filename,
				Reason:   "failed to save material metadata",
			})
			continue
		}
		if err := h.repo.SaveRawFile(ctx, m.ID, data, format); err != nil {
			result.Rejected = append(result.Rejected, types.FileRejection{
				Filename: header.Filename,
				Reason:   "failed to save raw file",
			})
			continue
		}

		h.lifecycle.Track(m.ID, format)
		result.Accepted = append(result.Accepted, m)
		items = append(items, batch.Item{Material: m, Data: data})
	}

	if len(items) > 0 {
		go func() {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("Panic in batch processing: %v", r)
				}
			}()
			h.orchestrator.ProcessBatch(context.Background(), items)
		}()
	}

	status := http.StatusCreated
	if len(result.Accepted) == 0 {
		status = http.StatusBadRequest
	}
	respondJSON(w, result, status)
}

// GetMaterial handles GET /api/v1/materials/:id
func (h *MaterialHandler) GetMaterial(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	materialID := extractIDFromPath(r.URL.Path, "/api/v1/materials/")
	if materialID == "" {
		respondError(w, "Material ID required", http.StatusBadRequest)
		return
	}

	m, err := h.repo.GetMaterial(r.Context(), materialID)
	if err != nil {
		respondError(w, "Material not found", http.StatusNotFound)
		return
	}

	respondJSON(w, m, http.StatusOK)
}

// ListMaterials handles GET /api/v1/materials
func (h *MaterialHandler) ListMaterials(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	summaries, err := h.streamingSvc.ListSummaries(r.Context())
	if err != nil {
		respondError(w, "Failed to list materials", http.StatusInternalServerError)
		return
	}

	respondJSON(w, summaries, http.StatusOK)
}

// StreamMaterials handles GET /api/v1/materials/stream
func (h *MaterialHandler) StreamMaterials(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	summaries, err := h.streamingSvc.ListSummaries(r.Context())
	if err != nil {
		respondError(w, "Failed to list materials", http.StatusInternalServerError)
		return
	}

	ndjson, err := streaming.EncodeNDJSON(summaries)
	if err != nil {
		respondError(w, "Failed to encode stream", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(ndjson))
}

// GetAnalysis handles GET /api/v1/materials/:id/analysis
func (h *MaterialHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	materialID := extractIDFromPath(r.URL.Path, "/api/v1/materials/")
	if materialID == "" {
		respondError(w, "Material ID required", http.StatusBadRequest)
		return
	}

	m, err := h.repo.GetMaterial(r.Context(), materialID)
	if err != nil {
		respondError(w, "Material not found", http.StatusNotFound)
		return
	}

	switch m.Status {
	case types.StatusProcessed:
	case types.StatusFailed:
		respondError(w, fmt.Sprintf("Analysis failed: %s", m.Error), http.StatusUnprocessableEntity)
		return
	default:
		respondError(w, fmt.Sprintf("Analysis not ready (status: %s)", m.Status), http.StatusConflict)
		return
	}

	result, err := h.repo.GetAnalysis(r.Context(), materialID)
	if err != nil {
		respondError(w, "Analysis not found", http.StatusNotFound)
		return
	}

	respondJSON(w, result, http.StatusOK)
}

// compareRequest is the body of POST /api/v1/materials/compare
type compareRequest struct {
	MaterialIDs []string `json:"material_ids"`
}

// CompareMaterials handles POST /api/v1/materials/compare
func (h *MaterialHandler) CompareMaterials(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req compareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	analyses := make([]*types.MaterialAnalysis, 0, len(req.MaterialIDs))
	resolved := make([]string, 0, len(req.MaterialIDs))
	for _, id := range req.MaterialIDs {
		a, err := h.repo.GetAnalysis(r.Context(), id)
		if err != nil {
			// Missing or unfinished analyses reduce the comparison
			// input; they do not fail the request
			log.Printf("Comparison skipping material %s: %v", id, err)
			continue
		}
		analyses = append(analyses, a)
		resolved = append(resolved, id)
	}

	comparison := analysis.Compare(analyses)

	if r.URL.Query().Get("format") == "zip" {
		bundle, err := h.exportSvc.BundleComparison(r.Context(), resolved, comparison)
		if err != nil {
			respondError(w, fmt.Sprintf("Failed to build bundle: %v", err), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/zip")
		w.Header().Set("Content-Disposition", "attachment; filename=comparison.zip")
		w.WriteHeader(http.StatusOK)
		io.Copy(w, bundle)
		return
	}

	respondJSON(w, comparison, http.StatusOK)
}

// DownloadBundle handles GET /api/v1/materials/:id/download
func (h *MaterialHandler) DownloadBundle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	materialID := extractIDFromPath(r.URL.Path, "/api/v1/materials/")
	if materialID == "" {
		respondError(w, "Material ID required", http.StatusBadRequest)
		return
	}

	bundle, err := h.exportSvc.BundleMaterial(r.Context(), materialID)
	if err != nil {
		respondError(w, fmt.Sprintf("Failed to build bundle: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=analysis-%s.zip", materialID))
	w.WriteHeader(http.StatusOK)
	io.Copy(w, bundle)
}

// DeleteMaterial handles DELETE /api/v1/materials/:id; removes the
// raw upload immediately
func (h *MaterialHandler) DeleteMaterial(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	materialID := extractIDFromPath(r.URL.Path, "/api/v1/materials/")
	if materialID == "" {
		respondError(w, "Material ID required", http.StatusBadRequest)
		return
	}

	if err := h.lifecycle.Delete(r.Context(), materialID); err != nil {
		respondError(w, "Failed to delete material", http.StatusInternalServerError)
		return
	}

	if m, err := h.repo.GetMaterial(r.Context(), materialID); err == nil {
		m.Status = types.StatusDeleted
		if err := h.repo.UpdateMaterial(r.Context(), m); err != nil {
			log.Printf("Failed to mark material %s deleted: %v", materialID, err)
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

// Helper functions

func extractIDFromPath(path, prefix string) string {
	if !strings.HasPrefix(path, prefix) {
		return ""
	}
	rest := strings.TrimPrefix(path, prefix)
	parts := strings.Split(rest, "/")
	if len(parts) > 0 {
		return parts[0]
	}
	return ""
}

func respondJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
