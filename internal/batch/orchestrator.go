package batch

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/eakyildiz/CourseLens/internal/analysis"
	"github.com/eakyildiz/CourseLens/internal/extract"
	"github.com/eakyildiz/CourseLens/internal/lifecycle"
	"github.com/eakyildiz/CourseLens/internal/material"
	"github.com/eakyildiz/CourseLens/pkg/types"
)

// Item pairs a material with its raw upload bytes
type Item struct {
	Material *types.Material
	Data     []byte
}

// Orchestrator analyzes batches of uploaded materials. Documents are
// independent, so they run concurrently under a bounded worker count;
// results are keyed by material ID, so completion order never changes
// the stored output. A per-document timeout keeps pathological input
// from stalling the batch.
type Orchestrator struct {
	repo        material.Repository
	factory     extract.Factory
	analyzer    *analysis.Analyzer
	lifecycle   *lifecycle.Manager
	concurrency int
	timeout     time.Duration
	retention   time.Duration
}

// NewOrchestrator creates a batch orchestrator
func NewOrchestrator(repo material.Repository, factory extract.Factory, analyzer *analysis.Analyzer, lc *lifecycle.Manager, concurrency int, timeout, retention time.Duration) *Orchestrator {
	if concurrency <= 0 {
		concurrency = 4
	}
	return &Orchestrator{
		repo:        repo,
		factory:     factory,
		analyzer:    analyzer,
		lifecycle:   lc,
		concurrency: concurrency,
		timeout:     timeout,
		retention:   retention,
	}
}

// ProcessBatch analyzes every item. Per-document failures are
// recorded on the material and never abort the rest of the batch.
func (o *Orchestrator) ProcessBatch(ctx context.Context, items []Item) {
	semaphore := make(chan struct{}, o.concurrency)
	var wg sync.WaitGroup

	for _, item := range items {
		wg.Add(1)
		go func(it Item) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					log.Printf("Panic processing material %s: %v", it.Material.ID, r)
					o.markFailed(ctx, it.Material, fmt.Sprintf("processing panic: %v", r))
				}
			}()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if err := o.ProcessOne(ctx, it.Material, it.Data); err != nil {
				log.Printf("Failed to process material %s: %v", it.Material.ID, err)
			}
		}(item)
	}

	wg.Wait()
}

// ProcessOne extracts and analyzes one material, stores the analysis,
// and hands the raw upload to the lifecycle manager for deletion.
func (o *Orchestrator) ProcessOne(ctx context.Context, m *types.Material, data []byte) error {
	m.Status = types.StatusProcessing
	if err := o.repo.UpdateMaterial(ctx, m); err != nil {
		log.Printf("Failed to update material status: %v", err)
	}

	extractor, err := o.factory.GetExtractor(m.Format)
	if err != nil {
		o.markFailed(ctx, m, err.Error())
		return err
	}

	result, err := o.runWithTimeout(ctx, m, data, extractor)
	if err != nil {
		o.markFailed(ctx, m, err.Error())
		return err
	}

	result.MaterialID = m.ID
	if err := o.repo.SaveAnalysis(ctx, result); err != nil {
		o.markFailed(ctx, m, fmt.Sprintf("failed to store analysis: %v", err))
		return err
	}

	m.Status = types.StatusProcessed
	m.Error = ""
	if err := o.repo.UpdateMaterial(ctx, m); err != nil {
		log.Printf("Failed to update material status: %v", err)
	}

	// Privacy contract: raw content does not outlive its analysis
	// by more than the retention window
	o.lifecycle.MarkProcessed(m.ID, o.retention)

	return nil
}

// runWithTimeout runs extraction plus analysis under the per-document
// time budget. The analysis itself is pure CPU work, so the deadline
// is enforced by abandoning the goroutine rather than interrupting it.
func (o *Orchestrator) runWithTimeout(ctx context.Context, m *types.Material, data []byte, extractor extract.Extractor) (*types.MaterialAnalysis, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	type outcome struct {
		result *types.MaterialAnalysis
		err    error
	}

	ch := make(chan outcome, 1)
	go func() {
		text, err := extractor.Extract(ctx, data)
		if err != nil {
			ch <- outcome{err: fmt.Errorf("extraction failed: %w", err)}
			return
		}
		ch <- outcome{result: o.analyzer.Analyze(text, m.Filename)}
	}()

	select {
	case out := <-ch:
		return out.result, out.err
	case <-ctx.Done():
		return nil, fmt.Errorf("analysis timed out after %s", o.timeout)
	}
}

// markFailed records a per-document failure on the material
func (o *Orchestrator) markFailed(ctx context.Context, m *types.Material, reason string) {
	m.Status = types.StatusFailed
	m.Error = reason
	if err := o.repo.UpdateMaterial(ctx, m); err != nil {
		log.Printf("Failed to record failure for material %s: %v", m.ID, err)
	}
}
