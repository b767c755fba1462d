package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/eakyildiz/CourseLens/internal/analysis"
	"github.com/eakyildiz/CourseLens/internal/api"
	"github.com/eakyildiz/CourseLens/internal/batch"
	"github.com/eakyildiz/CourseLens/internal/config"
	"github.com/eakyildiz/CourseLens/internal/extract"
	"github.com/eakyildiz/CourseLens/internal/health"
	"github.com/eakyildiz/CourseLens/internal/lifecycle"
	"github.com/eakyildiz/CourseLens/internal/material"
	"github.com/eakyildiz/CourseLens/internal/storage"
	"github.com/eakyildiz/CourseLens/pkg/types"
)

const version = "0.3.0"

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/dev.example.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Printf("Starting CourseLens Server v%s", version)
	log.Printf("Configuration loaded from: %s", *configPath)

	// Initialize storage adapter
	storageAdapter, err := storage.NewAdapter(cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to create storage adapter: %v", err)
	}
	defer storageAdapter.Close()
	log.Printf("Storage adapter initialized: %s", cfg.Storage.Adapter)

	// Initialize material repository
	repo := material.NewRepository(storageAdapter)
	log.Printf("Material repository initialized")

	// Initialize extractor factory
	factory := extract.NewFactory()
	log.Printf("Extractor factory initialized: formats %v", factory.Supported())

	// Initialize the analyzer
	analyzer := analysis.NewAnalyzer(cfg.Analysis)

	// Initialize lifecycle manager for raw upload retention
	retention := time.Duration(cfg.Upload.RetentionMinutes) * time.Minute
	lifecycleManager := lifecycle.NewManager(retention, time.Minute, repo.DeleteRawFile)
	defer lifecycleManager.Close()
	log.Printf("Lifecycle manager initialized: retention %s", retention)

	// Initialize batch orchestrator
	orchestrator := batch.NewOrchestrator(
		repo,
		factory,
		analyzer,
		lifecycleManager,
		cfg.Analysis.Workers,
		time.Duration(cfg.Analysis.TimeoutSeconds)*time.Second,
		retention,
	)

	// Initialize health checks
	healthHandler := health.NewHandler(version)

	healthHandler.Register("storage", func(ctx context.Context) (health.Status, error) {
		// Check if storage is accessible
		exists, err := storageAdapter.Exists(ctx, ".healthcheck")
		if err != nil {
			return health.StatusUnhealthy, err
		}
		_ = exists // Ignore result, just checking connectivity
		return health.StatusHealthy, nil
	})

	healthHandler.Register("extractors", func(ctx context.Context) (health.Status, error) {
		if len(factory.Supported()) == 0 {
			return health.StatusUnhealthy, fmt.Errorf("no extractors registered")
		}
		return health.StatusHealthy, nil
	})

	// Set up HTTP server and routes
	mux := http.NewServeMux()

	// Health endpoints
	mux.HandleFunc("/health/live", healthHandler.LivenessHandler())
	mux.HandleFunc("/health/ready", healthHandler.ReadinessHandler())
	mux.HandleFunc("/health", healthHandler.HealthHandler())

	// Info endpoint
	mux.HandleFunc("/api/v1/info", infoHandler(version, cfg, factory))

	// Material API endpoints
	materialHandler := api.NewMaterialHandler(repo, factory, orchestrator, lifecycleManager, cfg.Upload.MaxFileSizeMB)
	mux.HandleFunc("/api/v1/materials", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			materialHandler.UploadMaterials(w, r)
		} else {
			materialHandler.ListMaterials(w, r)
		}
	})
	mux.HandleFunc("/api/v1/materials/", func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if path == "/api/v1/materials/stream" {
			materialHandler.StreamMaterials(w, r)
		} else if path == "/api/v1/materials/compare" {
			materialHandler.CompareMaterials(w, r)
		} else if strings.HasSuffix(path, "/analysis") {
			materialHandler.GetAnalysis(w, r)
		} else if strings.HasSuffix(path, "/download") {
			materialHandler.DownloadBundle(w, r)
		} else if r.Method == http.MethodDelete {
			materialHandler.DeleteMaterial(w, r)
		} else {
			materialHandler.GetMaterial(w, r)
		}
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// infoHandler returns basic server information
func infoHandler(version string, cfg *types.Config, factory extract.Factory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"version":"%s","storage_adapter":"%s","supported_formats":%s}`,
			version, cfg.Storage.Adapter, toJSON(factory.Supported()))
	}
}

func toJSON(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	result := "["
	for i, item := range items {
		if i > 0 {
			result += ","
		}
		result += fmt.Sprintf(`"%s"`, item)
	}
	result += "]"
	return result
}
