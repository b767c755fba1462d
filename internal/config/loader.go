package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/eakyildiz/CourseLens/pkg/types"
	"gopkg.in/yaml.v3"
)

// Load reads and parses the configuration file
// It also supports environment variable overrides with CL_ prefix
func Load(configPath string) (*types.Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg types.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyEnvOverrides(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks if the configuration is valid and fills defaults
func Validate(cfg *types.Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", cfg.Server.Port)
	}

	if cfg.Storage.Adapter != "local" && cfg.Storage.Adapter != "s3" {
		return fmt.Errorf("invalid storage adapter: %s (must be 'local' or 's3')", cfg.Storage.Adapter)
	}

	if cfg.Storage.Adapter == "local" {
		if cfg.Storage.Local.BasePath == "" {
			return fmt.Errorf("local storage base_path is required")
		}
		if !filepath.IsAbs(cfg.Storage.Local.BasePath) {
			return fmt.Errorf("local storage base_path must be absolute: %s", cfg.Storage.Local.BasePath)
		}
	}

	if cfg.Storage.Adapter == "s3" {
		if cfg.Storage.S3.Bucket == "" {
			return fmt.Errorf("s3 bucket is required")
		}
		if cfg.Storage.S3.Region == "" {
			return fmt.Errorf("s3 region is required")
		}
	}

	if cfg.Upload.MaxFileSizeMB <= 0 {
		cfg.Upload.MaxFileSizeMB = 50
	}
	if cfg.Upload.RetentionMinutes <= 0 {
		cfg.Upload.RetentionMinutes = 60
	}

	applyAnalysisDefaults(&cfg.Analysis)

	return nil
}

// applyAnalysisDefaults fills zero-valued heuristic thresholds
func applyAnalysisDefaults(a *types.AnalysisConfig) {
	if a.MaxConcepts <= 0 {
		a.MaxConcepts = 20
	}
	if a.MinTermLength <= 0 {
		a.MinTermLength = 3
	}
	if a.MaxObjectives <= 0 {
		a.MaxObjectives = 10
	}
	if a.MaxDefinitions <= 0 {
		a.MaxDefinitions = 15
	}
	if a.MinDefinitionLength <= 0 {
		a.MinDefinitionLength = 15
	}
	if a.MaxThemes <= 0 {
		a.MaxThemes = 10
	}
	if a.MaxFocusAreas <= 0 {
		a.MaxFocusAreas = 5
	}
	if a.BeginnerAvgWordLen == 0 {
		a.BeginnerAvgWordLen = 5.0
	}
	if a.AdvancedAvgWordLen == 0 {
		a.AdvancedAvgWordLen = 6.5
	}
	if a.BeginnerTechRatio == 0 {
		a.BeginnerTechRatio = 0.05
	}
	if a.AdvancedTechRatio == 0 {
		a.AdvancedTechRatio = 0.15
	}
	if a.Workers <= 0 {
		a.Workers = 4
	}
	if a.TimeoutSeconds <= 0 {
		a.TimeoutSeconds = 10
	}
}

// applyEnvOverrides applies environment variable overrides
// Environment variables should be prefixed with CL_ (CourseLens)
func applyEnvOverrides(cfg *types.Config) {
	if val := os.Getenv("CL_SERVER_HOST"); val != "" {
		cfg.Server.Host = val
	}
	if val := os.Getenv("CL_SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &cfg.Server.Port)
	}

	if val := os.Getenv("CL_STORAGE_ADAPTER"); val != "" {
		cfg.Storage.Adapter = val
	}
	if val := os.Getenv("CL_STORAGE_LOCAL_BASE_PATH"); val != "" {
		cfg.Storage.Local.BasePath = val
	}
	if val := os.Getenv("CL_STORAGE_S3_BUCKET"); val != "" {
		cfg.Storage.S3.Bucket = val
	}
	if val := os.Getenv("CL_STORAGE_S3_REGION"); val != "" {
		cfg.Storage.S3.Region = val
	}
	if val := os.Getenv("CL_STORAGE_S3_ENDPOINT"); val != "" {
		cfg.Storage.S3.Endpoint = val
	}
	if val := os.Getenv("CL_STORAGE_S3_ACCESS_KEY_ID"); val != "" {
		cfg.Storage.S3.AccessKeyID = val
	}
	if val := os.Getenv("CL_STORAGE_S3_SECRET_ACCESS_KEY"); val != "" {
		cfg.Storage.S3.SecretAccessKey = val
	}

	if val := os.Getenv("CL_UPLOAD_MAX_FILE_SIZE_MB"); val != "" {
		fmt.Sscanf(val, "%d", &cfg.Upload.MaxFileSizeMB)
	}
	if val := os.Getenv("CL_UPLOAD_RETENTION_MINUTES"); val != "" {
		fmt.Sscanf(val, "%d", &cfg.Upload.RetentionMinutes)
	}
	if val := os.Getenv("CL_ANALYSIS_WORKERS"); val != "" {
		fmt.Sscanf(val, "%d", &cfg.Analysis.Workers)
	}
	if val := os.Getenv("CL_ANALYSIS_TIMEOUT_SECONDS"); val != "" {
		fmt.Sscanf(val, "%d", &cfg.Analysis.TimeoutSeconds)
	}
}

// GetDefault returns a default configuration
func GetDefault() *types.Config {
	cfg := &types.Config{
		Server: types.ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  15,
			WriteTimeout: 15,
		},
		Storage: types.StorageConfig{
			Adapter: "local",
			Local: types.LocalStorageOpts{
				BasePath: "/var/lib/courselens/storage",
			},
		},
		Upload: types.UploadConfig{
			MaxFileSizeMB:    50,
			RetentionMinutes: 60,
		},
	}
	applyAnalysisDefaults(&cfg.Analysis)
	return cfg
}
