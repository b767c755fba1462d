package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

const validConfig = `
server:
  host: "127.0.0.1"
  port: 9090
storage:
  adapter: "local"
  local:
    base_path: "/tmp/courselens-test"
upload:
  max_file_size_mb: 10
  retention_minutes: 30
`

func TestLoad(t *testing.T) {
	t.Run("Valid config", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, validConfig))
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}

		if cfg.Server.Port != 9090 {
			t.Errorf("Port = %d, want 9090", cfg.Server.Port)
		}
		if cfg.Storage.Adapter != "local" {
			t.Errorf("Adapter = %q, want local", cfg.Storage.Adapter)
		}
		if cfg.Upload.MaxFileSizeMB != 10 {
			t.Errorf("MaxFileSizeMB = %d, want 10", cfg.Upload.MaxFileSizeMB)
		}
	})

	t.Run("Analysis defaults filled", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, validConfig))
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}

		if cfg.Analysis.MaxConcepts != 20 {
			t.Errorf("MaxConcepts = %d, want 20", cfg.Analysis.MaxConcepts)
		}
		if cfg.Analysis.MaxFocusAreas != 5 {
			t.Errorf("MaxFocusAreas = %d, want 5", cfg.Analysis.MaxFocusAreas)
		}
		if cfg.Analysis.Workers != 4 {
			t.Errorf("Workers = %d, want 4", cfg.Analysis.Workers)
		}
		if cfg.Analysis.TimeoutSeconds != 10 {
			t.Errorf("TimeoutSeconds = %d, want 10", cfg.Analysis.TimeoutSeconds)
		}
		if cfg.Analysis.AdvancedAvgWordLen != 6.5 {
			t.Errorf("AdvancedAvgWordLen = %f, want 6.5", cfg.Analysis.AdvancedAvgWordLen)
		}
	})

	t.Run("Environment overrides", func(t *testing.T) {
		t.Setenv("CL_SERVER_PORT", "7070")
		t.Setenv("CL_ANALYSIS_WORKERS", "8")

		cfg, err := Load(writeConfig(t, validConfig))
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}

		if cfg.Server.Port != 7070 {
			t.Errorf("Port = %d, want 7070 from env", cfg.Server.Port)
		}
		if cfg.Analysis.Workers != 8 {
			t.Errorf("Workers = %d, want 8 from env", cfg.Analysis.Workers)
		}
	})

	t.Run("Missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
			t.Error("Expected error for missing file")
		}
	})

	t.Run("Invalid YAML", func(t *testing.T) {
		if _, err := Load(writeConfig(t, "server: [not closed")); err == nil {
			t.Error("Expected error for invalid YAML")
		}
	})
}

func TestValidate(t *testing.T) {
	t.Run("Invalid port", func(t *testing.T) {
		cfg := GetDefault()
		cfg.Server.Port = 0
		if err := Validate(cfg); err == nil {
			t.Error("Expected error for port 0")
		}
	})

	t.Run("Unknown adapter", func(t *testing.T) {
		cfg := GetDefault()
		cfg.Storage.Adapter = "ftp"
		if err := Validate(cfg); err == nil {
			t.Error("Expected error for unknown adapter")
		}
	})

	t.Run("Relative base path", func(t *testing.T) {
		cfg := GetDefault()
		cfg.Storage.Local.BasePath = "relative/path"
		if err := Validate(cfg); err == nil {
			t.Error("Expected error for relative base path")
		}
	})

	t.Run("S3 requires bucket and region", func(t *testing.T) {
		cfg := GetDefault()
		cfg.Storage.Adapter = "s3"
		cfg.Storage.S3.Region = "us-east-1"
		if err := Validate(cfg); err == nil {
			t.Error("Expected error for missing bucket")
		}

		cfg.Storage.S3.Bucket = "materials"
		cfg.Storage.S3.Region = ""
		if err := Validate(cfg); err == nil {
			t.Error("Expected error for missing region")
		}

		cfg.Storage.S3.Region = "us-east-1"
		if err := Validate(cfg); err != nil {
			t.Errorf("Validate failed on complete s3 config: %v", err)
		}
	})

	t.Run("Defaults applied on valid config", func(t *testing.T) {
		cfg := GetDefault()
		cfg.Upload.MaxFileSizeMB = 0
		if err := Validate(cfg); err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
		if cfg.Upload.MaxFileSizeMB != 50 {
			t.Errorf("MaxFileSizeMB = %d, want 50", cfg.Upload.MaxFileSizeMB)
		}
	})
}
