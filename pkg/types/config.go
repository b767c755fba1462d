package types

// Config represents the overall application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" json:"server"`
	Storage  StorageConfig  `yaml:"storage" json:"storage"`
	Upload   UploadConfig   `yaml:"upload" json:"upload"`
	Analysis AnalysisConfig `yaml:"analysis" json:"analysis"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host         string `yaml:"host" json:"host"`
	Port         int    `yaml:"port" json:"port"`
	ReadTimeout  int    `yaml:"read_timeout" json:"read_timeout"`   // seconds
	WriteTimeout int    `yaml:"write_timeout" json:"write_timeout"` // seconds
}

// StorageConfig defines storage adapter settings
type StorageConfig struct {
	Adapter string           `yaml:"adapter" json:"adapter"` // "local" or "s3"
	Local   LocalStorageOpts `yaml:"local" json:"local"`
	S3      S3StorageOpts    `yaml:"s3" json:"s3"`
}

// LocalStorageOpts configures the local filesystem adapter
type LocalStorageOpts struct {
	BasePath string `yaml:"base_path" json:"base_path"`
}

// S3StorageOpts configures the S3-compatible adapter
type S3StorageOpts struct {
	Endpoint        string `yaml:"endpoint" json:"endpoint"`
	Region          string `yaml:"region" json:"region"`
	Bucket          string `yaml:"bucket" json:"bucket"`
	AccessKeyID     string `yaml:"access_key_id" json:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key" json:"secret_access_key"`
	UseSSL          bool   `yaml:"use_ssl" json:"use_ssl"`
}

// UploadConfig holds upload and retention settings
type UploadConfig struct {
	MaxFileSizeMB    int `yaml:"max_file_size_mb" json:"max_file_size_mb"`
	RetentionMinutes int `yaml:"retention_minutes" json:"retention_minutes"`
}

// AnalysisConfig holds the tunable heuristic thresholds for the
// analysis engine. Values are fixed at startup and shared read-only
// across concurrent analyses.
type AnalysisConfig struct {
	MaxConcepts         int `yaml:"max_concepts" json:"max_concepts"`
	MinTermLength       int `yaml:"min_term_length" json:"min_term_length"`
	MaxObjectives       int `yaml:"max_objectives" json:"max_objectives"`
	MaxDefinitions      int `yaml:"max_definitions" json:"max_definitions"`
	MinDefinitionLength int `yaml:"min_definition_length" json:"min_definition_length"`
	MaxThemes           int `yaml:"max_themes" json:"max_themes"`
	MaxFocusAreas       int `yaml:"max_focus_areas" json:"max_focus_areas"`

	// Difficulty boundaries (see estimator for how they combine)
	BeginnerAvgWordLen float64 `yaml:"beginner_avg_word_len" json:"beginner_avg_word_len"`
	AdvancedAvgWordLen float64 `yaml:"advanced_avg_word_len" json:"advanced_avg_word_len"`
	BeginnerTechRatio  float64 `yaml:"beginner_tech_ratio" json:"beginner_tech_ratio"`
	AdvancedTechRatio  float64 `yaml:"advanced_tech_ratio" json:"advanced_tech_ratio"`

	// Batch processing
	Workers        int `yaml:"workers" json:"workers"`
	TimeoutSeconds int `yaml:"timeout_seconds" json:"timeout_seconds"`
}
