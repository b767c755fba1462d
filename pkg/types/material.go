package types

import "time"

// MaterialStatus tracks a material through its processing lifecycle
type MaterialStatus string

const (
	StatusUploaded   MaterialStatus = "uploaded"
	StatusProcessing MaterialStatus = "processing"
	StatusProcessed  MaterialStatus = "processed"
	StatusFailed     MaterialStatus = "failed"
	StatusDeleted    MaterialStatus = "deleted"
)

// Difficulty is the estimated difficulty level of a material
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
)

// ContentType labels the kind of material that was uploaded
type ContentType string

const (
	ContentLectureNotes  ContentType = "Lecture Notes"
	ContentSlides        ContentType = "Presentation Slides"
	ContentAssignment    ContentType = "Assignment"
	ContentResearchPaper ContentType = "Research Paper"
	ContentOther         ContentType = "Other"
)

// Material represents one uploaded source document
type Material struct {
	ID         string         `json:"id"`
	Filename   string         `json:"filename"`
	Format     string         `json:"format"` // "pdf", "pptx", "docx", "txt", "md"
	SizeBytes  int64          `json:"size_bytes"`
	UploadedAt time.Time      `json:"uploaded_at"`
	Status     MaterialStatus `json:"status"`
	Error      string         `json:"error,omitempty"`
}

// ConceptEntry is a candidate technical term ranked by frequency
type ConceptEntry struct {
	Term       string `json:"term"`
	Frequency  int    `json:"frequency"`
	Importance int    `json:"importance"` // 0-100, top concept scores 100
}

// DefinitionEntry is a term/definition pair found in the text
type DefinitionEntry struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// ThemeEntry is a coarser grouping of related concepts
type ThemeEntry struct {
	Theme      string `json:"theme"`
	Mentions   int    `json:"mentions"`
	Importance int    `json:"importance"`
}

// StructureStats holds structural statistics derived from the text
type StructureStats struct {
	TotalLines             int  `json:"total_lines"`
	TotalParagraphs        int  `json:"total_paragraphs"`
	EstimatedSections      int  `json:"estimated_sections"`
	AverageParagraphLength int  `json:"average_paragraph_length"`
	HasLists               bool `json:"has_lists"`
	HasNumbering           bool `json:"has_numbering"`
}

// TextMetadata holds basic counts about the analyzed text
type TextMetadata struct {
	WordCount         int     `json:"word_count"`
	SentenceCount     int     `json:"sentence_count"`
	AvgSentenceLength float64 `json:"avg_sentence_length"`
	UniqueWordCount   int     `json:"unique_word_count"`
}

// MaterialAnalysis is the aggregate analysis result for one material.
// It is immutable after creation; the source raw text is deleted once
// the analysis is stored.
type MaterialAnalysis struct {
	MaterialID     string            `json:"material_id"`
	Filename       string            `json:"filename"`
	Concepts       []ConceptEntry    `json:"concepts"`
	Objectives     []string          `json:"objectives"`
	Definitions    []DefinitionEntry `json:"definitions"`
	Structure      StructureStats    `json:"structure"`
	Themes         []ThemeEntry      `json:"themes"`
	Difficulty     Difficulty        `json:"difficulty"`
	ContentType    ContentType       `json:"content_type"`
	Summary        string            `json:"summary"`
	FocusAreas     []string          `json:"focus_areas"`
	Metadata       TextMetadata      `json:"metadata"`
	Degraded       bool              `json:"degraded"`
	DegradedFields []string          `json:"degraded_fields,omitempty"`
}

// ComparisonResult compares concept coverage across multiple analyses
type ComparisonResult struct {
	InsufficientData bool                `json:"insufficient_data"`
	Reason           string              `json:"reason,omitempty"`
	MaterialCount    int                 `json:"material_count"`
	SharedConcepts   []string            `json:"shared_concepts,omitempty"`
	UniqueConcepts   map[string][]string `json:"unique_concepts_per_material,omitempty"`
	Coverage         map[string]int      `json:"coverage_analysis,omitempty"`
}

// FileRejection reports why a single uploaded file was not processed
type FileRejection struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}

// UploadResult is the per-batch response to a multi-file upload
type UploadResult struct {
	Accepted []*Material     `json:"accepted"`
	Rejected []FileRejection `json:"rejected"`
}
