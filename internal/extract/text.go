package extract

import "context"

// TextExtractor handles plain text and markdown files
type TextExtractor struct{}

// NewTextExtractor creates a new plain text extractor
func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

// Extract returns the file content as-is, normalized
func (e *TextExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	return finishText(string(data))
}

// SupportedFormats returns the formats this extractor supports
func (e *TextExtractor) SupportedFormats() []string {
	return []string{"txt", "md"}
}
