package extract

import (
	"context"
	"errors"
	"strings"
)

// minContentLength is the minimum number of characters an extraction
// must yield to be considered usable
const minContentLength = 50

var (
	// ErrUnsupportedFormat indicates the file extension has no extractor
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrCorruptFile indicates the underlying parser could not read the file
	ErrCorruptFile = errors.New("corrupt file")

	// ErrEmptyContent indicates extraction produced too little text to analyze
	ErrEmptyContent = errors.New("empty content")
)

// Extractor converts an uploaded file into plain text
type Extractor interface {
	// Extract returns the plain text content of the document
	Extract(ctx context.Context, data []byte) (string, error)

	// SupportedFormats returns the file formats this extractor supports
	SupportedFormats() []string
}

// Factory resolves extractors for file formats
type Factory interface {
	// GetExtractor returns an extractor for the given format
	GetExtractor(format string) (Extractor, error)

	// Supported returns all registered formats
	Supported() []string
}

// finishText normalizes line endings and enforces the minimum
// content length shared by all extractors
func finishText(text string) (string, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ToValidUTF8(text, "")
	if len(strings.TrimSpace(text)) < minContentLength {
		return "", ErrEmptyContent
	}
	return text, nil
}
