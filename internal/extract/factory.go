package extract

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultFactory creates extractors for supported formats
type DefaultFactory struct {
	extractors map[string]Extractor
}

// NewFactory creates a new extractor factory with default extractors
func NewFactory() Factory {
	f := &DefaultFactory{
		extractors: make(map[string]Extractor),
	}

	f.register(NewTextExtractor())
	f.register(NewPDFExtractor())
	f.register(NewDOCXExtractor())
	f.register(NewPPTXExtractor())

	return f
}

// register registers an extractor for its supported formats
func (f *DefaultFactory) register(e Extractor) {
	for _, format := range e.SupportedFormats() {
		f.extractors[strings.ToLower(format)] = e
	}
}

// GetExtractor returns an extractor for the given format
func (f *DefaultFactory) GetExtractor(format string) (Extractor, error) {
	format = strings.ToLower(strings.TrimPrefix(format, "."))
	e, ok := f.extractors[format]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	return e, nil
}

// Supported returns all registered formats
func (f *DefaultFactory) Supported() []string {
	formats := make([]string, 0, len(f.extractors))
	for format := range f.extractors {
		formats = append(formats, format)
	}
	sort.Strings(formats)
	return formats
}
