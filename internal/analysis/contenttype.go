package analysis

import (
	"regexp"
	"strings"

	"github.com/eakyildiz/CourseLens/pkg/types"
)

var slideMarkerPattern = regexp.MustCompile(`(?im)^\s*slide\s*\d+`)

// ContentClassifier labels the kind of material from filename hints
// and content markers
type ContentClassifier struct{}

// NewContentClassifier creates a new content classifier
func NewContentClassifier() *ContentClassifier {
	return &ContentClassifier{}
}

// Classify checks the filename first, then falls back to content
// markers. Lecture notes are the default for prose-like material.
func (c *ContentClassifier) Classify(text, filename string) types.ContentType {
	name := strings.ToLower(filename)
	switch {
	case strings.Contains(name, "slide"), strings.Contains(name, "presentation"):
		return types.ContentSlides
	case strings.Contains(name, "assignment"), strings.Contains(name, "exercise"), strings.Contains(name, "homework"):
		return types.ContentAssignment
	case strings.Contains(name, "paper"), strings.Contains(name, "journal"):
		return types.ContentResearchPaper
	case strings.Contains(name, "lecture"), strings.Contains(name, "note"):
		return types.ContentLectureNotes
	}

	if strings.TrimSpace(text) == "" {
		return types.ContentOther
	}

	lower := strings.ToLower(text)
	switch {
	case slideMarkerPattern.MatchString(text):
		return types.ContentSlides
	case strings.Contains(lower, "due date"), strings.Contains(lower, "submit your"),
		strings.Contains(lower, "assignment"):
		return types.ContentAssignment
	case strings.Contains(lower, "abstract") &&
		(strings.Contains(lower, "references") || strings.Contains(lower, "bibliography")):
		return types.ContentResearchPaper
	}

	// Many short lines with little running prose reads as a deck
	if looksLikeSlides(text) {
		return types.ContentSlides
	}

	return types.ContentLectureNotes
}

// looksLikeSlides reports whether most non-blank lines are short
func looksLikeSlides(text string) bool {
	lines := strings.Split(text, "\n")
	nonBlank := 0
	short := 0
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		nonBlank++
		if len(line) < 40 {
			short++
		}
	}
	if nonBlank < 5 {
		return false
	}
	return float64(short)/float64(nonBlank) > 0.8
}
