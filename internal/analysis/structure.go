package analysis

import (
	"strings"

	"github.com/eakyildiz/CourseLens/pkg/types"
)

// StructureAnalyzer computes structural statistics over text
type StructureAnalyzer struct{}

// NewStructureAnalyzer creates a new structure analyzer
func NewStructureAnalyzer() *StructureAnalyzer {
	return &StructureAnalyzer{}
}

// Analyze returns structural statistics. It always succeeds; empty
// input yields all-zero stats.
func (a *StructureAnalyzer) Analyze(text string) types.StructureStats {
	if strings.TrimSpace(text) == "" {
		return types.StructureStats{}
	}

	lines := strings.Split(text, "\n")
	paragraphs := splitParagraphs(text)

	sections := 0
	for _, line := range lines {
		if isHeadingLine(strings.TrimSpace(line)) {
			sections++
		}
	}

	avgParagraphLength := 0
	if len(paragraphs) > 0 {
		total := 0
		for _, p := range paragraphs {
			total += len(p)
		}
		avgParagraphLength = total / len(paragraphs)
	}

	return types.StructureStats{
		TotalLines:             len(lines),
		TotalParagraphs:        len(paragraphs),
		EstimatedSections:      sections,
		AverageParagraphLength: avgParagraphLength,
		HasLists:               listPattern.MatchString(text),
		HasNumbering:           numberingPattern.MatchString(text),
	}
}
