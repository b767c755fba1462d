package analysis

import (
	"strings"

	"github.com/eakyildiz/CourseLens/pkg/types"
)

const (
	minObjectiveLength = 20
	maxObjectiveLength = 200
)

// ObjectiveExtractor finds sentences that describe learning goals
type ObjectiveExtractor struct {
	cfg types.AnalysisConfig
}

// NewObjectiveExtractor creates a new objective extractor
func NewObjectiveExtractor(cfg types.AnalysisConfig) *ObjectiveExtractor {
	return &ObjectiveExtractor{cfg: cfg}
}

// Extract returns cleaned objective sentences in order of first
// appearance, deduplicated case-insensitively and capped at
// MaxObjectives. Every entry ends with sentence punctuation.
func (e *ObjectiveExtractor) Extract(text string) []string {
	seen := make(map[string]struct{})
	var objectives []string

	for _, sentence := range splitSentences(text) {
		clean := strings.Join(strings.Fields(sentence), " ")
		if len(clean) < minObjectiveLength || len(clean) > maxObjectiveLength {
			continue
		}

		if !containsAny(strings.ToLower(clean), objectiveMarkers) {
			continue
		}

		if !strings.HasSuffix(clean, ".") && !strings.HasSuffix(clean, "!") && !strings.HasSuffix(clean, "?") {
			clean += "."
		}

		key := strings.ToLower(clean)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		objectives = append(objectives, clean)
		if len(objectives) >= e.cfg.MaxObjectives {
			break
		}
	}

	return objectives
}
