package analysis

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/eakyildiz/CourseLens/pkg/types"
)

const (
	minSummaryParagraph = 50
	maxSummaryLength    = 150
)

var emphasisPattern = regexp.MustCompile(`\*\*([^*]+)\*\*|__([^_]+)__`)

// summarize returns the first substantial paragraph, cut at a word
// boundary
func summarize(text string) string {
	for _, p := range splitParagraphs(text) {
		p = strings.Join(strings.Fields(p), " ")
		if len(p) < minSummaryParagraph {
			continue
		}
		if len(p) > maxSummaryLength {
			cut := strings.LastIndex(p[:maxSummaryLength], " ")
			if cut <= 0 {
				cut = maxSummaryLength
			}
			p = p[:cut] + "..."
		}
		return p
	}
	return "No summary available"
}

// focusAreas builds study recommendations from emphasized text,
// high-frequency concepts and the difficulty estimate
func focusAreas(text string, concepts []types.ConceptEntry, difficulty types.Difficulty, cfg types.AnalysisConfig) []string {
	var areas []string

	for _, m := range emphasisPattern.FindAllStringSubmatch(text, -1) {
		term := m[1]
		if term == "" {
			term = m[2]
		}
		term = strings.TrimSpace(term)
		if len(term) > 5 {
			areas = append(areas, fmt.Sprintf("Focus on: %s", term))
		}
		if len(areas) >= cfg.MaxFocusAreas {
			return areas
		}
	}

	for i, c := range concepts {
		if i >= 3 || len(areas) >= cfg.MaxFocusAreas {
			break
		}
		if c.Frequency > 2 {
			areas = append(areas, fmt.Sprintf("Important concept: %s", c.Term))
		}
	}

	if difficulty == types.DifficultyAdvanced && len(areas) < cfg.MaxFocusAreas {
		areas = append(areas, "This material contains advanced topics - review fundamentals first")
	}

	if len(areas) == 0 {
		return []string{"Review all key concepts thoroughly"}
	}
	return areas
}

// textMetadata computes basic counts about the text
func textMetadata(text string) types.TextMetadata {
	words := strings.Fields(text)
	sentences := splitSentences(text)

	unique := make(map[string]struct{}, len(words))
	for _, w := range words {
		unique[strings.ToLower(w)] = struct{}{}
	}

	avg := 0.0
	if len(sentences) > 0 {
		avg = float64(len(words)) / float64(len(sentences))
	}

	return types.TextMetadata{
		WordCount:         len(words),
		SentenceCount:     len(sentences),
		AvgSentenceLength: avg,
		UniqueWordCount:   len(unique),
	}
}
