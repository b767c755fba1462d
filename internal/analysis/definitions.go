package analysis

import (
	"regexp"
	"strings"

	"github.com/eakyildiz/CourseLens/pkg/types"
)

var (
	definedAsPattern = regexp.MustCompile(`(?i)^(.{2,60}?)\s+is defined as\s+(.+)$`)
	refersToPattern  = regexp.MustCompile(`(?i)^(.{2,60}?)\s+refers to\s+(.+)$`)
	// Term: definition, only honored at the start of a paragraph
	colonPattern = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9 \-']{1,59}):\s+(\S.*)$`)

	leadingArticlePattern = regexp.MustCompile(`(?i)^(the|an|a)\s+`)
)

// DefinitionExtractor finds term/definition constructs in text
type DefinitionExtractor struct {
	cfg types.AnalysisConfig
}

// NewDefinitionExtractor creates a new definition extractor
func NewDefinitionExtractor(cfg types.AnalysisConfig) *DefinitionExtractor {
	return &DefinitionExtractor{cfg: cfg}
}

// Extract returns term/definition pairs in document order, capped at
// MaxDefinitions. The first occurrence of a term wins; definitions
// shorter than MinDefinitionLength are rejected as trivial.
func (e *DefinitionExtractor) Extract(text string) []types.DefinitionEntry {
	seen := make(map[string]struct{})
	var definitions []types.DefinitionEntry

	add := func(term, definition string) {
		term = strings.TrimSpace(leadingArticlePattern.ReplaceAllString(strings.TrimSpace(term), ""))
		definition = strings.TrimRight(strings.TrimSpace(definition), ".!?") + "."

		if term == "" || len(definition) < e.cfg.MinDefinitionLength {
			return
		}
		key := strings.ToLower(term)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}

		definitions = append(definitions, types.DefinitionEntry{
			Term:       term,
			Definition: definition,
		})
	}

	for _, paragraph := range splitParagraphs(text) {
		if len(definitions) >= e.cfg.MaxDefinitions {
			break
		}

		// "Term: definition" on the paragraph's first line
		firstLine, _, _ := strings.Cut(paragraph, "\n")
		if m := colonPattern.FindStringSubmatch(strings.TrimSpace(firstLine)); m != nil {
			add(m[1], m[2])
		}

		for _, sentence := range splitSentences(paragraph) {
			if len(definitions) >= e.cfg.MaxDefinitions {
				break
			}
			clean := strings.Join(strings.Fields(sentence), " ")
			clean = strings.TrimRight(clean, ".!?")

			if m := definedAsPattern.FindStringSubmatch(clean); m != nil {
				add(m[1], m[2])
				continue
			}
			if m := refersToPattern.FindStringSubmatch(clean); m != nil {
				add(m[1], m[2])
			}
		}
	}

	if len(definitions) > e.cfg.MaxDefinitions {
		definitions = definitions[:e.cfg.MaxDefinitions]
	}

	return definitions
}
