package analysis

import (
	"math"
	"sort"

	"github.com/eakyildiz/CourseLens/pkg/types"
)

// ConceptExtractor scans text for candidate technical terms and ranks
// them by frequency-derived importance
type ConceptExtractor struct {
	cfg types.AnalysisConfig
}

// NewConceptExtractor creates a new concept extractor
func NewConceptExtractor(cfg types.AnalysisConfig) *ConceptExtractor {
	return &ConceptExtractor{cfg: cfg}
}

// Extract returns the top concepts ranked by importance. The list is
// capped at MaxConcepts; the top entry always scores 100 and every
// other entry is capped at 99 so ranking is unambiguous. Ties in
// frequency prefer longer phrases, then first appearance.
func (e *ConceptExtractor) Extract(text string) []types.ConceptEntry {
	tokens := normalizeTokens(text)
	if len(tokens) == 0 {
		return nil
	}

	type candidate struct {
		term      string
		frequency int
		words     int
		firstSeen int
	}

	candidates := make(map[string]*candidate)
	order := 0
	record := func(term string, words int) {
		if c, ok := candidates[term]; ok {
			c.frequency++
			return
		}
		candidates[term] = &candidate{term: term, frequency: 1, words: words, firstSeen: order}
		order++
	}

	eligible := make([]bool, len(tokens))
	for i, t := range tokens {
		eligible[i] = e.isCandidate(t)
	}

	// Unigrams plus adjacent bigrams/trigrams of eligible tokens,
	// capturing multi-word technical terms
	for i, t := range tokens {
		if !eligible[i] {
			continue
		}
		record(t, 1)
		if i+1 < len(tokens) && eligible[i+1] {
			record(t+" "+tokens[i+1], 2)
			if i+2 < len(tokens) && eligible[i+2] {
				record(t+" "+tokens[i+1]+" "+tokens[i+2], 3)
			}
		}
	}

	ranked := make([]*candidate, 0, len(candidates))
	for _, c := range candidates {
		ranked = append(ranked, c)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].frequency != ranked[j].frequency {
			return ranked[i].frequency > ranked[j].frequency
		}
		if ranked[i].words != ranked[j].words {
			return ranked[i].words > ranked[j].words
		}
		return ranked[i].firstSeen < ranked[j].firstSeen
	})

	if len(ranked) > e.cfg.MaxConcepts {
		ranked = ranked[:e.cfg.MaxConcepts]
	}

	maxFreq := ranked[0].frequency
	concepts := make([]types.ConceptEntry, 0, len(ranked))
	for i, c := range ranked {
		importance := int(math.Round(100 * float64(c.frequency) / float64(maxFreq)))
		if i > 0 && importance > 99 {
			importance = 99
		}
		concepts = append(concepts, types.ConceptEntry{
			Term:       c.term,
			Frequency:  c.frequency,
			Importance: importance,
		})
	}

	return concepts
}

// isCandidate applies the stopword, length and numeric filters
func (e *ConceptExtractor) isCandidate(token string) bool {
	if len(token) < e.cfg.MinTermLength {
		return false
	}
	if isNumericToken(token) {
		return false
	}
	_, stop := stopwords[token]
	return !stop
}
