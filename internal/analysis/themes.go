package analysis

import (
	"math"
	"sort"
	"strings"

	"github.com/eakyildiz/CourseLens/pkg/types"
	"github.com/kljensen/snowball"
)

// ThemeExtractor groups concepts into coarser themes by shared word
// stems. It operates on an already-extracted concept list, not raw
// text, so it can be tested in isolation.
type ThemeExtractor struct {
	cfg types.AnalysisConfig
}

// NewThemeExtractor creates a new theme extractor
func NewThemeExtractor(cfg types.AnalysisConfig) *ThemeExtractor {
	return &ThemeExtractor{cfg: cfg}
}

// Extract groups concepts sharing a leading token stem into themes.
// The theme takes the name of its most frequent member; mentions sum
// the grouped frequencies; importance is normalized with the top
// theme at 100.
func (e *ThemeExtractor) Extract(concepts []types.ConceptEntry) []types.ThemeEntry {
	if len(concepts) == 0 {
		return nil
	}

	type group struct {
		name      string
		mentions  int
		firstSeen int
	}

	groups := make(map[string]*group)
	order := 0
	for _, c := range concepts {
		key := stemKey(c.Term)
		if g, ok := groups[key]; ok {
			// Concepts arrive sorted by importance, so the first
			// member already named the group
			g.mentions += c.Frequency
			continue
		}
		groups[key] = &group{name: c.Term, mentions: c.Frequency, firstSeen: order}
		order++
	}

	ranked := make([]*group, 0, len(groups))
	for _, g := range groups {
		ranked = append(ranked, g)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].mentions != ranked[j].mentions {
			return ranked[i].mentions > ranked[j].mentions
		}
		return ranked[i].firstSeen < ranked[j].firstSeen
	})

	if len(ranked) > e.cfg.MaxThemes {
		ranked = ranked[:e.cfg.MaxThemes]
	}

	maxMentions := ranked[0].mentions
	themes := make([]types.ThemeEntry, 0, len(ranked))
	for i, g := range ranked {
		importance := int(math.Round(100 * float64(g.mentions) / float64(maxMentions)))
		if i > 0 && importance > 99 {
			importance = 99
		}
		themes = append(themes, types.ThemeEntry{
			Theme:      g.name,
			Mentions:   g.mentions,
			Importance: importance,
		})
	}

	return themes
}

// stemKey returns the grouping key for a term: the stem of its first
// token, so "machine learning" and "machines" share a bucket
func stemKey(term string) string {
	first, _, _ := strings.Cut(term, " ")
	stemmed, err := snowball.Stem(first, "english", true)
	if err != nil || stemmed == "" {
		return first
	}
	return stemmed
}
