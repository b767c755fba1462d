package analysis

import (
	"strings"

	"github.com/eakyildiz/CourseLens/pkg/types"
)

const (
	// longWordLength is the token length counted as "long"
	longWordLength = 8
	// longWordRatioAdvanced pushes content to Advanced on its own
	longWordRatioAdvanced = 0.30
)

// DifficultyEstimator buckets content into Beginner, Intermediate or
// Advanced from vocabulary complexity. Deterministic for fixed
// thresholds.
type DifficultyEstimator struct {
	cfg types.AnalysisConfig
}

// NewDifficultyEstimator creates a new difficulty estimator
func NewDifficultyEstimator(cfg types.AnalysisConfig) *DifficultyEstimator {
	return &DifficultyEstimator{cfg: cfg}
}

// Estimate scores average word length, long-word ratio and the share
// of tokens that appear in the extracted concept list against the
// configured thresholds.
func (e *DifficultyEstimator) Estimate(text string, concepts []types.ConceptEntry) types.Difficulty {
	tokens := normalizeTokens(text)
	if len(tokens) == 0 {
		return types.DifficultyBeginner
	}

	conceptTokens := make(map[string]struct{})
	for _, c := range concepts {
		for _, t := range strings.Fields(c.Term) {
			if len(t) >= longWordLength {
				conceptTokens[t] = struct{}{}
			}
		}
	}

	totalLen := 0
	longCount := 0
	techCount := 0
	for _, t := range tokens {
		totalLen += len(t)
		if len(t) >= longWordLength {
			longCount++
		}
		if _, ok := conceptTokens[t]; ok {
			techCount++
		}
	}

	n := float64(len(tokens))
	avgWordLen := float64(totalLen) / n
	longRatio := float64(longCount) / n
	techRatio := float64(techCount) / n

	switch {
	case avgWordLen < e.cfg.BeginnerAvgWordLen && techRatio < e.cfg.BeginnerTechRatio:
		return types.DifficultyBeginner
	case avgWordLen > e.cfg.AdvancedAvgWordLen || techRatio > e.cfg.AdvancedTechRatio || longRatio > longWordRatioAdvanced:
		return types.DifficultyAdvanced
	default:
		return types.DifficultyIntermediate
	}
}
