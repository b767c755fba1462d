package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/eakyildiz/CourseLens/pkg/types"
)

// Compare computes concept overlap and theme coverage across multiple
// analyses. With fewer than 2 inputs it returns an explicit
// insufficient-data result rather than an error.
func Compare(analyses []*types.MaterialAnalysis) *types.ComparisonResult {
	if len(analyses) < 2 {
		return &types.ComparisonResult{
			InsufficientData: true,
			Reason:           "at least 2 analyses are required for comparison",
			MaterialCount:    len(analyses),
		}
	}

	// How many analyses mention each concept term
	termCounts := make(map[string]int)
	termSets := make([]map[string]struct{}, len(analyses))
	for i, a := range analyses {
		set := make(map[string]struct{})
		for _, c := range a.Concepts {
			set[strings.ToLower(c.Term)] = struct{}{}
		}
		termSets[i] = set
		for term := range set {
			termCounts[term]++
		}
	}

	var shared []string
	for term, count := range termCounts {
		if count >= 2 {
			shared = append(shared, term)
		}
	}
	sort.Strings(shared)

	unique := make(map[string][]string)
	for i, a := range analyses {
		id := a.MaterialID
		if id == "" {
			id = fmt.Sprintf("material_%d", i+1)
		}
		// Preserve each analysis's own concept ordering
		for _, c := range a.Concepts {
			term := strings.ToLower(c.Term)
			if termCounts[term] == 1 {
				unique[id] = append(unique[id], term)
			}
		}
		if unique[id] == nil {
			unique[id] = []string{}
		}
	}

	// Per-theme count of analyses that mention it
	coverage := make(map[string]int)
	for _, a := range analyses {
		seen := make(map[string]struct{})
		for _, t := range a.Themes {
			key := strings.ToLower(t.Theme)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			coverage[key]++
		}
	}

	return &types.ComparisonResult{
		MaterialCount:  len(analyses),
		SharedConcepts: shared,
		UniqueConcepts: unique,
		Coverage:       coverage,
	}
}
