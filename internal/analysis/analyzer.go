package analysis

import (
	"log"

	"github.com/eakyildiz/CourseLens/pkg/types"
)

// Analyzer orchestrates all sub-extractors over one document's text.
// Each sub-extractor runs independently; only the theme extractor
// consumes another extractor's output (the concept list). Analysis is
// a pure function of the text and the fixed heuristic tables, so
// concurrent invocations share no mutable state.
type Analyzer struct {
	cfg         types.AnalysisConfig
	concepts    *ConceptExtractor
	objectives  *ObjectiveExtractor
	definitions *DefinitionExtractor
	structure   *StructureAnalyzer
	themes      *ThemeExtractor
	difficulty  *DifficultyEstimator
	classifier  *ContentClassifier
}

// NewAnalyzer creates an analyzer with the given heuristic thresholds
func NewAnalyzer(cfg types.AnalysisConfig) *Analyzer {
	return &Analyzer{
		cfg:         cfg,
		concepts:    NewConceptExtractor(cfg),
		objectives:  NewObjectiveExtractor(cfg),
		definitions: NewDefinitionExtractor(cfg),
		structure:   NewStructureAnalyzer(),
		themes:      NewThemeExtractor(cfg),
		difficulty:  NewDifficultyEstimator(cfg),
		classifier:  NewContentClassifier(),
	}
}

// Analyze assembles the full analysis record for one document. Every
// field is computed inside its own panic boundary: a failing
// sub-extractor leaves its field at the zero value and tags the
// analysis as degraded instead of aborting the rest of the report.
func (a *Analyzer) Analyze(text, filename string) *types.MaterialAnalysis {
	result := &types.MaterialAnalysis{
		Filename:    filename,
		Difficulty:  types.DifficultyIntermediate,
		ContentType: types.ContentOther,
	}

	var degraded []string
	guard := func(field string, fn func()) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("Analysis field %s failed: %v", field, r)
				degraded = append(degraded, field)
			}
		}()
		fn()
	}

	guard("concepts", func() { result.Concepts = a.concepts.Extract(text) })
	guard("objectives", func() { result.Objectives = a.objectives.Extract(text) })
	guard("definitions", func() { result.Definitions = a.definitions.Extract(text) })
	guard("structure", func() { result.Structure = a.structure.Analyze(text) })
	guard("themes", func() { result.Themes = a.themes.Extract(result.Concepts) })
	guard("difficulty", func() { result.Difficulty = a.difficulty.Estimate(text, result.Concepts) })
	guard("content_type", func() { result.ContentType = a.classifier.Classify(text, filename) })
	guard("summary", func() { result.Summary = summarize(text) })
	guard("focus_areas", func() {
		result.FocusAreas = focusAreas(text, result.Concepts, result.Difficulty, a.cfg)
	})
	guard("metadata", func() { result.Metadata = textMetadata(text) })

	result.Degraded = len(degraded) > 0
	result.DegradedFields = degraded

	return result
}
