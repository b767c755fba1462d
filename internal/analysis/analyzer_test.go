package analysis

import (
	"reflect"
	"strings"
	"testing"

	"github.com/eakyildiz/CourseLens/pkg/types"
)

// testAnalysisConfig mirrors the defaults applied by the config loader
func testAnalysisConfig() types.AnalysisConfig {
	return types.AnalysisConfig{
		MaxConcepts:         20,
		MinTermLength:       3,
		MaxObjectives:       10,
		MaxDefinitions:      15,
		MinDefinitionLength: 15,
		MaxThemes:           10,
		MaxFocusAreas:       5,
		BeginnerAvgWordLen:  5.0,
		AdvancedAvgWordLen:  6.5,
		BeginnerTechRatio:   0.05,
		AdvancedTechRatio:   0.15,
		Workers:             4,
		TimeoutSeconds:      10,
	}
}

const lectureText = `Introduction to Machine Learning

Machine learning is defined as a field of study that gives computers the ability to learn from data without being explicitly programmed. Students will understand the core concepts of machine learning and its applications.

Machine learning models are trained on data. A neural network is a machine learning model inspired by the brain. Neural network training requires careful tuning. You will be able to train a neural network on real data.

Gradient descent: an optimization procedure that iteratively adjusts model parameters to minimize a loss function.

The course covers supervised learning, unsupervised learning and reinforcement learning. Machine learning practitioners evaluate models with held-out data.`

func TestAnalyzer(t *testing.T) {
	analyzer := NewAnalyzer(testAnalysisConfig())

	t.Run("Full analysis", func(t *testing.T) {
		result := analyzer.Analyze(lectureText, "lecture_01.txt")

		if result == nil {
			t.Fatal("Got nil analysis")
		}
		if result.Filename != "lecture_01.txt" {
			t.Errorf("Filename = %q, want lecture_01.txt", result.Filename)
		}
		if result.Degraded {
			t.Errorf("Analysis unexpectedly degraded: %v", result.DegradedFields)
		}
		if len(result.Concepts) == 0 {
			t.Fatal("Expected concepts")
		}
		if len(result.Objectives) == 0 {
			t.Error("Expected objectives")
		}
		if len(result.Definitions) == 0 {
			t.Error("Expected definitions")
		}
		if len(result.Themes) == 0 {
			t.Error("Expected themes")
		}
		if result.Summary == "" {
			t.Error("Expected a summary")
		}
		if len(result.FocusAreas) == 0 {
			t.Error("Expected focus areas")
		}
		if result.Metadata.WordCount == 0 {
			t.Error("Expected word count")
		}
		if result.ContentType != types.ContentLectureNotes {
			t.Errorf("ContentType = %q, want %q", result.ContentType, types.ContentLectureNotes)
		}
	})

	t.Run("Exactly one top concept", func(t *testing.T) {
		result := analyzer.Analyze(lectureText, "lecture_01.txt")

		top := 0
		for _, c := range result.Concepts {
			if c.Importance == 100 {
				top++
			}
			if c.Importance < 0 || c.Importance > 100 {
				t.Errorf("Concept %q importance %d out of range", c.Term, c.Importance)
			}
		}
		if top != 1 {
			t.Errorf("Got %d concepts with importance 100, want exactly 1", top)
		}
		if result.Concepts[0].Importance != 100 {
			t.Error("First concept should carry importance 100")
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		first := analyzer.Analyze(lectureText, "lecture_01.txt")
		second := analyzer.Analyze(lectureText, "lecture_01.txt")

		if !reflect.DeepEqual(first, second) {
			t.Error("Repeated analysis of the same text differs")
		}
	})

	t.Run("Empty text", func(t *testing.T) {
		result := analyzer.Analyze("", "empty.bin")

		if result.Degraded {
			t.Errorf("Empty input should not degrade: %v", result.DegradedFields)
		}
		if len(result.Concepts) != 0 {
			t.Errorf("Expected no concepts, got %d", len(result.Concepts))
		}
		if result.Structure != (types.StructureStats{}) {
			t.Errorf("Expected zero structure stats, got %+v", result.Structure)
		}
		if result.Summary != "No summary available" {
			t.Errorf("Summary = %q", result.Summary)
		}
		if len(result.FocusAreas) != 1 || result.FocusAreas[0] != "Review all key concepts thoroughly" {
			t.Errorf("FocusAreas = %v", result.FocusAreas)
		}
		if result.Difficulty != types.DifficultyBeginner {
			t.Errorf("Difficulty = %q, want Beginner", result.Difficulty)
		}
		if result.ContentType != types.ContentOther {
			t.Errorf("ContentType = %q, want Other", result.ContentType)
		}
	})

	t.Run("Concept cap respected", func(t *testing.T) {
		var sb strings.Builder
		for i := 0; i < 60; i++ {
			sb.WriteString("apple banana cherry durian elderberry feijoa grape honeydew kiwi lemon mango nectarine orange papaya quince raspberry strawberry tangerine ugli vanilla ")
		}
		result := analyzer.Analyze(sb.String(), "fruits.txt")

		if len(result.Concepts) > 20 {
			t.Errorf("Got %d concepts, cap is 20", len(result.Concepts))
		}
	})
}
