package analysis

import (
	"testing"

	"github.com/eakyildiz/CourseLens/pkg/types"
)

func TestDifficultyEstimator(t *testing.T) {
	estimator := NewDifficultyEstimator(testAnalysisConfig())

	t.Run("Beginner for simple vocabulary", func(t *testing.T) {
		text := "the cat sat on the mat and ran far to get the red ball"
		got := estimator.Estimate(text, nil)

		if got != types.DifficultyBeginner {
			t.Errorf("Difficulty = %q, want Beginner", got)
		}
	})

	t.Run("Advanced for dense vocabulary", func(t *testing.T) {
		text := "sophisticated methodological frameworks necessitate comprehensive interdisciplinary understanding"
		got := estimator.Estimate(text, nil)

		if got != types.DifficultyAdvanced {
			t.Errorf("Difficulty = %q, want Advanced", got)
		}
	})

	t.Run("Advanced for technical term density", func(t *testing.T) {
		text := "backpropagation adjusts weights backpropagation layers use backpropagation a lot"
		concepts := []types.ConceptEntry{{Term: "backpropagation", Frequency: 3, Importance: 100}}
		got := estimator.Estimate(text, concepts)

		if got != types.DifficultyAdvanced {
			t.Errorf("Difficulty = %q, want Advanced", got)
		}
	})

	t.Run("Intermediate between the thresholds", func(t *testing.T) {
		text := "student finish simple lesson about systems design today okay right"
		got := estimator.Estimate(text, nil)

		if got != types.DifficultyIntermediate {
			t.Errorf("Difficulty = %q, want Intermediate", got)
		}
	})

	t.Run("Empty text defaults to Beginner", func(t *testing.T) {
		got := estimator.Estimate("", nil)

		if got != types.DifficultyBeginner {
			t.Errorf("Difficulty = %q, want Beginner", got)
		}
	})
}
