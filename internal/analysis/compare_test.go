package analysis

import (
	"reflect"
	"testing"

	"github.com/eakyildiz/CourseLens/pkg/types"
)

func TestCompare(t *testing.T) {
	t.Run("Fewer than two analyses", func(t *testing.T) {
		for _, analyses := range [][]*types.MaterialAnalysis{
			nil,
			{{MaterialID: "only"}},
		} {
			result := Compare(analyses)

			if !result.InsufficientData {
				t.Error("Expected insufficient-data result")
			}
			if result.Reason == "" {
				t.Error("Expected an explanatory reason")
			}
			if result.MaterialCount != len(analyses) {
				t.Errorf("MaterialCount = %d, want %d", result.MaterialCount, len(analyses))
			}
		}
	})

	t.Run("Shared and unique concepts", func(t *testing.T) {
		a1 := &types.MaterialAnalysis{
			MaterialID: "m1",
			Concepts: []types.ConceptEntry{
				{Term: "machine learning", Frequency: 5},
				{Term: "neural networks", Frequency: 3},
			},
			Themes: []types.ThemeEntry{{Theme: "machine learning", Mentions: 8}},
		}
		a2 := &types.MaterialAnalysis{
			MaterialID: "m2",
			Concepts: []types.ConceptEntry{
				{Term: "Machine Learning", Frequency: 4},
				{Term: "statistics", Frequency: 2},
			},
			Themes: []types.ThemeEntry{
				{Theme: "machine learning", Mentions: 4},
				{Theme: "statistics", Mentions: 2},
			},
		}

		result := Compare([]*types.MaterialAnalysis{a1, a2})

		if result.InsufficientData {
			t.Fatal("Unexpected insufficient-data result")
		}
		if result.MaterialCount != 2 {
			t.Errorf("MaterialCount = %d, want 2", result.MaterialCount)
		}
		if !reflect.DeepEqual(result.SharedConcepts, []string{"machine learning"}) {
			t.Errorf("SharedConcepts = %v", result.SharedConcepts)
		}
		if !reflect.DeepEqual(result.UniqueConcepts["m1"], []string{"neural networks"}) {
			t.Errorf("UniqueConcepts[m1] = %v", result.UniqueConcepts["m1"])
		}
		if !reflect.DeepEqual(result.UniqueConcepts["m2"], []string{"statistics"}) {
			t.Errorf("UniqueConcepts[m2] = %v", result.UniqueConcepts["m2"])
		}
		if result.Coverage["machine learning"] != 2 {
			t.Errorf("Coverage[machine learning] = %d, want 2", result.Coverage["machine learning"])
		}
		if result.Coverage["statistics"] != 1 {
			t.Errorf("Coverage[statistics] = %d, want 1", result.Coverage["statistics"])
		}
	})

	t.Run("Material without unique concepts gets an empty list", func(t *testing.T) {
		shared := []types.ConceptEntry{{Term: "graphs", Frequency: 2}}
		a1 := &types.MaterialAnalysis{MaterialID: "m1", Concepts: shared}
		a2 := &types.MaterialAnalysis{MaterialID: "m2", Concepts: shared}

		result := Compare([]*types.MaterialAnalysis{a1, a2})

		for _, id := range []string{"m1", "m2"} {
			unique, ok := result.UniqueConcepts[id]
			if !ok {
				t.Errorf("Missing unique-concepts entry for %s", id)
				continue
			}
			if len(unique) != 0 {
				t.Errorf("UniqueConcepts[%s] = %v, want empty", id, unique)
			}
		}
	})

	t.Run("Missing material IDs get positional keys", func(t *testing.T) {
		a1 := &types.MaterialAnalysis{Concepts: []types.ConceptEntry{{Term: "alpha"}}}
		a2 := &types.MaterialAnalysis{Concepts: []types.ConceptEntry{{Term: "beta"}}}

		result := Compare([]*types.MaterialAnalysis{a1, a2})

		if _, ok := result.UniqueConcepts["material_1"]; !ok {
			t.Errorf("Expected material_1 key, got %v", result.UniqueConcepts)
		}
		if _, ok := result.UniqueConcepts["material_2"]; !ok {
			t.Errorf("Expected material_2 key, got %v", result.UniqueConcepts)
		}
	})
}
