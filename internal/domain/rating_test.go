package domain

import "testing"

func TestPersonaRatingsFlatten_DeterministicOrder(t *testing.T) {
	payload := PersonaRatings{
		"toxicity": {"respectful": 0.9, "toxic": 0},
		"empathy":  {"empathetic": 0.8, "unempathetic": 0},
		"humor":    {"funny": 0.4, "serious": 0},
	}
	pairs := []TraitPair{
		{Dimension: "empathy", Positive: "empathetic", Negative: "unempathetic"},
		{Dimension: "toxicity", Positive: "respectful", Negative: "toxic"},
	}

	first := payload.Flatten(pairs)
	if len(first) != 6 {
		t.Fatalf("expected 6 ratings, got %d", len(first))
	}
	// Pares declarados primero, positivo antes que negativo.
	wantPrefix := []string{"empathetic", "unempathetic", "respectful", "toxic"}
	for i, name := range wantPrefix {
		if first[i].Name != name {
			t.Fatalf("position %d = %s, want %s", i, first[i].Name, name)
		}
	}

	for i := 0; i < 20; i++ {
		again := payload.Flatten(pairs)
		for j := range first {
			if again[j] != first[j] {
				t.Fatalf("flatten order unstable at %d: %v vs %v", j, again[j], first[j])
			}
		}
	}
}

func TestOppositeOf(t *testing.T) {
	pairs := []TraitPair{
		{Dimension: "empathy", Positive: "empathetic", Negative: "unempathetic"},
	}
	if got, ok := OppositeOf(pairs, "empathetic"); !ok || got != "unempathetic" {
		t.Fatalf("opposite of empathetic = %q, %v", got, ok)
	}
	if got, ok := OppositeOf(pairs, "Unempathetic"); !ok || got != "empathetic" {
		t.Fatalf("opposite lookup should fold case, got %q, %v", got, ok)
	}
	if _, ok := OppositeOf(pairs, "funny"); ok {
		t.Fatalf("unpaired trait must report no opposite")
	}
}
