package persona

import (
	"math"
	"testing"

	pgvector "github.com/pgvector/pgvector-go"

	"persona-study/internal/domain"
)

func TestProjection_Basics(t *testing.T) {
	// Proyeccion de (3,4) sobre (1,0): dot=3, ||b||=1 -> 3.
	got, err := Projection([]float32{3, 4}, []float32{1, 0})
	if err != nil {
		t.Fatalf("projection failed: %v", err)
	}
	if math.Abs(got-3) > 1e-9 {
		t.Fatalf("projection = %v, want 3", got)
	}

	if _, err := Projection([]float32{1}, []float32{1, 2}); err == nil {
		t.Fatalf("expected dimension mismatch error")
	}
	if _, err := Projection([]float32{1, 2}, []float32{0, 0}); err == nil {
		t.Fatalf("expected zero direction error")
	}
}

func newTestVector(direction []float32, posScale, negScale float64) domain.PersonaVector {
	return domain.PersonaVector{
		Trait:        "empathy",
		PositivePole: "empathetic",
		NegativePole: "unempathetic",
		Direction:    pgvector.NewVector(direction),
		PosScale:     posScale,
		NegScale:     negScale,
	}
}

func TestRateTrait_PositiveProjectionScoresPositivePole(t *testing.T) {
	vec := newTestVector([]float32{2, 0}, 0.5, 0.5)

	// activation (2,0): dot=4, ||b||^2=4 -> normalized=1; /0.5 -> 2 -> clamp 1.
	ratings, err := RateTrait([]float32{2, 0}, vec)
	if err != nil {
		t.Fatalf("rate trait: %v", err)
	}
	if ratings["empathetic"] != 1.0 {
		t.Fatalf("positive pole = %v, want clamped 1.0", ratings["empathetic"])
	}
	if ratings["unempathetic"] != 0 {
		t.Fatalf("negative pole = %v, want 0", ratings["unempathetic"])
	}
}

func TestRateTrait_NegativeProjectionScoresNegativePole(t *testing.T) {
	vec := newTestVector([]float32{2, 0}, 1.0, 2.0)

	// activation (-1,0): dot=-2, normalized=-0.5; escala 2 -> 0.25.
	ratings, err := RateTrait([]float32{-1, 0}, vec)
	if err != nil {
		t.Fatalf("rate trait: %v", err)
	}
	if ratings["empathetic"] != 0 {
		t.Fatalf("positive pole = %v, want 0", ratings["empathetic"])
	}
	if math.Abs(ratings["unempathetic"]-0.25) > 1e-9 {
		t.Fatalf("negative pole = %v, want 0.25", ratings["unempathetic"])
	}
}

func TestRateTrait_ExactlyOnePoleNonZero(t *testing.T) {
	vec := newTestVector([]float32{1, 1}, 1.0, 1.0)

	for _, activation := range [][]float32{{1, 0}, {-1, 0}, {0.5, 0.5}} {
		ratings, err := RateTrait(activation, vec)
		if err != nil {
			t.Fatalf("rate trait: %v", err)
		}
		pos, neg := ratings["empathetic"], ratings["unempathetic"]
		if pos != 0 && neg != 0 {
			t.Fatalf("both poles non-zero: pos=%v neg=%v", pos, neg)
		}
	}
}

func TestRateAll_BuildsHierarchicalPayload(t *testing.T) {
	vectors := []domain.PersonaVector{
		newTestVector([]float32{1, 0}, 1.0, 1.0),
		{
			Trait:        "toxicity",
			PositivePole: "respectful",
			NegativePole: "toxic",
			Direction:    pgvector.NewVector([]float32{0, 1}),
			PosScale:     1.0,
			NegScale:     1.0,
		},
	}

	ratings, err := RateAll([]float32{1, -1}, vectors)
	if err != nil {
		t.Fatalf("rate all: %v", err)
	}
	if len(ratings) != 2 {
		t.Fatalf("expected 2 dimensions, got %d", len(ratings))
	}
	if ratings["empathy"]["empathetic"] <= 0 {
		t.Fatalf("expected positive empathy score, got %v", ratings["empathy"]["empathetic"])
	}
	if ratings["toxicity"]["toxic"] <= 0 {
		t.Fatalf("expected toxic score for negative projection, got %v", ratings["toxicity"]["toxic"])
	}
}
