package persona

import (
	"fmt"
	"math"

	"persona-study/internal/domain"
)

// Projection calcula la magnitud escalar de proyectar la activacion de un
// prompt sobre la direccion de un rasgo: (a . b) / sqrt(b . b). Devuelve
// error si las dimensiones no coinciden.
func Projection(activation, direction []float32) (float64, error) {
	if len(activation) != len(direction) {
		return 0, fmt.Errorf("vector dimensions mismatch: %d != %d", len(activation), len(direction))
	}

	var dot, normSq float64
	for i := range activation {
		dot += float64(activation[i]) * float64(direction[i])
		normSq += float64(direction[i]) * float64(direction[i])
	}
	if normSq == 0 {
		return 0, fmt.Errorf("zero direction vector")
	}
	return dot / math.Sqrt(normSq), nil
}

// RateTrait convierte la activacion de un prompt en el rating del par de un
// rasgo: proyecta sobre la direccion, normaliza por la norma de la
// direccion y reescala con el factor del lado que gano. El polo ganador
// recibe el score acotado a 1.0 y el opuesto queda en 0.
func RateTrait(activation []float32, vec domain.PersonaVector) (map[string]float64, error) {
	projection, err := Projection(activation, vec.Direction.Slice())
	if err != nil {
		return nil, fmt.Errorf("project %s: %w", vec.Trait, err)
	}

	var norm float64
	for _, v := range vec.Direction.Slice() {
		norm += float64(v) * float64(v)
	}
	normalized := projection / math.Sqrt(norm)

	ratings := make(map[string]float64, 2)
	if normalized > 0 {
		scaled := normalized
		if vec.PosScale > 0 {
			scaled = normalized / vec.PosScale
		}
		ratings[vec.PositivePole] = math.Min(scaled, 1.0)
		ratings[vec.NegativePole] = 0
	} else {
		scaled := -normalized
		if vec.NegScale > 0 {
			scaled = normalized / -vec.NegScale
		}
		ratings[vec.PositivePole] = 0
		ratings[vec.NegativePole] = math.Min(scaled, 1.0)
	}
	return ratings, nil
}

// RateAll aplica RateTrait sobre todos los vectores almacenados y arma el
// payload jerarquico que consume el sunburst.
func RateAll(activation []float32, vectors []domain.PersonaVector) (domain.PersonaRatings, error) {
	out := make(domain.PersonaRatings, len(vectors))
	for _, vec := range vectors {
		ratings, err := RateTrait(activation, vec)
		if err != nil {
			return nil, err
		}
		out[vec.Trait] = ratings
	}
	return out, nil
}
