package domain

import (
	"time"

	pgvector "github.com/pgvector/pgvector-go"
)

// PersonaVector guarda la direccion de un rasgo en el espacio de
// activaciones del modelo, junto con los factores de escala usados para
// normalizar la proyeccion de un prompt sobre esa direccion.
type PersonaVector struct {
	Trait        string          `json:"trait"`
	PositivePole string          `json:"positive_pole"`
	NegativePole string          `json:"negative_pole"`
	Direction    pgvector.Vector `json:"direction"`
	PosScale     float64         `json:"pos_scale"`
	NegScale     float64         `json:"neg_scale"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Pair devuelve el par de rasgos declarado por este vector.
func (v PersonaVector) Pair() TraitPair {
	return TraitPair{
		Dimension: v.Trait,
		Positive:  v.PositivePole,
		Negative:  v.NegativePole,
	}
}
