package domain

import (
	"sort"
	"strings"
)

// Category agrupa un rasgo segun su polaridad.
type Category string

const (
	CategoryPositive Category = "POSITIVE"
	CategoryNegative Category = "NEGATIVE"
	CategoryNeutral  Category = "NEUTRAL"
)

// TraitRating es la unidad de entrada inmutable: nombre y activacion en [0,1].
type TraitRating struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// TraitPair declara dos rasgos como polos opuestos de una misma dimension.
// El conjunto de pares es configuracion, no se deriva de los datos.
type TraitPair struct {
	Dimension string `json:"dimension"`
	Positive  string `json:"positive"`
	Negative  string `json:"negative"`
}

// PersonaRatings es el payload jerarquico del servicio de scoring:
// dimension -> {nombre de polo -> valor}. Dentro de cada par se espera que
// solo un polo tenga valor distinto de cero (no se valida aqui).
type PersonaRatings map[string]map[string]float64

// CategoryInput es el payload pre-clasificado que omite el clasificador.
type CategoryInput struct {
	Name  string        `json:"name"`
	Color string        `json:"color"`
	Items []TraitRating `json:"items"`
}

// Flatten convierte el payload jerarquico en una secuencia determinista de
// ratings. Los pares declarados salen primero en su orden de declaracion
// (polo positivo y luego negativo); las dimensiones restantes se ordenan por
// nombre para que dos renders con el mismo payload produzcan el mismo layout.
func (r PersonaRatings) Flatten(pairs []TraitPair) []TraitRating {
	out := make([]TraitRating, 0, len(r)*2)
	seen := make(map[string]bool, len(r))

	for _, p := range pairs {
		poles, ok := r[p.Dimension]
		if !ok {
			continue
		}
		seen[p.Dimension] = true
		if v, ok := poles[p.Positive]; ok {
			out = append(out, TraitRating{Name: p.Positive, Value: v})
		}
		if v, ok := poles[p.Negative]; ok {
			out = append(out, TraitRating{Name: p.Negative, Value: v})
		}
	}

	rest := make([]string, 0, len(r))
	for dim := range r {
		if !seen[dim] {
			rest = append(rest, dim)
		}
	}
	sort.Strings(rest)
	for _, dim := range rest {
		names := make([]string, 0, len(r[dim]))
		for name := range r[dim] {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			out = append(out, TraitRating{Name: name, Value: r[dim][name]})
		}
	}
	return out
}

// OppositeOf devuelve el polo opuesto declarado para un rasgo, si existe.
func OppositeOf(pairs []TraitPair, name string) (string, bool) {
	for _, p := range pairs {
		if strings.EqualFold(p.Positive, name) {
			return p.Negative, true
		}
		if strings.EqualFold(p.Negative, name) {
			return p.Positive, true
		}
	}
	return "", false
}
