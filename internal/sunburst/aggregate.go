package sunburst

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"persona-study/internal/domain"
)

// Colores base por polaridad. Solo la luminosidad varia al codificar el
// valor; tono y saturacion quedan fijos (ver encode.go).
var (
	positiveBaseColor = colorful.Hsl(122, 0.45, 0.38)
	negativeBaseColor = colorful.Hsl(4, 0.62, 0.44)
	neutralBaseColor  = colorful.Hsl(0, 0.0, 0.52)
)

// categoryGroup es el agregado intermedio previo al layout angular.
type categoryGroup struct {
	category domain.Category
	name     string
	base     colorful.Color
	items    []domain.TraitRating
}

// aggregate clasifica cada rating una sola vez y lo anexa a su grupo en
// orden de entrada. En modo espejado produce tres grupos (Positive,
// Neutral, Negative, en ese orden de declaracion); en modo opuesto dos,
// con los rasgos neutrales plegados en Positive.
func aggregate(ratings []domain.TraitRating, opts Options) ([]categoryGroup, []Warning) {
	positive := categoryGroup{category: domain.CategoryPositive, name: "Positive", base: positiveBaseColor}
	neutral := categoryGroup{category: domain.CategoryNeutral, name: "Neutral", base: neutralBaseColor}
	negative := categoryGroup{category: domain.CategoryNegative, name: "Negative", base: negativeBaseColor}

	for _, r := range ratings {
		switch opts.Classifier(r.Name) {
		case domain.CategoryNeutral:
			if opts.OppositeLayout {
				positive.items = append(positive.items, r)
			} else {
				neutral.items = append(neutral.items, r)
			}
		case domain.CategoryNegative:
			negative.items = append(negative.items, r)
		default:
			positive.items = append(positive.items, r)
		}
	}

	warnings := pairWarnings(ratings, opts.Pairs)

	if opts.OppositeLayout {
		return []categoryGroup{positive, negative}, warnings
	}
	return []categoryGroup{positive, neutral, negative}, warnings
}

// pairWarnings detecta pares declarados que violan el invariante "exactamente
// un polo distinto de cero". No repara ni rechaza: el render sigue igual.
func pairWarnings(ratings []domain.TraitRating, pairs []domain.TraitPair) []Warning {
	if len(pairs) == 0 {
		return nil
	}
	values := make(map[string]float64, len(ratings))
	present := make(map[string]bool, len(ratings))
	for _, r := range ratings {
		values[r.Name] = r.Value
		present[r.Name] = true
	}

	var warnings []Warning
	for _, p := range pairs {
		if !present[p.Positive] || !present[p.Negative] {
			continue
		}
		pos, neg := values[p.Positive], values[p.Negative]
		switch {
		case pos != 0 && neg != 0:
			warnings = append(warnings, Warning{
				Dimension: p.Dimension,
				Reason:    "both poles non-zero",
			})
		case pos == 0 && neg == 0:
			warnings = append(warnings, Warning{
				Dimension: p.Dimension,
				Reason:    "neither pole non-zero",
			})
		}
	}
	return warnings
}
