package sunburst

import (
	"strings"

	"persona-study/internal/domain"
)

// Classifier asigna una categoria de polaridad a un nombre de rasgo.
// Es una estrategia: los callers pueden reemplazarla via Options sin tocar
// el motor. DefaultClassifier implementa las heuristicas estandar.
type Classifier func(name string) domain.Category

// Listas fijas de palabras clave. El orden de chequeo
// (neutral -> negativo -> positivo -> default positivo) es parte del
// contrato: un nombre que matchea varias listas resuelve por la primera.
var (
	neutralKeywords = []string{
		"funny", "serious", "casual", "formal",
	}

	negativeKeywords = []string{
		"toxic", "harmful", "rude", "sycophant", "deceptive",
		"hallucinat", "inaccurate",
	}

	negativePrefixes = []string{"un", "dis", "anti"}

	positiveKeywords = []string{
		"empath", "kind", "caring", "encourag", "support",
		"honest", "respectful", "accurate", "factual",
	}
)

// DefaultClassifier clasifica por substrings sobre el nombre en minusculas.
// Nombres que no matchean ninguna lista caen en Positive.
func DefaultClassifier(name string) domain.Category {
	n := strings.ToLower(strings.TrimSpace(name))

	for _, kw := range neutralKeywords {
		if strings.Contains(n, kw) {
			return domain.CategoryNeutral
		}
	}
	for _, kw := range negativeKeywords {
		if strings.Contains(n, kw) {
			return domain.CategoryNegative
		}
	}
	for _, prefix := range negativePrefixes {
		if strings.HasPrefix(n, prefix) {
			return domain.CategoryNegative
		}
	}
	for _, kw := range positiveKeywords {
		if strings.Contains(n, kw) {
			return domain.CategoryPositive
		}
	}
	return domain.CategoryPositive
}
