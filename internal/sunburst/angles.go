package sunburst

import (
	"math"

	"persona-study/internal/domain"
)

// layoutMirrored reparte los spans en proporcion al numero de items de cada
// grupo y los coloca de forma consecutiva desde las 12 en sentido horario,
// en orden de declaracion (Positive, Neutral, Negative). La union de spans
// cubre exactamente [0, 2pi): un grupo vacio ocupa span cero y no deja
// hueco. Con recuentos positivos y negativos iguales (lo que garantiza un
// payload armado por pares) el grupo neutral queda centrado en las 6 y los
// lados positivo y negativo quedan espejados respecto del eje vertical.
func (c *Chart) layoutMirrored(groups []categoryGroup, opts Options) {
	total := 0
	for _, g := range groups {
		total += len(g.items)
	}
	if total == 0 {
		return
	}

	cursor := 0.0
	for _, g := range groups {
		if len(g.items) == 0 {
			continue
		}
		span := float64(len(g.items)) / float64(total) * 2 * math.Pi
		start, end := cursor, cursor+span
		cursor = end

		c.Categories = append(c.Categories, CategoryArc{
			Category:   g.category,
			Name:       g.name,
			BaseColor:  g.base,
			StartAngle: start,
			EndAngle:   end,
			ItemCount:  len(g.items),
			MeanValue:  meanValue(g.items),
		})

		itemSpan := span / float64(len(g.items))
		for i, item := range g.items {
			var a0, a1 float64
			if g.category == domain.CategoryNegative {
				// El lado negativo se puebla en sentido antihorario desde
				// las 12: el primer item queda pegado al tope, espejando al
				// primer item positivo del otro lado.
				a1 = end - float64(i)*itemSpan
				a0 = a1 - itemSpan
			} else {
				a0 = start + float64(i)*itemSpan
				a1 = a0 + itemSpan
			}
			c.appendItem(item, g.category, g.base, a0, a1, opts)
		}
	}
}

// layoutOpposite fija la mitad derecha [0, pi) para Positive y la izquierda
// [pi, 2pi) para Negative, y coloca los miembros de cada par declarado en
// offsets iguales dentro de su mitad, de modo que los puntos medios de los
// dos polos queden exactamente a pi radianes. Los items sin par se anexan
// despues de los slots de pares, en orden de entrada.
func (c *Chart) layoutOpposite(groups []categoryGroup, opts Options) {
	if len(groups) != 2 {
		return
	}
	right, left := groups[0], groups[1]
	if len(right.items)+len(left.items) == 0 {
		return
	}

	rightItems := orderByPairSlots(right.items, opts.Pairs, true)
	leftItems := orderByPairSlots(left.items, opts.Pairs, false)

	// Con ambas mitades pobladas cada una ocupa pi exacto; si una queda
	// vacia, la otra absorbe el circulo completo para no dejar huecos.
	boundary := math.Pi
	if len(leftItems) == 0 {
		boundary = 2 * math.Pi
	}
	if len(rightItems) == 0 {
		boundary = 0
	}

	if len(rightItems) > 0 {
		c.Categories = append(c.Categories, CategoryArc{
			Category:   right.category,
			Name:       right.name,
			BaseColor:  right.base,
			StartAngle: 0,
			EndAngle:   boundary,
			ItemCount:  len(rightItems),
			MeanValue:  meanValue(rightItems),
		})
		itemSpan := boundary / float64(len(rightItems))
		for i, item := range rightItems {
			a0 := float64(i) * itemSpan
			c.appendItem(item, right.category, right.base, a0, a0+itemSpan, opts)
		}
	}

	if len(leftItems) > 0 {
		c.Categories = append(c.Categories, CategoryArc{
			Category:   left.category,
			Name:       left.name,
			BaseColor:  left.base,
			StartAngle: boundary,
			EndAngle:   2 * math.Pi,
			ItemCount:  len(leftItems),
			MeanValue:  meanValue(leftItems),
		})
		itemSpan := (2*math.Pi - boundary) / float64(len(leftItems))
		for i, item := range leftItems {
			a0 := boundary + float64(i)*itemSpan
			c.appendItem(item, left.category, left.base, a0, a0+itemSpan, opts)
		}
	}
}

// orderByPairSlots ordena los items de una mitad para que el miembro del
// par k ocupe el slot k en ambas mitades: primero los polos emparejados en
// orden de declaracion de pares, luego el resto en orden de entrada.
func orderByPairSlots(items []domain.TraitRating, pairs []domain.TraitPair, positiveSide bool) []domain.TraitRating {
	byName := make(map[string]int, len(items))
	for i, it := range items {
		byName[it.Name] = i
	}

	used := make(map[string]bool, len(items))
	out := make([]domain.TraitRating, 0, len(items))
	for _, p := range pairs {
		pole := p.Negative
		if positiveSide {
			pole = p.Positive
		}
		if idx, ok := byName[pole]; ok && !used[pole] {
			out = append(out, items[idx])
			used[pole] = true
		}
	}
	for _, it := range items {
		if !used[it.Name] {
			out = append(out, it)
		}
	}
	return out
}
