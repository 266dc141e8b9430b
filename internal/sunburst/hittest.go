package sunburst

import "math"

// HoverKind distingue que region del chart esta bajo el puntero.
type HoverKind int

const (
	HoverNone HoverKind = iota
	HoverTrait
	HoverCategory
)

// Hover describe el resultado de un hit-test. Para un rasgo incluye el polo
// opuesto declarado (si existe) para que la UI lo resalte con tratamiento
// distinto; para una categoria incluye recuento y promedio de sus items.
type Hover struct {
	Kind     HoverKind
	Trait    *TraitArc
	Opposite *TraitArc
	Category *CategoryArc
}

// HitTest resuelve coordenadas del surface a la region interactiva que las
// contiene. Las coordenadas son relativas al chart (mismo sistema que el
// SVG emitido).
func (c *Chart) HitTest(x, y float64) Hover {
	dx := x - c.centerX
	dy := y - c.centerY
	radius := math.Hypot(dx, dy)
	angle := normalizeAngle(math.Atan2(dx, -dy))

	// Anillo interior: region de categoria.
	if radius >= c.hubRadius && radius < c.ringInner {
		for i := range c.Categories {
			cat := &c.Categories[i]
			if angleWithin(angle, cat.StartAngle, cat.EndAngle) {
				return Hover{Kind: HoverCategory, Category: cat}
			}
		}
		return Hover{Kind: HoverNone}
	}

	// Arcos de rasgos: anillo base mas su extension.
	if radius >= c.ringInner {
		for i := range c.Items {
			item := &c.Items[i]
			outer := math.Max(item.OuterRadius, c.middleRadius)
			if radius > outer {
				continue
			}
			if angleWithin(angle, item.StartAngle, item.EndAngle) {
				return Hover{
					Kind:     HoverTrait,
					Trait:    item,
					Opposite: c.findItem(item.Opposite),
				}
			}
		}
	}

	return Hover{Kind: HoverNone}
}

func (c *Chart) findItem(name string) *TraitArc {
	if name == "" {
		return nil
	}
	for i := range c.Items {
		if c.Items[i].Name == name {
			return &c.Items[i]
		}
	}
	return nil
}

// normalizeAngle lleva un angulo a [0, 2pi).
func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

func angleWithin(a, start, end float64) bool {
	return a >= start && a < end
}
