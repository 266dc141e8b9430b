package sunburst

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"persona-study/internal/domain"
)

// Proporciones radiales del donut respecto del radio maximo disponible.
// hubShare delimita la region central de categoria; entre ringInnerShare y
// middleShare vive el anillo base de cada rasgo; la extension por activacion
// crece desde middleShare hacia afuera.
const (
	hubShare       = 0.18
	ringInnerShare = 0.35
	middleShare    = 0.55
	radiusPadding  = 8.0
)

// CategoryArc es una categoria ya agregada con su rango angular asignado.
// Los angulos se miden en radianes, en sentido horario desde las 12.
type CategoryArc struct {
	Category   domain.Category
	Name       string
	BaseColor  colorful.Color
	StartAngle float64
	EndAngle   float64
	ItemCount  int
	MeanValue  float64
}

// TraitArc es el artefacto terminal por rasgo que consume el renderer.
type TraitArc struct {
	Name        string
	Value       float64
	Category    domain.Category
	InnerRadius float64
	OuterRadius float64
	StartAngle  float64
	EndAngle    float64
	FillColor   string
	// Opposite es el polo opuesto declarado, vacio si el rasgo no esta en
	// ningun par.
	Opposite string
}

// Warning reporta una violacion del invariante de pares (ambos polos con
// valor, o ninguno). El motor renderiza igual; avisar es todo lo que hace.
type Warning struct {
	Dimension string
	Reason    string
}

// Chart es el resultado de un build: puro, inmutable y descartable.
// Cada invocacion recalcula todo desde cero.
type Chart struct {
	Opts       Options
	Categories []CategoryArc
	Items      []TraitArc
	Warnings   []Warning

	centerX        float64
	centerY        float64
	hubRadius      float64
	ringInner      float64
	middleRadius   float64
	maxOuterRadius float64
}

// MiddleRadius expone el borde del anillo base (donde termina un rasgo con
// activacion cero).
func (c *Chart) MiddleRadius() float64 { return c.middleRadius }

// MaxOuterRadius expone el radio que alcanza un rasgo con valor 1 y
// multiplicador 1.
func (c *Chart) MaxOuterRadius() float64 { return c.maxOuterRadius }

// Build clasifica, agrega y posiciona los ratings en un chart completo.
// Es una funcion pura de (ratings, opts): sin estado compartido entre
// llamadas y sin IO.
func Build(ratings []domain.TraitRating, opts Options) *Chart {
	opts = opts.withDefaults()
	c := newChartFrame(opts)

	groups, warnings := aggregate(ratings, opts)
	c.Warnings = warnings
	c.layoutGroups(groups, opts)
	return c
}

// BuildFromCategories acepta el payload pre-clasificado y omite el
// clasificador por completo: cada entrada ya trae nombre, color e items.
func BuildFromCategories(inputs []domain.CategoryInput, opts Options) *Chart {
	opts = opts.withDefaults()
	c := newChartFrame(opts)

	groups := make([]categoryGroup, 0, len(inputs))
	for _, in := range inputs {
		base, err := colorful.Hex(in.Color)
		if err != nil {
			base = neutralBaseColor
		}
		groups = append(groups, categoryGroup{
			name:  in.Name,
			base:  base,
			items: in.Items,
		})
	}
	c.layoutGroups(groups, opts)
	return c
}

func newChartFrame(opts Options) *Chart {
	maxOuter := math.Min(opts.Width, opts.Height)/2 - radiusPadding
	if maxOuter < 0 {
		maxOuter = 0
	}
	return &Chart{
		Opts:           opts,
		centerX:        opts.Width / 2,
		centerY:        opts.Height / 2,
		hubRadius:      maxOuter * hubShare,
		ringInner:      maxOuter * ringInnerShare,
		middleRadius:   maxOuter * middleShare,
		maxOuterRadius: maxOuter,
	}
}

// layoutGroups reparte los spans angulares y materializa los arcos.
func (c *Chart) layoutGroups(groups []categoryGroup, opts Options) {
	if opts.OppositeLayout {
		c.layoutOpposite(groups, opts)
		return
	}
	c.layoutMirrored(groups, opts)
}

func (c *Chart) appendItem(r domain.TraitRating, cat domain.Category, base colorful.Color, start, end float64, opts Options) {
	opposite, _ := domain.OppositeOf(opts.Pairs, r.Name)
	c.Items = append(c.Items, TraitArc{
		Name:        r.Name,
		Value:       r.Value,
		Category:    cat,
		InnerRadius: c.ringInner,
		OuterRadius: encodeRadius(r.Value, c.middleRadius, c.maxOuterRadius, opts.GrowthMultiplier),
		StartAngle:  start,
		EndAngle:    end,
		FillColor:   encodeColor(base, r.Value),
		Opposite:    opposite,
	})
}

func meanValue(items []domain.TraitRating) float64 {
	if len(items) == 0 {
		return 0
	}
	var sum float64
	for _, it := range items {
		sum += it.Value
	}
	return sum / float64(len(items))
}
