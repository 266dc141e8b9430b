package sunburst

import "persona-study/internal/domain"

// Valores por defecto del layout.
const (
	DefaultWidth            = 480.0
	DefaultHeight           = 480.0
	DefaultGrowthMultiplier = 1.25
)

// Options configura un render. El motor nunca muta el valor recibido;
// los campos en cero toman los defaults documentados.
type Options struct {
	Width            float64
	Height           float64
	CenterLabel      string
	CenterSubLabel   string
	Animate          bool
	ShowLabels       bool
	ShowPercentages  bool
	GrowthMultiplier float64
	OppositeLayout   bool

	// Pairs declara los polos opuestos reconocidos. Se usa para el layout
	// opuesto y para resaltar el par en hover; no se deriva de los datos.
	Pairs []domain.TraitPair

	// Classifier permite reemplazar las heuristicas de DefaultClassifier.
	Classifier Classifier
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.GrowthMultiplier <= 0 {
		o.GrowthMultiplier = DefaultGrowthMultiplier
	}
	if o.Classifier == nil {
		o.Classifier = DefaultClassifier
	}
	return o
}
