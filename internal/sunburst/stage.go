package sunburst

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"persona-study/internal/domain"
)

// tooltipOffset separa el tooltip del borde derecho del contenedor.
const tooltipOffset = 12.0

// Bounds es la caja del contenedor dentro del surface anfitrion.
type Bounds struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Stage es el registro de puntos de montaje del surface de render. Montar
// sobre un id inexistente es un error fatal de construccion.
type Stage struct {
	mu         sync.Mutex
	containers map[string]*Container
}

func NewStage() *Stage {
	return &Stage{containers: make(map[string]*Container)}
}

// AddContainer registra un punto de montaje con su caja.
func (s *Stage) AddContainer(id string, bounds Bounds) *Container {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := &Container{id: id, bounds: bounds}
	s.containers[id] = c
	return c
}

// Lookup busca un punto de montaje registrado.
func (s *Stage) Lookup(id string) (*Container, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.containers[id]
	return c, ok
}

// Container es un punto de montaje; sostiene a lo sumo una vista renderizada.
type Container struct {
	mu     sync.Mutex
	id     string
	bounds Bounds
	view   *View
}

// View devuelve la vista montada actualmente, o nil.
func (c *Container) View() *View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

func (c *Container) attach(v *View) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view = v
}

func (c *Container) detach(v *View) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.view == v {
		c.view = nil
	}
}

// Render construye el chart y lo monta en el contenedor indicado,
// reemplazando cualquier vista previa (recalculo completo, sin diffing).
// Devuelve la funcion de teardown; llamarla mas de una vez es un no-op.
func (s *Stage) Render(ratings []domain.TraitRating, containerID string, opts Options) (func(), error) {
	s.mu.Lock()
	container, ok := s.containers[containerID]
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("sunburst: container %q not found", containerID)
	}

	view := &View{
		chart:     Build(ratings, opts),
		container: container,
	}
	container.attach(view)

	var once sync.Once
	teardown := func() {
		once.Do(func() {
			view.clearTooltip()
			container.detach(view)
		})
	}
	return teardown, nil
}

// Tooltip es el estado presentacional del hover. No persiste entre renders.
type Tooltip struct {
	Visible bool
	X       float64
	Y       float64
	Text    string
}

// View liga un chart montado con su estado de interaccion.
type View struct {
	mu        sync.Mutex
	chart     *Chart
	container *Container
	tooltip   Tooltip
}

// Chart expone el chart inmutable de la vista.
func (v *View) Chart() *Chart { return v.chart }

// Tooltip devuelve el estado actual del tooltip.
func (v *View) Tooltip() Tooltip {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.tooltip
}

// PointerMove procesa movimiento del puntero en coordenadas del contenedor:
// actualiza el tooltip segun la region bajo el cursor y devuelve el hover
// resuelto. Salir de toda region interactiva limpia el tooltip.
func (v *View) PointerMove(x, y float64) Hover {
	hover := v.chart.HitTest(x, y)

	v.mu.Lock()
	defer v.mu.Unlock()
	switch hover.Kind {
	case HoverTrait:
		v.tooltip = v.tooltipAt(traitTooltipText(hover.Trait))
	case HoverCategory:
		v.tooltip = v.tooltipAt(categoryTooltipText(hover.Category))
	default:
		v.tooltip = Tooltip{}
	}
	return hover
}

// PointerLeave limpia el tooltip.
func (v *View) PointerLeave() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.tooltip = Tooltip{}
}

func (v *View) clearTooltip() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.tooltip = Tooltip{}
}

// tooltipAt posiciona el tooltip con offset fijo a la derecha de la caja
// del contenedor.
func (v *View) tooltipAt(text string) Tooltip {
	b := v.container.bounds
	return Tooltip{
		Visible: true,
		X:       b.X + b.Width + tooltipOffset,
		Y:       b.Y,
		Text:    text,
	}
}

func traitTooltipText(t *TraitArc) string {
	return fmt.Sprintf("%s: %s", t.Name, formatValue(t.Value))
}

func categoryTooltipText(c *CategoryArc) string {
	return fmt.Sprintf("%s: %d traits, mean %s", c.Name, c.ItemCount, formatValue(c.MeanValue))
}

func formatValue(v float64) string {
	return strings.TrimRight(strings.TrimRight(strconv.FormatFloat(v, 'f', 2, 64), "0"), ".")
}
