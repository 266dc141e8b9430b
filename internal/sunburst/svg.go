package sunburst

import (
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strings"
)

// fullCircleEpsilon evita paths degenerados cuando un span cubre el circulo
// completo (el punto inicial y final del arco coincidirian).
const fullCircleEpsilon = 1e-4

// WriteSVG emite el chart como SVG standalone: arco de categoria interior,
// anillo base y extension por rasgo, y opcionalmente etiquetas, porcentajes
// y rotulo central.
func (c *Chart) WriteSVG(w io.Writer) error {
	var b strings.Builder

	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`+"\n",
		fmtF(c.Opts.Width), fmtF(c.Opts.Height), fmtF(c.Opts.Width), fmtF(c.Opts.Height))

	for _, cat := range c.Categories {
		fmt.Fprintf(&b, `  <path d="%s" fill="%s" stroke="#ffffff" stroke-width="1"/>`+"\n",
			c.arcPath(c.hubRadius, c.ringInner, cat.StartAngle, cat.EndAngle),
			cat.BaseColor.Hex())
	}

	for _, item := range c.Items {
		outer := math.Max(item.OuterRadius, item.InnerRadius)
		fmt.Fprintf(&b, `  <path d="%s" fill="%s" stroke="#ffffff" stroke-width="1"/>`+"\n",
			c.arcPath(item.InnerRadius, outer, item.StartAngle, item.EndAngle),
			item.FillColor)
	}

	if c.Opts.ShowLabels || c.Opts.ShowPercentages {
		for _, item := range c.Items {
			c.writeItemLabel(&b, item)
		}
	}

	if c.Opts.CenterLabel != "" {
		fmt.Fprintf(&b, `  <text x="%s" y="%s" text-anchor="middle" font-size="14" fill="#333333">%s</text>`+"\n",
			fmtF(c.centerX), fmtF(c.centerY-4), escapeText(c.Opts.CenterLabel))
	}
	if c.Opts.CenterSubLabel != "" {
		fmt.Fprintf(&b, `  <text x="%s" y="%s" text-anchor="middle" font-size="10" fill="#777777">%s</text>`+"\n",
			fmtF(c.centerX), fmtF(c.centerY+12), escapeText(c.Opts.CenterSubLabel))
	}

	b.WriteString("</svg>\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func (c *Chart) writeItemLabel(b *strings.Builder, item TraitArc) {
	mid := (item.StartAngle + item.EndAngle) / 2
	labelRadius := c.maxOuterRadius + 2
	x, y := c.point(labelRadius, mid)

	anchor := "start"
	if mid > math.Pi {
		anchor = "end"
	}

	var parts []string
	if c.Opts.ShowLabels {
		parts = append(parts, escapeText(item.Name))
	}
	if c.Opts.ShowPercentages {
		parts = append(parts, fmt.Sprintf("%.0f%%", item.Value*100))
	}
	fmt.Fprintf(b, `  <text x="%s" y="%s" text-anchor="%s" font-size="9" fill="#555555">%s</text>`+"\n",
		fmtF(x), fmtF(y), anchor, strings.Join(parts, " "))
}

// arcPath construye el path de un segmento de donut entre dos radios y dos
// angulos (horario desde las 12).
func (c *Chart) arcPath(r0, r1, a0, a1 float64) string {
	if a1-a0 >= 2*math.Pi {
		a1 = a0 + 2*math.Pi - fullCircleEpsilon
	}
	largeArc := 0
	if a1-a0 > math.Pi {
		largeArc = 1
	}

	x0, y0 := c.point(r1, a0)
	x1, y1 := c.point(r1, a1)
	x2, y2 := c.point(r0, a1)
	x3, y3 := c.point(r0, a0)

	return fmt.Sprintf("M %s %s A %s %s 0 %d 1 %s %s L %s %s A %s %s 0 %d 0 %s %s Z",
		fmtF(x0), fmtF(y0),
		fmtF(r1), fmtF(r1), largeArc, fmtF(x1), fmtF(y1),
		fmtF(x2), fmtF(y2),
		fmtF(r0), fmtF(r0), largeArc, fmtF(x3), fmtF(y3))
}

// point convierte coordenadas polares (radio, angulo horario desde las 12)
// a cartesianas del SVG.
func (c *Chart) point(radius, angle float64) (float64, float64) {
	return c.centerX + radius*math.Sin(angle), c.centerY - radius*math.Cos(angle)
}

func fmtF(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}

func escapeText(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
