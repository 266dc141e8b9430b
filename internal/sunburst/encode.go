package sunburst

import colorful "github.com/lucasb-eyer/go-colorful"

// minLightness es la luminosidad a activacion cero (casi blanco). A valor 1
// el color llega a la luminosidad base de la categoria.
const minLightness = 0.92

// encodeRadius convierte la activacion en extension radial lineal:
// extension = value * growth * (max - middle). Sin raiz, sin piso y sin
// clamping: un valor fuera de [0,1] produce geometria fuera de rango y eso
// es responsabilidad del caller.
func encodeRadius(value, middleRadius, maxOuterRadius, growthMultiplier float64) float64 {
	return middleRadius + value*growthMultiplier*(maxOuterRadius-middleRadius)
}

// encodeColor interpola solo la luminosidad en espacio HSL entre
// minLightness (valor 0) y la luminosidad base de la categoria (valor 1).
// Tono y saturacion no cambian.
func encodeColor(base colorful.Color, value float64) string {
	h, s, l := base.Hsl()
	lightness := minLightness - value*(minLightness-l)
	return colorful.Hsl(h, s, lightness).Hex()
}
