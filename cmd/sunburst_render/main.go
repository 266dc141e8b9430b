package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"persona-study/internal/domain"
	"persona-study/internal/sunburst"
)

// Genera el SVG del sunburst a partir de un archivo JSON de ratings
// (el payload jerarquico del servicio de scoring). Pensado para producir
// figuras offline a partir de snapshots exportados.
func main() {
	var (
		inPath      = flag.String("in", "", "archivo JSON de ratings (default: stdin)")
		outPath     = flag.String("out", "", "archivo SVG de salida (default: stdout)")
		layout      = flag.String("layout", "mirrored", "layout: mirrored u opposite")
		width       = flag.Float64("width", 0, "ancho en px (0 = default)")
		height      = flag.Float64("height", 0, "alto en px (0 = default)")
		labels      = flag.Bool("labels", true, "mostrar etiquetas de rasgos")
		percentages = flag.Bool("percentages", false, "mostrar porcentajes")
		label       = flag.String("label", "", "rotulo central")
		sublabel    = flag.String("sublabel", "", "rotulo central secundario")
		pairsPath   = flag.String("pairs", "", "archivo JSON con pares de polos opuestos")
	)
	flag.Parse()

	ratings, err := readRatings(*inPath)
	if err != nil {
		log.Fatalf("leer ratings: %v", err)
	}

	var pairs []domain.TraitPair
	if *pairsPath != "" {
		raw, err := os.ReadFile(*pairsPath)
		if err != nil {
			log.Fatalf("leer pares: %v", err)
		}
		if err := json.Unmarshal(raw, &pairs); err != nil {
			log.Fatalf("parsear pares: %v", err)
		}
	}

	opts := sunburst.Options{
		Width:           *width,
		Height:          *height,
		CenterLabel:     *label,
		CenterSubLabel:  *sublabel,
		ShowLabels:      *labels,
		ShowPercentages: *percentages,
		OppositeLayout:  *layout == "opposite",
		Pairs:           pairs,
	}

	chart := sunburst.Build(ratings.Flatten(pairs), opts)
	for _, warning := range chart.Warnings {
		fmt.Fprintf(os.Stderr, "advertencia: %s: %s\n", warning.Dimension, warning.Reason)
	}

	out := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			log.Fatalf("crear salida: %v", err)
		}
		defer f.Close()
		out = f
	}

	if err := chart.WriteSVG(out); err != nil {
		log.Fatalf("escribir svg: %v", err)
	}
}

func readRatings(path string) (domain.PersonaRatings, error) {
	var raw []byte
	var err error
	if path == "" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	var ratings domain.PersonaRatings
	if err := json.Unmarshal(raw, &ratings); err != nil {
		return nil, err
	}
	if len(ratings) == 0 {
		return nil, fmt.Errorf("ratings vacios")
	}
	return ratings, nil
}
