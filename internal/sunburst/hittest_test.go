package sunburst

import (
	"math"
	"testing"

	"persona-study/internal/domain"
)

func TestHitTest_TraitWithPairedOpposite(t *testing.T) {
	ratings, pairs := pairedRatings()
	chart := Build(ratings, Options{Pairs: pairs})

	var target TraitArc
	for _, item := range chart.Items {
		if item.Name == "empathetic" {
			target = item
		}
	}
	mid := (target.StartAngle + target.EndAngle) / 2
	x, y := chart.point((chart.ringInner+chart.middleRadius)/2, mid)

	hover := chart.HitTest(x, y)
	if hover.Kind != HoverTrait {
		t.Fatalf("expected trait hover, got %v", hover.Kind)
	}
	if hover.Trait.Name != "empathetic" {
		t.Fatalf("expected empathetic, got %s", hover.Trait.Name)
	}
	if hover.Opposite == nil || hover.Opposite.Name != "unempathetic" {
		t.Fatalf("expected paired opposite unempathetic, got %+v", hover.Opposite)
	}
}

func TestHitTest_ExtensionRegionCounts(t *testing.T) {
	ratings, pairs := pairedRatings()
	chart := Build(ratings, Options{Pairs: pairs})

	var target TraitArc
	for _, item := range chart.Items {
		if item.Name == "respectful" {
			target = item
		}
	}
	// Punto dentro de la extension radial (entre middle y outer).
	mid := (target.StartAngle + target.EndAngle) / 2
	x, y := chart.point((chart.middleRadius+target.OuterRadius)/2, mid)

	hover := chart.HitTest(x, y)
	if hover.Kind != HoverTrait || hover.Trait.Name != "respectful" {
		t.Fatalf("expected respectful in extension region, got %+v", hover)
	}
}

func TestHitTest_CategoryInnerRing(t *testing.T) {
	ratings, pairs := pairedRatings()
	chart := Build(ratings, Options{Pairs: pairs})

	var positive CategoryArc
	for _, cat := range chart.Categories {
		if cat.Category == domain.CategoryPositive {
			positive = cat
		}
	}
	mid := (positive.StartAngle + positive.EndAngle) / 2
	x, y := chart.point((chart.hubRadius+chart.ringInner)/2, mid)

	hover := chart.HitTest(x, y)
	if hover.Kind != HoverCategory {
		t.Fatalf("expected category hover, got %v", hover.Kind)
	}
	if hover.Category.ItemCount != 2 {
		t.Fatalf("expected 2 items in positive category, got %d", hover.Category.ItemCount)
	}
	wantMean := (0.8 + 0.9) / 2
	if math.Abs(hover.Category.MeanValue-wantMean) > 1e-9 {
		t.Fatalf("mean = %v, want %v", hover.Category.MeanValue, wantMean)
	}
}

func TestHitTest_OutsideChart(t *testing.T) {
	ratings, _ := pairedRatings()
	chart := Build(ratings, Options{})

	if hover := chart.HitTest(-50, -50); hover.Kind != HoverNone {
		t.Fatalf("expected no hover outside chart, got %v", hover.Kind)
	}
	// Centro del hub: tampoco es interactivo.
	if hover := chart.HitTest(chart.centerX, chart.centerY); hover.Kind != HoverNone {
		t.Fatalf("expected no hover at hub center, got %v", hover.Kind)
	}
}
