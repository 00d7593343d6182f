package scan

import (
	"github.com/jmylchreest/tether/internal/catalog"
	"github.com/jmylchreest/tether/internal/design"
	"github.com/jmylchreest/tether/internal/matcher"
)

var paintSlots = []design.Slot{design.SlotFills, design.SlotStrokes}

// Colour reports every visible solid fill or stroke that is neither style
// nor variable bound, in pre-order with fills before strokes per node.
func Colour(roots []design.Node, paintStyles []catalog.PaintStyle, variables []catalog.ColourVariable) []Element {
	entries := catalog.ColourEntries(paintStyles, variables)
	elements := []Element{}

	for n := range design.Walk(roots) {
		paints, ok := design.PaintsOf(n)
		if !ok {
			continue
		}
		for _, slot := range paintSlots {
			for i, paint := range paints.Layers(slot) {
				if !paint.IsSolidVisible() || IsPaintBound(paints, slot, i) {
					continue
				}
				value := design.ColourFromHost(paint.Color)
				elements = append(elements, Element{
					ID:           n.ID(),
					Name:         n.Name(),
					Kind:         KindOf(slot),
					LayerPath:    LayerPath(n),
					CurrentValue: value,
					Suggestions:  matcher.Colour(value, entries),
					PaintIndex:   &i,
				})
			}
		}
	}
	return elements
}

// Typography reports every text node without a text style, in pre-order.
func Typography(roots []design.Node, textStyles []catalog.TextStyle) []Element {
	elements := []Element{}

	for n := range design.Walk(roots) {
		text, ok := design.TextOf(n)
		if !ok || text.Attrs.TextStyleID != "" {
			continue
		}
		value := text.Attrs.Typography()
		elements = append(elements, Element{
			ID:           n.ID(),
			Name:         n.Name(),
			Kind:         KindTypography,
			LayerPath:    LayerPath(n),
			CurrentValue: value,
			Suggestions:  matcher.Typography(value, textStyles),
		})
	}
	return elements
}
