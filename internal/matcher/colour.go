package matcher

import (
	"cmp"
	"math"
	"slices"

	"github.com/jmylchreest/tether/internal/catalog"
	"github.com/jmylchreest/tether/internal/design"
)

const (
	// alphaTolerance is the largest alpha difference still treated as equal.
	alphaTolerance = 0.01

	// MaxColourDistance is the largest possible distance in RGBA space,
	// sqrt(255² · 4).
	MaxColourDistance = 510.0

	// ColourConfidenceFloor is exclusive: closest matches must score above it.
	ColourConfidenceFloor = 50
)

// ColoursEqual reports whether two colours are an exact match: identical
// channels and alpha within 0.01.
func ColoursEqual(a, b design.Colour) bool {
	return a.R == b.R && a.G == b.G && a.B == b.B && math.Abs(a.A-b.A) < alphaTolerance
}

// Distance is the Euclidean distance between two colours over (r, g, b, a·255).
func Distance(a, b design.Colour) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	da := (a.A - b.A) * 255
	return math.Sqrt(dr*dr + dg*dg + db*db + da*da)
}

// ColourConfidence maps a distance to a 0-100 confidence.
func ColourConfidence(distance float64) int {
	return max(0, int(math.Round((1-distance/MaxColourDistance)*100)))
}

// Colour ranks colour entries against value.
func Colour(value design.Colour, entries []catalog.ColourEntry) []Suggestion {
	suggestions := make([]Suggestion, 0, MaxSuggestions)

	for _, e := range entries {
		if ColoursEqual(value, e.Colour) {
			suggestions = append(suggestions, colourSuggestion(e, MatchExact, ExactConfidence))
		}
	}
	if len(suggestions) > 0 {
		return suggestions
	}

	type ranked struct {
		entry    catalog.ColourEntry
		distance float64
	}
	candidates := make([]ranked, len(entries))
	for i, e := range entries {
		candidates[i] = ranked{entry: e, distance: Distance(value, e.Colour)}
	}
	slices.SortStableFunc(candidates, func(a, b ranked) int {
		return cmp.Compare(a.distance, b.distance)
	})

	for _, c := range candidates[:min(MaxSuggestions, len(candidates))] {
		confidence := ColourConfidence(c.distance)
		if confidence > ColourConfidenceFloor {
			suggestions = append(suggestions, colourSuggestion(c.entry, MatchClosest, confidence))
		}
	}
	return suggestions
}

func colourSuggestion(e catalog.ColourEntry, kind MatchType, confidence int) Suggestion {
	return Suggestion{
		StyleID:    e.ID,
		StyleName:  e.Name,
		MatchType:  kind,
		Confidence: confidence,
		StyleValue: e.Colour,
	}
}
