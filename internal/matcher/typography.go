package matcher

import (
	"cmp"
	"math"
	"slices"

	"github.com/jmylchreest/tether/internal/catalog"
	"github.com/jmylchreest/tether/internal/design"
)

// Attribute weights of the typography score. They sum to totalWeight.
const (
	familyWeight        = 50.0
	sizeWeight          = 20.0
	weightWeight        = 15.0
	lineHeightWeight    = 10.0
	letterSpacingWeight = 5.0

	totalWeight = familyWeight + sizeWeight + weightWeight + lineHeightWeight + letterSpacingWeight

	// measureTolerance is the largest line height or letter spacing
	// difference still treated as equal.
	measureTolerance = 0.1

	// sizeGrace is the font size difference that still earns full credit.
	sizeGrace = 2.0

	// TypographyConfidenceFloor is exclusive: closest matches must score above it.
	TypographyConfidenceFloor = 20
)

// TypographyEqual reports whether two typographies are an exact match.
func TypographyEqual(a, b design.Typography) bool {
	return a.FontFamily == b.FontFamily &&
		a.FontSize == b.FontSize &&
		a.FontWeight == b.FontWeight &&
		math.Abs(a.LineHeight.Scalar()-b.LineHeight.Scalar()) < measureTolerance &&
		math.Abs(a.LetterSpacing.Scalar()-b.LetterSpacing.Scalar()) < measureTolerance
}

// TypographyScore is the weighted 0-100 similarity of two typographies.
func TypographyScore(a, b design.Typography) float64 {
	score := 0.0

	if a.FontFamily == b.FontFamily {
		score += familyWeight
	}

	sizeDiff := math.Abs(a.FontSize - b.FontSize)
	if sizeDiff <= sizeGrace {
		score += sizeWeight
	} else {
		score += math.Max(0, sizeWeight-(sizeDiff-sizeGrace)*2)
	}

	weightDiff := math.Abs(float64(a.FontWeight - b.FontWeight))
	if weightDiff <= 100 {
		score += weightWeight - (weightDiff/100)*5
	} else {
		score += math.Max(0, 10-(weightDiff-100)/100)
	}

	lhDiff := math.Abs(a.LineHeight.Scalar() - b.LineHeight.Scalar())
	if lhDiff < measureTolerance {
		score += lineHeightWeight
	} else {
		score += math.Max(0, lineHeightWeight-lhDiff/2)
	}

	if math.Abs(a.LetterSpacing.Scalar()-b.LetterSpacing.Scalar()) < measureTolerance {
		score += letterSpacingWeight
	}

	return score * 100 / totalWeight
}

// Typography ranks text styles against value.
func Typography(value design.Typography, styles []catalog.TextStyle) []Suggestion {
	suggestions := make([]Suggestion, 0, MaxSuggestions)

	for _, s := range styles {
		if TypographyEqual(value, s.Typography) {
			suggestions = append(suggestions, typographySuggestion(s, MatchExact, ExactConfidence))
		}
	}
	if len(suggestions) > 0 {
		return suggestions
	}

	type ranked struct {
		style catalog.TextStyle
		score float64
	}
	candidates := make([]ranked, len(styles))
	for i, s := range styles {
		candidates[i] = ranked{style: s, score: TypographyScore(value, s.Typography)}
	}
	slices.SortStableFunc(candidates, func(a, b ranked) int {
		return cmp.Compare(b.score, a.score)
	})

	for _, c := range candidates[:min(MaxSuggestions, len(candidates))] {
		if c.score > TypographyConfidenceFloor {
			suggestions = append(suggestions, typographySuggestion(c.style, MatchClosest, int(math.Round(c.score))))
		}
	}
	return suggestions
}

func typographySuggestion(s catalog.TextStyle, kind MatchType, confidence int) Suggestion {
	return Suggestion{
		StyleID:    s.ID,
		StyleName:  s.Name,
		MatchType:  kind,
		Confidence: confidence,
		StyleValue: s.Typography,
	}
}
