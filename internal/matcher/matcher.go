// Package matcher ranks catalog entries as binding candidates for a literal
// colour or typography value.
//
// Exact matches are returned without a cap because every one of them is an
// equally valid binding. Otherwise the closest entries are scored, sorted and
// pruned to at most MaxSuggestions above a confidence floor.
package matcher

import (
	"github.com/jmylchreest/tether/internal/catalog"
	"github.com/jmylchreest/tether/internal/design"
)

// MatchType classifies a suggestion.
type MatchType string

// Match types.
const (
	MatchExact   MatchType = "exact"
	MatchClosest MatchType = "closest"
)

// MaxSuggestions caps the number of closest-match suggestions.
const MaxSuggestions = 3

// ExactConfidence is the confidence of every exact match.
const ExactConfidence = 100

// Suggestion is one candidate binding for a literal value.
type Suggestion struct {
	StyleID    string       `json:"styleId"`
	StyleName  string       `json:"styleName"`
	MatchType  MatchType    `json:"matchType"`
	Confidence int          `json:"confidence"`
	StyleValue design.Value `json:"styleValue"`
}

// Match ranks the relevant part of the catalog against value. Colours are
// matched against paint styles followed by colour variables, typography
// against text styles.
func Match(value design.Value, cat *catalog.Catalog) []Suggestion {
	switch v := value.(type) {
	case design.Colour:
		return Colour(v, cat.ColourEntries())
	case design.Typography:
		return Typography(v, cat.TextStyles)
	default:
		return []Suggestion{}
	}
}
