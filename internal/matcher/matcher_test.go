package matcher

import (
	"encoding/json"
	"slices"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/jmylchreest/tether/internal/catalog"
	"github.com/jmylchreest/tether/internal/design"
)

func entry(id, name string, r, g, b uint8, a float64) catalog.ColourEntry {
	return catalog.ColourEntry{ID: id, Name: name, Colour: design.Colour{R: r, G: g, B: b, A: a}, Source: catalog.SourcePaintStyle}
}

func TestColourExact(t *testing.T) {
	entries := []catalog.ColourEntry{entry("s1", "Primary", 255, 0, 0, 1)}

	got := Colour(design.Colour{R: 255, A: 1}, entries)
	if len(got) != 1 {
		t.Fatalf("Colour() len = %d, want 1", len(got))
	}
	if got[0].StyleID != "s1" || got[0].MatchType != MatchExact || got[0].Confidence != 100 {
		t.Errorf("Colour() = %+v", got[0])
	}
}

func TestColourClosest(t *testing.T) {
	entries := []catalog.ColourEntry{entry("s1", "Primary", 255, 0, 0, 1)}

	got := Colour(design.Colour{R: 250, G: 10, B: 5, A: 1}, entries)
	if len(got) != 1 {
		t.Fatalf("Colour() len = %d, want 1", len(got))
	}
	if got[0].MatchType != MatchClosest || got[0].Confidence != 98 {
		t.Errorf("Colour() = %+v, want closest at 98", got[0])
	}
}

func TestColourExactMatchesAreUncapped(t *testing.T) {
	var entries []catalog.ColourEntry
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		entries = append(entries, entry(id, id, 10, 20, 30, 1))
	}
	entries = append(entries, entry("near", "near", 10, 20, 31, 1))

	got := Colour(design.Colour{R: 10, G: 20, B: 30, A: 0.995}, entries)
	if len(got) != 5 {
		t.Fatalf("Colour() len = %d, want all 5 exact matches", len(got))
	}
	for i, s := range got {
		if s.MatchType != MatchExact || s.StyleID != entries[i].ID {
			t.Errorf("suggestion %d = %+v, want exact %s in catalog order", i, s, entries[i].ID)
		}
	}
}

func TestColourAlphaTolerance(t *testing.T) {
	tests := []struct {
		name  string
		alpha float64
		exact bool
	}{
		{"identical", 1, true},
		{"within tolerance", 0.995, true},
		{"outside tolerance", 0.98, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ColoursEqual(design.Colour{R: 1, G: 2, B: 3, A: 1}, design.Colour{R: 1, G: 2, B: 3, A: tt.alpha})
			if got != tt.exact {
				t.Errorf("ColoursEqual() = %v, want %v", got, tt.exact)
			}
		})
	}
}

func TestColourClosestFiltersAndCaps(t *testing.T) {
	entries := []catalog.ColourEntry{
		entry("white", "White", 255, 255, 255, 1),
		entry("far", "Far", 200, 200, 200, 1),
		entry("n1", "Near 1", 0, 0, 4, 1),
		entry("n2", "Near 2", 0, 0, 2, 1),
		entry("n3", "Near 3", 0, 0, 3, 1),
		entry("n4", "Near 4", 0, 0, 5, 1),
	}

	got := Colour(design.Colour{A: 1}, entries)
	ids := make([]string, len(got))
	for i, s := range got {
		ids[i] = s.StyleID
	}
	if want := []string{"n2", "n3", "n1"}; !slices.Equal(ids, want) {
		t.Errorf("Colour() ids = %v, want %v", ids, want)
	}
}

func TestColourNothingAboveFloor(t *testing.T) {
	entries := []catalog.ColourEntry{entry("white", "White", 255, 255, 255, 1)}

	got := Colour(design.Colour{A: 0}, entries)
	if got == nil || len(got) != 0 {
		t.Errorf("Colour() = %#v, want empty non-nil slice", got)
	}
}

func TestColourEmptyCatalog(t *testing.T) {
	got := Colour(design.Colour{A: 1}, nil)
	if got == nil || len(got) != 0 {
		t.Errorf("Colour() = %#v, want empty non-nil slice", got)
	}
}

func TestColourConfidence(t *testing.T) {
	tests := []struct {
		distance float64
		want     int
	}{
		{0, 100},
		{255, 50},
		{MaxColourDistance, 0},
		{1000, 0},
	}

	for _, tt := range tests {
		if got := ColourConfidence(tt.distance); got != tt.want {
			t.Errorf("ColourConfidence(%v) = %d, want %d", tt.distance, got, tt.want)
		}
	}
}

func TestColourProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	catalogGen := gen.SliceOf(entryGen())

	properties.Property("closest matches are sorted, capped and above the floor", prop.ForAll(
		func(value design.Colour, entries []catalog.ColourEntry) bool {
			for _, e := range entries {
				if ColoursEqual(value, e.Colour) {
					return true
				}
			}
			got := Colour(value, entries)
			if len(got) > MaxSuggestions {
				return false
			}
			for i, s := range got {
				if s.MatchType != MatchClosest || s.Confidence <= ColourConfidenceFloor {
					return false
				}
				if i > 0 && got[i-1].Confidence < s.Confidence {
					return false
				}
			}
			return true
		},
		colourGen(),
		catalogGen,
	))

	properties.Property("an exact entry yields only exact matches", prop.ForAll(
		func(value design.Colour, entries []catalog.ColourEntry, at int) bool {
			entries = slices.Insert(entries, at%(len(entries)+1), catalog.ColourEntry{ID: "exact", Colour: value})
			for _, s := range Colour(value, entries) {
				if s.MatchType != MatchExact || s.Confidence != ExactConfidence {
					return false
				}
			}
			return true
		},
		colourGen(),
		catalogGen,
		gen.IntRange(0, 8),
	))

	properties.Property("confidence does not increase with distance", prop.ForAll(
		func(d1, d2 float64) bool {
			if d1 > d2 {
				d1, d2 = d2, d1
			}
			return ColourConfidence(d1) >= ColourConfidence(d2)
		},
		gen.Float64Range(0, 2*MaxColourDistance),
		gen.Float64Range(0, 2*MaxColourDistance),
	))

	properties.TestingRun(t)
}

func entryGen() gopter.Gen {
	return gopter.CombineGens(gen.Identifier(), colourGen()).
		Map(func(values []any) catalog.ColourEntry {
			id := values[0].(string)
			return catalog.ColourEntry{ID: id, Name: id, Colour: values[1].(design.Colour), Source: catalog.SourceVariable}
		})
}

func colourGen() gopter.Gen {
	return gopter.CombineGens(gen.UInt8(), gen.UInt8(), gen.UInt8(), gen.Float64Range(0, 1)).
		Map(func(values []any) design.Colour {
			return design.Colour{
				R: values[0].(uint8),
				G: values[1].(uint8),
				B: values[2].(uint8),
				A: values[3].(float64),
			}
		})
}

func textStyle(id string, ty design.Typography) catalog.TextStyle {
	return catalog.TextStyle{ID: id, Name: id, Typography: ty}
}

func inter16() design.Typography {
	return design.Typography{
		FontFamily:    "Inter",
		FontSize:      16,
		FontWeight:    400,
		LineHeight:    design.Pixels(24),
		LetterSpacing: design.Pixels(0),
	}
}

func TestTypographyExact(t *testing.T) {
	near := inter16()
	near.LineHeight = design.Pixels(24.05)
	styles := []catalog.TextStyle{textStyle("body", inter16()), textStyle("body-alt", near)}

	got := Typography(inter16(), styles)
	if len(got) != 2 {
		t.Fatalf("Typography() len = %d, want 2", len(got))
	}
	for _, s := range got {
		if s.MatchType != MatchExact || s.Confidence != 100 {
			t.Errorf("suggestion = %+v, want exact", s)
		}
	}
}

func TestTypographyScore(t *testing.T) {
	base := inter16()

	tests := []struct {
		name   string
		mutate func(*design.Typography)
		want   float64
	}{
		{"identical", func(*design.Typography) {}, 100},
		{"size within grace", func(ty *design.Typography) { ty.FontSize = 17 }, 100},
		{"size beyond grace", func(ty *design.Typography) { ty.FontSize = 20 }, 96},
		{"family mismatch", func(ty *design.Typography) { ty.FontFamily = "Roboto" }, 50},
		{"weight 100 apart", func(ty *design.Typography) { ty.FontWeight = 500 }, 95},
		{"weight 300 apart", func(ty *design.Typography) { ty.FontWeight = 700 }, 93},
		{"line height 4 apart", func(ty *design.Typography) { ty.LineHeight = design.Pixels(28) }, 98},
		{"letter spacing", func(ty *design.Typography) { ty.LetterSpacing = design.Pixels(1) }, 95},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other := base
			tt.mutate(&other)
			if got := TypographyScore(base, other); got != tt.want {
				t.Errorf("TypographyScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTypographyOneUnitSizeDifference(t *testing.T) {
	larger := inter16()
	larger.FontSize = 17

	got := Typography(inter16(), []catalog.TextStyle{textStyle("body", larger)})
	if len(got) != 1 {
		t.Fatalf("Typography() len = %d, want 1", len(got))
	}
	if got[0].MatchType != MatchClosest || got[0].Confidence != 100 {
		t.Errorf("Typography() = %+v, want closest at 100", got[0])
	}
}

func TestTypographyFamilyMismatchCapsScore(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("family mismatch scores at most 50", prop.ForAll(
		func(size float64, weight int, lh float64) bool {
			other := design.Typography{
				FontFamily:    "Roboto",
				FontSize:      size,
				FontWeight:    weight * 100,
				LineHeight:    design.Pixels(lh),
				LetterSpacing: design.Pixels(0),
			}
			return TypographyScore(inter16(), other) <= 50
		},
		gen.Float64Range(1, 200),
		gen.IntRange(1, 9),
		gen.Float64Range(0, 100),
	))

	properties.TestingRun(t)
}

func TestTypographyClosestOrderingAndFloor(t *testing.T) {
	heading := inter16()
	heading.FontSize = 32
	heading.FontWeight = 700
	caption := inter16()
	caption.FontSize = 12
	serif := design.Typography{FontFamily: "Georgia", FontSize: 60, FontWeight: 900, LineHeight: design.Pixels(90)}

	styles := []catalog.TextStyle{
		textStyle("serif", serif),
		textStyle("heading", heading),
		textStyle("caption", caption),
	}

	got := Typography(inter16(), styles)
	if len(got) != 2 {
		t.Fatalf("Typography() = %+v, want heading and caption only", got)
	}
	if got[0].StyleID != "caption" || got[1].StyleID != "heading" {
		t.Errorf("Typography() order = %s, %s", got[0].StyleID, got[1].StyleID)
	}
}

func TestMatchDispatch(t *testing.T) {
	cat := &catalog.Catalog{
		PaintStyles:     []catalog.PaintStyle{{ID: "S:1", Name: "Red", Colour: design.Colour{R: 255, A: 1}}},
		ColourVariables: []catalog.ColourVariable{{ID: "V:1", Name: "red", Colour: design.Colour{R: 255, A: 1}}},
		TextStyles:      []catalog.TextStyle{textStyle("T:1", inter16())},
	}

	colour := Match(design.Colour{R: 255, A: 1}, cat)
	if len(colour) != 2 || colour[0].StyleID != "S:1" || colour[1].StyleID != "V:1" {
		t.Errorf("Match(colour) = %+v", colour)
	}

	typo := Match(inter16(), cat)
	if len(typo) != 1 || typo[0].StyleID != "T:1" {
		t.Errorf("Match(typography) = %+v", typo)
	}
}

func TestSuggestionJSON(t *testing.T) {
	s := Suggestion{StyleID: "s1", StyleName: "Primary", MatchType: MatchExact, Confidence: 100, StyleValue: design.Colour{R: 255, A: 1}}

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"styleId":"s1","styleName":"Primary","matchType":"exact","confidence":100,"styleValue":{"r":255,"g":0,"b":0,"a":1}}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}
