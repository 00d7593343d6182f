package design

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Unit is the unit of a line height or letter spacing measure.
type Unit string

// Measure units as encoded by the host document.
const (
	UnitPixels  Unit = "PIXELS"
	UnitPercent Unit = "PERCENT"
	UnitAuto    Unit = "AUTO"
)

// Measure is a normalised line height or letter spacing.
// Pixel measures encode as a bare JSON number, all others as {"value", "unit"}.
type Measure struct {
	Value float64
	Unit  Unit
}

// Pixels returns a pixel measure.
func Pixels(v float64) Measure {
	return Measure{Value: v, Unit: UnitPixels}
}

// Scalar returns the number used when comparing measures, ignoring the unit.
func (m Measure) Scalar() float64 {
	return m.Value
}

// MarshalJSON implements json.Marshaler.
func (m Measure) MarshalJSON() ([]byte, error) {
	if m.Unit == UnitPixels || m.Unit == "" {
		return json.Marshal(m.Value)
	}
	return json.Marshal(HostMeasure(m))
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *Measure) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var h HostMeasure
		if err := json.Unmarshal(data, &h); err != nil {
			return err
		}
		*m = Measure(h)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("measure must be a number or {value, unit}: %w", err)
	}
	*m = Pixels(v)
	return nil
}

func (m Measure) String() string {
	v := strconv.FormatFloat(m.Value, 'f', -1, 64)
	switch m.Unit {
	case UnitPercent:
		return v + "%"
	case UnitAuto:
		return "auto"
	default:
		return v + "px"
	}
}

// HostMeasure is a line height or letter spacing as the host encodes it.
type HostMeasure struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// FontName identifies a font by family and style name (e.g. "Inter", "Semi Bold").
type FontName struct {
	Family string `json:"family"`
	Style  string `json:"style"`
}

// Typography is a normalised set of text formatting attributes.
type Typography struct {
	FontFamily    string  `json:"fontFamily"`
	FontSize      float64 `json:"fontSize"`
	FontWeight    int     `json:"fontWeight"`
	LineHeight    Measure `json:"lineHeight"`
	LetterSpacing Measure `json:"letterSpacing"`
}

func (Typography) isValue() {}

// String returns a compact description such as "Inter 16 700 lh 24px ls 0px".
func (t Typography) String() string {
	return fmt.Sprintf("%s %s %d lh %s ls %s",
		t.FontFamily,
		strconv.FormatFloat(t.FontSize, 'f', -1, 64),
		t.FontWeight,
		t.LineHeight,
		t.LetterSpacing)
}

// fontWeights maps font style names to CSS numeric weights. Lookups are
// case-sensitive; spaced and unspaced spellings are both listed.
var fontWeights = map[string]int{
	"Thin":        100,
	"Extra Light": 200,
	"ExtraLight":  200,
	"Light":       300,
	"Regular":     400,
	"Normal":      400,
	"Medium":      500,
	"Semi Bold":   600,
	"SemiBold":    600,
	"Semibold":    600,
	"Bold":        700,
	"Extra Bold":  800,
	"ExtraBold":   800,
	"Black":       900,
	"Heavy":       900,
}

// DefaultFontWeight is used for style names missing from the weight table.
const DefaultFontWeight = 400

// FontWeight converts a font style name to a numeric weight, 400 when unknown.
func FontWeight(style string) int {
	if w, ok := fontWeights[style]; ok {
		return w
	}
	return DefaultFontWeight
}

// LineHeightValue normalises a host line height. Any unit other than pixels or
// percent collapses to AUTO with value 0.
func LineHeightValue(h HostMeasure) Measure {
	switch h.Unit {
	case UnitPixels:
		return Pixels(h.Value)
	case UnitPercent:
		return Measure{Value: h.Value, Unit: UnitPercent}
	default:
		return Measure{Value: 0, Unit: UnitAuto}
	}
}

// LetterSpacingValue normalises a host letter spacing. Non-pixel units are
// treated as percent.
func LetterSpacingValue(h HostMeasure) Measure {
	if h.Unit == UnitPixels {
		return Pixels(h.Value)
	}
	return Measure{Value: h.Value, Unit: UnitPercent}
}

// TypographyFromHost builds a normalised Typography from host text attributes.
func TypographyFromHost(font FontName, size float64, lineHeight, letterSpacing HostMeasure) Typography {
	return Typography{
		FontFamily:    font.Family,
		FontSize:      size,
		FontWeight:    FontWeight(font.Style),
		LineHeight:    LineHeightValue(lineHeight),
		LetterSpacing: LetterSpacingValue(letterSpacing),
	}
}
