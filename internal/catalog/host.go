package catalog

import (
	"encoding/json"
	"sort"

	"github.com/jmylchreest/tether/internal/design"
)

// RawPaintStyle is a paint style as stored by the host document.
type RawPaintStyle struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Paints []design.Paint `json:"paints"`
}

// RawTextStyle is a text style as stored by the host document.
type RawTextStyle struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	FontName      design.FontName    `json:"fontName"`
	FontSize      float64            `json:"fontSize"`
	LineHeight    design.HostMeasure `json:"lineHeight"`
	LetterSpacing design.HostMeasure `json:"letterSpacing"`
}

// Mode is one mode of a variable collection, e.g. "Light" or "Dark".
type Mode struct {
	ModeID string `json:"modeId"`
	Name   string `json:"name"`
}

// RawVariable is a variable as stored by the host. Values are kept raw because
// a mode value may be a colour, a number, a string or an alias.
type RawVariable struct {
	ID           string                     `json:"id"`
	Name         string                     `json:"name"`
	ResolvedType string                     `json:"resolvedType"`
	ValuesByMode map[string]json.RawMessage `json:"valuesByMode"`
}

// RawCollection is a variable collection with its modes in host order.
type RawCollection struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Modes     []Mode        `json:"modes"`
	Variables []RawVariable `json:"variables"`
}

// resolvedTypeColour is the host's resolved type for colour variables.
const resolvedTypeColour = "COLOR"

// NormalisePaintStyles keeps styles whose first paint is solid and converts
// that paint's colour.
func NormalisePaintStyles(raw []RawPaintStyle) []PaintStyle {
	styles := make([]PaintStyle, 0, len(raw))
	for _, s := range raw {
		if len(s.Paints) == 0 || s.Paints[0].Type != design.PaintSolid {
			continue
		}
		styles = append(styles, PaintStyle{
			ID:     s.ID,
			Name:   s.Name,
			Colour: design.ColourFromHost(s.Paints[0].Color),
		})
	}
	return styles
}

// NormaliseTextStyles converts host text styles with the same normalisers
// used for text nodes.
func NormaliseTextStyles(raw []RawTextStyle) []TextStyle {
	styles := make([]TextStyle, 0, len(raw))
	for _, s := range raw {
		styles = append(styles, TextStyle{
			ID:         s.ID,
			Name:       s.Name,
			Typography: design.TypographyFromHost(s.FontName, s.FontSize, s.LineHeight, s.LetterSpacing),
		})
	}
	return styles
}

// NormaliseColourVariables keeps colour variables whose first mode value is
// colour-shaped. Anything else (aliases, numbers, missing values) is dropped.
func NormaliseColourVariables(collections []RawCollection) []ColourVariable {
	var variables []ColourVariable
	for _, col := range collections {
		for _, v := range col.Variables {
			if v.ResolvedType != resolvedTypeColour {
				continue
			}
			value, ok := FirstModeValue(col, v)
			if !ok {
				continue
			}
			colour, ok := ParseColourValue(value)
			if !ok {
				continue
			}
			variables = append(variables, ColourVariable{
				ID:     v.ID,
				Name:   v.Name,
				Colour: colour,
			})
		}
	}
	if variables == nil {
		variables = []ColourVariable{}
	}
	return variables
}

// FirstModeValue returns the variable's value for the first collection mode
// it defines. Values for modes unknown to the collection are considered in
// lexical mode id order after the declared modes.
func FirstModeValue(col RawCollection, v RawVariable) (json.RawMessage, bool) {
	for _, m := range col.Modes {
		if value, ok := v.ValuesByMode[m.ModeID]; ok {
			return value, true
		}
	}
	if len(v.ValuesByMode) == 0 {
		return nil, false
	}
	ids := make([]string, 0, len(v.ValuesByMode))
	for id := range v.ValuesByMode {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return v.ValuesByMode[ids[0]], true
}

// ParseColourValue decodes a colour-shaped variable value ({r, g, b[, a]}).
func ParseColourValue(raw json.RawMessage) (design.Colour, bool) {
	var shape struct {
		R *float64 `json:"r"`
		G *float64 `json:"g"`
		B *float64 `json:"b"`
		A *float64 `json:"a"`
	}
	if err := json.Unmarshal(raw, &shape); err != nil {
		return design.Colour{}, false
	}
	if shape.R == nil || shape.G == nil || shape.B == nil {
		return design.Colour{}, false
	}
	return design.ColourFromHost(design.HostColour{R: *shape.R, G: *shape.G, B: *shape.B, A: shape.A}), true
}
