// Package catalog holds the snapshot of a document's shared styles and
// variables that literal values are matched against.
package catalog

import (
	"context"
	"fmt"

	"github.com/jmylchreest/tether/internal/design"
)

// PaintStyle is a named style whose first paint is a solid colour.
type PaintStyle struct {
	ID     string        `json:"id"`
	Name   string        `json:"name"`
	Colour design.Colour `json:"color"`
}

// ColourVariable is a named colour variable resolved in its first mode.
type ColourVariable struct {
	ID     string        `json:"id"`
	Name   string        `json:"name"`
	Colour design.Colour `json:"color"`
}

// TextStyle is a named text style.
type TextStyle struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Typography design.Typography `json:"typography"`
}

// EntrySource tells where a colour entry came from.
type EntrySource string

// Colour entry sources.
const (
	SourcePaintStyle EntrySource = "paint-style"
	SourceVariable   EntrySource = "variable"
)

// ColourEntry is a paint style or colour variable as seen by the matcher.
type ColourEntry struct {
	ID     string
	Name   string
	Colour design.Colour
	Source EntrySource
}

// ColourEntries concatenates paint styles followed by colour variables.
func ColourEntries(styles []PaintStyle, variables []ColourVariable) []ColourEntry {
	entries := make([]ColourEntry, 0, len(styles)+len(variables))
	for _, s := range styles {
		entries = append(entries, ColourEntry{ID: s.ID, Name: s.Name, Colour: s.Colour, Source: SourcePaintStyle})
	}
	for _, v := range variables {
		entries = append(entries, ColourEntry{ID: v.ID, Name: v.Name, Colour: v.Colour, Source: SourceVariable})
	}
	return entries
}

// Collector supplies normalised catalog entries. Implementations may perform
// I/O against the host document.
type Collector interface {
	// PaintStyles returns every solid paint style of the document.
	PaintStyles(ctx context.Context) ([]PaintStyle, error)

	// ColourVariables returns every colour variable of the document.
	ColourVariables(ctx context.Context) ([]ColourVariable, error)

	// TextStyles returns every text style of the document.
	TextStyles(ctx context.Context) ([]TextStyle, error)
}

// Catalog is an immutable snapshot of one document's styles and variables.
type Catalog struct {
	PaintStyles     []PaintStyle
	ColourVariables []ColourVariable
	TextStyles      []TextStyle
}

// Collect takes a snapshot from the collector. The first failing list aborts
// the snapshot.
func Collect(ctx context.Context, c Collector) (*Catalog, error) {
	paints, err := c.PaintStyles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to collect paint styles: %w", err)
	}

	texts, err := c.TextStyles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to collect text styles: %w", err)
	}

	variables, err := c.ColourVariables(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to collect colour variables: %w", err)
	}

	return &Catalog{
		PaintStyles:     paints,
		ColourVariables: variables,
		TextStyles:      texts,
	}, nil
}

// ColourEntries returns paint styles followed by colour variables.
func (c *Catalog) ColourEntries() []ColourEntry {
	return ColourEntries(c.PaintStyles, c.ColourVariables)
}

// Len returns the total number of entries.
func (c *Catalog) Len() int {
	return len(c.PaintStyles) + len(c.ColourVariables) + len(c.TextStyles)
}

// StyleType is the kind of value an available style provides.
type StyleType string

// Available style types.
const (
	StyleColour     StyleType = "color"
	StyleTypography StyleType = "typography"
)

// variablePrefix marks variables in the available style list.
const variablePrefix = "🎨 "

// AvailableStyle is one entry of the list offered for manual binding.
type AvailableStyle struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Type       StyleType          `json:"type"`
	Colour     *design.Colour     `json:"color,omitempty"`
	Typography *design.Typography `json:"typography,omitempty"`
}

// Available lists paint styles, then variables (name prefixed), then text styles.
func (c *Catalog) Available() []AvailableStyle {
	out := make([]AvailableStyle, 0, c.Len())
	for _, s := range c.PaintStyles {
		colour := s.Colour
		out = append(out, AvailableStyle{ID: s.ID, Name: s.Name, Type: StyleColour, Colour: &colour})
	}
	for _, v := range c.ColourVariables {
		colour := v.Colour
		out = append(out, AvailableStyle{ID: v.ID, Name: variablePrefix + v.Name, Type: StyleColour, Colour: &colour})
	}
	for _, s := range c.TextStyles {
		typo := s.Typography
		out = append(out, AvailableStyle{ID: s.ID, Name: s.Name, Type: StyleTypography, Typography: &typo})
	}
	return out
}

// Lookup finds an entry by id. The returned value is a PaintStyle,
// ColourVariable or TextStyle.
func (c *Catalog) Lookup(id string) (any, bool) {
	for _, s := range c.PaintStyles {
		if s.ID == id {
			return s, true
		}
	}
	for _, v := range c.ColourVariables {
		if v.ID == id {
			return v, true
		}
	}
	for _, s := range c.TextStyles {
		if s.ID == id {
			return s, true
		}
	}
	return nil, false
}
