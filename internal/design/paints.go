package design

// PaintType is the host paint kind.
type PaintType string

// Paint types. Only solid paints carry a single comparable colour.
const (
	PaintSolid          PaintType = "SOLID"
	PaintGradientLinear PaintType = "GRADIENT_LINEAR"
	PaintGradientRadial PaintType = "GRADIENT_RADIAL"
	PaintImage          PaintType = "IMAGE"
)

// Paint is one fill or stroke layer.
type Paint struct {
	Type    PaintType  `json:"type"`
	Visible *bool      `json:"visible,omitempty"`
	Color   HostColour `json:"color"`
}

// IsVisible reports whether the paint is shown. A missing flag means visible.
func (p Paint) IsVisible() bool {
	return p.Visible == nil || *p.Visible
}

// IsSolidVisible reports whether the paint takes part in a scan.
func (p Paint) IsSolidVisible() bool {
	return p.Type == PaintSolid && p.IsVisible()
}

// SolidPaint returns a visible solid paint of colour c.
func SolidPaint(c Colour) Paint {
	return Paint{Type: PaintSolid, Color: c.Host()}
}

// VariableAlias references a variable from a bound attribute.
type VariableAlias struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// NewVariableAlias returns an alias to the variable id.
func NewVariableAlias(id string) *VariableAlias {
	return &VariableAlias{Type: "VARIABLE_ALIAS", ID: id}
}

// Slot names a paint-bearing attribute.
type Slot string

// Paint slots.
const (
	SlotFills   Slot = "fills"
	SlotStrokes Slot = "strokes"
)

// Paints holds the fill and stroke layers of a node and their bindings.
type Paints struct {
	Fills         []Paint
	Strokes       []Paint
	FillStyleID   string
	StrokeStyleID string

	// Per-index variable bindings; an entry may be nil.
	FillVariables   []*VariableAlias
	StrokeVariables []*VariableAlias
}

// Layers returns the paints of the slot.
func (p *Paints) Layers(s Slot) []Paint {
	if s == SlotStrokes {
		return p.Strokes
	}
	return p.Fills
}

// StyleID returns the style reference of the slot, "" when unbound.
func (p *Paints) StyleID(s Slot) string {
	if s == SlotStrokes {
		return p.StrokeStyleID
	}
	return p.FillStyleID
}

// VariableAt returns the variable bound to the paint at index, or nil.
func (p *Paints) VariableAt(s Slot, index int) *VariableAlias {
	vars := p.FillVariables
	if s == SlotStrokes {
		vars = p.StrokeVariables
	}
	if index < 0 || index >= len(vars) {
		return nil
	}
	return vars[index]
}

// SetStyle binds the whole slot to a paint style and replaces its layers.
func (p *Paints) SetStyle(s Slot, styleID string, layers []Paint) {
	if s == SlotStrokes {
		p.StrokeStyleID, p.Strokes = styleID, layers
		return
	}
	p.FillStyleID, p.Fills = styleID, layers
}

// SetVariable binds the paint at index to a variable.
func (p *Paints) SetVariable(s Slot, index int, alias *VariableAlias) {
	vars := &p.FillVariables
	if s == SlotStrokes {
		vars = &p.StrokeVariables
	}
	for len(*vars) <= index {
		*vars = append(*vars, nil)
	}
	(*vars)[index] = alias
}
