package binding

import (
	"github.com/google/uuid"

	"github.com/jmylchreest/tether/internal/catalog"
	"github.com/jmylchreest/tether/internal/design"
	"github.com/jmylchreest/tether/internal/scan"
)

// ResolvePaint checks that n owns paints and that index is inside the slot.
func ResolvePaint(n design.Node, slot design.Slot, index int) (*design.Paints, error) {
	paints, ok := design.PaintsOf(n)
	if !ok {
		return nil, ErrNoPaints
	}
	layers := paints.Layers(slot)
	if index < 0 || index >= len(layers) {
		return nil, &PaintIndexError{Index: index, Count: len(layers), Slot: slot}
	}
	return paints, nil
}

// Connect applies an existing catalog entry to n. A paint style binds the
// whole slot and replaces its layers with the style paint. A colour variable
// binds only the paint at the requested index. A text style binds a text node.
func Connect(n design.Node, cat *catalog.Catalog, req ConnectRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	entry, found := cat.Lookup(req.StyleID)

	if req.Kind == scan.KindTypography {
		text, ok := design.TextOf(n)
		if !ok {
			return ErrNotText
		}
		style, ok := entry.(catalog.TextStyle)
		if !found || !ok {
			return ErrStyleNotFound
		}
		text.Attrs.TextStyleID = style.ID
		return nil
	}

	slot, _ := req.Kind.Slot()
	paints, err := ResolvePaint(n, slot, req.Index())
	if err != nil {
		return err
	}
	if !found {
		return ErrStyleNotFound
	}

	switch style := entry.(type) {
	case catalog.PaintStyle:
		paints.SetStyle(slot, style.ID, []design.Paint{design.SolidPaint(style.Colour)})
		return nil
	case catalog.ColourVariable:
		layers := paints.Layers(slot)
		index := req.Index()
		if layers[index].Type != design.PaintSolid {
			return ErrNotSolid
		}
		layers[index].Color = style.Colour.Host()
		paints.SetVariable(slot, index, design.NewVariableAlias(style.ID))
		return nil
	default:
		return ErrStyleNotFound
	}
}

// NewStyle is a style built by CreateStyle, in the host's raw form so that
// the owning document can store it. Exactly one of Paint and Text is set.
type NewStyle struct {
	Created
	Paint *catalog.RawPaintStyle
	Text  *catalog.RawTextStyle
}

// CreateStyle builds a style from n's value and binds n to it.
func CreateStyle(n design.Node, req CreateStyleRequest) (*NewStyle, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	id := NewStyleID()

	if req.Kind == scan.KindTypography {
		text, ok := design.TextOf(n)
		if !ok {
			return nil, ErrNotText
		}
		raw, err := textStyleFrom(id, req.StyleName, text.Attrs)
		if err != nil {
			return nil, err
		}
		text.Attrs.TextStyleID = id
		return &NewStyle{Created: Created{ID: id, Name: req.StyleName, Kind: req.Kind}, Text: raw}, nil
	}

	slot, _ := req.Kind.Slot()
	paints, err := ResolvePaint(n, slot, req.Index())
	if err != nil {
		return nil, err
	}
	paint := paints.Layers(slot)[req.Index()]
	if paint.Type != design.PaintSolid {
		return nil, ErrNotSolid
	}

	raw := &catalog.RawPaintStyle{ID: id, Name: req.StyleName, Paints: []design.Paint{paint}}
	paints.SetStyle(slot, id, []design.Paint{paint})
	return &NewStyle{Created: Created{ID: id, Name: req.StyleName, Kind: req.Kind}, Paint: raw}, nil
}

func textStyleFrom(id, name string, attrs design.TextAttrs) (*catalog.RawTextStyle, error) {
	font, fontOK := attrs.FontName.Get()
	size, sizeOK := attrs.FontSize.Get()
	lineHeight, lhOK := attrs.LineHeight.Get()
	spacing, lsOK := attrs.LetterSpacing.Get()
	if !fontOK || !sizeOK || !lhOK || !lsOK {
		return nil, ErrMixedTypography
	}
	return &catalog.RawTextStyle{
		ID:            id,
		Name:          name,
		FontName:      font,
		FontSize:      size,
		LineHeight:    lineHeight,
		LetterSpacing: spacing,
	}, nil
}

// NewStyleID returns a fresh style id in the host's "S:" form.
func NewStyleID() string {
	return "S:" + uuid.NewString()
}
