package document

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jmylchreest/tether/internal/catalog"
	"github.com/jmylchreest/tether/internal/design"
)

// File is the JSON form of a document snapshot.
type File struct {
	Name                string                  `json:"name"`
	Selection           []string                `json:"selection"`
	Pages               []*NodeJSON             `json:"pages"`
	PaintStyles         []catalog.RawPaintStyle `json:"paintStyles"`
	TextStyles          []catalog.RawTextStyle  `json:"textStyles"`
	VariableCollections []catalog.RawCollection `json:"variableCollections"`
}

// NodeJSON is the JSON form of one node. Which fields are present depends on
// the node type.
type NodeJSON struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Type     string      `json:"type"`
	Children []*NodeJSON `json:"children,omitempty"`

	Fills          []design.Paint  `json:"fills,omitempty"`
	Strokes        []design.Paint  `json:"strokes,omitempty"`
	FillStyleID    string          `json:"fillStyleId,omitempty"`
	StrokeStyleID  string          `json:"strokeStyleId,omitempty"`
	BoundVariables *BoundVariables `json:"boundVariables,omitempty"`

	FontName      *design.Mixed[design.FontName]    `json:"fontName,omitempty"`
	FontSize      *design.Mixed[float64]            `json:"fontSize,omitempty"`
	LineHeight    *design.Mixed[design.HostMeasure] `json:"lineHeight,omitempty"`
	LetterSpacing *design.Mixed[design.HostMeasure] `json:"letterSpacing,omitempty"`
	TextStyleID   string                            `json:"textStyleId,omitempty"`
}

// BoundVariables lists per-index variable bindings. A null entry is unbound.
type BoundVariables struct {
	Fills   []*design.VariableAlias `json:"fills,omitempty"`
	Strokes []*design.VariableAlias `json:"strokes,omitempty"`
}

// Host node types by capability.
var (
	frameTypes = map[string]bool{
		"FRAME": true, "COMPONENT": true, "COMPONENT_SET": true, "INSTANCE": true,
		"SECTION": true, "BOOLEAN_OPERATION": true,
	}
	shapeTypes = map[string]bool{
		"RECTANGLE": true, "ELLIPSE": true, "POLYGON": true, "STAR": true,
		"VECTOR": true, "LINE": true,
	}
)

// Decode reads a document snapshot.
func Decode(r io.Reader) (*Document, error) {
	var f File
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return FromFile(&f)
}

// FromFile builds a document from its JSON form.
func FromFile(f *File) (*Document, error) {
	doc := &Document{
		Name:        f.Name,
		selection:   f.Selection,
		paintStyles: f.PaintStyles,
		textStyles:  f.TextStyles,
		collections: f.VariableCollections,
		index:       map[string]design.Node{},
	}
	for i, p := range f.Pages {
		if p == nil {
			return nil, fmt.Errorf("page %d is null", i)
		}
		node, err := doc.build(p)
		if err != nil {
			return nil, err
		}
		page, ok := node.(*design.Page)
		if !ok {
			return nil, fmt.Errorf("top-level node %q has type %s, want PAGE", p.ID, p.Type)
		}
		doc.Pages = append(doc.Pages, page)
	}
	return doc, nil
}

func (d *Document) build(j *NodeJSON) (design.Node, error) {
	if j.ID == "" {
		return nil, fmt.Errorf("node %q has no id", j.Name)
	}
	if _, dup := d.index[j.ID]; dup {
		return nil, fmt.Errorf("duplicate node id %q", j.ID)
	}

	children := make([]design.Node, 0, len(j.Children))
	for _, c := range j.Children {
		if c == nil {
			continue
		}
		child, err := d.build(c)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}

	h := design.Header{ID: j.ID, Name: j.Name, Type: j.Type}
	var node design.Node
	switch {
	case j.Type == "PAGE":
		node = design.NewPage(h, children...)
	case j.Type == "GROUP":
		node = design.NewGroup(h, children...)
	case j.Type == "TEXT":
		node = design.NewText(h, paintsOf(j), textAttrsOf(j))
	case frameTypes[j.Type]:
		node = design.NewFrame(h, paintsOf(j), children...)
	case shapeTypes[j.Type]:
		node = design.NewShape(h, paintsOf(j))
	default:
		node = design.NewOther(h, children...)
	}

	d.index[j.ID] = node
	return node, nil
}

func paintsOf(j *NodeJSON) design.Paints {
	p := design.Paints{
		Fills:         j.Fills,
		Strokes:       j.Strokes,
		FillStyleID:   j.FillStyleID,
		StrokeStyleID: j.StrokeStyleID,
	}
	if j.BoundVariables != nil {
		p.FillVariables = j.BoundVariables.Fills
		p.StrokeVariables = j.BoundVariables.Strokes
	}
	return p
}

func textAttrsOf(j *NodeJSON) design.TextAttrs {
	a := design.TextAttrs{TextStyleID: j.TextStyleID}
	if j.FontName != nil {
		a.FontName = *j.FontName
	}
	if j.FontSize != nil {
		a.FontSize = *j.FontSize
	}
	if j.LineHeight != nil {
		a.LineHeight = *j.LineHeight
	}
	if j.LetterSpacing != nil {
		a.LetterSpacing = *j.LetterSpacing
	}
	return a
}

// File returns the JSON form of the document, including any mutations.
func (d *Document) File() *File {
	f := &File{
		Name:                d.Name,
		Selection:           d.selection,
		PaintStyles:         d.paintStyles,
		TextStyles:          d.textStyles,
		VariableCollections: d.collections,
	}
	for _, p := range d.Pages {
		f.Pages = append(f.Pages, toJSON(p))
	}
	return f
}

// Encode writes the document as indented JSON.
func (d *Document) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d.File()); err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	return nil
}

func toJSON(n design.Node) *NodeJSON {
	j := &NodeJSON{ID: n.ID(), Name: n.Name(), Type: n.Type()}
	for _, c := range n.Children() {
		j.Children = append(j.Children, toJSON(c))
	}

	if p, ok := design.PaintsOf(n); ok {
		j.Fills, j.Strokes = p.Fills, p.Strokes
		j.FillStyleID, j.StrokeStyleID = p.FillStyleID, p.StrokeStyleID
		if len(p.FillVariables) > 0 || len(p.StrokeVariables) > 0 {
			j.BoundVariables = &BoundVariables{Fills: p.FillVariables, Strokes: p.StrokeVariables}
		}
	}

	if t, ok := design.TextOf(n); ok {
		a := t.Attrs
		j.FontName, j.FontSize = &a.FontName, &a.FontSize
		j.LineHeight, j.LetterSpacing = &a.LineHeight, &a.LetterSpacing
		j.TextStyleID = a.TextStyleID
	}
	return j
}
