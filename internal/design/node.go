package design

// Node is one node of the document tree. The concrete type is one of *Page,
// *Frame, *Group, *Shape, *Text or *Other; each carries only the attributes
// that node kind can own. Use a type switch (or PaintsOf / TextOf) to query
// capabilities.
type Node interface {
	// ID returns the host's stable node id.
	ID() string

	// Name returns the layer name shown to users.
	Name() string

	// Type returns the host node type, e.g. "FRAME" or "RECTANGLE".
	Type() string

	// Parent returns the parent node, or nil for a page.
	Parent() Node

	// Children returns the child nodes in source order.
	Children() []Node

	setParent(Node)
}

// Header holds the attributes every node has.
type Header struct {
	ID   string
	Name string
	Type string
}

type base struct {
	header   Header
	parent   Node
	children []Node
}

func (b *base) ID() string { return b.header.ID }
func (b *base) Name() string { return b.header.Name }
func (b *base) Type() string { return b.header.Type }
func (b *base) Parent() Node { return b.parent }
func (b *base) Children() []Node { return b.children }
func (b *base) setParent(p Node) { b.parent = p }

func (b *base) adopt(self Node, children []Node) {
	b.children = children
	for _, c := range children {
		c.setParent(self)
	}
}

// Page is the boundary above a selection. It is never part of a scan.
type Page struct {
	base
}

// Frame is a container that can carry its own paints (frames, components,
// instances, sections, boolean operations).
type Frame struct {
	base
	Paints Paints
}

// Group is a container without paints.
type Group struct {
	base
}

// Shape is a leaf vector node with paints.
type Shape struct {
	base
	Paints Paints
}

// Text is a text layer. It has paints as well as text attributes.
type Text struct {
	base
	Paints Paints
	Attrs  TextAttrs
}

// Other is any node kind without paint or text capability.
type Other struct {
	base
}

// NewPage creates a page and adopts its children.
func NewPage(h Header, children ...Node) *Page {
	if h.Type == "" {
		h.Type = "PAGE"
	}
	n := &Page{base: base{header: h}}
	n.adopt(n, children)
	return n
}

// NewFrame creates a frame with paints and adopts its children.
func NewFrame(h Header, paints Paints, children ...Node) *Frame {
	if h.Type == "" {
		h.Type = "FRAME"
	}
	n := &Frame{base: base{header: h}, Paints: paints}
	n.adopt(n, children)
	return n
}

// NewGroup creates a group and adopts its children.
func NewGroup(h Header, children ...Node) *Group {
	if h.Type == "" {
		h.Type = "GROUP"
	}
	n := &Group{base: base{header: h}}
	n.adopt(n, children)
	return n
}

// NewShape creates a leaf shape.
func NewShape(h Header, paints Paints) *Shape {
	if h.Type == "" {
		h.Type = "RECTANGLE"
	}
	return &Shape{base: base{header: h}, Paints: paints}
}

// NewText creates a text node.
func NewText(h Header, paints Paints, attrs TextAttrs) *Text {
	if h.Type == "" {
		h.Type = "TEXT"
	}
	return &Text{base: base{header: h}, Paints: paints, Attrs: attrs}
}

// NewOther creates a node without paint or text capability.
func NewOther(h Header, children ...Node) *Other {
	n := &Other{base: base{header: h}}
	n.adopt(n, children)
	return n
}

// TextAttrs are the text formatting attributes of a text node. Every
// formatting attribute may hold the mixed sentinel.
type TextAttrs struct {
	FontName      Mixed[FontName]
	FontSize      Mixed[float64]
	LineHeight    Mixed[HostMeasure]
	LetterSpacing Mixed[HostMeasure]
	TextStyleID   string
}

// Defaults substituted for mixed text attributes.
var (
	MixedFontName      = FontName{Family: "Mixed", Style: "Regular"}
	MixedFontSize      = 12.0
	MixedLineHeight    = HostMeasure{Value: 0, Unit: UnitAuto}
	MixedLetterSpacing = HostMeasure{Value: 0, Unit: UnitPixels}
)

// Typography returns the effective normalised typography of the node,
// substituting defaults for mixed attributes.
func (a TextAttrs) Typography() Typography {
	return TypographyFromHost(
		a.FontName.Or(MixedFontName),
		a.FontSize.Or(MixedFontSize),
		a.LineHeight.Or(MixedLineHeight),
		a.LetterSpacing.Or(MixedLetterSpacing),
	)
}

// PaintsOf returns the paints of nodes that own them.
func PaintsOf(n Node) (*Paints, bool) {
	switch v := n.(type) {
	case *Frame:
		return &v.Paints, true
	case *Shape:
		return &v.Paints, true
	case *Text:
		return &v.Paints, true
	case *Page, *Group, *Other:
		return nil, false
	default:
		return nil, false
	}
}

// TextOf returns n as a text node.
func TextOf(n Node) (*Text, bool) {
	t, ok := n.(*Text)
	return t, ok
}
