// Package document holds design document snapshots: the node tree, the
// current selection and the style catalog, decoded from JSON.
//
// A Document is an analyzer.Source and a binding.Binder. It is not safe for
// concurrent mutation; callers serialise writes against running analyses.
package document

import (
	"context"
	"fmt"

	"github.com/jmylchreest/tether/internal/binding"
	"github.com/jmylchreest/tether/internal/catalog"
	"github.com/jmylchreest/tether/internal/design"
)

// Document is an in-memory document snapshot.
type Document struct {
	Name  string
	Pages []*design.Page

	selection   []string
	paintStyles []catalog.RawPaintStyle
	textStyles  []catalog.RawTextStyle
	collections []catalog.RawCollection
	index       map[string]design.Node
}

// Node returns the node with the given id.
func (d *Document) Node(id string) (design.Node, bool) {
	n, ok := d.index[id]
	return n, ok
}

// Selection returns the selected node ids.
func (d *Document) Selection() []string {
	return d.selection
}

// Select replaces the selection.
func (d *Document) Select(ids []string) {
	d.selection = ids
}

// Roots resolves the selection in selection order.
func (d *Document) Roots(context.Context) ([]design.Node, error) {
	roots := make([]design.Node, 0, len(d.selection))
	for _, id := range d.selection {
		n, ok := d.index[id]
		if !ok {
			return nil, fmt.Errorf("selected node %q: %w", id, binding.ErrNodeNotFound)
		}
		roots = append(roots, n)
	}
	return roots, nil
}

// PaintStyles implements catalog.Collector.
func (d *Document) PaintStyles(context.Context) ([]catalog.PaintStyle, error) {
	return catalog.NormalisePaintStyles(d.paintStyles), nil
}

// ColourVariables implements catalog.Collector.
func (d *Document) ColourVariables(context.Context) ([]catalog.ColourVariable, error) {
	return catalog.NormaliseColourVariables(d.collections), nil
}

// TextStyles implements catalog.Collector.
func (d *Document) TextStyles(context.Context) ([]catalog.TextStyle, error) {
	return catalog.NormaliseTextStyles(d.textStyles), nil
}

// Connect implements binding.Binder.
func (d *Document) Connect(ctx context.Context, req binding.ConnectRequest) error {
	n, ok := d.index[req.NodeID]
	if !ok {
		return binding.ErrNodeNotFound
	}
	cat, err := catalog.Collect(ctx, d)
	if err != nil {
		return err
	}
	return binding.Connect(n, cat, req)
}

// CreateStyle implements binding.Binder. The new style is added to the
// document catalog.
func (d *Document) CreateStyle(_ context.Context, req binding.CreateStyleRequest) (*binding.Created, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	n, ok := d.index[req.NodeID]
	if !ok {
		return nil, binding.ErrNodeNotFound
	}

	style, err := binding.CreateStyle(n, req)
	if err != nil {
		return nil, err
	}
	if style.Paint != nil {
		d.paintStyles = append(d.paintStyles, *style.Paint)
	}
	if style.Text != nil {
		d.textStyles = append(d.textStyles, *style.Text)
	}
	return &style.Created, nil
}
