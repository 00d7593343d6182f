// Package scan walks a document tree and reports colour and typography
// attributes that are set as literal values instead of being bound to a
// style or variable.
package scan

import (
	"slices"
	"strings"

	"github.com/jmylchreest/tether/internal/design"
	"github.com/jmylchreest/tether/internal/matcher"
)

// Kind is the attribute an element reports.
type Kind string

// Element kinds.
const (
	KindFill       Kind = "fill"
	KindStroke     Kind = "stroke"
	KindTypography Kind = "typography"
)

// KindOf maps a paint slot to its element kind.
func KindOf(s design.Slot) Kind {
	if s == design.SlotStrokes {
		return KindStroke
	}
	return KindFill
}

// Slot maps a colour kind back to its paint slot.
func (k Kind) Slot() (design.Slot, bool) {
	switch k {
	case KindFill:
		return design.SlotFills, true
	case KindStroke:
		return design.SlotStrokes, true
	default:
		return "", false
	}
}

// PathSeparator joins layer names in a layer path.
const PathSeparator = " > "

// Element is one unbound attribute with its ranked binding suggestions.
type Element struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	Kind         Kind                 `json:"type"`
	LayerPath    string               `json:"layerPath"`
	CurrentValue design.Value         `json:"currentValue"`
	Suggestions  []matcher.Suggestion `json:"suggestions"`
	PaintIndex   *int                 `json:"paintIndex,omitempty"`
}

// LayerPath joins the names from the topmost ancestor below the page down to
// n itself.
func LayerPath(n design.Node) string {
	var names []string
	for cur := n; cur != nil; cur = cur.Parent() {
		if _, isPage := cur.(*design.Page); isPage {
			break
		}
		names = append(names, cur.Name())
	}
	slices.Reverse(names)
	return strings.Join(names, PathSeparator)
}

// IsPaintBound reports whether the paint at index of slot is bound. A slot
// style masks every per-index variable binding of that slot.
func IsPaintBound(p *design.Paints, s design.Slot, index int) bool {
	if p.StyleID(s) != "" {
		return true
	}
	return p.VariableAt(s, index) != nil
}
