package binding

import (
	"errors"
	"fmt"

	"github.com/jmylchreest/tether/internal/design"
)

var (
	// ErrNodeNotFound is returned when the target node does not exist.
	ErrNodeNotFound = errors.New("element not found")

	// ErrInvalidPaintIndex is matched by every *PaintIndexError.
	ErrInvalidPaintIndex = errors.New("invalid paint index")

	// ErrNoPaints is returned when the target node cannot own fills or strokes.
	ErrNoPaints = errors.New("element has no paints")

	// ErrNotSolid is returned when a variable or new style targets a
	// non-solid paint.
	ErrNotSolid = errors.New("target paint must be a solid paint")

	// ErrNotText is returned when typography is bound on a non-text node.
	ErrNotText = errors.New("element is not a text layer")

	// ErrStyleNotFound is returned when the id names no style or variable
	// usable for the requested kind.
	ErrStyleNotFound = errors.New("style or variable not found")

	// ErrMixedTypography is returned when a text style is created from a
	// node whose formatting varies across its characters.
	ErrMixedTypography = errors.New("text has mixed formatting")

	// ErrEmptyStyleName is returned when a new style has a blank name.
	ErrEmptyStyleName = errors.New("style name cannot be empty")
)

// PaintIndexError reports a paint index outside the slot.
type PaintIndexError struct {
	Index int
	Count int
	Slot  design.Slot
}

func (e *PaintIndexError) Error() string {
	noun := "fill"
	if e.Slot == design.SlotStrokes {
		noun = "stroke"
	}
	return fmt.Sprintf("Invalid paint index: %d. Element has %d %s(s).", e.Index, e.Count, noun)
}

// Is makes errors.Is(err, ErrInvalidPaintIndex) true.
func (e *PaintIndexError) Is(target error) bool {
	return target == ErrInvalidPaintIndex
}
