package report

import (
	"fmt"
	"strings"

	"github.com/jmylchreest/tether/internal/design"
)

// ANSI escape codes for 24-bit terminal colours.
const (
	ansiReset    = "\033[0m"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	swatchWidth  = 4
)

// Swatch returns a solid block of width cells in colour c. Translucent
// colours are composited over white.
func Swatch(c design.Colour, width int) string {
	if width <= 0 {
		width = swatchWidth
	}
	r, g, b := overWhite(c)
	return fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, r, g, b, ansiSuffix) +
		strings.Repeat(" ", width) +
		ansiReset
}

func overWhite(c design.Colour) (uint8, uint8, uint8) {
	a := c.A
	if a >= 1 {
		return c.R, c.G, c.B
	}
	if a < 0 {
		a = 0
	}
	blend := func(v uint8) uint8 {
		return uint8(float64(v)*a + 255*(1-a) + 0.5)
	}
	return blend(c.R), blend(c.G), blend(c.B)
}
