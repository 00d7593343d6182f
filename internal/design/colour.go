// Package design models a design document snapshot: literal values, their
// canonical normalised forms, and the tree of visual nodes that carries them.
package design

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jmylchreest/tether/internal/security"
)

// Value is a normalised literal that can be compared against catalog entries.
// It is implemented by Colour and Typography only.
type Value interface {
	isValue()
	String() string
}

// Colour is a normalised RGBA colour with 0-255 channels and a 0-1 alpha.
type Colour struct {
	R uint8   `json:"r"`
	G uint8   `json:"g"`
	B uint8   `json:"b"`
	A float64 `json:"a"`
}

func (Colour) isValue() {}

// HostColour is a colour as the host document encodes it: 0-1 channels and an
// optional alpha.
type HostColour struct {
	R float64  `json:"r"`
	G float64  `json:"g"`
	B float64  `json:"b"`
	A *float64 `json:"a,omitempty"`
}

// ColourFromHost converts a 0-1 host colour to a Colour. Missing alpha means opaque.
func ColourFromHost(c HostColour) Colour {
	alpha := 1.0
	if c.A != nil {
		alpha = *c.A
	}
	return Colour{
		R: security.UnitToUint8(c.R),
		G: security.UnitToUint8(c.G),
		B: security.UnitToUint8(c.B),
		A: alpha,
	}
}

// Host returns the colour in host encoding.
func (c Colour) Host() HostColour {
	alpha := c.A
	return HostColour{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
		A: &alpha,
	}
}

// Hex returns the colour as "#rrggbb", or "#rrggbbaa" when it is not fully opaque.
func (c Colour) Hex() string {
	if c.A >= 1 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, security.UnitToUint8(c.A))
}

// String returns the colour in the format "rgba(r, g, b, a)".
func (c Colour) String() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, strconv.FormatFloat(c.A, 'f', -1, 64))
}

// ParseHex parses "#rgb", "#rrggbb" or "#rrggbbaa" (the hash is optional).
func ParseHex(s string) (Colour, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")

	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 && len(hex) != 8 {
		return Colour{}, fmt.Errorf("invalid hex colour %q: expected 3, 6 or 8 digits", s)
	}

	channels := make([]uint8, 0, 4)
	for i := 0; i < len(hex); i += 2 {
		v, err := strconv.ParseUint(hex[i:i+2], 16, 8)
		if err != nil {
			return Colour{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
		}
		channels = append(channels, uint8(v))
	}

	c := Colour{R: channels[0], G: channels[1], B: channels[2], A: 1}
	if len(channels) == 4 {
		c.A = float64(channels[3]) / 255
	}
	return c, nil
}
