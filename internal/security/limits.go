// Package security provides bounds checking for untrusted document input.
package security

import (
	"errors"
	"io"
	"math"
)

// ErrSizeLimit is returned once a LimitedReader has handed out its whole budget.
var ErrSizeLimit = errors.New("document size limit exceeded")

// DefaultMaxDocumentBytes caps a decoded document snapshot.
const DefaultMaxDocumentBytes = 256 * 1024 * 1024

// SafeUint8 clamps an integer to the 0-255 range.
func SafeUint8(val int) uint8 {
	if val < 0 {
		return 0
	}
	if val > 255 {
		return 255
	}
	return uint8(val)
}

// UnitToUint8 maps a 0-1 channel value onto 0-255, rounding to the nearest integer.
// NaN maps to 0.
func UnitToUint8(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return SafeUint8(int(math.Round(v * 255)))
}

// LimitedReader wraps an io.Reader and limits the total bytes that can be read.
// Unlike io.LimitReader it fails loudly instead of truncating, so a
// decompression bomb surfaces as an error rather than as a corrupt document.
type LimitedReader struct {
	R         io.Reader
	Remaining int64
}

// Read implements io.Reader with size limits.
func (l *LimitedReader) Read(p []byte) (int, error) {
	if l.Remaining <= 0 {
		return 0, ErrSizeLimit
	}
	if int64(len(p)) > l.Remaining {
		p = p[:l.Remaining]
	}
	n, err := l.R.Read(p)
	l.Remaining -= int64(n)
	return n, err
}

// NewLimitedReader creates a new LimitedReader with the specified size limit.
func NewLimitedReader(r io.Reader, maxBytes int64) *LimitedReader {
	return &LimitedReader{
		R:         r,
		Remaining: maxBytes,
	}
}
