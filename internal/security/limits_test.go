package security

import (
	"bytes"
	"errors"
	"io"
	"math"
	"testing"
)

func TestSafeUint8(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want uint8
	}{
		{"negative", -5, 0},
		{"zero", 0, 0},
		{"mid", 128, 128},
		{"max", 255, 255},
		{"overflow", 300, 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SafeUint8(tt.in); got != tt.want {
				t.Errorf("SafeUint8(%d) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestUnitToUint8(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{0, 0},
		{1, 255},
		{0.5, 128},
		{0.2, 51},
		{1.5, 255},
		{-0.1, 0},
		{math.NaN(), 0},
	}

	for _, tt := range tests {
		if got := UnitToUint8(tt.in); got != tt.want {
			t.Errorf("UnitToUint8(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestLimitedReader(t *testing.T) {
	data := bytes.Repeat([]byte("x"), 64)

	r := NewLimitedReader(bytes.NewReader(data), 128)
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(got) != 64 {
		t.Errorf("read %d bytes, want 64", len(got))
	}

	r = NewLimitedReader(bytes.NewReader(data), 16)
	_, err = io.ReadAll(r)
	if !errors.Is(err, ErrSizeLimit) {
		t.Errorf("ReadAll() error = %v, want ErrSizeLimit", err)
	}
}
