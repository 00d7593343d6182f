package design

import (
	"encoding/json"
	"testing"
)

func ptr[T any](v T) *T { return &v }

func TestColourFromHost(t *testing.T) {
	tests := []struct {
		name string
		in   HostColour
		want Colour
	}{
		{
			name: "opaque red without alpha",
			in:   HostColour{R: 1, G: 0, B: 0},
			want: Colour{R: 255, G: 0, B: 0, A: 1},
		},
		{
			name: "rounded channels",
			in:   HostColour{R: 0.5, G: 0.2, B: 0.999},
			want: Colour{R: 128, G: 51, B: 255, A: 1},
		},
		{
			name: "explicit alpha",
			in:   HostColour{R: 0, G: 0, B: 0, A: ptr(0.4)},
			want: Colour{R: 0, G: 0, B: 0, A: 0.4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ColourFromHost(tt.in); got != tt.want {
				t.Errorf("ColourFromHost() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestColourHex(t *testing.T) {
	tests := []struct {
		colour Colour
		want   string
	}{
		{Colour{R: 255, G: 0, B: 0, A: 1}, "#ff0000"},
		{Colour{R: 26, G: 27, B: 38, A: 1}, "#1a1b26"},
		{Colour{R: 0, G: 0, B: 0, A: 0.5}, "#00000080"},
	}

	for _, tt := range tests {
		if got := tt.colour.Hex(); got != tt.want {
			t.Errorf("Hex() = %q, want %q", got, tt.want)
		}
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    Colour
		wantErr bool
	}{
		{in: "#ff0000", want: Colour{R: 255, A: 1}},
		{in: "00ff00", want: Colour{G: 255, A: 1}},
		{in: "#fff", want: Colour{R: 255, G: 255, B: 255, A: 1}},
		{in: "#00000000", want: Colour{A: 0}},
		{in: "#12345", wantErr: true},
		{in: "#gg0000", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHex(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseHex(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFontWeight(t *testing.T) {
	tests := map[string]int{
		"Thin":        100,
		"Extra Light": 200,
		"ExtraLight":  200,
		"Light":       300,
		"Regular":     400,
		"Medium":      500,
		"Semi Bold":   600,
		"SemiBold":    600,
		"Bold":        700,
		"Extra Bold":  800,
		"Black":       900,
		"Heavy":       900,
		"bold":        400,
		"Condensed":   400,
		"":            400,
	}

	for style, want := range tests {
		if got := FontWeight(style); got != want {
			t.Errorf("FontWeight(%q) = %d, want %d", style, got, want)
		}
	}
}

func TestLineHeightValue(t *testing.T) {
	tests := []struct {
		in   HostMeasure
		want Measure
	}{
		{HostMeasure{Value: 24, Unit: UnitPixels}, Pixels(24)},
		{HostMeasure{Value: 150, Unit: UnitPercent}, Measure{Value: 150, Unit: UnitPercent}},
		{HostMeasure{Value: 99, Unit: UnitAuto}, Measure{Value: 0, Unit: UnitAuto}},
		{HostMeasure{Value: 99, Unit: "EM"}, Measure{Value: 0, Unit: UnitAuto}},
	}

	for _, tt := range tests {
		if got := LineHeightValue(tt.in); got != tt.want {
			t.Errorf("LineHeightValue(%+v) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestLetterSpacingValue(t *testing.T) {
	if got := LetterSpacingValue(HostMeasure{Value: 1.5, Unit: UnitPixels}); got != Pixels(1.5) {
		t.Errorf("pixels: got %+v", got)
	}
	want := Measure{Value: 2, Unit: UnitPercent}
	if got := LetterSpacingValue(HostMeasure{Value: 2, Unit: UnitPercent}); got != want {
		t.Errorf("percent: got %+v", got)
	}
	if got := LetterSpacingValue(HostMeasure{Value: 2, Unit: "OTHER"}); got != want {
		t.Errorf("other unit: got %+v", got)
	}
}

func TestMeasureJSON(t *testing.T) {
	tests := []struct {
		name    string
		measure Measure
		want    string
	}{
		{"pixels as number", Pixels(24), `24`},
		{"percent as object", Measure{Value: 120, Unit: UnitPercent}, `{"value":120,"unit":"PERCENT"}`},
		{"auto as object", Measure{Value: 0, Unit: UnitAuto}, `{"value":0,"unit":"AUTO"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.measure)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("Marshal() = %s, want %s", data, tt.want)
			}

			var back Measure
			if err := json.Unmarshal(data, &back); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if back != tt.measure {
				t.Errorf("Unmarshal() = %+v, want %+v", back, tt.measure)
			}
		})
	}
}

func TestMixedJSON(t *testing.T) {
	var size Mixed[float64]
	if err := json.Unmarshal([]byte(`"mixed"`), &size); err != nil {
		t.Fatalf("Unmarshal(mixed) error = %v", err)
	}
	if !size.IsMixed() {
		t.Error("expected sentinel")
	}
	if got := size.Or(12); got != 12 {
		t.Errorf("Or() = %v, want 12", got)
	}

	if err := json.Unmarshal([]byte(`16`), &size); err != nil {
		t.Fatalf("Unmarshal(16) error = %v", err)
	}
	if v, ok := size.Get(); !ok || v != 16 {
		t.Errorf("Get() = %v, %v, want 16, true", v, ok)
	}

	data, err := json.Marshal(Varied[FontName]())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `"mixed"` {
		t.Errorf("Marshal() = %s", data)
	}
}

func TestTextAttrsTypographyDefaults(t *testing.T) {
	attrs := TextAttrs{
		FontName:      Varied[FontName](),
		FontSize:      Varied[float64](),
		LineHeight:    Varied[HostMeasure](),
		LetterSpacing: Varied[HostMeasure](),
	}

	got := attrs.Typography()
	want := Typography{
		FontFamily:    "Mixed",
		FontSize:      12,
		FontWeight:    400,
		LineHeight:    Measure{Value: 0, Unit: UnitAuto},
		LetterSpacing: Pixels(0),
	}
	if got != want {
		t.Errorf("Typography() = %+v, want %+v", got, want)
	}
}

func TestPaintsOf(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want bool
	}{
		{"frame", NewFrame(Header{ID: "1"}, Paints{}), true},
		{"shape", NewShape(Header{ID: "2"}, Paints{}), true},
		{"text", NewText(Header{ID: "3"}, Paints{}, TextAttrs{}), true},
		{"group", NewGroup(Header{ID: "4"}), false},
		{"page", NewPage(Header{ID: "5"}), false},
		{"other", NewOther(Header{ID: "6", Type: "SLICE"}), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := PaintsOf(tt.node); ok != tt.want {
				t.Errorf("PaintsOf() ok = %v, want %v", ok, tt.want)
			}
		})
	}
}

func TestWalkPreOrder(t *testing.T) {
	leafA := NewShape(Header{ID: "a"}, Paints{})
	leafB := NewShape(Header{ID: "b"}, Paints{})
	inner := NewGroup(Header{ID: "inner"}, leafA)
	root := NewFrame(Header{ID: "root"}, Paints{}, inner, leafB)
	other := NewShape(Header{ID: "other"}, Paints{})

	var order []string
	for n := range Walk([]Node{root, other}) {
		order = append(order, n.ID())
	}

	want := []string{"root", "inner", "a", "b", "other"}
	if len(order) != len(want) {
		t.Fatalf("Walk() visited %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("Walk()[%d] = %q, want %q", i, order[i], want[i])
		}
	}

	if leafA.Parent() != inner || inner.Parent() != root {
		t.Error("constructors must link parents")
	}
}

func TestCountNodes(t *testing.T) {
	root := NewFrame(Header{ID: "root"}, Paints{},
		NewShape(Header{ID: "a"}, Paints{}),
		NewShape(Header{ID: "b"}, Paints{}),
	)

	if got := CountNodes([]Node{root}); got != 3 {
		t.Errorf("CountNodes() = %d, want 3", got)
	}
	if got := CountNodes(nil); got != 0 {
		t.Errorf("CountNodes(nil) = %d, want 0", got)
	}
}

func TestPaintsVariableBinding(t *testing.T) {
	var p Paints
	p.SetVariable(SlotStrokes, 2, NewVariableAlias("VariableID:1"))

	if p.VariableAt(SlotStrokes, 0) != nil {
		t.Error("index 0 should be unbound")
	}
	if got := p.VariableAt(SlotStrokes, 2); got == nil || got.ID != "VariableID:1" {
		t.Errorf("VariableAt(2) = %+v", got)
	}
	if p.VariableAt(SlotFills, 2) != nil {
		t.Error("fills should be unaffected")
	}
}
