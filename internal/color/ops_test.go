package color

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBlend(t *testing.T) {
	black, white := NewRGB(0, 0, 0), NewRGB(255, 255, 255)

	tests := []struct {
		name string
		t    float64
		want RGB
	}{
		{"midpoint", 0.5, RGB{127.5, 127.5, 127.5, 1}},
		{"start", 0, RGB{0, 0, 0, 1}},
		{"end", 1, RGB{255, 255, 255, 1}},
		{"quarter", 0.25, RGB{63.75, 63.75, 63.75, 1}},
		{"below zero clamps", -3, RGB{0, 0, 0, 1}},
		{"above one clamps", 7, RGB{255, 255, 255, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Blend(black, white, tt.t)
			if got.Space() != SpaceRGB {
				t.Errorf("space: got %v, want rgb", got.Space())
			}
			if diff := cmp.Diff(tt.want, got.RGB(), approx); diff != "" {
				t.Errorf("Blend mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBlend_KeepsFirstAlpha(t *testing.T) {
	a := FromRGB(RGB{0, 0, 0, 0.3})
	b := NewRGB(255, 255, 255)
	if got := Blend(a, b, 1).Alpha(); got != 0.3 {
		t.Errorf("alpha: got %v, want 0.3", got)
	}
	if got := Blend(b, a, 1).Alpha(); got != 1 {
		t.Errorf("alpha: got %v, want 1", got)
	}
}

func TestBlend_MixedSpaces(t *testing.T) {
	got := Blend(NewHSL(0, 100, 50), NewRGB(0, 0, 255), 0.5)
	if got.Hex() != "#800080" {
		t.Errorf("got %s, want #800080", got.Hex())
	}
}

func TestBlendHSL(t *testing.T) {
	got := BlendHSL(NewRGB(255, 0, 0), NewRGB(0, 0, 255), 0.5)
	if got.Space() != SpaceHSL {
		t.Fatalf("space: got %v, want hsl", got.Space())
	}
	// hue travels 0 -> 240 the long way, through green
	if diff := cmp.Diff(HSL{120, 100, 50, 1}, got.HSL(), approx); diff != "" {
		t.Errorf("BlendHSL mismatch (-want +got):\n%s", diff)
	}
	if got.Hex() != "#00ff00" {
		t.Errorf("hex: got %s, want #00ff00", got.Hex())
	}
}

func TestLightenDarken(t *testing.T) {
	steel := NewRGB(0x33, 0x66, 0x99)

	tests := []struct {
		name  string
		got   Color
		wantL float64
	}{
		{"lighten", Lighten(steel, 0.25), 50},
		{"lighten default factor", Lighten(steel, DefaultFactor), 50},
		{"lighten zero factor", Lighten(steel, 0), 40},
		{"darken", Darken(steel, 0.25), 30},
		{"darken fully", Darken(steel, 1), 0},
		{"lighten clamps", Lighten(NewRGB(255, 255, 255), 0.5), 100},
		{"darken negative factor clamps", Darken(NewRGB(255, 255, 255), -1), 100},
		{"lighten black stays black", Lighten(NewRGB(0, 0, 0), 0.5), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got.Space() != SpaceHSL {
				t.Errorf("space: got %v, want hsl", tt.got.Space())
			}
			if diff := cmp.Diff(tt.wantL, tt.got.HSL().L, approx); diff != "" {
				t.Errorf("lightness mismatch (-want +got):\n%s", diff)
			}
		})
	}

	h := Lighten(steel, 0.25).HSL()
	if diff := cmp.Diff([]float64{210, 50}, []float64{h.H, h.S}, approx); diff != "" {
		t.Errorf("hue/saturation changed (-want +got):\n%s", diff)
	}
}

func TestInvert(t *testing.T) {
	tests := []struct {
		name string
		in   Color
		want string
	}{
		{"black", NewRGB(0, 0, 0), "#ffffff"},
		{"white", NewRGB(255, 255, 255), "#000000"},
		{"steel blue", NewRGB(0x33, 0x66, 0x99), "#cc9966"},
		{"hsl input", NewHSL(0, 100, 50), "#00ffff"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Invert(tt.in)
			if got.Space() != SpaceRGB {
				t.Errorf("space: got %v, want rgb", got.Space())
			}
			if got.Hex() != tt.want {
				t.Errorf("got %s, want %s", got.Hex(), tt.want)
			}
		})
	}

	if a := Invert(FromRGB(RGB{1, 2, 3, 0.25})).Alpha(); a != 0.25 {
		t.Errorf("alpha: got %v, want 0.25", a)
	}
	c := NewRGB(12, 34, 56)
	if got := Invert(Invert(c)); got != c {
		t.Errorf("double invert: got %v, want %v", got, c)
	}
}

func TestTextColor(t *testing.T) {
	tests := []struct {
		name string
		in   Color
		want string
	}{
		// L 50 -> 110 wraps to 10
		{"red", NewRGB(255, 0, 0), "#003333"},
		{"black", NewRGB(0, 0, 0), "#999999"},
		{"dark hsl", NewHSL(120, 100, 20), "#ff99ff"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TextColor(tt.in)
			if got.Space() != SpaceRGB {
				t.Errorf("space: got %v, want rgb", got.Space())
			}
			if got.Hex() != tt.want {
				t.Errorf("got %s, want %s", got.Hex(), tt.want)
			}
		})
	}
}

func TestOps_LenientOutOfRange(t *testing.T) {
	bright, err := ParseString("rgb(510, 0, 0)")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		got     Color
		wantHex string
	}{
		{"lighten", Lighten(bright, 0.25), "#ff4040"},
		{"darken", Darken(bright, 0), "#ff0000"},
		{"text color", TextColor(bright), "#003333"},
		{"to hsl", bright.ToHSL(), "#ff0000"},
		{"hsl blend", BlendHSL(bright, NewRGB(255, 0, 0), 0.5), "#ff0000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if hex := tt.got.Hex(); hex != tt.wantHex {
				t.Errorf("hex: got %s, want %s", hex, tt.wantHex)
			}
			if css := tt.got.CSS(); strings.Contains(css, "Inf") || strings.Contains(css, "NaN") || strings.Contains(css, "-") {
				t.Errorf("css: got %q, want finite non-negative channels", css)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	a := NewRGB(10, 20, 30)
	if !Equal(a, NewRGB(10.5, 19.5, 30), 1) {
		t.Error("expected colors within tolerance to be equal")
	}
	if Equal(a, NewRGB(12, 20, 30), 1) {
		t.Error("expected colors outside tolerance to differ")
	}
	if Equal(a, a.WithAlpha(0.5), 1) {
		t.Error("expected alpha difference to count")
	}
	if !Equal(NewHSL(0, 100, 50), NewRGB(255, 0, 0), 0) {
		t.Error("expected hsl red to equal rgb red")
	}
}
