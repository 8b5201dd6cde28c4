package color

import "math"

const (
	// DefaultBlendStep is the interpolation step used when none is given.
	DefaultBlendStep = 0.5

	// DefaultFactor is the lighten/darken factor used when none is given.
	DefaultFactor = 0.25
)

// Blend linearly interpolates the RGB channels of a and b. t is clamped to
// [0,1]: 0 yields a, 1 yields b. Alpha is not blended; the result keeps the
// alpha of a. The result is RGB-tagged.
func Blend(a, b Color, t float64) Color {
	return FromRGB(lerpRGB(a.RGB(), b.RGB(), clamp(t, 0, 1)))
}

// BlendHSL interpolates in HSL space, hue included, without taking the short
// way around the color wheel. The result is HSL-tagged and keeps the alpha of a.
func BlendHSL(a, b Color, t float64) Color {
	t = clamp(t, 0, 1)
	ha, hb := a.HSL(), b.HSL()
	return FromHSL(HSL{
		H: ha.H + (hb.H-ha.H)*t,
		S: ha.S + (hb.S-ha.S)*t,
		L: ha.L + (hb.L-ha.L)*t,
		A: ha.A,
	})
}

func lerpRGB(a, b RGB, t float64) RGB {
	return RGB{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: a.A,
	}
}

// Lighten scales HSL lightness up by factor (L' = L + L*factor), leaving hue
// and saturation untouched. L' is clamped to [0,100]. The result is HSL-tagged.
func Lighten(c Color, factor float64) Color {
	h := c.HSL()
	h.L = clamp(h.L+h.L*factor, 0, 100)
	return FromHSL(h)
}

// Darken scales HSL lightness down by factor (L' = L*(1-factor)), clamped to
// [0,100]. The result is HSL-tagged.
func Darken(c Color, factor float64) Color {
	h := c.HSL()
	h.L = clamp(h.L*(1-factor), 0, 100)
	return FromHSL(h)
}

// Invert replaces each RGB channel with 255 minus itself. Alpha is unchanged.
func Invert(c Color) Color {
	v := c.RGB()
	return FromRGB(RGB{R: 255 - v.R, G: 255 - v.G, B: 255 - v.B, A: v.A})
}

// TextColor picks a foreground for text drawn on background c: the hue is
// rotated by 180 degrees and the lightness moved up by 60 points, wrapping
// back past 100. This is a heuristic, not a WCAG contrast computation.
// The result is RGB-tagged.
func TextColor(c Color) Color {
	h := c.HSL()
	h.H = wrapHue(h.H + 180)
	l := h.L/100 + 0.6
	if l > 1 {
		l -= 1
	}
	h.L = l * 100
	return FromRGB(h.RGB())
}

// Equal reports whether a and b describe the same color within tol per RGB
// channel (alpha compared with tol/255).
func Equal(a, b Color, tol float64) bool {
	x, y := a.RGB(), b.RGB()
	return math.Abs(x.R-y.R) <= tol &&
		math.Abs(x.G-y.G) <= tol &&
		math.Abs(x.B-y.B) <= tol &&
		math.Abs(x.A-y.A) <= tol/255
}
