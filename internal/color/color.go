// Package color holds the color model used throughout colr: RGB and HSL
// values, a tagged Color that carries exactly one of them, the CSS parser and
// serializer, and the RGB<->HSL conversion math with the operations built on
// top of it.
package color

import (
	"image/color"
	"log/slog"
	"math"
)

// Space is the representation tag of a Color.
type Space uint8

const (
	SpaceRGB Space = iota
	SpaceHSL
)

func (s Space) String() string {
	if s == SpaceHSL {
		return "hsl"
	}
	return "rgb"
}

// RGB is an additive color sample. R, G and B are in [0,255], A in [0,1].
type RGB struct {
	R, G, B, A float64
}

// HSL is a hue/saturation/lightness color. H is in degrees, S and L are
// percentages in [0,100], A is in [0,1].
type HSL struct {
	H, S, L, A float64
}

// HSL converts the color to the HSL space. Alpha is carried over.
func (c RGB) HSL() HSL {
	h, s, l := RGBToHSL(c.R, c.G, c.B)
	return HSL{H: h, S: s, L: l, A: c.A}
}

// RGB converts the color to the RGB space. The hue is wrapped into [0,360)
// first; alpha is carried over.
func (c HSL) RGB() RGB {
	r, g, b := HSLToRGB(wrapHue(c.H), c.S, c.L)
	return RGB{R: r, G: g, B: b, A: c.A}
}

// Color is an immutable color value tagged with the space it is currently
// expressed in. The zero Color is transparent black in RGB.
type Color struct {
	space Space
	ch    [4]float64
}

// FromRGB returns an RGB-tagged color.
func FromRGB(c RGB) Color {
	return Color{space: SpaceRGB, ch: [4]float64{c.R, c.G, c.B, c.A}}
}

// FromHSL returns an HSL-tagged color.
func FromHSL(c HSL) Color {
	return Color{space: SpaceHSL, ch: [4]float64{c.H, c.S, c.L, c.A}}
}

// NewRGB returns an opaque RGB color.
func NewRGB(r, g, b float64) Color {
	return FromRGB(RGB{R: r, G: g, B: b, A: 1})
}

// NewHSL returns an opaque HSL color.
func NewHSL(h, s, l float64) Color {
	return FromHSL(HSL{H: h, S: s, L: l, A: 1})
}

func (c Color) Space() Space   { return c.space }
func (c Color) Alpha() float64 { return c.ch[3] }

// Channels returns the four channels in the color's current space, alpha last.
func (c Color) Channels() []float64 {
	out := c.ch
	return out[:]
}

// RGB returns the color's RGB channels, converting if necessary.
func (c Color) RGB() RGB {
	if c.space == SpaceHSL {
		return HSL{H: c.ch[0], S: c.ch[1], L: c.ch[2], A: c.ch[3]}.RGB()
	}
	return RGB{R: c.ch[0], G: c.ch[1], B: c.ch[2], A: c.ch[3]}
}

// HSL returns the color's HSL channels, converting if necessary.
func (c Color) HSL() HSL {
	if c.space == SpaceRGB {
		return RGB{R: c.ch[0], G: c.ch[1], B: c.ch[2], A: c.ch[3]}.HSL()
	}
	return HSL{H: c.ch[0], S: c.ch[1], L: c.ch[2], A: c.ch[3]}
}

// ToRGB returns the color tagged as RGB. It is a no-op for RGB colors.
func (c Color) ToRGB() Color {
	if c.space == SpaceRGB {
		return c
	}
	return FromRGB(c.RGB())
}

// ToHSL returns the color tagged as HSL. It is a no-op for HSL colors.
func (c Color) ToHSL() Color {
	if c.space == SpaceHSL {
		return c
	}
	return FromHSL(c.HSL())
}

// To returns the color tagged with the given space.
func (c Color) To(s Space) Color {
	if s == SpaceHSL {
		return c.ToHSL()
	}
	return c.ToRGB()
}

func (c Color) WithHue(h float64) Color {
	v := c.HSL()
	v.H = wrapHue(h)
	return FromHSL(v)
}

func (c Color) WithSaturation(s float64) Color {
	v := c.HSL()
	v.S = s
	return FromHSL(v)
}

func (c Color) WithLightness(l float64) Color {
	v := c.HSL()
	v.L = l
	return FromHSL(v)
}

func (c Color) WithRed(r float64) Color {
	v := c.RGB()
	v.R = r
	return FromRGB(v)
}

func (c Color) WithGreen(g float64) Color {
	v := c.RGB()
	v.G = g
	return FromRGB(v)
}

func (c Color) WithBlue(b float64) Color {
	v := c.RGB()
	v.B = b
	return FromRGB(v)
}

// WithAlpha returns a copy with the given alpha, keeping the space tag.
func (c Color) WithAlpha(a float64) Color {
	c.ch[3] = a
	return c
}

// String returns the CSS form of the color.
func (c Color) String() string { return c.CSS() }

// LogValue implements slog.LogValuer.
func (c Color) LogValue() slog.Value { return slog.StringValue(c.CSS()) }

// FromStdColor converts a standard library color to RGB, undoing the alpha
// premultiplication of color.Color. Fully transparent colors come back as
// transparent black.
func FromStdColor(c color.Color) RGB {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return RGB{}
	}
	fa := float64(a)
	return RGB{
		R: math.Round(float64(r) / fa * 255),
		G: math.Round(float64(g) / fa * 255),
		B: math.Round(float64(b) / fa * 255),
		A: fa / 0xffff,
	}
}

// ToStdColor converts the color to a non-premultiplied standard library color.
func (c RGB) ToStdColor() color.NRGBA {
	return color.NRGBA{
		R: clampByte(c.R),
		G: clampByte(c.G),
		B: clampByte(c.B),
		A: clampByte(c.A * 255),
	}
}

// LAB represents a color in the CIELAB color space.
type LAB struct {
	L, A, B float64
}

// ToLAB converts an RGB color to CIELAB. Alpha is ignored.
func (c RGB) ToLAB() LAB {
	rLin := srgbToLinear(c.R / 255.0)
	gLin := srgbToLinear(c.G / 255.0)
	bLin := srgbToLinear(c.B / 255.0)

	// Linear sRGB to XYZ (D65 illuminant)
	x := 0.4124564*rLin + 0.3575761*gLin + 0.1804375*bLin
	y := 0.2126729*rLin + 0.7151522*gLin + 0.0721750*bLin
	z := 0.0193339*rLin + 0.1191920*gLin + 0.9503041*bLin

	// D65 reference white
	const xn, yn, zn = 0.95047, 1.00000, 1.08883

	fx := labF(x / xn)
	fy := labF(y / yn)
	fz := labF(z / zn)

	return LAB{
		L: 116.0*fy - 16.0,
		A: 500.0 * (fx - fy),
		B: 200.0 * (fy - fz),
	}
}

func srgbToLinear(v float64) float64 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

func labF(t float64) float64 {
	const delta = 6.0 / 29.0
	if t > delta*delta*delta {
		return math.Cbrt(t)
	}
	return t/(3.0*delta*delta) + 4.0/29.0
}

// DistanceLAB computes the Euclidean distance in CIELAB space between two colors.
func DistanceLAB(a, b RGB) float64 {
	return a.ToLAB().Distance(b.ToLAB())
}

// Distance is the CIE76 color difference between l and o.
func (l LAB) Distance(o LAB) float64 {
	dl := l.L - o.L
	da := l.A - o.A
	db := l.B - o.B
	return math.Sqrt(dl*dl + da*da + db*db)
}

// WeightedMean computes the weighted mean of a set of colors, alpha included.
// weights[i] corresponds to colors[i]. If weights is nil, equal weights are used.
func WeightedMean(colors []RGB, weights []float64) RGB {
	if len(colors) == 0 {
		return RGB{}
	}
	var totalR, totalG, totalB, totalA, totalW float64
	for i, c := range colors {
		w := 1.0
		if weights != nil {
			w = weights[i]
		}
		totalR += c.R * w
		totalG += c.G * w
		totalB += c.B * w
		totalA += c.A * w
		totalW += w
	}
	if totalW == 0 {
		return RGB{}
	}
	return RGB{
		R: totalR / totalW,
		G: totalG / totalW,
		B: totalB / totalW,
		A: totalA / totalW,
	}
}

// IsLight returns true if the color is perceptually light (luminance > 0.5).
func (c RGB) IsLight() bool {
	rLin := srgbToLinear(clamp(c.R, 0, 255) / 255.0)
	gLin := srgbToLinear(clamp(c.G, 0, 255) / 255.0)
	bLin := srgbToLinear(clamp(c.B, 0, 255) / 255.0)
	luminance := 0.2126*rLin + 0.7152*gLin + 0.0722*bLin
	return luminance > 0.5
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// clampByte rounds v into [0,255]. NaN maps to 0.
func clampByte(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(math.Round(clamp(v, 0, 255)))
}

// wrapHue maps any angle into [0,360).
func wrapHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	if h >= 360 {
		// tiny negative inputs round up to 360 after the shift
		h = 0
	}
	return h
}
