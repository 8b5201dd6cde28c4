package color

import "math"

// RGBToHSL converts RGB channels in [0,255] to hue in degrees [0,360),
// saturation and lightness in percent [0,100]. Channels outside [0,255] are
// clamped first, and NaN channels count as 0.
//
// Grey inputs (zero chroma) take the achromatic path: hue and saturation are 0.
func RGBToHSL(r, g, b float64) (h, s, l float64) {
	r, g, b = unit(r/255.0), unit(g/255.0), unit(b/255.0)

	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	chroma := maxC - minC

	l = (maxC + minC) / 2.0
	if chroma == 0 {
		return 0, 0, l * 100
	}

	var hue float64
	switch maxC {
	case r:
		hue = math.Mod((g-b)/chroma, 6.0)
		if hue < 0 {
			hue += 6.0
		}
	case g:
		hue = (b-r)/chroma + 2.0
	default:
		hue = (r-g)/chroma + 4.0
	}

	if l <= 0.5 {
		s = chroma / (2.0 * l)
	} else {
		s = chroma / (2.0 - 2.0*l)
	}

	return wrapHue(hue * 60.0), s * 100, l * 100
}

// HSLToRGB converts hue in degrees and saturation/lightness in percent to RGB
// channels in [0,255]. Saturation and lightness are clamped to [0,100].
//
// The hue is used as given. A hue whose sextant h/60 falls outside [0,6)
// contributes no chroma, so the result is the grey at the lightness offset.
// Callers holding arbitrary angles should wrap them first, as HSL.RGB does.
func HSLToRGB(h, s, l float64) (r, g, b float64) {
	s = unit(s / 100.0)
	l = unit(l / 100.0)

	var chroma float64
	if l <= 0.5 {
		chroma = 2.0 * l * s
	} else {
		chroma = (2.0 - 2.0*l) * s
	}

	hp := h / 60.0
	x := chroma * (1 - math.Abs(math.Mod(hp, 2)-1))
	m := l - chroma/2.0

	switch {
	case hp < 0:
	case hp < 1:
		r, g = chroma, x
	case hp < 2:
		r, g = x, chroma
	case hp < 3:
		g, b = chroma, x
	case hp < 4:
		g, b = x, chroma
	case hp < 5:
		r, b = x, chroma
	case hp < 6:
		r, b = chroma, x
	}

	return (r + m) * 255.0, (g + m) * 255.0, (b + m) * 255.0
}

// unit clamps v to [0,1], mapping NaN to 0.
func unit(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return clamp(v, 0, 1)
}
