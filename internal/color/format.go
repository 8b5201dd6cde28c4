package color

import (
	"fmt"
	"math"
	"strconv"
)

// CSS renders the color in its current space: "rgba(r, g, b, a)" for RGB
// colors and "hsla(h, s%, l%, a)" for HSL colors. Alpha is always written.
// RGB channels are clamped and rounded to integers; HSL numbers are rounded
// to two decimals.
func (c Color) CSS() string {
	if c.space == SpaceHSL {
		h := c.HSL()
		return fmt.Sprintf("hsla(%s, %s%%, %s%%, %s)",
			formatNum(h.H), formatNum(h.S), formatNum(h.L), formatNum(h.A))
	}
	r := c.RGB()
	return fmt.Sprintf("rgba(%d, %d, %d, %s)",
		clampByte(r.R), clampByte(r.G), clampByte(r.B), formatNum(r.A))
}

// Hex renders the color as "#rrggbb", converting to RGB first. Alpha is dropped.
func (c Color) Hex() string {
	return ToHex(c.RGB())
}

// ToHex renders RGB channels as "#rrggbb". Channels outside [0,255] are
// clamped and fractional channels rounded, so out-of-range values still
// produce a valid string instead of an error.
func ToHex(c RGB) string {
	return fmt.Sprintf("#%02x%02x%02x", clampByte(c.R), clampByte(c.G), clampByte(c.B))
}

func formatNum(v float64) string {
	v = math.Round(v*100) / 100
	if v == 0 {
		// avoid "-0"
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
