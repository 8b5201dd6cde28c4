package color

import (
	"math"
	"strings"

	"golang.org/x/image/colornames"
)

// Named looks up a CSS color keyword, case-insensitively. "transparent" is
// transparent black; every other name is opaque.
func Named(name string) (RGB, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "transparent" {
		return RGB{}, true
	}
	c, ok := colornames.Map[name]
	if !ok {
		return RGB{}, false
	}
	return RGB{R: float64(c.R), G: float64(c.G), B: float64(c.B), A: 1}, true
}

// Nearest returns the CSS color keyword closest to c in CIELAB space. exact
// reports whether the keyword names c itself once c is rounded to bytes.
// Ties resolve to the alphabetically first name, so "aqua" wins over "cyan".
func Nearest(c RGB) (name string, exact bool) {
	target := RGB{R: float64(clampByte(c.R)), G: float64(clampByte(c.G)), B: float64(clampByte(c.B))}
	best := math.MaxFloat64
	for _, n := range colornames.Names {
		nc := colornames.Map[n]
		candidate := RGB{R: float64(nc.R), G: float64(nc.G), B: float64(nc.B)}
		if d := DistanceLAB(target, candidate); d < best {
			best = d
			name = n
			exact = candidate == target
		}
	}
	return name, exact
}
