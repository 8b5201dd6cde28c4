package color

import (
	"fmt"
	"math/rand"
	"strings"
)

// Palette selects the ranges used by RandomCSS.
type Palette string

const (
	// PaletteMuted keeps saturation in [20,100) and lightness in [30,80),
	// which avoids near-grey and near-black/white picks.
	PaletteMuted Palette = "muted"

	// PaletteFull draws saturation and lightness from [0,100).
	PaletteFull Palette = "full"
)

// ParsePalette validates a palette name. The empty string selects PaletteMuted.
func ParsePalette(s string) (Palette, error) {
	switch p := Palette(strings.ToLower(strings.TrimSpace(s))); p {
	case "", PaletteMuted:
		return PaletteMuted, nil
	case PaletteFull:
		return PaletteFull, nil
	default:
		return "", fmt.Errorf("unknown palette %q (supported: muted, full)", s)
	}
}

// RandomCSS returns a random "hsl(h, s%, l%)" string with integer channels.
// The hue is uniform in [0,360). If r is nil the shared math/rand source is used.
func RandomCSS(r *rand.Rand, p Palette) string {
	intn := rand.Intn
	if r != nil {
		intn = r.Intn
	}
	h := intn(360)
	var s, l int
	if p == PaletteFull {
		s, l = intn(100), intn(100)
	} else {
		s, l = 20+intn(80), 30+intn(50)
	}
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", h, s, l)
}
