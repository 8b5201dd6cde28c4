// Package colr parses CSS color strings and converts colors between RGB and
// HSL, with blend, lighten, darken, invert and text-color helpers.
//
// Accepted inputs are hex ("#f00", "ff0000"), rgb(), rgba(), hsl(), hsla(),
// CSS color names and numeric tuples:
//
//	c, err := colr.Parse(colr.CSS("hsl(210, 50%, 40%)"))
//	if err != nil {
//		return err
//	}
//	fmt.Println(c.Hex())                          // #336699
//	fmt.Println(colr.Lighten(c, 0.25).CSS())      // hsla(210, 50%, 50%, 1)
//	fmt.Println(colr.Blend(c, colr.MustParse("white"), 0.5).Hex())
//
// A Converter adds strict parsing, a configurable random palette and debug
// traces through a *slog.Logger:
//
//	conv := colr.NewConverter(colr.Options{Logger: logger, Strict: true})
//	out, err := conv.TextColor(colr.CSS("#336699"))
package colr

import (
	"fmt"

	"github.com/maax3v3/colr/internal/color"
	"github.com/maax3v3/colr/internal/imaging"
	"github.com/maax3v3/colr/internal/renderer"
)

type (
	// Color is an immutable color tagged with the space it was built in.
	Color = color.Color
	// Input is anything Parse accepts: CSS, Tuple or Color.
	Input = color.Input
	// CSS is a color string such as "#336699" or "rgba(0, 0, 0, 0.5)".
	CSS = color.CSS
	// Tuple is 3 or 4 RGB(A) channels.
	Tuple = color.Tuple
	RGB   = color.RGB
	HSL   = color.HSL
	Space = color.Space

	Converter  = color.Converter
	Options    = color.Options
	Palette    = color.Palette
	ParseError = color.ParseError

	// FontRenderer draws swatch labels. Implement it to use a custom font.
	FontRenderer = renderer.FontRenderer
)

const (
	SpaceRGB = color.SpaceRGB
	SpaceHSL = color.SpaceHSL

	PaletteMuted = color.PaletteMuted
	PaletteFull  = color.PaletteFull
)

var (
	ErrInvalidInput       = color.ErrInvalidInput
	ErrInvalidColorSyntax = color.ErrInvalidColorSyntax
	ErrChannelOutOfRange  = color.ErrChannelOutOfRange
)

// Parse resolves in to a Color without range checks.
func Parse(in Input) (Color, error) { return color.Parse(in) }

// MustParse is like Parse for strings but panics on error.
func MustParse(s string) Color { return color.MustParse(s) }

// Blend interpolates the RGB channels of a and b; t is clamped to [0,1].
func Blend(a, b Color, t float64) Color { return color.Blend(a, b, t) }

// BlendHSL interpolates in HSL space.
func BlendHSL(a, b Color, t float64) Color { return color.BlendHSL(a, b, t) }

// Lighten raises HSL lightness by factor: L' = L + L*factor.
func Lighten(c Color, factor float64) Color { return color.Lighten(c, factor) }

// Darken lowers HSL lightness by factor: L' = L*(1-factor).
func Darken(c Color, factor float64) Color { return color.Darken(c, factor) }

// Invert returns 255 minus each RGB channel.
func Invert(c Color) Color { return color.Invert(c) }

// TextColor picks a foreground color for text drawn on background c.
func TextColor(c Color) Color { return color.TextColor(c) }

// Random returns a random "hsl(h, s%, l%)" string from the muted palette.
func Random() string { return color.RandomCSS(nil, color.PaletteMuted) }

// RGBToHSL converts channels in [0,255] to hue degrees and percent
// saturation and lightness.
func RGBToHSL(r, g, b float64) (h, s, l float64) { return color.RGBToHSL(r, g, b) }

// HSLToRGB converts hue degrees and percent saturation and lightness to
// channels in [0,255].
func HSLToRGB(h, s, l float64) (r, g, b float64) { return color.HSLToRGB(h, s, l) }

// NewConverter creates a Converter.
func NewConverter(opts Options) *Converter { return color.NewConverter(opts) }

// SampleFile returns the average visible color of a PNG, JPEG or WEBP image.
func SampleFile(path string) (Color, error) {
	c, err := imaging.SampleFile(path)
	if err != nil {
		return Color{}, err
	}
	return color.FromRGB(c), nil
}

// PaletteEntry is one dominant color of an image and the fraction of the
// visible pixels it stands for.
type PaletteEntry struct {
	Color Color
	Share float64
}

// PaletteFile returns up to n dominant colors of an image, largest share
// first. Similar colors are merged by CIELAB distance.
func PaletteFile(path string, n int) ([]PaletteEntry, error) {
	entries, err := imaging.PaletteFile(path, n)
	if err != nil {
		return nil, err
	}
	out := make([]PaletteEntry, len(entries))
	for i, e := range entries {
		out[i] = PaletteEntry{Color: color.FromRGB(e.Color), Share: e.Weight}
	}
	return out, nil
}

// SwatchOptions configures SaveSwatch. Zero fields take defaults.
type SwatchOptions struct {
	// Columns is the number of circles per row. Default: 8.
	Columns int

	// CircleSize is the circle diameter in pixels. Default: 48.
	CircleSize int

	// Font draws the numbers and hex labels. If nil, a built-in bitmap
	// font is used.
	Font FontRenderer
}

// SaveSwatch renders colors as numbered circles with hex labels and writes
// the sheet to path as PNG.
func SaveSwatch(path string, colors []Color, opts SwatchOptions) error {
	if len(colors) == 0 {
		return fmt.Errorf("no colors to render")
	}
	cfg := renderer.DefaultConfig()
	if opts.Columns > 0 {
		cfg.Columns = opts.Columns
	}
	if opts.CircleSize > 0 {
		cfg.CircleSize = opts.CircleSize
	}
	font := opts.Font
	if font == nil {
		font = renderer.NewBitmapFont()
	}

	rgb := make([]color.RGB, len(colors))
	for i, c := range colors {
		rgb[i] = c.RGB()
	}
	if err := imaging.SavePNG(path, renderer.Render(rgb, font, cfg)); err != nil {
		return fmt.Errorf("saving swatch: %w", err)
	}
	return nil
}
