package color

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip building attributes entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// Options configures a Converter.
type Options struct {
	// Logger receives debug traces of every operation. If nil, nothing is logged.
	Logger *slog.Logger

	// Strict makes parsing reject out-of-range channels.
	Strict bool

	// Rand is the source for Random. If nil, the shared math/rand source is used.
	Rand *rand.Rand

	// Palette selects the ranges for Random. Default: PaletteMuted.
	Palette Palette
}

// Converter parses inputs and runs conversions and derived operations on
// them, tracing each step at debug level. It is safe for concurrent use.
type Converter struct {
	parser  *Parser
	log     *slog.Logger
	palette Palette

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

// NewConverter creates a Converter.
func NewConverter(opts Options) *Converter {
	l := opts.Logger
	if l == nil {
		l = slog.New(nopHandler{})
	}
	p := opts.Palette
	if p == "" {
		p = PaletteMuted
	}
	return &Converter{
		parser:  NewParser(ParserOptions{Strict: opts.Strict}),
		log:     l.With("component", "color"),
		palette: p,
		rng:     opts.Rand,
	}
}

// Parse resolves in to a Color.
func (c *Converter) Parse(in Input) (Color, error) {
	col, err := c.parser.Parse(in)
	if err != nil {
		c.log.Debug("parse failed", "input", in, "err", err)
		return Color{}, err
	}
	c.log.Debug("parse", "input", in, "space", col.Space(), "color", col)
	return col, nil
}

func (c *Converter) parsePair(a, b Input) (Color, Color, error) {
	ca, err := c.Parse(a)
	if err != nil {
		return Color{}, Color{}, fmt.Errorf("first color: %w", err)
	}
	cb, err := c.Parse(b)
	if err != nil {
		return Color{}, Color{}, fmt.Errorf("second color: %w", err)
	}
	return ca, cb, nil
}

// ToRGB parses in and returns it RGB-tagged.
func (c *Converter) ToRGB(in Input) (Color, error) {
	return c.apply("rgb", in, Color.ToRGB)
}

// ToHSL parses in and returns it HSL-tagged.
func (c *Converter) ToHSL(in Input) (Color, error) {
	return c.apply("hsl", in, Color.ToHSL)
}

// Blend parses both inputs and blends them in RGB space. See Blend.
func (c *Converter) Blend(a, b Input, t float64) (Color, error) {
	ca, cb, err := c.parsePair(a, b)
	if err != nil {
		return Color{}, err
	}
	out := Blend(ca, cb, t)
	c.log.Debug("blend", "a", ca, "b", cb, "t", t, "result", out)
	return out, nil
}

// BlendHSL parses both inputs and blends them in HSL space. See BlendHSL.
func (c *Converter) BlendHSL(a, b Input, t float64) (Color, error) {
	ca, cb, err := c.parsePair(a, b)
	if err != nil {
		return Color{}, err
	}
	out := BlendHSL(ca, cb, t)
	c.log.Debug("blend hsl", "a", ca, "b", cb, "t", t, "result", out)
	return out, nil
}

// Lighten parses in and lightens it by factor. See Lighten.
func (c *Converter) Lighten(in Input, factor float64) (Color, error) {
	return c.apply("lighten", in, func(col Color) Color { return Lighten(col, factor) })
}

// Darken parses in and darkens it by factor. See Darken.
func (c *Converter) Darken(in Input, factor float64) (Color, error) {
	return c.apply("darken", in, func(col Color) Color { return Darken(col, factor) })
}

// Invert parses in and inverts it. See Invert.
func (c *Converter) Invert(in Input) (Color, error) {
	return c.apply("invert", in, Invert)
}

// TextColor parses in and returns a readable foreground for it. See TextColor.
func (c *Converter) TextColor(in Input) (Color, error) {
	return c.apply("text color", in, TextColor)
}

// Hex parses in and renders it as "#rrggbb".
func (c *Converter) Hex(in Input) (string, error) {
	col, err := c.Parse(in)
	if err != nil {
		return "", err
	}
	return col.Hex(), nil
}

// CSS parses in and renders it in functional notation. See Color.CSS.
func (c *Converter) CSS(in Input) (string, error) {
	col, err := c.Parse(in)
	if err != nil {
		return "", err
	}
	return col.CSS(), nil
}

// Name parses in and returns the closest CSS color keyword. See Nearest.
func (c *Converter) Name(in Input) (name string, exact bool, err error) {
	col, err := c.Parse(in)
	if err != nil {
		return "", false, err
	}
	name, exact = Nearest(col.RGB())
	c.log.Debug("name", "color", col, "name", name, "exact", exact)
	return name, exact, nil
}

// Random returns a random "hsl(...)" string drawn from the configured palette.
func (c *Converter) Random() string {
	var s string
	if c.rng != nil {
		c.mu.Lock()
		s = RandomCSS(c.rng, c.palette)
		c.mu.Unlock()
	} else {
		s = RandomCSS(nil, c.palette)
	}
	c.log.Debug("random", "palette", string(c.palette), "color", s)
	return s
}

func (c *Converter) apply(op string, in Input, fn func(Color) Color) (Color, error) {
	col, err := c.Parse(in)
	if err != nil {
		return Color{}, err
	}
	out := fn(col)
	c.log.Debug(op, "color", col, "result", out)
	return out, nil
}
